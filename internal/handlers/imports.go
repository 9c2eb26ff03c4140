package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"itorg-api/internal/store"
	"itorg-api/pkg/importer"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const defaultMaxBytes = 20 << 20 // 20 MB

// ImportsHandler handles Excel import operations
type ImportsHandler struct {
	Creator  importer.AssetCreator
	MaxBytes int64
	// Imported counts stored assets; may be nil
	Imported prometheus.Counter
}

func NewImportsHandler(creator importer.AssetCreator, maxBytes int64, imported prometheus.Counter) *ImportsHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &ImportsHandler{
		Creator:  creator,
		MaxBytes: maxBytes,
		Imported: imported,
	}
}

// UploadExcel imports assets from the multipart field "file". Optional
// fields: dry_run=true and max_errors.
func (h *ImportsHandler) UploadExcel(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)

	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		writeDetail(w, http.StatusBadRequest, "content-type must be multipart/form-data")
		return
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	dryRun := r.FormValue("dry_run") == "true"
	maxErrors := 50
	if v := r.FormValue("max_errors"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxErrors = n
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "file is required: "+err.Error())
		return
	}
	defer file.Close()

	if !isXLSX(header) {
		writeDetail(w, http.StatusBadRequest, "only .xlsx files are accepted")
		return
	}

	logger := zerolog.Ctx(r.Context())
	sum, impErr := importer.ImportAssets(r.Context(), h.Creator, file, importer.ImportOptions{
		DryRun:    dryRun,
		MaxErrors: maxErrors,
		Logger:    logger,
	})
	if impErr != nil {
		logger.Warn().Err(impErr).Str("file", header.Filename).Msg("asset import rejected")
		writeJSON(w, http.StatusUnprocessableEntity, importResponse{
			Detail: importFailure(impErr),
			Data:   sum,
		})
		return
	}

	if h.Imported != nil {
		h.Imported.Add(float64(sum.Inserted))
	}
	writeJSON(w, http.StatusOK, importResponse{
		Data: sum,
		Meta: &importMeta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	})
}

type importResponse struct {
	Detail string                 `json:"detail,omitempty"`
	Data   importer.ImportSummary `json:"data"`
	Meta   *importMeta            `json:"meta,omitempty"`
}

type importMeta struct {
	Timestamp string `json:"timestamp"`
}

// importFailure hides database errors; workbook and row problems are the
// caller's to fix and are reported as is.
func importFailure(err error) string {
	var perr *store.PersistenceError
	if errors.As(err, &perr) {
		return "import failed"
	}
	return err.Error()
}

// isXLSX checks if the uploaded file is an Excel .xlsx file
func isXLSX(h *multipart.FileHeader) bool {
	return strings.HasSuffix(strings.ToLower(h.Filename), ".xlsx")
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
