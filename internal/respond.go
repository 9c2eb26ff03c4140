package internal

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"itorg-api/internal/models"
	"itorg-api/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrorResponse is the body of every non-2xx answer. Code and Field are set
// for validation failures only.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
	Field  string `json:"field,omitempty"`
}

// OKResponse is returned by successful deletes.
type OKResponse struct {
	OK bool `json:"ok"`
}

var (
	errInvalidJSON = errors.New("invalid JSON")
	errBadID       = errors.New("malformed id")
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its status code. Anything unrecognised is a
// 500 whose cause is logged but not sent.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Detail: verr.Error(),
			Code:   string(verr.Kind),
			Field:  verr.Field,
		})
	case errors.Is(err, errInvalidJSON):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "invalid JSON"})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, errBadID):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Detail: "Not found"})
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
	}
}

// enumFielder is implemented by request bodies with closed-vocabulary
// fields.
type enumFielder interface {
	EnumTokens(field string) []string
}

// decodeJSON reads a single JSON value. An empty body decodes as {}.
// Well-formed JSON with a wrongly typed field is a validation error; only
// a body that is not JSON, or not an object, is errInvalidJSON.
func decodeJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || err == io.EOF {
		return nil
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		var allowed []string
		if ef, ok := v.(enumFielder); ok {
			allowed = ef.EnumTokens(ute.Field)
		}
		return models.WrongType(ute.Field, ute.Value, allowed)
	}
	return errors.Wrap(errInvalidJSON, err.Error())
}

// parseID reads the {id} path segment. A non-integer can match no row, so
// it is reported the same way as a missing one.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errBadID
	}
	return id, nil
}
