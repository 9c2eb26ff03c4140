// Package importer loads assets in bulk from an .xlsx workbook. The whole
// sheet is validated first; rows are written only when every one of them is
// valid, and then in a single transaction.
package importer

import (
	"context"
	"io"
	"strings"

	"itorg-api/internal/models"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tealeg/xlsx/v3"
)

// AssetCreator stores a batch of assets atomically.
type AssetCreator interface {
	CreateAssets(ctx context.Context, batch []models.AssetFields) ([]models.Asset, error)
}

// ImportOptions defines the configuration for an import run
type ImportOptions struct {
	// MappingPath is a YAML mapping file; empty uses the built-in one
	MappingPath string
	Mapping     *MappingConfig
	DryRun      bool
	MaxErrors   int // default 50
	Logger      *zerolog.Logger
}

// RowError describes one rejected row. Row is 1-based as shown in a
// spreadsheet, so the header is row 1.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ImportSummary contains the import statistics
type ImportSummary struct {
	Sheet    string     `json:"sheet"`
	Rows     int        `json:"rows"`
	Valid    int        `json:"valid"`
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Errors   int        `json:"errors"`
	Samples  []RowError `json:"error_samples,omitempty"`
	DryRun   bool       `json:"dry_run"`
	IDs      []int64    `json:"ids,omitempty"`
}

var (
	ErrNoSheet       = errors.New("workbook has no matching sheet")
	ErrRowsInvalid   = errors.New("some rows failed validation, nothing was imported")
	ErrTooManyErrors = errors.New("too many errors, stopping import")
)

// ImportAssets reads the workbook from r and stores its rows through c.
// On any row error nothing is written and the returned summary lists the
// rejected rows.
func ImportAssets(ctx context.Context, c AssetCreator, r io.Reader, opts ImportOptions) (ImportSummary, error) {
	summary := ImportSummary{DryRun: opts.DryRun}

	if opts.MaxErrors <= 0 {
		opts.MaxErrors = 50
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	mapping := opts.Mapping
	if mapping == nil {
		var err error
		if mapping, err = LoadMapping(opts.MappingPath); err != nil {
			return summary, err
		}
	}

	// xlsx needs random access, so the upload is buffered in full.
	data, err := io.ReadAll(r)
	if err != nil {
		return summary, errors.Wrap(err, "read workbook")
	}
	wb, err := xlsx.OpenBinary(data)
	if err != nil {
		return summary, errors.Wrap(err, "open workbook")
	}

	sheet, err := pickSheet(wb, mapping.Sheet)
	if err != nil {
		return summary, err
	}
	summary.Sheet = sheet.Name

	batch, err := readSheet(sheet, mapping, opts.MaxErrors, &summary)
	if err != nil {
		return summary, err
	}
	summary.Valid = len(batch)

	logger.Debug().
		Str("sheet", summary.Sheet).
		Int("rows", summary.Rows).
		Int("valid", summary.Valid).
		Int("skipped", summary.Skipped).
		Int("errors", summary.Errors).
		Bool("dryRun", opts.DryRun).
		Msg("workbook validated")

	if summary.Errors > 0 {
		return summary, ErrRowsInvalid
	}
	if opts.DryRun || len(batch) == 0 {
		return summary, nil
	}

	created, err := c.CreateAssets(ctx, batch)
	if err != nil {
		return summary, errors.Wrap(err, "store assets")
	}
	summary.Inserted = len(created)
	for _, a := range created {
		summary.IDs = append(summary.IDs, a.ID)
	}

	logger.Info().Str("sheet", summary.Sheet).Int("inserted", summary.Inserted).Msg("assets imported")
	return summary, nil
}

func pickSheet(wb *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		if sheet, ok := wb.Sheet[name]; ok {
			return sheet, nil
		}
		return nil, errors.Wrapf(ErrNoSheet, "sheet %q", name)
	}
	if len(wb.Sheets) == 0 {
		return nil, ErrNoSheet
	}
	return wb.Sheets[0], nil
}

func readSheet(sheet *xlsx.Sheet, mapping *MappingConfig, maxErrors int, summary *ImportSummary) ([]models.AssetFields, error) {
	if sheet.MaxRow == 0 {
		return nil, nil
	}

	header := make([]string, sheet.MaxCol)
	for c := 0; c < sheet.MaxCol; c++ {
		v, err := cellValue(sheet, 0, c)
		if err != nil {
			return nil, errors.Wrap(err, "read header row")
		}
		header[c] = v
	}
	cols, err := mapping.resolve(header)
	if err != nil {
		return nil, err
	}

	var batch []models.AssetFields
	for r := 1; r < sheet.MaxRow; r++ {
		values := map[string]string{}
		blank := true
		for field, c := range cols {
			v, err := cellValue(sheet, r, c)
			if err != nil {
				return nil, errors.Wrapf(err, "read row %d", r+1)
			}
			values[field] = v
			if v != "" {
				blank = false
			}
		}
		if blank {
			summary.Skipped++
			continue
		}
		summary.Rows++

		fields, err := models.ValidateAssetInput(assetInput(values))
		if err != nil {
			summary.Errors++
			if len(summary.Samples) < maxErrors {
				summary.Samples = append(summary.Samples, rowError(r+1, err))
			}
			if summary.Errors > maxErrors {
				return nil, errors.Wrapf(ErrTooManyErrors, "%d errors", summary.Errors)
			}
			continue
		}
		batch = append(batch, fields)
	}
	return batch, nil
}

func cellValue(sheet *xlsx.Sheet, row, col int) (string, error) {
	cell, err := sheet.Cell(row, col)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(cell.String()), nil
}

// assetInput treats an empty cell like an omitted JSON field.
func assetInput(values map[string]string) models.AssetInput {
	get := func(field string) *string {
		if v, ok := values[field]; ok && v != "" {
			return &v
		}
		return nil
	}
	return models.AssetInput{
		Type:       lower(get(FieldType)),
		MakeModel:  get(FieldMakeModel),
		Serial:     get(FieldSerial),
		AssignedTo: get(FieldAssignedTo),
		Status:     lower(get(FieldStatus)),
	}
}

// Spreadsheets tend to capitalise; enum tokens are lower case.
func lower(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.ToLower(*p)
	return &v
}

func rowError(row int, err error) RowError {
	re := RowError{Row: row, Message: err.Error()}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		re.Field = verr.Field
	}
	return re
}
