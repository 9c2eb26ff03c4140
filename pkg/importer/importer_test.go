package importer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"itorg-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

type fakeCreator struct {
	batches [][]models.AssetFields
	err     error
}

func (f *fakeCreator) CreateAssets(_ context.Context, batch []models.AssetFields) ([]models.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, batch)
	out := make([]models.Asset, len(batch))
	for i, a := range batch {
		out[i] = models.Asset{ID: int64(i + 1), Type: a.Type, Serial: a.Serial, Status: a.Status}
	}
	return out, nil
}

func workbook(t *testing.T, sheet string, rows ...[]string) *bytes.Reader {
	t.Helper()
	f := xlsx.NewFile()
	sh, err := f.AddSheet(sheet)
	require.NoError(t, err)
	for _, cells := range rows {
		row := sh.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestImportAssets(t *testing.T) {
	c := &fakeCreator{}
	r := workbook(t, "Inventory",
		[]string{"Asset Type", "Model", "S/N", "Owner", "Status", "Notes"},
		[]string{"Laptop", "Dell XPS 13", "SN-001", "ana@example.com", "In-Use", "spare charger"},
		[]string{"", "", "", "", "", ""},
		[]string{"vm", "", "vm-42", "", "", ""},
	)

	sum, err := ImportAssets(context.Background(), c, r, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Inventory", sum.Sheet)
	assert.Equal(t, 2, sum.Rows)
	assert.Equal(t, 2, sum.Inserted)
	assert.Equal(t, 1, sum.Skipped)
	assert.Zero(t, sum.Errors)
	assert.Equal(t, []int64{1, 2}, sum.IDs)

	require.Len(t, c.batches, 1)
	batch := c.batches[0]
	assert.Equal(t, models.AssetFields{
		Type:       models.AssetLaptop,
		MakeModel:  "Dell XPS 13",
		Serial:     "SN-001",
		AssignedTo: "ana@example.com",
		Status:     models.AssetInUse,
	}, batch[0])
	assert.Equal(t, models.AssetVM, batch[1].Type)
	assert.Equal(t, models.AssetStock, batch[1].Status, "empty status cell takes the default")
}

func TestImportAssetsRejectsWholeSheetOnRowError(t *testing.T) {
	c := &fakeCreator{}
	r := workbook(t, "Sheet1",
		[]string{"Type", "Serial", "Status"},
		[]string{"monitor", "M-1", "stock"},
		[]string{"drone", "D-1", "stock"},
		[]string{"laptop", "L-1", "lost"},
	)

	sum, err := ImportAssets(context.Background(), c, r, ImportOptions{})
	assert.ErrorIs(t, err, ErrRowsInvalid)
	assert.Empty(t, c.batches, "nothing is written when a row fails")

	assert.Equal(t, 3, sum.Rows)
	assert.Equal(t, 1, sum.Valid)
	assert.Equal(t, 2, sum.Errors)
	assert.Zero(t, sum.Inserted)
	require.Len(t, sum.Samples, 2)
	assert.Equal(t, RowError{Row: 3, Field: "type", Message: sum.Samples[0].Message}, sum.Samples[0])
	assert.Contains(t, sum.Samples[0].Message, `"drone"`)
	assert.Equal(t, 4, sum.Samples[1].Row)
	assert.Equal(t, "status", sum.Samples[1].Field)
}

func TestImportAssetsDryRun(t *testing.T) {
	c := &fakeCreator{}
	r := workbook(t, "Sheet1",
		[]string{"Type", "Serial"},
		[]string{"laptop", "L-1"},
	)

	sum, err := ImportAssets(context.Background(), c, r, ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.True(t, sum.DryRun)
	assert.Equal(t, 1, sum.Valid)
	assert.Zero(t, sum.Inserted)
	assert.Empty(t, c.batches)
}

func TestImportAssetsStopsAfterMaxErrors(t *testing.T) {
	rows := [][]string{{"Type"}}
	for i := 0; i < 5; i++ {
		rows = append(rows, []string{"toaster"})
	}

	sum, err := ImportAssets(context.Background(), &fakeCreator{}, workbook(t, "Sheet1", rows...), ImportOptions{MaxErrors: 2})
	assert.ErrorIs(t, err, ErrTooManyErrors)
	assert.Equal(t, 3, sum.Errors)
	assert.Len(t, sum.Samples, 2)
}

func TestImportAssetsStoreFailure(t *testing.T) {
	c := &fakeCreator{err: errors.New("disk full")}
	r := workbook(t, "Sheet1", []string{"Type"}, []string{"laptop"})

	sum, err := ImportAssets(context.Background(), c, r, ImportOptions{})
	assert.ErrorContains(t, err, "disk full")
	assert.Zero(t, sum.Inserted)
}

func TestImportAssetsUnknownHeaders(t *testing.T) {
	r := workbook(t, "Sheet1", []string{"Colour", "Weight"}, []string{"red", "2kg"})

	_, err := ImportAssets(context.Background(), &fakeCreator{}, r, ImportOptions{})
	assert.ErrorContains(t, err, "matches no mapped column")
}

func TestImportAssetsNotAWorkbook(t *testing.T) {
	_, err := ImportAssets(context.Background(), &fakeCreator{}, strings.NewReader("id,type\n1,laptop\n"), ImportOptions{})
	assert.ErrorContains(t, err, "open workbook")
}

func TestImportAssetsNamedSheet(t *testing.T) {
	mapping, err := ParseMapping([]byte(`
version: 1
sheet: Hardware
columns:
  serial: [Serial]
`))
	require.NoError(t, err)

	_, err = ImportAssets(context.Background(), &fakeCreator{}, workbook(t, "Sheet1", []string{"Serial"}), ImportOptions{Mapping: mapping})
	assert.ErrorIs(t, err, ErrNoSheet)
}

func TestLoadMapping(t *testing.T) {
	m, err := LoadMapping("")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Version)
	assert.Contains(t, m.Columns[FieldSerial], "S/N")

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns:\n  type: [Category]\n"), 0o600))
	m, err = LoadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Category"}, m.Columns[FieldType])
	assert.Equal(t, 1, m.Version)

	_, err = LoadMapping(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseMappingRejectsBadConfig(t *testing.T) {
	_, err := ParseMapping([]byte("columns:\n  colour: [Colour]\n"))
	assert.ErrorContains(t, err, `unknown asset field "colour"`)

	_, err = ParseMapping([]byte("version: 1\n"))
	assert.ErrorContains(t, err, "no columns")

	_, err = ParseMapping([]byte("version: 2\ncolumns:\n  serial: [Serial]\n"))
	assert.ErrorContains(t, err, "unsupported version 2")

	_, err = ParseMapping([]byte("columns: [unterminated"))
	assert.Error(t, err)
}

func TestResolveRejectsSharedAlias(t *testing.T) {
	m := &MappingConfig{Columns: map[string][]string{
		FieldSerial:    {"Tag"},
		FieldMakeModel: {"tag"},
	}}
	_, err := m.resolve([]string{"Tag"})
	assert.ErrorContains(t, err, "used by both")
}
