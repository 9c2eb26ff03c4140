package importer

import (
	_ "embed"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Asset fields a column can map to.
const (
	FieldType       = "type"
	FieldMakeModel  = "make_model"
	FieldSerial     = "serial"
	FieldAssignedTo = "assigned_to"
	FieldStatus     = "status"
)

var knownFields = map[string]bool{
	FieldType:       true,
	FieldMakeModel:  true,
	FieldSerial:     true,
	FieldAssignedTo: true,
	FieldStatus:     true,
}

// mappingVersion is the newest mapping file format this package reads.
const mappingVersion = 1

//go:embed mapping/assets.yaml
var defaultMapping []byte

// MappingConfig maps asset fields to the header names that may carry them.
type MappingConfig struct {
	// Version of the file format; omitted means the current one
	Version int `yaml:"version"`
	// Sheet to read; empty means the first sheet of the workbook
	Sheet   string              `yaml:"sheet"`
	Columns map[string][]string `yaml:"columns"`
}

// LoadMapping reads a mapping file, or the built-in mapping when path is
// empty.
func LoadMapping(path string) (*MappingConfig, error) {
	data := defaultMapping
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, errors.Wrap(err, "read mapping")
		}
	}
	return ParseMapping(data)
}

func ParseMapping(data []byte) (*MappingConfig, error) {
	var m MappingConfig
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "parse mapping")
	}
	switch {
	case m.Version == 0:
		m.Version = mappingVersion
	case m.Version < 0 || m.Version > mappingVersion:
		return nil, errors.Errorf("mapping: unsupported version %d", m.Version)
	}
	if len(m.Columns) == 0 {
		return nil, errors.New("mapping has no columns")
	}
	for field := range m.Columns {
		if !knownFields[field] {
			return nil, errors.Errorf("mapping: unknown asset field %q", field)
		}
	}
	return &m, nil
}

// resolve returns the column index for each field found in header. A
// header claimed by two fields is an error.
func (m *MappingConfig) resolve(header []string) (map[string]int, error) {
	byHeader := map[string]string{}
	for field, aliases := range m.Columns {
		for _, alias := range aliases {
			key := normalizeHeader(alias)
			if other, ok := byHeader[key]; ok && other != field {
				return nil, errors.Errorf("mapping: header %q is used by both %s and %s", alias, other, field)
			}
			byHeader[key] = field
		}
	}

	cols := map[string]int{}
	for i, h := range header {
		field, ok := byHeader[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, dup := cols[field]; !dup {
			cols[field] = i
		}
	}
	if len(cols) == 0 {
		return nil, errors.New("header row matches no mapped column")
	}
	return cols, nil
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
