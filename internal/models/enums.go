package models

import (
	"database/sql/driver"
	"fmt"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanned ProjectStatus = "planned"
	ProjectActive  ProjectStatus = "active"
	ProjectDone    ProjectStatus = "done"
)

// ProjectStatuses lists every valid ProjectStatus.
var ProjectStatuses = []ProjectStatus{ProjectPlanned, ProjectActive, ProjectDone}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanned, ProjectActive, ProjectDone:
		return true
	}
	return false
}

// ParseProjectStatus returns the ProjectStatus for an exact token.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	return parseEnum("status", s, ProjectStatuses)
}

// Value implements the driver.Valuer interface for ProjectStatus
func (s ProjectStatus) Value() (driver.Value, error) { return enumValue(s) }

// Scan implements the sql.Scanner interface for ProjectStatus
func (s *ProjectStatus) Scan(src interface{}) error { return scanEnum(s, src) }

// TicketPriority is how urgent a ticket is.
type TicketPriority string

const (
	TicketLow    TicketPriority = "low"
	TicketMedium TicketPriority = "medium"
	TicketHigh   TicketPriority = "high"
)

var TicketPriorities = []TicketPriority{TicketLow, TicketMedium, TicketHigh}

func (p TicketPriority) Valid() bool {
	switch p {
	case TicketLow, TicketMedium, TicketHigh:
		return true
	}
	return false
}

func ParseTicketPriority(s string) (TicketPriority, error) {
	return parseEnum("priority", s, TicketPriorities)
}

func (p TicketPriority) Value() (driver.Value, error) { return enumValue(p) }

func (p *TicketPriority) Scan(src interface{}) error { return scanEnum(p, src) }

// TicketStatus is the workflow state of a ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
)

var TicketStatuses = []TicketStatus{TicketOpen, TicketInProgress, TicketResolved}

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved:
		return true
	}
	return false
}

func ParseTicketStatus(s string) (TicketStatus, error) {
	return parseEnum("status", s, TicketStatuses)
}

func (s TicketStatus) Value() (driver.Value, error) { return enumValue(s) }

func (s *TicketStatus) Scan(src interface{}) error { return scanEnum(s, src) }

// AssetType is the kind of hardware or virtual machine an asset is.
type AssetType string

const (
	AssetLaptop  AssetType = "laptop"
	AssetMonitor AssetType = "monitor"
	AssetVM      AssetType = "vm"
)

var AssetTypes = []AssetType{AssetLaptop, AssetMonitor, AssetVM}

func (t AssetType) Valid() bool {
	switch t {
	case AssetLaptop, AssetMonitor, AssetVM:
		return true
	}
	return false
}

func ParseAssetType(s string) (AssetType, error) {
	return parseEnum("type", s, AssetTypes)
}

func (t AssetType) Value() (driver.Value, error) { return enumValue(t) }

func (t *AssetType) Scan(src interface{}) error { return scanEnum(t, src) }

// AssetStatus tells whether an asset is deployed, on the shelf or gone.
type AssetStatus string

const (
	AssetInUse   AssetStatus = "in-use"
	AssetStock   AssetStatus = "stock"
	AssetRetired AssetStatus = "retired"
)

var AssetStatuses = []AssetStatus{AssetInUse, AssetStock, AssetRetired}

func (s AssetStatus) Valid() bool {
	switch s {
	case AssetInUse, AssetStock, AssetRetired:
		return true
	}
	return false
}

func ParseAssetStatus(s string) (AssetStatus, error) {
	return parseEnum("status", s, AssetStatuses)
}

func (s AssetStatus) Value() (driver.Value, error) { return enumValue(s) }

func (s *AssetStatus) Scan(src interface{}) error { return scanEnum(s, src) }

// enum is satisfied by every closed vocabulary type above.
type enum interface {
	~string
	Valid() bool
}

func parseEnum[T enum](field, raw string, all []T) (T, error) {
	v := T(raw)
	if !v.Valid() {
		var zero T
		return zero, &ValidationError{
			Kind:    InvalidEnumValue,
			Field:   field,
			Value:   raw,
			Allowed: tokens(all),
		}
	}
	return v, nil
}

func enumValue[T enum](v T) (driver.Value, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("models: %q is not a valid %T", string(v), v)
	}
	return string(v), nil
}

// scanEnum rejects tokens outside the closed set so a bad row never
// reaches a response.
func scanEnum[T enum](dst *T, src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		return fmt.Errorf("models: cannot scan NULL into %T", *dst)
	default:
		return fmt.Errorf("models: cannot scan %T into %T", src, *dst)
	}
	t := T(s)
	if !t.Valid() {
		return fmt.Errorf("models: %q is not a valid %T", s, t)
	}
	*dst = t
	return nil
}

func tokens[T ~string](all []T) []string {
	out := make([]string, len(all))
	for i, v := range all {
		out[i] = string(v)
	}
	return out
}
