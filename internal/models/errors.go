package models

import (
	"fmt"
	"strings"
)

// ValidationKind classifies why an input was rejected.
type ValidationKind string

const (
	MissingField     ValidationKind = "MISSING_FIELD"
	InvalidEnumValue ValidationKind = "INVALID_ENUM_VALUE"
	InvalidType      ValidationKind = "INVALID_TYPE"
)

// ValidationError is returned when request input is missing a required
// field, carries a token outside a closed vocabulary, or holds a JSON value
// of the wrong type.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Value   string
	Allowed []string

	// JSONType is the kind of JSON value received ("number", "array", ...)
	// when the body did not carry a string at all.
	JSONType string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("%s is required", e.Field)
	case InvalidEnumValue:
		if e.JSONType != "" {
			return fmt.Sprintf("%s must be one of %s, got %s", e.Field, strings.Join(e.Allowed, ", "), e.JSONType)
		}
		return fmt.Sprintf("%s must be one of %s, got %q", e.Field, strings.Join(e.Allowed, ", "), e.Value)
	case InvalidType:
		return fmt.Sprintf("%s must be a string, got %s", e.Field, e.JSONType)
	}
	return fmt.Sprintf("invalid %s", e.Field)
}

// WrongType reports a JSON value of jsonType where a string was expected.
// A field with a closed vocabulary (allowed non-empty) is reported as an
// invalid enum value.
func WrongType(field, jsonType string, allowed []string) *ValidationError {
	if len(allowed) > 0 {
		return &ValidationError{Kind: InvalidEnumValue, Field: field, Allowed: allowed, JSONType: jsonType}
	}
	return &ValidationError{Kind: InvalidType, Field: field, JSONType: jsonType}
}

func missingField(field string) *ValidationError {
	return &ValidationError{Kind: MissingField, Field: field}
}
