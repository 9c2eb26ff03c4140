package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProjectInputDefaults(t *testing.T) {
	fields, err := ValidateProjectInput(ProjectInput{Name: stringPtr("Migrate DB")})
	require.NoError(t, err)

	assert.Equal(t, "Migrate DB", fields.Name)
	assert.Equal(t, "", fields.Description)
	assert.Equal(t, ProjectPlanned, fields.Status)
}

func TestValidateProjectInputMissingName(t *testing.T) {
	tests := []struct {
		name string
		in   ProjectInput
	}{
		{name: "absent", in: ProjectInput{}},
		{name: "empty", in: ProjectInput{Name: stringPtr("")}},
		{name: "blank", in: ProjectInput{Name: stringPtr("   ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateProjectInput(tt.in)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, MissingField, verr.Kind)
			assert.Equal(t, "name", verr.Field)
			assert.Equal(t, "name is required", verr.Error())
		})
	}
}

func TestValidateProjectInputStatus(t *testing.T) {
	fields, err := ValidateProjectInput(ProjectInput{Name: stringPtr("x"), Status: stringPtr("done")})
	require.NoError(t, err)
	assert.Equal(t, ProjectDone, fields.Status)

	_, err = ValidateProjectInput(ProjectInput{Name: stringPtr("x"), Status: stringPtr("Done")})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, InvalidEnumValue, verr.Kind)
	assert.Equal(t, "status", verr.Field)
	assert.Equal(t, "Done", verr.Value)
	assert.Equal(t, []string{"planned", "active", "done"}, verr.Allowed)
}

func TestValidateTicketInput(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fields, err := ValidateTicketInput(TicketInput{Title: stringPtr("Printer jammed")})
		require.NoError(t, err)
		assert.Equal(t, TicketLow, fields.Priority)
		assert.Equal(t, TicketOpen, fields.Status)
		assert.Equal(t, "", fields.RequesterEmail)
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := ValidateTicketInput(TicketInput{Title: stringPtr(""), Priority: stringPtr("low")})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, MissingField, verr.Kind)
		assert.Equal(t, "title", verr.Field)
	})

	t.Run("bad priority", func(t *testing.T) {
		_, err := ValidateTicketInput(TicketInput{Title: stringPtr("x"), Priority: stringPtr("urgent")})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "priority", verr.Field)
	})

	t.Run("in-progress keeps its hyphen", func(t *testing.T) {
		fields, err := ValidateTicketInput(TicketInput{Title: stringPtr("x"), Status: stringPtr("in-progress")})
		require.NoError(t, err)
		assert.Equal(t, TicketInProgress, fields.Status)

		_, err = ValidateTicketInput(TicketInput{Title: stringPtr("x"), Status: stringPtr("in_progress")})
		assert.Error(t, err)
	})

	t.Run("email is not format checked", func(t *testing.T) {
		fields, err := ValidateTicketInput(TicketInput{Title: stringPtr("x"), RequesterEmail: stringPtr("not an email")})
		require.NoError(t, err)
		assert.Equal(t, "not an email", fields.RequesterEmail)
	})
}

func TestValidateAssetInput(t *testing.T) {
	fields, err := ValidateAssetInput(AssetInput{})
	require.NoError(t, err)
	assert.Equal(t, AssetFields{Type: AssetLaptop, Status: AssetStock}, fields)

	_, err = ValidateAssetInput(AssetInput{Type: stringPtr("drone")})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, InvalidEnumValue, verr.Kind)
	assert.Equal(t, "type", verr.Field)
	assert.Contains(t, verr.Error(), `got "drone"`)

	_, err = ValidateAssetInput(AssetInput{Status: stringPtr("lost")})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status", verr.Field)
}

func TestInputTreatsNullAsOmitted(t *testing.T) {
	var in AssetInput
	require.NoError(t, json.Unmarshal([]byte(`{"type":null,"serial":null,"status":"retired"}`), &in))

	fields, err := ValidateAssetInput(in)
	require.NoError(t, err)
	assert.Equal(t, AssetLaptop, fields.Type)
	assert.Equal(t, "", fields.Serial)
	assert.Equal(t, AssetRetired, fields.Status)
}

// Helper function to create string pointers
func stringPtr(s string) *string {
	return &s
}

func TestWrongType(t *testing.T) {
	var in TicketInput
	err := json.Unmarshal([]byte(`{"title":"x","priority":3}`), &in)
	require.Error(t, err)

	verr := WrongType("priority", "number", in.EnumTokens("priority"))
	assert.Equal(t, InvalidEnumValue, verr.Kind)
	assert.Equal(t, []string{"low", "medium", "high"}, verr.Allowed)
	assert.Equal(t, "priority must be one of low, medium, high, got number", verr.Error())

	verr = WrongType("title", "array", in.EnumTokens("title"))
	assert.Equal(t, InvalidType, verr.Kind)
	assert.Equal(t, "title must be a string, got array", verr.Error())
}

func TestEnumTokens(t *testing.T) {
	assert.Equal(t, []string{"planned", "active", "done"}, ProjectInput{}.EnumTokens("status"))
	assert.Nil(t, ProjectInput{}.EnumTokens("name"))
	assert.Equal(t, []string{"open", "in-progress", "resolved"}, TicketInput{}.EnumTokens("status"))
	assert.Equal(t, []string{"laptop", "monitor", "vm"}, AssetInput{}.EnumTokens("type"))
	assert.Nil(t, AssetInput{}.EnumTokens("serial"))
}
