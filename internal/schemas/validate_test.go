package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bordenet/pr-faq-assistant/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Ada", "age": 36}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"age": 36}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Ada", "age": "old"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "age", validationErr.Errors[0].Field)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Ada"}`)

	err := ValidateJSON(filepath.Join(dir, "missing.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	malformed := writeFile(t, dir, "malformed.json", "{ invalid json }")

	assert.Error(t, ValidateJSON(schemaPath, malformed))
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "test"}`))

	err := ValidateJSONString(personSchema, `{"age": 30}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. age: must be a number")
}

func TestEmbedded_Unknown(t *testing.T) {
	_, err := Embedded("nope.schema.json")
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateEmbedded_Backup(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{
			name: "canonical project",
			json: `{"version": 1, "exportDate": "2026-01-01T00:00:00Z", "projectCount": 1, "projects": [
				{"id": "6f1c2a9e-3b1d-4c5e-9a7f-0d2b8e4c1a33", "name": "Widget", "currentPhase": 2, "phases": [{"phase": 1, "response": "draft"}]}
			]}`,
		},
		{
			name: "legacy project",
			json: `{"version": 1, "projects": [{"id": "6f1c2a9e-3b1d-4c5e-9a7f-0d2b8e4c1a33", "name": "Widget", "phase1_output": "draft"}]}`,
		},
		{
			name:    "id is not a uuid",
			json:    `{"version": 1, "projects": [{"id": "a1", "name": "W"}]}`,
			wantErr: true,
		},
		{
			name:    "missing projects",
			json:    `{"version": 1}`,
			wantErr: true,
		},
		{
			name:    "project without name",
			json:    `{"version": 1, "projects": [{"id": "6f1c2a9e-3b1d-4c5e-9a7f-0d2b8e4c1a33"}]}`,
			wantErr: true,
		},
		{
			name:    "phase out of range",
			json:    `{"version": 1, "projects": [{"id": "6f1c2a9e-3b1d-4c5e-9a7f-0d2b8e4c1a33", "name": "W", "currentPhase": 9}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmbedded(BackupSchema, []byte(tt.json))
			if tt.wantErr {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmbedded_ValidationResult(t *testing.T) {
	docs := []string{
		"",
		"# Acme Launches Widget\n\nSEATTLE, WA - January 5, 2026 - Acme today announced Widget.\n\n## FAQ\n\n**Q: What is it?**\n**A:** A widget.",
	}
	for _, doc := range docs {
		data, err := json.Marshal(validator.ValidatePRFAQ(doc))
		require.NoError(t, err)
		assert.NoError(t, ValidateEmbedded(ValidationResultSchema, data))
	}

	err := ValidateEmbedded(ValidationResultSchema, []byte(`{"totalScore": 140}`))
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
