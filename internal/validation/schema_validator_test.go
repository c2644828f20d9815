package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	validator := NewSchemaValidator()

	tmpDir := t.TempDir()

	schemaPath := filepath.Join(tmpDir, "test.schema.json")
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"name": {
				"type": "string"
			},
			"quantity": {
				"type": "integer",
				"minimum": 1
			}
		},
		"required": ["name"]
	}`
	if err := os.WriteFile(schemaPath, []byte(schemaContent), 0644); err != nil {
		t.Fatalf("Failed to write schema file: %v", err)
	}

	tests := []struct {
		name      string
		data      string
		wantError bool
	}{
		{
			name:      "valid data",
			data:      `{"name": "stick", "quantity": 4}`,
			wantError: false,
		},
		{
			name:      "valid data without optional field",
			data:      `{"name": "plank"}`,
			wantError: false,
		},
		{
			name:      "missing required field",
			data:      `{"quantity": 2}`,
			wantError: true,
		},
		{
			name:      "wrong type for field",
			data:      `{"name": "stick", "quantity": "four"}`,
			wantError: true,
		},
		{
			name:      "below minimum",
			data:      `{"name": "stick", "quantity": 0}`,
			wantError: true,
		},
		{
			name:      "malformed JSON",
			data:      `{"name": `,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateBytes([]byte(tt.data), schemaPath)
			if tt.wantError && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestSchemaValidator_SchemaCaching(t *testing.T) {
	validator := NewSchemaValidator()

	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "cached.schema.json")
	if err := os.WriteFile(schemaPath, []byte(`{"type": "object"}`), 0644); err != nil {
		t.Fatalf("Failed to write schema file: %v", err)
	}

	if err := validator.ValidateBytes([]byte(`{}`), schemaPath); err != nil {
		t.Fatalf("first validation failed: %v", err)
	}

	// Schema is compiled once; removing the file must not break later calls.
	if err := os.Remove(schemaPath); err != nil {
		t.Fatalf("failed to remove schema: %v", err)
	}

	if err := validator.ValidateBytes([]byte(`{}`), schemaPath); err != nil {
		t.Fatalf("cached validation failed: %v", err)
	}
}

func TestSchemaValidator_MissingSchema(t *testing.T) {
	validator := NewSchemaValidator()

	err := validator.ValidateBytes([]byte(`{}`), "does/not/exist.schema.json")
	if err == nil {
		t.Fatal("expected error for missing schema")
	}
	if !strings.Contains(err.Error(), "failed to load schema") {
		t.Errorf("unexpected error: %v", err)
	}
}
