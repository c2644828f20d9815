package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/craftplan/craftplan/internal/domain"
	"github.com/craftplan/craftplan/internal/validation"
)

// Sentinel errors for the recipe config loader
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Schema paths
const (
	BookSchemaPath = "configs/schemas/recipe_book.schema.json"
)

// Config represents the JSON configuration for a recipe book
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Name        string `json:"name"`

	Recipes []domain.RecipeDef `json:"recipes"`
}

// Loader handles loading and validating recipe book configuration files
type Loader interface {
	Load(path string) (*Config, error)
	Build(config *Config) (*Book, error)
}

type bookLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &bookLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses a recipe book JSON file
func (l *bookLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Validate against schema first
	if err := l.schemaValidator.ValidateBytes(data, BookSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// Build validates the loaded definitions and constructs the book
func (l *bookLoader) Build(config *Config) (*Book, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if len(config.Recipes) == 0 {
		return nil, fmt.Errorf("%w: no recipes defined", ErrInvalidConfig)
	}

	book, err := NewBook(config.Recipes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return book, nil
}
