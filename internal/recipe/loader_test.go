package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftplan/craftplan/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderLoadExampleBook(t *testing.T) {
	loader := NewLoader()

	config, err := loader.Load(filepath.Join("..", "..", "configs", "recipes", "example_book.json"))
	require.NoError(t, err)

	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, "starter-tools", config.Name)
	assert.Len(t, config.Recipes, 4)

	book, err := loader.Build(config)
	require.NoError(t, err)
	assert.Equal(t, 4, book.Len())
	assert.True(t, book.Has("diamond shovel"))
}

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader()

	path := writeConfig(t, `{
		"version": "1.0",
		"name": "test-book",
		"recipes": [
			{
				"outputs": [{"item": "stick", "quantity": 4}],
				"inputs": [{"item": "plank", "quantity": 2}]
			}
		]
	}`)

	config, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, config.Recipes, 1)
	assert.Equal(t, "stick", config.Recipes[0].Outputs[0].Item)
}

func TestLoaderLoadMissingFile(t *testing.T) {
	loader := NewLoader()

	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoaderLoadSchemaViolations(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing name",
			content: `{"version": "1.0", "recipes": [{"outputs": [{"item": "x", "quantity": 1}]}]}`,
		},
		{
			name:    "empty recipes",
			content: `{"version": "1.0", "name": "b", "recipes": []}`,
		},
		{
			name:    "zero quantity",
			content: `{"version": "1.0", "name": "b", "recipes": [{"outputs": [{"item": "x", "quantity": 0}]}]}`,
		},
		{
			name:    "bad version format",
			content: `{"version": "one", "name": "b", "recipes": [{"outputs": [{"item": "x", "quantity": 1}]}]}`,
		},
		{
			name:    "unknown field",
			content: `{"version": "1.0", "name": "b", "yield": 2, "recipes": [{"outputs": [{"item": "x", "quantity": 1}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestLoaderBuild(t *testing.T) {
	loader := NewLoader()

	t.Run("nil config", func(t *testing.T) {
		_, err := loader.Build(nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("no recipes", func(t *testing.T) {
		_, err := loader.Build(&Config{Version: "1.0", Name: "b"})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("definition errors surface", func(t *testing.T) {
		_, err := loader.Build(&Config{
			Version: "1.0",
			Name:    "b",
			Recipes: []domain.RecipeDef{
				def("plank", 4, stack("log", 1)),
				def("plank", 2, stack("log", 1)),
			},
		})
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.ErrorIs(t, err, domain.ErrDuplicateRecipe)
	})
}
