package config

const (
	// Configuration file paths
	ConfigPathRecipesDir  = "configs/recipes/"
	ConfigPathExampleBook = "configs/recipes/example_book.json"
	ConfigPathBookSchema  = "configs/schemas/recipe_book.schema.json"

	// Plan cache defaults
	DefaultPlanCacheSize = 512
	DefaultPlanCacheTTL  = "10m"
)
