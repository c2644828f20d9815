package domain

import "time"

// RecipeBookRecord is a saved recipe book as persisted by the repository.
// Definitions are stored raw (pre-validation shape) so a record edited by the
// user round-trips exactly; the book is re-validated on every load.
type RecipeBookRecord struct {
	ID          string      `json:"book_id"`
	Name        string      `json:"name"`
	Definitions []RecipeDef `json:"definitions"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at,omitempty"`
}

// RecipeBookSummary is the listing shape: identity and size, without the
// definition payload.
type RecipeBookSummary struct {
	ID          string    `json:"book_id"`
	Name        string    `json:"name"`
	RecipeCount int       `json:"recipe_count"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
