package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/craftplan/craftplan/internal/domain"
)

// Books defines the interface for recipe book persistence
type Books interface {
	// Save inserts a new book or replaces the definitions of an existing one
	// (matched by ID). It returns the stored record with server-side fields
	// (ID, timestamps) filled in.
	Save(ctx context.Context, record *domain.RecipeBookRecord) (*domain.RecipeBookRecord, error)

	// Get returns the book with the given ID, or domain.ErrBookNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.RecipeBookRecord, error)

	// GetByName returns the book with the given name, or domain.ErrBookNotFound.
	GetByName(ctx context.Context, name string) (*domain.RecipeBookRecord, error)

	// List returns summaries of all stored books ordered by name.
	List(ctx context.Context) ([]domain.RecipeBookSummary, error)

	// Delete removes the book with the given ID, or returns
	// domain.ErrBookNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
