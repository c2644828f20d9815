package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/craftplan/craftplan/internal/domain"
)

// BooksRepository implements the recipe book repository for PostgreSQL
type BooksRepository struct {
	db *pgxpool.Pool
}

// NewBooksRepository creates a new BooksRepository
func NewBooksRepository(db *pgxpool.Pool) *BooksRepository {
	return &BooksRepository{db: db}
}

// Save inserts or replaces a recipe book. A zero-valued ID means insert;
// otherwise the row is upserted by ID so definitions can be replaced in place.
func (r *BooksRepository) Save(ctx context.Context, record *domain.RecipeBookRecord) (*domain.RecipeBookRecord, error) {
	definitions, err := json.Marshal(record.Definitions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal definitions: %w", err)
	}

	id := record.ID
	if id == "" {
		id = uuid.New().String()
	}

	stored := &domain.RecipeBookRecord{}
	var raw []byte
	err = r.db.QueryRow(ctx, querySaveBook, id, record.Name, definitions).
		Scan(&stored.ID, &stored.Name, &raw, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return nil, fmt.Errorf("%w: name %q already in use", domain.ErrInvalidInput, record.Name)
		}
		return nil, fmt.Errorf("failed to save recipe book: %w", err)
	}

	if err := json.Unmarshal(raw, &stored.Definitions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal definitions: %w", err)
	}
	return stored, nil
}

// Get retrieves a recipe book by ID
func (r *BooksRepository) Get(ctx context.Context, id uuid.UUID) (*domain.RecipeBookRecord, error) {
	return r.scanBook(r.db.QueryRow(ctx, queryGetBook, id))
}

// GetByName retrieves a recipe book by its unique name
func (r *BooksRepository) GetByName(ctx context.Context, name string) (*domain.RecipeBookRecord, error) {
	return r.scanBook(r.db.QueryRow(ctx, queryGetBookByName, name))
}

func (r *BooksRepository) scanBook(row pgx.Row) (*domain.RecipeBookRecord, error) {
	record := &domain.RecipeBookRecord{}
	var raw []byte

	err := row.Scan(&record.ID, &record.Name, &raw, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get recipe book: %w", err)
	}

	if err := json.Unmarshal(raw, &record.Definitions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal definitions: %w", err)
	}
	return record, nil
}

// List returns summaries of all stored books ordered by name
func (r *BooksRepository) List(ctx context.Context) ([]domain.RecipeBookSummary, error) {
	rows, err := r.db.Query(ctx, queryListBooks)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe books: %w", err)
	}
	defer rows.Close()

	var summaries []domain.RecipeBookSummary
	for rows.Next() {
		var s domain.RecipeBookSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.RecipeCount, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe book summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list recipe books: %w", err)
	}

	return summaries, nil
}

// Delete removes a recipe book by ID
func (r *BooksRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, queryDeleteBook, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}
