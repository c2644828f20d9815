package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Recipe book queries
const (
	querySaveBook = `
		INSERT INTO recipe_books (book_id, name, definitions)
		VALUES ($1, $2, $3)
		ON CONFLICT (book_id) DO UPDATE
		SET name = EXCLUDED.name,
		    definitions = EXCLUDED.definitions,
		    updated_at = NOW()
		RETURNING book_id, name, definitions, created_at, updated_at`

	queryGetBook = `
		SELECT book_id, name, definitions, created_at, updated_at
		FROM recipe_books
		WHERE book_id = $1`

	queryGetBookByName = `
		SELECT book_id, name, definitions, created_at, updated_at
		FROM recipe_books
		WHERE name = $1`

	queryListBooks = `
		SELECT book_id, name, jsonb_array_length(definitions), updated_at
		FROM recipe_books
		ORDER BY name`

	queryDeleteBook = `
		DELETE FROM recipe_books
		WHERE book_id = $1`
)
