package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Recipe book construction errors
	ErrMsgDuplicateRecipe   = "duplicate recipe"
	ErrMsgMultiOutputRecipe = "recipe produces more than one item"
	ErrMsgEmptyRecipe       = "recipe has no output"

	// Quantity errors (construction- or resolution-time)
	ErrMsgInvalidQuantity = "quantity must be positive"

	// Resolution errors
	ErrMsgCyclicRecipe = "recipe cycle detected"

	// Persistence errors
	ErrMsgBookNotFound = "recipe book not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
	ErrMsgParseFailed  = "script parse failed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Recipe book construction errors
	ErrDuplicateRecipe   = errors.New(ErrMsgDuplicateRecipe)
	ErrMultiOutputRecipe = errors.New(ErrMsgMultiOutputRecipe)
	ErrEmptyRecipe       = errors.New(ErrMsgEmptyRecipe)

	// Quantity errors
	ErrInvalidQuantity = errors.New(ErrMsgInvalidQuantity)

	// Resolution errors
	ErrCyclicRecipe = errors.New(ErrMsgCyclicRecipe)

	// Persistence errors
	ErrBookNotFound = errors.New(ErrMsgBookNotFound)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
	ErrParseFailed  = errors.New(ErrMsgParseFailed)
)
