package handler

import (
	"errors"
	"net/http"

	"github.com/craftplan/craftplan/internal/domain"
	"github.com/craftplan/craftplan/internal/recipe"
)

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequest      = "Invalid request format"
	ErrMsgInvalidRequestInput = "Invalid request. Please check your inputs."
	ErrMsgMissingQueryParam   = "Missing required query parameter: %s"
	ErrMsgInvalidBookID       = "Invalid book ID"

	// Planning messages
	ErrMsgCyclicRecipeError   = "Recipes form a cycle; crafting this item would never finish"
	ErrMsgInvalidQuantityErr  = "Quantities must be positive"
	ErrMsgDuplicateRecipeErr  = "Two recipes produce the same item"
	ErrMsgMultiOutputError    = "A recipe lists more than one output item"
	ErrMsgEmptyRecipeError    = "A recipe has no output"
	ErrMsgScriptParseError    = "Could not parse the recipe script"
	ErrMsgInvalidConfigError  = "Recipe book definitions are invalid"
	ErrMsgBookNotFoundError   = "Recipe book not found"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrBookNotFound):
		return http.StatusNotFound, ErrMsgBookNotFoundError
	case errors.Is(err, domain.ErrCyclicRecipe):
		return http.StatusUnprocessableEntity, ErrMsgCyclicRecipeError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityErr
	case errors.Is(err, domain.ErrDuplicateRecipe):
		return http.StatusBadRequest, ErrMsgDuplicateRecipeErr
	case errors.Is(err, domain.ErrMultiOutputRecipe):
		return http.StatusBadRequest, ErrMsgMultiOutputError
	case errors.Is(err, domain.ErrEmptyRecipe):
		return http.StatusBadRequest, ErrMsgEmptyRecipeError
	case errors.Is(err, domain.ErrParseFailed):
		return http.StatusBadRequest, ErrMsgScriptParseError
	case errors.Is(err, recipe.ErrInvalidConfig):
		return http.StatusBadRequest, ErrMsgInvalidConfigError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestInput
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
