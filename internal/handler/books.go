package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/craftplan/craftplan/internal/domain"
	"github.com/craftplan/craftplan/internal/planner"
	"github.com/craftplan/craftplan/internal/recipe"
	"github.com/craftplan/craftplan/internal/repository"
)

// BooksHandler serves stored recipe book CRUD and plan-by-book resolution
type BooksHandler struct {
	repo    repository.Books
	planSvc planner.Service
}

// NewBooksHandler creates a new BooksHandler
func NewBooksHandler(repo repository.Books, planSvc planner.Service) *BooksHandler {
	return &BooksHandler{repo: repo, planSvc: planSvc}
}

// SaveBookRequest is the JSON body for creating or updating a recipe book
type SaveBookRequest struct {
	Name    string             `json:"name" validate:"required,min=1,max=100"`
	Recipes []domain.RecipeDef `json:"recipes" validate:"required,min=1"`
}

// BookPlanRequest is the JSON body for resolving targets against a stored book
type BookPlanRequest struct {
	Targets []domain.Stack `json:"targets" validate:"required,min=1"`
	Stock   []domain.Stack `json:"stock,omitempty"`
}

// HandleSaveBook creates a new stored recipe book
// @Summary Save a recipe book
// @Description Validates the definitions and stores them under the given name
// @Tags books
// @Accept json
// @Produce json
// @Param request body SaveBookRequest true "Book name and recipe definitions"
// @Success 201 {object} domain.RecipeBookRecord
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/books [post]
func (h *BooksHandler) HandleSaveBook(w http.ResponseWriter, r *http.Request) {
	var req SaveBookRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save book"); err != nil {
		return
	}

	// Reject definitions a later plan call could not use.
	if _, err := recipe.NewBook(req.Recipes); err != nil {
		respondServiceError(w, r, "Validate recipe book", err)
		return
	}

	record, err := h.repo.Save(r.Context(), &domain.RecipeBookRecord{
		Name:        req.Name,
		Definitions: req.Recipes,
	})
	if err != nil {
		respondServiceError(w, r, "Save recipe book", err)
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// HandleUpdateBook replaces the definitions of an existing book
// @Summary Update a recipe book
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param request body SaveBookRequest true "Book name and recipe definitions"
// @Success 200 {object} domain.RecipeBookRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/books/{id} [put]
func (h *BooksHandler) HandleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	var req SaveBookRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update book"); err != nil {
		return
	}

	if _, err := recipe.NewBook(req.Recipes); err != nil {
		respondServiceError(w, r, "Validate recipe book", err)
		return
	}

	// Save upserts by ID; require existence first so PUT cannot mint rows.
	if _, err := h.repo.Get(r.Context(), id); err != nil {
		respondServiceError(w, r, "Update recipe book", err)
		return
	}

	record, err := h.repo.Save(r.Context(), &domain.RecipeBookRecord{
		ID:          id.String(),
		Name:        req.Name,
		Definitions: req.Recipes,
	})
	if err != nil {
		respondServiceError(w, r, "Update recipe book", err)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// HandleGetBook returns a stored recipe book
// @Summary Get a recipe book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} domain.RecipeBookRecord
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/books/{id} [get]
func (h *BooksHandler) HandleGetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	record, err := h.repo.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get recipe book", err)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// HandleListBooks lists stored recipe books
// @Summary List recipe books
// @Tags books
// @Produce json
// @Success 200 {array} domain.RecipeBookSummary
// @Router /api/v1/books [get]
func (h *BooksHandler) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.repo.List(r.Context())
	if err != nil {
		respondServiceError(w, r, "List recipe books", err)
		return
	}
	if summaries == nil {
		summaries = []domain.RecipeBookSummary{}
	}

	respondJSON(w, http.StatusOK, summaries)
}

// HandleDeleteBook removes a stored recipe book
// @Summary Delete a recipe book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/books/{id} [delete]
func (h *BooksHandler) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, "Delete recipe book", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Recipe book deleted"})
}

// HandlePlanBook resolves targets against a stored recipe book
// @Summary Resolve a crafting plan against a stored book
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param request body BookPlanRequest true "Targets and optional stock"
// @Success 200 {object} domain.Plan
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} CycleErrorResponse
// @Router /api/v1/books/{id}/plan [post]
func (h *BooksHandler) HandlePlanBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	var req BookPlanRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plan book"); err != nil {
		return
	}

	record, err := h.repo.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get recipe book", err)
		return
	}

	book, err := recipe.NewBook(record.Definitions)
	if err != nil {
		// Stored definitions were validated on save; failure here means the
		// row was edited out of band.
		respondServiceError(w, r, "Build recipe book", err)
		return
	}

	plan, err := h.planSvc.Plan(r.Context(), book, planner.Request{
		Targets: req.Targets,
		Stock:   req.Stock,
	})
	if err != nil {
		respondPlanError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

func (h *BooksHandler) bookID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidBookID)
		return uuid.Nil, false
	}
	return id, true
}
