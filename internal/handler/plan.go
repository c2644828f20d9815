package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/craftplan/craftplan/internal/domain"
	"github.com/craftplan/craftplan/internal/planner"
	"github.com/craftplan/craftplan/internal/recipe"
)

// PlanHandler serves plan resolution over ad-hoc recipe definitions
type PlanHandler struct {
	service planner.Service
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(service planner.Service) *PlanHandler {
	return &PlanHandler{service: service}
}

// PlanRequest is the JSON body for ad-hoc plan resolution: the recipes to
// plan against, the targets wanted, and optional stock on hand.
type PlanRequest struct {
	Recipes []domain.RecipeDef `json:"recipes" validate:"required,min=1"`
	Targets []domain.Stack     `json:"targets" validate:"required,min=1"`
	Stock   []domain.Stack     `json:"stock,omitempty"`
}

// CycleErrorResponse reports a recipe cycle with one witness path
type CycleErrorResponse struct {
	Error string   `json:"error"`
	Cycle []string `json:"cycle"`
}

// HandlePlan resolves targets against recipes supplied in the request body
// @Summary Resolve a crafting plan
// @Description Computes total base and intermediate material quantities for the requested targets
// @Tags plan
// @Accept json
// @Produce json
// @Param request body PlanRequest true "Recipes, targets and optional stock"
// @Success 200 {object} domain.Plan
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} CycleErrorResponse
// @Router /api/v1/plan [post]
func (h *PlanHandler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plan"); err != nil {
		return
	}

	book, err := recipe.NewBook(req.Recipes)
	if err != nil {
		respondServiceError(w, r, "Build recipe book", err)
		return
	}

	plan, err := h.service.Plan(r.Context(), book, planner.Request{
		Targets: req.Targets,
		Stock:   req.Stock,
	})
	if err != nil {
		respondPlanError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// HandlePlanScript resolves a plain-text recipe script
// @Summary Resolve a crafting plan from a recipe script
// @Description Parses a need/have/recipes script and resolves its need entries
// @Tags plan
// @Accept plain
// @Produce json
// @Param script body string true "Recipe script"
// @Success 200 {object} domain.Plan
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} CycleErrorResponse
// @Router /api/v1/plan/script [post]
func (h *PlanHandler) HandlePlanScript(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}

	plan, err := h.service.PlanScript(r.Context(), string(body))
	if err != nil {
		respondPlanError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// respondPlanError writes the mapped error response, attaching the cycle
// witness path when resolution failed on a recipe cycle.
func respondPlanError(w http.ResponseWriter, r *http.Request, err error) {
	var cycleErr *planner.CycleError
	if errors.As(err, &cycleErr) {
		respondJSON(w, http.StatusUnprocessableEntity, CycleErrorResponse{
			Error: ErrMsgCyclicRecipeError,
			Cycle: cycleErr.Path,
		})
		return
	}
	respondServiceError(w, r, "Plan", err)
}
