package handler

import (
	"net/http"

	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/generator"
	"github.com/platify/platify-core/internal/history"
	"github.com/platify/platify-core/internal/identity"
	"github.com/platify/platify-core/internal/logger"
	"github.com/platify/platify-core/internal/stats"
)

// GeneratedRecipe is a stored recipe together with the id it resolves to
type GeneratedRecipe struct {
	domain.RecipeRecord
	RecipeID string `json:"recipeId"`
}

// GenerateResponse is returned by the generate endpoint. Metrics is nil when
// the generation count could not be recorded.
type GenerateResponse struct {
	Recipes []GeneratedRecipe       `json:"recipes"`
	Metrics *domain.MetricsSnapshot `json:"metrics,omitempty"`
}

// CompleteRecipeRequest marks a recipe as cooked
type CompleteRecipeRequest struct {
	Recipe *domain.RecipeRecord `json:"recipe" validate:"required"`
}

// CompleteRecipeResponse wraps the completion outcome
type CompleteRecipeResponse struct {
	Message string `json:"message"`
	stats.CompletionResult
}

// RecipeHandler serves recipe generation and completion
type RecipeHandler struct {
	generator generator.Service
	history   history.Service
	stats     stats.Service
}

// NewRecipeHandler creates a RecipeHandler
func NewRecipeHandler(gen generator.Service, hist history.Service, statsSvc stats.Service) *RecipeHandler {
	return &RecipeHandler{generator: gen, history: hist, stats: statsSvc}
}

// HandleGenerate asks the model for recipes, stores them in the user's history
// and counts them in the current week.
// @Summary Generate recipes
// @Description Generate three recipes from the given ingredients and append them to the history
// @Tags recipes
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param request body generator.Request true "Generation request"
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/recipes/generate [post]
func (h *RecipeHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	var req generator.Request
	if err := decodeJSON(r, w, &req, "Generate recipes"); err != nil {
		return
	}
	req.Normalize()
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return
	}

	ctx := r.Context()
	recipes, err := h.generator.Generate(ctx, req)
	if err != nil {
		respondServiceError(w, r, ErrMsgGenerateFailed, err)
		return
	}

	stored, err := h.history.Append(ctx, userID, recipes)
	if err != nil {
		respondServiceError(w, r, ErrMsgGenerateFailed, err)
		return
	}

	resp := GenerateResponse{Recipes: make([]GeneratedRecipe, len(stored))}
	for i, rec := range stored {
		resp.Recipes[i] = GeneratedRecipe{RecipeRecord: rec, RecipeID: identity.ResolveID(rec)}
	}

	snap, err := h.stats.RecordGeneration(ctx, userID, len(stored))
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgMetricsAfterAppend, "error", err)
	} else {
		resp.Metrics = snap
	}

	respondJSON(w, http.StatusOK, resp)
}

// HandleComplete records that the user cooked a recipe
// @Summary Complete recipe
// @Description Credit a recipe completion once per recipe id and mark it in the history
// @Tags recipes
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param request body CompleteRecipeRequest true "Completed recipe"
// @Success 200 {object} CompleteRecipeResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/recipes/complete [post]
func (h *RecipeHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	var req CompleteRecipeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete recipe"); err != nil {
		return
	}

	result, err := h.stats.RecordCompletion(r.Context(), userID, *req.Recipe)
	if err != nil {
		respondServiceError(w, r, ErrMsgCompleteFailed, err)
		return
	}

	msg := MsgCompletionRecorded
	if result.AlreadyCompleted {
		msg = MsgAlreadyCompleted
	}
	respondJSON(w, http.StatusOK, CompleteRecipeResponse{Message: msg, CompletionResult: *result})
}
