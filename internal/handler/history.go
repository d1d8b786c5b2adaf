package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/history"
)

// HistoryResponse lists the recipe history, newest first
type HistoryResponse struct {
	Recipes []domain.RecipeRecord `json:"recipes"`
	Count   int                   `json:"count"`
}

// HandleGetHistory returns the user's recipe history
// @Summary Recipe history
// @Tags history
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} HistoryResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/history [get]
func HandleGetHistory(svc history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := RequireUserID(w, r)
		if !ok {
			return
		}

		log, err := svc.List(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetHistoryFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, HistoryResponse{Recipes: log, Count: len(log)})
	}
}

// HandleGetHistoryWeeks returns the history grouped by week, newest week first
// @Summary Recipe history by week
// @Tags history
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {array} history.WeekGroup
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/history/weeks [get]
func HandleGetHistoryWeeks(svc history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := RequireUserID(w, r)
		if !ok {
			return
		}

		weeks, err := svc.Weeks(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetHistoryFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, weeks)
	}
}

// HandleDeleteHistoryEntry removes one entry by position. Indices past the end
// of the log are ignored.
// @Summary Delete history entry
// @Tags history
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param index path int true "Position in the newest-first log"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/history/{index} [delete]
func HandleDeleteHistoryEntry(svc history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := RequireUserID(w, r)
		if !ok {
			return
		}

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidIndex)
			return
		}

		if err := svc.Remove(r.Context(), userID, index); err != nil {
			respondServiceError(w, r, ErrMsgDeleteHistoryFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgHistoryEntryRemoved})
	}
}

// HandleDeleteHistoryRecipe removes the first entry resolving to the given recipe id
// @Summary Delete history entry by recipe id
// @Tags history
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param id path string true "Recipe id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/history/recipes/{id} [delete]
func HandleDeleteHistoryRecipe(svc history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := RequireUserID(w, r)
		if !ok {
			return
		}

		found, err := svc.RemoveByID(r.Context(), userID, chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, ErrMsgDeleteHistoryFailed, err)
			return
		}
		if !found {
			respondServiceError(w, r, ErrMsgDeleteHistoryFailed, domain.ErrRecipeNotFound)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgHistoryEntryRemoved})
	}
}

// HandleClearHistory empties the user's history
// @Summary Clear history
// @Tags history
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/history [delete]
func HandleClearHistory(svc history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := RequireUserID(w, r)
		if !ok {
			return
		}

		if err := svc.Clear(r.Context(), userID); err != nil {
			respondServiceError(w, r, ErrMsgClearHistoryFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgHistoryCleared})
	}
}
