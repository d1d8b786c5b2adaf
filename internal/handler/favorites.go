package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/favorites"
)

// SaveFavoriteRequest stores a recipe as a favorite
type SaveFavoriteRequest struct {
	Recipe *domain.RecipeRecord `json:"recipe" validate:"required"`
}

// FavoriteResponse is a favorite with its recipe id
type FavoriteResponse struct {
	ID string `json:"id"`
	favorites.Favorite
}

func toFavoriteResponses(favs []favorites.Favorite) []FavoriteResponse {
	out := make([]FavoriteResponse, len(favs))
	for i, f := range favs {
		out[i] = FavoriteResponse{ID: f.ID(), Favorite: f}
	}
	return out
}

// HandleListFavorites returns the user's favorites, most recently saved first
// @Summary List favorites
// @Tags favorites
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {array} FavoriteResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/favorites [get]
func HandleListFavorites(svc favorites.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := RequireUserID(w, r)
		if !ok {
			return
		}

		favs, err := svc.List(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgFavoritesFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, toFavoriteResponses(favs))
	}
}

// HandleSaveFavorite upserts a favorite keyed by the recipe's resolved id
// @Summary Save favorite
// @Tags favorites
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param request body SaveFavoriteRequest true "Recipe to keep"
// @Success 201 {object} FavoriteResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/favorites [post]
func HandleSaveFavorite(svc favorites.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := RequireUserID(w, r)
		if !ok {
			return
		}

		var req SaveFavoriteRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Save favorite"); err != nil {
			return
		}

		fav, err := svc.Save(r.Context(), userID, *req.Recipe)
		if err != nil {
			respondServiceError(w, r, ErrMsgFavoritesFailed, err)
			return
		}
		respondJSON(w, http.StatusCreated, FavoriteResponse{ID: fav.ID(), Favorite: *fav})
	}
}

// HandleDeleteFavorite removes a favorite by recipe id
// @Summary Delete favorite
// @Tags favorites
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param id path string true "Recipe id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/favorites/{id} [delete]
func HandleDeleteFavorite(svc favorites.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := RequireUserID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, r, ErrMsgFavoritesFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFavoriteRemoved})
	}
}
