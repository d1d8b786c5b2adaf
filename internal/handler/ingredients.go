package handler

import (
	"net/http"

	"github.com/platify/platify-core/internal/ingredients"
)

// IngredientsResponse is a filtered slice of the catalog
type IngredientsResponse struct {
	Version     string                   `json:"version"`
	Ingredients []ingredients.Ingredient `json:"ingredients"`
}

// HandleGetIngredients lists catalog ingredients, optionally restricted to one
// category and filtered by a case-insensitive name query.
// @Summary List ingredients
// @Tags ingredients
// @Produce json
// @Param q query string false "Name contains"
// @Param category query string false "Category id"
// @Success 200 {object} IngredientsResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/ingredients [get]
func HandleGetIngredients(catalog *ingredients.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := catalog.Search(GetOptionalQueryParam(r, "q", ""))

		if category := GetOptionalQueryParam(r, "category", ""); category != "" {
			if _, ok := catalog.ByCategory(category); !ok {
				respondError(w, http.StatusNotFound, ErrMsgUnknownCategory)
				return
			}
			filtered := make([]ingredients.Ingredient, 0, len(items))
			for _, ing := range items {
				if ing.Category == category {
					filtered = append(filtered, ing)
				}
			}
			items = filtered
		}

		respondJSON(w, http.StatusOK, IngredientsResponse{Version: catalog.Version(), Ingredients: items})
	}
}

// HandleGetCategories lists the catalog categories with their ingredients
// @Summary List ingredient categories
// @Tags ingredients
// @Produce json
// @Success 200 {array} ingredients.Category
// @Router /api/v1/ingredients/categories [get]
func HandleGetCategories(catalog *ingredients.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, catalog.Categories())
	}
}
