package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platify/platify-core/internal/ingredients"
)

func TestHandleGetIngredients(t *testing.T) {
	catalog := ingredients.Default()
	handler := HandleGetIngredients(catalog)

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		check          func(t *testing.T, resp IngredientsResponse)
	}{
		{
			name:           "All ingredients",
			target:         "/api/v1/ingredients",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp IngredientsResponse) {
				assert.Len(t, resp.Ingredients, len(catalog.All()))
				assert.Equal(t, catalog.Version(), resp.Version)
			},
		},
		{
			name:           "Case-insensitive search",
			target:         "/api/v1/ingredients?q=TOMA",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp IngredientsResponse) {
				require.NotEmpty(t, resp.Ingredients)
				for _, ing := range resp.Ingredients {
					assert.Contains(t, strings.ToLower(ing.Name), "toma")
				}
			},
		},
		{
			name:           "Category filter",
			target:         "/api/v1/ingredients?category=vegetables",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp IngredientsResponse) {
				require.NotEmpty(t, resp.Ingredients)
				for _, ing := range resp.Ingredients {
					assert.Equal(t, "vegetables", ing.Category)
				}
			},
		},
		{
			name:           "Search inside a category",
			target:         "/api/v1/ingredients?category=fruits&q=tomato",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp IngredientsResponse) {
				for _, ing := range resp.Ingredients {
					assert.Equal(t, "fruits", ing.Category)
				}
			},
		},
		{
			name:           "Unknown category",
			target:         "/api/v1/ingredients?category=minerals",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.check != nil {
				var resp IngredientsResponse
				decodeBody(t, w, &resp)
				tt.check(t, resp)
			}
		})
	}
}

func TestHandleGetCategories(t *testing.T) {
	w := httptest.NewRecorder()
	HandleGetCategories(ingredients.Default()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ingredients/categories", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var cats []ingredients.Category
	decodeBody(t, w, &cats)
	require.NotEmpty(t, cats)
	assert.Equal(t, "vegetables", cats[0].ID)
}
