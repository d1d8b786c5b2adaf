package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/platify/platify-core/internal/domain"
)

func TestHandleGetMetrics(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	snap := domain.NewMetricsSnapshot("2024-02", now)
	snap.RecipesGenerated = 6
	snap.TimeSavedMinutes = 50

	svc := &MockStatsService{}
	svc.On("GetCurrentMetrics", mock.Anything, testUserID).Return(&snap, nil)

	w := httptest.NewRecorder()
	HandleGetMetrics(svc).ServeHTTP(w, newUserRequest(t, http.MethodGet, "/api/v1/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"weekId":"2024-02"`)
	assert.Contains(t, w.Body.String(), `"timeSaved":50`)
	assert.Contains(t, w.Body.String(), `"recipesGenerated":6`)
	svc.AssertExpectations(t)
}

func TestHandleGetMetricsHistory(t *testing.T) {
	t.Run("Empty archive renders as an empty list", func(t *testing.T) {
		svc := &MockStatsService{}
		svc.On("GetArchive", mock.Anything, testUserID).Return(nil, nil)

		w := httptest.NewRecorder()
		HandleGetMetricsHistory(svc).ServeHTTP(w, newUserRequest(t, http.MethodGet, "/api/v1/metrics/history", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"weeks":[]}`, w.Body.String())
	})

	t.Run("Archived weeks", func(t *testing.T) {
		end := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
		week := domain.NewMetricsSnapshot("2024-01", end).Archived(end)
		svc := &MockStatsService{}
		svc.On("GetArchive", mock.Anything, testUserID).Return([]domain.MetricsSnapshot{week}, nil)

		w := httptest.NewRecorder()
		HandleGetMetricsHistory(svc).ServeHTTP(w, newUserRequest(t, http.MethodGet, "/api/v1/metrics/history", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp ArchiveResponse
		decodeBody(t, w, &resp)
		require.Len(t, resp.Weeks, 1)
		require.NotNil(t, resp.Weeks[0].EndDate)
		assert.True(t, end.Equal(*resp.Weeks[0].EndDate))
	})
}

func TestHandleResetMetrics(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		snap := domain.NewMetricsSnapshot("2024-02", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
		svc := &MockStatsService{}
		svc.On("ResetMetrics", mock.Anything, testUserID).Return(&snap, nil)

		w := httptest.NewRecorder()
		HandleResetMetrics(svc).ServeHTTP(w, newUserRequest(t, http.MethodPost, "/api/v1/metrics/reset", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"recipesCompleted":0`)
	})

	t.Run("Failure", func(t *testing.T) {
		svc := &MockStatsService{}
		svc.On("ResetMetrics", mock.Anything, testUserID).Return(nil, errors.New("write failed"))

		w := httptest.NewRecorder()
		HandleResetMetrics(svc).ServeHTTP(w, newUserRequest(t, http.MethodPost, "/api/v1/metrics/reset", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
