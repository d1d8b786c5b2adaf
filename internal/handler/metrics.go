package handler

import (
	"net/http"

	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/stats"
)

// ArchiveResponse lists archived weekly snapshots, oldest first
type ArchiveResponse struct {
	Weeks []domain.MetricsSnapshot `json:"weeks"`
}

// HandleGetMetrics returns the current week's snapshot, rolling over a stale one first
// @Summary Current weekly metrics
// @Tags metrics
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} domain.MetricsSnapshot
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/metrics [get]
func HandleGetMetrics(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := RequireUserID(w, r)
		if !ok {
			return
		}

		snap, err := svc.GetCurrentMetrics(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetMetricsFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, snap)
	}
}

// HandleGetMetricsHistory returns the archived weeks
// @Summary Archived weekly metrics
// @Tags metrics
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} ArchiveResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/metrics/history [get]
func HandleGetMetricsHistory(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := RequireUserID(w, r)
		if !ok {
			return
		}

		archive, err := svc.GetArchive(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetMetricsFailed, err)
			return
		}
		if archive == nil {
			archive = []domain.MetricsSnapshot{}
		}
		respondJSON(w, http.StatusOK, ArchiveResponse{Weeks: archive})
	}
}

// HandleResetMetrics zeroes the current week's counters
// @Summary Reset weekly metrics
// @Tags metrics
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} domain.MetricsSnapshot
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/metrics/reset [post]
func HandleResetMetrics(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := RequireUserID(w, r)
		if !ok {
			return
		}

		snap, err := svc.ResetMetrics(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgResetMetricsFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, snap)
	}
}
