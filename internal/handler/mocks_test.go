package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/generator"
	"github.com/platify/platify-core/internal/history"
	"github.com/platify/platify-core/internal/stats"
)

const testUserID = "user-1"

// MockGenerator mocks the generator.Service interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req generator.Request) ([]domain.RecipeRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecipeRecord), args.Error(1)
}

// MockHistoryService mocks the history.Service interface
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) List(ctx context.Context, userID string) ([]domain.RecipeRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecipeRecord), args.Error(1)
}

func (m *MockHistoryService) Append(ctx context.Context, userID string, records []domain.RecipeRecord) ([]domain.RecipeRecord, error) {
	args := m.Called(ctx, userID, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecipeRecord), args.Error(1)
}

func (m *MockHistoryService) Remove(ctx context.Context, userID string, index int) error {
	args := m.Called(ctx, userID, index)
	return args.Error(0)
}

func (m *MockHistoryService) RemoveByID(ctx context.Context, userID, id string) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockHistoryService) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockHistoryService) Weeks(ctx context.Context, userID string) ([]history.WeekGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]history.WeekGroup), args.Error(1)
}

// MockStatsService mocks the stats.Service interface
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetCurrentMetrics(ctx context.Context, userID string) (*domain.MetricsSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetricsSnapshot), args.Error(1)
}

func (m *MockStatsService) GetArchive(ctx context.Context, userID string) ([]domain.MetricsSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MetricsSnapshot), args.Error(1)
}

func (m *MockStatsService) RecordGeneration(ctx context.Context, userID string, count int) (*domain.MetricsSnapshot, error) {
	args := m.Called(ctx, userID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetricsSnapshot), args.Error(1)
}

func (m *MockStatsService) RecordCompletion(ctx context.Context, userID string, record domain.RecipeRecord) (*stats.CompletionResult, error) {
	args := m.Called(ctx, userID, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.CompletionResult), args.Error(1)
}

func (m *MockStatsService) ResetMetrics(ctx context.Context, userID string) (*domain.MetricsSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetricsSnapshot), args.Error(1)
}

// newUserRequest builds a request carrying the user header and an optional JSON body
func newUserRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(HeaderUserID, testUserID)
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}
