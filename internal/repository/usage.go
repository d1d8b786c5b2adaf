package repository

import (
	"context"

	"github.com/platify/platify-core/internal/domain"
)

// Usage defines persistence for the per-user recipe history, the current metrics
// snapshot, the archived snapshots and the completed-recipe set.
//
// Loads never fail on corrupt data: a value that cannot be decoded is reported as absent.
type Usage interface {
	LoadHistory(ctx context.Context, userID string) ([]domain.RecipeRecord, error)
	// LoadSnapshot returns nil when the user has no current snapshot
	LoadSnapshot(ctx context.Context, userID string) (*domain.MetricsSnapshot, error)
	LoadArchive(ctx context.Context, userID string) ([]domain.MetricsSnapshot, error)
	LoadCompleted(ctx context.Context, userID string) (domain.CompletedSet, error)
	// Save persists every value set on w in one all-or-nothing write
	Save(ctx context.Context, userID string, w *UsageWrite) error
	// ListUsers returns every user that has any persisted usage state
	ListUsers(ctx context.Context) ([]string, error)
}

// UsageWrite collects the values one operation changes. Unset values are left untouched.
type UsageWrite struct {
	history   []domain.RecipeRecord
	snapshot  *domain.MetricsSnapshot
	archive   []domain.MetricsSnapshot
	completed domain.CompletedSet

	hasHistory bool
	hasArchive bool
}

// NewUsageWrite returns an empty write
func NewUsageWrite() *UsageWrite {
	return &UsageWrite{}
}

// SetHistory replaces the history log
func (w *UsageWrite) SetHistory(h []domain.RecipeRecord) *UsageWrite {
	if h == nil {
		h = []domain.RecipeRecord{}
	}
	w.history, w.hasHistory = h, true
	return w
}

// SetSnapshot replaces the current metrics snapshot
func (w *UsageWrite) SetSnapshot(s domain.MetricsSnapshot) *UsageWrite {
	w.snapshot = &s
	return w
}

// SetArchive replaces the archived snapshots
func (w *UsageWrite) SetArchive(a []domain.MetricsSnapshot) *UsageWrite {
	if a == nil {
		a = []domain.MetricsSnapshot{}
	}
	w.archive, w.hasArchive = a, true
	return w
}

// SetCompleted replaces the completed-recipe set
func (w *UsageWrite) SetCompleted(c domain.CompletedSet) *UsageWrite {
	if c == nil {
		c = domain.NewCompletedSet()
	}
	w.completed = c
	return w
}

// History returns the history to write and whether it was set
func (w *UsageWrite) History() ([]domain.RecipeRecord, bool) { return w.history, w.hasHistory }

// Snapshot returns the snapshot to write, or nil
func (w *UsageWrite) Snapshot() *domain.MetricsSnapshot { return w.snapshot }

// Archive returns the archive to write and whether it was set
func (w *UsageWrite) Archive() ([]domain.MetricsSnapshot, bool) { return w.archive, w.hasArchive }

// Completed returns the completed set to write, or nil
func (w *UsageWrite) Completed() domain.CompletedSet { return w.completed }

// IsEmpty reports whether nothing was set
func (w *UsageWrite) IsEmpty() bool {
	return w == nil || (!w.hasHistory && w.snapshot == nil && !w.hasArchive && w.completed == nil)
}
