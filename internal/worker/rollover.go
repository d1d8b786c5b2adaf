package worker

import (
	"context"
	"fmt"

	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/logger"
	"github.com/platify/platify-core/internal/user"
)

// MetricsReader performs the read that rolls a user's snapshot over to the current week
type MetricsReader interface {
	GetCurrentMetrics(ctx context.Context, userID string) (*domain.MetricsSnapshot, error)
}

// UserSource lists the users a sweep visits
type UserSource interface {
	ListUsers(ctx context.Context) ([]string, error)
}

type trackerSource struct {
	tracker *user.ActiveTracker
}

// TrackerSource lists the users recently seen by the API
func TrackerSource(t *user.ActiveTracker) UserSource {
	return trackerSource{tracker: t}
}

func (s trackerSource) ListUsers(context.Context) ([]string, error) {
	return s.tracker.Active(), nil
}

// RolloverSweepJob reads the current metrics of every user from its source so
// that stale snapshots are archived even when the user never asks for them.
// A failure for one user does not stop the sweep.
type RolloverSweepJob struct {
	name    string
	metrics MetricsReader
	users   UserSource
}

// NewRolloverSweepJob creates a sweep job
func NewRolloverSweepJob(name string, metrics MetricsReader, users UserSource) *RolloverSweepJob {
	return &RolloverSweepJob{name: name, metrics: metrics, users: users}
}

// Name implements Job
func (j *RolloverSweepJob) Name() string {
	return j.name
}

// Process implements Job
func (j *RolloverSweepJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ids, err := j.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgListUsersFailed, err)
	}
	log.Debug(LogMsgSweepStarting, "job", j.name, "users", len(ids))

	failed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		userCtx := logger.WithUserID(ctx, id)
		if _, err := j.metrics.GetCurrentMetrics(userCtx, id); err != nil {
			failed++
			logger.FromContext(userCtx).Warn(LogMsgSweepUserFailed, "job", j.name, "error", err)
		}
	}

	log.Debug(LogMsgSweepCompleted, "job", j.name, "users", len(ids), "failed", failed)
	if failed > 0 {
		return fmt.Errorf(ErrMsgSweepFailed, failed, len(ids))
	}
	return nil
}
