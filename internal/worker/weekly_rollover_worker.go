package worker

import (
	"context"
	"time"

	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/logger"
)

// WeeklyRolloverWorker sweeps every stored user right after each Monday 00:00
// in its zone, so archives are written when the week turns.
type WeeklyRolloverWorker struct {
	BaseWorker
	job *RolloverSweepJob
	loc *time.Location
	now func() time.Time
}

// NewWeeklyRolloverWorker creates the worker. loc defaults to UTC.
func NewWeeklyRolloverWorker(metrics MetricsReader, users UserSource, loc *time.Location) *WeeklyRolloverWorker {
	if loc == nil {
		loc = time.UTC
	}
	w := &WeeklyRolloverWorker{
		job: NewRolloverSweepJob(JobNameWeeklyRollover, metrics, users),
		loc: loc,
		now: time.Now,
	}
	w.init()
	return w
}

// Start schedules the first rollover
func (w *WeeklyRolloverWorker) Start() {
	w.scheduleAt(nextWeekStart(w.now(), w.loc))
}

func (w *WeeklyRolloverWorker) scheduleAt(target time.Time) {
	duration := target.Sub(w.now())
	if duration < 0 {
		duration = 0
	}

	if w.schedule(duration, func() { w.fire(target) }) {
		logger.FromContext(context.Background()).Info(LogMsgWeeklyRolloverNext,
			"next_rollover", target.Format(time.RFC3339),
			"duration", duration.String())
	}
}

func (w *WeeklyRolloverWorker) fire(target time.Time) {
	select {
	case <-w.shutdown:
		return
	default:
	}

	// Timers can fire slightly early; the sweep must run in the new week
	if remaining := target.Sub(w.now()); remaining > earlyFireTolerance {
		logger.FromContext(context.Background()).Debug(LogMsgWeeklyRolloverEarly, "remaining", remaining.String())
		w.scheduleAt(target)
		return
	}

	w.runSweep()
	w.scheduleAt(nextWeekStart(target, w.loc))
}

// RunNow performs a sweep synchronously
func (w *WeeklyRolloverWorker) RunNow(ctx context.Context) error {
	return w.job.Process(ctx)
}

func (w *WeeklyRolloverWorker) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultJobTimeout)
	defer cancel()

	if err := w.job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWeeklyRolloverFailed, "error", err)
	}
}

// Shutdown cancels the pending timer and waits for a running sweep
func (w *WeeklyRolloverWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, "weekly rollover worker")
}

// nextWeekStart returns the next Monday 00:00 in loc strictly after now
func nextWeekStart(now time.Time, loc *time.Location) time.Time {
	return domain.NextWeekStart(now.In(loc))
}
