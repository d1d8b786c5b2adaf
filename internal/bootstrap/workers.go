package bootstrap

import (
	"log/slog"
	"time"

	"github.com/platify/platify-core/internal/config"
	"github.com/platify/platify-core/internal/scheduler"
	"github.com/platify/platify-core/internal/worker"
)

// Workers holds the background machinery that keeps weekly metrics rolled over
type Workers struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
	Weekly    *worker.WeeklyRolloverWorker
}

// StartWorkers starts the worker pool, the periodic sweep over recently active
// users and the week-boundary sweep over every stored user.
func StartWorkers(cfg *config.Config, svc *Services, loc *time.Location) *Workers {
	pool := worker.NewPool(cfg.WorkerCount, WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.RolloverPollInterval,
		worker.NewRolloverSweepJob(worker.JobNameRolloverSweep, svc.Stats, worker.TrackerSource(svc.Tracker)))
	sched.Start()

	weekly := worker.NewWeeklyRolloverWorker(svc.Stats, svc.Repo, loc)
	weekly.Start()

	slog.Info(LogMsgWorkersStarted,
		"workers", cfg.WorkerCount,
		"poll_interval", cfg.RolloverPollInterval,
		"time_zone", loc.String())

	return &Workers{Pool: pool, Scheduler: sched, Weekly: weekly}
}
