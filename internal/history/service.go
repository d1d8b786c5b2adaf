package history

import (
	"context"
	"fmt"
	"time"

	"github.com/platify/platify-core/internal/concurrency"
	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/identity"
	"github.com/platify/platify-core/internal/logger"
	"github.com/platify/platify-core/internal/metrics"
	"github.com/platify/platify-core/internal/repository"
	"github.com/platify/platify-core/internal/storage"
)

// Service defines the interface for recipe history operations
type Service interface {
	// List returns the newest-first log with week ids backfilled
	List(ctx context.Context, userID string) ([]domain.RecipeRecord, error)
	// Append stamps records with one shared generatedAt, prepends them and trims
	// the log to its cap. It returns the stored copies of records.
	Append(ctx context.Context, userID string, records []domain.RecipeRecord) ([]domain.RecipeRecord, error)
	// Remove drops the entry at index. Out-of-range indices are ignored.
	Remove(ctx context.Context, userID string, index int) error
	// RemoveByID drops the first entry resolving to id and reports whether one was found
	RemoveByID(ctx context.Context, userID, id string) (bool, error)
	Clear(ctx context.Context, userID string) error
	// Weeks groups the log by week id, newest week first
	Weeks(ctx context.Context, userID string) ([]WeekGroup, error)
}

// Option configures the history service
type Option func(*service)

// WithCap overrides DefaultCap
func WithCap(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.cap = n
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithLocation sets the zone week ids are computed in
func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

type service struct {
	repo  repository.Usage
	locks *concurrency.LockManager
	cap   int
	now   func() time.Time
	loc   *time.Location
}

// NewService creates a new history service. locks must be shared with every other
// component that writes the same user's history.
func NewService(repo repository.Usage, locks *concurrency.LockManager, opts ...Option) Service {
	s := &service{
		repo:  repo,
		locks: locks,
		cap:   DefaultCap,
		now:   time.Now,
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *service) lock(userID string) func() {
	return s.locks.LockAll(concurrency.UserKey(userID, storage.KeyRecipeHistory))
}

func (s *service) load(ctx context.Context, userID string) ([]domain.RecipeRecord, error) {
	log, err := s.repo.LoadHistory(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToLoadHistory, "error", err, "user_id", userID)
		metrics.StoreErrors.WithLabelValues("load_history").Inc()
		return nil, fmt.Errorf(ErrMsgLoadHistoryFailed, err)
	}
	log, changed := BackfillWeekIDs(log, s.clock())
	if changed {
		logger.FromContext(ctx).Debug(LogMsgBackfilledWeekIDs, "user_id", userID)
	}
	return log, nil
}

func (s *service) save(ctx context.Context, userID string, log []domain.RecipeRecord) error {
	if err := s.repo.Save(ctx, userID, repository.NewUsageWrite().SetHistory(log)); err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToSaveHistory, "error", err, "user_id", userID)
		metrics.StoreErrors.WithLabelValues("save_history").Inc()
		return fmt.Errorf(ErrMsgSaveHistoryFailed, err)
	}
	return nil
}

// List implements Service
func (s *service) List(ctx context.Context, userID string) ([]domain.RecipeRecord, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	return s.load(ctx, userID)
}

// Append implements Service
func (s *service) Append(ctx context.Context, userID string, records []domain.RecipeRecord) ([]domain.RecipeRecord, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	if len(records) == 0 {
		return []domain.RecipeRecord{}, nil
	}

	unlock := s.lock(userID)
	defer unlock()

	log, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	generatedAt := s.clock()
	batch := make([]domain.RecipeRecord, len(records))
	for i, r := range records {
		entry := r.Clone()
		entry.GeneratedAt = generatedAt
		if entry.WeekID == "" {
			entry.WeekID = domain.WeekID(generatedAt)
		}
		batch[i] = entry
	}

	updated, dropped := Prepend(log, batch, s.cap)
	if err := s.save(ctx, userID, updated); err != nil {
		return nil, err
	}

	l := logger.FromContext(ctx)
	l.Info(LogMsgAppended, "user_id", userID, "count", len(batch), "size", len(updated))
	if dropped > 0 {
		metrics.HistoryEntriesTrimmed.Add(float64(dropped))
		l.Debug(LogMsgTrimmed, "user_id", userID, "dropped", dropped, "cap", s.cap)
	}
	return batch, nil
}

// Prepend places batch in front of log and truncates the result to limit entries,
// returning the new log and the number of entries dropped from the tail.
func Prepend(log, batch []domain.RecipeRecord, limit int) ([]domain.RecipeRecord, int) {
	out := make([]domain.RecipeRecord, 0, len(batch)+len(log))
	out = append(out, batch...)
	out = append(out, log...)
	if len(out) <= limit {
		return out, 0
	}
	return out[:limit], len(out) - limit
}

// Remove implements Service
func (s *service) Remove(ctx context.Context, userID string, index int) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}

	unlock := s.lock(userID)
	defer unlock()

	log, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(log) {
		logger.FromContext(ctx).Warn(LogMsgIndexOutOfRange, "user_id", userID, "index", index, "size", len(log))
		return nil
	}

	updated := append(log[:index:index], log[index+1:]...)
	if err := s.save(ctx, userID, updated); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgEntryRemoved, "user_id", userID, "index", index)
	return nil
}

// RemoveByID implements Service
func (s *service) RemoveByID(ctx context.Context, userID, id string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUserIDRequired
	}

	unlock := s.lock(userID)
	defer unlock()

	log, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}
	for i, r := range log {
		if identity.ResolveID(r) != id {
			continue
		}
		updated := append(log[:i:i], log[i+1:]...)
		if err := s.save(ctx, userID, updated); err != nil {
			return false, err
		}
		logger.FromContext(ctx).Info(LogMsgEntryRemoved, "user_id", userID, "id", id)
		return true, nil
	}

	logger.FromContext(ctx).Warn(LogMsgEntryNotFound, "user_id", userID, "id", id)
	return false, nil
}

// Clear implements Service
func (s *service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}

	unlock := s.lock(userID)
	defer unlock()

	if err := s.save(ctx, userID, []domain.RecipeRecord{}); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgCleared, "user_id", userID)
	return nil
}

// Weeks implements Service
func (s *service) Weeks(ctx context.Context, userID string) ([]WeekGroup, error) {
	log, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return OrderedWeeks(log, s.clock()), nil
}
