package stats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/platify/platify-core/internal/concurrency"
	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/history"
	"github.com/platify/platify-core/internal/identity"
	"github.com/platify/platify-core/internal/logger"
	"github.com/platify/platify-core/internal/metrics"
	"github.com/platify/platify-core/internal/repository"
	"github.com/platify/platify-core/internal/storage"
)

// Service defines the interface for weekly usage metrics
type Service interface {
	// GetCurrentMetrics returns the snapshot for the current week, rolling a stale
	// snapshot over into the archive first.
	GetCurrentMetrics(ctx context.Context, userID string) (*domain.MetricsSnapshot, error)
	// GetArchive returns the archived snapshots, oldest first
	GetArchive(ctx context.Context, userID string) ([]domain.MetricsSnapshot, error)
	RecordGeneration(ctx context.Context, userID string, count int) (*domain.MetricsSnapshot, error)
	// RecordCompletion credits a recipe completion at most once per resolved recipe id
	RecordCompletion(ctx context.Context, userID string, record domain.RecipeRecord) (*CompletionResult, error)
	// ResetMetrics zeroes every counter of the current week without archiving
	ResetMetrics(ctx context.Context, userID string) (*domain.MetricsSnapshot, error)
}

// CompletionResult describes the outcome of RecordCompletion
type CompletionResult struct {
	RecipeID         string                 `json:"recipeId"`
	AlreadyCompleted bool                   `json:"alreadyCompleted"`
	IngredientsUsed  int                    `json:"ingredientsUsed"`
	Metrics          domain.MetricsSnapshot `json:"metrics"`
}

// Option configures the stats service
type Option func(*service)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithLocation sets the zone week boundaries are computed in
func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithArchiveCap overrides DefaultArchiveCap
func WithArchiveCap(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.archiveCap = n
		}
	}
}

// WithHistoryCap sets the cap applied when a completion adds a history entry
func WithHistoryCap(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.historyCap = n
		}
	}
}

// service implements the Service interface
type service struct {
	repo       repository.Usage
	locks      *concurrency.LockManager
	now        func() time.Time
	loc        *time.Location
	archiveCap int
	historyCap int
}

// NewService creates a new stats service. locks must be the same manager the
// history service uses so completions and appends never interleave.
func NewService(repo repository.Usage, locks *concurrency.LockManager, opts ...Option) Service {
	s := &service{
		repo:       repo,
		locks:      locks,
		now:        time.Now,
		loc:        time.UTC,
		archiveCap: DefaultArchiveCap,
		historyCap: history.DefaultCap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *service) lockMetrics(userID string) func() {
	return s.locks.LockAll(
		concurrency.UserKey(userID, storage.KeyUserMetrics),
		concurrency.UserKey(userID, storage.KeyHistoricalMetrics),
	)
}

func (s *service) lockCompletion(userID string) func() {
	return s.locks.LockAll(
		concurrency.UserKey(userID, storage.KeyCompletedRecipes),
		concurrency.UserKey(userID, storage.KeyRecipeHistory),
		concurrency.UserKey(userID, storage.KeyUserMetrics),
		concurrency.UserKey(userID, storage.KeyHistoricalMetrics),
	)
}

// current loads the snapshot and applies first-use initialization or rollover.
// Changes are staged on w and must be saved by the caller. Callers hold the metrics locks.
func (s *service) current(ctx context.Context, userID string, now time.Time, w *repository.UsageWrite) (domain.MetricsSnapshot, error) {
	log := logger.FromContext(ctx)

	stored, err := s.repo.LoadSnapshot(ctx, userID)
	if err != nil {
		log.Error(LogMsgFailedToLoadMetrics, "error", err, "user_id", userID)
		metrics.StoreErrors.WithLabelValues(opLoadMetrics).Inc()
		return domain.MetricsSnapshot{}, fmt.Errorf(ErrMsgLoadMetricsFailed, err)
	}

	week := domain.WeekID(now)
	if stored == nil {
		snap := domain.NewMetricsSnapshot(week, now)
		w.SetSnapshot(snap)
		log.Debug(LogMsgInitializedMetrics, "user_id", userID, "week_id", week)
		return snap, nil
	}
	if stored.WeekID == week {
		return *stored, nil
	}

	archived := stored.HasActivity()
	if archived {
		archive, err := s.repo.LoadArchive(ctx, userID)
		if err != nil {
			log.Error(LogMsgFailedToLoadMetrics, "error", err, "user_id", userID)
			metrics.StoreErrors.WithLabelValues(opLoadMetrics).Inc()
			return domain.MetricsSnapshot{}, fmt.Errorf(ErrMsgLoadMetricsFailed, err)
		}
		w.SetArchive(AppendArchive(archive, stored.Archived(now), s.archiveCap))
	}

	snap := domain.NewMetricsSnapshot(week, now)
	w.SetSnapshot(snap)

	metrics.MetricsRollovers.WithLabelValues(strconv.FormatBool(archived)).Inc()
	log.Info(LogMsgRolledOver, "user_id", userID, "from_week", stored.WeekID, "to_week", week, "archived", archived)
	return snap, nil
}

// AppendArchive appends snap and evicts the oldest entries beyond limit
func AppendArchive(archive []domain.MetricsSnapshot, snap domain.MetricsSnapshot, limit int) []domain.MetricsSnapshot {
	out := make([]domain.MetricsSnapshot, 0, len(archive)+1)
	out = append(out, archive...)
	out = append(out, snap)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func (s *service) save(ctx context.Context, userID string, w *repository.UsageWrite) error {
	if err := s.repo.Save(ctx, userID, w); err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToSaveMetrics, "error", err, "user_id", userID)
		metrics.StoreErrors.WithLabelValues(opSaveMetrics).Inc()
		return fmt.Errorf(ErrMsgSaveMetricsFailed, err)
	}
	return nil
}

// GetCurrentMetrics implements Service
func (s *service) GetCurrentMetrics(ctx context.Context, userID string) (*domain.MetricsSnapshot, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}

	unlock := s.lockMetrics(userID)
	defer unlock()

	w := repository.NewUsageWrite()
	snap, err := s.current(ctx, userID, s.clock(), w)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, w); err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetArchive implements Service
func (s *service) GetArchive(ctx context.Context, userID string) ([]domain.MetricsSnapshot, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}

	// Roll over first so a stale week shows up in the archive
	if _, err := s.GetCurrentMetrics(ctx, userID); err != nil {
		return nil, err
	}
	archive, err := s.repo.LoadArchive(ctx, userID)
	if err != nil {
		metrics.StoreErrors.WithLabelValues(opLoadMetrics).Inc()
		return nil, fmt.Errorf(ErrMsgLoadMetricsFailed, err)
	}
	return archive, nil
}

// RecordGeneration implements Service
func (s *service) RecordGeneration(ctx context.Context, userID string, count int) (*domain.MetricsSnapshot, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNegativeCount)
	}

	unlock := s.lockMetrics(userID)
	defer unlock()

	now := s.clock()
	w := repository.NewUsageWrite()
	snap, err := s.current(ctx, userID, now, w)
	if err != nil {
		return nil, err
	}

	snap.RecipesGenerated += count
	snap.LastUpdated = &now
	w.SetSnapshot(snap)

	if err := s.save(ctx, userID, w); err != nil {
		return nil, err
	}

	metrics.RecipesGenerated.Add(float64(count))
	logger.FromContext(ctx).Info(LogMsgRecordedGeneration, "user_id", userID, "count", count, "week_id", snap.WeekID)
	return &snap, nil
}

// RecordCompletion implements Service
func (s *service) RecordCompletion(ctx context.Context, userID string, record domain.RecipeRecord) (*CompletionResult, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}

	log := logger.FromContext(ctx)
	recipeID := identity.ResolveID(record)

	unlock := s.lockCompletion(userID)
	defer unlock()

	now := s.clock()
	w := repository.NewUsageWrite()
	snap, err := s.current(ctx, userID, now, w)
	if err != nil {
		return nil, err
	}

	completed, err := s.repo.LoadCompleted(ctx, userID)
	if err != nil {
		log.Error(LogMsgFailedToLoadComplete, "error", err, "user_id", userID)
		metrics.StoreErrors.WithLabelValues(opLoadCompleted).Inc()
		return nil, fmt.Errorf(ErrMsgLoadCompletedFailed, err)
	}

	if completed.Has(recipeID) {
		// Persist a pending rollover but leave counters and history alone
		if err := s.save(ctx, userID, w); err != nil {
			return nil, err
		}
		metrics.DuplicateCompletions.Inc()
		log.Info(LogMsgDuplicateCompletion, "user_id", userID, "recipe_id", recipeID)
		return &CompletionResult{RecipeID: recipeID, AlreadyCompleted: true, Metrics: snap}, nil
	}

	storedHistory, err := s.repo.LoadHistory(ctx, userID)
	if err != nil {
		log.Error(LogMsgFailedToLoadHistory, "error", err, "user_id", userID)
		metrics.StoreErrors.WithLabelValues(opLoadHistory).Inc()
		return nil, fmt.Errorf(ErrMsgLoadHistoryFailed, err)
	}
	entries, _ := history.BackfillWeekIDs(storedHistory, now)

	entries, matched := MarkCompleted(entries, record, recipeID, now)
	if !matched {
		entry := record.Clone()
		entry.ID = recipeID
		entry.Completed = true
		entry.CompletedAt = &now
		entry.GeneratedAt = now
		entry.WeekID = domain.WeekID(now)
		entries, _ = history.Prepend(entries, []domain.RecipeRecord{entry}, s.historyCap)
		log.Debug(LogMsgSyntheticEntry, "user_id", userID, "recipe_id", recipeID)
	}

	ingredients := record.IngredientCount()
	snap.TimeSavedMinutes += domain.TimeSavedPerCompletionMinutes
	snap.FoodWasteAvoidedGrams += float64(ingredients * domain.FoodWastePerIngredientGrams)
	snap.RecipesCompleted++
	snap.IngredientsUsed += ingredients
	snap.LastUpdated = &now

	completed = completed.Clone()
	completed.Add(recipeID)

	w.SetSnapshot(snap).SetHistory(entries).SetCompleted(completed)
	if err := s.save(ctx, userID, w); err != nil {
		return nil, err
	}

	metrics.RecipesCompleted.WithLabelValues(skillLabel(record.SkillLevel)).Inc()
	log.Info(LogMsgRecordedCompletion, "user_id", userID, "recipe_id", recipeID, "ingredients", ingredients)
	return &CompletionResult{RecipeID: recipeID, IngredientsUsed: ingredients, Metrics: snap}, nil
}

// MarkCompleted flags the history entries matching record. Entries carrying recipeID
// as their explicit id match first; otherwise uncompleted entries with the same title
// and steps match and adopt recipeID. It reports whether anything matched.
func MarkCompleted(entries []domain.RecipeRecord, record domain.RecipeRecord, recipeID string, now time.Time) ([]domain.RecipeRecord, bool) {
	out := make([]domain.RecipeRecord, len(entries))
	copy(out, entries)

	matched := false
	for i := range out {
		if out[i].ID != "" && out[i].ID == recipeID {
			out[i].Completed = true
			out[i].CompletedAt = &now
			matched = true
		}
	}
	if matched {
		return out, true
	}

	for i := range out {
		if out[i].Completed || !out[i].SameContent(record) {
			continue
		}
		out[i].ID = recipeID
		out[i].Completed = true
		out[i].CompletedAt = &now
		matched = true
	}
	return out, matched
}

// ResetMetrics implements Service
func (s *service) ResetMetrics(ctx context.Context, userID string) (*domain.MetricsSnapshot, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}

	unlock := s.lockMetrics(userID)
	defer unlock()

	now := s.clock()
	snap := domain.NewMetricsSnapshot(domain.WeekID(now), now)
	if err := s.save(ctx, userID, repository.NewUsageWrite().SetSnapshot(snap)); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgMetricsReset, "user_id", userID, "week_id", snap.WeekID)
	return &snap, nil
}

func skillLabel(s domain.SkillLevel) string {
	if s.IsValid() {
		return string(s)
	}
	return skillLabelUnknown
}
