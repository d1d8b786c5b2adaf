package history

import (
	"time"

	"github.com/platify/platify-core/internal/domain"
)

// BackfillWeekIDs returns a copy of log where entries without a week id get one from
// their generatedAt, or the week of now when they have none. It also reports whether
// any entry changed.
func BackfillWeekIDs(log []domain.RecipeRecord, now time.Time) ([]domain.RecipeRecord, bool) {
	out := make([]domain.RecipeRecord, len(log))
	changed := false
	for i, r := range log {
		out[i] = r
		if r.WeekID != "" {
			continue
		}
		changed = true
		if !r.GeneratedAt.IsZero() {
			out[i].WeekID = domain.WeekID(r.GeneratedAt.In(now.Location()))
		} else {
			out[i].WeekID = domain.WeekID(now)
		}
	}
	return out, changed
}

// GroupByWeek partitions log by each entry's stored week id, keeping log order within
// a group. Entries without a week id are grouped under the week of now.
func GroupByWeek(log []domain.RecipeRecord, now time.Time) map[string][]domain.RecipeRecord {
	groups := make(map[string][]domain.RecipeRecord)
	current := domain.WeekID(now)
	for _, r := range log {
		week := r.WeekID
		if week == "" {
			week = current
		}
		groups[week] = append(groups[week], r)
	}
	return groups
}

// WeekGroup is one week of history, used for ordered listings
type WeekGroup struct {
	WeekID  string                `json:"weekId"`
	Recipes []domain.RecipeRecord `json:"recipes"`
}

// OrderedWeeks returns the groups of log in order of first appearance, which for a
// newest-first log is newest week first.
func OrderedWeeks(log []domain.RecipeRecord, now time.Time) []WeekGroup {
	groups := GroupByWeek(log, now)
	current := domain.WeekID(now)
	out := make([]WeekGroup, 0, len(groups))
	seen := make(map[string]struct{}, len(groups))
	for _, r := range log {
		week := r.WeekID
		if week == "" {
			week = current
		}
		if _, ok := seen[week]; ok {
			continue
		}
		seen[week] = struct{}{}
		out = append(out, WeekGroup{WeekID: week, Recipes: groups[week]})
	}
	return out
}
