package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// Completion accounting constants
const (
	// TimeSavedPerCompletionMinutes is the average time a user would have spent
	// searching for a recipe manually
	TimeSavedPerCompletionMinutes = 25

	// FoodWastePerIngredientGrams is the average waste avoided per ingredient used
	FoodWastePerIngredientGrams = 150

	AdvancedIngredientEstimate     = 10
	IntermediateIngredientEstimate = 7
	BeginnerIngredientEstimate     = 5
)

// MetricsSnapshot holds one week of usage counters. The JSON names match the
// values written by the mobile client.
type MetricsSnapshot struct {
	TimeSavedMinutes      float64    `json:"timeSaved"`
	FoodWasteAvoidedGrams float64    `json:"foodWasteAvoided"`
	RecipesGenerated      int        `json:"recipesGenerated"`
	RecipesCompleted      int        `json:"recipesCompleted"`
	IngredientsUsed       int        `json:"ingredientsUsed"`
	LastUpdated           *time.Time `json:"lastUpdated"`
	WeekID                string     `json:"weekId"`
	EndDate               *time.Time `json:"endDate,omitempty"`
}

// NewMetricsSnapshot returns a zeroed snapshot for the given week
func NewMetricsSnapshot(weekID string, now time.Time) MetricsSnapshot {
	return MetricsSnapshot{
		WeekID:      weekID,
		LastUpdated: &now,
	}
}

// HasActivity reports whether anything was generated or completed this week.
// Only active snapshots are archived on rollover.
func (m MetricsSnapshot) HasActivity() bool {
	return m.RecipesGenerated > 0 || m.RecipesCompleted > 0
}

// Archived returns a frozen copy of the snapshot stamped with its end date
func (m MetricsSnapshot) Archived(endDate time.Time) MetricsSnapshot {
	out := m
	if m.LastUpdated != nil {
		t := *m.LastUpdated
		out.LastUpdated = &t
	}
	out.EndDate = &endDate
	return out
}

// CompletedSet holds the ids of recipes already credited toward completion metrics
type CompletedSet map[string]struct{}

// NewCompletedSet builds a set from ids
func NewCompletedSet(ids ...string) CompletedSet {
	s := make(CompletedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership
func (s CompletedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id
func (s CompletedSet) Add(id string) {
	s[id] = struct{}{}
}

// IDs returns the members sorted
func (s CompletedSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a copy of the set
func (s CompletedSet) Clone() CompletedSet {
	out := make(CompletedSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// MarshalJSON writes the set as a sorted JSON array
func (s CompletedSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON reads a JSON array of ids
func (s *CompletedSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewCompletedSet(ids...)
	return nil
}
