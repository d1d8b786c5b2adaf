package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// SkillLevel is the difficulty a recipe was generated for
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// ParseSkillLevel lowercases and trims s. Unknown values are kept as-is so that
// upstream data round-trips; callers fall back to beginner defaults for them.
func ParseSkillLevel(s string) SkillLevel {
	return SkillLevel(strings.ToLower(strings.TrimSpace(s)))
}

// IsValid reports whether the skill level is one of the known levels
func (s SkillLevel) IsValid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

// RecipeRecord is the canonical recipe shape used by history, metrics and favorites.
// Upstream data (AI replies, stored logs from older clients) is normalized into it
// by RawRecipe.Normalize, so call sites never deal with title/name or
// steps/instructions fallbacks.
type RecipeRecord struct {
	ID                 string     `json:"id,omitempty"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	SkillLevel         SkillLevel `json:"skill_level,omitempty"`
	Steps              []string   `json:"steps"`
	CookingTimeMinutes int        `json:"cooking_time,omitempty"`
	Portions           int        `json:"portions,omitempty"`
	Ingredients        []string   `json:"ingredients,omitzero"`
	GeneratedAt        time.Time  `json:"generatedAt,omitzero"`
	Completed          bool       `json:"completed"`
	CompletedAt        *time.Time `json:"completedAt"`
	WeekID             string     `json:"weekId,omitempty"`
}

// UnmarshalJSON accepts every upstream alias and normalizes it.
func (r *RecipeRecord) UnmarshalJSON(data []byte) error {
	var raw RawRecipe
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = raw.Normalize()
	return nil
}

// SameContent reports whether two records describe the same logical recipe
// (equal title and equal steps).
func (r RecipeRecord) SameContent(other RecipeRecord) bool {
	if r.Title != other.Title || len(r.Steps) != len(other.Steps) {
		return false
	}
	for i := range r.Steps {
		if r.Steps[i] != other.Steps[i] {
			return false
		}
	}
	return true
}

// IngredientCount returns the number of listed ingredients, or an estimate
// based on skill level when the recipe does not list them.
func (r RecipeRecord) IngredientCount() int {
	if r.Ingredients != nil {
		return len(r.Ingredients)
	}
	switch r.SkillLevel {
	case SkillAdvanced:
		return AdvancedIngredientEstimate
	case SkillIntermediate:
		return IntermediateIngredientEstimate
	default:
		return BeginnerIngredientEstimate
	}
}

// Clone returns a deep copy of the record.
func (r RecipeRecord) Clone() RecipeRecord {
	out := r
	if r.Steps != nil {
		out.Steps = append([]string(nil), r.Steps...)
	}
	if r.Ingredients != nil {
		out.Ingredients = append([]string(nil), r.Ingredients...)
	}
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// RawRecipe is the loose wire shape of a recipe as produced by the AI provider
// or written by older clients.
type RawRecipe struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	SkillLevel   string       `json:"skill_level"`
	Steps        FlexStrings  `json:"steps"`
	Instructions FlexStrings  `json:"instructions"`
	CookingTime  FlexInt      `json:"cooking_time"`
	TimeEstimate FlexInt      `json:"time_estimate"`
	Portions     FlexInt      `json:"portions"`
	Servings     FlexInt      `json:"servings"`
	Ingredients  *FlexStrings `json:"ingredients"`
	GeneratedAt  *time.Time   `json:"generatedAt"`
	Completed    bool         `json:"completed"`
	CompletedAt  *time.Time   `json:"completedAt"`
	WeekID       string       `json:"weekId"`
}

// Normalize folds the aliases into a RecipeRecord.
func (raw RawRecipe) Normalize() RecipeRecord {
	rec := RecipeRecord{
		ID:          strings.TrimSpace(raw.ID),
		Title:       raw.Title,
		Description: raw.Description,
		SkillLevel:  ParseSkillLevel(raw.SkillLevel),
		Steps:       []string(raw.Steps),
		Completed:   raw.Completed,
		CompletedAt: raw.CompletedAt,
		WeekID:      raw.WeekID,
	}
	if rec.Title == "" {
		rec.Title = raw.Name
	}
	if len(rec.Steps) == 0 {
		rec.Steps = []string(raw.Instructions)
	}
	if rec.Steps == nil {
		rec.Steps = []string{}
	}

	rec.CookingTimeMinutes = int(raw.CookingTime)
	if rec.CookingTimeMinutes == 0 {
		rec.CookingTimeMinutes = int(raw.TimeEstimate)
	}
	rec.Portions = int(raw.Portions)
	if rec.Portions == 0 {
		rec.Portions = int(raw.Servings)
	}

	if raw.Ingredients != nil {
		rec.Ingredients = []string(*raw.Ingredients)
		if rec.Ingredients == nil {
			rec.Ingredients = []string{}
		}
	}
	if raw.GeneratedAt != nil {
		rec.GeneratedAt = *raw.GeneratedAt
	}
	if !rec.Completed {
		rec.CompletedAt = nil
	}
	return rec
}

// FlexInt decodes a JSON number or a string with a leading integer ("25 minutes").
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*f = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = FlexInt(leadingInt(str))
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(int(n))
	return nil
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || (end == 0 && (s[end] == '-' || s[end] == '+'))) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// FlexStrings decodes either a JSON array of strings or a single string.
type FlexStrings []string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = nil
		return nil
	}
	if strings.HasPrefix(s, "\"") {
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*f = FlexStrings{one}
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(FlexStrings, 0, len(items))
	for _, item := range items {
		var str string
		if err := json.Unmarshal(item, &str); err == nil {
			out = append(out, str)
			continue
		}
		// {"name": "...", "quantity": "..."} entries from older replies
		var named struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &named); err == nil && named.Name != "" {
			out = append(out, named.Name)
		}
	}
	*f = out
	return nil
}
