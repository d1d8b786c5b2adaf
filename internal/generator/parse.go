package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/platify/platify-core/internal/domain"
)

var validate = validator.New()

// recipeSchema is the shape every generated recipe must satisfy
type recipeSchema struct {
	Title       string   `validate:"required"`
	SkillLevel  string   `validate:"oneof=beginner intermediate advanced"`
	Steps       []string `validate:"min=1,dive,required"`
	CookingTime int      `validate:"gt=0"`
	Portions    int      `validate:"gt=0"`
}

type replyEnvelope struct {
	Recipes []json.RawMessage `json:"recipes"`
}

// ParseReply turns a model reply into exactly RecipesPerReply normalized records.
// A reply with prose around the JSON object is retried on the span between the
// first '{' and the last '}'.
func ParseReply(reply string, portions int) ([]domain.RecipeRecord, error) {
	recipes, err := decodeReply(reply, portions)
	if err == nil {
		return recipes, nil
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, errors.Join(err, errors.New(ErrMsgNoJSONObject))
	}
	embedded := reply[start : end+1]
	if embedded == strings.TrimSpace(reply) {
		return nil, err
	}

	return decodeReply(embedded, portions)
}

func decodeReply(reply string, portions int) ([]domain.RecipeRecord, error) {
	var env replyEnvelope
	if err := json.Unmarshal([]byte(reply), &env); err != nil {
		return nil, err
	}
	if len(env.Recipes) != RecipesPerReply {
		return nil, fmt.Errorf(ErrMsgWrongCount, RecipesPerReply, len(env.Recipes))
	}

	out := make([]domain.RecipeRecord, 0, len(env.Recipes))
	for i, raw := range env.Recipes {
		var rec domain.RecipeRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf(ErrMsgInvalidRecipe, i, err)
		}
		applyDefaults(&rec, portions)
		if err := validate.Struct(recipeSchema{
			Title:       rec.Title,
			SkillLevel:  string(rec.SkillLevel),
			Steps:       rec.Steps,
			CookingTime: rec.CookingTimeMinutes,
			Portions:    rec.Portions,
		}); err != nil {
			return nil, fmt.Errorf(ErrMsgInvalidRecipe, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func applyDefaults(rec *domain.RecipeRecord, portions int) {
	if strings.TrimSpace(rec.Title) == "" {
		rec.Title = DefaultTitle
	}
	if rec.CookingTimeMinutes == 0 {
		rec.CookingTimeMinutes = DefaultCookingTime
	}
	if rec.Portions == 0 {
		rec.Portions = portions
	}
	// generated recipes never carry bookkeeping from the model
	rec.ID = ""
	rec.Completed = false
	rec.CompletedAt = nil
	rec.WeekID = ""
}
