// Package generator asks an OpenAI-compatible model for recipe suggestions and
// validates the reply into domain records.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/logger"
	"github.com/platify/platify-core/internal/metrics"
)

// Request describes what the user has and wants to cook
type Request struct {
	Ingredients    []string `json:"ingredients" validate:"required,min=1,dive,required,max=100"`
	Portions       int      `json:"portions" validate:"min=1,max=10"`
	Days           int      `json:"days" validate:"min=1,max=7"`
	Diet           string   `json:"diet" validate:"max=100"`
	Skill          string   `json:"skill" validate:"omitempty,oneof=beginner intermediate advanced"`
	Allergies      []string `json:"allergies" validate:"dive,max=100"`
	MaxCookingTime int      `json:"maxCookingTime" validate:"min=1,max=180"`
}

// Normalize fills defaults and canonicalizes the skill level
func (r *Request) Normalize() {
	if r.MaxCookingTime == 0 {
		r.MaxCookingTime = DefaultMaxCookingTime
	}
	r.Skill = string(domain.ParseSkillLevel(r.Skill))
	if r.Allergies == nil {
		r.Allergies = []string{}
	}
}

// Validate checks the request bounds
func (r *Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, ErrMsgInvalidRequest, err)
	}
	return nil
}

// Service generates recipes
type Service interface {
	Generate(ctx context.Context, req Request) ([]domain.RecipeRecord, error)
}

type service struct {
	chat Chatter
}

// NewService creates a generator backed by the given chat client
func NewService(chat Chatter) Service {
	return &service{chat: chat}
}

// Generate returns exactly RecipesPerReply recipes for req. Provider and parse
// failures are reported as domain.ErrGenerationFailed and never retried.
func (s *service) Generate(ctx context.Context, req Request) ([]domain.RecipeRecord, error) {
	log := logger.FromContext(ctx)

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	recipes, err := s.generate(ctx, req)
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationFailures.Inc()
		log.Error(LogMsgGenerationFailed, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	log.Info(LogMsgGenerated, "count", len(recipes), "titles", titles(recipes))
	return recipes, nil
}

func (s *service) generate(ctx context.Context, req Request) ([]domain.RecipeRecord, error) {
	body, err := json.Marshal(userPrompt{
		Ingredients:    req.Ingredients,
		Portions:       req.Portions,
		Days:           req.Days,
		Diet:           req.Diet,
		Skill:          req.Skill,
		Allergies:      req.Allergies,
		MaxCookingTime: req.MaxCookingTime,
		Constants:      Constants,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMarshalRequest, err)
	}

	reply, err := s.chat.Chat(ctx, []Message{
		{Role: RoleSystem, Content: PromptSystem},
		{Role: RoleUser, Content: string(body)},
	})
	if err != nil {
		return nil, err
	}

	return ParseReply(reply, req.Portions)
}

func titles(recipes []domain.RecipeRecord) string {
	names := make([]string, len(recipes))
	for i, r := range recipes {
		names[i] = r.Title
	}
	return strings.Join(names, ", ")
}
