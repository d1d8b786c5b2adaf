package generator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/platify/platify-core/internal/domain"
)

type MockChatter struct {
	mock.Mock
}

func (m *MockChatter) Chat(ctx context.Context, messages []Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func validRequest() Request {
	return Request{
		Ingredients: []string{"chicken", "rice"},
		Portions:    2,
		Days:        1,
		Skill:       "Beginner",
	}
}

func TestService_Generate(t *testing.T) {
	chat := new(MockChatter)
	var sent []Message
	chat.On("Chat", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]Message) }).
		Return(reply(recipeJSON("A"), recipeJSON("B"), recipeJSON("C")), nil)

	recipes, err := NewService(chat).Generate(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Len(t, recipes, 3)
	chat.AssertExpectations(t)

	require.Len(t, sent, 2)
	assert.Equal(t, RoleSystem, sent[0].Role)
	assert.Equal(t, PromptSystem, sent[0].Content)

	var prompt userPrompt
	require.NoError(t, json.Unmarshal([]byte(sent[1].Content), &prompt))
	assert.Equal(t, []string{"chicken", "rice"}, prompt.Ingredients)
	assert.Equal(t, "beginner", prompt.Skill)
	assert.Equal(t, DefaultMaxCookingTime, prompt.MaxCookingTime)
	assert.Equal(t, Constants, prompt.Constants)
	assert.Equal(t, []string{}, prompt.Allergies)
}

func TestService_GenerateFailures(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		chat := new(MockChatter)
		chat.On("Chat", mock.Anything, mock.Anything).Return("", errors.New("boom"))

		_, err := NewService(chat).Generate(context.Background(), validRequest())

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrGenerationFailed)
		chat.AssertNumberOfCalls(t, "Chat", 1)
	})

	t.Run("unparseable reply", func(t *testing.T) {
		chat := new(MockChatter)
		chat.On("Chat", mock.Anything, mock.Anything).Return("no recipes today", nil)

		_, err := NewService(chat).Generate(context.Background(), validRequest())

		assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	})
}

func TestService_GenerateRejectsInvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"no ingredients", func(r *Request) { r.Ingredients = nil }},
		{"too many portions", func(r *Request) { r.Portions = 11 }},
		{"zero portions", func(r *Request) { r.Portions = 0 }},
		{"too many days", func(r *Request) { r.Days = 8 }},
		{"cooking time above limit", func(r *Request) { r.MaxCookingTime = 181 }},
		{"negative cooking time", func(r *Request) { r.MaxCookingTime = -5 }},
		{"unknown skill", func(r *Request) { r.Skill = "chef" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := new(MockChatter)
			req := validRequest()
			tt.mutate(&req)

			_, err := NewService(chat).Generate(context.Background(), req)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			chat.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
		})
	}
}
