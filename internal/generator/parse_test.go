package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platify/platify-core/internal/domain"
)

func reply(recipes ...string) string {
	out := `{"recipes":[`
	for i, r := range recipes {
		if i > 0 {
			out += ","
		}
		out += r
	}
	return out + `]}`
}

func recipeJSON(title string) string {
	return fmt.Sprintf(`{"title":%q,"skill_level":"beginner","steps":["Step 1: Cook"],"cooking_time":20,"portions":2,"ingredients":["rice"]}`, title)
}

func TestParseReply_Valid(t *testing.T) {
	recipes, err := ParseReply(reply(recipeJSON("A"), recipeJSON("B"), recipeJSON("C")), 4)

	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "A", recipes[0].Title)
	assert.Equal(t, domain.SkillBeginner, recipes[0].SkillLevel)
	assert.Equal(t, 20, recipes[0].CookingTimeMinutes)
	assert.Equal(t, 2, recipes[0].Portions)
	assert.Equal(t, []string{"rice"}, recipes[0].Ingredients)
	assert.Empty(t, recipes[0].ID)
}

func TestParseReply_ExtractsEmbeddedObject(t *testing.T) {
	text := "Sure! Here are your recipes:\n" + reply(recipeJSON("A"), recipeJSON("B"), recipeJSON("C")) + "\nEnjoy!"

	recipes, err := ParseReply(text, 2)

	require.NoError(t, err)
	assert.Len(t, recipes, 3)
}

func TestParseReply_Defaults(t *testing.T) {
	partial := `{"name":"","skill_level":"Intermediate","instructions":["Mix"]}`
	recipes, err := ParseReply(reply(partial, recipeJSON("B"), recipeJSON("C")), 3)

	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, recipes[0].Title)
	assert.Equal(t, DefaultCookingTime, recipes[0].CookingTimeMinutes)
	assert.Equal(t, 3, recipes[0].Portions)
	assert.Equal(t, domain.SkillIntermediate, recipes[0].SkillLevel)
	assert.Equal(t, []string{"Mix"}, recipes[0].Steps)
}

func TestParseReply_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		wantMsg string
	}{
		{"two recipes", reply(recipeJSON("A"), recipeJSON("B")), "expected 3 recipes, got 2"},
		{"four recipes", reply(recipeJSON("A"), recipeJSON("B"), recipeJSON("C"), recipeJSON("D")), "got 4"},
		{"no json at all", "I cannot help with that", ErrMsgNoJSONObject},
		{"unknown skill", reply(`{"title":"A","skill_level":"expert","steps":["x"]}`, recipeJSON("B"), recipeJSON("C")), "recipe 0 is invalid"},
		{"missing steps", reply(recipeJSON("A"), `{"title":"B","skill_level":"advanced"}`, recipeJSON("C")), "recipe 1 is invalid"},
		{"negative portions", reply(recipeJSON("A"), recipeJSON("B"), `{"title":"C","skill_level":"advanced","steps":["x"],"portions":-2}`), "recipe 2 is invalid"},
		{"broken embedded object", "Here: {not json}", "invalid character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReply(tt.reply, 2)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseReply_StripsBookkeeping(t *testing.T) {
	withBookkeeping := `{"id":"recipe-x","title":"A","skill_level":"advanced","steps":["x"],"completed":true,"completedAt":"2024-01-01T00:00:00Z","weekId":"2024-01"}`
	recipes, err := ParseReply(reply(withBookkeeping, recipeJSON("B"), recipeJSON("C")), 2)

	require.NoError(t, err)
	assert.Empty(t, recipes[0].ID)
	assert.False(t, recipes[0].Completed)
	assert.Nil(t, recipes[0].CompletedAt)
	assert.Empty(t, recipes[0].WeekID)
}
