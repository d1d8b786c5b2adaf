package ingredients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, "1.0.0", CatalogVersion())

	cats := c.Categories()
	require.NotEmpty(t, cats)
	assert.Equal(t, "vegetables", cats[0].ID)
	assert.Equal(t, "Vegetables", cats[0].Name)

	total := 0
	for _, cat := range cats {
		total += len(cat.Ingredients)
	}
	assert.Len(t, c.All(), total)
}

func TestCatalog_ByCategory(t *testing.T) {
	fruits, ok := Default().ByCategory("fruits")
	require.True(t, ok)
	require.NotEmpty(t, fruits)
	for _, f := range fruits {
		assert.Equal(t, "fruits", f.Category)
		assert.Equal(t, "Fruits", f.CategoryName)
	}

	_, ok = Default().ByCategory("desserts")
	assert.False(t, ok)
}

func TestCatalog_Search(t *testing.T) {
	c := Default()

	results := c.Search("  CHICKEN ")
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Contains(t, r.Name, "Chicken")
	}

	assert.Len(t, c.Search(""), len(c.All()))
	assert.Empty(t, c.Search("unobtainium"))
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Name = "mutated"

	assert.NotEqual(t, "mutated", c.All()[0].Name)
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`{"version":"2","categories":[{"id":"x","name":"X","ingredients":[{"name":"Crème fraîche"}]}]}`))
	require.NoError(t, err)

	assert.Equal(t, "2", c.Version())
	assert.Len(t, c.Search("CRÈME"), 1)

	_, err = Parse([]byte(`not json`))
	assert.Error(t, err)
}
