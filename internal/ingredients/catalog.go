// Package ingredients serves the built-in categorized ingredient catalog the
// client offers when composing a generation request.
package ingredients

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

//go:embed catalog.json
var catalogJSON []byte

// Ingredient is a selectable ingredient
type Ingredient struct {
	Name         string `json:"name"`
	Image        string `json:"image,omitempty"`
	Category     string `json:"category"`
	CategoryName string `json:"categoryName"`
}

// Category groups ingredients
type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Ingredients []Ingredient `json:"ingredients"`
}

type catalogFile struct {
	Version    string `json:"version"`
	Categories []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Ingredients []struct {
			Name  string `json:"name"`
			Image string `json:"image"`
		} `json:"ingredients"`
	} `json:"categories"`
}

// Catalog is an immutable, searchable ingredient list
type Catalog struct {
	version    string
	categories []Category
	all        []Ingredient
	folded     []string
	fold       cases.Caser
	mu         sync.Mutex
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded file is malformed.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogJSON)
		if err != nil {
			panic(fmt.Sprintf("ingredients: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// CatalogVersion is the version of the embedded catalog
func CatalogVersion() string {
	return Default().Version()
}

// Parse builds a catalog from its JSON document
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	c := &Catalog{version: file.Version, fold: cases.Fold()}
	for _, cat := range file.Categories {
		category := Category{ID: cat.ID, Name: cat.Name, Ingredients: make([]Ingredient, 0, len(cat.Ingredients))}
		for _, ing := range cat.Ingredients {
			item := Ingredient{Name: ing.Name, Image: ing.Image, Category: cat.ID, CategoryName: cat.Name}
			category.Ingredients = append(category.Ingredients, item)
			c.all = append(c.all, item)
			c.folded = append(c.folded, c.fold.String(ing.Name))
		}
		c.categories = append(c.categories, category)
	}
	return c, nil
}

// Version returns the catalog's data version
func (c *Catalog) Version() string {
	return c.version
}

// Categories returns every category with its ingredients
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{ID: cat.ID, Name: cat.Name, Ingredients: append([]Ingredient(nil), cat.Ingredients...)}
	}
	return out
}

// All returns the flattened ingredient list in catalog order
func (c *Catalog) All() []Ingredient {
	return append([]Ingredient(nil), c.all...)
}

// ByCategory returns the ingredients of one category, and false for an unknown id
func (c *Catalog) ByCategory(id string) ([]Ingredient, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return append([]Ingredient(nil), cat.Ingredients...), true
		}
	}
	return nil, false
}

// Search returns ingredients whose name contains query, ignoring case.
// An empty query returns everything.
func (c *Catalog) Search(query string) []Ingredient {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.All()
	}

	// cases.Caser is stateful
	c.mu.Lock()
	needle := c.fold.String(query)
	c.mu.Unlock()

	out := []Ingredient{}
	for i, name := range c.folded {
		if strings.Contains(name, needle) {
			out = append(out, c.all[i])
		}
	}
	return out
}
