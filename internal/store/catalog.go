// Package store provides the in-memory repositories backing the catalog and
// account services. All state is process-local and lost on restart.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/akulikov/facthub/internal/models"
)

// Catalog is an in-memory mapping from category key to an ordered list of
// facts. A single mutex serializes every operation, so id assignment and
// category pruning are race-free under concurrent requests.
type Catalog struct {
	mu sync.Mutex
	// order holds category keys in insertion order; fact lookups and
	// removals scan categories in this order.
	order []string
	facts map[string][]models.Fact
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{facts: make(map[string][]models.Fact)}
}

// ListCategories returns the category keys sorted alphabetically.
func (c *Catalog) ListCategories(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, len(c.order))
	copy(names, c.order)
	sort.Strings(names)
	return names, nil
}

// Category returns the facts of the named category in insertion order, or an
// empty slice if the category does not exist. The name is expected to be
// normalized by the caller.
func (c *Catalog) Category(_ context.Context, name string) ([]models.Fact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	facts := c.facts[name]
	out := make([]models.Fact, len(facts))
	copy(out, facts)
	return out, nil
}

// Fact finds a fact by id, scanning categories in insertion order, and
// resolves its previous/next neighbours within the owning category.
// Returns models.ErrNotFound for an unknown id.
func (c *Catalog) Fact(_ context.Context, id int) (models.FactPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range c.order {
		facts := c.facts[name]
		for i, f := range facts {
			if f.ID != id {
				continue
			}
			page := models.FactPage{Fact: f, Category: name}
			if i > 0 {
				prev := facts[i-1].ID
				page.PrevID = &prev
			}
			if i < len(facts)-1 {
				next := facts[i+1].ID
				page.NextID = &next
			}
			return page, nil
		}
	}
	return models.FactPage{}, models.ErrNotFound
}

// AddFact appends a new fact to the (normalized) category, creating the
// category on first use. The new id is one above the maximum id across the
// whole catalog, or 1 for an empty catalog. Returns models.ErrValidation if
// any field is empty.
func (c *Catalog) AddFact(_ context.Context, category, title, text, image string) (models.Fact, error) {
	if category == "" || title == "" || text == "" || image == "" {
		return models.Fact{}, models.ErrValidation
	}
	key := models.NormalizeCategory(category)

	c.mu.Lock()
	defer c.mu.Unlock()

	maxID := 0
	for _, facts := range c.facts {
		for _, f := range facts {
			if f.ID > maxID {
				maxID = f.ID
			}
		}
	}

	fact := models.Fact{ID: maxID + 1, Title: title, Text: text, Image: image}
	if _, ok := c.facts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.facts[key] = append(c.facts[key], fact)
	return fact, nil
}

// RemoveFact deletes the first fact matching id, scanning categories in
// insertion order. A category emptied by the removal is dropped from the
// catalog entirely. Returns models.ErrNotFound if no fact matches.
func (c *Catalog) RemoveFact(_ context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for oi, name := range c.order {
		facts := c.facts[name]
		for i, f := range facts {
			if f.ID != id {
				continue
			}
			c.facts[name] = append(facts[:i:i], facts[i+1:]...)
			if len(c.facts[name]) == 0 {
				delete(c.facts, name)
				c.order = append(c.order[:oi], c.order[oi+1:]...)
			}
			return nil
		}
	}
	return models.ErrNotFound
}

// Search returns every fact whose title or text contains the query,
// case-insensitively, in catalog iteration order. An empty query matches
// nothing.
func (c *Catalog) Search(_ context.Context, query string) ([]models.Fact, error) {
	q := strings.ToLower(query)
	if q == "" {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var results []models.Fact
	for _, name := range c.order {
		for _, f := range c.facts[name] {
			if strings.Contains(strings.ToLower(f.Title), q) || strings.Contains(strings.ToLower(f.Text), q) {
				results = append(results, f)
			}
		}
	}
	return results, nil
}
