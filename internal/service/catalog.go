// Package service provides the catalog and account business logic,
// delegating persistence to repository interfaces.
package service

import (
	"context"

	"github.com/akulikov/facthub/internal/models"
)

// CatalogRepository defines the persistence operations required by the
// catalog service. Both the in-memory store and the PostgreSQL repository
// implement it with identical semantics.
type CatalogRepository interface {
	// ListCategories returns all category keys sorted alphabetically.
	ListCategories(ctx context.Context) ([]string, error)
	// Category returns the facts of the named (normalized) category in
	// insertion order; an unknown category yields an empty slice.
	Category(ctx context.Context, name string) ([]models.Fact, error)
	// Fact resolves a fact by id together with its category and neighbours.
	Fact(ctx context.Context, id int) (models.FactPage, error)
	// AddFact creates a fact in the (normalized) category with the next
	// catalog-wide id.
	AddFact(ctx context.Context, category, title, text, image string) (models.Fact, error)
	// RemoveFact deletes a fact by id, pruning its category if emptied.
	RemoveFact(ctx context.Context, id int) error
	// Search matches the query against fact titles and texts.
	Search(ctx context.Context, query string) ([]models.Fact, error)
}

// Catalog implements the catalog operations by delegating to a
// CatalogRepository.
type Catalog struct {
	repo CatalogRepository
}

// NewCatalogService constructs a Catalog using the provided repository.
func NewCatalogService(repo CatalogRepository) *Catalog {
	return &Catalog{repo: repo}
}

// ListCategories returns the sorted category keys.
func (s *Catalog) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

// Category returns the facts of the named category. The name is normalized
// here so handlers can pass path segments through unchanged.
func (s *Catalog) Category(ctx context.Context, name string) ([]models.Fact, error) {
	return s.repo.Category(ctx, models.NormalizeCategory(name))
}

// Fact resolves a fact by id.
func (s *Catalog) Fact(ctx context.Context, id int) (models.FactPage, error) {
	return s.repo.Fact(ctx, id)
}

// AddFact creates a new fact.
func (s *Catalog) AddFact(ctx context.Context, category, title, text, image string) (models.Fact, error) {
	return s.repo.AddFact(ctx, category, title, text, image)
}

// RemoveFact deletes a fact by id.
func (s *Catalog) RemoveFact(ctx context.Context, id int) error {
	return s.repo.RemoveFact(ctx, id)
}

// Search returns all facts matching the query.
func (s *Catalog) Search(ctx context.Context, query string) ([]models.Fact, error) {
	return s.repo.Search(ctx, query)
}
