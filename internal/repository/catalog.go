// Package repository provides PostgreSQL-backed persistence for the catalog
// and account services. It is optional; the default deployment runs on the
// in-memory store package instead.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akulikov/facthub/internal/models"
)

// categoryOrder sorts rows the way the in-memory catalog iterates: categories
// in order of first insertion, facts within a category in insertion order.
const categoryOrder = `(SELECT MIN(f2.pos) FROM facts f2 WHERE f2.category = facts.category), pos`

// PostgresCatalogRepository implements the catalog operations on top of a
// PostgreSQL database.
type PostgresCatalogRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCatalogRepository creates a PostgresCatalogRepository with the
// given database connection.
func NewPostgresCatalogRepository(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{DB: db}
}

// ListCategories returns all category keys sorted alphabetically.
func (r *PostgresCatalogRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT DISTINCT category FROM facts ORDER BY category`,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Category returns the facts of the named category in insertion order.
func (r *PostgresCatalogRepository) Category(ctx context.Context, name string) ([]models.Fact, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, text, image FROM facts WHERE category = $1 ORDER BY pos`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("select category facts: %w", err)
	}
	defer rows.Close()

	return scanFacts(rows)
}

// Fact resolves a fact by id with its category and neighbouring fact ids.
func (r *PostgresCatalogRepository) Fact(ctx context.Context, id int) (models.FactPage, error) {
	var category string
	err := r.DB.QueryRowContext(ctx,
		`SELECT category FROM facts WHERE id = $1`,
		id,
	).Scan(&category)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FactPage{}, models.ErrNotFound
	}
	if err != nil {
		return models.FactPage{}, fmt.Errorf("select fact: %w", err)
	}

	facts, err := r.Category(ctx, category)
	if err != nil {
		return models.FactPage{}, err
	}

	for i, f := range facts {
		if f.ID != id {
			continue
		}
		page := models.FactPage{Fact: f, Category: category}
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
	// The fact vanished between the two queries.
	return models.FactPage{}, models.ErrNotFound
}

// AddFact inserts a fact with id one above the current catalog-wide maximum.
func (r *PostgresCatalogRepository) AddFact(ctx context.Context, category, title, text, image string) (models.Fact, error) {
	if category == "" || title == "" || text == "" || image == "" {
		return models.Fact{}, models.ErrValidation
	}
	key := models.NormalizeCategory(category)

	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO facts (id, category, title, text, image)
		 SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4 FROM facts
		 RETURNING id`,
		key, title, text, image,
	).Scan(&id)
	if err != nil {
		return models.Fact{}, fmt.Errorf("insert fact: %w", err)
	}
	return models.Fact{ID: id, Title: title, Text: text, Image: image}, nil
}

// RemoveFact deletes a fact by id. Category pruning is implicit: categories
// exist only as values on fact rows.
func (r *PostgresCatalogRepository) RemoveFact(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM facts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete fact: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Search matches the query against titles and texts, case-insensitively, in
// catalog iteration order.
func (r *PostgresCatalogRepository) Search(ctx context.Context, query string) ([]models.Fact, error) {
	if query == "" {
		return nil, nil
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, text, image FROM facts
		 WHERE title ILIKE '%' || $1 || '%' OR text ILIKE '%' || $1 || '%'
		 ORDER BY `+categoryOrder,
		query,
	)
	if err != nil {
		return nil, fmt.Errorf("search facts: %w", err)
	}
	defer rows.Close()

	return scanFacts(rows)
}

func scanFacts(rows *sql.Rows) ([]models.Fact, error) {
	var facts []models.Fact
	for rows.Next() {
		var f models.Fact
		if err := rows.Scan(&f.ID, &f.Title, &f.Text, &f.Image); err != nil {
			return nil, fmt.Errorf("scan fact: %w", err)
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}
