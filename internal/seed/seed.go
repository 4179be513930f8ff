// Package seed loads the initial catalog content and demo accounts, either
// from a JSON file or from the compiled-in defaults.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/akulikov/facthub/internal/models"
)

// Fact is one seed entry; the catalog assigns the id on insert.
type Fact struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Image    string `json:"image"`
}

// Data is the full seed payload.
type Data struct {
	Facts    []Fact           `json:"facts"`
	Accounts []models.Account `json:"accounts"`
}

// CatalogWriter is the subset of catalog operations needed for seeding.
type CatalogWriter interface {
	ListCategories(ctx context.Context) ([]string, error)
	AddFact(ctx context.Context, category, title, text, image string) (models.Fact, error)
}

// AccountWriter is the subset of account operations needed for seeding.
type AccountWriter interface {
	Register(ctx context.Context, username, password string) error
}

// Default returns the demo content the site ships with: two categories of
// facts and one test account.
func Default() Data {
	return Data{
		Facts: []Fact{
			{Category: "world", Title: "Fact about Owls", Text: "Did you know that a group of owls is called a parliament?", Image: "https://via.placeholder.com/400x250?text=Owl+Parliament"},
			{Category: "world", Title: "Fact about France", Text: "France is the most visited country in the world.", Image: "https://via.placeholder.com/400x250?text=France+Fact"},
			{Category: "science", Title: "Fact about Space", Text: "There are more stars in the universe than grains of sand on all the Earth's beaches.", Image: "https://via.placeholder.com/400x250?text=Space+Fact"},
			{Category: "science", Title: "Fact about Water", Text: "Hot water freezes faster than cold water (Mpemba effect).", Image: "https://via.placeholder.com/400x250?text=Water+Fact"},
		},
		Accounts: []models.Account{
			{Username: "testuser", Password: "password123"},
		},
	}
}

// Load reads a seed file. An empty path yields Default().
func Load(path string) (Data, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read seed file: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("parse seed file: %w", err)
	}
	return data, nil
}

// Apply inserts the seed content. A catalog that already has categories is
// left untouched so a persistent backend is not re-seeded on every start.
// Accounts that already exist are skipped.
func Apply(ctx context.Context, catalog CatalogWriter, accounts AccountWriter, data Data) error {
	names, err := catalog.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}

	if len(names) == 0 {
		for _, f := range data.Facts {
			if _, err := catalog.AddFact(ctx, f.Category, f.Title, f.Text, f.Image); err != nil {
				return fmt.Errorf("seed fact %q: %w", f.Title, err)
			}
		}
	}

	for _, acc := range data.Accounts {
		err := accounts.Register(ctx, acc.Username, acc.Password)
		if err != nil && !errors.Is(err, models.ErrAlreadyExists) {
			return fmt.Errorf("seed account %q: %w", acc.Username, err)
		}
	}
	return nil
}
