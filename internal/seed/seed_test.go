package seed

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulikov/facthub/internal/store"
)

func TestApply_SeedsEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog()
	accounts := store.NewAccounts()

	require.NoError(t, Apply(ctx, catalog, accounts, Default()))

	names, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"science", "world"}, names)

	// Seed order drives id assignment: the owl fact comes first.
	page, err := catalog.Fact(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Fact about Owls", page.Fact.Title)
	assert.Equal(t, "world", page.Category)

	assert.NoError(t, accounts.Authenticate(ctx, "testuser", "password123"))
}

func TestApply_SkipsNonEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog()
	accounts := store.NewAccounts()

	_, err := catalog.AddFact(ctx, "history", "T", "X", "http://x/img")
	require.NoError(t, err)

	require.NoError(t, Apply(ctx, catalog, accounts, Default()))

	names, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"history"}, names)
}

func TestApply_IsIdempotentForAccounts(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog()
	accounts := store.NewAccounts()

	require.NoError(t, Apply(ctx, catalog, accounts, Default()))
	require.NoError(t, Apply(ctx, catalog, accounts, Default()))
}

func TestLoad_ReadsSeedFile(t *testing.T) {
	data := Data{Facts: []Fact{{Category: "world", Title: "T", Text: "X", Image: "http://x/img"}}}
	raw, err := json.Marshal(data)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	got, err := Load("")
	require.NoError(t, err)
	assert.Len(t, got.Facts, 4)
	assert.Len(t, got.Accounts, 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
