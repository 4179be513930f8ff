package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/akulikov/facthub/internal/models"
)

func setupCatalogMock(t *testing.T) (*PostgresCatalogRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresCatalogRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestListCategories_ReturnsSortedNames(t *testing.T) {
	repo, mock, cleanup := setupCatalogMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT category FROM facts ORDER BY category`)).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("science").AddRow("world"))

	names, err := repo.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "science" || names[1] != "world" {
		t.Errorf("ListCategories = %v; want [science world]", names)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestAddFact_AssignsNextID(t *testing.T) {
	repo, mock, cleanup := setupCatalogMock(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO facts`).
		WithArgs("ancient_history", "T", "X", "http://x/img").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	fact, err := repo.AddFact(context.Background(), "Ancient History", "T", "X", "http://x/img")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fact.ID != 5 {
		t.Errorf("AddFact id = %d; want 5", fact.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestAddFact_EmptyFieldFailsWithoutQuery(t *testing.T) {
	repo, mock, cleanup := setupCatalogMock(t)
	defer cleanup()

	_, err := repo.AddFact(context.Background(), "world", "", "X", "http://x/img")
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("AddFact error = %v; want ErrValidation", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFact_ResolvesNeighbours(t *testing.T) {
	repo, mock, cleanup := setupCatalogMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT category FROM facts WHERE id = $1`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("world"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, text, image FROM facts WHERE category = $1 ORDER BY pos`)).
		WithArgs("world").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "text", "image"}).
			AddRow(1, "a", "x", "http://x/1").
			AddRow(2, "b", "x", "http://x/2").
			AddRow(3, "c", "x", "http://x/3"))

	page, err := repo.Fact(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Category != "world" {
		t.Errorf("Fact category = %q; want %q", page.Category, "world")
	}
	if page.PrevID == nil || *page.PrevID != 1 {
		t.Errorf("Fact prev = %v; want 1", page.PrevID)
	}
	if page.NextID == nil || *page.NextID != 3 {
		t.Errorf("Fact next = %v; want 3", page.NextID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFact_UnknownID(t *testing.T) {
	repo, mock, cleanup := setupCatalogMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT category FROM facts WHERE id = $1`)).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"category"}))

	_, err := repo.Fact(context.Background(), 42)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Fact error = %v; want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestRemoveFact_NotFound(t *testing.T) {
	repo, mock, cleanup := setupCatalogMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM facts WHERE id = $1`)).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RemoveFact(context.Background(), 42)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("RemoveFact error = %v; want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSearch_EmptyQuerySkipsDatabase(t *testing.T) {
	repo, mock, cleanup := setupCatalogMock(t)
	defer cleanup()

	results, err := repo.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search = %v; want no results", results)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSearch_MatchesTitleOrText(t *testing.T) {
	repo, mock, cleanup := setupCatalogMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT id, title, text, image FROM facts`).
		WithArgs("owls").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "text", "image"}).
			AddRow(1, "Fact about Owls", "parliament", "http://x/1"))

	results, err := repo.Search(context.Background(), "owls")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].ID != 1 {
		t.Errorf("Search = %v; want the owl fact", results)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
