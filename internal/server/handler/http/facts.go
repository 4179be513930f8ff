package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akulikov/facthub/internal/middleware"
	"github.com/akulikov/facthub/internal/models"
	"github.com/akulikov/facthub/internal/throttle"
)

// CatalogService defines the catalog operations required by the fact
// handlers.
type CatalogService interface {
	// ListCategories returns the sorted category keys.
	ListCategories(ctx context.Context) ([]string, error)
	// Category returns the facts of the named category in insertion order.
	Category(ctx context.Context, name string) ([]models.Fact, error)
	// Fact resolves a fact by id with its category and neighbours.
	Fact(ctx context.Context, id int) (models.FactPage, error)
	// AddFact creates a fact with the next catalog-wide id.
	AddFact(ctx context.Context, category, title, text, image string) (models.Fact, error)
	// RemoveFact deletes a fact by id.
	RemoveFact(ctx context.Context, id int) error
	// Search matches the query against fact titles and texts.
	Search(ctx context.Context, query string) ([]models.Fact, error)
}

// FactHandler handles the catalog pages: category listings, single fact
// views with the anonymous-view throttle, fact creation and removal, and
// search.
type FactHandler struct {
	// Catalog performs the underlying catalog operations.
	Catalog CatalogService
	// Renderer writes the HTML pages.
	Renderer *Renderer
}

// Categories handles GET /categories.
func (h *FactHandler) Categories(w http.ResponseWriter, r *http.Request) {
	names, err := h.Catalog.ListCategories(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.Renderer.Render(w, r, "categories.html", map[string]any{
		"Categories": names,
	})
}

// Category handles GET /category/{name}. The path segment is matched
// case-insensitively; an absent or empty category yields a plain 404.
func (h *FactHandler) Category(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	facts, err := h.Catalog.Category(r.Context(), name)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if len(facts) == 0 {
		http.Error(w, "Category not found!", http.StatusNotFound)
		return
	}
	h.Renderer.Render(w, r, "category_facts.html", map[string]any{
		"CategoryName": name,
		"Facts":        facts,
	})
}

// Fact handles GET /fact/{id}. Anonymous visitors pass through the view
// throttle after the fact is resolved; a deny redirects to the login page
// with the original URL as the next target.
func (h *FactHandler) Fact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Fact not found!", http.StatusNotFound)
		return
	}

	page, err := h.Catalog.Fact(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "Fact not found!", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if s := middleware.SessionFromContext(r.Context()); s != nil {
		if _, loggedIn := s.User(); !loggedIn {
			if verdict := s.RecordView(id, time.Now()); verdict != throttle.Allow {
				target := "/login?next=" + url.QueryEscape(r.URL.RequestURI()) +
					"&message=" + url.QueryEscape(verdict.Message())
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
		}
	}

	h.Renderer.Render(w, r, "single_fact.html", map[string]any{
		"Fact":     page.Fact,
		"Category": page.Category,
		"PrevID":   page.PrevID,
		"NextID":   page.NextID,
	})
}

// AddFactForm handles GET /add_fact. Login is enforced by route middleware.
func (h *FactHandler) AddFactForm(w http.ResponseWriter, r *http.Request) {
	h.renderAddFact(w, r, "")
}

// AddFact handles POST /add_fact. A missing field re-renders the form with
// an inline error; success redirects to the fact's category page.
func (h *FactHandler) AddFact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	category := r.FormValue("category")
	_, err := h.Catalog.AddFact(r.Context(),
		category,
		r.FormValue("title"),
		r.FormValue("text"),
		r.FormValue("image"),
	)
	if errors.Is(err, models.ErrValidation) {
		h.renderAddFact(w, r, "All fields are required.")
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/category/"+models.NormalizeCategory(category), http.StatusFound)
}

func (h *FactHandler) renderAddFact(w http.ResponseWriter, r *http.Request, errMsg string) {
	names, err := h.Catalog.ListCategories(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data := map[string]any{"Categories": names}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	h.Renderer.Render(w, r, "add_fact.html", data)
}

// RemoveFact handles POST /remove_fact/{id}. Login is enforced by route
// middleware.
func (h *FactHandler) RemoveFact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Fact not found for removal.", http.StatusNotFound)
		return
	}

	err = h.Catalog.RemoveFact(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "Fact not found for removal.", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Search handles GET /search?query=...
func (h *FactHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	results, err := h.Catalog.Search(r.Context(), query)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.Renderer.Render(w, r, "search_results.html", map[string]any{
		"Query":   query,
		"Results": results,
	})
}
