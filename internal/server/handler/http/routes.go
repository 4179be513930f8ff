package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/akulikov/facthub/internal/middleware"
	"github.com/akulikov/facthub/internal/session"
)

// NewRouter constructs the HTTP handler serving the facts site.
//
// Routes:
//
//	GET  /                      → page.Home
//	GET  /about                 → page.About
//	GET|POST /contact           → page.ContactForm / page.Contact
//	GET  /search                → facts.Search
//	GET  /categories            → facts.Categories
//	GET  /category/{name}       → facts.Category
//	GET  /fact/{id}             → facts.Fact (anonymous views throttled)
//	GET|POST /login             → auth.LoginForm / auth.Login
//	GET|POST /register          → auth.RegisterForm / auth.Register
//	GET  /logout                → auth.Logout
//	GET|POST /add_fact          → facts.AddFactForm / facts.AddFact (login required)
//	POST /remove_fact/{id}      → facts.RemoveFact (login required)
//	GET  /static/*              → stylesheet and assets
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger) — logs incoming requests
//  2. WithSession(sessions)      — attaches the visitor session
func NewRouter(
	page *PageHandler,
	facts *FactHandler,
	auth *AuthHandler,
	sessions *session.Manager,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Every visitor gets a session; the fact-view throttle lives in it
	r.Use(middleware.WithSession(sessions))

	r.Get("/", page.Home)
	r.Get("/about", page.About)
	r.Get("/contact", page.ContactForm)
	r.Post("/contact", page.Contact)
	r.Get("/search", facts.Search)

	r.Get("/categories", facts.Categories)
	r.Get("/category/{name}", facts.Category)
	r.Get("/fact/{id}", facts.Fact)

	r.Get("/login", auth.LoginForm)
	r.Post("/login", auth.Login)
	r.Get("/register", auth.RegisterForm)
	r.Post("/register", auth.Register)
	r.Get("/logout", auth.Logout)

	// Mutations require a logged-in session, nothing more.
	r.Group(func(r chi.Router) {
		r.With(middleware.RequireLogin("Please login to add facts.")).
			Get("/add_fact", facts.AddFactForm)
		r.With(middleware.RequireLogin("Please login to add facts.")).
			Post("/add_fact", facts.AddFact)
		r.With(middleware.RequireLogin("Please login to remove facts.")).
			Post("/remove_fact/{id}", facts.RemoveFact)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return r
}
