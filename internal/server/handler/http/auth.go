package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/akulikov/facthub/internal/middleware"
	"github.com/akulikov/facthub/internal/models"
	"github.com/akulikov/facthub/internal/session"
)

// AccountService defines the account operations required by the auth
// handlers.
type AccountService interface {
	// Register creates a new account; a taken username yields
	// models.ErrAlreadyExists.
	Register(ctx context.Context, username, password string) error
	// Authenticate checks a username/password pair; any mismatch yields
	// models.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) error
}

// AuthHandler handles login, registration, and logout. Successful login or
// registration resets the session's anonymous-view tracking, so a throttled
// visitor can browse again immediately.
type AuthHandler struct {
	// Accounts performs the underlying account operations.
	Accounts AccountService
	// Sessions owns the visitor sessions.
	Sessions *session.Manager
	// Renderer writes the HTML pages.
	Renderer *Renderer
}

// LoginForm handles GET /login. The optional "message" query parameter is
// shown above the form; "next" is carried through the form submit.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := map[string]any{}
	if msg := q.Get("message"); msg != "" {
		data["Message"] = msg
	}
	if next := q.Get("next"); next != "" {
		data["Next"] = next
	}
	h.Renderer.Render(w, r, "login.html", data)
}

// Login handles POST /login. Invalid credentials re-render the form with an
// inline error; success stores the username in the session and redirects to
// the "next" query parameter or home.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	err := h.Accounts.Authenticate(r.Context(), username, password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		data := map[string]any{"Error": "Invalid username or password."}
		if next := r.URL.Query().Get("next"); next != "" {
			data["Next"] = next
		}
		h.Renderer.Render(w, r, "login.html", data)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.session(w, r).Login(username)

	next := r.URL.Query().Get("next")
	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, r, "register.html", nil)
}

// Register handles POST /register. A taken username re-renders the form
// with an inline error; success logs the new user in and redirects home.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	err := h.Accounts.Register(r.Context(), username, password)
	if errors.Is(err, models.ErrAlreadyExists) {
		h.Renderer.Render(w, r, "register.html", map[string]any{
			"Error": "Username already exists.",
		})
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.session(w, r).Login(username)
	http.Redirect(w, r, "/", http.StatusFound)
}

// session returns the request's session, preferring the one the session
// middleware attached; on requests outside the middleware chain a session is
// created directly.
func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	if s := middleware.SessionFromContext(r.Context()); s != nil {
		return s
	}
	return h.Sessions.Ensure(w, r)
}

// Logout handles GET /logout: the session is destroyed server-side and the
// visitor is sent home.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Destroy(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}
