package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/akulikov/facthub/internal/session"
)

type ctxKey string

const sessionKey ctxKey = "session"

// WithSession ensures every request carries a session, creating one and
// setting the token cookie on first contact, and stores the session in the
// request context for downstream handlers.
func WithSession(m *session.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := m.Ensure(w, r)
			ctx := context.WithValue(r.Context(), sessionKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the session stored by WithSession. Returns nil
// if the middleware did not run.
func SessionFromContext(ctx context.Context) *session.Session {
	val := ctx.Value(sessionKey)
	if s, ok := val.(*session.Session); ok {
		return s
	}
	return nil
}

// RequireLogin redirects requests without a logged-in session to the login
// page, carrying the given message as a query parameter.
func RequireLogin(message string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := SessionFromContext(r.Context())
			if s == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			if _, ok := s.User(); !ok {
				http.Redirect(w, r, "/login?message="+url.QueryEscape(message), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
