// Package session implements cookie-backed, server-side visitor sessions.
// The browser holds only an opaque token; all session state lives in the
// manager and is lost on restart.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akulikov/facthub/internal/throttle"
)

// CookieName is the name of the session token cookie.
const CookieName = "facthub_session"

// Session is the typed per-visitor record carried across requests: the
// logged-in username, if any, and the anonymous-view tracker. All access
// goes through methods so the throttle invariants hold under concurrent
// requests from the same browser.
type Session struct {
	mu       sync.Mutex
	token    string
	username string
	tracker  *throttle.Tracker
	expires  time.Time
}

// Token returns the opaque token identifying this session.
func (s *Session) Token() string {
	return s.token
}

// User returns the logged-in username and whether one is set.
func (s *Session) User() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username, s.username != ""
}

// Login marks the session as authenticated and drops the anonymous-view
// tracking, so a previously blocked visitor can browse again immediately.
func (s *Session) Login(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.tracker = throttle.NewTracker()
}

// Logout clears the username and the view tracking.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
	s.tracker = throttle.NewTracker()
}

// RecordView runs the anonymous-view throttle for one fact view. Callers
// only invoke it for sessions without a logged-in user.
func (s *Session) RecordView(factID int, now time.Time) throttle.Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.RecordView(factID, now.Unix())
}

// Manager owns every live session, keyed by token, and expires idle ones.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewManager returns a manager whose sessions expire after ttl of idleness.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Get returns the live session identified by the request's cookie, or nil
// if the request carries no token or the token is unknown or expired.
// A hit slides the session's expiry forward.
func (m *Manager) Get(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[cookie.Value]
	if !ok {
		return nil
	}
	now := time.Now()
	if s.expires.Before(now) {
		delete(m.sessions, cookie.Value)
		return nil
	}
	s.expires = now.Add(m.ttl)
	return s
}

// Ensure returns the request's session, creating one and setting the token
// cookie when the visitor has none yet.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) *Session {
	if s := m.Get(r); s != nil {
		return s
	}

	s := &Session{
		token:   uuid.NewString(),
		tracker: throttle.NewTracker(),
		expires: time.Now().Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[s.token] = s
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// Destroy discards the request's session server-side and expires the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil {
		m.mu.Lock()
		delete(m.sessions, cookie.Value)
		m.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// purge drops every session whose expiry lies before now and returns how
// many were removed.
func (m *Manager) purge(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, s := range m.sessions {
		if s.expires.Before(now) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}
