package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/akulikov/facthub/internal/throttle"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// withToken builds a request carrying the session cookie set by Ensure.
func withToken(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "expected a session cookie to be set")

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookies[0])
	return req
}

func TestEnsure_CreatesSessionAndCookie(t *testing.T) {
	m := NewManager(time.Minute)

	rec := httptest.NewRecorder()
	s := m.Ensure(rec, httptest.NewRequest("GET", "/", nil))
	require.NotNil(t, s)
	assert.Equal(t, 1, m.Len())

	_, loggedIn := s.User()
	assert.False(t, loggedIn)

	got := m.Get(withToken(t, rec))
	assert.Same(t, s, got)
}

func TestEnsure_ReusesExistingSession(t *testing.T) {
	m := NewManager(time.Minute)

	rec := httptest.NewRecorder()
	s := m.Ensure(rec, httptest.NewRequest("GET", "/", nil))

	again := m.Ensure(httptest.NewRecorder(), withToken(t, rec))
	assert.Same(t, s, again)
	assert.Equal(t, 1, m.Len())
}

func TestGet_UnknownOrMissingToken(t *testing.T) {
	m := NewManager(time.Minute)

	assert.Nil(t, m.Get(httptest.NewRequest("GET", "/", nil)))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "bogus"})
	assert.Nil(t, m.Get(req))
}

func TestLogin_ResetsThrottleTracking(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Ensure(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	now := time.Now()
	var verdict throttle.Verdict
	for id := 1; id <= throttle.WindowLimit+1; id++ {
		verdict = s.RecordView(id, now)
	}
	require.Equal(t, throttle.DenyWindow, verdict)

	s.Login("testuser")
	name, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "testuser", name)

	// A fresh tracker: the next anonymous view is allowed again.
	s.Logout()
	assert.Equal(t, throttle.Allow, s.RecordView(99, now))
}

func TestDestroy_DropsSessionAndExpiresCookie(t *testing.T) {
	m := NewManager(time.Minute)

	rec := httptest.NewRecorder()
	m.Ensure(rec, httptest.NewRequest("GET", "/", nil))
	req := withToken(t, rec)

	out := httptest.NewRecorder()
	m.Destroy(out, req)
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Get(req))

	cookies := out.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestPurge_RemovesOnlyExpiredSessions(t *testing.T) {
	m := NewManager(time.Minute)

	m.Ensure(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	m.Ensure(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	require.Equal(t, 2, m.Len())

	assert.Equal(t, 0, m.purge(time.Now()))
	assert.Equal(t, 2, m.purge(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, m.Len())
}

func TestStartCleaner_StopsOnContextCancel(t *testing.T) {
	m := NewManager(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.StartCleaner(ctx, time.Millisecond, zap.NewNop())

	m.Ensure(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	// goleak in TestMain verifies the cleaner goroutine exits.
}
