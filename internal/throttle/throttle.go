// Package throttle implements the anonymous-view rate limit: visitors who
// are not logged in may see at most WindowLimit distinct facts within the
// sliding Window, and at most LifetimeLimit distinct facts over the life of
// their session.
package throttle

const (
	// WindowLimit is the number of distinct facts an anonymous visitor may
	// view inside the sliding window before being redirected to login.
	WindowLimit = 5
	// LifetimeLimit is the number of distinct facts an anonymous visitor may
	// view over the whole session. The underlying set is never pruned, so a
	// session that crosses it stays blocked until the visitor logs in or
	// registers. Both checks are kept independent on purpose; see DESIGN.md.
	LifetimeLimit = 10
	// WindowSeconds is the width of the sliding window.
	WindowSeconds = 300
)

// Verdict is the outcome of recording one anonymous fact view.
type Verdict int

const (
	// Allow renders the fact.
	Allow Verdict = iota
	// DenyWindow redirects to login: too many distinct facts inside the window.
	DenyWindow
	// DenyLifetime redirects to login: the session-lifetime cap is exceeded.
	DenyLifetime
)

// Message returns the login-page message shown for a deny verdict, or ""
// for Allow.
func (v Verdict) Message() string {
	switch v {
	case DenyWindow:
		return "You've viewed too many facts. Please login to view more!"
	case DenyLifetime:
		return "You've viewed many facts. Please login to continue exploring!"
	default:
		return ""
	}
}

// Tracker holds the view bookkeeping of one anonymous session. It is not
// safe for concurrent use; the owning session serializes access.
type Tracker struct {
	// viewTimes maps fact id to the Unix timestamp of its last view. Entries
	// older than the window are pruned on every record.
	viewTimes map[int]int64
	// viewed is the set of fact ids ever seen by this session. It only grows.
	viewed map[int]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		viewTimes: make(map[int]int64),
		viewed:    make(map[int]struct{}),
	}
}

// RecordView registers a view of factID at the given Unix time and decides
// whether the view is allowed. Re-viewing the same fact overwrites its
// timestamp, so repeats never inflate the window count. The window check
// runs before the lifetime check.
func (t *Tracker) RecordView(factID int, now int64) Verdict {
	t.viewed[factID] = struct{}{}
	t.viewTimes[factID] = now

	cutoff := now - WindowSeconds
	for id, ts := range t.viewTimes {
		if ts < cutoff {
			delete(t.viewTimes, id)
		}
	}

	if len(t.viewTimes) > WindowLimit {
		return DenyWindow
	}
	if len(t.viewed) > LifetimeLimit {
		return DenyLifetime
	}
	return Allow
}

// UniqueRecent reports the number of distinct facts currently inside the
// window, as of the last RecordView.
func (t *Tracker) UniqueRecent() int {
	return len(t.viewTimes)
}

// LifetimeViewed reports the number of distinct facts seen by the session.
func (t *Tracker) LifetimeViewed() int {
	return len(t.viewed)
}
