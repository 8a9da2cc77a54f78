// Package ratelimit provides admission control for the conversion service:
// a fixed-window per-client limiter guarding the front door, and a per-host
// egress limiter pacing outbound fetches.
package ratelimit

import (
	"sync"
	"time"

	"github.com/inkfold/pagemark"
)

// Window defaults.
const (
	DefaultWindow     = time.Minute
	DefaultLimit      = 20
	DefaultMaxClients = 10_000
)

// Ensure Window implements pagemark.Limiter at compile time.
var _ pagemark.Limiter = (*Window)(nil)

type bucket struct {
	count   int
	resetAt time.Time
}

// Window is a fixed-window per-client admission limiter. The window is
// deliberately non-sliding: bursts straddling a window boundary are
// accepted as a known tradeoff. State is local to one process.
//
// Window is safe for concurrent use.
type Window struct {
	mu         sync.Mutex
	buckets    map[string]bucket
	limit      int
	window     time.Duration
	maxClients int
	now        func() time.Time
}

// Option configures a Window.
type Option func(*Window)

// WithWindow sets the window duration. Defaults to DefaultWindow.
func WithWindow(d time.Duration) Option {
	return func(w *Window) {
		w.window = d
	}
}

// WithLimit sets the number of admissions per client per window.
// Defaults to DefaultLimit.
func WithLimit(n int) Option {
	return func(w *Window) {
		w.limit = n
	}
}

// WithMaxClients bounds the number of tracked clients. When the bound is
// reached, expired buckets are swept and, if necessary, the bucket closest
// to expiry is evicted. Defaults to DefaultMaxClients.
func WithMaxClients(n int) Option {
	return func(w *Window) {
		w.maxClients = n
	}
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(w *Window) {
		w.now = now
	}
}

// NewWindow creates a fixed-window limiter.
func NewWindow(opts ...Option) *Window {
	w := &Window{
		buckets:    make(map[string]bucket),
		limit:      DefaultLimit,
		window:     DefaultWindow,
		maxClients: DefaultMaxClients,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Admit records a request from the client and decides whether it may
// proceed. An expired bucket is replaced, never incremented.
func (w *Window) Admit(clientID string) pagemark.Decision {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()

	b, ok := w.buckets[clientID]
	if !ok || !now.Before(b.resetAt) {
		if len(w.buckets) >= w.maxClients {
			w.evict(now)
		}
		w.buckets[clientID] = bucket{count: 1, resetAt: now.Add(w.window)}
		return pagemark.Decision{Allowed: true}
	}

	if b.count < w.limit {
		b.count++
		w.buckets[clientID] = b
		return pagemark.Decision{Allowed: true}
	}

	return pagemark.Decision{
		Allowed:    false,
		RetryAfter: ceilSeconds(b.resetAt.Sub(now)),
	}
}

// Len returns the number of tracked clients.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.buckets)
}

// evict drops expired buckets and, if the map is still at capacity, the
// live bucket closest to expiry. Must be called with mu held.
func (w *Window) evict(now time.Time) {
	for id, b := range w.buckets {
		if !now.Before(b.resetAt) {
			delete(w.buckets, id)
		}
	}
	if len(w.buckets) < w.maxClients {
		return
	}

	var oldest string
	var oldestAt time.Time
	for id, b := range w.buckets {
		if oldest == "" || b.resetAt.Before(oldestAt) {
			oldest, oldestAt = id, b.resetAt
		}
	}
	delete(w.buckets, oldest)
}

// ceilSeconds rounds a duration up to whole seconds, with a floor of 1s so
// denied clients always receive a positive retry hint.
func ceilSeconds(d time.Duration) time.Duration {
	s := d / time.Second
	if d%time.Second != 0 {
		s++
	}
	if s < 1 {
		s = 1
	}
	return s * time.Second
}
