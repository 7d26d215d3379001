// Package ratelimit provides a small in-memory sliding-window rate limiter
// keyed by an arbitrary string (typically the client IP).
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks request timestamps per key over a sliding window.
type Limiter struct {
	requests map[string][]time.Time
	mutex    sync.Mutex
	window   time.Duration
	limit    int
}

// New creates a limiter allowing limit requests per window for each key and
// starts a background goroutine that evicts stale keys.
func New(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		requests: make(map[string][]time.Time),
		window:   window,
		limit:    limit,
	}
	go l.cleanup()
	return l
}

// Allow reports whether a request for key should be let through, recording
// it when allowed.
func (l *Limiter) Allow(key string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	valid := l.requests[key][:0]
	for _, t := range l.requests[key] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= l.limit {
		l.requests[key] = valid
		return false
	}

	l.requests[key] = append(valid, now)
	return true
}

// cleanup drops keys that have seen no traffic for two windows.
func (l *Limiter) cleanup() {
	interval := l.window * 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		l.mutex.Lock()
		cutoff := time.Now().Add(-l.window * 2)
		for key, times := range l.requests {
			stale := true
			for _, t := range times {
				if t.After(cutoff) {
					stale = false
					break
				}
			}
			if stale {
				delete(l.requests, key)
			}
		}
		l.mutex.Unlock()
	}
}
