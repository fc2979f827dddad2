package ratelimit

import (
	"context"
	"sync"
	"time"
)

// SlidingWindow implements per-key sliding-window admission control: each key
// keeps the timestamps of its recent requests, pruned to the trailing window
// on every check. With the defaults (max 1 request per 20s window) a source
// gets at most one accepted submission every 20 seconds.
type SlidingWindow struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
	max     int
	window  time.Duration

	cleanupInterval time.Duration
	lastCleanup     time.Time
}

// NewSlidingWindow creates a limiter allowing max requests per window per key.
func NewSlidingWindow(max int, window time.Duration) *SlidingWindow {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = 20 * time.Second
	}

	return &SlidingWindow{
		buckets:         make(map[string][]time.Time),
		max:             max,
		window:          window,
		cleanupInterval: 10 * time.Minute,
		lastCleanup:     time.Now(),
	}
}

// Admit reports whether a request from key at time now is allowed. When
// denied, retryAfter is the number of whole seconds until the oldest counted
// request leaves the window (never negative). The context and error exist for
// signature parity with the Redis limiter; the in-memory implementation never
// fails.
func (l *SlidingWindow) Admit(_ context.Context, key string, now time.Time) (allowed bool, retryAfter int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)

	recent := l.buckets[key][:0]
	for _, t := range l.buckets[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.buckets[key] = recent

		wait := recent[0].Add(l.window).Sub(now)
		secs := int((wait + time.Second - 1) / time.Second)
		if secs < 0 {
			secs = 0
		}

		l.maybeCleanup(now)
		return false, secs, nil
	}

	l.buckets[key] = append(recent, now)
	l.maybeCleanup(now)

	return true, 0, nil
}

// Reset drops the bucket for a key.
func (l *SlidingWindow) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// maybeCleanup drops keys whose every entry has aged out of the window, so
// one-off sources do not accumulate forever. Caller holds the lock.
func (l *SlidingWindow) maybeCleanup(now time.Time) {
	if now.Sub(l.lastCleanup) < l.cleanupInterval {
		return
	}

	cutoff := now.Add(-l.window)
	for key, times := range l.buckets {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(l.buckets, key)
		}
	}

	l.lastCleanup = now
}

// Stats returns limiter statistics for diagnostics.
func (l *SlidingWindow) Stats() map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	return map[string]interface{}{
		"active_buckets": len(l.buckets),
		"max_requests":   l.max,
		"window":         l.window.String(),
	}
}
