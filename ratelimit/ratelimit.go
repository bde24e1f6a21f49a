// Package ratelimit implements the fixed-window request counter used to
// throttle order submissions and contact form posts per derived identity.
package ratelimit

import (
	"sync"
	"time"
)

type record struct {
	count     int
	resetTime time.Time
}

// Limiter is a fixed-window counter keyed by caller-derived strings
// (customer email hash + client IP). Windows reset at fixed boundaries, so
// bursts straddling a boundary can admit up to twice the per-window maximum;
// that approximation is intentional and kept for behavioral compatibility.
type Limiter struct {
	mu      sync.Mutex
	records map[string]*record
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// New returns a Limiter using the wall clock.
func New() *Limiter {
	return NewWithClock(time.Now)
}

// NewWithClock returns a Limiter with an injectable clock for tests.
func NewWithClock(now func() time.Time) *Limiter {
	return &Limiter{
		records: make(map[string]*record),
		now:     now,
		stop:    make(chan struct{}),
	}
}

// CheckAndConsume reports whether a request under key is admitted, and
// consumes one slot if so. A fresh or expired window starts at count 1.
// A denied call does not mutate the record.
func (l *Limiter) CheckAndConsume(key string, maxRequests int, window time.Duration) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.records[key]
	if !ok || now.After(r.resetTime) {
		l.records[key] = &record{count: 1, resetTime: now.Add(window)}
		return true
	}

	if r.count >= maxRequests {
		return false
	}

	r.count++
	return true
}

// StartSweep starts a background loop that drops expired records every
// interval, bounding map growth in a long-lived process.
func (l *Limiter) StartSweep(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-l.stop:
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}

func (l *Limiter) sweep() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, r := range l.records {
		if now.After(r.resetTime) {
			delete(l.records, key)
		}
	}
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Close stops the sweep loop. Safe to call more than once.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.stop) })
}
