package worker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Governor enforces a minimum interval between calls to each upstream
// source. Each source gets a rate.Limiter with a burst of one, so reserving
// a slot and stamping the last-call time is a single atomic step: two
// concurrent callers can never both observe "interval elapsed".
type Governor struct {
	mu        sync.RWMutex
	limiters  map[string]*rate.Limiter
	intervals map[string]time.Duration
	fallback  time.Duration
}

// NewGovernor creates a governor with the given default inter-call interval
func NewGovernor(defaultInterval time.Duration) *Governor {
	if defaultInterval <= 0 {
		defaultInterval = time.Second
	}
	return &Governor{
		limiters:  make(map[string]*rate.Limiter),
		intervals: make(map[string]time.Duration),
		fallback:  defaultInterval,
	}
}

// SetInterval configures a per-source minimum interval. Replaces any
// existing limiter for the source.
func (g *Governor) SetInterval(source string, interval time.Duration) {
	if interval <= 0 {
		interval = g.fallback
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intervals[source] = interval
	g.limiters[source] = rate.NewLimiter(rate.Every(interval), 1)
}

// Acquire blocks until the source's minimum interval has elapsed since the
// previous acquisition, then claims the slot. Returns early with the
// context's error on cancellation.
func (g *Governor) Acquire(ctx context.Context, source string) error {
	return g.limiter(source).Wait(ctx)
}

// Allow claims the source's slot without waiting, reporting whether the
// interval had elapsed
func (g *Governor) Allow(source string) bool {
	return g.limiter(source).Allow()
}

func (g *Governor) limiter(source string) *rate.Limiter {
	g.mu.RLock()
	l, ok := g.limiters[source]
	g.mu.RUnlock()
	if ok {
		return l
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if l, ok := g.limiters[source]; ok {
		return l
	}
	interval := g.intervals[source]
	if interval <= 0 {
		interval = g.fallback
	}
	l = rate.NewLimiter(rate.Every(interval), 1)
	g.limiters[source] = l
	return l
}
