package worker

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestGovernor_FirstAcquireImmediate(t *testing.T) {
	g := NewGovernor(time.Second)
	ctx := context.Background()

	start := time.Now()
	if err := g.Acquire(ctx, "factcheck"); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first acquire should not wait, took %v", elapsed)
	}
}

func TestGovernor_EnforcesInterval(t *testing.T) {
	g := NewGovernor(time.Second)
	g.SetInterval("newsapi", 50*time.Millisecond)
	ctx := context.Background()

	if err := g.Acquire(ctx, "newsapi"); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	start := time.Now()
	if err := g.Acquire(ctx, "newsapi"); err != nil {
		t.Fatalf("second acquire failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected wait >= 50ms, got %v", elapsed)
	}
}

func TestGovernor_SourcesIndependent(t *testing.T) {
	g := NewGovernor(time.Hour)

	if !g.Allow("factcheck") {
		t.Errorf("first call for factcheck should pass")
	}
	if g.Allow("factcheck") {
		t.Errorf("second call for factcheck should be throttled")
	}
	// A different source has its own limiter
	if !g.Allow("newsapi") {
		t.Errorf("first call for newsapi should pass")
	}
}

func TestGovernor_CancelledContext(t *testing.T) {
	g := NewGovernor(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	if err := g.Acquire(ctx, "official"); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	cancel()
	if err := g.Acquire(ctx, "official"); err == nil {
		t.Errorf("expected error for cancelled context")
	}
}

func TestGovernor_ConcurrentAcquire(t *testing.T) {
	// With burst 1 and a measurable interval, N concurrent acquisitions
	// must spread over at least (N-1) intervals.
	g := NewGovernor(20 * time.Millisecond)
	ctx := context.Background()

	const n = 4
	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := g.Acquire(ctx, "factcheck"); err != nil {
				t.Errorf("acquire failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if elapsed := time.Since(start); elapsed < (n-1)*20*time.Millisecond {
		t.Errorf("expected %d acquisitions to take >= %v, got %v", n, (n-1)*20*time.Millisecond, elapsed)
	}
}
