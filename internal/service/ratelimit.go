package service

import (
	"sync"
	"time"
)

const (
	sweepInterval = 5 * time.Minute
	idleTTL       = 10 * time.Minute
)

// TokenBucket is an in-memory per-key rate limiter. Each key may burst up to
// perMinute requests and refills at perMinute per minute. It is safe for
// concurrent use. Call Stop to end the background sweeper.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens per second
	capacity float64
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewTokenBucket creates a limiter allowing perMinute requests per key per
// minute. It starts a goroutine that drops keys idle for ten minutes.
func NewTokenBucket(perMinute int) *TokenBucket {
	tb := newTokenBucket(perMinute, time.Now)
	go tb.sweepLoop()
	return tb
}

func newTokenBucket(perMinute int, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		buckets:  make(map[string]*bucket),
		rate:     float64(perMinute) / 60,
		capacity: float64(perMinute),
		now:      now,
		done:     make(chan struct{}),
	}
}

// Allow reports whether key may proceed, consuming one token if so.
func (tb *TokenBucket) Allow(key string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.capacity, last: now}
		tb.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*tb.rate, tb.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Stop ends the sweeper goroutine. It is safe to call more than once.
func (tb *TokenBucket) Stop() {
	tb.stopOnce.Do(func() { close(tb.done) })
}

func (tb *TokenBucket) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			tb.sweep()
		case <-tb.done:
			return
		}
	}
}

func (tb *TokenBucket) sweep() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	cutoff := tb.now().Add(-idleTTL)
	for key, b := range tb.buckets {
		if b.last.Before(cutoff) {
			delete(tb.buckets, key)
		}
	}
}
