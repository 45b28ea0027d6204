// Package ratelimit provides a token bucket rate limiter used to
// throttle chatty skill users. Each user gets an independent bucket;
// buckets that refill completely are dropped to bound memory.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter implements a token bucket. It is safe for concurrent use.
type Limiter struct {
	mu         sync.Mutex
	tokens     float64
	burst      float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	now        func() time.Time
}

// New creates a limiter holding at most burst tokens, refilled at
// refillRate tokens per second. The bucket starts full.
func New(burst, refillRate float64) *Limiter {
	return &Limiter{
		tokens:     burst,
		burst:      burst,
		refillRate: refillRate,
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// refill adds tokens for the time elapsed since the last refill.
// Must be called with mu held.
func (l *Limiter) refill() {
	now := l.now()
	elapsed := now.Sub(l.lastRefill).Seconds()

	l.tokens += elapsed * l.refillRate
	if l.tokens > l.burst {
		l.tokens = l.burst
	}
	l.lastRefill = now
}

// Allow consumes a token if one is available. Non-blocking.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()

	if l.tokens >= 1.0 {
		l.tokens -= 1.0
		return true
	}
	return false
}

// Available returns the current number of tokens.
func (l *Limiter) Available() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens
}

// IsFull reports whether the bucket is back at capacity. Used to
// detect inactive limiters eligible for cleanup.
func (l *Limiter) IsFull() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens >= l.burst
}
