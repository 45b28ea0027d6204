package ratelimit

import (
	"sync"
	"time"
)

// PerUserConfig configures a PerUser limiter.
type PerUserConfig struct {
	// Burst is the maximum number of requests a user can make at once.
	Burst float64

	// RefillRate is how many tokens a user regains per second.
	RefillRate float64

	// CleanupPeriod is how often idle buckets are dropped.
	CleanupPeriod time.Duration

	// OnDrop is called each time a request is rejected. May be nil.
	OnDrop func()
}

// PerUser tracks one token bucket per user ID and drops buckets that
// have refilled completely. Call Stop when done to end the cleanup
// goroutine.
type PerUser struct {
	mu       sync.RWMutex
	limiters map[string]*Limiter
	cfg      PerUserConfig
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewPerUser creates a per-user limiter and starts its cleanup loop.
func NewPerUser(cfg PerUserConfig) *PerUser {
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = 5 * time.Minute
	}

	p := &PerUser{
		limiters: make(map[string]*Limiter),
		cfg:      cfg,
		stopCh:   make(chan struct{}),
	}
	go p.cleanupLoop()
	return p
}

// Allow reports whether a request from userID may proceed, consuming a
// token when it does. Requests without a user ID are always allowed.
func (p *PerUser) Allow(userID string) bool {
	if userID == "" {
		return true
	}

	if p.get(userID).Allow() {
		return true
	}
	if p.cfg.OnDrop != nil {
		p.cfg.OnDrop()
	}
	return false
}

func (p *PerUser) get(userID string) *Limiter {
	p.mu.RLock()
	l, ok := p.limiters[userID]
	p.mu.RUnlock()
	if ok {
		return l
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok = p.limiters[userID]; ok {
		return l
	}
	l = New(p.cfg.Burst, p.cfg.RefillRate)
	p.limiters[userID] = l
	return l
}

// ActiveCount returns the number of tracked buckets.
func (p *PerUser) ActiveCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.limiters)
}

func (p *PerUser) cleanupLoop() {
	ticker := time.NewTicker(p.cfg.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.mu.Lock()
			for id, l := range p.limiters {
				if l.IsFull() {
					delete(p.limiters, id)
				}
			}
			p.mu.Unlock()
		}
	}
}

// Stop ends the cleanup goroutine. Safe to call multiple times.
func (p *PerUser) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}
