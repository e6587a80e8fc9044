// Package ratelimit implements token-bucket rate limiting per remote
// address, built on golang.org/x/time/rate, for registration via
// Router.Use the same way cors and queryparser attach.
package ratelimit

import (
	"sync"
	"time"

	relaypath "github.com/relaypath/relaypath"
	"golang.org/x/time/rate"
)

// Config holds the configuration settings for rate limiting, such as requests per duration, burst size, and expiration time.
type Config struct {
	Requests  int           // Max requests per duration
	Burst     int           // Burst size
	Duration  time.Duration // Duration window (e.g., 1 minute)
	ExpiresIn time.Duration // Visitor entry expiration
}

// DefaultConfig returns sensible rate-limit defaults.
func DefaultConfig() Config {
	return Config{
		Requests:  1,
		Burst:     5,
		Duration:  time.Minute,
		ExpiresIn: time.Hour,
	}
}

// visitor represents a client with a rate limiter and the last recorded activity time.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet tracks one visitor map per middleware instance, so multiple
// New() calls (e.g. different Config per route group) don't share state.
type limiterSet struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	cfg      Config
}

func newLimiterSet(cfg Config) *limiterSet {
	s := &limiterSet{visitors: make(map[string]*visitor), cfg: cfg}
	go s.cleanupLoop()
	return s
}

func (s *limiterSet) cleanupLoop() {
	for {
		time.Sleep(time.Minute)
		s.mu.Lock()
		for ip, v := range s.visitors {
			if time.Since(v.lastSeen) > s.cfg.ExpiresIn {
				delete(s.visitors, ip)
			}
		}
		s.mu.Unlock()
	}
}

func (s *limiterSet) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.visitors[ip]
	if !exists {
		limit := rate.Every(s.cfg.Duration / time.Duration(s.cfg.Requests))
		v = &visitor{limiter: rate.NewLimiter(limit, s.cfg.Burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// New returns middleware enforcing cfg's token-bucket limit per c.IP(). A
// request over the limit gets a 429 response and never reaches the rest of
// the chain.
func New(config ...Config) relaypath.Middleware {
	cfg := DefaultConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	set := newLimiterSet(cfg)

	return func(c *relaypath.Ctx) {
		if !set.get(c.IP()).Allow() {
			c.Status(relaypath.StatusTooManyRequests).JSON(map[string]interface{}{
				"message": "rate limit reached",
			})
			return
		}
		c.Next()
	}
}
