package ratelimit

import (
	"testing"
	"time"

	relaypath "github.com/relaypath/relaypath"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1, cfg.Requests)
	assert.Equal(t, 5, cfg.Burst)
	assert.Equal(t, time.Minute, cfg.Duration)
	assert.Equal(t, time.Hour, cfg.ExpiresIn)
}

func TestLimiterSetGetIsPerVisitor(t *testing.T) {
	set := newLimiterSet(Config{Requests: 1, Burst: 1, Duration: time.Minute, ExpiresIn: time.Hour})

	a := set.get("1.2.3.4")
	b := set.get("5.6.7.8")
	assert.NotSame(t, a, b)
	assert.Same(t, a, set.get("1.2.3.4"))
}

func TestLimiterSetEnforcesBurst(t *testing.T) {
	set := newLimiterSet(Config{Requests: 1, Burst: 2, Duration: time.Minute, ExpiresIn: time.Hour})
	limiter := set.get("1.2.3.4")

	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestMiddlewareAllowsWithinBurst(t *testing.T) {
	mw := New(Config{Requests: 1, Burst: 2, Duration: time.Minute, ExpiresIn: time.Hour})

	req := &relaypath.Request{Method: relaypath.Get, URI: relaypath.URI{AbsPath: "/"}}

	for i := 0; i < 2; i++ {
		c := relaypath.NewCtx(req)
		mw(c)
		assert.Equal(t, relaypath.StatusOK, c.StatusCode())
	}
}

func TestMiddlewareRejectsOverBurst(t *testing.T) {
	mw := New(Config{Requests: 1, Burst: 1, Duration: time.Minute, ExpiresIn: time.Hour})
	req := &relaypath.Request{Method: relaypath.Get, URI: relaypath.URI{AbsPath: "/"}}

	first := relaypath.NewCtx(req)
	mw(first)
	assert.Equal(t, relaypath.StatusOK, first.StatusCode())

	second := relaypath.NewCtx(req)
	mw(second)
	assert.Equal(t, relaypath.StatusTooManyRequests, second.StatusCode())
}

func TestMiddlewareTracksVisitorsIndependently(t *testing.T) {
	mw := New(Config{Requests: 1, Burst: 1, Duration: time.Minute, ExpiresIn: time.Hour})

	reqA := &relaypath.Request{Method: relaypath.Get, URI: relaypath.URI{AbsPath: "/"}}
	ctxA1 := relaypath.NewCtx(reqA)
	ctxA1.RemoteAddr = "10.0.0.1"
	mw(ctxA1)
	assert.Equal(t, relaypath.StatusOK, ctxA1.StatusCode())

	ctxA2 := relaypath.NewCtx(reqA)
	ctxA2.RemoteAddr = "10.0.0.1"
	mw(ctxA2)
	assert.Equal(t, relaypath.StatusTooManyRequests, ctxA2.StatusCode())

	ctxB := relaypath.NewCtx(reqA)
	ctxB.RemoteAddr = "10.0.0.2"
	mw(ctxB)
	assert.Equal(t, relaypath.StatusOK, ctxB.StatusCode())
}

func TestMiddlewareStopsChainOnReject(t *testing.T) {
	mw := New(Config{Requests: 1, Burst: 1, Duration: time.Minute, ExpiresIn: time.Hour})
	reachedCount := 0
	next := func(c *relaypath.Ctx) { reachedCount++ }

	req := &relaypath.Request{Method: relaypath.Get, URI: relaypath.URI{AbsPath: "/"}}
	chain := relaypath.Chain{relaypath.Handler(mw), next}

	relaypath.NewCtxWithChain(req, chain, nil)
	assert.Equal(t, 1, reachedCount)

	relaypath.NewCtxWithChain(req, chain, nil)
	assert.Equal(t, 1, reachedCount, "the handler after the limiter must not run once the burst is exhausted")
}
