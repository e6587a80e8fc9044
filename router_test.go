package relaypath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newGetRequest(path string) *Request {
	return &Request{Method: Get, URI: URI{AbsPath: path}}
}

// TestResolveAncestorChainOrdering covers the router scenario where a
// Use-registered middleware at "/" and a Get handler registered at
// "/user/<id>" must both appear in the resolved chain, root-to-leaf, with
// the placeholder bound from the matched path.
func TestResolveAncestorChainOrdering(t *testing.T) {
	r := NewRouter()

	var order []string
	mw := func(c *Ctx) { order = append(order, "mw"); c.Next() }
	h := func(c *Ctx) { order = append(order, "h") }

	r.Use("/", mw)
	r.Get("/user/<id>", h)

	chain, bindings := r.ResolveRequest(newGetRequest("/user/42"))
	if assert.Len(t, chain, 2) {
		req := newGetRequest("/user/42")
		params := map[string]string{}
		for _, b := range bindings {
			params[b.Name] = b.Value
		}
		NewCtxWithChain(req, chain, params)
		assert.Equal(t, []string{"mw", "h"}, order)
	}
	assert.Equal(t, []Binding{{Name: "id", Value: "42"}}, bindings)
}

// TestResolveDisambiguatesSiblingPlaceholders covers the router scenario
// where a node's two placeholder-bearing children only differ past a
// literal prefix: "/textbook/<author>" and
// "/textbook/publish_date/<date>". A residual of "publish_date/2004"
// fully satisfies <author> (binding author="publish_date") but must still
// resolve to the longer, more specific literal-prefixed route.
func TestResolveDisambiguatesSiblingPlaceholders(t *testing.T) {
	r := NewRouter()

	byAuthor := func(c *Ctx) { c.String("author") }
	byDate := func(c *Ctx) { c.String("date") }

	r.Get("/textbook/<author>", byAuthor)
	r.Get("/textbook/publish_date/<date>", byDate)

	chain, bindings := r.ResolveRequest(newGetRequest("/textbook/publish_date/2004"))
	if assert.Len(t, chain, 1) {
		assert.Equal(t, []Binding{{Name: "date", Value: "2004"}}, bindings)
	}

	chain, bindings = r.ResolveRequest(newGetRequest("/textbook/shakespeare"))
	if assert.Len(t, chain, 1) {
		assert.Equal(t, []Binding{{Name: "author", Value: "shakespeare"}}, bindings)
	}
}

func TestResolveUnmatchedYieldsEmptyChain(t *testing.T) {
	r := NewRouter()
	r.Get("/known", func(c *Ctx) {})

	chain, bindings := r.ResolveRequest(newGetRequest("/unknown"))
	assert.Empty(t, chain)
	assert.Empty(t, bindings)
}

func TestTableReturnsRegistrationOrder(t *testing.T) {
	r := NewRouter()
	r.Get("/a", func(c *Ctx) {})
	r.Get("/b", func(c *Ctx) {}, func(c *Ctx) {})

	table := r.Table(Get)
	if assert.Len(t, table, 2) {
		assert.Equal(t, Route{Pattern: "/a", Segments: []string{"a"}, HandlerCount: 1}, table[0])
		assert.Equal(t, Route{Pattern: "/b", Segments: []string{"b"}, HandlerCount: 2}, table[1])
	}
}

func TestUseRegistersAcrossEveryConcreteMethod(t *testing.T) {
	r := NewRouter()
	r.Use("/", func(c *Ctx) {})
	r.HandleMethods(allMethods, "/x", func(c *Ctx) {})

	for _, m := range allMethods {
		chain, _ := r.Resolve(m, "/x")
		assert.Lenf(t, chain, 2, "method %s", m)
	}
}
