package queryparser

import (
	"testing"

	relaypath "github.com/relaypath/relaypath"
	"github.com/stretchr/testify/assert"
)

func TestPopulatesURIQuery(t *testing.T) {
	req := &relaypath.Request{
		Method: relaypath.Get,
		URI:    relaypath.URI{AbsPath: "/search", Query: "q=go&page=2"},
	}
	c := relaypath.NewCtx(req)

	called := false
	chain := relaypath.Chain{New(), func(c *relaypath.Ctx) { called = true }}
	relaypath.NewCtxWithChain(req, chain, nil)

	assert.True(t, called)
	assert.Equal(t, "go", req.URIQuery["q"])
	assert.Equal(t, "2", req.URIQuery["page"])
	_ = c
}

func TestDropsTokensWithoutEquals(t *testing.T) {
	req := &relaypath.Request{
		Method: relaypath.Get,
		URI:    relaypath.URI{AbsPath: "/search", Query: "q=go&noequals&page=2"},
	}
	chain := relaypath.Chain{New(), func(c *relaypath.Ctx) {}}
	relaypath.NewCtxWithChain(req, chain, nil)

	_, ok := req.URIQuery[""]
	assert.False(t, ok)
	assert.Len(t, req.URIQuery, 2)
}

func TestNoQueryLeavesURIQueryNil(t *testing.T) {
	req := &relaypath.Request{Method: relaypath.Get, URI: relaypath.URI{AbsPath: "/search"}}
	chain := relaypath.Chain{New(), func(c *relaypath.Ctx) {}}
	relaypath.NewCtxWithChain(req, chain, nil)

	assert.Nil(t, req.URIQuery)
}
