// Package queryparser populates Request.URIQuery from the raw query string
// the request parser leaves in Request.URI.Query, grounded on the
// Theros/src/middlewares/QueryParser.h make_query middleware this spec was
// distilled from (SPEC_FULL.md §5 "SUPPLEMENTED FEATURES").
package queryparser

import (
	relaypath "github.com/relaypath/relaypath"
	"github.com/relaypath/relaypath/internal/uri"
)

// New returns middleware that parses c.Request.URI.Query into
// c.Request.URIQuery using the '&'/'=' splitting rules of internal/uri.MakeQuery,
// then continues the chain. Register it with Router.Use at the patterns
// where handlers need c.Query to work.
func New() relaypath.Middleware {
	return func(c *relaypath.Ctx) {
		if c.Request != nil && c.Request.URI.Query != "" {
			c.Request.URIQuery = uri.MakeQuery(c.Request.URI.Query)
		}
		c.Next()
	}
}
