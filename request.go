package relaypath

import (
	"github.com/relaypath/relaypath/internal/reqparser"
	"github.com/relaypath/relaypath/internal/uri"
)

// Request is the structured value produced by the request parser, carried
// through the router and into every handler/middleware in the chain. It is
// a re-export of internal/reqparser.Request: Method, URI, Version and
// Headers come from the wire; URIParam is filled in by the router from the
// route pattern's placeholder bindings, and URIQuery by
// middleware/queryparser from URI.Query.
type Request = reqparser.Request

// URI is the parsed Request-URI: scheme, host, port, abs_path, query and
// fragment, every field percent-decoded once parsing accepts.
type URI = uri.URI
