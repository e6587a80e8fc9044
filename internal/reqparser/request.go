package reqparser

import "github.com/relaypath/relaypath/internal/uri"

// Request is the structured value the parser produces on Accept: method,
// URI, version, and headers, plus the two maps the surrounding framework
// fills in after the core hands back control — URIParam from the router's
// placeholder bindings, URIQuery from the query-parsing middleware. Body is
// never populated by the parser; body consumption is out of scope (spec
// §1 Non-goals).
type Request struct {
	Method   Method
	URI      uri.URI
	Version  Version
	Headers  Header
	Body     []byte
	URIParam map[string]string
	URIQuery map[string]string
}

// reset clears r in place (method Undetermined, version -1.-1, every other
// field empty), so a pooled Request can be reused across connections without
// a fresh allocation.
func (r *Request) reset() {
	r.Method = Undetermined
	r.URI = uri.URI{}
	r.Version = Version{Major: -1, Minor: -1}
	r.Headers = r.Headers[:0]
	r.Body = nil
	r.URIParam = nil
	r.URIQuery = nil
}
