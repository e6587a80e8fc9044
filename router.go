package relaypath

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/relaypath/relaypath/internal/radix"
	"github.com/relaypath/relaypath/internal/strkernel"
)

// compositeHandler is the single value a trie node can carry: one handle()
// call's worth of handlers, bundled under one monotonically assigned id.
// Registering the same pattern twice on the same method is a duplicate
// insert and is rejected by the trie, not by the router.
type compositeHandler struct {
	id       uint64
	pattern  string
	handlers []Handler
}

// methodSlot maps a concrete Method to an index into Router.tries. index 0
// is reserved for Undetermined, which never has routes registered against
// it and is skipped by every iteration below.
func methodSlot(m Method) int { return int(m) }

const methodCount = int(Trace) + 1

// Chain is the ordered list of handlers resolve produces for one request:
// root-to-leaf ancestor order, each composite's own handlers expanded in
// registration order.
type Chain []Handler

// Binding is one resolved route placeholder, e.g. {Name: "id", Value: "42"}.
type Binding = strkernel.Binding

// Route describes one registered (pattern, handler-count) pair, returned by
// Table for introspection — grounded on Router::operator<< / Router.table()
// in the original Theros/Summer sources. Segments is the pattern split on
// '/' via strkernel.SplitSegments, given to callers that want to reason
// about a route one path component at a time (e.g. a table-printing admin
// endpoint highlighting placeholder segments) without re-parsing Pattern.
type Route struct {
	Pattern      string
	Segments     []string
	HandlerCount int
}

// Router holds one radix trie per method and resolves requests to ordered
// handler chains with placeholder bindings. It is immutable after the
// server starts accepting connections; all Handle/Get/Post/... calls must
// happen during setup.
type Router struct {
	mu      sync.Mutex // guards registration only; resolve is read-only and lock-free
	tries   [methodCount]*radix.Trie[*compositeHandler]
	routes  [methodCount][]Route
	nextID  uint64
	NotFound Handler
}

// NewRouter returns an empty Router with a trie allocated for every
// concrete method.
func NewRouter() *Router {
	r := &Router{}
	for m := Get; m <= Trace; m++ {
		r.tries[methodSlot(m)] = radix.New[*compositeHandler]()
	}
	r.NotFound = func(c *Ctx) {
		c.Status(404)
		c.String("404 Not Found")
	}
	return r
}

// allMethods lists every concrete method Use registers against.
var allMethods = []Method{Get, Head, Post, Put, Patch, Delete, Connect, Options, Trace}

// Handle registers handlers under pattern for method. pattern must begin
// with '/' and have balanced brackets; violating either is a startup-time
// programming error, reported via panic rather than an error return.
func (r *Router) Handle(method Method, pattern string, handlers ...Handler) *Router {
	return r.handleMethods([]Method{method}, pattern, handlers...)
}

// HandleMethods registers the same handler chain, under one shared handler
// id, across every method in methods.
func (r *Router) HandleMethods(methods []Method, pattern string, handlers ...Handler) *Router {
	return r.handleMethods(methods, pattern, handlers...)
}

func (r *Router) handleMethods(methods []Method, pattern string, handlers ...Handler) *Router {
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Sprintf("relaypath: route pattern %q must begin with '/'", pattern))
	}
	if !strkernel.BalancedBrackets(pattern) {
		panic(&UnbalancedPatternError{Pattern: pattern})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := atomic.AddUint64(&r.nextID, 1)
	comp := &compositeHandler{id: id, pattern: pattern, handlers: handlers}

	for _, m := range methods {
		slot := methodSlot(m)
		if _, ok := r.tries[slot].Insert(pattern, comp); !ok {
			panic(&DuplicatePatternError{Method: m, Pattern: pattern})
		}
		r.routes[slot] = append(r.routes[slot], Route{
			Pattern:      pattern,
			Segments:     strkernel.SplitSegments(pattern),
			HandlerCount: len(handlers),
		})
	}
	return r
}

// Get, Post, Put, Patch, Delete, Head, Options, Connect, Trace are
// convenience entry points for Handle, one per concrete method.
func (r *Router) Get(pattern string, handlers ...Handler) *Router {
	return r.Handle(Get, pattern, handlers...)
}
func (r *Router) Post(pattern string, handlers ...Handler) *Router {
	return r.Handle(Post, pattern, handlers...)
}
func (r *Router) Put(pattern string, handlers ...Handler) *Router {
	return r.Handle(Put, pattern, handlers...)
}
func (r *Router) Patch(pattern string, handlers ...Handler) *Router {
	return r.Handle(Patch, pattern, handlers...)
}
func (r *Router) Delete(pattern string, handlers ...Handler) *Router {
	return r.Handle(Delete, pattern, handlers...)
}
func (r *Router) Head(pattern string, handlers ...Handler) *Router {
	return r.Handle(Head, pattern, handlers...)
}
func (r *Router) Options(pattern string, handlers ...Handler) *Router {
	return r.Handle(Options, pattern, handlers...)
}

// Use registers handlers for pattern under every concrete method. Because
// resolve collects every ancestor's handlers along the matched path, a Use
// at "/" runs for every request and a Use at "/api" runs for every
// "/api/..." request — this is how cross-cutting middleware like CORS or
// query-parsing attaches.
func (r *Router) Use(pattern string, handlers ...Handler) *Router {
	return r.HandleMethods(allMethods, pattern, handlers...)
}

// Resolve matches method and path against the corresponding trie and
// returns the root-to-leaf handler chain and the placeholder bindings
// accumulated along the way. An unmatched path yields an empty chain and
// no bindings, never an error.
func (r *Router) Resolve(method Method, path string) (Chain, []Binding) {
	slot := methodSlot(method)
	if slot < 0 || slot >= methodCount || r.tries[slot] == nil {
		return nil, nil
	}
	node, bindings, ok := r.tries[slot].FindPattern(path)
	if !ok {
		return nil, nil
	}

	ancestors := node.Ancestors()
	var chain Chain
	for i := len(ancestors) - 1; i >= 0; i-- {
		n := ancestors[i]
		if !n.HasValue {
			continue
		}
		chain = append(chain, n.Value.handlers...)
	}
	return chain, bindings
}

// ResolveRequest is the (request) → (chain, bindings) form of Resolve,
// reading method and abs_path off req. When the match produced bindings it
// also stores them in req.URIParam, keyed by placeholder name.
func (r *Router) ResolveRequest(req *Request) (Chain, []Binding) {
	chain, bindings := r.Resolve(req.Method, req.URI.AbsPath)
	if len(bindings) > 0 {
		req.URIParam = make(map[string]string, len(bindings))
		for _, b := range bindings {
			req.URIParam[b.Name] = b.Value
		}
	}
	return chain, bindings
}

// Table returns the registered (pattern, handler-count) rows for method, in
// registration order, for introspection.
func (r *Router) Table(method Method) []Route {
	slot := methodSlot(method)
	if slot < 0 || slot >= methodCount {
		return nil
	}
	out := make([]Route, len(r.routes[slot]))
	copy(out, r.routes[slot])
	return out
}
