package relaypath

import (
	"sync"

	json "github.com/goccy/go-json"
)

// Ctx carries one request through its resolved handler chain. It is pooled
// across connections via ctxPool: a fresh Ctx is never allocated per
// request on the happy path, only reset and reused.
type Ctx struct {
	Request    *Request
	RemoteAddr string

	status int
	header Header
	body   []byte

	chain Chain
	index int
	err   error

	params map[string]string
	query  map[string]string
}

var ctxPool = sync.Pool{
	New: func() interface{} {
		return &Ctx{status: StatusOK, header: make(Header, 0, 8)}
	},
}

func acquireCtx(req *Request, chain Chain, params map[string]string, remoteAddr string) *Ctx {
	c := ctxPool.Get().(*Ctx)
	c.Request = req
	c.RemoteAddr = remoteAddr
	c.status = StatusOK
	c.header = c.header[:0]
	c.body = c.body[:0]
	c.chain = chain
	c.index = -1
	c.err = nil
	c.params = params
	c.query = nil
	return c
}

// NewCtx takes a Ctx from the pool with no chain and no bindings, for tests
// and for embedders that want to drive a Ctx without a live connection. It
// is never returned to the pool.
func NewCtx(req *Request) *Ctx {
	return acquireCtx(req, nil, nil, "")
}

// NewCtxWithChain builds a standalone Ctx pre-loaded with a resolved chain
// and its placeholder bindings, then runs the chain to completion. Used by
// tests that want to exercise a full resolve-then-dispatch round trip
// without a live connection; the server driver uses acquireCtx directly.
func NewCtxWithChain(req *Request, chain Chain, params map[string]string) *Ctx {
	c := acquireCtx(req, chain, params, "")
	c.run()
	return c
}

func releaseCtx(c *Ctx) {
	c.Request = nil
	c.chain = nil
	c.params = nil
	c.query = nil
	ctxPool.Put(c)
}

// Next invokes the next handler in the resolved chain, if any. A handler
// that returns without calling Next stops the chain there.
func (c *Ctx) Next() {
	c.index++
	if c.index < len(c.chain) {
		c.chain[c.index](c)
	}
}

// run drives the full chain from the front, honoring short-circuiting via
// Next.
func (c *Ctx) run() {
	c.index = -1
	c.Next()
}

// StatusCode returns the status code currently staged on the response.
func (c *Ctx) StatusCode() int {
	return c.status
}

// Status sets the response status code and returns c for chaining.
func (c *Ctx) Status(code int) *Ctx {
	c.status = code
	return c
}

// SetHeader sets a response header, replacing any existing value.
func (c *Ctx) SetHeader(name, value string) *Ctx {
	c.header.SetHeader(name, value)
	return c
}

// String sets the response body to s with a text/plain content type.
func (c *Ctx) String(s string) {
	c.header.SetHeader("Content-Type", "text/plain; charset=utf-8")
	c.body = append(c.body[:0], s...)
}

// JSON marshals v with goccy/go-json and sets it as the response body.
func (c *Ctx) JSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.header.SetHeader("Content-Type", "application/json; charset=utf-8")
	c.body = append(c.body[:0], data...)
	return nil
}

// Param returns the value bound to a route placeholder by the router, e.g.
// c.Param("id") for a route registered as "/user/<id>".
func (c *Ctx) Param(name string) string {
	if c.params == nil {
		return ""
	}
	return c.params[name]
}

// Query returns a query-string value, populated by middleware/queryparser
// from Request.URIQuery. Returns "" if queryparser was never run or the key
// is absent.
func (c *Ctx) Query(name string) string {
	if c.Request == nil || c.Request.URIQuery == nil {
		return ""
	}
	return c.Request.URIQuery[name]
}

// IP returns the remote address the driver recorded for this connection.
func (c *Ctx) IP() string {
	return c.RemoteAddr
}

// Get returns the first value of a request header, case-sensitively.
func (c *Ctx) Get(name string) string {
	if c.Request == nil {
		return ""
	}
	v, _ := c.Request.Headers.Get(name)
	return v
}

// ResponseHeader returns a header value already staged on the response via
// SetHeader.
func (c *Ctx) ResponseHeader(name string) string {
	v, _ := c.header.Get(name)
	return v
}

// Abort stops the chain and records err for the server's error handler.
func (c *Ctx) Abort(err error) {
	c.err = err
	c.index = len(c.chain)
}
