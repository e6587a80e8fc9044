package relaypath

// Handler handles one request through a *Ctx. It is also the signature
// middleware uses, so the two are interchangeable in Handle/Use calls —
// a middleware that never calls c.Next() simply terminates the chain.
type Handler func(c *Ctx)

// Middleware is Handler under the name call sites use when registering a
// cross-cutting concern rather than a terminal handler; the function should
// call c.Next() to continue to the next handler in the resolved chain. It
// is an alias, not a distinct type, so values of either name pass directly
// into Router.Handle/Use without conversion.
type Middleware = Handler

// MiddlewareFunc is an alias for Middleware kept for readability at call
// sites that register cross-cutting concerns rather than terminal handlers.
type MiddlewareFunc = Middleware

// ErrorHandlerFunc handles an error raised by a handler further down the
// chain, translating it into a response on c.
type ErrorHandlerFunc func(c *Ctx, err error)

func defaultErrorHandler(c *Ctx, err error) {
	if he, ok := err.(*HttpError); ok {
		c.Status(he.Code)
		c.String(he.Message)
		return
	}
	c.Status(StatusInternalServerError)
	c.String(StatusText(StatusInternalServerError))
}
