package relaypath

import (
	"context"

	"github.com/panjf2000/gnet/v2"

	"github.com/relaypath/relaypath/internal/reqparser"
	"github.com/relaypath/relaypath/log"
)

// Server is the public entry point: a Router plus the gnet-based connection
// driver that feeds it parsed requests. Each connection is an independent
// worker owning its own parser, request and response, and sharing only a
// read-only reference to the Router.
type Server struct {
	httpServer            *httpServer
	router                *Router
	disableStartupMessage bool
}

// New creates a Server wired with its own Router. Route registration must
// happen before Listen: the Router is read-only once connections share it.
func New(config ...Config) *Server {
	cfg := DefaultConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	r := NewRouter()

	hs := &httpServer{
		multicore: true,
		router:    r,
		errorHandler: cfg.ErrorHandler,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		idleTimeout:  cfg.IdleTimeout,
		limits: reqparser.Limits{
			MaxRequestLineBytes: cfg.MaxRequestLineBytes,
			MaxHeaderBytes:      cfg.MaxHeaderBytes,
		},
	}

	return &Server{
		httpServer:            hs,
		router:                r,
		disableStartupMessage: cfg.DisableStartupMessage,
	}
}

// Router returns the server's underlying Router for direct registration
// when the convenience methods below aren't enough.
func (s *Server) Router() *Router {
	return s.router
}

func (s *Server) Get(pattern string, handlers ...Handler) *Router {
	return s.router.Get(pattern, handlers...)
}
func (s *Server) Post(pattern string, handlers ...Handler) *Router {
	return s.router.Post(pattern, handlers...)
}
func (s *Server) Put(pattern string, handlers ...Handler) *Router {
	return s.router.Put(pattern, handlers...)
}
func (s *Server) Patch(pattern string, handlers ...Handler) *Router {
	return s.router.Patch(pattern, handlers...)
}
func (s *Server) Delete(pattern string, handlers ...Handler) *Router {
	return s.router.Delete(pattern, handlers...)
}
func (s *Server) Head(pattern string, handlers ...Handler) *Router {
	return s.router.Head(pattern, handlers...)
}
func (s *Server) Options(pattern string, handlers ...Handler) *Router {
	return s.router.Options(pattern, handlers...)
}

// Use registers handlers that run ahead of every route under pattern, the
// ancestor-chain mechanism CORS and queryparser rely on.
func (s *Server) Use(pattern string, handlers ...Handler) *Router {
	return s.router.Use(pattern, handlers...)
}

// NotFound overrides the handler run when resolve yields an empty chain.
func (s *Server) NotFound(handler Handler) {
	s.router.NotFound = handler
}

// Listen starts accepting connections on addr (e.g. ":3000"), blocking
// until Shutdown is called or a fatal error occurs.
func (s *Server) Listen(addr string) error {
	if addr == "" {
		addr = ":3000"
	}
	s.httpServer.addr = "tcp://" + addr

	initLogger(log.InfoLevel)

	if !s.disableStartupMessage {
		displayStartupMessage(addr)
	}

	return gnet.Run(
		s.httpServer,
		s.httpServer.addr,
		gnet.WithMulticore(s.httpServer.multicore),
		gnet.WithReuseAddr(true),
		gnet.WithReusePort(true),
		gnet.WithLogger(&noopLogger{}),
		gnet.WithTCPNoDelay(gnet.TCPNoDelay),
		gnet.WithTCPKeepAlive(s.httpServer.idleTimeout),
	)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.eng.Stop(ctx)
}
