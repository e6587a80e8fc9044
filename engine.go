package relaypath

import (
	"strconv"
	"time"

	"github.com/panjf2000/gnet/v2"
	"github.com/valyala/bytebufferpool"

	"github.com/relaypath/relaypath/internal/reqparser"
)

// noopLogger silences gnet's own logging; this repository logs through the
// log package instead.
type noopLogger struct{}

func (l *noopLogger) Debugf(format string, args ...interface{}) {}
func (l *noopLogger) Infof(format string, args ...interface{})  {}
func (l *noopLogger) Warnf(format string, args ...interface{})  {}
func (l *noopLogger) Errorf(format string, args ...interface{}) {}
func (l *noopLogger) Fatalf(format string, args ...interface{}) {}

// connState is the per-connection worker: one parser advanced cooperatively
// as reads complete, plus the read-deadline timer the driver uses to
// synthesize 408 without ever invoking the router.
type connState struct {
	parser *reqparser.Parser
	timer  *time.Timer
}

// httpServer is the gnet event handler: the connection driver sitting
// outside the parser/router core, wiring one reqparser.Parser and one
// read-deadline timer per connection.
type httpServer struct {
	gnet.BuiltinEventEngine

	addr      string
	multicore bool
	router    *Router
	eng       gnet.Engine

	errorHandler ErrorHandlerFunc

	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration

	limits reqparser.Limits
}

func (hs *httpServer) OnBoot(eng gnet.Engine) gnet.Action {
	hs.eng = eng
	return gnet.None
}

func (hs *httpServer) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	cs := &connState{parser: reqparser.New(hs.limits)}
	if hs.readTimeout > 0 {
		cs.timer = time.AfterFunc(hs.readTimeout, func() { hs.onReadTimeout(c) })
	}
	c.SetContext(cs)
	return nil, gnet.None
}

func (hs *httpServer) OnClose(c gnet.Conn, err error) gnet.Action {
	if cs, ok := c.Context().(*connState); ok && cs.timer != nil {
		cs.timer.Stop()
	}
	return gnet.None
}

// onReadTimeout fires on cs.timer's own goroutine, outside the event loop
// that owns c; AsyncWrite is gnet's documented mechanism for writing to a
// connection from any goroutine. The router is never invoked here — a
// deadline is a driver-level event, not a request outcome.
func (hs *httpServer) onReadTimeout(c gnet.Conn) {
	buf := bytebufferpool.Get()
	writeStatusOnly(buf, StatusRequestTimeout, Version{Major: 1, Minor: 1})
	_ = c.AsyncWrite(append([]byte(nil), buf.B...), func(c gnet.Conn, err error) error {
		return c.Close()
	})
	bytebufferpool.Put(buf)
}

func (hs *httpServer) resetDeadline(c gnet.Conn, cs *connState) {
	if cs.timer != nil {
		cs.timer.Reset(hs.readTimeout)
	}
}

func (hs *httpServer) OnTraffic(c gnet.Conn) gnet.Action {
	cs, ok := c.Context().(*connState)
	if !ok {
		return gnet.Close
	}

	data, _ := c.Peek(-1)
	consumed := 0

feedLoop:
	for consumed < len(data) {
		n, outcome := cs.parser.Feed(data[consumed:])
		consumed += n

		switch outcome {
		case reqparser.InProgress:
			break feedLoop
		case reqparser.Reject:
			hs.writeStatus(c, StatusBadRequest)
			cs.parser.Reset()
		case reqparser.Accept:
			hs.dispatch(c, cs.parser.Request())
			cs.parser.Reset()
		}
	}

	if consumed > 0 {
		c.Discard(consumed)
	}
	hs.resetDeadline(c, cs)
	return gnet.None
}

func (hs *httpServer) writeStatus(c gnet.Conn, status int) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	writeStatusOnly(buf, status, Version{Major: 1, Minor: 1})
	c.Write(buf.B)
}

func (hs *httpServer) dispatch(c gnet.Conn, req *Request) {
	chain, bindings := hs.router.ResolveRequest(req)
	if len(chain) == 0 {
		chain = Chain{hs.router.NotFound}
	}

	var params map[string]string
	if len(bindings) > 0 {
		params = make(map[string]string, len(bindings))
		for _, b := range bindings {
			params[b.Name] = b.Value
		}
	}

	ctx := acquireCtx(req, chain, params, c.RemoteAddr().String())
	ctx.run()

	if ctx.err != nil {
		handler := hs.errorHandler
		if handler == nil {
			handler = defaultErrorHandler
		}
		handler(ctx, ctx.err)
	}

	buf := bytebufferpool.Get()
	writeResponse(buf, ctx, req.Version)
	c.Write(buf.B)
	bytebufferpool.Put(buf)

	releaseCtx(ctx)
}

// writeStatusOnly writes a bare status-line response with no body, used for
// 400/408 responses synthesized before any handler runs.
func writeStatusOnly(buf *bytebufferpool.ByteBuffer, status int, version Version) {
	major, minor := version.Major, version.Minor
	if major < 0 {
		major, minor = 1, 1
	}
	buf.WriteString("HTTP/")
	buf.WriteString(strconv.Itoa(major))
	buf.WriteByte('.')
	buf.WriteString(strconv.Itoa(minor))
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(status))
	buf.WriteByte(' ')
	buf.WriteString(StatusText(status))
	buf.WriteString("\r\nContent-Length: 0\r\n\r\n")
}
