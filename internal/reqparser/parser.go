// Package reqparser implements the request-line/header parser: a
// non-backtracking, byte-at-a-time state machine that turns an arbitrary
// byte stream from a client socket into a structured Request.
//
// Grounded on Theros/src/RequestParser.cpp (and its Summer predecessor):
// the state names, the method-disambiguation shortcut, and the LWS
// continuation handling all follow that source's consume(Request&, char)
// and consume(Uri&, char) state machines byte for byte.
package reqparser

// Outcome is reported after every byte fed to the parser.
type Outcome uint8

const (
	// InProgress means the byte was consumed and more input is needed.
	InProgress Outcome = iota
	// Accept means the request head (request-line + headers) is complete
	// and valid; Parser.Request returns the finished value.
	Accept
	// Reject means a byte violated the grammar in the current state.
	Reject
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "InProgress"
	case Accept:
		return "Accept"
	case Reject:
		return "Reject"
	default:
		return "Outcome(?)"
	}
}

type state uint8

const (
	stateReqStart state = iota
	stateReqStartLF
	stateReqMethod
	stateReqURI
	stateReqHTTPH
	stateReqHTTPHT
	stateReqHTTPHTT
	stateReqHTTPHTTP
	stateReqHTTPSlash
	stateReqHTTPMajor
	stateReqHTTPDot
	stateReqHTTPMinor
	stateReqStartLineCR
	stateReqStartLineLF
	stateReqFieldNameStart
	stateReqFieldName
	stateReqFieldValue
	stateReqHeaderLF
	stateReqHeaderLWS
	stateReqHeaderEnd
)

func (s state) String() string {
	names := [...]string{
		"req_start", "req_start_lf", "req_method", "req_uri",
		"req_http_h", "req_http_ht", "req_http_htt", "req_http_http",
		"req_http_slash", "req_http_major", "req_http_dot", "req_http_minor",
		"req_start_line_cr", "req_start_line_lf",
		"req_field_name_start", "req_field_name", "req_field_value",
		"req_header_lf", "req_header_lws", "req_header_end",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "state(?)"
}

type uriState uint8

const (
	uriStart uriState = iota
	uriScheme
	uriSlash
	uriSlashSHash
	uriHost
	uriPort
	uriAbsPath
	uriQuery
	uriFragment
)

// RejectInfo records the state and offending byte of the last Reject
// outcome, the detail carried by a ParseReject error.
type RejectInfo struct {
	State string
	Byte  byte
}

// Limits bounds pathological input so a connection's worker cannot be
// wedged forever by an unterminated request line or header block. A zero
// value in either field means unlimited, matching the original design
// (which has no such ceiling); this repository adds them as an ambient
// safety net (see SPEC_FULL.md §3/§6).
type Limits struct {
	MaxRequestLineBytes int
	MaxHeaderBytes      int
}

// Parser is the request-line/header state machine. It owns one main state,
// one URI sub-state, and the Request value being built. It is not safe for
// concurrent use; each connection's worker owns its own Parser.
type Parser struct {
	state    state
	uriState uriState
	req      *Request
	limits   Limits

	requestLineBytes int
	headerBytes      int

	lastReject RejectInfo
}

// New creates a Parser ready to consume the start of a request.
func New(limits Limits) *Parser {
	p := &Parser{req: &Request{}, limits: limits}
	p.Reset()
	return p
}

// Reset returns the parser to its initial state, discarding any partially
// parsed request. It is how a pooled Parser is prepared for a new connection
// or a new pipelined request on the same connection.
func (p *Parser) Reset() {
	p.state = stateReqStart
	p.uriState = uriStart
	p.req.reset()
	p.requestLineBytes = 0
	p.headerBytes = 0
	p.lastReject = RejectInfo{}
}

// Request returns the Request value being built. Its fields are only
// complete and valid once Feed has returned Accept.
func (p *Parser) Request() *Request { return p.req }

// LastReject returns the state/byte recorded by the most recent Reject
// outcome. It is meaningless before the first Reject.
func (p *Parser) LastReject() RejectInfo { return p.lastReject }

// Feed advances the state machine by the bytes in data, stopping at the
// first byte that produces Accept or Reject. It returns how many leading
// bytes of data were consumed (including the byte that produced a terminal
// outcome) and that outcome. A caller that gets InProgress should supply
// more bytes in a subsequent call; Feed does not buffer unconsumed bytes
// itself.
func (p *Parser) Feed(data []byte) (int, Outcome) {
	for i := 0; i < len(data); i++ {
		b := data[i]
		outcome := p.consume(b)
		switch outcome {
		case Reject:
			p.lastReject = RejectInfo{State: p.state.String(), Byte: b}
			return i + 1, Reject
		case Accept:
			return i + 1, Accept
		}
	}
	return len(data), InProgress
}

func (p *Parser) consume(c byte) Outcome {
	switch p.state {
	case stateReqStart:
		p.requestLineBytes = 0
		if isCR(c) {
			p.state = stateReqStartLF
			return InProgress
		}
		if isToken(c) {
			switch c {
			case 'G':
				p.req.Method = Get
			case 'H':
				p.req.Method = Head
			case 'P':
				p.req.Method = Undetermined // POST, PUT, or PATCH
			case 'D':
				p.req.Method = Delete
			case 'C':
				p.req.Method = Connect
			case 'O':
				p.req.Method = Options
			case 'T':
				p.req.Method = Trace
			default:
				return Reject
			}
			p.state = stateReqMethod
			return p.countRequestLine(1)
		}
		return Reject

	case stateReqStartLF:
		if isLF(c) {
			p.state = stateReqStart
			return InProgress
		}
		return Reject

	case stateReqMethod:
		if isToken(c) {
			if p.req.Method == Undetermined {
				switch c {
				case 'O':
					p.req.Method = Post
				case 'U':
					p.req.Method = Put
				case 'A':
					p.req.Method = Patch
				default:
					return Reject
				}
			}
			return p.countRequestLine(1)
		}
		if isSP(c) {
			// Method is never left Undetermined on an accepted request: a
			// bare "P " with no disambiguating second byte is rejected
			// here rather than silently accepted as some method.
			if p.req.Method == Undetermined {
				return Reject
			}
			p.state = stateReqURI
			return p.countRequestLine(1)
		}
		return Reject

	case stateReqURI:
		if isURIChar(c) {
			if outcome := p.consumeURI(c); outcome != InProgress {
				return outcome
			}
			return p.countRequestLine(1)
		}
		if isSP(c) {
			if err := p.req.URI.Decode(); err != nil {
				return Reject
			}
			p.state = stateReqHTTPH
			return p.countRequestLine(1)
		}
		return Reject

	case stateReqHTTPH:
		if c == 'H' {
			p.state = stateReqHTTPHT
			return p.countRequestLine(1)
		}
		return Reject
	case stateReqHTTPHT:
		if c == 'T' {
			p.state = stateReqHTTPHTT
			return p.countRequestLine(1)
		}
		return Reject
	case stateReqHTTPHTT:
		if c == 'T' {
			p.state = stateReqHTTPHTTP
			return p.countRequestLine(1)
		}
		return Reject
	case stateReqHTTPHTTP:
		if c == 'P' {
			p.state = stateReqHTTPSlash
			return p.countRequestLine(1)
		}
		return Reject
	case stateReqHTTPSlash:
		if c == '/' {
			p.state = stateReqHTTPMajor
			return p.countRequestLine(1)
		}
		return Reject
	case stateReqHTTPMajor:
		if isDigit(c) {
			p.req.Version.Major = int(c - '0')
			p.state = stateReqHTTPDot
			return p.countRequestLine(1)
		}
		return Reject
	case stateReqHTTPDot:
		if c == '.' {
			p.state = stateReqHTTPMinor
			return p.countRequestLine(1)
		}
		return Reject
	case stateReqHTTPMinor:
		if isDigit(c) {
			p.req.Version.Minor = int(c - '0')
			p.state = stateReqStartLineCR
			return p.countRequestLine(1)
		}
		return Reject
	case stateReqStartLineCR:
		if isCR(c) {
			p.state = stateReqStartLineLF
			return p.countRequestLine(1)
		}
		return Reject
	case stateReqStartLineLF:
		if isLF(c) {
			p.state = stateReqFieldNameStart
			p.headerBytes = 0
			return InProgress
		}
		return Reject

	case stateReqFieldNameStart:
		if isCR(c) {
			p.state = stateReqHeaderEnd
			return p.countHeader(1)
		}
		if isToken(c) {
			p.req.Headers = append(p.req.Headers, Field{})
			p.appendHeaderName(c)
			p.state = stateReqFieldName
			return p.countHeader(1)
		}
		return Reject

	case stateReqFieldName:
		if isToken(c) {
			p.appendHeaderName(c)
			return p.countHeader(1)
		}
		if c == ':' {
			p.state = stateReqFieldValue
			return p.countHeader(1)
		}
		return Reject

	case stateReqFieldValue:
		if isSP(c) || isHT(c) {
			return p.countHeader(1)
		}
		if isCR(c) {
			p.state = stateReqHeaderLF
			return p.countHeader(1)
		}
		if !isCTL(c) {
			p.appendHeaderValue(c)
			return p.countHeader(1)
		}
		return Reject

	case stateReqHeaderLF:
		if isLF(c) {
			p.state = stateReqHeaderLWS
			return InProgress
		}
		return Reject

	case stateReqHeaderLWS:
		// LWS = [CRLF] 1*( SP | HT ); field-value = *( field-content | LWS ).
		if isSP(c) || isHT(c) {
			p.state = stateReqFieldValue
			return p.countHeader(1)
		}
		if isCR(c) {
			p.state = stateReqHeaderEnd
			return p.countHeader(1)
		}
		if isToken(c) {
			p.req.Headers = append(p.req.Headers, Field{})
			p.appendHeaderName(c)
			p.state = stateReqFieldName
			return p.countHeader(1)
		}
		return Reject

	case stateReqHeaderEnd:
		if isLF(c) {
			return Accept
		}
		return Reject
	}
	return Reject
}

func (p *Parser) countRequestLine(n int) Outcome {
	p.requestLineBytes += n
	if p.limits.MaxRequestLineBytes > 0 && p.requestLineBytes > p.limits.MaxRequestLineBytes {
		return Reject
	}
	return InProgress
}

func (p *Parser) countHeader(n int) Outcome {
	p.headerBytes += n
	if p.limits.MaxHeaderBytes > 0 && p.headerBytes > p.limits.MaxHeaderBytes {
		return Reject
	}
	return InProgress
}

func (p *Parser) appendHeaderName(c byte) {
	h := p.req.Headers
	h[len(h)-1].Name += string(c)
}

func (p *Parser) appendHeaderValue(c byte) {
	h := p.req.Headers
	h[len(h)-1].Value += string(c)
}

// consumeURI delegates one byte to the URI sub-machine: while in req_uri,
// every URI-character byte is handed to this machine, which mutates
// p.req.URI in place.
func (p *Parser) consumeURI(c byte) Outcome {
	u := &p.req.URI
	switch p.uriState {
	case uriStart:
		if c == '/' {
			p.uriState = uriAbsPath
			u.AbsPath += string(c)
			return InProgress
		}
		if isAlpha(c) {
			u.Scheme += string(c)
			p.uriState = uriScheme
			return InProgress
		}
		return Reject
	case uriScheme:
		if isAlpha(c) {
			u.Scheme += string(c)
			return InProgress
		}
		if c == ':' {
			p.uriState = uriSlash
			return InProgress
		}
		return Reject
	case uriSlash:
		if c == '/' {
			p.uriState = uriSlashSHash
			return InProgress
		}
		return Reject
	case uriSlashSHash:
		if c == '/' {
			p.uriState = uriHost
			return InProgress
		}
		return Reject
	case uriHost:
		if c == '/' {
			p.uriState = uriAbsPath
			u.AbsPath += string(c)
			return InProgress
		}
		if c == ':' {
			p.uriState = uriPort
			return InProgress
		}
		u.Host += string(c)
		return InProgress
	case uriPort:
		if isDigit(c) {
			u.Port += string(c)
			return InProgress
		}
		if c == '/' {
			p.uriState = uriAbsPath
			u.AbsPath += string(c)
			return InProgress
		}
		return Reject
	case uriAbsPath:
		if c == '?' {
			p.uriState = uriQuery
			return InProgress
		}
		if c == '#' {
			p.uriState = uriFragment
			return InProgress
		}
		u.AbsPath += string(c)
		return InProgress
	case uriQuery:
		if c == '#' {
			p.uriState = uriFragment
			return InProgress
		}
		u.Query += string(c)
		return InProgress
	case uriFragment:
		u.Fragment += string(c)
		return InProgress
	}
	return Reject
}
