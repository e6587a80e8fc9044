package reqparser

import "testing"

func feedAll(t *testing.T, p *Parser, data []byte) (int, Outcome) {
	t.Helper()
	consumed, outcome := p.Feed(data)
	return consumed, outcome
}

func TestAcceptsSimpleGet(t *testing.T) {
	p := New(Limits{})
	raw := "GET /hi HTTP/1.0\r\nHost: 127.0.0.1:8888\r\nUser-Agent: curl/7.43.0\r\nAccept: */*\r\n\r\n"
	consumed, outcome := feedAll(t, p, []byte(raw))
	if outcome != Accept {
		t.Fatalf("outcome = %v, want Accept", outcome)
	}
	if consumed != len(raw) {
		t.Fatalf("consumed = %d, want %d", consumed, len(raw))
	}
	req := p.Request()
	if req.Method != Get {
		t.Errorf("method = %v, want Get", req.Method)
	}
	if req.URI.AbsPath != "/hi" {
		t.Errorf("abs_path = %q, want /hi", req.URI.AbsPath)
	}
	if req.Version.Major != 1 || req.Version.Minor != 0 {
		t.Errorf("version = %v, want 1.0", req.Version)
	}
	wantHeaders := []Field{
		{Name: "Host", Value: "127.0.0.1:8888"},
		{Name: "User-Agent", Value: "curl/7.43.0"},
		{Name: "Accept", Value: "*/*"},
	}
	if len(req.Headers) != len(wantHeaders) {
		t.Fatalf("headers = %v, want %v", req.Headers, wantHeaders)
	}
	for i, f := range wantHeaders {
		if req.Headers[i] != f {
			t.Errorf("header[%d] = %+v, want %+v", i, req.Headers[i], f)
		}
	}
}

func TestAbsoluteURIRequest(t *testing.T) {
	p := New(Limits{})
	raw := "POST http://abc.com:80/~smith/home.html#footer HTTP/1.0\r\n"
	_, outcome := feedAll(t, p, []byte(raw))
	if outcome != InProgress {
		t.Fatalf("outcome = %v, want InProgress", outcome)
	}
	u := p.Request().URI
	if u.Scheme != "http" || u.Host != "abc.com" || u.Port != "80" ||
		u.AbsPath != "/~smith/home.html" || u.Fragment != "footer" {
		t.Errorf("unexpected URI: %+v", u)
	}
}

func TestChunkingIndependence(t *testing.T) {
	raw := []byte("GET /a/b?x=1 HTTP/1.1\r\nHost: example.com\r\nX-Foo: bar\r\n\r\n")

	splits := [][]int{
		{len(raw)},
		{1, len(raw) - 1},
		{10, 20, len(raw) - 30},
	}

	var first *Request
	for _, sizes := range splits {
		p := New(Limits{})
		offset := 0
		var outcome Outcome
		for _, sz := range sizes {
			if sz <= 0 {
				continue
			}
			chunk := raw[offset : offset+sz]
			offset += sz
			_, outcome = p.Feed(chunk)
			if outcome != InProgress {
				break
			}
		}
		if outcome != Accept {
			t.Fatalf("split %v did not accept, got %v", sizes, outcome)
		}
		if first == nil {
			first = p.Request()
		} else {
			r := p.Request()
			if r.Method != first.Method || r.URI.AbsPath != first.URI.AbsPath ||
				r.URI.Query != first.URI.Query || len(r.Headers) != len(first.Headers) {
				t.Fatalf("split %v produced different request: %+v vs %+v", sizes, r, first)
			}
		}
	}
}

func TestByteAtATimeNeverRejectsValidStream(t *testing.T) {
	p := New(Limits{})
	raw := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n")
	for i, b := range raw {
		_, outcome := p.Feed([]byte{b})
		if outcome == Reject {
			t.Fatalf("byte %d (%q) unexpectedly rejected", i, b)
		}
		if i == len(raw)-1 && outcome != Accept {
			t.Fatalf("final byte outcome = %v, want Accept", outcome)
		}
	}
}

func TestRejectsBadMethod(t *testing.T) {
	p := New(Limits{})
	_, outcome := p.Feed([]byte("ZZZZ / HTTP/1.1\r\n"))
	if outcome != Reject {
		t.Fatalf("outcome = %v, want Reject", outcome)
	}
}

func TestRejectsBarePWithoutDisambiguation(t *testing.T) {
	p := New(Limits{})
	_, outcome := p.Feed([]byte("P / HTTP/1.1\r\n"))
	if outcome != Reject {
		t.Fatalf("outcome = %v, want Reject", outcome)
	}
}

func TestMethodDisambiguation(t *testing.T) {
	cases := map[string]Method{
		"POST / HTTP/1.1\r\n":  Post,
		"PUT / HTTP/1.1\r\n":   Put,
		"PATCH / HTTP/1.1\r\n": Patch,
	}
	for raw, want := range cases {
		p := New(Limits{})
		_, outcome := p.Feed([]byte(raw))
		if outcome != InProgress && outcome != Accept {
			t.Fatalf("%q: outcome = %v", raw, outcome)
		}
		if p.Request().Method != want {
			t.Errorf("%q: method = %v, want %v", raw, p.Request().Method, want)
		}
	}
}

func TestHeaderContinuationLine(t *testing.T) {
	p := New(Limits{})
	raw := "GET / HTTP/1.1\r\nX-Long: first\r\n second\r\n\r\n"
	_, outcome := feedAll(t, p, []byte(raw))
	if outcome != Accept {
		t.Fatalf("outcome = %v, want Accept", outcome)
	}
	v, ok := p.Request().Headers.Get("X-Long")
	if !ok || v != "firstsecond" {
		t.Errorf("X-Long = %q, ok=%v, want %q", v, ok, "firstsecond")
	}
}

func TestRejectLeavesStateInspectable(t *testing.T) {
	p := New(Limits{})
	p.Feed([]byte("GET"))
	_, outcome := p.Feed([]byte{0x01})
	if outcome != Reject {
		t.Fatalf("outcome = %v, want Reject", outcome)
	}
	info := p.LastReject()
	if info.Byte != 0x01 {
		t.Errorf("LastReject byte = %v, want 0x01", info.Byte)
	}
}

func TestResetAllowsReuse(t *testing.T) {
	p := New(Limits{})
	p.Feed([]byte("GET / HTTP/1.1\r\n\r\n"))
	p.Reset()
	_, outcome := p.Feed([]byte("POST /x HTTP/1.1\r\n\r\n"))
	if outcome != Accept {
		t.Fatalf("outcome = %v, want Accept", outcome)
	}
	if p.Request().Method != Post {
		t.Errorf("method = %v, want Post", p.Request().Method)
	}
}

func TestMaxRequestLineBytes(t *testing.T) {
	p := New(Limits{MaxRequestLineBytes: 8})
	_, outcome := p.Feed([]byte("GET /this-path-is-too-long HTTP/1.1\r\n"))
	if outcome != Reject {
		t.Fatalf("outcome = %v, want Reject", outcome)
	}
}

func TestMaxHeaderBytes(t *testing.T) {
	p := New(Limits{MaxHeaderBytes: 8})
	_, outcome := p.Feed([]byte("GET / HTTP/1.1\r\nX-Long-Header-Name: value\r\n\r\n"))
	if outcome != Reject {
		t.Fatalf("outcome = %v, want Reject", outcome)
	}
}
