package relaypath

import (
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// writeResponse serializes c's status, headers and body onto buf as
// STATUS-LINE CRLF *( HEADER CRLF ) CRLF BODY. version is the request's
// HTTP version, echoed back on the status line.
func writeResponse(buf *bytebufferpool.ByteBuffer, c *Ctx, version Version) {
	buf.WriteString("HTTP/")
	buf.WriteString(strconv.Itoa(version.Major))
	buf.WriteByte('.')
	buf.WriteString(strconv.Itoa(version.Minor))
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(c.status))
	buf.WriteByte(' ')
	buf.WriteString(StatusText(c.status))
	buf.WriteString("\r\n")

	hasContentLength := false
	for _, f := range c.header {
		if f.Name == "Content-Length" {
			hasContentLength = true
		}
		buf.WriteString(f.Name)
		buf.WriteString(": ")
		buf.WriteString(f.Value)
		buf.WriteString("\r\n")
	}
	if !hasContentLength {
		buf.WriteString("Content-Length: ")
		buf.WriteString(strconv.Itoa(len(c.body)))
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	if c.Request == nil || c.Request.Method != Head {
		buf.Write(c.body)
	}
}
