package http

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/lumen-web/lumen/http/coding"
	"github.com/lumen-web/lumen/http/status"
)

// ServerID is the static server header value.
const ServerID = "lumen"

// Response is immutable once built and serialized exactly once per
// connection.
type Response struct {
	Status   status.Code
	Version  string
	Content  Content
	Encoding coding.Token
}

// ResponseBuilder accumulates status, headers and body. It stays mutable
// until Build and must not be touched afterwards.
type ResponseBuilder struct {
	resp Response
}

// NewResponse starts a builder with the default header set attached:
// accept-ranges, the current date and the server identifier.
func NewResponse(code status.Code, version string) *ResponseBuilder {
	b := &ResponseBuilder{
		resp: Response{
			Status:   code,
			Version:  version,
			Content:  NewContent(),
			Encoding: coding.Identity,
		},
	}

	b.Header("accept-ranges", "bytes").
		Header("date", time.Now().UTC().Format(time.RFC1123)).
		Header("server", ServerID)

	return b
}

// Encoding records the negotiated coding. Every body set afterwards is
// raised through its transform, and the content-encoding header is
// attached.
func (b *ResponseBuilder) Encoding(t coding.Token) *ResponseBuilder {
	b.resp.Encoding = t
	return b.Header("content-encoding", t.String())
}

func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.resp.Content.Headers.Set(name, value)
	return b
}

// Body encodes p with the negotiated coding, sets it as the response
// body and records its length in content-length.
func (b *ResponseBuilder) Body(p []byte) *ResponseBuilder {
	return b.OptionalBody(p, true)
}

// OptionalBody sets the body only when include is true; otherwise the
// content-length of the would-be body is recorded without any payload.
// HEAD responses are exactly that: byte length, no bytes.
func (b *ResponseBuilder) OptionalBody(p []byte, include bool) *ResponseBuilder {
	encoded := b.resp.Encoding.Encode(p)
	b.Header("content-length", strconv.Itoa(len(encoded)))

	if include {
		b.resp.Content.Body = encoded
	}

	return b
}

func (b *ResponseBuilder) Build() *Response {
	return &b.resp
}

// Bytes serializes the response: status line with the reason phrase
// derived from the code name, header lines in insertion order, a blank
// line, then the raw body.
func (r *Response) Bytes() []byte {
	var buf bytes.Buffer

	buf.WriteString("HTTP/")
	buf.WriteString(r.Version)
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(int(r.Status)))
	buf.WriteByte(' ')
	buf.WriteString(status.Text(r.Status))
	buf.WriteString("\r\n")

	for _, pair := range r.Content.Headers.Pairs() {
		buf.WriteString(pair.Key)
		buf.WriteString(": ")
		buf.WriteString(pair.Value)
		buf.WriteString("\r\n")
	}

	buf.WriteString("\r\n")
	buf.Write(r.Content.Body)

	return buf.Bytes()
}

// WriteTo implements io.WriterTo.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Bytes())
	return int64(n), err
}
