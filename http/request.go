package http

import (
	"github.com/lumen-web/lumen/http/cachecontrol"
	"github.com/lumen-web/lumen/http/coding"
	"github.com/lumen-web/lumen/http/httprange"
	"github.com/lumen-web/lumen/http/method"
)

// RequestLine is the first line of a request. Resource is kept raw,
// exactly as it appeared on the wire: no percent-decoding, no query
// splitting. Whatever needs a safe path derives one itself.
type RequestLine struct {
	Method   method.Method
	Resource string
	Version  string
}

// Request is owned exclusively by the connection that parsed it and is
// never shared.
type Request struct {
	Line    RequestLine
	Content Content

	// Encoding is the negotiated response coding. Meaningful only when
	// Negotiated is set; an absent accept-encoding header means no
	// negotiation took place at all.
	Encoding   coding.Token
	Negotiated bool

	// Ranges is nil unless a well-formed range header was present.
	Ranges httprange.Set

	CacheControl cachecontrol.Directives
}

// Header is a shorthand for looking a request header up.
func (r *Request) Header(name string) (string, bool) {
	return r.Content.Headers.Get(name)
}
