package http

import (
	"github.com/lumen-web/lumen/http/headers"
	"github.com/lumen-web/lumen/http/mime"
	"github.com/lumen-web/lumen/http/status"
)

// DefaultVersion is used when an error response must be produced before
// a request version is known.
const DefaultVersion = "1.1"

// Content is the header-map-plus-body container shared by requests and
// responses.
type Content struct {
	Headers *headers.Map
	Body    []byte
}

func NewContent() Content {
	return Content{Headers: headers.New()}
}

// ContentType resolves the effective content type: an explicit
// content-type header wins, otherwise the resource extension decides.
// Neither resolving is a 415.
func (c Content) ContentType(resource string) (mime.MIME, error) {
	if ct, found := c.Headers.Get("content-type"); found {
		return ct, nil
	}

	if m, ok := mime.ByExtension(resource); ok {
		return m, nil
	}

	return "", status.ErrUnsupportedMediaType
}
