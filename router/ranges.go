package router

import (
	"bytes"
	"fmt"
	"os"

	"github.com/lumen-web/lumen/http"
	"github.com/lumen-web/lumen/http/httprange"
	"github.com/lumen-web/lumen/http/mime"
	"github.com/lumen-web/lumen/http/status"
)

// Boundary separates parts of a multipart/byteranges body. A constant
// token suffices here: concurrent multipart responses never share a
// connection, so they don't need to be distinguishable from each other.
const Boundary = "3d6b6a416f9b5"

// ranged serves a 206 for the parsed range set: a plain subrange body
// for a single span, a multipart/byteranges body for several.
func (rt *Router) ranged(req *http.Request, file *os.File, size int64, contentType mime.MIME, includeBody bool) *http.Response {
	if !req.Ranges.Multipart() {
		return rt.singleRange(req, file, size, contentType, includeBody)
	}

	return rt.multiRange(req, file, size, contentType, includeBody)
}

func (rt *Router) singleRange(req *http.Request, file *os.File, size int64, contentType mime.MIME, includeBody bool) *http.Response {
	span, ok := clamp(req.Ranges[0], size)
	if !ok {
		return rt.ErrorResponse(status.ErrInternalServerError, req.Line.Version)
	}

	slice, err := readSpan(file, span)
	if err != nil {
		rt.log.Error().Err(err).Msg("range read failed")
		return rt.ErrorResponse(status.ErrInternalServerError, req.Line.Version)
	}

	return rt.respond(req, status.PartialContent).
		Header("content-type", contentType).
		Header("content-range", fmt.Sprintf("bytes %d-%d", span.From, span.To)).
		OptionalBody(slice, includeBody).
		Build()
}

func (rt *Router) multiRange(req *http.Request, file *os.File, size int64, contentType mime.MIME, includeBody bool) *http.Response {
	var body bytes.Buffer

	for _, r := range req.Ranges {
		span, ok := clamp(r, size)
		if !ok {
			continue
		}

		slice, err := readSpan(file, span)
		if err != nil {
			rt.log.Error().Err(err).Msg("range read failed")
			return rt.ErrorResponse(status.ErrInternalServerError, req.Line.Version)
		}

		body.WriteString("--" + Boundary + "\r\n")
		body.WriteString("content-type: " + contentType + "\r\n")
		fmt.Fprintf(&body, "content-range: bytes %d-%d\r\n", span.From, span.To)
		body.WriteString("\r\n")
		body.Write(slice)
		body.WriteString("\r\n")
	}

	return rt.respond(req, status.PartialContent).
		Header("content-type", "multipart/byteranges; boundary="+Boundary).
		OptionalBody(body.Bytes(), includeBody).
		Build()
}

// clamp trims a span to the file size. A span starting at or past EOF
// cannot be served at all.
func clamp(r httprange.Range, size int64) (httprange.Range, bool) {
	if r.From >= size {
		return r, false
	}

	if r.To > size-1 {
		r.To = size - 1
	}

	return r, true
}

// readSpan reads exactly the span's bytes at its offset. A short read
// here means the file changed underneath us; that breaks the invariant
// the 206 headers already promised, so it is not recoverable.
func readSpan(file *os.File, span httprange.Range) ([]byte, error) {
	slice := make([]byte, span.Length())
	n, err := file.ReadAt(slice, span.From)
	if err != nil {
		return nil, err
	}
	if int64(n) != span.Length() {
		return nil, fmt.Errorf("short range read: %d of %d bytes", n, span.Length())
	}

	return slice, nil
}
