package status

import (
	"errors"
	"fmt"
)

// Error is the "known" tier of the error taxonomy: it carries its final
// wire status code and maps 1:1 to the error response.
type Error struct {
	Code    Code
	Message string
}

func NewError(code Code, message string) Error {
	return Error{Code: code, Message: message}
}

func (e Error) Error() string {
	return e.Message
}

var (
	ErrBadRequest              = NewError(BadRequest, "bad request")
	ErrBadEncoding             = NewError(BadRequest, "bad accept-encoding value")
	ErrUnauthorized            = NewError(Unauthorized, "unauthorized")
	ErrNotFound                = NewError(NotFound, "not found")
	ErrNotAcceptable           = NewError(NotAcceptable, "no acceptable content coding")
	ErrRequestTimeout          = NewError(RequestTimeout, "request timeout")
	ErrContentTooLarge         = NewError(ContentTooLarge, "request body is too large")
	ErrURITooLong              = NewError(URITooLong, "request URI too long")
	ErrUnsupportedMediaType    = NewError(UnsupportedMediaType, "unsupported media type")
	ErrHeaderFieldsTooLarge    = NewError(HeaderFieldsTooLarge, "header line is too large")
	ErrInternalServerError     = NewError(InternalServerError, "internal server error")
	ErrNotImplemented          = NewError(NotImplemented, "request method is not supported")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")
)

// Structural parse errors form the second tier: they describe how the
// message was broken and default to 400 unless explicitly promoted.
var (
	ErrWrongHeaderFormat = errors.New("wrong header format")
	ErrHeaderOverflow    = errors.New("too many headers")
	ErrInvalidUTF8       = errors.New("invalid utf-8 character in request")
	ErrBadContentLength  = errors.New("invalid content-length value")
	ErrIncompleteBody    = errors.New("body is shorter than the declared content-length")
)

// MalformedRequestLineError keeps the offending line for logging.
type MalformedRequestLineError struct {
	Line string
}

func (e MalformedRequestLineError) Error() string {
	return fmt.Sprintf("malformed request line: %q", e.Line)
}

// From maps any error produced by the pipeline to its wire status code.
// Known errors carry their own code, structural errors collapse to 400
// (header overflow is promoted to 431), everything else is an internal
// failure and becomes 500.
func From(err error) Code {
	var known Error
	if errors.As(err, &known) {
		return known.Code
	}

	var malformed MalformedRequestLineError
	switch {
	case errors.Is(err, ErrHeaderOverflow):
		return HeaderFieldsTooLarge
	case errors.Is(err, ErrWrongHeaderFormat),
		errors.Is(err, ErrInvalidUTF8),
		errors.Is(err, ErrBadContentLength),
		errors.Is(err, ErrIncompleteBody),
		errors.As(err, &malformed):
		return BadRequest
	}

	return InternalServerError
}
