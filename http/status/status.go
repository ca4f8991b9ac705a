package status

import "strings"

// Code is an HTTP status code. Only the codes the pipeline can actually
// produce are enumerated; no response is ever serialized with a code
// outside this set.
type Code uint16

const (
	OK             Code = 200 // RFC 9110, 15.3.1
	Created        Code = 201 // RFC 9110, 15.3.2
	PartialContent Code = 206 // RFC 9110, 15.3.7

	BadRequest           Code = 400 // RFC 9110, 15.5.1
	Unauthorized         Code = 401 // RFC 9110, 15.5.2
	NotFound             Code = 404 // RFC 9110, 15.5.5
	NotAcceptable        Code = 406 // RFC 9110, 15.5.7
	RequestTimeout       Code = 408 // RFC 9110, 15.5.9
	ContentTooLarge      Code = 413 // RFC 9110, 15.5.14
	URITooLong           Code = 414 // RFC 9110, 15.5.15
	UnsupportedMediaType Code = 415 // RFC 9110, 15.5.16
	HeaderFieldsTooLarge Code = 431 // RFC 6585, 5

	InternalServerError     Code = 500 // RFC 9110, 15.6.1
	NotImplemented          Code = 501 // RFC 9110, 15.6.2
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

// Kind classifies a code by its wire-level meaning.
type Kind uint8

const (
	KindSuccess Kind = iota
	KindClientError
	KindServerError
)

func (c Code) Kind() Kind {
	switch {
	case c < 400:
		return KindSuccess
	case c < 500:
		return KindClientError
	default:
		return KindServerError
	}
}

var names = map[Code]string{
	OK:                      "OK",
	Created:                 "Created",
	PartialContent:          "PartialContent",
	BadRequest:              "BadRequest",
	Unauthorized:            "Unauthorized",
	NotFound:                "NotFound",
	NotAcceptable:           "NotAcceptable",
	RequestTimeout:          "RequestTimeout",
	ContentTooLarge:         "ContentTooLarge",
	URITooLong:              "URITooLong",
	UnsupportedMediaType:    "UnsupportedMediaType",
	HeaderFieldsTooLarge:    "RequestHeaderFieldsTooLarge",
	InternalServerError:     "InternalServerError",
	NotImplemented:          "NotImplemented",
	HTTPVersionNotSupported: "HTTPVersionNotSupported",
}

// Text returns the reason phrase for the code: its enumeration name with
// spaces inserted at camel-case word boundaries, so PartialContent becomes
// "Partial Content" and URITooLong becomes "URI Too Long".
func Text(code Code) string {
	name, ok := names[code]
	if !ok {
		return "Unknown Status Code"
	}

	return splitCamel(name)
}

func splitCamel(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	for i := 0; i < len(name); i++ {
		if i > 0 && isUpper(name[i]) {
			// a word starts at an upper-case letter following a
			// lower-case one, or at the last capital of an acronym run
			// (the P of HTTPVersion)
			nextLower := i+1 < len(name) && !isUpper(name[i+1])
			if !isUpper(name[i-1]) || nextLower {
				b.WriteByte(' ')
			}
		}

		b.WriteByte(name[i])
	}

	return b.String()
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
