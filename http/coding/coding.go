package coding

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/lumen-web/lumen/http/status"
)

// Token is a content-coding as it appears on the wire. The whole table is
// recognized during negotiation, but only the Supported subset has a real
// transform attached.
type Token uint8

const (
	Identity Token = iota
	GZIP
	Deflate
	Brotli
	Compress
	ZSTD
)

var table = map[string]Token{
	"identity": Identity,
	"gzip":     GZIP,
	"deflate":  Deflate,
	"br":       Brotli,
	"compress": Compress,
	"zstd":     ZSTD,
}

var wire = [...]string{"identity", "gzip", "deflate", "br", "compress", "zstd"}

func (t Token) String() string {
	if int(t) >= len(wire) {
		return "identity"
	}

	return wire[t]
}

// Parse maps a wire token to a Token. The wildcard falls back to the
// default coding, identity.
func Parse(s string) (Token, bool) {
	if strings.HasPrefix(s, "*") {
		return Identity, true
	}

	t, ok := table[s]
	return t, ok
}

// Supported reports whether the coding has a transform attached.
func (t Token) Supported() bool {
	return t == Identity || t == GZIP
}

type accepted struct {
	token Token
	q     float64
}

// Negotiate parses an Accept-Encoding value and picks the
// highest-quality coding that is locally supported. An unknown coding
// token or an unparsable quality is a hard 400; a well-formed list with
// nothing supported in it is 406.
func Negotiate(header string) (Token, error) {
	entries, err := parseAccept(header)
	if err != nil {
		return Identity, err
	}

	best, bestQ := Identity, -1.0
	for _, e := range entries {
		if e.token.Supported() && e.q > bestQ {
			best, bestQ = e.token, e.q
		}
	}

	if bestQ < 0 {
		return Identity, status.ErrNotAcceptable
	}

	return best, nil
}

func parseAccept(header string) ([]accepted, error) {
	parts := strings.Split(header, ",")
	entries := make([]accepted, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		name, params, hasParams := strings.Cut(part, ";")

		q := 1.0
		if hasParams {
			key, value, ok := strings.Cut(strings.TrimSpace(params), "=")
			if !ok || strings.TrimSpace(key) != "q" {
				return nil, fmt.Errorf("%w: bad parameter in %q", status.ErrBadEncoding, part)
			}

			var err error
			if q, err = strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
				return nil, fmt.Errorf("%w: bad quality in %q", status.ErrBadEncoding, part)
			}
		}

		token, ok := Parse(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("%w: unknown coding %q", status.ErrBadEncoding, name)
		}

		entries = append(entries, accepted{token: token, q: q})
	}

	return entries, nil
}

// Encode compresses p with the coding. Identity returns p untouched.
// Calling it with a recognized-but-unsupported coding is a programming
// error, as negotiation never selects one; it fails loudly.
func (t Token) Encode(p []byte) []byte {
	switch t {
	case Identity:
		return p
	case GZIP:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		// writes into a bytes.Buffer cannot fail
		_, _ = w.Write(p)
		_ = w.Close()
		return buf.Bytes()
	default:
		panic(fmt.Sprintf("coding %s has no transform", t))
	}
}

// Decode reverses Encode.
func (t Token) Decode(p []byte) ([]byte, error) {
	switch t {
	case Identity:
		return p, nil
	case GZIP:
		r, err := gzip.NewReader(bytes.NewReader(p))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	default:
		return nil, fmt.Errorf("coding %s has no transform", t)
	}
}
