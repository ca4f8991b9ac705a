package httprange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive byte span. From is always strictly less than To.
type Range struct {
	From, To int64
}

// Length is the number of bytes the span covers.
func (r Range) Length() int64 {
	return r.To - r.From + 1
}

// Set is a non-empty ordered sequence of ranges.
type Set []Range

// Multipart reports whether serving the set requires a
// multipart/byteranges body.
func (s Set) Multipart() bool {
	return len(s) > 1
}

var ErrMalformed = errors.New("malformed range header")

// Parse parses `bytes=<from>-<to>[,<from>-<to>...]`. Only fully
// specified spans are accepted; suffix and open-ended forms are treated
// as malformed, which callers ignore rather than fail on.
func Parse(header string) (Set, error) {
	unit, spec, ok := strings.Cut(header, "=")
	if !ok || strings.TrimSpace(unit) != "bytes" {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, header)
	}

	parts := strings.Split(spec, ",")
	set := make(Set, 0, len(parts))

	for _, part := range parts {
		from, to, ok := strings.Cut(strings.TrimSpace(part), "-")
		if !ok {
			return nil, fmt.Errorf("%w: span %q", ErrMalformed, part)
		}

		f, err := strconv.ParseInt(from, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: span %q", ErrMalformed, part)
		}

		t, err := strconv.ParseInt(to, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: span %q", ErrMalformed, part)
		}

		if f < 0 || f >= t {
			return nil, fmt.Errorf("%w: span %q is not ascending", ErrMalformed, part)
		}

		set = append(set, Range{From: f, To: t})
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("%w: empty set", ErrMalformed)
	}

	return set, nil
}
