package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lumen-web/lumen/config"
	"github.com/lumen-web/lumen/http"
	"github.com/lumen-web/lumen/http/cachecontrol"
	"github.com/lumen-web/lumen/http/coding"
	"github.com/lumen-web/lumen/http/headers"
	"github.com/lumen-web/lumen/http/httprange"
	"github.com/lumen-web/lumen/http/method"
	"github.com/lumen-web/lumen/http/status"
)

// supportedVersions lists version suffixes the request line may carry.
var supportedVersions = []string{"1.1"}

// Parser turns a raw byte stream into a structured request, enforcing
// the configured size limits and the request-wide timeout.
type Parser struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Parser {
	return &Parser{cfg: cfg}
}

// deadlineReader is satisfied by net.Conn. When the stream supports read
// deadlines, one is set alongside the watchdog so an abandoned read is
// reclaimed instead of leaked.
type deadlineReader interface {
	SetReadDeadline(t time.Time) error
}

// Parse reads exactly one request off the stream. The read-and-parse
// work runs on its own goroutine; if it doesn't finish within the
// configured timeout, the caller proceeds with a 408 failure.
func (p *Parser) Parse(stream io.Reader) (*http.Request, error) {
	type result struct {
		req *http.Request
		err error
	}

	if d, ok := stream.(deadlineReader); ok {
		_ = d.SetReadDeadline(time.Now().Add(p.cfg.NET.RequestTimeout))
	}

	done := make(chan result, 1)
	go func() {
		req, err := p.parse(stream)
		done <- result{req: req, err: err}
	}()

	timeout := time.NewTimer(p.cfg.NET.RequestTimeout)
	defer timeout.Stop()

	select {
	case res := <-done:
		return res.req, res.err
	case <-timeout.C:
		return nil, status.ErrRequestTimeout
	}
}

func (p *Parser) parse(stream io.Reader) (*http.Request, error) {
	reader := bufio.NewReader(stream)

	// the request line is bounded by the URI limit plus room for the
	// method, version and separators
	line, err := p.readLine(reader, p.cfg.URI.MaxLength+64, status.ErrURITooLong)
	if err != nil {
		return nil, err
	}

	reqLine, err := p.parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	hdrs, err := p.parseHeaders(reader)
	if err != nil {
		return nil, err
	}

	body, err := p.readBody(reader, hdrs)
	if err != nil {
		return nil, err
	}

	req := &http.Request{
		Line: reqLine,
		Content: http.Content{
			Headers: hdrs,
			Body:    body,
		},
		Encoding: coding.Identity,
	}

	if err := p.deriveFields(req); err != nil {
		return nil, err
	}

	return req, nil
}

// readLine reads up to and including the next LF, returning overflow as
// soon as more than limit bytes accumulate, so a delimiter-less stream
// never buffers past the configured limits. EOF mid-line is not an
// error here: the partial line is returned and whichever validation
// comes next rejects it. Non-UTF8 content is, matching the line-decoding
// contract of the pipeline.
func (p *Parser) readLine(reader *bufio.Reader, limit int, overflow error) (string, error) {
	var line []byte

	for {
		chunk, err := reader.ReadSlice('\n')
		line = append(line, chunk...)

		if len(line) > limit {
			return "", overflow
		}

		if err == bufio.ErrBufferFull {
			continue
		}

		if err != nil && err != io.EOF {
			return "", fmt.Errorf("%w: %v", status.ErrInvalidUTF8, err)
		}

		if !utf8.Valid(line) {
			return "", status.ErrInvalidUTF8
		}

		return string(line), nil
	}
}

func (p *Parser) parseRequestLine(line string) (http.RequestLine, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return http.RequestLine{}, status.MalformedRequestLineError{Line: line}
	}

	resource := fields[1]
	if len(resource) > p.cfg.URI.MaxLength {
		return http.RequestLine{}, status.ErrURITooLong
	}

	m := method.Parse(fields[0])
	if m == method.Unknown {
		return http.RequestLine{}, status.ErrNotImplemented
	}

	version, err := parseVersion(fields[2])
	if err != nil {
		return http.RequestLine{}, err
	}

	return http.RequestLine{Method: m, Resource: resource, Version: version}, nil
}

func parseVersion(token string) (string, error) {
	for _, v := range supportedVersions {
		if strings.HasSuffix(token, v) {
			return v, nil
		}
	}

	return "", status.ErrHTTPVersionNotSupported
}

func (p *Parser) parseHeaders(reader *bufio.Reader) (*headers.Map, error) {
	hdrs := headers.NewPrealloc(8)

	for {
		raw, err := p.readLine(reader, p.cfg.Headers.MaxLineSize, status.ErrHeaderFieldsTooLarge)
		if err != nil {
			return nil, err
		}

		line := strings.TrimRight(raw, "\r\n")
		if line == "" {
			return hdrs, nil
		}

		name, value, err := splitHeader(line)
		if err != nil {
			return nil, err
		}

		hdrs.Set(name, value)
		if hdrs.Len() > p.cfg.Headers.MaxNumber {
			return nil, status.ErrHeaderOverflow
		}
	}
}

// splitHeader cuts a header line at the first colon. Both sides must be
// non-empty after trimming; the name comes back lowercase.
func splitHeader(line string) (name, value string, err error) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", status.ErrWrongHeaderFormat
	}

	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return "", "", status.ErrWrongHeaderFormat
	}

	return name, value, nil
}

// readBody reads exactly content-length bytes. The body is read only
// when a non-zero length was declared, no matter the method; a short
// read is a hard failure.
func (p *Parser) readBody(reader *bufio.Reader, hdrs *headers.Map) ([]byte, error) {
	var contentLength uint64

	if value, found := hdrs.Get("content-length"); found {
		var err error
		if contentLength, err = strconv.ParseUint(value, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: %q", status.ErrBadContentLength, value)
		}
	}

	if contentLength > p.cfg.Body.MaxSize {
		return nil, status.ErrContentTooLarge
	}

	if contentLength == 0 {
		return nil, nil
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(reader, body); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrIncompleteBody, err)
	}

	return body, nil
}

// deriveFields fills in the secondary request fields computed from
// headers. Content negotiation failures are hard; a broken range or
// cache-control header is silently dropped.
func (p *Parser) deriveFields(req *http.Request) error {
	if accept, found := req.Header("accept-encoding"); found {
		token, err := coding.Negotiate(accept)
		if err != nil {
			return err
		}

		req.Encoding = token
		req.Negotiated = true
	}

	if header, found := req.Header("range"); found {
		if set, err := httprange.Parse(header); err == nil {
			req.Ranges = set
		}
	}

	if header, found := req.Header("cache-control"); found {
		req.CacheControl = cachecontrol.Parse(header)
	}

	return nil
}
