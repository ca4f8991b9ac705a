package parser

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-web/lumen/config"
	"github.com/lumen-web/lumen/http"
	"github.com/lumen-web/lumen/http/coding"
	"github.com/lumen-web/lumen/http/httprange"
	"github.com/lumen-web/lumen/http/method"
	"github.com/lumen-web/lumen/http/status"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.NET.RequestTimeout = time.Second
	return cfg
}

func parse(cfg *config.Config, raw string) (*http.Request, error) {
	return New(cfg).Parse(strings.NewReader(raw))
}

func TestParseGet(t *testing.T) {
	raw := "GET /index.html HTTP/1.1\r\nHost: example.com\r\nContent-Length: 5\r\n\r\nHello"

	req, err := parse(testConfig(), raw)
	require.NoError(t, err)

	assert.Equal(t, method.GET, req.Line.Method)
	assert.Equal(t, "/index.html", req.Line.Resource)
	assert.Equal(t, "1.1", req.Line.Version)
	assert.Equal(t, "example.com", req.Content.Headers.Value("host"))
	assert.Equal(t, "5", req.Content.Headers.Value("content-length"))
	assert.Equal(t, []byte("Hello"), req.Content.Body)
	assert.False(t, req.Negotiated)
	assert.Equal(t, coding.Identity, req.Encoding)
}

func TestContentLengthMatchesBody(t *testing.T) {
	for _, body := range []string{"x", "hello", strings.Repeat("a", 4096)} {
		raw := fmt.Sprintf("POST /files/a.txt HTTP/1.1\r\nContent-Length: %d\r\n\r\n%s", len(body), body)

		req, err := parse(testConfig(), raw)
		require.NoError(t, err)
		assert.Equal(t, len(body), len(req.Content.Body))
	}
}

func TestMalformedRequestLine(t *testing.T) {
	for _, raw := range []string{
		"\r\n",
		"GET HTTP/1.1\r\n",
		"/ HTTP/1.1\r\n",
		"GET / \r\n",
		"GET / HTTP/1.1 extra\r\n",
	} {
		_, err := parse(testConfig(), raw)
		require.Error(t, err, raw)

		var malformed status.MalformedRequestLineError
		require.ErrorAs(t, err, &malformed, raw)
		assert.Equal(t, raw, malformed.Line)
		assert.Equal(t, status.BadRequest, status.From(err))
	}
}

func TestWrongHeaderFormat(t *testing.T) {
	for _, raw := range []string{
		"GET / HTTP/1.1\r\nHeader:",
		"GET / HTTP/1.1\r\n:",
		"GET / HTTP/1.1\r\nno colon here\r\n\r\n",
		"GET / HTTP/1.1\r\n: value\r\n\r\n",
	} {
		_, err := parse(testConfig(), raw)
		assert.ErrorIs(t, err, status.ErrWrongHeaderFormat, raw)
	}
}

func TestInvalidUTF8(t *testing.T) {
	_, err := parse(testConfig(), "GET / HTTP/1.1\r\nLove:\xf0\x9f\x92\r\n\r\n")
	assert.ErrorIs(t, err, status.ErrInvalidUTF8)
}

func TestHeaderOverflowBoundary(t *testing.T) {
	cfg := testConfig()
	cfg.Headers.MaxNumber = 10

	request := func(n int) string {
		var b strings.Builder
		b.WriteString("GET / HTTP/1.1\r\n")
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, "x-header-%d: %s\r\n", i, uniuri.New())
		}
		b.WriteString("\r\n")
		return b.String()
	}

	_, err := parse(cfg, request(cfg.Headers.MaxNumber))
	assert.NoError(t, err)

	_, err = parse(cfg, request(cfg.Headers.MaxNumber+1))
	assert.ErrorIs(t, err, status.ErrHeaderOverflow)
	assert.Equal(t, status.HeaderFieldsTooLarge, status.From(err))
}

func TestHeaderLineTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Headers.MaxLineSize = 64

	raw := "GET / HTTP/1.1\r\nbig: " + strings.Repeat("a", 128) + "\r\n\r\n"
	_, err := parse(cfg, raw)
	assert.ErrorIs(t, err, status.ErrHeaderFieldsTooLarge)
}

func TestURITooLong(t *testing.T) {
	cfg := testConfig()
	cfg.URI.MaxLength = 16

	_, err := parse(cfg, "GET /"+strings.Repeat("a", 32)+" HTTP/1.1\r\n\r\n")
	assert.ErrorIs(t, err, status.ErrURITooLong)
}

func TestDelimiterlessFloodIsBounded(t *testing.T) {
	t.Run("request line", func(t *testing.T) {
		cfg := testConfig()
		cfg.URI.MaxLength = 16

		_, err := parse(cfg, "GET /"+strings.Repeat("a", 4096))
		assert.ErrorIs(t, err, status.ErrURITooLong)
	})

	t.Run("header line", func(t *testing.T) {
		cfg := testConfig()
		cfg.Headers.MaxLineSize = 64

		_, err := parse(cfg, "GET / HTTP/1.1\r\nbig: "+strings.Repeat("a", 4096))
		assert.ErrorIs(t, err, status.ErrHeaderFieldsTooLarge)
	})
}

func TestMethodMustMatchExactly(t *testing.T) {
	for _, raw := range []string{
		"FETCH / HTTP/1.1\r\n\r\n",
		"get / HTTP/1.1\r\n\r\n",
		"Get / HTTP/1.1\r\n\r\n",
	} {
		_, err := parse(testConfig(), raw)
		assert.ErrorIs(t, err, status.ErrNotImplemented, raw)
	}
}

func TestVersionNotSupported(t *testing.T) {
	for _, raw := range []string{
		"GET / HTTP/2.0\r\n\r\n",
		"GET / HTTP/1.0\r\n\r\n",
	} {
		_, err := parse(testConfig(), raw)
		assert.ErrorIs(t, err, status.ErrHTTPVersionNotSupported, raw)
	}
}

func TestContentLength(t *testing.T) {
	t.Run("non-numeric is a hard failure", func(t *testing.T) {
		_, err := parse(testConfig(), "GET / HTTP/1.1\r\nContent-Length: five\r\n\r\n")
		assert.ErrorIs(t, err, status.ErrBadContentLength)
		assert.Equal(t, status.BadRequest, status.From(err))
	})

	t.Run("over the limit", func(t *testing.T) {
		cfg := testConfig()
		cfg.Body.MaxSize = 4

		_, err := parse(cfg, "POST /files/a HTTP/1.1\r\nContent-Length: 5\r\n\r\nHello")
		assert.ErrorIs(t, err, status.ErrContentTooLarge)
	})

	t.Run("short body", func(t *testing.T) {
		_, err := parse(testConfig(), "POST /files/a HTTP/1.1\r\nContent-Length: 10\r\n\r\nabc")
		assert.ErrorIs(t, err, status.ErrIncompleteBody)
	})

	t.Run("zero length reads no body", func(t *testing.T) {
		req, err := parse(testConfig(), "HEAD /index.html HTTP/1.1\r\n\r\n")
		require.NoError(t, err)
		assert.Empty(t, req.Content.Body)
	})

	t.Run("HEAD with declared body still reads it", func(t *testing.T) {
		req, err := parse(testConfig(), "HEAD / HTTP/1.1\r\nContent-Length: 5\r\n\r\nHello")
		require.NoError(t, err)
		assert.Equal(t, []byte("Hello"), req.Content.Body)
	})
}

func TestAcceptEncoding(t *testing.T) {
	t.Run("gzip negotiates gzip", func(t *testing.T) {
		req, err := parse(testConfig(), "GET / HTTP/1.1\r\nAccept-Encoding: gzip\r\n\r\n")
		require.NoError(t, err)
		assert.True(t, req.Negotiated)
		assert.Equal(t, coding.GZIP, req.Encoding)
	})

	t.Run("gzip among others still wins", func(t *testing.T) {
		req, err := parse(testConfig(), "GET / HTTP/1.1\r\nAccept-Encoding: br;q=1.0, gzip;q=0.5, zstd\r\n\r\n")
		require.NoError(t, err)
		assert.Equal(t, coding.GZIP, req.Encoding)
	})

	t.Run("highest quality supported coding is selected", func(t *testing.T) {
		req, err := parse(testConfig(), "GET / HTTP/1.1\r\nAccept-Encoding: gzip;q=0.5, identity;q=0.8\r\n\r\n")
		require.NoError(t, err)
		assert.Equal(t, coding.Identity, req.Encoding)
	})

	t.Run("only unsupported codings", func(t *testing.T) {
		_, err := parse(testConfig(), "GET / HTTP/1.1\r\nAccept-Encoding: br, zstd\r\n\r\n")
		assert.ErrorIs(t, err, status.ErrNotAcceptable)
	})

	t.Run("unknown coding token", func(t *testing.T) {
		_, err := parse(testConfig(), "GET / HTTP/1.1\r\nAccept-Encoding: frobnicate\r\n\r\n")
		assert.ErrorIs(t, err, status.ErrBadEncoding)
	})

	t.Run("unparsable quality", func(t *testing.T) {
		_, err := parse(testConfig(), "GET / HTTP/1.1\r\nAccept-Encoding: gzip;q=high\r\n\r\n")
		assert.ErrorIs(t, err, status.ErrBadEncoding)
	})

	t.Run("absent header means no negotiation", func(t *testing.T) {
		req, err := parse(testConfig(), "GET / HTTP/1.1\r\n\r\n")
		require.NoError(t, err)
		assert.False(t, req.Negotiated)
	})
}

func TestRangeHeader(t *testing.T) {
	t.Run("well-formed", func(t *testing.T) {
		req, err := parse(testConfig(), "GET /files/a.txt HTTP/1.1\r\nRange: bytes=0-63\r\n\r\n")
		require.NoError(t, err)
		require.Len(t, req.Ranges, 1)
		assert.Equal(t, httprange.Range{From: 0, To: 63}, req.Ranges[0])
	})

	t.Run("malformed is silently dropped", func(t *testing.T) {
		req, err := parse(testConfig(), "GET /files/a.txt HTTP/1.1\r\nRange: bytes=zero-one\r\n\r\n")
		require.NoError(t, err)
		assert.Nil(t, req.Ranges)
	})
}

func TestCacheControlHeader(t *testing.T) {
	req, err := parse(testConfig(), "GET / HTTP/1.1\r\nCache-Control: no-store, max-age=0\r\n\r\n")
	require.NoError(t, err)
	assert.False(t, req.CacheControl.StoreAllowed())
}

type blockingReader struct {
	block chan struct{}
}

func (b blockingReader) Read([]byte) (int, error) {
	<-b.block
	return 0, io.EOF
}

func TestTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.NET.RequestTimeout = 50 * time.Millisecond

	reader := blockingReader{block: make(chan struct{})}
	defer close(reader.block)

	start := time.Now()
	_, err := New(cfg).Parse(reader)
	assert.ErrorIs(t, err, status.ErrRequestTimeout)
	assert.Less(t, time.Since(start), time.Second)
}
