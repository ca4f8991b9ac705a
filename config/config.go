package config

import "time"

type (
	URI struct {
		// MaxLength bounds the raw resource string of the request line.
		// Anything longer is rejected with 414 before the rest of the
		// request is even looked at.
		MaxLength int
	}

	Headers struct {
		// MaxNumber is the maximal amount of headers a single request
		// may carry.
		MaxNumber int
		// MaxLineSize limits a single raw header line, name, colon and
		// value included.
		MaxLineSize int
	}

	Body struct {
		// MaxSize is the maximal declared content-length accepted.
		MaxSize uint64
	}

	NET struct {
		// Addr is the address the listener binds to.
		Addr string
		// RequestTimeout caps how long reading and parsing a single
		// request may take before 408 is returned.
		RequestTimeout time.Duration
		// Workers is the size of the connection worker pool. Accepted
		// connections beyond it queue until a worker frees up.
		Workers int
	}

	FS struct {
		// Root is the directory served under /files/.
		Root string
		// CacheDir stores cached serialized responses.
		CacheDir string
	}
)

// Config holds limits and defaults used across the pipeline. Modify values
// returned by Default() instead of constructing the struct manually, so
// unset limits don't silently become zero.
type Config struct {
	URI     URI
	Headers Headers
	Body    Body
	NET     NET
	FS      FS
}

// Default returns the default configuration. The limits mirror what most
// web-facing entities tolerate; they are deliberately permissive.
func Default() *Config {
	return &Config{
		URI: URI{
			MaxLength: 65535,
		},
		Headers: Headers{
			MaxNumber:   10000,
			MaxLineSize: 8 * 1024,
		},
		Body: Body{
			MaxSize: 2 * 1024 * 1024 * 1024, // 2 GiB
		},
		NET: NET{
			Addr:           "127.0.0.1:4221",
			RequestTimeout: 60 * time.Second,
			Workers:        4,
		},
		FS: FS{
			Root:     ".",
			CacheDir: ".cache",
		},
	}
}
