package cache

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is a filesystem-backed cache of serialized responses, keyed by a
// stable hash of the resource path.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// envelope is what actually lands on disk. Keeping the resource and the
// timestamp next to the raw bytes makes entries inspectable and leaves
// room for expiry later.
type envelope struct {
	Resource string    `json:"resource"`
	StoredAt time.Time `json:"stored_at"`
	Response []byte    `json:"response"`
}

func (s *Store) path(resource string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(resource))
	return filepath.Join(s.dir, fmt.Sprintf("%016x", h.Sum64()))
}

// Put stores the serialized response bytes for a resource, creating the
// cache directory on first use.
func (s *Store) Put(resource string, response []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.Marshal(envelope{
		Resource: resource,
		StoredAt: time.Now().UTC(),
		Response: response,
	})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	return os.WriteFile(s.path(resource), data, 0o644)
}

// Get returns the cached response bytes. A missing or unreadable entry
// is a miss, never an error.
func (s *Store) Get(resource string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(resource))
	if err != nil {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}

	return env.Response, true
}
