package headers

import "strings"

type Pair struct {
	Key, Value string
}

// Map is an associative structure for header pairs. Keys are normalized
// to lowercase on insert and kept in insertion order, which makes the
// serialized header block deterministic. Lookup is a linear scan: on the
// header counts real messages carry it beats a hash map.
type Map struct {
	pairs []Pair
}

func New() *Map {
	return new(Map)
}

// NewPrealloc returns a Map with pre-allocated underlying storage.
func NewPrealloc(n int) *Map {
	return &Map{
		pairs: make([]Pair, 0, n),
	}
}

// Add appends a new pair, even if the key is already present.
func (m *Map) Add(key, value string) *Map {
	m.pairs = append(m.pairs, Pair{
		Key:   strings.ToLower(key),
		Value: value,
	})
	return m
}

// Set replaces the value of an existing key, or appends the pair if the
// key isn't present yet.
func (m *Map) Set(key, value string) *Map {
	key = strings.ToLower(key)

	for i := range m.pairs {
		if m.pairs[i].Key == key {
			m.pairs[i].Value = value
			return m
		}
	}

	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
	return m
}

// Get returns a value and whether it was found. Lookup is
// case-insensitive.
func (m *Map) Get(key string) (value string, found bool) {
	for _, pair := range m.pairs {
		if strings.EqualFold(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Value returns the value for the key, or an empty string.
func (m *Map) Value(key string) string {
	return m.ValueOr(key, "")
}

// ValueOr returns the value for the key, or the fallback.
func (m *Map) ValueOr(key, or string) string {
	if value, found := m.Get(key); found {
		return value
	}

	return or
}

func (m *Map) Has(key string) bool {
	_, found := m.Get(key)
	return found
}

func (m *Map) Len() int {
	return len(m.pairs)
}

// Pairs exposes the underlying storage in insertion order. The slice must
// not be modified.
func (m *Map) Pairs() []Pair {
	return m.pairs
}
