package cachecontrol

import "strings"

// Directives is a parsed cache-control header. The zero value behaves
// like an absent header: everything is permitted.
type Directives struct {
	m map[string]string
}

// Parse splits a comma-separated directive list. Directives without a
// value get an empty one; parsing is lenient and never fails.
func Parse(header string) Directives {
	m := make(map[string]string)

	for _, directive := range strings.Split(header, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		name, value, _ := strings.Cut(directive, "=")
		m[strings.ToLower(name)] = value
	}

	return Directives{m: m}
}

// Get returns a directive value and whether the directive is present.
func (d Directives) Get(name string) (string, bool) {
	value, found := d.m[strings.ToLower(name)]
	return value, found
}

// StoreAllowed reports whether the response may be written to a cache,
// i.e. no-store was not requested.
func (d Directives) StoreAllowed() bool {
	_, found := d.m["no-store"]
	return !found
}
