package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func blob(userpass string) []byte {
	return []byte(base64.StdEncoding.EncodeToString([]byte(userpass)))
}

func TestBasicAuthenticate(t *testing.T) {
	a := NewBasic(NewCredentials("admin", "password"))

	assert.True(t, a.Authenticate(blob("admin:password"), Basic))
	assert.False(t, a.Authenticate(blob("admin:wrong"), Basic))
	assert.False(t, a.Authenticate(blob("other:password"), Basic))
	assert.False(t, a.Authenticate(blob("admin"), Basic))
	assert.False(t, a.Authenticate([]byte("not base64 at all!"), Basic))
}

func TestBearerFailsLoudly(t *testing.T) {
	a := NewBasic(NewCredentials("admin", "password"))

	assert.Panics(t, func() {
		a.Authenticate(blob("token"), Bearer)
	})
}

func TestParseScheme(t *testing.T) {
	for token, want := range map[string]Scheme{
		"Basic":  Basic,
		"basic":  Basic,
		"BASIC":  Basic,
		"Bearer": Bearer,
	} {
		scheme, ok := ParseScheme(token)
		assert.True(t, ok, token)
		assert.Equal(t, want, scheme, token)
	}

	_, ok := ParseScheme("Digest")
	assert.False(t, ok)
}
