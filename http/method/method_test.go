package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for token, want := range map[string]Method{
		"OPTIONS": OPTIONS,
		"GET":     GET,
		"HEAD":    HEAD,
		"POST":    POST,
		"PUT":     PUT,
		"DELETE":  DELETE,
		"TRACE":   TRACE,
		"CONNECT": CONNECT,
	} {
		assert.Equal(t, want, Parse(token))
		assert.Equal(t, token, Parse(token).String())
	}
}

func TestParseIsCaseSensitive(t *testing.T) {
	for _, token := range []string{"get", "Get", "pOst", "FETCH", "", "GETT"} {
		assert.Equal(t, Unknown, Parse(token), token)
	}
}

func TestAllowString(t *testing.T) {
	assert.Equal(t, "GET, HEAD, POST, OPTIONS", AllowString())
}
