package auth

import (
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Scheme enumerates the authorization schemes recognized on the wire.
// Only Basic is actually implemented.
type Scheme uint8

const (
	Basic Scheme = iota
	Bearer
)

func (s Scheme) String() string {
	switch s {
	case Basic:
		return "Basic"
	case Bearer:
		return "Bearer"
	default:
		return "Unknown"
	}
}

// ParseScheme matches a scheme token case-insensitively, as RFC 9110
// demands for auth schemes.
func ParseScheme(token string) (Scheme, bool) {
	switch {
	case strings.EqualFold(token, "Basic"):
		return Basic, true
	case strings.EqualFold(token, "Bearer"):
		return Bearer, true
	default:
		return 0, false
	}
}

// Authenticator validates the credential blob of an authorization header.
type Authenticator interface {
	Authenticate(data []byte, scheme Scheme) bool
}

// Credentials configures a BasicAuthenticator. The password is kept only
// as a bcrypt hash.
type Credentials struct {
	User         string
	PasswordHash []byte
}

// NewCredentials hashes the password and returns ready-to-inject
// credentials.
func NewCredentials(user, password string) Credentials {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// only reachable with an out-of-range cost
		panic(err)
	}

	return Credentials{User: user, PasswordHash: hash}
}

// BasicAuthenticator checks Basic credential blobs against a single
// configured user/password pair.
type BasicAuthenticator struct {
	creds Credentials
}

func NewBasic(creds Credentials) *BasicAuthenticator {
	return &BasicAuthenticator{creds: creds}
}

// Authenticate decodes the base64 user:password blob and compares it to
// the configured pair. Invoking it with any scheme other than Basic
// fails loudly: recognizing a scheme is not implementing it.
func (a *BasicAuthenticator) Authenticate(data []byte, scheme Scheme) bool {
	if scheme != Basic {
		panic(fmt.Sprintf("auth scheme %s is not supported", scheme))
	}

	decoded, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return false
	}

	user, password, found := strings.Cut(string(decoded), ":")
	if !found || user != a.creds.User {
		return false
	}

	return bcrypt.CompareHashAndPassword(a.creds.PasswordHash, []byte(password)) == nil
}
