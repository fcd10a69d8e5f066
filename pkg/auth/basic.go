package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"

	"go-jobboard-backend/pkg/apperror"
)

// ErrNoCredentials is returned when the request carries no Authorization header.
var ErrNoCredentials = errors.New("no credentials supplied")

var errNotUTF8 = errors.New("credentials are not valid UTF-8")

// Credentials is the (username, password) pair carried by a Basic header.
// An empty Username means none was supplied, which selects the legacy shared secret.
type Credentials struct {
	Username string
	Password string
}

// Legacy reports whether the credential carries no username.
func (c Credentials) Legacy() bool {
	return c.Username == ""
}

// ParseCredentials splits decoded credential text on its first colon.
//
//	"alice:s3:cret" -> ("alice", "s3:cret")
//	":secret"       -> ("", "secret")
//	"secret"        -> ("", "secret")
func ParseCredentials(raw string) (Credentials, error) {
	if !utf8.ValidString(raw) {
		return Credentials{}, apperror.MalformedCredentials(errNotUTF8)
	}

	username, password, found := strings.Cut(raw, ":")
	if !found {
		return Credentials{Password: raw}, nil
	}
	return Credentials{Username: username, Password: password}, nil
}

// ParseBasicHeader decodes an "Authorization: Basic <base64>" header value.
func ParseBasicHeader(header string) (Credentials, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Credentials{}, ErrNoCredentials
	}

	scheme, encoded, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return Credentials{}, apperror.MalformedCredentials(errors.New("unsupported authorization scheme"))
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return Credentials{}, apperror.MalformedCredentials(err)
	}

	return ParseCredentials(string(decoded))
}
