package auth_test

import (
	"encoding/base64"
	"testing"

	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentials(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		username string
		password string
		legacy   bool
	}{
		{"username and password", "alice:secret1", "alice", "secret1", false},
		{"split on first colon only", "alice:se:cr:et", "alice", "se:cr:et", false},
		{"empty username is legacy", ":secret", "", "secret", true},
		{"no colon is a bare password", "secret", "", "secret", true},
		{"empty password allowed", "alice:", "alice", "", false},
		{"empty input", "", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			creds, err := auth.ParseCredentials(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.username, creds.Username)
			assert.Equal(t, tc.password, creds.Password)
			assert.Equal(t, tc.legacy, creds.Legacy())
		})
	}

	t.Run("invalid UTF-8 is malformed", func(t *testing.T) {
		_, err := auth.ParseCredentials("alice:\xff\xfe")
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	})
}

func TestParseBasicHeader(t *testing.T) {
	encode := func(s string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(s))
	}

	t.Run("decodes a username credential", func(t *testing.T) {
		creds, err := auth.ParseBasicHeader(encode("alice:secret1"))
		require.NoError(t, err)
		assert.Equal(t, auth.Credentials{Username: "alice", Password: "secret1"}, creds)
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		creds, err := auth.ParseBasicHeader("basic " + base64.StdEncoding.EncodeToString([]byte(":pw")))
		require.NoError(t, err)
		assert.True(t, creds.Legacy())
		assert.Equal(t, "pw", creds.Password)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := auth.ParseBasicHeader("   ")
		assert.ErrorIs(t, err, auth.ErrNoCredentials)
	})

	t.Run("bearer scheme is malformed", func(t *testing.T) {
		_, err := auth.ParseBasicHeader("Bearer abc.def")
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	})

	t.Run("invalid base64 is malformed", func(t *testing.T) {
		_, err := auth.ParseBasicHeader("Basic !!!not-base64")
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	})

	t.Run("decoded bytes must be UTF-8", func(t *testing.T) {
		_, err := auth.ParseBasicHeader("Basic " + base64.StdEncoding.EncodeToString([]byte{0xff, ':', 'x'}))
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	})
}
