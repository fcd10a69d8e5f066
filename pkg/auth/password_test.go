package auth_test

import (
	"strings"
	"testing"

	"go-jobboard-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, auth.PasswordCost, cost)

	assert.NoError(t, auth.ComparePassword("secret1", hash))
	assert.ErrorIs(t, auth.ComparePassword("secret2", hash), auth.ErrPasswordMismatch)
	assert.ErrorIs(t, auth.ComparePassword("secret1", "not-a-hash"), auth.ErrMalformedHash)

	_, err = auth.HashPassword("")
	assert.ErrorIs(t, err, auth.ErrEmptyPassword)
}

func TestValidateHash(t *testing.T) {
	good, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, auth.ValidateHash(string(good)))
	assert.ErrorIs(t, auth.ValidateHash(""), auth.ErrMalformedHash)
	assert.ErrorIs(t, auth.ValidateHash(string(good[:40])), auth.ErrMalformedHash)
	assert.ErrorIs(t, auth.ValidateHash("$1"+strings.Repeat("x", 58)), auth.ErrMalformedHash)
	assert.ErrorIs(t, auth.ValidateHash("$2b$xx$"+strings.Repeat("a", 53)), auth.ErrMalformedHash)
}

func TestHashPreview(t *testing.T) {
	assert.Equal(t, "not set", auth.HashPreview(""))
	assert.Equal(t, "$2a$...(60 chars)", auth.HashPreview("$2a$"+strings.Repeat("x", 56)))
}
