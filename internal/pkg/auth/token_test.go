package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenProvider_RoundTrip(t *testing.T) {
	p := NewTokenProvider("secret", time.Hour)

	token, err := p.Issue("user-1", "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := p.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", identity.UserID)
	require.Equal(t, "ada@example.com", identity.Email)
}

func TestTokenProvider_RejectsEmptyToken(t *testing.T) {
	p := NewTokenProvider("secret", time.Hour)
	_, err := p.Verify("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenProvider_RejectsExpiredToken(t *testing.T) {
	p := NewTokenProvider("secret", -time.Minute)
	token, err := p.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	_, err = p.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenProvider_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenProvider("secret-a", time.Hour)
	verifier := NewTokenProvider("secret-b", time.Hour)

	token, err := issuer.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenProvider_RejectsGarbage(t *testing.T) {
	p := NewTokenProvider("secret", time.Hour)
	_, err := p.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter2-but-longer")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2-but-longer", hash)

	require.True(t, CheckPassword("hunter2-but-longer", hash))
	require.False(t, CheckPassword("wrong password", hash))
	require.False(t, CheckPassword("hunter2-but-longer", "not-a-hash"))
}
