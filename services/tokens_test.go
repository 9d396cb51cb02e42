package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("s3cret", 2*time.Hour)
	tok, err := issuer.Issue("user-1", "a@b.com")
	require.NoError(t, err)

	claims, err := issuer.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("s3cret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	tok, err := issuer.Issue("user-1", "a@b.com")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := NewTokenIssuer("one", time.Hour).Issue("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("s3cret", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWithoutSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour).Issue("user-1", "a@b.com")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
