package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndParse(t *testing.T) {
	m := NewManager("a-secret-that-is-long-enough-for-tests", time.Hour)

	token, err := m.Mint("user-1", "Jean", "jean@example.com")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "Jean", claims.FirstName)
	assert.Equal(t, "jean@example.com", claims.Email)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Mint("user-1", "", "")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsOtherSecret(t *testing.T) {
	token, err := NewManager("one", time.Hour).Mint("user-1", "", "")
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMissingSubject(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewManager("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
