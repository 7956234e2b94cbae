package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateSessionToken("key-1", "user-1", "sess-secret")
	require.NoError(t, err)

	claims, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "key-1", claims.SessionKey)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-secret", claims.Secret)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateSessionToken("key-1", "user-1", "sess-secret")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseSessionToken(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := ParseSessionToken("not.a.token")
	assert.Error(t, err)
}
