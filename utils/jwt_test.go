package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("uid-1")
	require.NoError(t, err)

	uid, err := ParseSessionJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
}

func TestReauthTokenScopeIsEnforced(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	session, err := GenerateJWT("uid-1")
	require.NoError(t, err)
	reauth, err := GenerateReauthJWT("uid-1")
	require.NoError(t, err)

	_, err = ParseReauthJWT(session)
	assert.Error(t, err, "session token must not pass as reauth proof")
	_, err = ParseSessionJWT(reauth)
	assert.Error(t, err, "reauth token must not open a session")

	uid, err := ParseReauthJWT(reauth)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT("uid-1")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseSessionJWT(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
}

func TestGenerateRandomTokenLength(t *testing.T) {
	tok := GenerateRandomToken(6)
	assert.Len(t, tok, 6)
	assert.NotEqual(t, tok, GenerateRandomToken(6))
}
