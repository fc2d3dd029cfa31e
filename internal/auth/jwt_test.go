package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadernoapp/caderno/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := auth.IssueAccessToken(testSecret, "user-1", "ana@example.com", time.Minute)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "caderno", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := auth.IssueAccessToken(testSecret, "user-1", "", time.Minute)
	require.NoError(t, err)

	_, err = auth.ValidateToken("another-secret-another-secret-xx", token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := auth.IssueAccessToken(testSecret, "user-1", "", -time.Minute)
	require.NoError(t, err)

	_, err = auth.ValidateToken(testSecret, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := auth.ValidateToken(testSecret, "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
