package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GenerateToken("64f000000000000000000001")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := ValidateToken(tokenString)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "64f000000000000000000001", claims["user_id"])
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateToken("64f000000000000000000001")
	assert.Error(t, err)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tokenString, err := GenerateToken("64f000000000000000000001")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	token, err := ValidateToken(tokenString)
	assert.Error(t, err)
	if token != nil {
		assert.False(t, token.Valid)
	}
}
