package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/satriadwi28/kabarproject/internal/model"
)

const testSecretKey = "unit-test-secret-key"

func TestAccessTokenRoundTrip(t *testing.T) {
	userId := uuid.New()

	token, err := GenerateAccessToken(userId, testSecretKey)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	rawToken, parsedUserId, err := ValidateAccessToken(BearerPrefix+token, zap.NewNop(), testSecretKey)
	require.NoError(t, err)
	assert.Equal(t, token, rawToken)
	assert.Equal(t, userId, parsedUserId)
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), testSecretKey)
	require.NoError(t, err)

	_, _, err = ValidateAccessToken(BearerPrefix+token, zap.NewNop(), "a-different-secret")
	require.Error(t, err)

	var unauthorized *model.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
}

func TestValidateAccessTokenHeaderFormats(t *testing.T) {
	testCases := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"missing bearer prefix", "token-without-prefix"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bearer with empty token", "Bearer "},
		{"malformed token", "Bearer not.a.jwt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ValidateAccessToken(tc.header, zap.NewNop(), testSecretKey)
			require.Error(t, err)

			var unauthorized *model.UnauthorizedError
			require.ErrorAs(t, err, &unauthorized, "every auth failure maps to an unauthorized error")
			assert.Equal(t, "accessToken", unauthorized.Param)
		})
	}
}

func TestGenerateTokenPair(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), testSecretKey)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int(AccessTokenDuration.Seconds()), pair.AccessTokenExpiresIn)
}

func TestGenerateAccessTokenRequiresSecret(t *testing.T) {
	_, err := GenerateAccessToken(uuid.New(), "")
	require.Error(t, err)
}

func TestHashToken(t *testing.T) {
	first := HashToken("some-token")
	second := HashToken("some-token")
	other := HashToken("another-token")

	assert.Equal(t, first, second, "hashing is deterministic")
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64, "sha256 hex digest")
	assert.NotContains(t, first, "some-token")
}
