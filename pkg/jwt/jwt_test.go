package jwt

import (
	"testing"
	"time"

	"clinic-stats/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claimsExpiringIn(d time.Duration) Claims {
	return Claims{
		UserID:    uuid.New(),
		Email:     "vet@example.com",
		TokenType: AccessToken,
		TokenID:   uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(d)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestValidateToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{Secret: testSecret})

	t.Run("valid token", func(t *testing.T) {
		claims := claimsExpiringIn(time.Hour)
		token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

		got, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, claims.UserID, got.UserID)
		assert.Equal(t, claims.TokenID, got.TokenID)
		assert.Equal(t, AccessToken, got.TokenType)
	})

	testCases := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "expired",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsExpiringIn(-time.Minute))
			},
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("other"), claimsExpiringIn(time.Hour))
			},
		},
		{
			name: "unexpected algorithm",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS512, []byte(testSecret), claimsExpiringIn(time.Hour))
			},
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				claims := claimsExpiringIn(time.Hour)
				claims.ExpiresAt = nil
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
			},
		},
		{
			name:  "garbage",
			token: func(t *testing.T) string { return "not-a-token" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.ValidateToken(tc.token(t))
			assert.Error(t, err)
		})
	}
}
