package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewMaker(secretKey, tokenTTL)

	tests := []struct {
		name      string
		shopID    string
		gatewayID string
	}{
		{
			name:      "shop with gateway",
			shopID:    "123456",
			gatewayID: "gw-1",
		},
		{
			name:   "shop without gateway",
			shopID: "654321",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.shopID, tt.gatewayID)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.shopID, claims.ShopID)
			assert.Equal(t, tt.gatewayID, claims.GatewayID)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewMaker("secret", time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage token", token: "not-a-jwt"},
		{name: "empty token", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestMaker_ParseToken_WrongKey(t *testing.T) {
	maker := NewMaker("secret-one", time.Minute)
	other := NewMaker("secret-two", time.Minute)

	token, err := maker.GenerateToken("123456", "gw-1")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestMaker_ParseToken_Expired(t *testing.T) {
	maker := NewMaker("secret", -time.Minute)

	token, err := maker.GenerateToken("123456", "")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}
