package lib

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coachfit_server/structs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testClaims() *structs.AuthClaims {
	now := time.Now()
	return &structs.AuthClaims{
		Sub:   uuid.New(),
		Email: "coach@example.com",
		Role:  "coach",
		Iat:   now,
		Exp:   now.Add(15 * time.Minute),
		Jti:   uuid.New(),
	}
}

func TestTokenRoundTrip(t *testing.T) {
	claims := testClaims()

	token, err := GenerateAccessToken(claims, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, claims.Sub, parsed.Sub)
	assert.Equal(t, claims.Email, parsed.Email)
	assert.Equal(t, claims.Role, parsed.Role)
	assert.Equal(t, claims.Jti, parsed.Jti)
	assert.Equal(t, claims.Exp.Unix(), parsed.Exp.Unix())
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(testClaims(), testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	claims := testClaims()
	claims.Iat = time.Now().Add(-time.Hour)
	claims.Exp = time.Now().Add(-30 * time.Minute)

	token, err := GenerateAccessToken(claims, testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-jwt", testSecret)
	assert.Error(t, err)
}

func TestExtractClaims(t *testing.T) {
	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/products/123", nil)
		_, err := ExtractClaims(r, testSecret)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("valid cookie", func(t *testing.T) {
		claims := testClaims()
		token, err := GenerateAccessToken(claims, testSecret)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/products/123", nil)
		r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})

		parsed, err := ExtractClaims(r, testSecret)
		require.NoError(t, err)
		assert.Equal(t, claims.Sub, parsed.Sub)
	})
}
