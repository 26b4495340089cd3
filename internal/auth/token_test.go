package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAccessToken(t *testing.T) {
	t.Run("Cookie Preferred", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie_token"})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "cookie_token", ExtractAccessToken(req))
	})

	t.Run("Header Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("Empty Cookie Falls Back to Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: ""})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("No Token", func(t *testing.T) {
		assert.Empty(t, ExtractAccessToken(httptest.NewRequest(http.MethodGet, "/", nil)))
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic user:pass")

		assert.Empty(t, ExtractAccessToken(req))
	})
}

func TestTokenManager(t *testing.T) {
	user := User{ID: "admin@pieza.test", Name: "Pat Admin", Email: "admin@pieza.test"}

	t.Run("Missing secret", func(t *testing.T) {
		_, err := NewTokenManager("", time.Hour)
		assert.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("Round trip", func(t *testing.T) {
		m, err := NewTokenManager("test-secret", time.Hour)
		require.NoError(t, err)

		token, err := m.Generate(user)
		require.NoError(t, err)

		got, err := m.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, user, *got)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		m1, _ := NewTokenManager("secret-one", time.Hour)
		m2, _ := NewTokenManager("secret-two", time.Hour)

		token, err := m1.Generate(user)
		require.NoError(t, err)

		_, err = m2.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		m, _ := NewTokenManager("test-secret", time.Minute)
		m.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := m.Generate(user)
		require.NoError(t, err)

		m.now = time.Now
		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Rejects other signing methods", func(t *testing.T) {
		m, _ := NewTokenManager("test-secret", time.Hour)
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"iss": issuer}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Default TTL", func(t *testing.T) {
		m, _ := NewTokenManager("test-secret", 0)
		assert.Equal(t, DefaultTokenTTL, m.TTL())
	})
}

func TestCookies(t *testing.T) {
	c := SessionCookie("tok", time.Hour, true)
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	assert.Equal(t, -1, ClearedCookie(false).MaxAge)
}
