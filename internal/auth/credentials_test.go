package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator(t *testing.T) {
	hash, err := HashPassword("margherita")
	require.NoError(t, err)
	a := NewAuthenticator("Admin@Pieza.test", "Pat Admin", hash)

	t.Run("Success ignores email case", func(t *testing.T) {
		u, err := a.Authenticate("admin@pieza.test", "margherita")
		require.NoError(t, err)
		assert.Equal(t, "Pat Admin", u.Name)
		assert.Equal(t, "admin@pieza.test", u.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := a.Authenticate("admin@pieza.test", "hawaiian")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Wrong email", func(t *testing.T) {
		_, err := a.Authenticate("someone@pieza.test", "margherita")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Not configured", func(t *testing.T) {
		_, err := NewAuthenticator("", "", "").Authenticate("", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret", hash))
	assert.False(t, CheckPasswordHash("Secret", hash))
}
