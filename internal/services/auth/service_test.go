package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletcore/internal/config"
	"walletcore/internal/models"
	"walletcore/internal/repositories"
)

func TestRegisterAndLogin(t *testing.T) {
	store := repositories.NewMemory()
	svc := NewService(store)

	user, err := svc.Register(RegisterInput{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Password:  "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStandard, user.Role)
	assert.NotEqual(t, "s3cret", user.Password, "password must be stored hashed")

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(RegisterInput{Email: "ana@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("login with valid credentials", func(t *testing.T) {
		token, got, err := svc.Login("ana@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		parsed, err := jwt.ParseWithClaims(token, &models.UserClaims{}, func(*jwt.Token) (interface{}, error) {
			return config.JWTSecret(), nil
		})
		require.NoError(t, err)
		claims, ok := parsed.Claims.(*models.UserClaims)
		require.True(t, ok)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, models.RoleStandard, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login("ana@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login("ghost@example.com", "x")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
