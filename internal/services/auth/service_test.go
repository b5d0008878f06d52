package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upitrack/internal/models"
	"upitrack/internal/repositories"
	"upitrack/internal/services/auth"
)

func newService(t *testing.T) (auth.Service, repositories.Repository) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	repo := repositories.NewMemoryRepository()
	return auth.NewService(repo), repo
}

func registerAlice(t *testing.T, svc auth.Service) *models.User {
	t.Helper()
	user, err := svc.Register(&models.CreateUserInput{
		Username: "alice",
		Password: "s3cret-pw",
		UpiID:    "alice@bank",
	})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	svc, repo := newService(t)

	user := registerAlice(t, svc)
	assert.NotZero(t, user.ID)

	t.Run("password is stored hashed", func(t *testing.T) {
		stored, err := repo.GetUserByUsername("alice")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-pw", stored.Password)
		assert.NotEmpty(t, stored.Password)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(&models.CreateUserInput{Username: "alice", Password: "other-pw"})
		assert.ErrorIs(t, err, auth.ErrUsernameTaken)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	registerAlice(t, svc)

	t.Run("valid credentials return user and token", func(t *testing.T) {
		user, token, err := svc.Login("alice", "s3cret-pw")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password and unknown username are indistinguishable", func(t *testing.T) {
		_, _, errWrongPw := svc.Login("alice", "not-the-password")
		_, _, errNoUser := svc.Login("nobody", "s3cret-pw")

		assert.ErrorIs(t, errWrongPw, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errNoUser, auth.ErrInvalidCredentials)
		assert.Equal(t, errWrongPw.Error(), errNoUser.Error())
	})
}

func TestVerifyToken(t *testing.T) {
	svc, _ := newService(t)
	user := registerAlice(t, svc)

	t.Run("round trip", func(t *testing.T) {
		_, token, err := svc.Login("alice", "s3cret-pw")
		require.NoError(t, err)

		claims, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.VerifyToken("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong signature", func(t *testing.T) {
		forged := signToken(t, "other-secret", time.Now().Add(time.Hour))
		_, err := svc.VerifyToken(forged)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := signToken(t, "test-secret", time.Now().Add(-time.Hour))
		_, err := svc.VerifyToken(expired)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func signToken(t *testing.T, secret string, expiry time.Time) string {
	t.Helper()
	claims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
		UserID:   1,
		Username: "alice",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
