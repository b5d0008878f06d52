package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"upitrack/internal/config"
	"upitrack/internal/models"
)

const tokenLifetime = 24 * time.Hour

// GenerateToken issues a signed HS256 bearer token carrying the user's id
// and username. The signing secret comes from JWT_SECRET.
func GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "upitrack-api",
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
		},
		UserID:   user.ID,
		Username: user.Username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret()))
}

// ParseToken parses and validates a bearer token string, returning the
// embedded claims.
func ParseToken(tokenStr string) (*models.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret()), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func jwtSecret() string {
	// Insecure fallback so development works out of the box.
	return config.GetEnv("JWT_SECRET", "fallback-secret-key")
}
