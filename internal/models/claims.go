package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the payload embedded in issued bearer tokens.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"id"`
	Username string `json:"username"`
}
