package service

import (
	"github.com/golang-jwt/jwt/v5"

	"accounts/internal/domain/entity"
)

// Claims defines the identity claims carried by access tokens.
type Claims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Requestor converts the claims to the caller identity used by the use cases.
func (c *Claims) Requestor() entity.Requestor {
	return entity.Requestor{Email: c.Email, IsAdmin: c.IsAdmin}
}

// TokenService reads back access tokens issued by the session layer.
type TokenService interface {
	// ValidateToken checks the validity of a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
