package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the session-token payload: the identity fields every
// protected handler needs, without a database round trip. Lives in models so
// services, middleware, and handlers can all depend on it without cycles.
type TokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}
