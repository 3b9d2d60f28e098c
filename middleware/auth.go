// Package middleware holds the HTTP request pipeline layers: session
// verification and request logging. A middleware is a func(next http.Handler)
// http.Handler; on failure it responds itself and never calls next.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akinalp/masterblog/models"
	"github.com/akinalp/masterblog/pkg"
	"github.com/akinalp/masterblog/services"
)

// claimsContextKey is the context key the verified token claims live under.
type claimsContextKey struct{}

// AuthMiddleware verifies session tokens on protected routes.
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware wires the session verification gate.
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Require rejects requests without a valid bearer token. Every failure mode
// gets the same 401 body. The claims carry the caller's identity, so no
// database round trip happens here; a deleted account keeps a working token
// until it expires.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			pkg.WriteErrorMessage(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.authService.ValidateToken(tokenString)
		if err != nil {
			pkg.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// ContextWithClaims attaches verified claims to ctx.
func ContextWithClaims(ctx context.Context, claims *models.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext returns the verified claims set by Require, or nil when
// the route was not gated.
func ClaimsFromContext(ctx context.Context) *models.TokenClaims {
	claims, _ := ctx.Value(claimsContextKey{}).(*models.TokenClaims)
	return claims
}
