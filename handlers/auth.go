// Package handlers holds the HTTP layer: decode the request, call the
// service, write the envelope. No business rules live here.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akinalp/masterblog/middleware"
	"github.com/akinalp/masterblog/models"
	"github.com/akinalp/masterblog/pkg"
	"github.com/akinalp/masterblog/pkg/ratelimit"
	"github.com/akinalp/masterblog/services"
)

// AuthHandler serves the /auth routes.
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.LoginRateLimiter
}

// NewAuthHandler wires the account handler.
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// masterResponse is the envelope of every account operation that returns the
// account payload.
type masterResponse struct {
	Message string         `json:"message"`
	Master  *models.Master `json:"master"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.WriteError(w, err)
		return
	}

	master, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, masterResponse{Message: "User Created!", Master: master})
}

// Login handles POST /auth/login. Attempts are rate limited per client IP;
// a successful login clears the counter.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.WriteErrorMessage(w, http.StatusTooManyRequests,
			"Too many login attempts. Try again in "+ratelimit.FormatRetryMessage(retryAfter)+".")
		return
	}

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.WriteError(w, err)
		return
	}

	master, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	h.loginLimiter.Reset(ip)

	pkg.JSON(w, http.StatusCreated, masterResponse{Message: "Login User", Master: master})
}

// Update handles PATCH /auth/update.
func (h *AuthHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req models.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.WriteError(w, err)
		return
	}

	master, err := h.authService.UpdateProfile(r.Context(), claims.UserID, &req)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, masterResponse{Message: "Updated User Info", Master: master})
}

// Password handles PUT /auth/password.
func (h *AuthHandler) Password(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req models.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.WriteError(w, err)
		return
	}

	master, err := h.authService.ChangePassword(r.Context(), claims.UserID, &req)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, masterResponse{Message: "Password Successfully Changed!", Master: master})
}

// Delete handles DELETE /auth/user.
func (h *AuthHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	email, err := h.authService.DeleteUser(r.Context(), claims.UserID)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, struct {
		Message string `json:"message"`
		Email   string `json:"email"`
	}{Message: "User Deleted!", Email: email})
}

// decodeJSON decodes the request body, classifying malformed input as 400.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return pkg.BadRequest("invalid request body")
	}
	return nil
}
