// Package services holds the business logic layer. Services sit between the
// HTTP handlers and the repositories: all domain rules, hashing, and token
// work lives here. A service never touches http.Request/Response and never
// runs SQL directly.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/masterblog/models"
	"github.com/akinalp/masterblog/pkg"
	"github.com/akinalp/masterblog/repository"
	"github.com/akinalp/masterblog/validation"
)

// AuthService is the account API the handlers depend on.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Master, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.Master, error)
	// UpdateProfile changes email and/or name; at least one field must be set.
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Master, error)
	ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) (*models.Master, error)
	// DeleteUser removes the account and returns its email. The user's posts
	// are kept.
	DeleteUser(ctx context.Context, userID string) (string, error)
	ValidateToken(tokenString string) (*models.TokenClaims, error)
}

// authService implements AuthService.
type authService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	jwtExpiry time.Duration
}

// NewAuthService wires the account service.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, expiryMinutes int) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Master, error) {
	password := strings.TrimSpace(req.Password)
	name := strings.TrimSpace(req.Name)

	err := validation.Run(ctx,
		validation.Email(req.Email, "Please enter a valid email."),
		validation.EmailNotTaken(s.userRepo, req.Email),
		validation.Length(password, 5, 20, "Please enter a valid password (min 5 and max 20 length)."),
		validation.Alphanumeric(password, "Password should be alphanumeric."),
		validation.Required(name, "Username should not be empty."),
		validation.Length(name, 3, 50, "Please enter a valid username (min 5 and max 50 length)."),
	)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		Name:         name,
		PasswordHash: string(hash),
	}

	// A Conflict error surfaces here if a concurrent register won the email.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	return &models.Master{Email: user.Email, Name: user.Name, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.Master, error) {
	password := strings.TrimSpace(req.Password)

	err := validation.Run(ctx,
		validation.Email(req.Email, "Please enter a valid email."),
		validation.Length(password, 5, 20, "Please enter a valid password (min 5 and max 20 length)."),
	)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			return nil, pkg.Unauthorized("This user could not find!")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, pkg.Unauthorized("Wrong password!")
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	return &models.Master{Email: user.Email, Name: user.Name, Token: token}, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Master, error) {
	newName := strings.TrimSpace(req.NewName)

	// Optional fields validate only when present. The own-email case is not
	// exempted: re-submitting the current address fails the uniqueness rule.
	err := validation.Run(ctx,
		validation.Optional(req.NewMail, validation.Email(req.NewMail, "Please enter a valid email.")),
		validation.Optional(req.NewMail, validation.EmailNotTaken(s.userRepo, req.NewMail)),
		validation.Optional(newName, validation.Length(newName, 3, 50, "Please enter a valid username (min 5 and max 50 length).")),
	)
	if err != nil {
		return nil, err
	}

	if req.NewMail == "" && newName == "" {
		return nil, pkg.NotFound("There is nothing to change!")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			return nil, pkg.Unauthorized("Invalid Authentication!")
		}
		return nil, err
	}

	if req.NewMail != "" {
		user.Email = req.NewMail
	}
	if newName != "" {
		user.Name = newName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			return nil, pkg.Unauthorized("Invalid Authentication!")
		}
		return nil, err
	}

	return &models.Master{Email: user.Email, Name: user.Name}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) (*models.Master, error) {
	newPassword := strings.TrimSpace(req.NewPassword)
	confirmPassword := strings.TrimSpace(req.ConfirmPassword)

	err := validation.Run(ctx,
		validation.Length(newPassword, 5, 20, "Password must be a minimum of 5 or a maximum of 20 lengths."),
		validation.Alphanumeric(newPassword, "Password should be alphanumeric."),
		validation.Equals(confirmPassword, newPassword, "Passwords have to match!"),
	)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			return nil, pkg.Unauthorized("Invalid Authentication!")
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			return nil, pkg.Unauthorized("Invalid Authentication!")
		}
		return nil, err
	}

	return &models.Master{Email: user.Email, Name: user.Name}, nil
}

func (s *authService) DeleteUser(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			return "", pkg.Unauthorized("Invalid Authentication!")
		}
		return "", err
	}

	// Posts stay behind. The recent listing shows them with an empty author.
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			return "", pkg.Unauthorized("Invalid Authentication!")
		}
		return "", err
	}

	return user.Email, nil
}

// ValidateToken parses and verifies a session token. Every failure mode maps
// to the same 401 so callers leak nothing about why a token was rejected.
func (s *authService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, pkg.Unauthorized("Not authenticated.")
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok {
		return nil, pkg.Unauthorized("Not authenticated.")
	}

	return claims, nil
}

// signToken issues an HS256 session token carrying the user's identity.
func (s *authService) signToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
