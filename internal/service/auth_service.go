package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/pkg/serverutils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
}

type authService struct {
	username     string
	passwordHash string
	jwtSecret    string
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewAuthService checks credentials against a single configured admin
// account. An empty passwordHash disables admin login.
func NewAuthService(username, passwordHash, jwtSecret string, tokenTTL time.Duration) IAuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &authService{
		username:     username,
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		now:          time.Now,
	}
}

var errInvalidCredentials = fmt.Errorf("invalid credentials: %w", serverutils.ErrUnauthorized)

func (s *authService) LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if s.passwordHash == "" || s.jwtSecret == "" {
		return nil, fmt.Errorf("admin login is not configured: %w", serverutils.ErrUnauthorized)
	}

	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) != 1 {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("failed to check admin password: %w", err)
	}

	expiresAt := s.now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"user_id": s.username,
		"role":    serverutils.RoleAdmin,
		"exp":     expiresAt.Unix(),
	}
	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.AdminLoginResponse{
		AccessToken: signedToken,
		ExpiresAt:   expiresAt,
	}, nil
}
