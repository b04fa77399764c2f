package auth

import (
	"context"
	"crypto/subtle"
	"time"

	autherrors "mini-payrun/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Config carries the single configured operator account. Real user management
// sits outside this service; the API only needs a bearer boundary.
type Config struct {
	Email        string // DEMO_EMAIL
	PasswordHash string // DEMO_PASSWORD_HASH, bcrypt
	JWTSecret    string // JWT_SECRET
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}

type service struct {
	cfg Config
}

func NewService(cfg Config) Service {
	return &service{cfg: cfg}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	if s.cfg.Email == "" || s.cfg.PasswordHash == "" || s.cfg.JWTSecret == "" {
		return LoginResponse{}, autherrors.ErrLoginNotConfigured
	}

	if subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.cfg.Email)) != 1 {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": req.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		Token:     signed,
		ExpiresIn: int64(tokenTTL.Seconds()),
		User:      UserInfo{Email: req.Email},
	}, nil
}
