package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mathanmathan27/aarvel-store/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthService authenticates the single store operator against a configured
// bcrypt hash. There is no user table; customer endpoints stay anonymous.
type AuthService struct {
	log      *slog.Logger
	username string
	passHash []byte
	tokenTTL time.Duration
}

func NewAuthService(log *slog.Logger, username, passwordHash string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:      log,
		username: username,
		passHash: []byte(passwordHash),
		tokenTTL: tokenTTL,
	}
}

// Login checks the operator credential and issues a JWT. The signing secret
// is loaded from the environment inside auth.NewToken.
func (a *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(slog.String("op", op), slog.String("username", username))

	if username != a.username {
		logger.Warn("unknown operator username")
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword(a.passHash, []byte(password)); err != nil {
		logger.Warn("invalid operator password")
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := auth.NewToken(ctx, username, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("operator logged in")
	return token, nil
}
