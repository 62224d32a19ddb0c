package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/utils"
)

type authService struct {
	signKey       string
	issuer        string
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService returns an [AuthService] over cfg. An empty sign key yields
// a disabled service: [AuthService.Enabled] is false and every token is
// rejected.
func NewAuthService(cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		signKey:       cfg.TokenSignKey,
		issuer:        cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

func (a *authService) Enabled() bool {
	return a.signKey != ""
}

func (a *authService) IssueToken(ctx context.Context, subject string) (string, error) {
	if !a.Enabled() {
		return "", ErrAuthDisabled
	}

	token, err := utils.GenerateJWTToken(a.issuer, subject, a.tokenDuration, a.signKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.IssueToken").Str("subject", subject).Msg("error generating token")
		return "", fmt.Errorf("error issuing token: %w", err)
	}

	return token, nil
}

func (a *authService) ParseToken(ctx context.Context, token string) (string, error) {
	if !a.Enabled() {
		return "", ErrAuthDisabled
	}

	subject, err := utils.ValidateJWTToken(token, a.signKey, a.issuer)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenIsExpired
	case err != nil:
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return subject, nil
}
