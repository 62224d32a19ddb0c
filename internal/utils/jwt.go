package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAuthorizationHeader is returned by [ParseBearerToken] when the
// header is not of the form "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the operator or system the token is issued to
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("go-settings", "deploy-bot", time.Hour, "secret")
func GenerateJWTToken(issuer, subject string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || subject == "" || tokenDuration <= 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error signing JWT token: %w", err)
	}

	return signed, nil
}

// ValidateJWTToken verifies the signature, issuer and expiry of tokenString
// and returns its subject. Only HMAC signatures are accepted.
//
// Expired tokens yield an error matching [jwt.ErrTokenExpired].
func ValidateJWTToken(tokenString, signKey, issuer string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("error validating token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error getting subject from token: %w", err)
	}
	if subject == "" {
		return "", errors.New("empty subject error")
	}

	return subject, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
