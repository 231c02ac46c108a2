package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the identity carried in a session token.
type SessionClaims struct {
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

const sessionTTL = 24 * time.Hour

var (
	errMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// SignSession issues an HS256 session token for the given user identity.
func SignSession(userID, phone, name string) (string, error) {
	secret, err := secretKey()
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", errors.New("user id is required")
	}

	now := time.Now().UTC()
	claims := SessionClaims{
		Phone: phone,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifySession verifies a session token and returns its claims.
func VerifySession(token string) (SessionClaims, error) {
	secret, err := secretKey()
	if err != nil {
		return SessionClaims{}, err
	}

	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return SessionClaims{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return SessionClaims{}, ErrInvalidToken
	}

	return *claims, nil
}

func secretKey() ([]byte, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	env := strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))
	if env == "production" || env == "prod" {
		if secret == "" {
			return nil, fmt.Errorf("%w: JWT_SECRET required in production", errMissingSecret)
		}
	}
	if secret == "" {
		secret = "dev-secret"
	}
	return []byte(secret), nil
}
