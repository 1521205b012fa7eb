// Package auth gates the admin back-office. A single admin identity is
// configured; everything else is public read-only.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"clubhub/internal/apperrors"
	"clubhub/internal/config"
)

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret       []byte
	tokenTTL     time.Duration
	adminUser    string
	passwordHash string
}

func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{
		secret:       []byte(cfg.JWTSecret),
		tokenTTL:     time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		adminUser:    cfg.AdminUsername,
		passwordHash: cfg.AdminPasswordHash,
	}
}

// Login checks credentials against the configured admin and issues a token.
func (a *Authenticator) Login(username, password string) (string, error) {
	if username != a.adminUser {
		return "", apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)); err != nil {
		return "", apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
	}

	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to sign token")
	}

	return signed, nil
}

// Verify parses a bearer token and returns its claims.
func (a *Authenticator) Verify(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "invalid token")
	}

	return claims, nil
}
