package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/docucare-api/internal/config"
	"github.com/docucare-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs.
type Provider struct {
	secret []byte
	expiry time.Duration
}

// NewProvider builds the token issuer. The signing secret is a startup
// invariant — construction fails when it is absent.
func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is not configured")
	}
	return &Provider{
		secret: []byte(cfg.JWTSecret),
		expiry: time.Duration(cfg.TokenExpiryDays) * 24 * time.Hour,
	}, nil
}

// Sign mints a token embedding the user id and role. The role must belong
// to the closed role set.
func (p *Provider) Sign(userID, role string) (string, error) {
	if !domain.ValidRole(role) {
		return "", fmt.Errorf("cannot sign token for unknown role %q", role)
	}
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if !domain.ValidRole(claims.Role) {
		return nil, errors.New("token carries unknown role")
	}
	return claims, nil
}
