// Package token issues and verifies the signed access tokens the API
// uses for authentication.
//
// Tokens are self-contained: they carry the username and admin flag,
// so authorization decisions never need a database round trip. Anyone
// holding the signing secret could mint arbitrary claims, which is why
// the secret lives only in config.
package token

import (
	"time"

	"github.com/agamjotsodhi/jobly/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Claims is the payload carried in an access token.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given user, valid for the configured TTL.
func Issue(cfg *config.Config, username string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Auth.TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.Auth.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing access token")
	}
	return signed, nil
}

// Verify parses and validates a token string and returns its claims.
// Expiry is checked during parsing; only HS256 is accepted, so a token
// cannot downgrade the signature algorithm.
func Verify(cfg *config.Config, tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.Auth.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Wrap(err, "verifying access token")
	}

	if claims.Username == "" {
		return nil, errors.New("access token missing username claim")
	}

	return claims, nil
}
