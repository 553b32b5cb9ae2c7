// Package auth issues and validates session tokens. The wire protocol does
// not require them (legacy stations authorize by caller-asserted role); when
// a request does carry a token, the server derives the requester's identity
// from it instead.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/common"
)

type Claims struct {
	jwt.RegisteredClaims
	Username string
	Role     string
}

func GenerateToken(username, role string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Username: username,
		Role:     role,
	})

	return token.SignedString(secretKey)
}

func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
