// Package auth issues and validates the JWT access tokens that gate the
// HTTP API.
package auth

import (
	"time"

	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the registered claims with the member identity and role,
// so role gating does not need a store lookup on every request.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Role   models.Role
}

func GenerateToken(userID string, role models.Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
		Role:   role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrorInvalidToken
	}

	return claims, nil
}
