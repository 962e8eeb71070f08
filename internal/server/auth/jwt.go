// Package auth issues and checks the access tokens handed out on login.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/foodstore/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the customer's email as the token subject.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func GenerateToken(email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: email,
	})

	return token.SignedString(secretKey)
}

func GetEmailFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.Join(common.ErrorInvalidToken, err)
	}

	if !token.Valid || claims.Email == "" {
		return "", common.ErrorInvalidToken
	}

	return claims.Email, nil
}
