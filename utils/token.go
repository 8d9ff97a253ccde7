package authUtils

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// GenerateToken signs an HS256 token in the shape the shared-secret identity provider issues:
// a sub claim, an optional email claim and an expiry.
func GenerateToken(secret, subject, email string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("IDENTITY_JWT_SECRET environment variable is not set")
	}

	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(ttl).Unix(),
	}
	if email != "" {
		claims["email"] = email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
