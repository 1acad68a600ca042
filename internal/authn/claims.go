// Package authn reads the identity carried by bearer tokens. Token signatures
// are verified by the gateway in front of the service.
package authn

import (
	"errors"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidJWT = errors.New("invalid jwt token")
var ErrInvalidClaims = errors.New("invalid claims")
var ErrMissingUsername = errors.New("token has no username")

type Claims struct {
	jwt.StandardClaims
	Username string `json:"preferred_username"`
	Email    string `json:"email"`
}

// Identity returns the name the user is stored under. Portal usernames are
// email addresses, so the email claim is used when no username is present.
func (c Claims) Identity() string {
	if c.Username != "" {
		return c.Username
	}
	return c.Email
}

func ParseClaims(token string) (Claims, error) {
	claims := Claims{}
	// Check if token is JWT by attempting to parse it
	if t, err := jwt.ParseWithClaims(token, &claims, nil); err != nil {
		// Signature and time validation errors are expected without a key
		if _, ok := err.(*jwt.ValidationError); !ok {
			return claims, ErrInvalidJWT
		}

		if t == nil {
			return claims, ErrInvalidClaims
		}
	}

	if claims.Identity() == "" {
		return claims, ErrMissingUsername
	}
	return claims, nil
}
