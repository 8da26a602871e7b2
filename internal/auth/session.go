package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL matches the original 30-minute session cookie lifetime.
const SessionTTL = 30 * time.Minute

var jwtSigningMethod = jwt.SigningMethodHS256

// SessionClaims is the typed session token carried in the cookie. The
// ledger only ever needs the name and role of the signed-in user.
type SessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// MintSessionToken issues a signed session token for the identity.
func MintSessionToken(secret string, now time.Time, id Identity) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("session secret is required")
	}

	claims := SessionClaims{
		Name: id.Name,
		Role: id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates the token string and returns the identity.
func ParseSessionToken(secret, tokenString string) (Identity, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return Identity{}, fmt.Errorf("parse session token: %w", err)
	}

	return Identity{Name: claims.Name, Role: claims.Role}, nil
}
