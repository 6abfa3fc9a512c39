package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devnotex/devnotex/internal/apperr"
)

// TokenManager signs and verifies bearer tokens. Tokens carry the user id in
// the sub claim and an absolute expiry; there is no refresh mechanism.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Generate(userID string) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify returns the user id encoded in tokenString. Malformed, forged and
// expired tokens all come back as Unauthorized.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})

	if err != nil || !token.Valid {
		return "", apperr.Wrap(apperr.Unauthorized, "Invalid or expired token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return "", apperr.New(apperr.Unauthorized, "Invalid token claims")
	}

	userID, ok := claims["sub"].(string)

	if !ok || userID == "" {
		return "", apperr.New(apperr.Unauthorized, "Invalid user ID in token claims")
	}

	return userID, nil
}
