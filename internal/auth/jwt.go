package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

// SessionClaims are the JWT claims embedded in a session token.
type SessionClaims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies session tokens.
type JWTManager struct {
	secret     []byte
	sessionTTL time.Duration
}

// NewJWTManager creates a manager signing tokens with the given secret.
func NewJWTManager(secret string, sessionTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
	}
}

// SessionTTL returns the configured session lifetime.
func (m *JWTManager) SessionTTL() time.Duration {
	return m.sessionTTL
}

// GenerateSession creates a signed session token for the given user.
func (m *JWTManager) GenerateSession(userID uuid.UUID, email string) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// VerifySession parses and validates a session token, returning its claims.
func (m *JWTManager) VerifySession(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session claims")
	}
	return claims, nil
}
