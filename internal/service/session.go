package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voltclass/labtrack-api/internal/dto"
)

// ErrInvalidSession indicates a session token that could not be verified.
var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims is the identity carried by a verified session token.
type SessionClaims struct {
	UserID   uint
	Role     string
	FullName string
}

// SessionManager issues and verifies the signed tokens that represent an
// authenticated session. It is the only holder of session state; nothing
// else in the process keeps a current-user singleton.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager constructs a session manager with the given signing
// secret and token lifetime.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the given profile.
func (m *SessionManager) Issue(profile dto.UserProfile) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", profile.ID),
		"role": profile.Role,
		"name": profile.FullName,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the claims it carries.
func (m *SessionManager) Verify(tokenString string) (SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return SessionClaims{}, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidSession
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return SessionClaims{}, ErrInvalidSession
	}

	var userID uint
	if _, err := fmt.Sscanf(subject, "%d", &userID); err != nil {
		return SessionClaims{}, ErrInvalidSession
	}

	session := SessionClaims{UserID: userID}
	if role, ok := claims["role"].(string); ok {
		session.Role = role
	}
	if name, ok := claims["name"].(string); ok {
		session.FullName = name
	}
	return session, nil
}
