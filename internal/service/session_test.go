package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/voltclass/labtrack-api/internal/dto"
)

func TestSessionManagerIssueAndVerify(t *testing.T) {
	manager := NewSessionManager("test-secret", time.Hour)

	token, err := manager.Issue(dto.UserProfile{ID: 42, Role: "teacher", FullName: "Chemistry Teacher"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "teacher", claims.Role)
	require.Equal(t, "Chemistry Teacher", claims.FullName)
}

func TestSessionManagerRejectsWrongSecret(t *testing.T) {
	manager := NewSessionManager("test-secret", time.Hour)
	other := NewSessionManager("other-secret", time.Hour)

	token, err := manager.Issue(dto.UserProfile{ID: 1, Role: "student"})
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionManagerRejectsExpiredToken(t *testing.T) {
	manager := NewSessionManager("test-secret", time.Minute)

	token, err := manager.Issue(dto.UserProfile{ID: 1, Role: "student"})
	require.NoError(t, err)

	manager.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = manager.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionManagerRejectsGarbage(t *testing.T) {
	manager := NewSessionManager("test-secret", time.Hour)

	_, err := manager.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidSession)
}
