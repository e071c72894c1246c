package token

import (
	"testing"
	"time"

	"venuebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	return &model.User{
		ID:    "64f000000000000000000001",
		Name:  "Sam Lee",
		Email: "user@example.com",
		Role:  model.RoleUser,
	}
}

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	signed, expiresAt, err := m.Issue(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	principal, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", principal.UserID)
	assert.Equal(t, "Sam Lee", principal.Name)
	assert.Equal(t, "user@example.com", principal.Email)
	assert.Equal(t, model.RoleUser, principal.Role)
}

func TestVerify_ExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }
	signed, _, err := m.Issue(testUser())
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = m.Verify(signed)
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, _, err := NewManager("secret-a", time.Hour).Issue(testUser())
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(signed)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.Verify("not.a.token")
	assert.Error(t, err)
}
