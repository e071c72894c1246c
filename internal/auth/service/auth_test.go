package service

import (
	"context"
	"testing"
	"time"

	autherrors "venuebook/internal/auth/errors"
	"venuebook/internal/auth/token"
	"venuebook/pkg/config"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/logger"
	"venuebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mock repository for testing
type mockUserRepository struct {
	createFunc      func(ctx context.Context, user *model.User) error
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "64f000000000000000000001"
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, autherrors.ErrNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return nil, autherrors.ErrNotFound
}

func (m *mockUserRepository) Upsert(ctx context.Context, user *model.User) error {
	return nil
}

func (m *mockUserRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func newTestService(repo *mockUserRepository) AuthService {
	cfg := &config.Config{
		Log:        logger.Discard(),
		BcryptCost: bcrypt.MinCost,
	}
	return NewAuthService(repo, token.NewManager("test-secret", time.Hour), cfg)
}

func TestRegister(t *testing.T) {
	var created *model.User
	svc := newTestService(&mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = "64f000000000000000000001"
			created = user
			return nil
		},
	})

	session, err := svc.Register(context.Background(), "  Sam   Lee ", "User@Example.com ", "hunter22pass")

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Sam Lee", created.Name)
	assert.Equal(t, "user@example.com", created.Email)
	assert.Equal(t, model.RoleUser, created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter22pass")))

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, created, session.User)
}

func TestRegister_FieldValidation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		field    string
	}{
		{"short name", "S", "user@example.com", "hunter22pass", "Name"},
		{"empty email", "Sam Lee", "  ", "hunter22pass", "Email"},
		{"short password", "Sam Lee", "user@example.com", "short", "Password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockUserRepository{})

			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)

			appErr := apperrors.AsAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(&mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			return autherrors.ErrEmailTaken
		},
	})

	_, err := svc.Register(context.Background(), "Sam Lee", "user@example.com", "hunter22pass")

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22pass"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &model.User{
		ID:           "64f000000000000000000001",
		Name:         "Sam Lee",
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}
	svc := newTestService(&mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, autherrors.ErrNotFound
		},
	})

	session, err := svc.Login(context.Background(), "USER@example.com", "hunter22pass")

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, stored, session.User)
}

func TestLogin_BadCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22pass"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &model.User{Email: "user@example.com", PasswordHash: string(hash)}
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, autherrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "other@example.com", "hunter22pass"},
		{"wrong password", "user@example.com", "wrong-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)

			appErr := apperrors.AsAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
			// Credential failures must not say which part was wrong.
			assert.Nil(t, appErr.Details)
		})
	}
}
