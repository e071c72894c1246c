package service

import (
	"context"
	"errors"
	"time"

	autherrors "venuebook/internal/auth/errors"
	"venuebook/internal/auth/repository"
	"venuebook/internal/auth/token"
	"venuebook/pkg/config"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/model"
	"venuebook/pkg/sanitizer"

	"golang.org/x/crypto/bcrypt"
)

// Session is what login and register hand back to the client.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}

type authService struct {
	repo   repository.UserRepository
	tokens *token.Manager
	cfg    *config.Config
}

func NewAuthService(repo repository.UserRepository, tokens *token.Manager, cfg *config.Config) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		cfg:    cfg,
	}
}

const minPasswordLength = 8

// Register creates a regular user and opens a session for it. Role admin is
// never assignable through this path.
func (s *authService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = sanitizer.NormalizeName(name)
	email = sanitizer.NormalizeEmail(email)

	if len(name) < 2 {
		return nil, apperrors.FieldValidation("Name", "name must be at least 2 characters")
	}
	if email == "" {
		return nil, apperrors.FieldValidation("Email", "email is required")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.FieldValidation("Password", "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrEmailTaken) {
			return nil, apperrors.Conflict("An account with this email already exists")
		}
		s.cfg.Log.Error("Failed to register user", "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "email", user.Email)
	return s.openSession(user)
}

// Login checks the credentials and opens a session. Failures carry no field
// detail so callers cannot probe which part was wrong.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		s.cfg.Log.Error("Failed to look up user", "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return s.openSession(user)
}

func (s *authService) openSession(user *model.User) (*Session, error) {
	signed, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.cfg.Log.Error("Failed to issue session token", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to open session", err)
	}

	return &Session{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
