package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kegiatan-kampus/internal/db"
	"kegiatan-kampus/internal/models"
	"kegiatan-kampus/internal/security"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin student"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	users    UserRepository
	validate *validator.Validate
}

func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		validate: newValidator(),
	}
}

// Register creates an account. It does not log the account in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if len(req.Password) > security.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email %q: %w", req.Email, err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, s.duplicateCause(ctx, req.Email)
		}
		return nil, fmt.Errorf("insert user %q: %w", req.Username, err)
	}

	return user, nil
}

// duplicateCause tells a lost email race apart from a taken username.
func (s *AuthService) duplicateCause(ctx context.Context, email string) error {
	if exists, err := s.users.EmailExists(ctx, email); err == nil && exists {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

// Login verifies credentials by username and returns the identity snapshot to
// keep in the session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*models.SessionUser, error) {
	req.Username = strings.TrimSpace(req.Username)

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user %q: %w", req.Username, err)
	}

	if !security.ComparePasswords(user.PasswordHash, req.Password) {
		return nil, ErrWrongPassword
	}

	snapshot := user.Snapshot()
	return &snapshot, nil
}
