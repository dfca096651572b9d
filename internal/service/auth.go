package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/msomdec/items-api/internal/domain"
)

// bcrypt ignores input past 72 bytes; longer passwords are rejected instead.
const maxPasswordBytes = 72

// AuthService handles signup and login.
//
// Login only proves the caller knows the password; no credential is issued.
// Clients present the returned user id as owner/userId on item mutations and
// the server trusts that value as is.
type AuthService struct {
	users  domain.UserRepository
	hasher PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher PasswordHasher) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
	}
}

// Signup creates a new user account. The password is trimmed before hashing.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	trimmed := strings.TrimSpace(password)
	if trimmed == "" {
		return nil, domain.Invalid("Password is required.")
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, domain.Invalid("Name and email are required.")
	}
	if len(trimmed) > maxPasswordBytes {
		return nil, domain.Invalid(fmt.Sprintf("Password must be at most %d bytes.", maxPasswordBytes))
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := s.hasher.Hash(trimmed)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	// The unique index still guards against a concurrent signup.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the matching user. Every
// credential failure is reported as domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	trimmed := strings.TrimSpace(password)
	if email == "" || trimmed == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Spend the same bcrypt time as a real check.
			s.hasher.Check(trimmed, s.dummy())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Check(trimmed, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	return s.dummyHash
}
