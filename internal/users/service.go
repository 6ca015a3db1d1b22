package users

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Service is the credential store: it owns password hashing and
// verification on top of the user repository.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return User{}, ErrInvalidInput
	}
	if len(strings.TrimSpace(password)) < minPasswordLength {
		return User{}, ErrInvalidInput
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	return s.Repo.Create(ctx, email, hash)
}

// VerifyCredentials checks the password against the stored hash. The
// bcrypt comparison is constant-time; unknown email and wrong password
// are indistinguishable to the caller.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpdatePassword rehashes and overwrites the stored password.
func (s *Service) UpdatePassword(ctx context.Context, email, newPassword string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrNotFound
	}
	if len(strings.TrimSpace(newPassword)) < minPasswordLength {
		return ErrInvalidInput
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, email, hash)
}

// GetByEmail fetches an account by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.Repo.GetByEmail(ctx, NormalizeEmail(email))
}

// GetByID fetches an account by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.Repo.GetByID(ctx, id)
}

// HashPassword returns a salted bcrypt hash of the plaintext.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NormalizeEmail trims surrounding whitespace. Case is preserved: emails
// are stored and matched exactly as registered.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
