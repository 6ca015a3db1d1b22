package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, users: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, email, passwordHash string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[email]; exists {
		return User{}, ErrDuplicateEmail
	}
	user := User{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.nextID++
	r.users[email] = user
	return user, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return ErrNotFound
	}
	user.PasswordHash = passwordHash
	r.users[email] = user
	return nil
}

func (r *MemoryRepo) SetResetCode(ctx context.Context, email, code string, expiry time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return ErrNotFound
	}
	user.ResetCode = &code
	user.ResetCodeExpiry = &expiry
	r.users[email] = user
	return nil
}

func (r *MemoryRepo) ConsumeResetCode(ctx context.Context, email, code, passwordHash string, now time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return false, nil
	}
	if user.ResetCode == nil || user.ResetCodeExpiry == nil {
		return false, nil
	}
	if *user.ResetCode != code || !now.Before(*user.ResetCodeExpiry) {
		return false, nil
	}
	user.PasswordHash = passwordHash
	user.ResetCode = nil
	user.ResetCodeExpiry = nil
	r.users[email] = user
	return true, nil
}
