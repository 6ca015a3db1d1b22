package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new user.
func (r *PGRepo) Create(ctx context.Context, email, passwordHash string) (User, error) {
	const query = `
INSERT INTO users (email, password_hash, created_at)
VALUES ($1, $2, now())
RETURNING id, email, password_hash, created_at`
	var user User
	err := r.DB.QueryRowContext(ctx, query, email, passwordHash).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrDuplicateEmail
		}
		return User{}, err
	}
	return user, nil
}

// GetByEmail fetches a user by email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, email, password_hash, reset_code, reset_code_expiry, created_at
FROM users
WHERE email = $1
LIMIT 1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

// GetByID fetches a user by ID.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (User, error) {
	const query = `
SELECT id, email, password_hash, reset_code, reset_code_expiry, created_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

// UpdatePassword overwrites the password hash.
func (r *PGRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $1 WHERE email = $2`
	res, err := r.DB.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetResetCode stores a reset code and expiry, replacing any pending code.
func (r *PGRepo) SetResetCode(ctx context.Context, email, code string, expiry time.Time) error {
	const query = `
UPDATE users
SET reset_code = $1, reset_code_expiry = $2
WHERE email = $3`
	res, err := r.DB.ExecContext(ctx, query, code, expiry, email)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ConsumeResetCode updates the password and clears the code in one
// statement so a stale code can never survive a password change.
func (r *PGRepo) ConsumeResetCode(ctx context.Context, email, code, passwordHash string, now time.Time) (bool, error) {
	const query = `
UPDATE users
SET password_hash = $1, reset_code = NULL, reset_code_expiry = NULL
WHERE email = $2 AND reset_code = $3 AND reset_code_expiry > $4`
	res, err := r.DB.ExecContext(ctx, query, passwordHash, email, code, now)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PGRepo) scanUser(row *sql.Row) (User, error) {
	var user User
	var resetCode sql.NullString
	var resetExpiry sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&resetCode,
		&resetExpiry,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if resetCode.Valid {
		user.ResetCode = &resetCode.String
	}
	if resetExpiry.Valid {
		user.ResetCodeExpiry = &resetExpiry.Time
	}
	return user, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
