package resumes

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert writes a new version row.
func (r *PGRepo) Insert(ctx context.Context, userID int64, content string, version int) (Resume, error) {
	const query = `
INSERT INTO resumes (user_id, content, version, created_at)
VALUES ($1, $2, $3, now())
RETURNING id, user_id, content, version, created_at`
	var resume Resume
	err := r.DB.QueryRowContext(ctx, query, userID, content, version).Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Content,
		&resume.Version,
		&resume.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Resume{}, ErrVersionConflict
		}
		return Resume{}, err
	}
	return resume, nil
}

// MaxVersion returns the highest version for a user, 0 when none exist.
func (r *PGRepo) MaxVersion(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COALESCE(MAX(version), 0) FROM resumes WHERE user_id = $1`
	var max int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

// ListByUser lists versions newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID int64) ([]Resume, error) {
	const query = `
SELECT id, user_id, content, version, created_at
FROM resumes
WHERE user_id = $1
ORDER BY version DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		var resume Resume
		if err := rows.Scan(
			&resume.ID,
			&resume.UserID,
			&resume.Content,
			&resume.Version,
			&resume.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}
