package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGRepoCreateReturnsAssignedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	createdAt := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("user@example.com", "$2a$10$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(int64(7), "user@example.com", "$2a$10$hash", createdAt))

	user, err := repo.Create(context.Background(), "user@example.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("expected id 7, got %d", user.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("user@example.com", "$2a$10$hash").
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"})

	if _, err := repo.Create(context.Background(), "user@example.com", "$2a$10$hash"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, email, password_hash, reset_code, reset_code_expiry, created_at").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "reset_code", "reset_code_expiry", "created_at"}))

	if _, err := repo.GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoConsumeResetCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE users").
		WithArgs("$2a$10$newhash", "user@example.com", "123456", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ConsumeResetCode(context.Background(), "user@example.com", "123456", "$2a$10$newhash", now)
	if err != nil {
		t.Fatalf("ConsumeResetCode: %v", err)
	}
	if !ok {
		t.Fatal("expected consume to report a mutated row")
	}

	mock.ExpectExec("UPDATE users").
		WithArgs("$2a$10$newhash", "user@example.com", "999999", now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.ConsumeResetCode(context.Background(), "user@example.com", "999999", "$2a$10$newhash", now)
	if err != nil {
		t.Fatalf("ConsumeResetCode: %v", err)
	}
	if ok {
		t.Fatal("expected stale code to mutate nothing")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
