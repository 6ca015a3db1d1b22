package passwordreset

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"gide-backend/internal/users"
)

type captureMailer struct {
	toEmail string
	code    string
	fail    error
}

func (m *captureMailer) SendResetCode(ctx context.Context, toEmail, code string) error {
	if m.fail != nil {
		return m.fail
	}
	m.toEmail = toEmail
	m.code = code
	return nil
}

func newFixture(t *testing.T) (*Service, *users.Service, *captureMailer) {
	t.Helper()
	usersSvc := users.NewService(users.NewMemoryRepo())
	if _, err := usersSvc.Register(context.Background(), "user@example.com", "original pass"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	mailer := &captureMailer{}
	svc := NewService(usersSvc, mailer, 20*time.Minute)
	return svc, usersSvc, mailer
}

func TestIssueCodeThenValidate(t *testing.T) {
	svc, _, mailer := newFixture(t)
	ctx := context.Background()

	code, err := svc.IssueCode(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("IssueCode: %v", err)
	}
	if !regexp.MustCompile(`^[1-9]\d{5}$`).MatchString(code) {
		t.Fatalf("expected 6-digit code in [100000,999999], got %q", code)
	}
	if mailer.code != code || mailer.toEmail != "user@example.com" {
		t.Fatalf("expected code dispatched to user, got %q for %q", mailer.code, mailer.toEmail)
	}

	ok, err := svc.ValidateCode(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("ValidateCode: %v", err)
	}
	if !ok {
		t.Fatal("expected freshly issued code to validate")
	}

	wrong := "123456"
	if wrong == code {
		wrong = "654321"
	}
	ok, err = svc.ValidateCode(ctx, "user@example.com", wrong)
	if err != nil {
		t.Fatalf("ValidateCode: %v", err)
	}
	if ok {
		t.Fatal("expected wrong code to fail validation")
	}
}

func TestIssueCodeUnknownUser(t *testing.T) {
	svc, _, _ := newFixture(t)
	if _, err := svc.IssueCode(context.Background(), "nobody@example.com"); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIssueCodeDeliveryFailure(t *testing.T) {
	svc, _, mailer := newFixture(t)
	mailer.fail = errors.New("smtp unreachable")

	if _, err := svc.IssueCode(context.Background(), "user@example.com"); !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
}

func TestIssueCodeReplacesPendingCode(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	first, err := svc.IssueCode(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("IssueCode: %v", err)
	}
	second, err := svc.IssueCode(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("IssueCode: %v", err)
	}

	if first != second {
		ok, err := svc.ValidateCode(ctx, "user@example.com", first)
		if err != nil {
			t.Fatalf("ValidateCode: %v", err)
		}
		if ok {
			t.Fatal("expected replaced code to stop validating")
		}
	}
	ok, err := svc.ValidateCode(ctx, "user@example.com", second)
	if err != nil {
		t.Fatalf("ValidateCode: %v", err)
	}
	if !ok {
		t.Fatal("expected latest code to validate")
	}
}

func TestConsumeAndResetSingleUse(t *testing.T) {
	svc, usersSvc, _ := newFixture(t)
	ctx := context.Background()

	code, err := svc.IssueCode(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("IssueCode: %v", err)
	}
	if err := svc.ConsumeAndReset(ctx, "user@example.com", code, "brand new pass"); err != nil {
		t.Fatalf("ConsumeAndReset: %v", err)
	}

	if _, err := usersSvc.VerifyCredentials(ctx, "user@example.com", "brand new pass"); err != nil {
		t.Fatalf("expected new password to verify, got %v", err)
	}
	if _, err := usersSvc.VerifyCredentials(ctx, "user@example.com", "original pass"); !errors.Is(err, users.ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}

	// Consumed codes are cleared and cannot be replayed.
	ok, err := svc.ValidateCode(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("ValidateCode: %v", err)
	}
	if ok {
		t.Fatal("expected consumed code to fail validation")
	}
	if err := svc.ConsumeAndReset(ctx, "user@example.com", code, "another new pass"); !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Fatalf("expected ErrInvalidOrExpiredCode on replay, got %v", err)
	}
}

func TestConsumeAndResetWrongCodeMutatesNothing(t *testing.T) {
	svc, usersSvc, _ := newFixture(t)
	ctx := context.Background()

	code, err := svc.IssueCode(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("IssueCode: %v", err)
	}
	wrong := "123456"
	if wrong == code {
		wrong = "654321"
	}
	if err := svc.ConsumeAndReset(ctx, "user@example.com", wrong, "brand new pass"); !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Fatalf("expected ErrInvalidOrExpiredCode, got %v", err)
	}
	if _, err := usersSvc.VerifyCredentials(ctx, "user@example.com", "original pass"); err != nil {
		t.Fatalf("expected original password untouched, got %v", err)
	}
	ok, err := svc.ValidateCode(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("ValidateCode: %v", err)
	}
	if !ok {
		t.Fatal("expected pending code to survive a failed attempt")
	}
}

func TestExpiredCodeFailsEvenWhenMatching(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	code, err := svc.IssueCode(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("IssueCode: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(21 * time.Minute) }

	ok, err := svc.ValidateCode(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("ValidateCode: %v", err)
	}
	if ok {
		t.Fatal("expected expired code to fail validation")
	}
	if err := svc.ConsumeAndReset(ctx, "user@example.com", code, "brand new pass"); !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Fatalf("expected ErrInvalidOrExpiredCode for expired code, got %v", err)
	}
}
