package passwordreset

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gide-backend/internal/mail"
	"gide-backend/internal/shared/metrics"
	"gide-backend/internal/shared/telemetry"
	"gide-backend/internal/users"
)

const defaultCodeTTL = 20 * time.Minute

// Service manages the reset-code lifecycle: issue, validate, consume.
// A user has at most one pending code; issuing replaces it.
type Service struct {
	Users   *users.Service
	Mailer  mail.Mailer
	CodeTTL time.Duration

	now func() time.Time
}

func NewService(usersSvc *users.Service, mailer mail.Mailer, codeTTL time.Duration) *Service {
	if codeTTL <= 0 {
		codeTTL = defaultCodeTTL
	}
	return &Service{
		Users:   usersSvc,
		Mailer:  mailer,
		CodeTTL: codeTTL,
		now:     time.Now,
	}
}

// IssueCode generates a 6-digit code, stores it with its expiry, and
// dispatches it by email. The code is stored before dispatch: a delivery
// failure surfaces ErrDeliveryFailed but does not roll the code back.
func (s *Service) IssueCode(ctx context.Context, email string) (string, error) {
	email = users.NormalizeEmail(email)
	if _, err := s.Users.GetByEmail(ctx, email); err != nil {
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	expiry := s.now().UTC().Add(s.CodeTTL)
	if err := s.Users.Repo.SetResetCode(ctx, email, code, expiry); err != nil {
		return "", err
	}
	metrics.IncResetCodeIssued()

	if err := s.Mailer.SendResetCode(ctx, email, code); err != nil {
		telemetry.Error("passwordreset.delivery_failed", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return code, nil
}

// ValidateCode reports whether the code matches and is unexpired. It is a
// read-only check; consumption is a separate step.
func (s *Service) ValidateCode(ctx context.Context, email, code string) (bool, error) {
	email = users.NormalizeEmail(email)
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if user.ResetCode == nil || user.ResetCodeExpiry == nil {
		return false, nil
	}
	if *user.ResetCode != code {
		return false, nil
	}
	return s.now().UTC().Before(*user.ResetCodeExpiry), nil
}

// ConsumeAndReset re-validates the code and, in a single conditional
// update, sets the new password and clears the code so it can never be
// used twice. A wrong or expired code mutates nothing.
func (s *Service) ConsumeAndReset(ctx context.Context, email, code, newPassword string) error {
	email = users.NormalizeEmail(email)
	if _, err := s.Users.GetByEmail(ctx, email); err != nil {
		return err
	}
	if len(code) != 6 {
		s.recordRejected(email, "malformed code")
		return ErrInvalidOrExpiredCode
	}

	hash, err := users.HashPassword(newPassword)
	if err != nil {
		return err
	}
	ok, err := s.Users.Repo.ConsumeResetCode(ctx, email, code, hash, s.now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		s.recordRejected(email, "wrong or expired code")
		return ErrInvalidOrExpiredCode
	}
	return nil
}

// recordRejected logs rejected attempts; there is no lockout, so repeated
// failures against one account are only visible through these signals.
func (s *Service) recordRejected(email, reason string) {
	metrics.IncResetConsumeFailed()
	telemetry.Warn("passwordreset.rejected", map[string]any{
		"email":  email,
		"reason": reason,
	})
}

// generateCode draws a uniform 6-digit code from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
