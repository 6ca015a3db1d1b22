package mail

import "context"

// Mailer dispatches password-reset codes. Delivery is fire-and-forget:
// implementations report failures but the caller owns the stored code.
type Mailer interface {
	SendResetCode(ctx context.Context, toEmail, code string) error
}

// LogMailer writes the code to the process log instead of sending email.
// Used in dev mode when SMTP is not configured.
type LogMailer struct {
	Logf func(format string, args ...any)
}

func (m LogMailer) SendResetCode(ctx context.Context, toEmail, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Logf != nil {
		m.Logf("mail: reset code for %s: %s", toEmail, code)
	}
	return nil
}
