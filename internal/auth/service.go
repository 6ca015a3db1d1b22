package auth

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	sharedauth "gide-backend/internal/shared/auth"
	"gide-backend/internal/shared/metrics"
	"gide-backend/internal/shared/telemetry"
	"gide-backend/internal/users"
)

// Service composes the credential store, the token issuer, and the
// assertion verifier into the two sign-in paths: password login and
// federated sign-in.
type Service struct {
	Users    *users.Service
	Tokens   *sharedauth.Issuer
	Verifier AssertionVerifier
}

func NewService(usersSvc *users.Service, tokens *sharedauth.Issuer, verifier AssertionVerifier) *Service {
	return &Service{Users: usersSvc, Tokens: tokens, Verifier: verifier}
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (users.User, string, error) {
	user, err := s.Users.VerifyCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			metrics.IncLoginFailed()
			telemetry.Warn("auth.login_failed", map[string]any{"email": users.NormalizeEmail(email)})
		}
		return users.User{}, "", err
	}
	token, err := s.issueFor(user)
	if err != nil {
		return users.User{}, "", err
	}
	return user, token, nil
}

// SignInWithIDToken verifies the provider token and runs the federated
// sign-in for the identity it asserts.
func (s *Service) SignInWithIDToken(ctx context.Context, idToken string) (users.User, string, error) {
	identity, err := s.Verifier.Verify(ctx, idToken)
	if err != nil {
		return users.User{}, "", err
	}
	return s.SignInWithAssertion(ctx, identity)
}

// SignInWithAssertion reconciles a verified identity with a local user,
// creating one if absent, and issues a session token for it. New
// federated users receive a random placeholder password: they
// authenticate exclusively through the provider and never set one.
func (s *Service) SignInWithAssertion(ctx context.Context, identity Identity) (users.User, string, error) {
	if identity.Email == "" {
		return users.User{}, "", ErrMissingEmailClaim
	}

	user, err := s.Users.GetByEmail(ctx, identity.Email)
	switch {
	case err == nil:
	case errors.Is(err, users.ErrNotFound):
		user, err = s.Users.Register(ctx, identity.Email, uuid.NewString())
		if err != nil {
			if errors.Is(err, users.ErrDuplicateEmail) {
				// Lost a race with a concurrent first sign-in; reuse that row.
				user, err = s.Users.GetByEmail(ctx, identity.Email)
			}
			if err != nil {
				return users.User{}, "", err
			}
		}
		telemetry.Info("auth.federated_signup", map[string]any{
			"user_id": user.ID,
			"email":   user.Email,
		})
	default:
		return users.User{}, "", err
	}

	token, err := s.issueFor(user)
	if err != nil {
		return users.User{}, "", err
	}
	return user, token, nil
}

func (s *Service) issueFor(user users.User) (string, error) {
	return s.Tokens.Issue(strconv.FormatInt(user.ID, 10), user.Email)
}
