package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	sharedauth "gide-backend/internal/shared/auth"
	"gide-backend/internal/users"
)

type stubVerifier struct {
	identity Identity
	err      error
}

func (v *stubVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	if v.err != nil {
		return Identity{}, v.err
	}
	return v.identity, nil
}

func newTestService(t *testing.T, verifier AssertionVerifier) *Service {
	t.Helper()
	issuer, err := sharedauth.NewIssuer("test-secret", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return NewService(users.NewService(users.NewMemoryRepo()), issuer, verifier)
}

func TestLoginIssuesTokenForUser(t *testing.T) {
	svc := newTestService(t, &stubVerifier{})
	ctx := context.Background()

	if _, err := svc.Users.Register(ctx, "dana@example.com", "correct-horse"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, token, err := svc.Login(ctx, "dana@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	claims, err := svc.Tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != strconv.FormatInt(user.ID, 10) {
		t.Fatalf("subject = %q, want user id %d", claims.Subject, user.ID)
	}
	if claims.Email != "dana@example.com" {
		t.Fatalf("email claim = %q", claims.Email)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc := newTestService(t, &stubVerifier{})
	ctx := context.Background()

	if _, err := svc.Users.Register(ctx, "dana@example.com", "correct-horse"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "dana@example.com", "wrong"); !errors.Is(err, users.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "whatever"); !errors.Is(err, users.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials for unknown email", err)
	}
}

func TestSignInWithAssertionCreatesUserOnce(t *testing.T) {
	svc := newTestService(t, &stubVerifier{})
	ctx := context.Background()
	identity := Identity{Email: "fed@example.com", Name: "Fed User"}

	first, token1, err := svc.SignInWithAssertion(ctx, identity)
	if err != nil {
		t.Fatalf("first sign-in: %v", err)
	}
	if token1 == "" {
		t.Fatal("expected a token")
	}

	second, token2, err := svc.SignInWithAssertion(ctx, identity)
	if err != nil {
		t.Fatalf("second sign-in: %v", err)
	}
	if token2 == "" {
		t.Fatal("expected a token")
	}
	if first.ID != second.ID {
		t.Fatalf("sign-ins resolved to different users: %d vs %d", first.ID, second.ID)
	}
}

func TestSignInWithAssertionReusesExistingAccount(t *testing.T) {
	svc := newTestService(t, &stubVerifier{})
	ctx := context.Background()

	registered, err := svc.Users.Register(ctx, "linked@example.com", "local-password")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, _, err := svc.SignInWithAssertion(ctx, Identity{Email: "linked@example.com"})
	if err != nil {
		t.Fatalf("SignInWithAssertion: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("resolved user %d, want existing %d", user.ID, registered.ID)
	}

	// The local password still works after the federated sign-in.
	if _, err := svc.Users.VerifyCredentials(ctx, "linked@example.com", "local-password"); err != nil {
		t.Fatalf("local password broken after federated sign-in: %v", err)
	}
}

func TestSignInWithAssertionRequiresEmail(t *testing.T) {
	svc := newTestService(t, &stubVerifier{})

	if _, _, err := svc.SignInWithAssertion(context.Background(), Identity{Name: "No Email"}); !errors.Is(err, ErrMissingEmailClaim) {
		t.Fatalf("err = %v, want ErrMissingEmailClaim", err)
	}
}

func TestSignInWithIDTokenVerifierFailure(t *testing.T) {
	svc := newTestService(t, &stubVerifier{err: ErrInvalidAssertion})

	if _, _, err := svc.SignInWithIDToken(context.Background(), "bad-token"); !errors.Is(err, ErrInvalidAssertion) {
		t.Fatalf("err = %v, want ErrInvalidAssertion", err)
	}
}

func TestGoogleVerifierChecksAudience(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"aud":"expected-client","email":"g@example.com","name":"G"}`))
	}))
	defer srv.Close()

	v := NewGoogleVerifier("expected-client")
	v.endpoint = srv.URL

	identity, err := v.Verify(context.Background(), "opaque-token")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.Email != "g@example.com" {
		t.Fatalf("email = %q", identity.Email)
	}

	v.ClientID = "other-client"
	if _, err := v.Verify(context.Background(), "opaque-token"); !errors.Is(err, ErrInvalidAssertion) {
		t.Fatalf("err = %v, want ErrInvalidAssertion on audience mismatch", err)
	}
}

func TestGoogleVerifierRejectsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusBadRequest)
	}))
	defer srv.Close()

	v := NewGoogleVerifier("client")
	v.endpoint = srv.URL

	if _, err := v.Verify(context.Background(), "garbage"); !errors.Is(err, ErrInvalidAssertion) {
		t.Fatalf("err = %v, want ErrInvalidAssertion", err)
	}
}
