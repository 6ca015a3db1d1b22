package auth

import "context"

// Identity is an externally verified identity assertion. By the time it
// reaches the federation bridge the provider token has already been
// checked cryptographically; Email is trusted as authentic.
type Identity struct {
	Email   string
	Name    string
	Picture string
}

// AssertionVerifier checks a provider ID token and extracts the identity
// it asserts. Injected so the bridge never depends on one provider's SDK.
type AssertionVerifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}
