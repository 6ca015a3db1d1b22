package ai

import (
	"context"
	"errors"
)

// SummaryInput captures the resume fields used to build the prompt.
type SummaryInput struct {
	Name       string
	Education  string
	Experience string
	Skills     string
	Location   string
}

// Client abstracts AI providers for resume summary generation.
type Client interface {
	GenerateSummary(ctx context.Context, input SummaryInput) (string, error)
}

// ErrUpstream indicates a provider outage or a malformed provider response.
var ErrUpstream = errors.New("ai service error")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("ai provider not configured")

// PlaceholderClient is the stub used when no provider key is configured.
type PlaceholderClient struct{}

func (PlaceholderClient) GenerateSummary(ctx context.Context, input SummaryInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}
