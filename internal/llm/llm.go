package llm

import (
	"context"
	"errors"
)

// Client abstracts text-generation providers for recommendation and route analysis.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider failure taxonomy. The caller never retries; a regenerate request is
// the only retry path.
var (
	// ErrMissingAPIKey means the provider credential was never configured.
	// It must prevent any provider call from being attempted.
	ErrMissingAPIKey = errors.New("provider API key not configured")

	// ErrAuth means the provider rejected the configured credential.
	ErrAuth = errors.New("provider rejected credentials")

	// ErrTimeout means the provider did not answer before the deadline.
	ErrTimeout = errors.New("provider request timed out")

	// ErrUnavailable covers transport failures and provider-side errors.
	ErrUnavailable = errors.New("provider unavailable")
)

// PlaceholderClient is used when no provider is configured. Every call fails
// with ErrMissingAPIKey so callers surface a configuration error instead of
// silently producing nothing.
type PlaceholderClient struct{}

// Generate always fails with ErrMissingAPIKey.
func (PlaceholderClient) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrMissingAPIKey
}

var _ Client = PlaceholderClient{}
