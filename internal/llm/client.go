package llm

import (
	"context"
	"time"
)

// Client defines the interface for LLM providers.
type Client interface {
	// Complete sends a prompt and returns the raw text completion.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for LLM-backed analysis.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}
