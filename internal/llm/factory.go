package llm

import (
	"fmt"
	"log/slog"

	"github.com/procurelens/procurelens/internal/common"
	"github.com/procurelens/procurelens/internal/service"
)

// NewAnalyzer creates a ColumnAnalyzer for the configured provider.
// "local" needs no credentials and is the default; "anthropic" wraps the API
// client with the local analyzer as fallback.
func NewAnalyzer(cfg Config, logger *slog.Logger) (service.ColumnAnalyzer, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocalAnalyzer(logger), nil
	case "anthropic":
		client, err := newAnthropicClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating anthropic client: %w", err)
		}
		return NewRemoteAnalyzer(client, cfg, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown analyzer provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}
