package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/procurelens/procurelens/internal/common"
	"github.com/procurelens/procurelens/internal/model"
	"github.com/procurelens/procurelens/internal/service"
)

// RemoteAnalyzer asks an LLM to assess a file and falls back to the local
// analyzer on any failure. Callers therefore always get an assessment; the
// remote path only ever improves on the local one.
type RemoteAnalyzer struct {
	client      Client
	fallback    *LocalAnalyzer
	rateLimiter *rateLimiter
	logger      *slog.Logger
	retryOpts   service.RetryOptions
}

// NewRemoteAnalyzer wraps a Client with rate limiting, retry and the local
// fallback.
func NewRemoteAnalyzer(client Client, cfg Config, logger *slog.Logger) *RemoteAnalyzer {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}

	return &RemoteAnalyzer{
		client:      client,
		fallback:    NewLocalAnalyzer(logger),
		rateLimiter: newRateLimiter(cfg.RateLimit),
		logger:      logger,
		retryOpts: service.RetryOptions{
			MaxAttempts:  maxRetries,
			InitialDelay: retryDelay,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// AnalyzeFile sends the file to the model and sanitizes the reply. Whatever
// goes wrong, the local analyzer answers instead.
func (a *RemoteAnalyzer) AnalyzeFile(ctx context.Context, req service.AnalyzeRequest) (*model.FileAssessment, error) {
	assessment, err := a.analyzeRemote(ctx, req)
	if err != nil {
		a.logger.Warn("remote analysis failed, using local analyzer",
			"filename", req.Filename,
			"error", err)
		return a.fallback.AnalyzeFile(ctx, req)
	}
	return assessment, nil
}

func (a *RemoteAnalyzer) analyzeRemote(ctx context.Context, req service.AnalyzeRequest) (*model.FileAssessment, error) {
	if err := a.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	prompt := buildAnalysisPrompt(req)

	var assessment *model.FileAssessment
	err := common.WithRetry(ctx, func() error {
		content, err := a.client.Complete(ctx, prompt)
		if err != nil {
			return err
		}
		assessment, err = parseAssessment(content, req)
		return err
	}, a.retryOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAnalyzerUnavailable, err)
	}

	return assessment, nil
}

// Close releases the rate limiter.
func (a *RemoteAnalyzer) Close() {
	a.rateLimiter.Close()
}
