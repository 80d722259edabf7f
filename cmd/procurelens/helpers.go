package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/procurelens/procurelens/internal/common"
	"github.com/procurelens/procurelens/internal/config"
	"github.com/procurelens/procurelens/internal/llm"
	"github.com/procurelens/procurelens/internal/model"
	"github.com/procurelens/procurelens/internal/service"
	"github.com/procurelens/procurelens/internal/storage"
	"github.com/procurelens/procurelens/internal/tabular"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initAnalyzer builds the configured column analyzer.
func initAnalyzer() (service.ColumnAnalyzer, error) {
	cfg := llm.Config{
		Provider:    viper.GetString("analyzer.provider"),
		APIKey:      viper.GetString("analyzer.api_key"),
		Model:       viper.GetString("analyzer.model"),
		MaxRetries:  viper.GetInt("analyzer.max_retries"),
		RetryDelay:  viper.GetDuration("analyzer.retry_delay"),
		RateLimit:   viper.GetInt("analyzer.rate_limit"),
		Temperature: viper.GetFloat64("analyzer.temperature"),
		MaxTokens:   viper.GetInt("analyzer.max_tokens"),
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	return llm.NewAnalyzer(cfg, slog.Default())
}

// loadTable reads and parses one spreadsheet from disk.
func loadTable(path string) (*tabular.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	table, err := tabular.Parse(filepath.Base(path), content)
	if err != nil {
		return nil, common.NewUserError("could not read "+filepath.Base(path)+" as a spreadsheet", err)
	}
	return table, nil
}

// storeUpload persists one raw upload under a session.
func storeUpload(ctx context.Context, store service.Storage, sessionID, path string) (*model.UploadedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	file := &model.UploadedFile{
		SessionID:    sessionID,
		Filename:     filepath.Base(path),
		OriginalName: filepath.Base(path),
		FileType:     filepath.Ext(path),
		Content:      content,
		FileSize:     int64(len(content)),
		UploadedAt:   time.Now().UTC(),
	}
	if err := store.SaveUploadedFile(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}
