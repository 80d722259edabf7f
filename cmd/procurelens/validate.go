package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/procurelens/procurelens/internal/cli"
	"github.com/procurelens/procurelens/internal/model"
	"github.com/procurelens/procurelens/internal/service"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Assess a spreadsheet's structure and quality",
		Long: `Map the file's columns to the standard procurement schema, score its data
quality, and report whether it carries enough fields for a full analysis.

With --provider anthropic the assessment is delegated to the configured
model; any failure there falls back to the built-in analyzer.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}

	cmd.Flags().String("session", "", "session ID to store the assessment under")
	cmd.Flags().Bool("json", false, "emit the raw assessment as JSON")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	table, err := loadTable(args[0])
	if err != nil {
		return err
	}

	analyzer, err := initAnalyzer()
	if err != nil {
		return err
	}

	assessment, err := analyzer.AnalyzeFile(ctx, service.AnalyzeRequest{
		Filename: filepath.Base(args[0]),
		Headers:  table.Headers,
		Rows:     table.Rows,
	})
	if err != nil {
		return fmt.Errorf("assessment failed: %w", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(assessment); err != nil {
			return fmt.Errorf("failed to encode assessment: %w", err)
		}
	} else {
		cli.RenderAssessment(os.Stdout, filepath.Base(args[0]), assessment)
	}

	sessionID, _ := cmd.Flags().GetString("session")
	if sessionID == "" {
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	file, err := storeUpload(ctx, store, sessionID, args[0])
	if err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}

	record := &model.AssessmentRecord{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		FileID:     file.ID,
		Assessment: assessment,
	}
	if err := store.SaveAssessmentRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Saved assessment to session " + sessionID))
	return nil
}
