package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/procurelens/procurelens/internal/analyze"
	"github.com/procurelens/procurelens/internal/cli"
	"github.com/procurelens/procurelens/internal/model"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a procurement spreadsheet",
		Long: `Parse one CSV or Excel file, classify its line items by category and
purchase velocity, and render the resulting process-health dashboard.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().String("session", "", "session ID to store the snapshot under (default: new session)")
	cmd.Flags().Bool("save", false, "persist the file and snapshot to the session database")
	cmd.Flags().Bool("json", false, "emit the raw dashboard snapshot as JSON")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	table, err := loadTable(args[0])
	if err != nil {
		return err
	}

	slog.Info("Parsed file",
		"file", args[0],
		"columns", len(table.Headers),
		"rows", len(table.Rows))

	analyzer := analyze.New(slog.Default())
	data := analyzer.Analyze(table.Headers, table.Rows)

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode dashboard: %w", err)
		}
	} else {
		cli.RenderDashboard(os.Stdout, data)
	}

	save, _ := cmd.Flags().GetBool("save")
	if !save {
		return nil
	}

	sessionID, _ := cmd.Flags().GetString("session")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if _, err := storeUpload(ctx, store, sessionID, args[0]); err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}

	record := &model.AnalysisRecord{
		SessionID: sessionID,
		Dashboard: data,
	}
	if err := store.SaveAnalysisRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Saved analysis to session " + sessionID))
	return nil
}
