package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/procurelens/procurelens/internal/cli"
	"github.com/procurelens/procurelens/internal/model"
	"github.com/procurelens/procurelens/internal/reconcile"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile <file>...",
		Short: "Cross-file reconciliation analysis",
		Long: `Parse a set of related procurement files (vendors, POs, invoices, GRNs,
matching results, payments), detect each file's role from its name, and
build a reconciliation dashboard across the whole document set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReconcile,
	}

	cmd.Flags().String("session", "", "session ID to store the snapshot under (default: new session)")
	cmd.Flags().Bool("save", false, "persist the files and snapshot to the session database")
	cmd.Flags().Bool("json", false, "emit the raw dashboard snapshot as JSON")

	return cmd
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	bar := progressbar.NewOptions(len(args),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Loading files...[reset]"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	files := make([]model.FileData, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, model.FileData{
			Filename: filepath.Base(path),
			Content:  content,
		})
		_ = bar.Add(1)
	}

	reconciler := reconcile.New(slog.Default())
	data, err := reconciler.Analyze(ctx, files)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

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

	for _, path := range args {
		if _, err := storeUpload(ctx, store, sessionID, path); err != nil {
			return fmt.Errorf("failed to store upload: %w", err)
		}
	}

	record := &model.AnalysisRecord{
		SessionID: sessionID,
		Dashboard: data,
	}
	if err := store.SaveAnalysisRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Saved reconciliation to session " + sessionID))
	return nil
}
