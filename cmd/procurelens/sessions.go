package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/procurelens/procurelens/internal/cli"
	"github.com/procurelens/procurelens/internal/common"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage stored analysis sessions",
		Long:  `List, show, and delete persisted analysis sessions and their uploads.`,
	}

	cmd.AddCommand(listSessionsCmd())
	cmd.AddCommand(showSessionCmd())
	cmd.AddCommand(deleteSessionCmd())

	return cmd
}

func listSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored analysis sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.ListAnalysisRecords(ctx)
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}

			if len(records) == 0 {
				fmt.Println(cli.FormatInfo("No stored sessions. Run 'procurelens analyze --save' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Session"),
				cli.TableHeaderStyle.Render("Records"),
				cli.TableHeaderStyle.Render("Health"),
				cli.TableHeaderStyle.Render("Analyzed"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 36),
				strings.Repeat("-", 8),
				strings.Repeat("-", 8),
				strings.Repeat("-", 20))

			for _, record := range records {
				fmt.Fprintf(w, "%s\t%d\t%d/100\t%s\n",
					record.SessionID,
					record.TotalRecords,
					record.HealthScore,
					record.AnalyzedAt.Format("2006-01-02 15:04"))
			}

			return nil
		},
	}
}

func showSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the stored snapshot for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.GetAnalysisRecord(ctx, args[0])
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(record.Dashboard)
			}

			cli.RenderDashboard(os.Stdout, record.Dashboard)

			files, err := store.GetUploadedFiles(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load session files: %w", err)
			}
			if len(files) > 0 {
				var content strings.Builder
				for _, file := range files {
					fmt.Fprintf(&content, "%s %s (%d bytes)\n", cli.FolderIcon, file.OriginalName, file.FileSize)
				}
				fmt.Println()
				fmt.Println(cli.RenderBox("Uploaded Files", strings.TrimRight(content.String(), "\n")))
			}

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "emit the raw dashboard snapshot as JSON")

	return cmd
}

func deleteSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session and its uploads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteSessionFiles(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete session files: %w", err)
			}
			if err := store.DeleteAnalysisRecord(ctx, args[0]); err != nil && !errors.Is(err, common.ErrNotFound) {
				return err
			}

			fmt.Println(cli.FormatSuccess("Deleted session " + args[0]))
			return nil
		},
	}
}
