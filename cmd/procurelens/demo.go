package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/procurelens/procurelens/internal/cli"
	"github.com/procurelens/procurelens/internal/demo"
)

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render a synthetic dashboard",
		Long: `Generate a synthetic dashboard snapshot for a chosen period. Useful for
exploring the report format without any procurement data. Pass --seed for
reproducible output.`,
		RunE: runDemo,
	}

	cmd.Flags().String("period", "monthly", "aggregation period (daily, weekly, monthly, yearly)")
	cmd.Flags().Int64("seed", 0, "random seed (default: current time)")
	cmd.Flags().Bool("json", false, "emit the raw dashboard snapshot as JSON")

	return cmd
}

func runDemo(cmd *cobra.Command, _ []string) error {
	period, _ := cmd.Flags().GetString("period")
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	generator := demo.NewGenerator(seed)
	data := generator.Generate(demo.Period(period))

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode dashboard: %w", err)
		}
		return nil
	}

	cli.RenderDashboard(os.Stdout, data)
	return nil
}
