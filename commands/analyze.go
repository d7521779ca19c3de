package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sillsdev/SemDomCoverageTool/analysis"
	"github.com/sillsdev/SemDomCoverageTool/mapping"
)

// NewAnalyzeCommand returns the analyze subcommand: a read-only diagnostic
// report over a mapping CSV.
func NewAnalyzeCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <mapping.csv>",
		Short: "Report LN code coverage statistics for a mapping table",
		Long: `Analyze reads a mapping CSV and reports which LN domain numbers are
present, how many subdomain rows each number carries, and summary
statistics. Codes whose number falls outside the expected range are
surfaced separately rather than dropped. The input file is never modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, rt, args[0])
		},
	}
}

func runAnalyze(cmd *cobra.Command, rt *Runtime, path string) error {
	cfg, err := rt.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := commandLogger("analyze")

	logger.Info("Loading mapping table", "path", path)
	table, err := mapping.ReadFile(path)
	if err != nil {
		return err
	}
	if table.SkippedRows > 0 {
		logger.Warn("Skipped rows with empty fields", "count", table.SkippedRows)
	}

	report := analysis.Analyze(table, cfg.Codes.MinBase, cfg.Codes.MaxBase)
	report.Render(cmd.OutOrStdout(), cfg.Report.Width)
	return nil
}
