package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sillsdev/SemDomCoverageTool/export"
	"github.com/sillsdev/SemDomCoverageTool/mapping"
	"github.com/sillsdev/SemDomCoverageTool/semdom"
)

// NewBuildCommand returns the build subcommand: Semantic Domains XML in,
// mapping CSV out.
func NewBuildCommand(rt *Runtime) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "build <semantic-domains.xml> <output.csv>",
		Short: "Build the LN-to-SemDom mapping table from a Semantic Domains list",
		Long: `Build traverses every domain node in a Semantic Domains XML list,
extracts the LouwNida codes attached to each node, and writes one mapping
row per (LN code, domain) pair. Traversal follows document order, so
repeated runs over the same input produce byte-identical output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, rt, args[0], args[1], language)
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "Writing system for localized fields (default from config, normally en)")

	return cmd
}

func runBuild(cmd *cobra.Command, rt *Runtime, inPath, outPath, language string) error {
	cfg, err := rt.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := commandLogger("build")

	parser := semdom.NewParser()
	parser.Lang = cfg.Codes.Language
	if language != "" {
		parser.Lang = language
	}

	logger.Info("Parsing semantic domains list",
		"path", inPath, "language", parser.Lang)
	domains, err := parser.ParseFile(inPath)
	if err != nil {
		return err
	}

	table := mapping.Build(domains)
	if table.SkippedCodes > 0 {
		logger.Warn("Skipped unparsable LouwNida code entries", "count", table.SkippedCodes)
	}
	if table.SkippedDomains > 0 {
		logger.Warn("Skipped domains without an abbreviation", "count", table.SkippedDomains)
	}

	opts := export.Options{QuoteAll: cfg.Output.QuoteAllEnabled()}
	if err := export.WriteMappingCSV(outPath, table, opts); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Successfully created %s\n", outPath)
	fmt.Fprintf(out, "Total mapping rows: %d (%d distinct LouwNida codes)\n",
		len(table.Rows), table.DistinctCodes())
	return nil
}
