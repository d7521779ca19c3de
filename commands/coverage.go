package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/sillsdev/SemDomCoverageTool/coverage"
	"github.com/sillsdev/SemDomCoverageTool/export"
	"github.com/sillsdev/SemDomCoverageTool/mapping"
	"github.com/sillsdev/SemDomCoverageTool/taggedtext"
)

// NewCoverageCommand returns the coverage subcommand: mapping CSV plus one
// or more tagged texts in, coverage CSV out.
func NewCoverageCommand(rt *Runtime) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "coverage <mapping.csv> <tagged-text.xml|glob>",
		Short: "Compute per-domain coverage of a mapping over tagged texts",
		Long: `Coverage matches every LN code in the tagged text against the mapping
table. Decimal sub-codes collapse onto their base number and credit every
domain mapped to it; unmapped codes are reported at the end instead of
aborting the run. The text argument may be a single file or a glob such as
'texts/**/*.xml'; all matching documents feed one aggregation pass.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoverage(cmd, rt, args[0], args[1], outPath)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "semdom_coverage.csv", "Coverage CSV output path")

	return cmd
}

func runCoverage(cmd *cobra.Command, rt *Runtime, mappingPath, textPattern, outPath string) error {
	cfg, err := rt.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := commandLogger("coverage")

	logger.Info("Loading mapping table", "path", mappingPath)
	table, err := mapping.ReadFile(mappingPath)
	if err != nil {
		return err
	}
	index := table.Index()
	logger.Info("Mapping loaded",
		"rows", len(table.Rows), "base_numbers", index.Bases())

	paths, err := resolveTexts(textPattern)
	if err != nil {
		return err
	}
	logger.Info("Scanning tagged texts", "files", len(paths))

	computer := coverage.NewComputer(index)
	for _, path := range paths {
		if err := taggedtext.ScanFile(path, func(tok taggedtext.Token) error {
			computer.AddToken(tok)
			return nil
		}); err != nil {
			return err
		}
	}

	result := computer.Finalize()

	opts := export.Options{QuoteAll: cfg.Output.QuoteAllEnabled()}
	if err := export.WriteCoverageCSV(outPath, result, opts); err != nil {
		return err
	}

	printCoverageSummary(cmd, result, outPath, cfg.Report.Width)
	return nil
}

// resolveTexts expands the tagged-text argument, which may be a literal
// path or a doublestar glob, into a sorted file list.
func resolveTexts(pattern string) ([]string, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad tagged-text pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no tagged-text files match %q", pattern)
	}
	sort.Strings(paths)
	return paths, nil
}

func printCoverageSummary(cmd *cobra.Command, res *coverage.Result, outPath string, width int) {
	out := cmd.OutOrStdout()
	rule := strings.Repeat("=", width)

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "SEMANTIC DOMAINS COVERED")
	fmt.Fprintln(out, rule)
	for _, row := range res.Rows {
		fmt.Fprintf(out, "%s: %s (%d codes, %d words, %d references)\n",
			row.SemDom, row.SemDomName, row.Total, row.UniqueWords, row.UniqueRefs)
	}
	fmt.Fprintf(out, "\nTokens processed: %d, distinct decimal codes: %d\n",
		res.Tokens, res.DistinctCodes)
	fmt.Fprintf(out, "Total unique semantic domains: %d\n", len(res.Rows))

	if len(res.Unmatched) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, rule)
		fmt.Fprintln(out, "UNMATCHED LN CODES")
		fmt.Fprintln(out, rule)
		for _, u := range res.Unmatched {
			if u.Base > 0 {
				fmt.Fprintf(out, "%s -> %d\n", u.Decimal, u.Base)
			} else {
				fmt.Fprintf(out, "%s (unparsable)\n", u.Decimal)
			}
		}
	}

	fmt.Fprintf(out, "\nResults saved to %s\n", outPath)
}
