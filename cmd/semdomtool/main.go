// Package main provides the semdomtool binary entry point. Semdomtool maps
// Louw/Nida semantic-domain codes in tagged biblical texts to SIL Semantic
// Domain categories and reports how much of a tagged text each category
// covers.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sillsdev/SemDomCoverageTool/commands"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semdomtool"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		logLevel string
		rt       commands.Runtime
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Louw/Nida to Semantic Domain mapping and coverage tools",
		Long: `Semdomtool is a batch pipeline over two file formats: a Semantic
Domains XML list and LN-tagged corpus XML.

It provides:
- build:    Semantic Domains XML -> LN-to-SemDom mapping CSV
- analyze:  mapping CSV -> LN code coverage report
- coverage: mapping CSV + tagged text -> per-domain coverage CSV

The tools share no state beyond the files they exchange; each run reads
its inputs, computes, and writes its output once.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVarP(&rt.ConfigPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	commands.AddCommands(cmd, &rt)

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
