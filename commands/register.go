// Package commands provides the cobra subcommands for the semdomtool
// binary: build, analyze, and coverage. Each command is an independent
// batch run composed with the others only through the files it reads and
// writes.
package commands

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sillsdev/SemDomCoverageTool/config"
)

// Runtime carries the state shared by all subcommands: the --config
// persistent flag value, resolved lazily so the flag is parsed first.
type Runtime struct {
	// ConfigPath is an explicit config file path, "" for layered lookup.
	ConfigPath string
}

// AddCommands registers all subcommands on the root command.
func AddCommands(root *cobra.Command, rt *Runtime) {
	root.AddCommand(NewBuildCommand(rt))
	root.AddCommand(NewAnalyzeCommand(rt))
	root.AddCommand(NewCoverageCommand(rt))
}

func (rt *Runtime) loadConfig() (*config.Config, error) {
	loader := config.NewLoader(slog.Default())
	if rt.ConfigPath != "" {
		return loader.LoadFile(rt.ConfigPath)
	}
	return loader.Load()
}

// commandLogger returns a logger stamped with the command name and a fresh
// run ID, so log lines from interleaved batch runs stay attributable.
func commandLogger(command string) *slog.Logger {
	return slog.Default().With(
		slog.String("command", command),
		slog.String("run_id", uuid.NewString()),
	)
}
