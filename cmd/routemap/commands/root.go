// Package commands provides the CLI commands for routemap.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/routemap/internal/version"
)

var (
	verbose    bool
	configFile string
	projectDir string
)

var rootCmd = &cobra.Command{
	Use:   "routemap",
	Short: "routemap - route inference for Next.js projects",
	Long: `routemap reads a Next.js project's app/ and pages/ directories and infers
every route the framework would serve, without running the project.

Quick Start:
  routemap analyze              Print the routes as JSON
  routemap analyze -f markdown  Write a Markdown route report
  routemap analyze -f ts -o routes.ts
                                Generate a typed route helper module
  routemap watch                Re-analyze on every file change
  routemap serve --open         Browse every format over HTTP
  routemap init                 Create a routemap.yaml

Documentation: https://github.com/abdul-hamid-achik/routemap`,
	Version:           version.GetVersion(),
	PersistentPreRun:  setupOutput,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for automation and LLM agents)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information to stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default routemap.yaml in the project)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "Project root directory")

	// Commands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupOutput configures colors and the default logger for every command.
func setupOutput(cmd *cobra.Command, args []string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	slog.SetDefault(newLogger(verbose))
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
