package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/routemap/pkg/analyzer"
	"github.com/abdul-hamid-achik/routemap/pkg/config"
	"github.com/abdul-hamid-achik/routemap/pkg/format"
	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Aliases: []string{"routes"},
	Short:   "Infer the project's routes and render them",
	Long: `Scan the app/ and pages/ directories and render every inferred route.

Formats: raw, json, yaml, markdown (md), typescript (ts), openapi.

Examples:
  routemap analyze
  routemap analyze --format markdown --output ROUTES.md
  routemap analyze -f ts -o src/routes.ts --strip /docs
  routemap analyze --nested --path-style colon --exclude filePath
  routemap analyze --router pages --depth detailed`,
	Args: cobra.NoArgs,
	Run:  runAnalyze,
}

var (
	analyzeRouter string
	analyzeTitle  string
)

func init() {
	addAnalysisFlags(analyzeCmd)
	analyzeCmd.Flags().StringP("output", "o", "", "Write to this file (relative to the project dir) instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzeRouter, "router", "", "Only include routes of one router (app or pages)")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "Title of Markdown and OpenAPI output")
}

// addAnalysisFlags registers the flags shared by every command that analyzes.
func addAnalysisFlags(cmd *cobra.Command) {
	d := config.Default()
	cmd.Flags().StringP("format", "f", d.Format, "Output format ("+format.KindList()+")")
	cmd.Flags().Int("indent", d.Indent, "JSON/YAML indent width (0 for compact JSON)")
	cmd.Flags().String("depth", d.Depth, "Analysis depth (basic or detailed)")
	cmd.Flags().Bool("nested", d.Nested, "Render the nested route structure")
	cmd.Flags().String("path-style", d.PathStyle, "Dynamic segment style (next, colon or braces)")
	cmd.Flags().StringSlice("strip", d.StripPrefixes, "Prefixes (or //regex//) removed from TypeScript module paths")
	cmd.Flags().StringSlice("exclude", d.ExcludeFields, "Route fields removed from raw, JSON and YAML output")
	cmd.Flags().StringSlice("ignore", d.Ignore, "Glob patterns skipped while scanning")
	cmd.Flags().Int("max-depth", d.MaxDepth, "Maximum directory depth")
	cmd.Flags().String("metadata", d.Metadata, "JSON or YAML metadata file merged onto routes")
}

// analysis is the rendered outcome of one run.
type analysis struct {
	Result  *analyzer.Result
	Routes  []scanner.Route
	Content string
}

// analyze runs one analysis and renders it. router optionally restricts the
// rendered routes to one router.
func analyze(ctx context.Context, s *settings, router string, logger *slog.Logger) (*analysis, error) {
	a := analyzer.New(s.analyzerOptions(logger))
	result, err := a.Analyze(ctx)
	if err != nil {
		return nil, err
	}

	routes := result.Routes
	switch scanner.RouterKind(router) {
	case "":
	case scanner.RouterApp, scanner.RouterPages:
		routes = result.ByRouter(scanner.RouterKind(router))
	default:
		return nil, fmt.Errorf("unknown router %q (supported: app, pages)", router)
	}

	content, err := format.Render(s.Kind, routes, result.Project, s.Format)
	if err != nil {
		return nil, err
	}
	return &analysis{Result: result, Routes: routes, Content: content}, nil
}

func warningOutputs(warnings []scanner.Warning) []WarningOutput {
	out := make([]WarningOutput, len(warnings))
	for i, w := range warnings {
		out[i] = WarningOutput{File: w.FilePath, Message: w.Message}
	}
	return out
}

func runAnalyze(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	s, err := loadSettings(cmd, projectDir, configFile)
	if err != nil {
		exitWithError(err)
	}
	s.Format.Title = analyzeTitle

	res, err := analyze(cmd.Context(), s, analyzeRouter, slog.Default())
	if err != nil {
		exitWithError(err)
	}

	output := s.outputPath()
	if output != "" && output != "-" {
		if err := writeFile(output, res.Content); err != nil {
			exitWithError(err)
		}
	}

	if jsonOutput {
		data := AnalyzeOutput{
			Format:   string(s.Kind),
			Router:   res.Result.Project.Router,
			Routes:   len(res.Routes),
			Warnings: warningOutputs(res.Result.Warnings),
		}
		if output != "" && output != "-" {
			data.Output = output
		} else {
			data.Content = res.Content
		}
		printSuccess(data)
		return
	}

	for _, w := range res.Result.Warnings {
		fmt.Fprintf(os.Stderr, "  %s %s: %s\n", yellow("Warning:"), w.FilePath, w.Message)
	}

	if output == "" || output == "-" {
		fmt.Println(res.Content)
		return
	}
	fmt.Printf("  %s Wrote %d routes to %s\n", green("✓"), len(res.Routes), output)
}
