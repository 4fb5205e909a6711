package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/routemap/pkg/analyzer"
	"github.com/abdul-hamid-achik/routemap/pkg/transform"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <previous> <incoming>",
	Short: "Merge a new result or a metadata file into a previous JSON result",
	Long: `Merge a previously written JSON result with either a newer result or a
metadata mapping (JSON or YAML).

Routes are matched by path and the incoming values win. A metadata mapping is
keyed by path ("/blog/[slug]"), dotted path ("blog.[slug]") or router and
path ("app:/blog/[slug]").

Example:
  routemap merge routes.json metadata.yaml -o routes.json
  routemap merge old.json new.json`,
	Args: cobra.ExactArgs(2),
	Run:  runMerge,
}

var (
	mergeOutput string
	mergeIndent int
)

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Write the merged result to this file instead of stdout")
	mergeCmd.Flags().IntVar(&mergeIndent, "indent", 2, "JSON indent width (0 for compact)")
}

// readDocument decodes a JSON or YAML object file.
func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%s does not contain an object", path)
	}

	// round trip through JSON so YAML values decode like JSON values
	generic, err := transform.Generic(doc)
	if err != nil {
		return nil, err
	}
	return generic.(map[string]any), nil
}

// mergeFiles merges the incoming document file into the previous result file.
func mergeFiles(previous, incoming string) (map[string]any, error) {
	prev, err := readDocument(previous)
	if err != nil {
		return nil, err
	}
	next, err := readDocument(incoming)
	if err != nil {
		return nil, err
	}
	return analyzer.Merge(prev, next)
}

// countRoutes returns the number of routes in a flat or nested result.
func countRoutes(doc map[string]any) int {
	switch v := doc["routes"].(type) {
	case []any:
		return len(v)
	case map[string]any:
		routes, err := transform.ToArray(v)
		if err != nil {
			return 0
		}
		return len(routes)
	}
	return 0
}

func encodeIndented(v any, indent int) (string, error) {
	var (
		data []byte
		err  error
	)
	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}

func runMerge(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()

	merged, err := mergeFiles(args[0], args[1])
	if err != nil {
		exitWithError(err)
	}

	if mergeOutput != "" {
		content, err := encodeIndented(merged, mergeIndent)
		if err != nil {
			exitWithError(err)
		}
		if err := writeFile(mergeOutput, content); err != nil {
			exitWithError(err)
		}
	}

	if jsonOutput {
		out := MergeOutput{
			Previous: args[0],
			Incoming: args[1],
			Output:   mergeOutput,
			Routes:   countRoutes(merged),
		}
		if mergeOutput == "" {
			out.Result = merged
		}
		printSuccess(out)
		return
	}

	if mergeOutput == "" {
		content, err := encodeIndented(merged, mergeIndent)
		if err != nil {
			exitWithError(err)
		}
		fmt.Println(content)
		return
	}
	fmt.Printf("  %s Merged %d routes into %s\n", green("✓"), countRoutes(merged), mergeOutput)
}
