package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// jsonOutput is the global flag for JSON output mode
var jsonOutput bool

// JSONResponse is the standard response wrapper for JSON output
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AnalyzeOutput represents the JSON output for the analyze command
type AnalyzeOutput struct {
	Format   string          `json:"format"`
	Router   string          `json:"router"`
	Routes   int             `json:"routes"`
	Output   string          `json:"output,omitempty"`
	Content  string          `json:"content,omitempty"`
	Warnings []WarningOutput `json:"warnings,omitempty"`
}

// WarningOutput represents a recovered problem in JSON output
type WarningOutput struct {
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
}

// WatchOutput represents one watch-mode run in JSON output
type WatchOutput struct {
	Trigger  string `json:"trigger,omitempty"`
	Routes   int    `json:"routes"`
	Output   string `json:"output,omitempty"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// MergeOutput represents the JSON output for the merge command
type MergeOutput struct {
	Previous string `json:"previous"`
	Incoming string `json:"incoming"`
	Output   string `json:"output,omitempty"`
	Routes   int    `json:"routes"`
	Result   any    `json:"result,omitempty"`
}

// InitOutput represents the JSON output for the init command
type InitOutput struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Depth  string `json:"depth"`
}

// ServeOutput represents the JSON output for the serve command
type ServeOutput struct {
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}

// writeJSON outputs data as formatted JSON to w
func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

// printJSON outputs data as formatted JSON to stdout
func printJSON(v any) {
	writeJSON(os.Stdout, v)
}

// printSuccess outputs a successful JSON response
func printSuccess(data any) {
	printJSON(JSONResponse{Success: true, Data: data})
}

// printJSONError outputs an error as JSON
func printJSONError(err error) {
	printJSON(JSONResponse{Success: false, Error: err.Error()})
}

// exitWithError reports err in the active output mode and exits with status 1
func exitWithError(err error) {
	if jsonOutput {
		printJSONError(err)
	} else {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(os.Stderr, "  %s %v\n", red("Error:"), err)
	}
	os.Exit(1)
}

// writeFile writes content to path, creating parent directories
func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
