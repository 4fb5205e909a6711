package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/routemap/internal/version"
	"github.com/abdul-hamid-achik/routemap/pkg/update"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and optionally check for a newer release",
	Long: `Print the routemap version and result schema version.

Example:
  routemap version
  routemap version --check`,
	Args: cobra.NoArgs,
	Run:  runVersion,
}

var (
	versionCheck      bool
	versionPrerelease bool
)

// VersionOutput represents the JSON output for the version command
type VersionOutput struct {
	Version       string `json:"version"`
	SchemaVersion int    `json:"schema_version"`
	Latest        string `json:"latest,omitempty"`
	UpToDate      bool   `json:"up_to_date,omitempty"`
	ReleaseURL    string `json:"release_url,omitempty"`
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	versionCmd.Flags().BoolVar(&versionPrerelease, "prerelease", false, "Include prereleases in the check")
}

func runVersion(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	out := VersionOutput{
		Version:       version.GetVersion(),
		SchemaVersion: version.GetSchemaVersion(),
	}

	if versionCheck {
		checker := update.NewChecker()
		checker.IncludePrerelease = versionPrerelease
		latest, hasUpdate, err := checker.Check(cmd.Context())
		if err != nil {
			exitWithError(err)
		}
		_ = checker.SaveLastCheck()
		out.Latest = latest.TagName
		out.UpToDate = !hasUpdate
		out.ReleaseURL = latest.HTMLURL
	}

	if jsonOutput {
		printSuccess(out)
		return
	}

	fmt.Printf("  %s %s (schema %d)\n", cyan("routemap"), out.Version, out.SchemaVersion)
	if !versionCheck {
		return
	}
	if out.UpToDate {
		fmt.Printf("  %s Up to date\n", green("✓"))
		return
	}
	fmt.Printf("  %s %s is available: %s\n", yellow("→"), out.Latest, out.ReleaseURL)
}
