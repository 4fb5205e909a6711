package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/routemap/pkg/config"
	"github.com/abdul-hamid-achik/routemap/pkg/format"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a routemap.yaml in the project",
	Long: `Create a routemap.yaml with the default settings.

When run in a terminal the main settings are asked for interactively.

Example:
  routemap init
  routemap init --yes --force`,
	Args: cobra.NoArgs,
	Run:  runInit,
}

var (
	initForce bool
	initYes   bool
)

// errConfigExists is returned when init would overwrite a config file.
var errConfigExists = errors.New("config file already exists (use --force to overwrite)")

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Use defaults without prompting")
}

// writeConfigFile writes cfg to dir/routemap.yaml.
func writeConfigFile(dir string, cfg *config.Config, force bool) (string, error) {
	path := filepath.Join(dir, config.FileName+".yaml")
	if !force {
		if existing, ok := config.Find(dir); ok {
			return existing, errConfigExists
		}
	}
	if err := config.Write(path, cfg); err != nil {
		return path, err
	}
	return path, nil
}

func promptConfig(cfg *config.Config) error {
	kinds := make([]string, len(format.Kinds))
	for i, k := range format.Kinds {
		kinds[i] = string(k)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Options(huh.NewOptions(kinds...)...).
				Value(&cfg.Format),
			huh.NewSelect[string]().
				Title("Analysis depth").
				Description("detailed also reads source files for exports and directives").
				Options(huh.NewOptions("basic", "detailed")...).
				Value(&cfg.Depth),
			huh.NewSelect[string]().
				Title("Dynamic segment style").
				Options(huh.NewOptions("next", "colon", "braces")...).
				Value(&cfg.PathStyle),
			huh.NewInput().
				Title("Output file").
				Description("Leave empty to print to stdout").
				Value(&cfg.Output),
		),
	)
	return form.Run()
}

func runInit(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	dir, err := filepath.Abs(projectDir)
	if err != nil {
		exitWithError(err)
	}

	cfg := config.Default()
	interactive := !initYes && !jsonOutput && isatty.IsTerminal(os.Stdin.Fd())
	if interactive {
		fmt.Printf("\n  %s Create configuration\n\n", cyan("routemap"))
		if err := promptConfig(cfg); err != nil {
			fmt.Printf("  %s Cancelled\n", yellow("!"))
			return
		}
	}

	path, err := writeConfigFile(dir, cfg, initForce)
	if err != nil {
		exitWithError(fmt.Errorf("%s: %w", path, err))
	}

	if jsonOutput {
		printSuccess(InitOutput{Path: path, Format: cfg.Format, Depth: cfg.Depth})
		return
	}
	fmt.Printf("  %s Created %s\n", green("✓"), path)
}
