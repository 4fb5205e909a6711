package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/routemap/pkg/preview"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve every output format over HTTP",
	Long: `Start a preview server that re-analyzes the project on every request.

Endpoints:
  GET /                  Index of available formats
  GET /routes            Routes in the configured format
  GET /routes/{format}   Routes in any format (?nested, ?style, ?indent)

Example:
  routemap serve --open
  routemap serve --addr :8080 --format markdown`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

var serveOpen bool

func init() {
	addAnalysisFlags(serveCmd)
	serveCmd.Flags().String("addr", "localhost:4321", "Address to listen on")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "Open the preview in a browser")
}

func previewURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/routes"
}

func runServe(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	s, err := loadSettings(cmd, projectDir, configFile)
	if err != nil {
		exitWithError(err)
	}

	addr := s.Config.Serve.Addr
	url := previewURL(addr)
	srv := preview.New(s.analyzerOptions(slog.Default()), s.Format, s.Kind)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if jsonOutput {
		printJSON(ServeOutput{Status: "running", URL: url})
	} else {
		fmt.Printf("\n  %s preview server\n", cyan("routemap"))
		fmt.Printf("\n  ➜ Local:   %s\n\n", cyan(url))
	}

	if serveOpen {
		time.AfterFunc(200*time.Millisecond, func() {
			if err := browser.OpenURL(url); err != nil && !jsonOutput {
				fmt.Printf("  %s Could not open browser. Please visit:\n", yellow("!"))
				fmt.Printf("  %s\n\n", url)
			}
		})
	}

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		if jsonOutput {
			printJSON(ServeOutput{Status: "error", Error: err.Error()})
			os.Exit(1)
		}
		exitWithError(err)
	}

	if jsonOutput {
		printJSON(ServeOutput{Status: "stopped"})
	} else {
		fmt.Println("\n  Shutting down...")
	}
}
