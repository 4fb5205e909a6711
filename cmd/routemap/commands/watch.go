package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-analyze routes whenever the project changes",
	Long: `Watch the project and re-run the analysis after every change.

Changes are debounced; a change that arrives while an analysis is still
running is dropped.

Example:
  routemap watch -f ts -o src/routes.ts
  routemap watch --debounce 1s`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

var watchRouter string

func init() {
	addAnalysisFlags(watchCmd)
	watchCmd.Flags().StringP("output", "o", "", "Write to this file (relative to the project dir) instead of stdout")
	watchCmd.Flags().Duration("debounce", 300*time.Millisecond, "Delay after the last change before re-analyzing")
	watchCmd.Flags().StringVar(&watchRouter, "router", "", "Only include routes of one router (app or pages)")
}

// rerunner debounces triggers and runs at most one job at a time.
type rerunner struct {
	debounce time.Duration
	run      func(trigger string)

	mu      sync.Mutex
	timer   *time.Timer
	running atomic.Bool
	dropped atomic.Int64
}

func newRerunner(debounce time.Duration, run func(trigger string)) *rerunner {
	return &rerunner{debounce: debounce, run: run}
}

// Trigger schedules a run after the debounce delay, replacing a pending one.
func (r *rerunner) Trigger(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, func() { r.fire(name) })
}

// fire runs the job unless one is in flight. It reports whether it ran.
func (r *rerunner) fire(name string) bool {
	if !r.running.CompareAndSwap(false, true) {
		r.dropped.Add(1)
		return false
	}
	defer r.running.Store(false)
	r.run(name)
	return true
}

// Stop cancels a pending run.
func (r *rerunner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
}

var watchedExts = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".mjs": true, ".cjs": true, ".md": true, ".mdx": true,
	".json": true, ".yaml": true, ".yml": true,
}

// relevantChange reports whether an event can change the analysis result.
// Writes to the output file itself are ignored.
func relevantChange(event fsnotify.Event, output string) bool {
	if output != "" && filepath.Clean(event.Name) == filepath.Clean(output) {
		return false
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	ext := filepath.Ext(event.Name)
	if ext == "" {
		// directories appear and disappear as route segments
		return event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
	}
	return watchedExts[ext] || filepath.Base(event.Name) == ".env"
}

// skipWatchDir reports whether a directory below root should not be watched.
func skipWatchDir(root, dir string, ignore []string) bool {
	name := filepath.Base(dir)
	if dir != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
		return true
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return false
	}
	return scanner.Ignored(ignore, filepath.ToSlash(rel), name, true)
}

// addWatchDirs adds dir and every directory below it to the watcher.
func addWatchDirs(w *fsnotify.Watcher, root, dir string, ignore []string) {
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if skipWatchDir(root, path, ignore) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("cannot watch directory", "path", path, "err", err)
		}
		return nil
	})
}

func runWatch(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	s, err := loadSettings(cmd, projectDir, configFile)
	if err != nil {
		exitWithError(err)
	}
	output := s.outputPath()
	if output == "-" {
		output = ""
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func(trigger string) {
		start := time.Now()
		timestamp := start.Format("15:04:05")
		res, err := analyze(ctx, s, watchRouter, slog.Default())
		if err == nil && output != "" {
			err = writeFile(output, res.Content)
		}

		if jsonOutput {
			out := WatchOutput{Trigger: trigger, Output: output, Duration: time.Since(start).String()}
			if err != nil {
				out.Error = err.Error()
			} else {
				out.Routes = len(res.Routes)
			}
			printJSON(out)
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [%s] %s %v\n", timestamp, red("✗"), err)
			return
		}
		if output == "" {
			fmt.Println(res.Content)
			return
		}
		fmt.Fprintf(os.Stderr, "  [%s] %s %d routes written to %s (%s)\n",
			timestamp, green("✓"), len(res.Routes), output, time.Since(start).Round(time.Millisecond))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		exitWithError(fmt.Errorf("failed to create file watcher: %w", err))
	}
	defer func() { _ = watcher.Close() }()
	addWatchDirs(watcher, s.Dir, s.Dir, s.Config.Ignore)

	if !jsonOutput {
		fmt.Fprintf(os.Stderr, "\n  %s Watching %s\n\n", cyan("routemap"), s.Dir)
	}
	runOnce("")

	r := newRerunner(s.Config.Watch.Debounce, runOnce)
	defer r.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					addWatchDirs(watcher, s.Dir, event.Name, s.Config.Ignore)
				}
			}
			if !relevantChange(event, output) {
				continue
			}
			slog.Debug("change detected", "path", event.Name, "op", event.Op.String())
			r.Trigger(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "  %s Watcher error: %v\n", yellow("Warning:"), err)

		case <-ctx.Done():
			if !jsonOutput {
				fmt.Fprintln(os.Stderr, "\n  Shutting down...")
			}
			return
		}
	}
}
