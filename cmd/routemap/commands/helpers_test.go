package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// writeProject creates files below a temporary project root.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
	return root
}

func nextProject(t *testing.T, extra map[string]string) string {
	t.Helper()
	files := map[string]string{
		"package.json":             `{"name":"site","dependencies":{"next":"14.2.0"}}`,
		"app/page.tsx":             "export default function Home() {}\n",
		"app/blog/[slug]/page.tsx": "export default function Post() {}\n",
		"pages/about.tsx":          "export default function About() {}\n",
	}
	for k, v := range extra {
		files[k] = v
	}
	return writeProject(t, files)
}

// testCommand returns a command with the analysis flags and the given flags set.
func testCommand(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addAnalysisFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "")
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("Failed to set --%s: %v", name, err)
		}
	}
	return cmd
}
