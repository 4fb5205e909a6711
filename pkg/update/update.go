// Package update checks GitHub for newer routemap releases.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/routemap/internal/version"
)

// Constants for the update check
const (
	GitHubOwner   = "abdul-hamid-achik"
	GitHubRepo    = "routemap"
	DefaultAPIURL = "https://api.github.com"
	CheckInterval = 24 * time.Hour
)

// ReleaseInfo represents a GitHub release
type ReleaseInfo struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

// Checker looks up the latest release
type Checker struct {
	CurrentVersion    string
	IncludePrerelease bool
	// APIURL is the GitHub API base URL
	APIURL string
	// CacheDir holds the last check timestamp
	CacheDir string
	client   *http.Client
}

// NewChecker creates a Checker for the running binary
func NewChecker() *Checker {
	cacheDir := filepath.Join(os.TempDir(), "routemap")
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "routemap")
	}
	return &Checker{
		CurrentVersion: version.GetVersion(),
		APIURL:         DefaultAPIURL,
		CacheDir:       cacheDir,
		client:         &http.Client{Timeout: 10 * time.Second},
	}
}

// Check returns the latest suitable release and whether it is newer than
// the current version.
func (c *Checker) Check(ctx context.Context) (*ReleaseInfo, bool, error) {
	releases, err := c.fetchReleases(ctx)
	if err != nil {
		return nil, false, err
	}

	var latest *ReleaseInfo
	for i := range releases {
		r := &releases[i]
		if r.Draft || (r.Prerelease && !c.IncludePrerelease) {
			continue
		}
		latest = r
		break // releases are sorted newest first
	}
	if latest == nil {
		return nil, false, fmt.Errorf("no suitable releases found")
	}

	return latest, version.Compare(c.CurrentVersion, latest.TagName) < 0, nil
}

func (c *Checker) fetchReleases(ctx context.Context) ([]ReleaseInfo, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases", strings.TrimSuffix(c.APIURL, "/"), GitHubOwner, GitHubRepo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "routemap-cli/"+c.CurrentVersion)

	client := c.client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var releases []ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to parse releases: %w", err)
	}
	return releases, nil
}

// LastCheckPath returns the path to the last check timestamp file
func (c *Checker) LastCheckPath() string {
	return filepath.Join(c.CacheDir, "last_update_check")
}

// ShouldCheck reports whether CheckInterval has passed since the last check
func (c *Checker) ShouldCheck() bool {
	data, err := os.ReadFile(c.LastCheckPath())
	if err != nil {
		return true
	}

	timestamp, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return true
	}
	return time.Since(time.Unix(timestamp, 0)) > CheckInterval
}

// SaveLastCheck records the current time as the last check
func (c *Checker) SaveLastCheck() error {
	if err := os.MkdirAll(c.CacheDir, 0755); err != nil {
		return err
	}
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	return os.WriteFile(c.LastCheckPath(), []byte(timestamp), 0644)
}
