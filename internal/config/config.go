package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// UpdateMethod selects how pull-request branches are brought up to date with
// the main branch.
type UpdateMethod string

const (
	UpdateMerge  UpdateMethod = "merge"
	UpdateRebase UpdateMethod = "rebase"
)

func (m UpdateMethod) String() string {
	return string(m)
}

// IsValid reports whether m is a recognized update method.
func (m UpdateMethod) IsValid() bool {
	return m == UpdateMerge || m == UpdateRebase
}

// UnmarshalText implements encoding.TextUnmarshaler so invalid values fail at
// decode time instead of propagating a bad string.
func (m *UpdateMethod) UnmarshalText(text []byte) error {
	v := UpdateMethod(text)
	if !v.IsValid() {
		return fmt.Errorf("invalid update method %q (expected %q or %q)", string(text), UpdateMerge, UpdateRebase)
	}
	*m = v
	return nil
}

// Config represents the complete gitpr configuration.
type Config struct {
	Close  CloseConfig  `toml:"close"`
	Fetch  FetchConfig  `toml:"fetch"`
	Git    GitConfig    `toml:"git"`
	GitHub GitHubConfig `toml:"github"`
	Merge  MergeConfig  `toml:"merge"`
	Submit SubmitConfig `toml:"submit"`
	Update UpdateConfig `toml:"update"`
}

// Validate checks that all config values are valid.
// Returns an error describing the first invalid value found.
func (c Config) Validate() error {
	if !c.Update.Method.IsValid() {
		return fmt.Errorf("update.method must be %q or %q, got %q", UpdateMerge, UpdateRebase, c.Update.Method)
	}
	if c.Update.WorkDir != "" && !filepath.IsAbs(c.Update.WorkDir) {
		return errors.New("update.work_dir must be an absolute path")
	}
	if c.Git.Timeout <= 0 {
		// A zero timeout would make context.WithTimeout expire every git
		// query immediately.
		return errors.New("git.timeout must be positive")
	}
	return nil
}

// CloseConfig configures the close command.
type CloseConfig struct {
	// DefaultComment is posted when close is invoked without a comment.
	DefaultComment string `toml:"default_comment"`
}

// FetchConfig configures the fetch command.
type FetchConfig struct {
	AutoCheckout bool `toml:"auto_checkout"` // checkout the branch after fetching
	AutoUpdate   bool `toml:"auto_update"`   // update the branch after fetching (implies checkout)
}

// GitConfig configures git command execution.
type GitConfig struct {
	Timeout time.Duration `toml:"timeout"` // Timeout for non-interactive git commands (e.g., "5s")
}

// GitHubConfig identifies the repositories and credential used for API calls.
// These are typically sourced from git config (github.repo, github.user,
// github.token, github.reviewer) rather than a gitpr.toml file.
type GitHubConfig struct {
	Repo     string `toml:"repo"`     // "owner/name" of the working repository
	Reviewer string `toml:"reviewer"` // owner pull requests are submitted to
	Token    string `toml:"token"`    // API token; GITHUB_TOKEN overrides
	User     string `toml:"user"`     // login owning the origin remote
}

// MergeConfig configures the merge command.
type MergeConfig struct {
	// AutoClose closes the remote pull request after a local merge.
	AutoClose bool `toml:"auto_close"`
}

// SubmitConfig configures the submit command.
type SubmitConfig struct {
	// OpenBrowser opens the created pull request in the browser.
	OpenBrowser bool `toml:"open_browser"`
}

// UpdateConfig configures the update state machine.
type UpdateConfig struct {
	Method UpdateMethod `toml:"method"`
	// WorkDir is an optional secondary checkout used to run updates without
	// disturbing the primary working tree. It is hard reset before every
	// update, so it must not hold any work besides conflict resolution.
	WorkDir string `toml:"work_dir"`
}
