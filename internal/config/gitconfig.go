package config

import (
	"fmt"
	"strings"
	"time"
)

// Git-config keys recognized under the pull-request.* and github.* sections.
// These take precedence over gitpr.toml values, matching the tool's original
// configuration source of truth.
const (
	keyCloseDefaultComment = "pull-request.close-default-comment"
	keyFetchAutoCheckout   = "pull-request.fetch-auto-checkout"
	keyFetchAutoUpdate     = "pull-request.fetch-auto-update"
	keyGitTimeout          = "pull-request.git-timeout"
	keyMergeAutoClose      = "pull-request.merge-auto-close"
	keySubmitOpenBrowser   = "pull-request.submit-open-browser"
	keyUpdateMethod        = "pull-request.update-method"
	keyWorkDir             = "pull-request.work-dir"

	keyGitHubRepo     = "github.repo"
	keyGitHubReviewer = "github.reviewer"
	keyGitHubToken    = "github.token"
	keyGitHubUser     = "github.user"
)

// applyGitValues overlays git-config entries onto cfg. Unrecognized
// pull-request.* keys fail fast rather than being silently ignored.
func applyGitValues(cfg *Config, values map[string]string) error {
	for key, value := range values {
		switch key {
		case keyCloseDefaultComment:
			cfg.Close.DefaultComment = normalize(value)
		case keyFetchAutoCheckout:
			b, err := parseBool(key, value)
			if err != nil {
				return err
			}
			cfg.Fetch.AutoCheckout = b
		case keyFetchAutoUpdate:
			b, err := parseBool(key, value)
			if err != nil {
				return err
			}
			cfg.Fetch.AutoUpdate = b
		case keyGitTimeout:
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			cfg.Git.Timeout = d
		case keyMergeAutoClose:
			b, err := parseBool(key, value)
			if err != nil {
				return err
			}
			cfg.Merge.AutoClose = b
		case keySubmitOpenBrowser:
			b, err := parseBool(key, value)
			if err != nil {
				return err
			}
			cfg.Submit.OpenBrowser = b
		case keyUpdateMethod:
			if err := cfg.Update.Method.UnmarshalText([]byte(value)); err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
		case keyWorkDir:
			cfg.Update.WorkDir = normalize(value)
		case keyGitHubRepo:
			cfg.GitHub.Repo = value
		case keyGitHubReviewer:
			cfg.GitHub.Reviewer = value
		case keyGitHubToken:
			cfg.GitHub.Token = value
		case keyGitHubUser:
			cfg.GitHub.User = value
		default:
			if strings.HasPrefix(key, "pull-request.") {
				return fmt.Errorf("unknown config key %s", key)
			}
			// Other github.* keys belong to other tools; ignore them.
		}
	}
	return nil
}

// parseBool accepts the value spellings the original tool recognized.
func parseBool(key, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "t", "true", "yes", "1":
		return true, nil
	case "f", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean for %s: %q", key, value)
}

// normalize maps the historic "unset" spellings to the empty string.
func normalize(value string) string {
	switch strings.ToLower(value) {
	case "", "none", "null", "nil":
		return ""
	}
	return value
}
