package config

import "time"

// DefaultConfig returns sensible defaults for all configuration.
func DefaultConfig() Config {
	return Config{
		Close: CloseConfig{
			DefaultComment: "",
		},
		Fetch: FetchConfig{
			AutoCheckout: false,
			AutoUpdate:   false,
		},
		Git: GitConfig{
			Timeout: 10 * time.Second,
		},
		Merge: MergeConfig{
			AutoClose: true,
		},
		Submit: SubmitConfig{
			OpenBrowser: true,
		},
		Update: UpdateConfig{
			Method:  UpdateMerge,
			WorkDir: "",
		},
	}
}
