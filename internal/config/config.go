package config

import "time"

// Config represents the application configuration
type Config struct {
	Gmail    GmailConfig    `toml:"gmail"`
	Database DatabaseConfig `toml:"database"`
	Sync     SyncConfig     `toml:"sync"`
	Fetch    FetchConfig    `toml:"fetch"`
	Web      WebConfig      `toml:"web"`
}

// GmailConfig contains Gmail-specific settings
type GmailConfig struct {
	CredentialsPath string `toml:"credentials_path"`
	TokenPath       string `toml:"token_path"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// SyncConfig controls which newsletters get pulled and how many
type SyncConfig struct {
	Query      string `toml:"query"`
	MaxResults int    `toml:"max_results"`
}

// FetchConfig controls outbound HTTP requests to recipe sites
type FetchConfig struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	UserAgent      string `toml:"user_agent"`
}

// Timeout returns the fetch timeout as a duration
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// WebConfig contains settings for the local web UI
type WebConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Gmail: GmailConfig{
			CredentialsPath: "~/.config/recipebox/credentials.json",
			TokenPath:       "~/.config/recipebox/token.json",
		},
		Database: DatabaseConfig{
			Path: "~/.local/share/recipebox/recipebox.db",
		},
		Sync: SyncConfig{
			Query:      `(skinnytaste OR "The Lost Kitchen")`,
			MaxResults: 50,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 15,
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Web: WebConfig{
			ListenAddr: "localhost:8750",
		},
	}
}
