package config

import "time"

// Config holds runtime settings for the gophauth CLI.
//
// Fields:
//   - ServerURL: base URL of the auth server.
//   - RedirectDelay: pause between a failed session check and the redirect
//     to the login view.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: SQLite file holding the local session marker.
//   - FastPath: skip the verification call when no session marker exists.
type Config struct {
	ServerURL      string
	RedirectDelay  time.Duration
	RequestTimeout time.Duration
	DatabasePath   string
	FastPath       bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:4000"
	c.RedirectDelay = time.Second
	c.RequestTimeout = 5 * time.Second
	c.DatabasePath = "session.db"
	c.FastPath = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
