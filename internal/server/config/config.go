// Package config handles configuration for the authentication server:
// defaults, a JSON overlay, .env / environment variables and command-line
// flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// CookieConfig controls the attributes of the token cookie.
//
// SameSite is one of "lax", "strict" or "none"; "none" always forces Secure
// because browsers reject SameSite=None cookies without it.
type CookieConfig struct {
	HTTPOnly bool
	Secure   bool
	SameSite string
}

// Config holds runtime settings for the server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: postgres:// URL (pgx) or sqlite:/file: path (modernc sqlite).
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required, never logged.
//   - TokenValidityDuration: lifetime of issued tokens and of the cookie.
//   - BcryptCost: work factor for password hashes.
//   - CORSAllowedOrigins: browser origins allowed to send credentials.
//   - Cookie: token cookie attributes.
//   - LogLevel / GinMode: logging verbosity and gin runtime mode.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	BcryptCost            int
	CORSAllowedOrigins    []string
	Cookie                CookieConfig
	LogLevel              string
	GinMode               string
	ShutdownTimeout       time.Duration
}

// LoadDefaults populates Config with development defaults. SecretKey has no
// default and must be configured.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":4000"
	c.DatabaseDSN = "sqlite:gophauth.db"
	c.SecretKey = ""
	c.TokenValidityDuration = 72 * time.Hour
	c.BcryptCost = 12
	c.CORSAllowedOrigins = []string{"http://localhost:3000"}
	c.Cookie = CookieConfig{HTTPOnly: true, Secure: true, SameSite: "lax"}
	c.LogLevel = "info"
	c.GinMode = "release"
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, then the optional JSON file
// (-c/-config), then .env and the environment, then command-line flags.
// Later sources override earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports the first setting that would make the server unsafe or
// unable to start.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key is required (TOKEN_KEY or -s)")
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("token validity must be positive, got %s", c.TokenValidityDuration)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be within [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if _, err := c.Cookie.SameSiteMode(); err != nil {
		return err
	}
	if c.DatabaseDSN == "" {
		return errors.New("database DSN is required")
	}
	return nil
}

// SameSiteMode converts the configured SameSite name to http.SameSite.
func (c CookieConfig) SameSiteMode() (http.SameSite, error) {
	switch strings.ToLower(c.SameSite) {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return http.SameSiteDefaultMode, fmt.Errorf("unknown cookie SameSite %q (want lax, strict or none)", c.SameSite)
	}
}
