package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig lists the environment variables the server understands. Only
// variables that are set override the config; pointers mark optional bools.
type EnvConfig struct {
	Port                  string        `env:"PORT"`
	DatabaseDSN           string        `env:"DATABASE_DSN"`
	SecretKey             string        `env:"TOKEN_KEY"`
	TokenValidityDuration time.Duration `env:"TOKEN_TTL"`
	BcryptCost            int           `env:"BCRYPT_COST"`
	CORSAllowedOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	CookieHTTPOnly        *bool         `env:"COOKIE_HTTP_ONLY"`
	CookieSecure          *bool         `env:"COOKIE_SECURE"`
	CookieSameSite        string        `env:"COOKIE_SAMESITE"`
	LogLevel              string        `env:"LOG_LEVEL"`
	GinMode               string        `env:"GIN_MODE"`
}

// envFile is the dotenv file looked up in the working directory and its parent.
var envFile = ".env"

// parseEnv loads envFile (without overriding variables already set) and
// overlays config with the environment. A malformed variable panics.
func parseEnv(config *Config) {
	loadEnvFile()

	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		panic(err)
	}
	e.apply(config)
}

func loadEnvFile() {
	if err := godotenv.Load(envFile); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}
	_ = godotenv.Load(filepath.Join(parent, envFile))
}

func (e *EnvConfig) apply(config *Config) {
	if e.Port != "" {
		config.EndpointAddrHTTP = ":" + e.Port
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.TokenValidityDuration != 0 {
		config.TokenValidityDuration = e.TokenValidityDuration
	}
	if e.BcryptCost != 0 {
		config.BcryptCost = e.BcryptCost
	}
	if len(e.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = e.CORSAllowedOrigins
	}
	if e.CookieHTTPOnly != nil {
		config.Cookie.HTTPOnly = *e.CookieHTTPOnly
	}
	if e.CookieSecure != nil {
		config.Cookie.Secure = *e.CookieSecure
	}
	if e.CookieSameSite != "" {
		config.Cookie.SameSite = e.CookieSameSite
	}
	if e.LogLevel != "" {
		config.LogLevel = e.LogLevel
	}
	if e.GinMode != "" {
		config.GinMode = e.GinMode
	}
}
