package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations accept
// "72h"-style strings or integer nanoseconds. Pointer fields distinguish
// "absent" from "false".
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost"`
	CORSAllowedOrigins    []string       `json:"cors_allowed_origins"`
	CookieHTTPOnly        *bool          `json:"cookie_http_only"`
	CookieSecure          *bool          `json:"cookie_secure"`
	CookieSameSite        string         `json:"cookie_same_site"`
	LogLevel              string         `json:"log_level"`
	GinMode               string         `json:"gin_mode"`
	ShutdownTimeout       timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays config with the file named by -c/-config. Keys missing
// from the file keep their current values. Read or decode errors panic,
// since the server cannot start from a broken config file.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.CookieHTTPOnly != nil {
		config.Cookie.HTTPOnly = *c.CookieHTTPOnly
	}
	if c.CookieSecure != nil {
		config.Cookie.Secure = *c.CookieSecure
	}
	if c.CookieSameSite != "" {
		config.Cookie.SameSite = c.CookieSameSite
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.GinMode != "" {
		config.GinMode = c.GinMode
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
