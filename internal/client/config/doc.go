// Package config loads runtime configuration for the gophauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations are timex.Duration values, so "1s" and 1000000000 are equivalent:
//
//	{
//	  "server_url": "http://localhost:4000",
//	  "redirect_delay": "1s",
//	  "request_timeout": "5s",
//	  "database_path": "session.db",
//	  "fast_path": true
//	}
package config
