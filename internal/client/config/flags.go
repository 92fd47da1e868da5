package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     base URL of the auth server
//	-r duration   redirect delay after a failed session check
//	-t duration   HTTP request timeout
//	-f string     path of the local session database
//	-p bool       fast path on/off (use -p=false to disable)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-t", "-f", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the auth server")
	fs.DurationVar(&cfg.RedirectDelay, "r", cfg.RedirectDelay, "redirect delay after a failed session check")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "HTTP request timeout")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "local session database file")
	fs.BoolVar(&cfg.FastPath, "p", cfg.FastPath, "skip verification when no local session exists")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
