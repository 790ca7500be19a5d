package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gymtracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the external auth provider
//	-k string   API key of the external auth provider
//	-d string   SQLite DSN for local storage
//	-t int      provider HTTP timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-k", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ProviderBaseURL, "u", cfg.ProviderBaseURL, "base URL of the external auth provider")
	fs.StringVar(&cfg.ProviderAPIKey, "k", cfg.ProviderAPIKey, "API key of the external auth provider")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite DSN for local storage")
	httpTimeout := fs.Int("t", int(cfg.HTTPTimeout.Seconds()), "provider HTTP timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HTTPTimeout = time.Duration(*httpTimeout) * time.Second
}
