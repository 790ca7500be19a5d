// Package config loads runtime configuration for the GymTracker stub
// server. Sources and precedence: defaults, then environment, then flags.
package config

import (
	"flag"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/gymtracker/internal/flagx"
)

// Config holds runtime settings for the stub server.
type Config struct {
	Address string `env:"GYMTRACKER_SERVER_ADDRESS"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Address = ":8080"
}

// parseEnv overlays Config with values from the process environment.
func parseEnv(cfg *Config) {
	var ec Config
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}
	if ec.Address != "" {
		cfg.Address = ec.Address
	}
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   address and port to listen on
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.Address, "a", cfg.Address, "address and port to listen on")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
