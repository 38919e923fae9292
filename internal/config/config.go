// Package config collects runtime settings from flags and the environment.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds runtime settings.
type Config struct {
	DBPath          string
	Addr            string
	LogPath         string
	Model           string
	AnalysisTimeout time.Duration
	DefaultMartName string

	// EnvAPIKey is used for analysis when no key has been saved in the app.
	EnvAPIKey string
}

// Defaults.
const (
	DefaultDBPath          = "cenik.sqlite3"
	DefaultAddr            = "127.0.0.1:8080"
	DefaultModel           = "gemini-2.5-flash"
	DefaultAnalysisTimeout = 60 * time.Second
	DefaultMartName        = "Naver Store"
)

// Usage is printed for -h.
const Usage = `Usage: cenik [flags] [serve|key|reset]

Commands:
  serve                   run the local API (default)
  key                     save the Gemini API key (read from the terminal)
  key -clear              remove the saved API key
  reset                   delete all marts, prices and settings

Flags:
  -d, -db <path>          SQLite database path (default: cenik.sqlite3, env CENIK_DB)
  -a, -addr <host:port>   listen address (default: 127.0.0.1:8080, env CENIK_ADDR)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -m, -model <name>       Gemini model (default: gemini-2.5-flash, env CENIK_MODEL)
  -t, -timeout <dur>      analysis timeout (default: 60s)
  -h, -help               show this help and exit

Environment:
  GEMINI_API_KEY          API key used when none is saved
`

// Load parses args (without the program name) on top of environment
// defaults. It returns the remaining positional arguments.
func Load(args []string, getenv func(string) string) (*Config, []string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := &Config{
		DBPath:          envOr(getenv, "CENIK_DB", DefaultDBPath),
		Addr:            envOr(getenv, "CENIK_ADDR", DefaultAddr),
		Model:           envOr(getenv, "CENIK_MODEL", DefaultModel),
		AnalysisTimeout: DefaultAnalysisTimeout,
		DefaultMartName: DefaultMartName,
		EnvAPIKey:       getenv("GEMINI_API_KEY"),
	}

	fs := flag.NewFlagSet("cenik", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")
	fs.StringVar(&cfg.LogPath, "log", "", "")
	fs.StringVar(&cfg.LogPath, "l", "", "")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "")
	fs.StringVar(&cfg.Model, "m", cfg.Model, "")
	fs.DurationVar(&cfg.AnalysisTimeout, "timeout", cfg.AnalysisTimeout, "")
	fs.DurationVar(&cfg.AnalysisTimeout, "t", cfg.AnalysisTimeout, "")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if cfg.AnalysisTimeout <= 0 {
		return nil, nil, fmt.Errorf("timeout must be positive, got %s", cfg.AnalysisTimeout)
	}
	if cfg.DBPath == "" {
		return nil, nil, fmt.Errorf("database path required")
	}

	return cfg, fs.Args(), nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
