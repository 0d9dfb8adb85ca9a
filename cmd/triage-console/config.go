package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
)

type Config struct {
	ConfigPath string
	Model      string
	AuditDB    string
	APIKey     string
	Seed       int64
	Verbose    bool
}

func defaultConfig() Config {
	return Config{
		Model: "",
		Seed:  0,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.ConfigPath, "config", "", "Optional YAML config file (keywords, scripts, resources, model)")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model override for the classifier (default: config file value)")
	fs.StringVar(&cfg.AuditDB, "audit-db", "", "Optional SQLite audit log path (overrides config file)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Sensor simulation seed (0 = derive from clock)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Log classifier fallbacks and audit warnings to stderr")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.ConfigPath != "" {
		cfg.ConfigPath = filepath.Clean(cfg.ConfigPath)
	}
	if cfg.AuditDB != "" {
		cfg.AuditDB = filepath.Clean(cfg.AuditDB)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Seed < 0 {
		return errors.New("seed must be >= 0")
	}
	return nil
}
