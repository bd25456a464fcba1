// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-tally/csvconf"
	"github.com/danielhkuo/quickly-tally/roster"
)

// ListSeparator splits multi-column values. Commas cannot appear in
// templates, so they are not used here.
const ListSeparator = "|"

var ErrInvalidLimit = errors.New("limits must be positive")

type Config struct {
	MaxIdentifierLength int `env:"TALLY_MAX_IDENTIFIER_LENGTH" envDefault:"128"`
	MaxNameLength       int `env:"TALLY_MAX_NAME_LENGTH" envDefault:"256"`
	MaxTagLength        int `env:"TALLY_MAX_TAG_LENGTH" envDefault:"64"`

	PreHeaders   []string `env:"TALLY_PRE_HEADERS" envSeparator:"|" envDefault:"Identifier"`
	PreValues    []string `env:"TALLY_PRE_VALUES" envSeparator:"|" envDefault:"{constituentID}"`
	OptionHeader string   `env:"TALLY_OPTION_HEADER" envDefault:"{option name}"`

	// Roster export special keys; empty means unset
	ExportHeader string `env:"TALLY_EXPORT_HEADER"`
	ShowTags     bool   `env:"TALLY_EXPORT_SHOW_TAGS"`
}

// ParseFlags builds a Config from flags, then environment variables, then an
// optional .env file, in that order of precedence.
func ParseFlags(args []string) (Config, error) {
	envFile := os.Getenv("TALLY_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	// Load never overrides variables that are already set
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("quickly-tally", flag.ContinueOnError)

	// Roster limits
	fs.IntVar(&cfg.MaxIdentifierLength, "max-id", cfg.MaxIdentifierLength, "Maximum identifier length in characters")
	fs.IntVar(&cfg.MaxNameLength, "max-name", cfg.MaxNameLength, "Maximum display name length in characters")
	fs.IntVar(&cfg.MaxTagLength, "max-tag", cfg.MaxTagLength, "Maximum tag length in characters")

	// CSV templates
	fs.Func("pre-headers", "Pre-header columns, separated by "+ListSeparator, func(s string) error {
		cfg.PreHeaders = strings.Split(s, ListSeparator)
		return nil
	})
	fs.Func("pre-values", "Pre-value columns, separated by "+ListSeparator, func(s string) error {
		cfg.PreValues = strings.Split(s, ListSeparator)
		return nil
	})
	fs.StringVar(&cfg.OptionHeader, "option-header", cfg.OptionHeader, "Option column header template")
	fs.StringVar(&cfg.ExportHeader, "export-header", cfg.ExportHeader, "Custom roster export header")
	fs.BoolVar(&cfg.ShowTags, "show-tags", cfg.ShowTags, "Include the tag column in roster exports")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.MaxIdentifierLength <= 0 || cfg.MaxNameLength <= 0 || cfg.MaxTagLength <= 0 {
		return Config{}, ErrInvalidLimit
	}

	return cfg, nil
}

// Limits returns the roster import limits
func (c Config) Limits() roster.Limits {
	return roster.Limits{
		MaxIdentifierLength: c.MaxIdentifierLength,
		MaxNameLength:       c.MaxNameLength,
		MaxTagLength:        c.MaxTagLength,
	}
}

// CSVConfiguration validates the templates and builds the configuration.
func (c Config) CSVConfiguration() (*csvconf.Configuration, error) {
	specialKeys := make(map[string]string)
	if c.ExportHeader != "" {
		specialKeys[csvconf.KeyExportHeader] = c.ExportHeader
	}
	if c.ShowTags {
		specialKeys[csvconf.KeyExportShowTags] = "1"
	}

	cfg, err := csvconf.New(c.PreHeaders, c.PreValues, c.OptionHeader, specialKeys)
	if err != nil {
		return nil, fmt.Errorf("csv configuration: %w", err)
	}
	return cfg, nil
}
