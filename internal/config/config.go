// Package config loads the optional analyzer configuration from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete analyzer configuration. Both blocks are optional in
// the file; missing blocks take defaults.
type Config struct {
	Report *ReportSettings `hcl:"report,block"`
	Store  *StoreSettings  `hcl:"store,block"`
}

// ReportSettings controls how the console report is built.
type ReportSettings struct {
	// SortBy orders the report rows: vpip, profit or hands.
	SortBy string `hcl:"sort_by,optional"`
	// MinHands hides players dealt fewer hands than this.
	MinHands int `hcl:"min_hands,optional"`
	// Currency is the symbol prefixed to money columns.
	Currency string `hcl:"currency,optional"`
}

// StoreSettings controls the optional SQLite report archive.
type StoreSettings struct {
	Path string `hcl:"path,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Report: &ReportSettings{
			SortBy:   "vpip",
			Currency: "$",
		},
		Store: &StoreSettings{
			Path: "sessions.db",
		},
	}
}

// Load reads configuration from an HCL file, falling back to defaults when
// the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Report == nil {
		cfg.Report = &ReportSettings{}
	}
	if cfg.Store == nil {
		cfg.Store = &StoreSettings{}
	}
	if cfg.Report.SortBy == "" {
		cfg.Report.SortBy = "vpip"
	}
	if cfg.Report.Currency == "" {
		cfg.Report.Currency = "$"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "sessions.db"
	}

	return &cfg, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	switch c.Report.SortBy {
	case "vpip", "profit", "hands":
	default:
		return fmt.Errorf("invalid sort_by: %s", c.Report.SortBy)
	}
	if c.Report.MinHands < 0 {
		return fmt.Errorf("min_hands must not be negative")
	}
	return nil
}
