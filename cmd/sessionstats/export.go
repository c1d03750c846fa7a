package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/sessionstats/cmd/sessionstats/shared"
	"github.com/lox/sessionstats/internal/csvlog"
	"github.com/lox/sessionstats/internal/handexport"
	"github.com/lox/sessionstats/internal/session"
)

// ExportCmd reconstructs hands from a session log and writes them as TOML.
type ExportCmd struct {
	File  string `arg:"" name:"file" help:"Path to the session log CSV"`
	Out   string `kong:"help='Output file (defaults to stdout)'"`
	Limit int    `kong:"help='Maximum number of hands to export (0 = all)'"`
	Debug bool   `kong:"help='Enable debug logging'"`
}

func (c *ExportCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	entries, err := csvlog.NewLoader(logger).LoadFile(c.File)
	if err != nil {
		return err
	}

	parsed := session.NewParser(logger).Process(entries)
	hands := parsed.Hands
	if c.Limit > 0 && c.Limit < len(hands) {
		hands = hands[:c.Limit]
	}
	if len(hands) == 0 {
		return fmt.Errorf("no hands found in %s", c.File)
	}

	out := os.Stdout
	if c.Out != "" {
		f, err := os.Create(filepath.Clean(c.Out))
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := handexport.Encode(out, hands); err != nil {
		return fmt.Errorf("encode hands: %w", err)
	}

	logger.Info().Int("hands", len(hands)).Msg("hands exported")
	return nil
}
