package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/sessionstats/cmd/sessionstats/shared"
	"github.com/lox/sessionstats/internal/config"
	"github.com/lox/sessionstats/internal/csvlog"
	"github.com/lox/sessionstats/internal/report"
	"github.com/lox/sessionstats/internal/session"
	"github.com/lox/sessionstats/internal/stats"
	"github.com/lox/sessionstats/internal/store"
)

// AnalyzeCmd parses a session log and prints the per-player report.
type AnalyzeCmd struct {
	File           string `arg:"" name:"file" help:"Path to the session log CSV"`
	Config         string `kong:"default='sessionstats.hcl',help='Path to HCL config file (defaults apply when absent)'"`
	JSON           bool   `kong:"help='Emit the report mapping as JSON instead of tables'"`
	Save           bool   `kong:"help='Archive the report in the SQLite store'"`
	DB             string `kong:"help='Override the store path from config'"`
	SortBy         string `kong:"help='Sort report rows by vpip, profit or hands (overrides config)'"`
	MinHands       int    `kong:"default='-1',help='Hide players dealt fewer hands (overrides config)'"`
	Debug          bool   `kong:"help='Enable debug logging'"`
	StructuredLogs bool   `kong:"help='Emit JSON logs instead of console output'"`
}

func (c *AnalyzeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	if c.StructuredLogs {
		logger = shared.SetupStructuredLogger(c.Debug)
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.SortBy != "" {
		cfg.Report.SortBy = c.SortBy
	}
	if c.MinHands >= 0 {
		cfg.Report.MinHands = c.MinHands
	}
	if c.DB != "" {
		cfg.Store.Path = c.DB
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	entries, err := csvlog.NewLoader(logger).LoadFile(c.File)
	if err != nil {
		return err
	}

	parsed := session.NewParser(logger).Process(entries)
	reports := stats.Aggregate(parsed)

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		report.NewRenderer(os.Stdout, report.Options{
			SortBy:   cfg.Report.SortBy,
			MinHands: cfg.Report.MinHands,
			Currency: cfg.Report.Currency,
		}).Render(reports)
	}

	if c.Save {
		db, err := store.Open(cfg.Store.Path, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := db.SaveSession(c.File, len(entries), len(parsed.Hands), reports)
		if err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		logger.Info().Str("session_id", id).Str("db", cfg.Store.Path).Msg("report archived")
	}

	return nil
}
