// Package csvlog loads session log exports: CSV files with at least an
// "order" and an "entry" column. It is the input boundary for the analyzer;
// everything past it works on session.RawEntry values.
package csvlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lox/sessionstats/internal/session"
)

// Loader reads log entries from CSV. Rows that cannot be interpreted are
// skipped; only a missing file or a missing required column is fatal.
type Loader struct {
	logger zerolog.Logger
}

func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger}
}

// LoadFile reads a CSV log from disk.
func (l *Loader) LoadFile(path string) ([]session.RawEntry, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	entries, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Load reads a CSV log from a reader. The header row locates the "order" and
// "entry" columns case-insensitively; extra columns are ignored. Exports often
// arrive in reverse chronological order, so no ordering is assumed here.
func (l *Loader) Load(r io.Reader) ([]session.RawEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	orderCol, entryCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "order":
			orderCol = i
		case "entry":
			entryCol = i
		}
	}
	if orderCol < 0 || entryCol < 0 {
		return nil, fmt.Errorf("header missing order/entry columns: %v", header)
	}

	var entries []session.RawEntry
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, not a malformed file.
			skipped++
			continue
		}
		if orderCol >= len(record) || entryCol >= len(record) {
			skipped++
			continue
		}
		order, err := strconv.Atoi(strings.TrimSpace(record[orderCol]))
		if err != nil {
			skipped++
			continue
		}
		entries = append(entries, session.RawEntry{
			Order: order,
			Entry: record[entryCol],
		})
	}

	if skipped > 0 {
		l.logger.Warn().Int("skipped", skipped).Msg("skipped unreadable log rows")
	}
	l.logger.Info().Int("entries", len(entries)).Msg("log loaded")

	return entries, nil
}
