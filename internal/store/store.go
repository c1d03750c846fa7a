// Package store archives computed session reports in SQLite so sessions can
// be compared across nights without re-parsing the logs.
package store

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/lox/sessionstats/internal/stats"
)

// Store provides SQLite-based persistence for session reports.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens (or creates) the report database at path.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps concurrent readers (e.g. sqlite3 shell) from blocking saves.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Debug().Str("path", path).Msg("report store opened")
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		entries INTEGER NOT NULL,
		hands INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS player_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		player TEXT NOT NULL,
		hands_dealt INTEGER NOT NULL,
		vpip_hands INTEGER NOT NULL,
		vpip_percentage REAL NOT NULL,
		buy_ins REAL NOT NULL,
		admin_adjustments REAL NOT NULL,
		final_stack REAL NOT NULL,
		cash_outs REAL NOT NULL,
		actual_profit REAL NOT NULL,
		estimated_profit REAL NOT NULL,
		total_put_in_pot REAL NOT NULL,
		total_winnings REAL NOT NULL,
		wins INTEGER NOT NULL,
		top_hand_type TEXT NOT NULL,
		top_hand_type_count INTEGER NOT NULL,
		second_hand_type TEXT NOT NULL,
		second_hand_type_count INTEGER NOT NULL,
		top_betting_phase TEXT NOT NULL,
		top_betting_amount REAL NOT NULL,
		second_betting_phase TEXT NOT NULL,
		second_betting_amount REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_player_reports_session ON player_reports(session_id);
	CREATE INDEX IF NOT EXISTS idx_player_reports_player ON player_reports(player);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSession stores one session row plus a report row per player and returns
// the generated session id.
func (s *Store) SaveSession(source string, entries, hands int, reports map[string]*stats.PlayerReport) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO sessions (id, source, entries, hands, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, source, entries, hands, time.Now().UTC(),
	); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO player_reports (
		session_id, player, hands_dealt, vpip_hands, vpip_percentage,
		buy_ins, admin_adjustments, final_stack, cash_outs,
		actual_profit, estimated_profit, total_put_in_pot, total_winnings, wins,
		top_hand_type, top_hand_type_count, second_hand_type, second_hand_type_count,
		top_betting_phase, top_betting_amount, second_betting_phase, second_betting_amount
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, player := range sortedPlayers(reports) {
		p := reports[player]
		if _, err := stmt.Exec(
			id, p.Player, p.HandsDealt, p.VPIPHands, p.VPIPPercentage,
			p.BuyIns, p.AdminAdjustments, p.FinalStack, p.CashOuts,
			p.ActualProfit, p.EstimatedProfit, p.TotalPutInPot, p.TotalWinnings, p.Wins,
			p.TopHandType, p.TopHandTypeCount, p.SecondHandType, p.SecondHandTypeCount,
			p.TopPhase, p.TopPhaseAmount, p.SecondPhase, p.SecondPhaseAmount,
		); err != nil {
			return "", fmt.Errorf("insert report for %s: %w", p.Player, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	s.logger.Info().
		Str("session_id", id).
		Int("players", len(reports)).
		Msg("session report saved")

	return id, nil
}

// PlayerHistory returns saved reports for one player across sessions, newest
// first.
func (s *Store) PlayerHistory(player string, limit int) ([]*stats.PlayerReport, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT p.player, p.hands_dealt, p.vpip_hands, p.vpip_percentage,
		       p.buy_ins, p.admin_adjustments, p.final_stack, p.cash_outs,
		       p.actual_profit, p.estimated_profit, p.total_put_in_pot, p.total_winnings, p.wins,
		       p.top_hand_type, p.top_hand_type_count, p.second_hand_type, p.second_hand_type_count,
		       p.top_betting_phase, p.top_betting_amount, p.second_betting_phase, p.second_betting_amount
		FROM player_reports p
		JOIN sessions s ON s.id = p.session_id
		WHERE p.player = ?
		ORDER BY s.created_at DESC
		LIMIT ?`, player, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []*stats.PlayerReport
	for rows.Next() {
		var p stats.PlayerReport
		if err := rows.Scan(
			&p.Player, &p.HandsDealt, &p.VPIPHands, &p.VPIPPercentage,
			&p.BuyIns, &p.AdminAdjustments, &p.FinalStack, &p.CashOuts,
			&p.ActualProfit, &p.EstimatedProfit, &p.TotalPutInPot, &p.TotalWinnings, &p.Wins,
			&p.TopHandType, &p.TopHandTypeCount, &p.SecondHandType, &p.SecondHandTypeCount,
			&p.TopPhase, &p.TopPhaseAmount, &p.SecondPhase, &p.SecondPhaseAmount,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func sortedPlayers(reports map[string]*stats.PlayerReport) []string {
	players := make([]string, 0, len(reports))
	for player := range reports {
		players = append(players, player)
	}
	sort.Strings(players)
	return players
}
