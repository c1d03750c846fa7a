package store

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sessionstats/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReports() map[string]*stats.PlayerReport {
	return map[string]*stats.PlayerReport{
		"Greg": {
			Player:              "Greg",
			HandsDealt:          42,
			VPIPHands:           21,
			VPIPPercentage:      50,
			BuyIns:              500,
			FinalStack:          620.50,
			ActualProfit:        120.50,
			TotalPutInPot:       310,
			TotalWinnings:       430.50,
			Wins:                9,
			TopHandType:         "Two Pair",
			TopHandTypeCount:    4,
			SecondHandType:      "Flush",
			SecondHandTypeCount: 2,
			TopPhase:            "flop",
			TopPhaseAmount:      180,
			SecondPhase:         "preflop",
			SecondPhaseAmount:   90,
		},
		"Tobi": {
			Player:         "Tobi",
			HandsDealt:     42,
			TopHandType:    "No wins",
			SecondHandType: "No wins",
			TopPhase:       "None",
			SecondPhase:    "None",
		},
	}
}

func TestSaveSessionAndPlayerHistory(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SaveSession("log.csv", 900, 42, sampleReports())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	history, err := s.PlayerHistory("Greg", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)

	got := history[0]
	assert.Equal(t, "Greg", got.Player)
	assert.Equal(t, 42, got.HandsDealt)
	assert.Equal(t, 50.0, got.VPIPPercentage)
	assert.Equal(t, 120.50, got.ActualProfit)
	assert.Equal(t, "Two Pair", got.TopHandType)
	assert.Equal(t, "flop", got.TopPhase)
}

func TestPlayerHistoryAcrossSessions(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SaveSession("night1.csv", 500, 20, sampleReports())
	require.NoError(t, err)
	_, err = s.SaveSession("night2.csv", 700, 30, sampleReports())
	require.NoError(t, err)

	history, err := s.PlayerHistory("Tobi", 0)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	history, err = s.PlayerHistory("Tobi", 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestPlayerHistoryUnknownPlayer(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SaveSession("log.csv", 1, 0, sampleReports())
	require.NoError(t, err)

	history, err := s.PlayerHistory("nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestOpenCreatesSchemaIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	_, err = s.SaveSession("log.csv", 1, 0, sampleReports())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	history, err := s.PlayerHistory("Greg", 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
