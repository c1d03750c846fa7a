package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sessionstats/internal/stats"
)

func testReports() map[string]*stats.PlayerReport {
	return map[string]*stats.PlayerReport{
		"Greg": {
			Player:         "Greg",
			HandsDealt:     40,
			VPIPHands:      10,
			VPIPPercentage: 25,
			ActualProfit:   120.50,
			TopHandType:    "Two Pair",
			SecondHandType: "No wins",
			TopPhase:       "flop",
			SecondPhase:    "None",
		},
		"Tobi": {
			Player:         "Tobi",
			HandsDealt:     40,
			VPIPHands:      24,
			VPIPPercentage: 60,
			ActualProfit:   -120.50,
			TopHandType:    "No wins",
			SecondHandType: "No wins",
			TopPhase:       "None",
			SecondPhase:    "None",
		},
		"Shorty": {
			Player:         "Shorty",
			HandsDealt:     3,
			VPIPPercentage: 100,
		},
	}
}

func TestRenderSections(t *testing.T) {
	var buf strings.Builder
	NewRenderer(&buf, Options{}).Render(testReports())

	out := buf.String()
	assert.Contains(t, out, "POKER SESSION REPORT")
	assert.Contains(t, out, "HAND TYPES WON")
	assert.Contains(t, out, "BETTING PHASES")
	assert.Contains(t, out, "Greg")
	assert.Contains(t, out, "Two Pair")
	assert.Contains(t, out, "$120.50")
	assert.Contains(t, out, "$-120.50")
}

func TestRenderSortsByVPIPDescending(t *testing.T) {
	var buf strings.Builder
	NewRenderer(&buf, Options{SortBy: "vpip"}).Render(testReports())

	out := buf.String()
	require.Less(t, strings.Index(out, "Shorty"), strings.Index(out, "Tobi"))
	require.Less(t, strings.Index(out, "Tobi"), strings.Index(out, "Greg"))
}

func TestRenderSortsByProfit(t *testing.T) {
	var buf strings.Builder
	NewRenderer(&buf, Options{SortBy: "profit"}).Render(testReports())

	out := buf.String()
	require.Less(t, strings.Index(out, "Greg"), strings.Index(out, "Shorty"))
	require.Less(t, strings.Index(out, "Shorty"), strings.Index(out, "Tobi"))
}

func TestRenderMinHandsFilter(t *testing.T) {
	var buf strings.Builder
	NewRenderer(&buf, Options{MinHands: 10}).Render(testReports())

	out := buf.String()
	assert.Contains(t, out, "Greg")
	assert.NotContains(t, out, "Shorty")
}

func TestRenderCurrencyOverride(t *testing.T) {
	var buf strings.Builder
	NewRenderer(&buf, Options{Currency: "€"}).Render(testReports())

	assert.Contains(t, buf.String(), "€120.50")
	assert.NotContains(t, buf.String(), "$120.50")
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "short", trim("short", 10))
	long := strings.Repeat("x", 40)
	trimmed := trim(long, 28)
	assert.True(t, strings.HasSuffix(trimmed, "…"))
	assert.Len(t, []rune(trimmed), 28)
}
