// Package report renders the per-player statistics mapping for humans. It is
// a pure presentation layer over the stats package.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/sessionstats/internal/stats"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Options controls row ordering and filtering.
type Options struct {
	// SortBy is one of vpip, profit, hands.
	SortBy string
	// MinHands hides players dealt fewer hands.
	MinHands int
	// Currency symbol for money columns.
	Currency string
}

// Renderer writes the session report tables to a writer.
type Renderer struct {
	w    io.Writer
	opts Options
}

func NewRenderer(w io.Writer, opts Options) *Renderer {
	if opts.SortBy == "" {
		opts.SortBy = "vpip"
	}
	if opts.Currency == "" {
		opts.Currency = "$"
	}
	return &Renderer{w: w, opts: opts}
}

// Render prints the session overview, hand-type and betting-phase tables.
func (r *Renderer) Render(reports map[string]*stats.PlayerReport) {
	rows := r.sortedRows(reports)

	r.title("POKER SESSION REPORT")
	r.line(headerStyle.Render(fmt.Sprintf("%-28s %6s %6s %7s %9s %9s %9s %9s %5s",
		"Player", "Hands", "VPIP", "VPIP%", "Buy-In", "Admin+", "Stack", "Profit", "Wins")))
	for _, p := range rows {
		profit := r.money(p.ActualProfit)
		switch {
		case p.ActualProfit > 0:
			profit = winStyle.Render(profit)
		case p.ActualProfit < 0:
			profit = lossStyle.Render(profit)
		}
		r.line(fmt.Sprintf("%-28s %6d %6d %6.1f%% %9s %9s %9s %9s %5d",
			trim(p.Player, 28), p.HandsDealt, p.VPIPHands, p.VPIPPercentage,
			r.money(p.BuyIns), r.money(p.AdminAdjustments), r.money(p.FinalStack),
			profit, p.Wins))
	}

	r.title("HAND TYPES WON")
	r.line(headerStyle.Render(fmt.Sprintf("%-28s %-18s %6s %-18s %6s",
		"Player", "Most Won With", "Count", "2nd Most", "Count")))
	for _, p := range rows {
		r.line(fmt.Sprintf("%-28s %-18s %6d %-18s %6d",
			trim(p.Player, 28), p.TopHandType, p.TopHandTypeCount,
			p.SecondHandType, p.SecondHandTypeCount))
	}

	r.title("BETTING PHASES")
	r.line(headerStyle.Render(fmt.Sprintf("%-28s %-10s %10s %-10s %10s",
		"Player", "Top Phase", "Amount", "2nd Phase", "Amount")))
	for _, p := range rows {
		r.line(fmt.Sprintf("%-28s %-10s %10s %-10s %10s",
			trim(p.Player, 28), p.TopPhase, r.money(p.TopPhaseAmount),
			p.SecondPhase, r.money(p.SecondPhaseAmount)))
	}

	r.line("")
	r.line(dimStyle.Render("VPIP% = hands with a voluntary preflop investment / hands dealt"))
	r.line(dimStyle.Render("Profit = final stack + cash-outs - buy-ins - admin adjustments"))
}

func (r *Renderer) sortedRows(reports map[string]*stats.PlayerReport) []*stats.PlayerReport {
	rows := make([]*stats.PlayerReport, 0, len(reports))
	for _, p := range reports {
		if p.HandsDealt < r.opts.MinHands {
			continue
		}
		rows = append(rows, p)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		switch r.opts.SortBy {
		case "profit":
			if rows[i].ActualProfit != rows[j].ActualProfit {
				return rows[i].ActualProfit > rows[j].ActualProfit
			}
		case "hands":
			if rows[i].HandsDealt != rows[j].HandsDealt {
				return rows[i].HandsDealt > rows[j].HandsDealt
			}
		default: // vpip
			if rows[i].VPIPPercentage != rows[j].VPIPPercentage {
				return rows[i].VPIPPercentage > rows[j].VPIPPercentage
			}
		}
		return rows[i].Player < rows[j].Player
	})
	return rows
}

func (r *Renderer) title(s string) {
	rule := ruleStyle.Render(strings.Repeat("─", 100))
	fmt.Fprintf(r.w, "\n%s\n%s\n%s\n", rule, titleStyle.Render(s), rule)
}

func (r *Renderer) line(s string) {
	fmt.Fprintln(r.w, s)
}

func (r *Renderer) money(v float64) string {
	return fmt.Sprintf("%s%.2f", r.opts.Currency, v)
}

func trim(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
