// Package handexport serializes reconstructed hands as a sectioned TOML
// document, one table per hand, so parsed sessions can be archived and diffed.
package handexport

import (
	"fmt"

	"github.com/lox/sessionstats/internal/session"
)

// Hand is the export representation of one reconstructed hand.
type Hand struct {
	Number  int      `toml:"number"`
	Players []string `toml:"players"`
	Actions []string `toml:"actions"`
	Winners []Winner `toml:"winners,omitempty"`
}

// Winner is one pot award inside an exported hand.
type Winner struct {
	Player   string  `toml:"player"`
	Amount   float64 `toml:"amount"`
	HandType string  `toml:"hand_type"`
}

// FromHand converts a parsed hand into its export form. Actions keep the
// original log text, prefixed with the betting phase they were observed in.
func FromHand(h *session.Hand) Hand {
	out := Hand{
		Number:  h.Number,
		Players: append([]string(nil), h.PlayersDealt...),
	}
	for _, action := range h.Actions {
		out.Actions = append(out.Actions, fmt.Sprintf("%s: %s", action.Phase, action.Raw))
	}
	for _, w := range h.Winners {
		out.Winners = append(out.Winners, Winner{
			Player:   w.Player,
			Amount:   w.Amount,
			HandType: w.HandType,
		})
	}
	return out
}
