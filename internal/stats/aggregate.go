// Package stats turns a parsed session into per-player reports: VPIP, money
// flow, winning hand types and betting-phase distribution.
package stats

import (
	"math"

	"github.com/lox/sessionstats/internal/session"
)

// LabelCount is a ranked hand-type entry in a report.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LabelAmount is a ranked betting-phase entry in a report.
type LabelAmount struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// PlayerReport is the full per-player output record. Currency fields are
// rounded to two decimal places; accumulation happens at full precision.
type PlayerReport struct {
	Player           string  `json:"player"`
	HandsDealt       int     `json:"hands_dealt"`
	VPIPHands        int     `json:"vpip_hands"`
	VPIPPercentage   float64 `json:"vpip_percentage"`
	BuyIns           float64 `json:"buy_ins"`
	AdminAdjustments float64 `json:"admin_adjustments"`
	FinalStack       float64 `json:"final_stack"`
	CashOuts         float64 `json:"cash_outs"`
	ActualProfit     float64 `json:"actual_profit"`
	EstimatedProfit  float64 `json:"estimated_profit"`
	TotalPutInPot    float64 `json:"total_put_in_pot"`
	TotalWinnings    float64 `json:"total_winnings"`
	Wins             int     `json:"wins"`

	TopHandType         string  `json:"top_hand_type"`
	TopHandTypeCount    int     `json:"top_hand_type_count"`
	SecondHandType      string  `json:"second_hand_type"`
	SecondHandTypeCount int     `json:"second_hand_type_count"`
	TopPhase            string  `json:"top_betting_phase"`
	TopPhaseAmount      float64 `json:"top_betting_amount"`
	SecondPhase         string  `json:"second_betting_phase"`
	SecondPhaseAmount   float64 `json:"second_betting_amount"`
}

// accumulator holds full-precision per-player counters while hands are walked.
type accumulator struct {
	handsDealt    int
	vpipHands     int
	putInPot      float64
	phaseAmounts  map[session.Phase]float64
	winnings      float64
	wins          int
	handTypesWon  map[string]int
	handTypeOrder []string
}

func newAccumulator() *accumulator {
	return &accumulator{
		phaseAmounts: make(map[session.Phase]float64),
		handTypesWon: make(map[string]int),
	}
}

func (a *accumulator) recordWin(handType string, amount float64) {
	a.winnings += amount
	a.wins++
	if _, seen := a.handTypesWon[handType]; !seen {
		a.handTypeOrder = append(a.handTypeOrder, handType)
	}
	a.handTypesWon[handType]++
}

// Aggregate walks the finalized hand sequence and the session ledger and
// produces one report per player. A player appearing only in the ledger (for
// example, bought in but never dealt) still gets a report.
func Aggregate(s *session.Session) map[string]*PlayerReport {
	accs := make(map[string]*accumulator)
	acc := func(player string) *accumulator {
		a, ok := accs[player]
		if !ok {
			a = newAccumulator()
			accs[player] = a
		}
		return a
	}

	for i := range s.Hands {
		hand := &s.Hands[i]

		for _, player := range hand.PlayersDealt {
			acc(player).handsDealt++
		}

		// A player is VPIP at most once per hand, however many voluntary
		// preflop actions they took.
		vpipThisHand := make(map[string]bool)
		for _, action := range hand.Actions {
			if action.Amount > 0 && action.Category != session.CategoryPotCollection {
				a := acc(action.Actor)
				a.putInPot += action.Amount
				a.phaseAmounts[action.Phase] += action.Amount
			}
			if action.Category == session.CategoryVoluntaryBet && action.Phase == session.PhasePreflop {
				vpipThisHand[action.Actor] = true
			}
		}
		for player := range vpipThisHand {
			acc(player).vpipHands++
		}

		for _, winner := range hand.Winners {
			acc(winner.Player).recordWin(winner.HandType, winner.Amount)
		}
	}

	// Ledger-only players join the report set here.
	for player := range s.Ledgers {
		acc(player)
	}

	reports := make(map[string]*PlayerReport, len(accs))
	for player, a := range accs {
		ledger := s.Ledgers[player]
		if ledger == nil {
			ledger = &session.Ledger{}
		}

		vpipPct := 0.0
		if a.handsDealt > 0 {
			vpipPct = 100 * float64(a.vpipHands) / float64(a.handsDealt)
		}

		topTypes := topHandTypes(a, 2)
		phases := topPhases(a, 2)

		reports[player] = &PlayerReport{
			Player:           player,
			HandsDealt:       a.handsDealt,
			VPIPHands:        a.vpipHands,
			VPIPPercentage:   round2(vpipPct),
			BuyIns:           round2(ledger.BuyIns),
			AdminAdjustments: round2(ledger.AdminAdjustments),
			FinalStack:       round2(ledger.FinalStack),
			CashOuts:         round2(ledger.CashOuts),
			ActualProfit:     round2(ledger.FinalStack + ledger.CashOuts - ledger.BuyIns - ledger.AdminAdjustments),
			EstimatedProfit:  round2(a.winnings - a.putInPot),
			TotalPutInPot:    round2(a.putInPot),
			TotalWinnings:    round2(a.winnings),
			Wins:             a.wins,

			TopHandType:         topTypes[0].Label,
			TopHandTypeCount:    topTypes[0].Count,
			SecondHandType:      topTypes[1].Label,
			SecondHandTypeCount: topTypes[1].Count,
			TopPhase:            phases[0].Label,
			TopPhaseAmount:      round2(phases[0].Amount),
			SecondPhase:         phases[1].Label,
			SecondPhaseAmount:   round2(phases[1].Amount),
		}
	}

	return reports
}

// topHandTypes ranks won hand types by count, descending, ties broken by the
// order the label was first seen, padded with "No wins" entries.
func topHandTypes(a *accumulator, n int) []LabelCount {
	ranked := make([]LabelCount, 0, len(a.handTypeOrder))
	for _, label := range a.handTypeOrder {
		ranked = append(ranked, LabelCount{Label: label, Count: a.handTypesWon[label]})
	}
	// Stable insertion sort keeps first-encountered order on ties.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Count > ranked[j-1].Count; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	for len(ranked) < n {
		ranked = append(ranked, LabelCount{Label: "No wins"})
	}
	return ranked[:n]
}

// topPhases ranks betting phases by amount put in, descending, ties broken by
// play order, padded with "None" entries.
func topPhases(a *accumulator, n int) []LabelAmount {
	ranked := make([]LabelAmount, 0, len(session.Phases))
	for _, phase := range session.Phases {
		if amount, ok := a.phaseAmounts[phase]; ok && amount > 0 {
			ranked = append(ranked, LabelAmount{Label: string(phase), Amount: amount})
		}
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Amount > ranked[j-1].Amount; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	for len(ranked) < n {
		ranked = append(ranked, LabelAmount{Label: "None"})
	}
	return ranked[:n]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
