package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sessionstats/internal/session"
)

func action(actor string, amount float64, category session.Category, phase session.Phase) session.Action {
	return session.Action{Actor: actor, Amount: amount, Category: category, Phase: phase}
}

func TestAggregateEndToEnd(t *testing.T) {
	// Heads-up hand: A posts the small blind, calls preflop and bets the flop;
	// B posts the big blind and wins the pot with two pair.
	s := &session.Session{
		Hands: []session.Hand{{
			Number:       1,
			PlayersDealt: []string{"A", "B"},
			Actions: []session.Action{
				action("A", 1, session.CategoryForcedPost, session.PhasePreflop),
				action("B", 2, session.CategoryForcedPost, session.PhasePreflop),
				action("A", 2, session.CategoryVoluntaryBet, session.PhasePreflop),
				action("A", 5, session.CategoryVoluntaryBet, session.PhaseFlop),
				action("B", 9, session.CategoryPotCollection, session.PhaseFlop),
			},
			Winners: []session.Winner{{Player: "B", Amount: 9, HandType: "Two Pair"}},
		}},
		Ledgers: map[string]*session.Ledger{},
	}

	reports := Aggregate(s)
	require.Contains(t, reports, "A")
	require.Contains(t, reports, "B")

	a := reports["A"]
	assert.Equal(t, 1, a.HandsDealt)
	assert.Equal(t, 1, a.VPIPHands)
	assert.Equal(t, 100.0, a.VPIPPercentage)
	// Blinds count toward money in the pot; only VPIP excludes them.
	assert.Equal(t, 8.0, a.TotalPutInPot)
	assert.Equal(t, 0, a.Wins)
	assert.Equal(t, -8.0, a.EstimatedProfit)
	assert.Equal(t, "flop", a.TopPhase)
	assert.Equal(t, 5.0, a.TopPhaseAmount)
	assert.Equal(t, "preflop", a.SecondPhase)
	assert.Equal(t, 3.0, a.SecondPhaseAmount)

	b := reports["B"]
	assert.Equal(t, 1, b.HandsDealt)
	assert.Equal(t, 0, b.VPIPHands)
	assert.Equal(t, 2.0, b.TotalPutInPot)
	assert.Equal(t, 1, b.Wins)
	assert.Equal(t, 9.0, b.TotalWinnings)
	assert.Equal(t, "Two Pair", b.TopHandType)
	assert.Equal(t, 1, b.TopHandTypeCount)
	assert.Equal(t, "No wins", b.SecondHandType)
	assert.Equal(t, 7.0, b.EstimatedProfit)
}

func TestAggregateVPIPCountedOncePerHand(t *testing.T) {
	s := &session.Session{
		Hands: []session.Hand{{
			PlayersDealt: []string{"A"},
			Actions: []session.Action{
				action("A", 2, session.CategoryVoluntaryBet, session.PhasePreflop),
				action("A", 6, session.CategoryVoluntaryBet, session.PhasePreflop),
				action("A", 12, session.CategoryVoluntaryBet, session.PhasePreflop),
			},
		}},
		Ledgers: map[string]*session.Ledger{},
	}

	reports := Aggregate(s)
	assert.Equal(t, 1, reports["A"].VPIPHands)
	assert.Equal(t, 20.0, reports["A"].TotalPutInPot)
}

func TestAggregateForcedPostIsNotVPIP(t *testing.T) {
	s := &session.Session{
		Hands: []session.Hand{{
			PlayersDealt: []string{"A"},
			Actions: []session.Action{
				action("A", 2, session.CategoryForcedPost, session.PhasePreflop),
			},
		}},
		Ledgers: map[string]*session.Ledger{},
	}

	reports := Aggregate(s)
	assert.Equal(t, 0, reports["A"].VPIPHands)
	assert.Equal(t, 2.0, reports["A"].TotalPutInPot)
}

func TestAggregatePostflopVoluntaryBetIsNotVPIP(t *testing.T) {
	s := &session.Session{
		Hands: []session.Hand{{
			PlayersDealt: []string{"A"},
			Actions: []session.Action{
				action("A", 10, session.CategoryVoluntaryBet, session.PhaseFlop),
			},
		}},
		Ledgers: map[string]*session.Ledger{},
	}

	assert.Equal(t, 0, Aggregate(s)["A"].VPIPHands)
}

func TestAggregateVPIPNeverExceedsHandsDealt(t *testing.T) {
	// A voluntary preflop action by a player the snapshot missed must not
	// push VPIP hands above hands dealt for anyone who was.
	s := &session.Session{
		Hands: []session.Hand{
			{
				PlayersDealt: []string{"A"},
				Actions: []session.Action{
					action("A", 2, session.CategoryVoluntaryBet, session.PhasePreflop),
				},
			},
			{
				PlayersDealt: []string{"A"},
			},
		},
		Ledgers: map[string]*session.Ledger{},
	}

	report := Aggregate(s)["A"]
	assert.LessOrEqual(t, report.VPIPHands, report.HandsDealt)
	assert.Equal(t, 50.0, report.VPIPPercentage)
}

func TestAggregateActualProfit(t *testing.T) {
	s := &session.Session{
		Ledgers: map[string]*session.Ledger{
			"A": {BuyIns: 100, CashOuts: 0, AdminAdjustments: 0, FinalStack: 150},
		},
	}

	reports := Aggregate(s)
	require.Contains(t, reports, "A")
	assert.Equal(t, 50.0, reports["A"].ActualProfit)
	assert.Equal(t, 0, reports["A"].HandsDealt)
	assert.Equal(t, "No wins", reports["A"].TopHandType)
	assert.Equal(t, "None", reports["A"].TopPhase)
}

func TestAggregateHandTypeRanking(t *testing.T) {
	hand := session.Hand{
		PlayersDealt: []string{"A"},
		Winners: []session.Winner{
			{Player: "A", Amount: 10, HandType: "One Pair"},
			{Player: "A", Amount: 20, HandType: "Flush"},
			{Player: "A", Amount: 5, HandType: "One Pair"},
		},
	}
	s := &session.Session{
		Hands:   []session.Hand{hand},
		Ledgers: map[string]*session.Ledger{},
	}

	report := Aggregate(s)["A"]
	assert.Equal(t, 3, report.Wins)
	assert.Equal(t, 35.0, report.TotalWinnings)
	assert.Equal(t, "One Pair", report.TopHandType)
	assert.Equal(t, 2, report.TopHandTypeCount)
	assert.Equal(t, "Flush", report.SecondHandType)
	assert.Equal(t, 1, report.SecondHandTypeCount)
}

func TestAggregateRoundsToCents(t *testing.T) {
	s := &session.Session{
		Hands: []session.Hand{
			{
				PlayersDealt: []string{"A"},
				Actions: []session.Action{
					action("A", 0.10, session.CategoryVoluntaryBet, session.PhasePreflop),
				},
			},
			{PlayersDealt: []string{"A"}},
			{PlayersDealt: []string{"A"}},
		},
		Ledgers: map[string]*session.Ledger{},
	}

	report := Aggregate(s)["A"]
	assert.Equal(t, 33.33, report.VPIPPercentage) // 1 of 3 hands is 33.333... before rounding
}
