// Package session reconstructs poker hands and a per-player money ledger from
// a free-text session log, such as the entry log exported by online home-game
// tables. The log is a bag of loosely formatted lines ordered by a sequence
// number; the package classifies each line and folds it through a single-pass
// state machine into finalized Hand records.
package session

// Phase identifies one of the four betting rounds of a hand.
type Phase string

const (
	PhasePreflop Phase = "preflop"
	PhaseFlop    Phase = "flop"
	PhaseTurn    Phase = "turn"
	PhaseRiver   Phase = "river"
)

// Phases lists all betting phases in play order. Aggregation and reporting
// iterate this slice so that ties resolve in a stable, canonical order.
var Phases = []Phase{PhasePreflop, PhaseFlop, PhaseTurn, PhaseRiver}

// Category is the recognized shape of a log entry.
type Category string

const (
	CategoryForcedPost      Category = "forced_post"
	CategoryVoluntaryBet    Category = "voluntary_bet"
	CategoryPotCollection   Category = "pot_collection"
	CategoryBuyIn           Category = "buy_in"
	CategoryStackAdjustment Category = "stack_adjustment"
	CategoryCashOut         Category = "cash_out"
	CategoryStackSnapshot   Category = "stack_snapshot"
	CategoryHandStart       Category = "hand_start"
	CategoryHandEnd         Category = "hand_end"
	CategoryPhaseMarker     Category = "phase_marker"
	CategoryOther           Category = "other"
)

// RawEntry is one line of the session log together with its sequence number.
// The sequence number is the authoritative timeline; storage order is not.
type RawEntry struct {
	Order int
	Entry string
}

// Action is a classified log entry. Actor is empty when the entry does not
// begin with a quoted player name; Amount is zero when no number was found.
// Raw keeps the original text for downstream substring checks.
type Action struct {
	Actor    string
	Amount   float64
	Category Category
	Phase    Phase
	Raw      string
}

// Winner records one pot award inside a hand.
type Winner struct {
	Player   string
	Amount   float64
	HandType string
}

// Hand is one complete dealt hand. Actions holds the chronological action
// sequence; PhaseActions holds the same actions partitioned by betting phase.
type Hand struct {
	Number       int
	PlayersDealt []string
	Actions      []Action
	PhaseActions map[Phase][]Action
	Winners      []Winner
}

// Ledger holds the session-level running totals for one player, updated from
// non-hand entries independently of hand boundaries.
type Ledger struct {
	BuyIns           float64
	CashOuts         float64
	AdminAdjustments float64
	FinalStack       float64
}

// Session is the result of parsing a full log: the finalized hand sequence
// plus one ledger per distinct player name. Names are opaque identity keys;
// no alias resolution is performed.
type Session struct {
	Hands   []Hand
	Ledgers map[string]*Ledger
}

func (s *Session) ledger(player string) *Ledger {
	l, ok := s.Ledgers[player]
	if !ok {
		l = &Ledger{}
		s.Ledgers[player] = l
	}
	return l
}
