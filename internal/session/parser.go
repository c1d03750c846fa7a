package session

import (
	"sort"

	"github.com/rs/zerolog"
)

// Parser folds a chronologically ordered entry sequence into finalized hands
// and a per-player session ledger. It is a single-pass batch state machine;
// all accumulator state is owned by Process for the duration of a call.
type Parser struct {
	logger zerolog.Logger
}

// NewParser creates a parser that logs discarded input at debug level.
func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Process re-sorts entries by sequence number and replays them through the
// transition rules. Storage order is explicitly unreliable, so the sort is
// never skipped. Parsing is best-effort: unrecognized entries are ignored and
// no entry ever aborts the run.
func (p *Parser) Process(entries []RawEntry) *Session {
	sorted := make([]RawEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	out := &Session{Ledgers: make(map[string]*Ledger)}

	var (
		current        *Hand
		currentPlayers map[string]bool
		phase          = PhasePreflop
	)

	openHand := func(number int) {
		current = &Hand{
			Number:       number,
			PhaseActions: make(map[Phase][]Action),
		}
		currentPlayers = make(map[string]bool)
		phase = PhasePreflop
	}

	closeHand := func() {
		current.PlayersDealt = sortedNames(currentPlayers)
		out.Hands = append(out.Hands, *current)
		current = nil
		currentPlayers = nil
		phase = PhasePreflop
	}

	for _, entry := range sorted {
		action := Classify(entry.Entry, phase)

		switch action.Category {
		case CategoryHandStart:
			if current != nil {
				// Malformed nesting: the open hand is dropped outright
				// rather than half-saved.
				p.logger.Debug().
					Int("hand_number", current.Number).
					Int("order", entry.Order).
					Msg("discarding open hand on nested hand start")
			}
			openHand(handNumber(entry.Entry))

		case CategoryPhaseMarker:
			if next, ok := markerPhase(entry.Entry); ok {
				phase = next
			}

		case CategoryStackSnapshot:
			if current != nil {
				for _, name := range quotedNames(entry.Entry) {
					currentPlayers[name] = true
				}
			} else {
				// Outside a hand the same line reports stacks; the last
				// snapshot per player in sequence order wins.
				for _, pair := range stackPairs(entry.Entry) {
					out.ledger(pair.player).FinalStack = pair.stack
				}
			}

		case CategoryBuyIn:
			out.ledger(action.Actor).BuyIns += action.Amount

		case CategoryStackAdjustment:
			if action.Amount > 0 {
				out.ledger(action.Actor).AdminAdjustments += action.Amount
			}

		case CategoryCashOut:
			out.ledger(action.Actor).CashOuts += action.Amount

		case CategoryHandEnd:
			if current != nil {
				closeHand()
			}

		default:
			if action.Actor == "" {
				continue
			}
			if current == nil {
				p.logger.Debug().
					Int("order", entry.Order).
					Str("actor", action.Actor).
					Msg("discarding action outside any hand")
				continue
			}
			current.Actions = append(current.Actions, action)
			current.PhaseActions[phase] = append(current.PhaseActions[phase], action)
			if action.Category == CategoryPotCollection {
				current.Winners = append(current.Winners, Winner{
					Player:   action.Actor,
					Amount:   action.Amount,
					HandType: HandType(entry.Entry),
				})
			}
		}
	}

	// A truncated log still yields its final hand.
	if current != nil {
		closeHand()
	}

	p.logger.Info().
		Int("entries", len(sorted)).
		Int("hands", len(out.Hands)).
		Int("players", len(out.Ledgers)).
		Msg("session parsed")

	return out
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
