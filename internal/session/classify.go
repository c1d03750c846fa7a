package session

import (
	"regexp"
	"strconv"
	"strings"
)

// The log has no schema; these patterns are the de-facto wire format.
var (
	actorRe  = regexp.MustCompile(`^"([^"]+)"`)
	amountRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

	handStartRe   = regexp.MustCompile(`(?i)starting hand #(\d+)`)
	buyInRe       = regexp.MustCompile(`(?i)approved the player "([^"]+)" participation with a stack of (\d+(?:\.\d+)?)`)
	stackUpdateRe = regexp.MustCompile(`(?i)updated the player "([^"]+)" stack from (\d+(?:\.\d+)?) to (\d+(?:\.\d+)?)`)
	cashOutRe     = regexp.MustCompile(`(?i)"([^"]+)" quits the game with a stack of (\d+(?:\.\d+)?)`)
	stackPairRe   = regexp.MustCompile(`"([^"]+)"\s*\((\d+(?:\.\d+)?)\)`)
	quotedNameRe  = regexp.MustCompile(`"([^"]+)"`)

	forcedRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)posts a big blind`),
		regexp.MustCompile(`(?i)posts a small blind`),
		regexp.MustCompile(`(?i)\(big blind\)`),
		regexp.MustCompile(`(?i)\(small blind\)`),
		regexp.MustCompile(`(?i)\(ante\)`),
	}

	voluntaryRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)calls (\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)bets (\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)raises to (\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)posts a bet of (\d+(?:\.\d+)?)`),
	}
)

// classifyRules is evaluated in order; the first matching rule decides the
// category. Forced posts are deliberately checked before voluntary actions so
// an entry matching both shapes is never counted toward VPIP.
var classifyRules = []struct {
	name  string
	match func(text string) (Action, bool)
}{
	{"hand_start", func(text string) (Action, bool) {
		if handStartRe.MatchString(text) {
			return Action{Category: CategoryHandStart}, true
		}
		return Action{}, false
	}},
	{"hand_end", func(text string) (Action, bool) {
		if strings.Contains(text, "ending hand") {
			return Action{Category: CategoryHandEnd}, true
		}
		return Action{}, false
	}},
	{"phase_marker", func(text string) (Action, bool) {
		if _, ok := markerPhase(text); ok {
			return Action{Category: CategoryPhaseMarker}, true
		}
		return Action{}, false
	}},
	{"stack_snapshot", func(text string) (Action, bool) {
		if strings.Contains(text, "Player stacks:") {
			return Action{Category: CategoryStackSnapshot}, true
		}
		return Action{}, false
	}},
	{"buy_in", func(text string) (Action, bool) {
		m := buyInRe.FindStringSubmatch(text)
		if m == nil {
			return Action{}, false
		}
		return Action{Category: CategoryBuyIn, Actor: m[1], Amount: parseAmount(m[2])}, true
	}},
	{"stack_adjustment", func(text string) (Action, bool) {
		m := stackUpdateRe.FindStringSubmatch(text)
		if m == nil {
			return Action{}, false
		}
		// Only increases register; decreases carry a zero amount and are
		// ignored downstream (known asymmetry in the source log semantics).
		from := parseAmount(m[2])
		to := parseAmount(m[3])
		amount := 0.0
		if to > from {
			amount = to - from
		}
		return Action{Category: CategoryStackAdjustment, Actor: m[1], Amount: amount}, true
	}},
	{"cash_out", func(text string) (Action, bool) {
		m := cashOutRe.FindStringSubmatch(text)
		if m == nil {
			return Action{}, false
		}
		return Action{Category: CategoryCashOut, Actor: m[1], Amount: parseAmount(m[2])}, true
	}},
	{"pot_collection", func(text string) (Action, bool) {
		if strings.Contains(text, "collected") && strings.Contains(text, "from pot") {
			return Action{Category: CategoryPotCollection}, true
		}
		return Action{}, false
	}},
	{"forced_post", func(text string) (Action, bool) {
		for _, re := range forcedRes {
			if re.MatchString(text) {
				return Action{Category: CategoryForcedPost}, true
			}
		}
		return Action{}, false
	}},
	{"voluntary_bet", func(text string) (Action, bool) {
		for _, re := range voluntaryRes {
			if m := re.FindStringSubmatch(text); m != nil {
				return Action{Category: CategoryVoluntaryBet, Amount: parseAmount(m[1])}, true
			}
		}
		return Action{}, false
	}},
}

// Classify categorizes a single log entry against the recognized event shapes.
// It is a pure function: phase is the betting phase active when the entry was
// observed and is recorded on the result, never advanced here.
func Classify(text string, phase Phase) Action {
	action := Action{Category: CategoryOther}
	for _, rule := range classifyRules {
		if a, ok := rule.match(text); ok {
			action = a
			break
		}
	}
	action.Raw = text
	action.Phase = phase
	if action.Actor == "" {
		action.Actor = extractActor(text)
	}
	if !ownAmount[action.Category] {
		action.Amount = extractAmount(text)
	}
	return action
}

// ownAmount marks categories whose rule extracted the amount from its own
// capture group; the generic first-number fallback must not overwrite them
// (a stack decrease legitimately carries a zero amount).
var ownAmount = map[Category]bool{
	CategoryBuyIn:           true,
	CategoryStackAdjustment: true,
	CategoryCashOut:         true,
	CategoryVoluntaryBet:    true,
}

// extractActor returns the double-quoted prefix of the entry, or "".
func extractActor(text string) string {
	if m := actorRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// extractAmount returns the first number appearing anywhere in the entry.
func extractAmount(text string) float64 {
	if m := amountRe.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1])
	}
	return 0
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// handNumber extracts the integer from a "starting hand #N" marker. The number
// is traceability only; it is not assumed unique or monotonic.
func handNumber(text string) int {
	if m := handStartRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}
	return 0
}

// markerPhase maps a street marker line to the phase it opens.
func markerPhase(text string) (Phase, bool) {
	switch {
	case strings.Contains(text, "Flop:"):
		return PhaseFlop, true
	case strings.Contains(text, "Turn:"):
		return PhaseTurn, true
	case strings.Contains(text, "River:"):
		return PhaseRiver, true
	}
	return "", false
}

// stackPair is one `"name" (stack)` fragment of a Player stacks line.
type stackPair struct {
	player string
	stack  float64
}

func stackPairs(text string) []stackPair {
	matches := stackPairRe.FindAllStringSubmatch(text, -1)
	pairs := make([]stackPair, 0, len(matches))
	for _, m := range matches {
		pairs = append(pairs, stackPair{player: m[1], stack: parseAmount(m[2])})
	}
	return pairs
}

func quotedNames(text string) []string {
	matches := quotedNameRe.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// handTypePatterns is ordered by poker hand rank so an entry mentioning a
// higher hand is never misread as a lower one ("Full House" contains no lower
// phrase, but "Straight Flush" would otherwise match "Flush").
var handTypePatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)straight flush`), "Straight Flush"},
	{regexp.MustCompile(`(?i)four of a kind`), "Four of a Kind"},
	{regexp.MustCompile(`(?i)full house`), "Full House"},
	{regexp.MustCompile(`(?i)flush`), "Flush"},
	{regexp.MustCompile(`(?i)straight`), "Straight"},
	{regexp.MustCompile(`(?i)three of a kind`), "Three of a Kind"},
	{regexp.MustCompile(`(?i)two pair`), "Two Pair"},
	{regexp.MustCompile(`(?i)(one pair|pair)`), "One Pair"},
	{regexp.MustCompile(`(?i)\b[a-z] high\b`), "High Card"},
	{regexp.MustCompile(`(?i)hi hand`), "Hi Hand"},
	{regexp.MustCompile(`(?i)low hand`), "Low Hand"},
}

// HandType extracts the canonical winning hand label from a pot-collection
// entry, or "Didn't Show" when the winner mucked without revealing.
func HandType(text string) string {
	hasStraight := strings.Contains(strings.ToLower(text), "straight")
	for _, p := range handTypePatterns {
		if !p.re.MatchString(text) {
			continue
		}
		// A plain "Flush" label is suppressed when "straight" also appears,
		// so odd straight-flush phrasings fall through to Straight rather
		// than Flush.
		if p.label == "Flush" && hasStraight {
			continue
		}
		return p.label
	}
	return "Didn't Show"
}
