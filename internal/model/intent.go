package model

import "strings"

// Intent is the classified handling mode for a user query. It is a closed
// set: every query resolves to exactly one of the four values below.
type Intent string

const (
	// IntentTrade routes trade comparisons and swap suggestions.
	IntentTrade Intent = "TRADE"
	// IntentStats routes statistical lookups and rankings.
	IntentStats Intent = "STATS"
	// IntentGreeting short-circuits the pipeline with a fixed response.
	IntentGreeting Intent = "GREETING"
	// IntentGeneral is the fallback for everything else, including
	// classifier output that matches none of the keywords.
	IntentGeneral Intent = "GENERAL"
)

// Intents lists all intents in classification priority order. GREETING is
// checked first so a greeting is never misrouted into a retrieval mode, and
// an ambiguous answer degrades to GENERAL rather than to a wrong TRADE/STATS
// classification.
var Intents = []Intent{IntentGreeting, IntentTrade, IntentStats, IntentGeneral}

// ParseIntent maps raw classifier output to an Intent. The model returns
// untyped text; this is the single place it is validated. Output containing
// none of the keywords resolves to GENERAL, never to an error.
func ParseIntent(raw string) Intent {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for _, intent := range Intents {
		if strings.Contains(normalized, string(intent)) {
			return intent
		}
	}
	return IntentGeneral
}

// String returns the intent keyword.
func (i Intent) String() string { return string(i) }

// Valid reports whether i is one of the four known intents.
func (i Intent) Valid() bool {
	switch i {
	case IntentTrade, IntentStats, IntentGreeting, IntentGeneral:
		return true
	}
	return false
}
