package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Intent
	}{
		{"exact trade", "TRADE", IntentTrade},
		{"exact stats", "STATS", IntentStats},
		{"exact greeting", "GREETING", IntentGreeting},
		{"exact general", "GENERAL", IntentGeneral},
		{"lowercase", "trade", IntentTrade},
		{"whitespace", "  stats \n", IntentStats},
		{"embedded in prose", "The intent is STATS.", IntentStats},
		{"greeting beats trade", "GREETING or maybe TRADE", IntentGreeting},
		{"trade beats stats", "TRADE STATS", IntentTrade},
		{"unknown falls back", "BANANA", IntentGeneral},
		{"empty falls back", "", IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntent(tt.raw))
		})
	}
}

func TestIntentValid(t *testing.T) {
	for _, intent := range Intents {
		assert.True(t, intent.Valid())
	}
	assert.False(t, Intent("BANANA").Valid())
	assert.False(t, Intent("").Valid())
}

func TestMadeAttemptedPct(t *testing.T) {
	assert.InDelta(t, 0.5, MadeAttempted{Made: 6, Attempted: 12}.Pct(), 1e-9)
	assert.Zero(t, MadeAttempted{}.Pct())
	assert.Zero(t, MadeAttempted{Made: 5}.Pct())
	assert.Zero(t, MadeAttempted{Made: 5, Attempted: -1}.Pct())
}
