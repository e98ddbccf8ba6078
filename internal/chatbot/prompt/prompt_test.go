package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
)

func TestTemplateFor(t *testing.T) {
	assert.Equal(t, StatsTemplate, TemplateFor(model.IntentStats))
	assert.Equal(t, TradeTemplate, TemplateFor(model.IntentTrade))
	assert.Equal(t, GeneralTemplate, TemplateFor(model.IntentGeneral))
	// Greeting never reaches synthesis, but selection must still be total.
	assert.Equal(t, GeneralTemplate, TemplateFor(model.IntentGreeting))
}

func TestRender(t *testing.T) {
	out := Render("Q: {{question}}\nC: {{context}}\nagain: {{question}}", "CTX", "who?")
	assert.Equal(t, "Q: who?\nC: CTX\nagain: who?", out)
}

func TestRenderEmptyContext(t *testing.T) {
	out := Render(GeneralTemplate, "", "best center?")
	assert.NotContains(t, out, PlaceholderContext)
	assert.NotContains(t, out, PlaceholderQuestion)
	assert.Contains(t, out, "best center?")
}

func TestRenderIntent(t *testing.T) {
	out := RenderIntent("hello there")
	assert.Contains(t, out, "hello there")
	assert.Contains(t, out, "ONLY ONE word")
	assert.False(t, strings.Contains(out, PlaceholderQuestion))
}

func TestTemplatesCarryPlaceholders(t *testing.T) {
	for _, tmpl := range []string{StatsTemplate, TradeTemplate, GeneralTemplate} {
		assert.Contains(t, tmpl, PlaceholderContext)
		assert.Contains(t, tmpl, PlaceholderQuestion)
	}
}
