// Package prompt holds the intent classification prompt, the per-intent
// synthesis templates and the canned greeting response.
package prompt

import (
	"strings"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
)

const (
	// PlaceholderContext is replaced with the rendered retrieval context.
	PlaceholderContext = "{{context}}"
	// PlaceholderQuestion is replaced with the raw user question.
	PlaceholderQuestion = "{{question}}"
)

// IntentPrompt asks the model to classify a question into exactly one intent.
const IntentPrompt = `Analyze the question and return ONLY ONE word: TRADE, STATS, GREETING, or GENERAL.
Question: {{question}}`

// GreetingResponse is returned for greeting questions without touching the
// vector store or the chat model.
const GreetingResponse = "Hello! I am your NBA Fantasy assistant. You can ask me for player stats or trade advice!"

// StatsTemplate drives statistical ranking answers.
const StatsTemplate = `You are an NBA Data Analyst. Your goal is to provide precise statistical rankings.

Follow these steps:
1. Extract all players and their relevant numeric values (e.g., AVG_PTS, TOTAL_REB) from the provided Context.
2. Convert these text-based numbers into a mental list and SORT them numerically (Descending/Ascending as requested).
3. If the user asks for "top" or "highest", provide the top results based on your sorted list.
4. Always cite the exact numbers for each player mentioned.
5. If the data for a specific player is not in the context, state that you don't have that information.

Context:
{{context}}

Question: {{question}}`

// TradeTemplate drives trade evaluation answers.
const TradeTemplate = `You are a professional NBA Fantasy Trade Consultant.
Use the provided Context to analyze trades and team needs.

CORE INSTRUCTIONS:
1. IF TWO PLAYERS ARE PROVIDED: Compare their statistics (AVG_PTS, AVG_REB, AVG_AST, AVG_ST, AVG_BLK, FG_PCT, etc.). Analyze who wins the trade based on which categories they improve. Say 'Accept' or 'Decline' at the end.
2. IF USER ASKS FOR A 'FAIR TRADE': Look through the Context for players who have similar statistical profiles (e.g., similar AVG_PTS and similar roles). Suggest 2-3 names that would be a fair swap based on their overall contribution.
3. IF USER WANTS TO IMPROVE A SPECIFIC STAT (e.g., "I need more blocks"):
   - Identify players in the Context who have high values in that specific category (e.g., high AVG_BLK).
   - Suggest a strategic swap: "Trade a player with high AVG_AST for a player with high AVG_BLK if you need defensive stats."

CONSTRAINTS:
- Use ONLY the provided Context data. No external NBA knowledge.
- If you don't have enough players in the Context to make a suggestion, say so.
- Be concise and strategic.

Context:
{{context}}

Question: {{question}}`

// GeneralTemplate is the fallback for questions matching no specific intent.
const GeneralTemplate = `You are a professional NBA Fantasy expert.
Context:
{{context}}

Question: {{question}}`

// TemplateFor returns the synthesis template for the given intent. Greeting
// has no template; callers short-circuit before synthesis, but a general
// template is still returned so the selection is total.
func TemplateFor(intent model.Intent) string {
	switch intent {
	case model.IntentStats:
		return StatsTemplate
	case model.IntentTrade:
		return TradeTemplate
	default:
		return GeneralTemplate
	}
}

// Render substitutes the context and question placeholders in a template.
// Every occurrence of each placeholder is replaced.
func Render(template, contextText, question string) string {
	out := strings.ReplaceAll(template, PlaceholderContext, contextText)
	out = strings.ReplaceAll(out, PlaceholderQuestion, question)
	return out
}

// RenderIntent builds the classification prompt for a question.
func RenderIntent(question string) string {
	return strings.ReplaceAll(IntentPrompt, PlaceholderQuestion, question)
}
