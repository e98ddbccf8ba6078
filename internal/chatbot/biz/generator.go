package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/kart-io/logger"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/prompt"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/store"
	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/llm"
)

// Generator synthesizes an answer from retrieved documents.
type Generator struct {
	chatProvider llm.ChatProvider
}

// NewGenerator creates a generator instance.
func NewGenerator(chatProvider llm.ChatProvider) *Generator {
	return &Generator{chatProvider: chatProvider}
}

// GenerateAnswer fills the template with the retrieved context and the
// question, then calls the chat model. An empty result set still goes to
// the model with an empty context section; the template instructs the model
// to say it lacks the data.
func (g *Generator) GenerateAnswer(ctx context.Context, template, question string, results []*store.SearchResult) (*llm.GenerateResponse, error) {
	if ctx.Err() != nil {
		return nil, fmt.Errorf("context cancelled before generation: %w", ctx.Err())
	}

	var contextBuilder strings.Builder
	for i, result := range results {
		contextBuilder.WriteString(fmt.Sprintf("[%d] From %s (%s):\n%s\n\n",
			i+1, result.DocumentName, result.Kind, result.Content))
	}

	rendered := prompt.Render(template, contextBuilder.String(), question)

	logger.Info("Calling LLM to generate answer...")
	resp, err := g.chatProvider.Generate(ctx, rendered, "")
	if err != nil {
		logger.Errorf("LLM generation failed: %v", err)
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	if resp.TokenUsage != nil {
		logger.Infof("LLM answer generated (length: %d, tokens: %d)",
			len(resp.Content), resp.TokenUsage.TotalTokens)
	} else {
		logger.Infof("LLM answer generated (length: %d)", len(resp.Content))
	}

	return resp, nil
}
