package biz

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/prompt"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/llm"
)

// Classifier maps a raw question to one of the closed intents using a single
// LLM call.
type Classifier struct {
	chatProvider llm.ChatProvider
}

// NewClassifier creates a classifier instance.
func NewClassifier(chatProvider llm.ChatProvider) *Classifier {
	return &Classifier{chatProvider: chatProvider}
}

// Classify returns the intent for a question. A failed classification call
// is an error; an off-vocabulary model reply is not and falls back to
// GENERAL through parsing.
func (c *Classifier) Classify(ctx context.Context, question string) (model.Intent, error) {
	resp, err := c.chatProvider.Generate(ctx, prompt.RenderIntent(question), "")
	if err != nil {
		return "", fmt.Errorf("failed to classify question: %w", err)
	}

	intent := model.ParseIntent(resp.Content)
	logger.Infow("classified question", "intent", intent.String(), "raw", resp.Content)
	return intent, nil
}
