package biz

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/store"
	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/llm"
)

// RetrieverConfig holds retriever configuration.
type RetrieverConfig struct {
	// TopK is the number of results to return.
	TopK int
	// Collection is the collection alias queries read from.
	Collection string
}

// Retriever embeds a question and searches the vector store.
type Retriever struct {
	store         store.VectorStore
	embedProvider llm.EmbeddingProvider
	config        *RetrieverConfig
}

// NewRetriever creates a retriever instance.
func NewRetriever(vectorStore store.VectorStore, embedProvider llm.EmbeddingProvider, config *RetrieverConfig) *Retriever {
	return &Retriever{
		store:         vectorStore,
		embedProvider: embedProvider,
		config:        config,
	}
}

// Retrieve returns the top-k documents for a question. An empty result set
// is not an error.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]*store.SearchResult, error) {
	questionEmbed, err := r.embedProvider.EmbedSingle(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := r.store.Search(ctx, r.config.Collection, questionEmbed, r.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	logger.Infow("retrieved documents", "count", len(results), "top_k", r.config.TopK)
	return results, nil
}
