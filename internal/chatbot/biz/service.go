package biz

import (
	"context"
	"time"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/metrics"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/prompt"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/store"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/llm"
)

// Service defines the chatbot service interface.
type Service interface {
	// Query answers a question through the intent-routed pipeline.
	Query(ctx context.Context, question string) (*model.QueryResult, error)
	// Rebuild rebuilds and republishes the retrieval index.
	Rebuild(ctx context.Context) (int, error)
	// GetStats returns knowledge base and pipeline statistics.
	GetStats(ctx context.Context) (map[string]any, error)
}

// ChatService composes the classifier, retriever, generator and indexer
// into the full pipeline.
type ChatService struct {
	classifier    *Classifier
	retriever     *Retriever
	generator     *Generator
	indexer       *Indexer
	cache         *QueryCache
	store         store.VectorStore
	embedProvider llm.EmbeddingProvider
	chatProvider  llm.ChatProvider
	collection    string
	metrics       *metrics.ChatMetrics
}

// ServiceConfig holds chatbot service configuration.
type ServiceConfig struct {
	IndexerConfig    *IndexerConfig
	RetrieverConfig  *RetrieverConfig
	QueryCacheConfig *QueryCacheConfig
}

// NewChatService creates a chatbot service instance.
func NewChatService(
	vectorStore store.VectorStore,
	embedProvider llm.EmbeddingProvider,
	chatProvider llm.ChatProvider,
	cache *QueryCache,
	config *ServiceConfig,
) *ChatService {
	return &ChatService{
		classifier:    NewClassifier(chatProvider),
		retriever:     NewRetriever(vectorStore, embedProvider, config.RetrieverConfig),
		generator:     NewGenerator(chatProvider),
		indexer:       NewIndexer(vectorStore, embedProvider, config.IndexerConfig),
		cache:         cache,
		store:         vectorStore,
		embedProvider: embedProvider,
		chatProvider:  chatProvider,
		collection:    config.RetrieverConfig.Collection,
		metrics:       metrics.GetChatMetrics(),
	}
}

// Query runs the full pipeline: classify, short-circuit greetings, retrieve
// and synthesize.
func (s *ChatService) Query(ctx context.Context, question string) (*model.QueryResult, error) {
	var queryErr error
	defer func() {
		if queryErr != nil {
			s.metrics.RecordQuery(false, queryErr)
		}
	}()

	if s.cache != nil {
		cachedResult, err := s.cache.Get(ctx, question)
		if err == nil && cachedResult != nil {
			s.metrics.RecordQuery(true, nil)
			return cachedResult, nil
		}
		// Miss or cache error, continue with the normal flow.
	}

	// 1. Classify. A classifier failure fails the whole query.
	llmStart := time.Now()
	intent, err := s.classifier.Classify(ctx, question)
	s.metrics.RecordLLMCall(time.Since(llmStart), 0, 0, err)
	if err != nil {
		queryErr = err
		return nil, err
	}
	s.metrics.RecordIntent(intent.String())

	// 2. Greetings never touch the vector store or the chat model again.
	if intent == model.IntentGreeting {
		result := &model.QueryResult{
			Answer:  prompt.GreetingResponse,
			Intent:  intent,
			Sources: []model.DocumentSource{},
		}
		s.metrics.RecordQuery(false, nil)
		return result, nil
	}

	// 3. Retrieve.
	retrievalStart := time.Now()
	results, err := s.retriever.Retrieve(ctx, question)
	s.metrics.RecordRetrieval(time.Since(retrievalStart), err)
	if err != nil {
		queryErr = err
		return nil, err
	}

	// 4. Synthesize with the intent-selected template. Empty retrieval still
	// goes to the model; the templates handle missing data.
	template := prompt.TemplateFor(intent)
	llmStart = time.Now()
	resp, err := s.generator.GenerateAnswer(ctx, template, question, results)
	llmDuration := time.Since(llmStart)

	promptTokens := 0
	completionTokens := 0
	if resp != nil && resp.TokenUsage != nil {
		promptTokens = resp.TokenUsage.PromptTokens
		completionTokens = resp.TokenUsage.CompletionTokens
	}
	s.metrics.RecordLLMCall(llmDuration, promptTokens, completionTokens, err)

	if err != nil {
		queryErr = err
		return nil, err
	}

	sources := make([]model.DocumentSource, len(results))
	for i, result := range results {
		sources[i] = model.DocumentSource{
			DocumentID:   result.DocumentID,
			DocumentName: result.DocumentName,
			Kind:         result.Kind,
			Content:      result.Content,
			Score:        result.Score,
		}
	}

	queryResult := &model.QueryResult{
		Answer:  resp.Content,
		Intent:  intent,
		Sources: sources,
	}

	if s.cache != nil {
		// A failed cache write never fails the query.
		_ = s.cache.Set(ctx, question, queryResult)
	}

	s.metrics.RecordQuery(false, nil)

	return queryResult, nil
}

// Rebuild rebuilds and republishes the retrieval index.
func (s *ChatService) Rebuild(ctx context.Context) (int, error) {
	count, err := s.indexer.Rebuild(ctx)
	s.metrics.RecordRebuild(count, err)
	return count, err
}

// GetStats returns knowledge base statistics.
func (s *ChatService) GetStats(ctx context.Context) (map[string]any, error) {
	count, err := s.store.GetStats(ctx, s.collection)
	if err != nil {
		return nil, err
	}

	stats := map[string]any{
		"collection":     s.collection,
		"document_count": count,
		"embed_provider": s.embedProvider.Name(),
		"chat_provider":  s.chatProvider.Name(),
	}

	if s.cache != nil {
		cacheStats, err := s.cache.GetStats(ctx)
		if err == nil {
			stats["cache"] = cacheStats
		}
	}

	stats["metrics"] = s.metrics.Stats()

	return stats, nil
}

var _ Service = (*ChatService)(nil)
