package biz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kart-io/logger"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/store"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/corpus"
	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/llm"
)

// IndexerConfig holds indexer configuration.
type IndexerConfig struct {
	// Alias is the published collection alias queries read from.
	Alias string
	// EmbeddingDim is the embedding vector dimension.
	EmbeddingDim int
	// BatchSize is the number of documents embedded per batch.
	BatchSize int
	// PlayersFile is the path to the player stats JSON file.
	PlayersFile string
	// WeeklyStatsFile is the path to the weekly team stats JSON file.
	WeeklyStatsFile string
}

// Indexer rebuilds the retrieval index from the source files.
//
// Each rebuild writes into a fresh versioned collection and publishes it
// under the query alias only after every document is inserted. Readers keep
// hitting the previous collection until the alias flips, so a failed rebuild
// never disturbs the serving index.
type Indexer struct {
	store         store.VectorStore
	embedProvider llm.EmbeddingProvider
	config        *IndexerConfig
}

// NewIndexer creates an indexer instance.
func NewIndexer(vectorStore store.VectorStore, embedProvider llm.EmbeddingProvider, config *IndexerConfig) *Indexer {
	return &Indexer{
		store:         vectorStore,
		embedProvider: embedProvider,
		config:        config,
	}
}

// Rebuild builds the full document corpus, indexes it into a new collection
// and atomically publishes it. Returns the number of indexed documents.
func (i *Indexer) Rebuild(ctx context.Context) (int, error) {
	docs, err := corpus.Build(i.config.PlayersFile, i.config.WeeklyStatsFile)
	if err != nil {
		return 0, fmt.Errorf("failed to build corpus: %w", err)
	}
	if len(docs) == 0 {
		return 0, fmt.Errorf("corpus is empty, refusing to publish an empty index")
	}
	logger.Infof("Built corpus with %d documents", len(docs))

	collection := i.versionedCollection()
	collectionConfig := &store.CollectionConfig{
		Name:        collection,
		Description: "NBA fantasy corpus",
		Dimension:   i.config.EmbeddingDim,
	}
	if err := i.store.CreateCollection(ctx, collectionConfig); err != nil {
		return 0, fmt.Errorf("failed to create collection: %w", err)
	}

	if err := i.indexDocuments(ctx, collection, docs); err != nil {
		// Best effort cleanup of the half-built collection.
		if dropErr := i.store.DropCollection(ctx, collection); dropErr != nil {
			logger.Warnw("failed to drop half-built collection", "collection", collection, "error", dropErr.Error())
		}
		return 0, err
	}

	if err := i.store.Publish(ctx, i.config.Alias, collection); err != nil {
		return 0, err
	}
	logger.Infow("published index", "alias", i.config.Alias, "collection", collection, "documents", len(docs))

	i.dropStaleVersions(ctx, collection)

	return len(docs), nil
}

// indexDocuments embeds and inserts all documents in batches.
func (i *Indexer) indexDocuments(ctx context.Context, collection string, docs []corpus.Document) error {
	batchSize := i.config.BatchSize
	if batchSize <= 0 {
		batchSize = 64
	}

	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		texts := make([]string, len(batch))
		for idx, doc := range batch {
			texts[idx] = doc.Content
		}

		embeddings, err := i.embedProvider.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed batch %d-%d: %w", start, end, err)
		}

		storeDocs := make([]*store.Document, len(batch))
		for idx, doc := range batch {
			storeDocs[idx] = &store.Document{
				DocumentID:   doc.ID,
				DocumentName: doc.Name,
				Kind:         doc.Kind,
				Content:      doc.Content,
				Embedding:    embeddings[idx],
			}
		}

		if _, err := i.store.Insert(ctx, collection, storeDocs); err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %w", start, end, err)
		}
		logger.Infof("Indexed batch %d-%d", start, end)
	}

	return nil
}

// versionedCollection derives a fresh collection name from the alias.
func (i *Indexer) versionedCollection() string {
	return fmt.Sprintf("%s_v%d", i.config.Alias, time.Now().UnixNano())
}

// dropStaleVersions drops previous versioned collections after a successful
// publish. Failures only log; a stale collection costs storage, not
// correctness.
func (i *Indexer) dropStaleVersions(ctx context.Context, current string) {
	names, err := i.store.ListCollections(ctx)
	if err != nil {
		logger.Warnw("failed to list collections for cleanup", "error", err.Error())
		return
	}

	prefix := i.config.Alias + "_v"
	for _, name := range names {
		if name == current || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := i.store.DropCollection(ctx, name); err != nil {
			logger.Warnw("failed to drop stale collection", "collection", name, "error", err.Error())
		} else {
			logger.Infow("dropped stale collection", "collection", name)
		}
	}
}
