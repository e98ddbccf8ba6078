// Package store defines the vector storage abstraction used by the chatbot
// pipeline and its Milvus implementation.
package store

import (
	"context"
)

// Document is a single indexed corpus document with its embedding.
type Document struct {
	// DocumentID is the stable corpus identifier, e.g. "player:5583" or "team:ST".
	DocumentID string
	// DocumentName is the display name (player or team name).
	DocumentName string
	// Kind is the record kind ("player" or "team").
	Kind string
	// Content is the full serialized document text.
	Content string
	// Embedding is the embedding vector.
	Embedding []float32
}

// SearchResult is a single retrieval hit.
type SearchResult struct {
	// DocumentID is the stable corpus identifier.
	DocumentID string
	// DocumentName is the display name.
	DocumentName string
	// Kind is the record kind.
	Kind string
	// Content is the full serialized document text.
	Content string
	// Score is the similarity score.
	Score float32
}

// CollectionConfig describes a collection to create.
type CollectionConfig struct {
	// Name is the collection name.
	Name string
	// Description is the collection description.
	Description string
	// Dimension is the embedding vector dimension.
	Dimension int
}

// VectorStore defines the vector storage interface.
type VectorStore interface {
	// CreateCollection creates a collection. Idempotent.
	CreateCollection(ctx context.Context, config *CollectionConfig) error

	// Insert batch-inserts documents into a collection.
	Insert(ctx context.Context, collection string, docs []*Document) ([]string, error)

	// Search performs a vector similarity search against a collection or alias.
	Search(ctx context.Context, collection string, embedding []float32, topK int) ([]*SearchResult, error)

	// Publish atomically points alias at collection, so queries resolving
	// the alias switch over in one step.
	Publish(ctx context.Context, alias, collection string) error

	// ListCollections lists all collection names.
	ListCollections(ctx context.Context) ([]string, error)

	// DropCollection drops a collection.
	DropCollection(ctx context.Context, collection string) error

	// GetStats returns the entity count of a collection or alias.
	GetStats(ctx context.Context, collection string) (int64, error)

	// Close closes the connection.
	Close(ctx context.Context) error
}
