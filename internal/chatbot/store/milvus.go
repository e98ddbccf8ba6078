package store

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/entity"

	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/component/milvus"
)

// MilvusStore implements VectorStore backed by Milvus.
type MilvusStore struct {
	client *milvus.Client
}

// NewMilvusStore creates a Milvus-backed store.
func NewMilvusStore(client *milvus.Client) *MilvusStore {
	return &MilvusStore{client: client}
}

// CreateCollection creates a Milvus collection with the document schema.
func (s *MilvusStore) CreateCollection(ctx context.Context, config *CollectionConfig) error {
	schema := &milvus.CollectionSchema{
		Name:        config.Name,
		Description: config.Description,
		Dimension:   config.Dimension,
		MetaFields: []milvus.MetaField{
			{Name: "document_id", DataType: entity.FieldTypeVarChar, MaxLen: 64},
			{Name: "document_name", DataType: entity.FieldTypeVarChar, MaxLen: 255},
			{Name: "kind", DataType: entity.FieldTypeVarChar, MaxLen: 16},
			{Name: "content", DataType: entity.FieldTypeVarChar, MaxLen: 65535},
		},
	}
	return s.client.CreateCollection(ctx, schema)
}

// Insert batch-inserts documents into Milvus.
func (s *MilvusStore) Insert(ctx context.Context, collection string, docs []*Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	embeddings := make([][]float32, len(docs))
	metadata := map[string][]any{
		"document_id":   make([]any, len(docs)),
		"document_name": make([]any, len(docs)),
		"kind":          make([]any, len(docs)),
		"content":       make([]any, len(docs)),
	}

	for i, doc := range docs {
		embeddings[i] = doc.Embedding
		metadata["document_id"][i] = doc.DocumentID
		metadata["document_name"][i] = doc.DocumentName
		metadata["kind"][i] = doc.Kind
		metadata["content"][i] = doc.Content
	}

	data := &milvus.InsertData{
		Embeddings: embeddings,
		Metadata:   metadata,
	}

	ids, err := s.client.Insert(ctx, collection, data)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into milvus: %w", err)
	}

	stringIDs := make([]string, len(ids))
	for i, id := range ids {
		stringIDs[i] = fmt.Sprintf("%d", id)
	}

	return stringIDs, nil
}

// Search performs a vector similarity search.
func (s *MilvusStore) Search(ctx context.Context, collection string, embedding []float32, topK int) ([]*SearchResult, error) {
	outputFields := []string{"document_id", "document_name", "kind", "content"}
	results, err := s.client.Search(ctx, collection, embedding, topK, outputFields)
	if err != nil {
		return nil, fmt.Errorf("failed to search milvus: %w", err)
	}

	searchResults := make([]*SearchResult, len(results))
	for i, r := range results {
		searchResults[i] = &SearchResult{
			DocumentID:   stringField(r.Metadata, "document_id"),
			DocumentName: stringField(r.Metadata, "document_name"),
			Kind:         stringField(r.Metadata, "kind"),
			Content:      stringField(r.Metadata, "content"),
			Score:        r.Score,
		}
	}

	return searchResults, nil
}

func stringField(metadata map[string]any, name string) string {
	if v, ok := metadata[name].(string); ok {
		return v
	}
	return ""
}

// Publish repoints alias at collection via Milvus alias operations.
func (s *MilvusStore) Publish(ctx context.Context, alias, collection string) error {
	if err := s.client.EnsureAlias(ctx, alias, collection); err != nil {
		return fmt.Errorf("failed to publish collection %s as %s: %w", collection, alias, err)
	}
	return nil
}

// ListCollections lists all collection names.
func (s *MilvusStore) ListCollections(ctx context.Context) ([]string, error) {
	return s.client.ListCollections(ctx)
}

// DropCollection drops a collection.
func (s *MilvusStore) DropCollection(ctx context.Context, collection string) error {
	return s.client.DropCollection(ctx, collection)
}

// GetStats returns the entity count of a collection.
func (s *MilvusStore) GetStats(ctx context.Context, collection string) (int64, error) {
	return s.client.GetCollectionStats(ctx, collection)
}

// Close closes the Milvus connection.
func (s *MilvusStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

var _ VectorStore = (*MilvusStore)(nil)
