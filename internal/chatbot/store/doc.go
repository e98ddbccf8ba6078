// Package store provides the chatbot's vector storage layer.
//
// It defines the VectorStore abstraction and the Milvus-backed
// implementation used for indexing and retrieving stat documents,
// including versioned collection publishing.
package store
