// Package biz provides the business logic of the chatbot service.
//
// The pipeline is split into focused components:
//   - Classifier: maps a question to one of the closed intents
//   - Retriever: embeds the question and searches the vector store
//   - Generator: builds the context block and synthesizes the answer
//   - Indexer: rebuilds the corpus index and publishes it atomically
//   - Service: composes the components behind a single interface
package biz
