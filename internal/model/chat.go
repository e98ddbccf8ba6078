package model

// QueryResult is the pipeline's answer to one user query.
type QueryResult struct {
	// Answer is the synthesized (or fixed greeting) response text.
	Answer string `json:"answer"`

	// Intent is the resolved handling mode, returned as metadata for
	// observability and evaluation.
	Intent Intent `json:"intent"`

	// Sources are the retrieved documents the answer was grounded in.
	// Empty for greetings and for queries where retrieval found nothing.
	Sources []DocumentSource `json:"sources"`
}

// DocumentSource describes one retrieved corpus document.
type DocumentSource struct {
	// DocumentID is the stable entity id ("player:<id>" or "team:<name>").
	DocumentID string `json:"document_id"`

	// DocumentName is the entity display name.
	DocumentName string `json:"document_name"`

	// Kind is the entity kind (player or team).
	Kind string `json:"kind"`

	// Content is the full textual rendering stored in the index.
	Content string `json:"content"`

	// Score is the similarity score from the vector search.
	Score float32 `json:"score"`
}
