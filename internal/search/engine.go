package search

import (
	"context"
)

// Hit is a raw search hit: the stored document's field map, returned to
// clients as-is in the index's relevance order.
type Hit map[string]any

// Engine defines the interface for indexing and querying product documents.
// Implementations may use Elasticsearch, in-memory storage, or other backends.
type Engine interface {
	// Exists reports whether a document with the given ID is in the index.
	Exists(ctx context.Context, id string) (bool, error)

	// Put adds or replaces a document in the index.
	Put(ctx context.Context, doc Document) error

	// Search executes a full-text plus range-filter query and returns the
	// matching documents in relevance order.
	Search(ctx context.Context, query *Query) ([]Hit, error)

	// MoreLikeThis executes a similarity query seeded by the document with
	// the given ID over the description, address, and department fields.
	// The unlike terms are excluded from similarity consideration.
	MoreLikeThis(ctx context.Context, id string, unlike []string) ([]Hit, error)
}
