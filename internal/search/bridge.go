package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eduatlas/catalog/internal/domain"
)

// Bridge keeps the search index in agreement with the record store. It owns
// the put-if-absent contract: a record already indexed is never overwritten,
// so an index entry updated out of band survives a re-run.
type Bridge struct {
	engine Engine
	logger *slog.Logger
}

// NewBridge creates a new indexing bridge over the given engine.
func NewBridge(engine Engine, logger *slog.Logger) *Bridge {
	return &Bridge{engine: engine, logger: logger}
}

// PutIfAbsent projects the product into its search document and inserts it
// only if no document with that ID exists yet. Calling it twice for the same
// ID leaves exactly one document in the index.
func (b *Bridge) PutIfAbsent(ctx context.Context, p *domain.Product) error {
	doc := NewDocument(p)

	exists, err := b.engine.Exists(ctx, doc.DocID())
	if err != nil {
		return fmt.Errorf("check document exists: %w", err)
	}
	if exists {
		b.logger.DebugContext(ctx, "document already indexed, skipping",
			slog.Int64("product_id", p.ID),
		)
		return nil
	}

	if err := b.engine.Put(ctx, doc); err != nil {
		return fmt.Errorf("put document: %w", err)
	}

	b.logger.InfoContext(ctx, "product indexed",
		slog.Int64("product_id", p.ID),
		slog.String("department", p.Department),
	)
	return nil
}
