package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/eduatlas/catalog/internal/domain"
	"github.com/eduatlas/catalog/internal/search"
	pkgkafka "github.com/eduatlas/catalog/pkg/kafka"
)

// Consumer handles product events by replaying them into the search
// index. Because indexing is put-if-absent, redelivered events are
// harmless.
type Consumer struct {
	bridge *search.Bridge
	logger *slog.Logger
}

// NewConsumer creates a new event consumer for search indexing.
func NewConsumer(bridge *search.Bridge, logger *slog.Logger) *Consumer {
	return &Consumer{
		bridge: bridge,
		logger: logger,
	}
}

// Handle processes a Kafka event based on its type.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicProductCreated:
		return c.handleProductCreated(ctx, event)
	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

// handleProductCreated indexes a newly created product.
func (c *Consumer) handleProductCreated(ctx context.Context, event *pkgkafka.Event) error {
	var data ProductCreatedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal product.created data: %w", err)
	}

	product := &domain.Product{
		ID:          data.ID,
		Name:        data.Name,
		Department:  data.Department,
		Type:        domain.ProductType(data.Type),
		Description: data.Description,
		Address:     data.Address,
		Score:       data.Score,
		Difficulty:  data.Difficulty,
		Reviews:     data.Reviews,
		CreatedAt:   data.CreatedAt,
	}

	if err := c.bridge.PutIfAbsent(ctx, product); err != nil {
		return fmt.Errorf("index product from created event: %w", err)
	}

	c.logger.InfoContext(ctx, "indexed product from created event",
		slog.Int64("product_id", data.ID),
	)

	return nil
}
