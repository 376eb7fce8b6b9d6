package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/eduatlas/catalog/internal/domain"
	pkgkafka "github.com/eduatlas/catalog/pkg/kafka"
)

// Kafka topic constants for product domain events.
const (
	TopicProductCreated = "catalog.product.created"
)

// Aggregate type constant.
const AggregateTypeProduct = "product"

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// ProductCreatedData is the payload for a product.created event. It
// carries everything the search index needs so consumers never have to
// read the database.
type ProductCreatedData struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Department  string    `json:"department"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Score       float64   `json:"score"`
	Difficulty  float64   `json:"difficulty"`
	Reviews     int       `json:"reviews"`
	CreatedAt   time.Time `json:"created_at"`
}

// Producer publishes product domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	data := ProductCreatedData{
		ID:          product.ID,
		Name:        product.Name,
		Department:  product.Department,
		Type:        string(product.Type),
		Description: product.Description,
		Address:     product.Address,
		Score:       product.Score,
		Difficulty:  product.Difficulty,
		Reviews:     product.Reviews,
		CreatedAt:   product.CreatedAt,
	}

	aggregateID := strconv.FormatInt(product.ID, 10)
	event, err := pkgkafka.NewEvent(TopicProductCreated, aggregateID, AggregateTypeProduct, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.Int64("product_id", product.ID),
		slog.String("department", product.Department),
	)

	return nil
}
