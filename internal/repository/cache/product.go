package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eduatlas/catalog/internal/domain"
	"github.com/eduatlas/catalog/internal/repository"
)

const keyPrefix = "product:"

// ProductRepository is a read-through Redis cache in front of another
// product repository. Lookups by ID are served from the cache when
// possible; cache failures fall back to the underlying repository so a
// Redis outage degrades latency, not availability.
type ProductRepository struct {
	next   repository.ProductRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewProductRepository wraps next with a Redis cache for GetByID.
func NewProductRepository(next repository.ProductRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Create delegates to the underlying repository and caches the stored
// product so an immediate read hits the cache.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.next.Create(ctx, product); err != nil {
		return err
	}

	r.set(ctx, product)
	return nil
}

// GetByID retrieves a product by its identifier, consulting the cache
// first.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	key := productKey(id)

	data, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var p domain.Product
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		r.logger.WarnContext(ctx, "corrupt cache entry, falling through", "key", key)
	} else if err != redis.Nil {
		r.logger.WarnContext(ctx, "cache read failed, falling through", "key", key, "error", err)
	}

	p, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.set(ctx, p)
	return p, nil
}

// List delegates to the underlying repository. Listing pages are not
// cached; every new product would invalidate them.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	return r.next.List(ctx, limit, offset)
}

// ListByDepartment delegates to the underlying repository.
func (r *ProductRepository) ListByDepartment(ctx context.Context, department string) ([]domain.Product, error) {
	return r.next.ListByDepartment(ctx, department)
}

func (r *ProductRepository) set(ctx context.Context, p *domain.Product) {
	data, err := json.Marshal(p)
	if err != nil {
		r.logger.WarnContext(ctx, "marshal product for cache", "id", p.ID, "error", err)
		return
	}

	key := productKey(p.ID)
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

func productKey(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}
