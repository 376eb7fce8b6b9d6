package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eduatlas/catalog/internal/domain"
)

// DB is the subset of the pgx pool interface the repositories use. It is
// satisfied by *pgxpool.Pool and by pgxmock.PgxPoolIface in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product and fills its generated ID and creation
	// timestamp.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its identifier. Returns a NotFound
	// error if no such product exists.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List returns up to limit products ordered by ID ascending, starting
	// at offset.
	List(ctx context.Context, limit, offset int) ([]domain.Product, error)

	// ListByDepartment returns all products in the given department,
	// ordered by score descending then reviews descending.
	ListByDepartment(ctx context.Context, department string) ([]domain.Product, error)
}
