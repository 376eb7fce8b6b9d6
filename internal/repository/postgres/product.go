package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/eduatlas/catalog/pkg/errors"

	"github.com/eduatlas/catalog/internal/domain"
	"github.com/eduatlas/catalog/internal/repository"
)

const productColumns = `id, name, department, type, description, address, links, picture, point, grade_from, grade_to, score, difficulty, reviews, created_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db repository.DB
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db repository.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product. The generated ID and creation timestamp are
// assigned by the database and written back onto the product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (name, department, type, description, address, links, picture, point, grade_from, grade_to, score, difficulty, reviews)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		p.Name,
		p.Department,
		p.Type,
		p.Description,
		p.Address,
		p.Links,
		p.Picture,
		p.Point,
		p.GradeFrom,
		p.GradeTo,
		p.Score,
		p.Difficulty,
		p.Reviews,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	return p, nil
}

// List returns up to limit products ordered by ID ascending, starting at offset.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY id ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListByDepartment returns all products in the given department, ordered by
// score descending then reviews descending.
func (r *ProductRepository) ListByDepartment(ctx context.Context, department string) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE department LIKE $1
		ORDER BY score DESC, reviews DESC`

	rows, err := r.db.Query(ctx, query, department)
	if err != nil {
		return nil, fmt.Errorf("list products by department: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Department,
		&p.Type,
		&p.Description,
		&p.Address,
		&p.Links,
		&p.Picture,
		&p.Point,
		&p.GradeFrom,
		&p.GradeTo,
		&p.Score,
		&p.Difficulty,
		&p.Reviews,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}
