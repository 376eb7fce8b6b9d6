package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/eduatlas/catalog/pkg/errors"

	"github.com/eduatlas/catalog/internal/domain"
	"github.com/eduatlas/catalog/internal/event"
	"github.com/eduatlas/catalog/internal/repository"
	"github.com/eduatlas/catalog/internal/search"
	"github.com/eduatlas/catalog/internal/uploader"
)

// ProductService implements the business logic for product operations.
//
// Creation runs in strict order: the picture is uploaded first, then the
// record is persisted, and only then is the product indexed. An upload
// failure aborts before anything is written; a persistence failure leaves
// the index untouched. Indexing happens after the response and its
// failure is only logged, since the created event lets the index catch up
// later.
type ProductService struct {
	repo              repository.ProductRepository
	uploader          uploader.Uploader
	bridge            *search.Bridge
	producer          *event.Producer
	logger            *slog.Logger
	pageSize          int
	defaultDepartment string
	indexTimeout      time.Duration
}

// ProductServiceConfig holds the tunables of the product service.
type ProductServiceConfig struct {
	// PageSize is the fixed page size for listing.
	PageSize int

	// DefaultDepartment is assigned when a creation payload omits the
	// department.
	DefaultDepartment string

	// IndexTimeout bounds the post-response indexing work.
	IndexTimeout time.Duration
}

// NewProductService creates a new product service. The producer may be
// nil when event publishing is disabled.
func NewProductService(
	repo repository.ProductRepository,
	up uploader.Uploader,
	bridge *search.Bridge,
	producer *event.Producer,
	cfg ProductServiceConfig,
	logger *slog.Logger,
) *ProductService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.IndexTimeout <= 0 {
		cfg.IndexTimeout = 10 * time.Second
	}

	return &ProductService{
		repo:              repo,
		uploader:          up,
		bridge:            bridge,
		producer:          producer,
		logger:            logger,
		pageSize:          cfg.PageSize,
		defaultDepartment: cfg.DefaultDepartment,
		indexTimeout:      cfg.IndexTimeout,
	}
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string
	Department  string
	Type        string
	Description string
	Address     string
	Links       string
	Point       string
	GradeFrom   int
	GradeTo     int

	// ImageName and Image carry the optional picture. Image is nil when
	// no picture was submitted.
	ImageName string
	Image     io.Reader
}

// CreateProduct creates a new product with the given input.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Type != "" && !domain.IsValidType(input.Type) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid type %q", input.Type))
	}
	if input.GradeTo != 0 && input.GradeTo < input.GradeFrom {
		return nil, apperrors.InvalidInput("grade_to must not be below grade_from")
	}

	// The picture goes out first so a rejected upload leaves no record
	// behind.
	var pictureURL string
	if input.Image != nil {
		url, err := s.uploader.Upload(ctx, input.ImageName, input.Image)
		if err != nil {
			s.logger.ErrorContext(ctx, "picture upload failed, aborting create",
				slog.String("name", input.Name),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
		pictureURL = url
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(input.Name),
		Department:  input.Department,
		Type:        domain.ProductType(input.Type),
		Description: input.Description,
		Address:     input.Address,
		Links:       input.Links,
		Picture:     pictureURL,
		Point:       input.Point,
		GradeFrom:   input.GradeFrom,
		GradeTo:     input.GradeTo,
	}
	product.ApplyDefaults(s.defaultDepartment)

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperrors.PersistenceFailed(fmt.Errorf("create product: %w", err))
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.String("department", product.Department),
		slog.String("type", string(product.Type)),
	)

	go s.indexAndAnnounce(ctx, product)

	return product, nil
}

// indexAndAnnounce runs after the response is committed. It reuses the
// request's values (correlation ID, trace) but not its cancellation.
func (s *ProductService) indexAndAnnounce(ctx context.Context, product *domain.Product) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.indexTimeout)
	defer cancel()

	if err := s.bridge.PutIfAbsent(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to index created product",
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	if s.producer == nil {
		return
	}
	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}
}

// GetProduct retrieves a product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListProducts returns the requested page of products in ID order. Pages
// are zero-based and of fixed size.
func (s *ProductService) ListProducts(ctx context.Context, page int) ([]domain.Product, error) {
	if page < 0 {
		page = 0
	}

	products, err := s.repo.List(ctx, s.pageSize, page*s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
