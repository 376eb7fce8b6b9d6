package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	apperrors "github.com/eduatlas/catalog/pkg/errors"

	"github.com/eduatlas/catalog/internal/domain"
	"github.com/eduatlas/catalog/internal/repository"
	"github.com/eduatlas/catalog/internal/search"
)

// SearchService implements full-text search and similarity
// recommendations over the search engine, with the record store as a
// recommendation fallback.
type SearchService struct {
	engine search.Engine
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(engine search.Engine, repo repository.ProductRepository, logger *slog.Logger) *SearchService {
	return &SearchService{
		engine: engine,
		repo:   repo,
		logger: logger,
	}
}

// Search runs a full-text query constrained by score and difficulty
// ranges. Each range parameter must carry at least two values (min, max).
func (s *SearchService) Search(ctx context.Context, text string, score, difficulty []string) ([]search.Hit, error) {
	query, err := search.NewQuery(text, score, difficulty)
	if err != nil {
		return nil, err
	}

	hits, err := s.engine.Search(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "search query failed",
			slog.String("q", text),
			slog.Any("score", score),
			slog.Any("difficulty", difficulty),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.IndexQueryFailed(err)
	}

	return hits, nil
}

// SimilarResult is the outcome of a similarity lookup. Exactly one of
// Hits and Fallback is populated: Hits carries index results in relevance
// order, Fallback carries department matches from the record store when
// the index had no similarity signal.
type SimilarResult struct {
	Hits     []search.Hit
	Fallback []domain.Product
}

// Similar returns products similar to the one identified by id. Terms in
// extra are excluded from similarity consideration. When the index
// returns no hits, products sharing the seed's department are returned
// instead, best scored first.
func (s *SearchService) Similar(ctx context.Context, id int64, extra []string) (*SimilarResult, error) {
	docID := strconv.FormatInt(id, 10)

	hits, err := s.engine.MoreLikeThis(ctx, docID, extra)
	if err != nil {
		s.logger.ErrorContext(ctx, "similarity query failed",
			slog.Int64("product_id", id),
			slog.Any("extra", extra),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.IndexQueryFailed(err)
	}
	if len(hits) > 0 {
		return &SimilarResult{Hits: hits}, nil
	}

	seed, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get similarity seed: %w", err)
	}

	products, err := s.repo.ListByDepartment(ctx, seed.Department)
	if err != nil {
		return nil, fmt.Errorf("list fallback recommendations: %w", err)
	}

	s.logger.DebugContext(ctx, "similarity fell back to department listing",
		slog.Int64("product_id", id),
		slog.String("department", seed.Department),
		slog.Int("count", len(products)),
	)

	return &SimilarResult{Fallback: products}, nil
}
