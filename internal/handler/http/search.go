package http

import (
	"log/slog"
	"net/http"

	"github.com/eduatlas/catalog/pkg/httputil"

	"github.com/eduatlas/catalog/internal/domain"
	"github.com/eduatlas/catalog/internal/service"
)

// SearchHandler handles HTTP requests for search endpoints.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// Search handles GET /search?q=&score=&score=&difficulty=&difficulty=.
// Each range parameter is repeated: first value is the lower bound,
// second the upper.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	hits, err := h.service.Search(r.Context(), query.Get("q"), query["score"], query["difficulty"])
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: hits})
}

// Similar handles GET /search/similar?id=&extra=. The extra parameter is
// repeatable; its terms are excluded from similarity consideration.
func (h *SearchHandler) Similar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	id, ok := httputil.ParseID(w, query.Get("id"))
	if !ok {
		return
	}

	result, err := h.service.Similar(r.Context(), id, query["extra"])
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if len(result.Hits) > 0 {
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result.Hits})
		return
	}

	// Fallback recommendations come from the record store, so the usual
	// read projection applies.
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.Views(result.Fallback)})
}
