package search

import (
	"strconv"

	"github.com/eduatlas/catalog/internal/domain"
)

// Document is the search index projection of a product record. It carries the
// fields the full-text query matches on plus the numeric filter fields.
type Document struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Department  string  `json:"department"`
	Description string  `json:"description,omitempty"`
	Address     string  `json:"address,omitempty"`
	Score       float64 `json:"score"`
	Difficulty  float64 `json:"difficulty"`
	Reviews     int     `json:"reviews"`
}

// DocID returns the index document ID for this document.
func (d Document) DocID() string {
	return strconv.FormatInt(d.ID, 10)
}

// NewDocument projects a product record into its search document.
func NewDocument(p *domain.Product) Document {
	return Document{
		ID:          p.ID,
		Name:        p.Name,
		Department:  p.Department,
		Description: p.Description,
		Address:     p.Address,
		Score:       p.Score,
		Difficulty:  p.Difficulty,
		Reviews:     p.Reviews,
	}
}
