package search

import (
	"fmt"
	"strconv"

	apperrors "github.com/eduatlas/catalog/pkg/errors"
)

// Fields the full-text clause matches on, with their relative boosts. Name and
// department are the primary discriminators for this domain.
var matchFields = []string{"name^5", "department^3", "description^2", "address"}

// Range is an inclusive numeric filter bound pair.
type Range struct {
	Min float64
	Max float64
}

// Query holds the parameters of a full-text search request.
type Query struct {
	Text       string
	Score      Range
	Difficulty Range
}

// ParseRange validates and converts a repeated query parameter into a Range.
// Exactly the first two values are used as (min, max). Fewer than two values,
// non-numeric values, or min > max are rejected with InvalidRangeFilter.
func ParseRange(field string, values []string) (Range, error) {
	if len(values) < 2 {
		return Range{}, apperrors.InvalidRangeFilter(field, "requires two values (min, max)")
	}

	min, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return Range{}, apperrors.InvalidRangeFilter(field, fmt.Sprintf("min %q is not a number", values[0]))
	}
	max, err := strconv.ParseFloat(values[1], 64)
	if err != nil {
		return Range{}, apperrors.InvalidRangeFilter(field, fmt.Sprintf("max %q is not a number", values[1]))
	}
	if min > max {
		return Range{}, apperrors.InvalidRangeFilter(field, "min must not exceed max")
	}

	return Range{Min: min, Max: max}, nil
}

// NewQuery builds a validated Query from the raw query string and the repeated
// score and difficulty parameters.
func NewQuery(text string, score, difficulty []string) (*Query, error) {
	scoreRange, err := ParseRange("score", score)
	if err != nil {
		return nil, err
	}
	difficultyRange, err := ParseRange("difficulty", difficulty)
	if err != nil {
		return nil, err
	}

	return &Query{
		Text:       text,
		Score:      scoreRange,
		Difficulty: difficultyRange,
	}, nil
}

// Body returns the query as a search DSL document: a bool query with a MUST
// multi-match clause over the boosted fields and non-scoring FILTER range
// clauses on score and difficulty.
func (q *Query) Body() map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{
						"multi_match": map[string]any{
							"query":  q.Text,
							"fields": matchFields,
						},
					},
				},
				"filter": []any{
					rangeClause("score", q.Score),
					rangeClause("difficulty", q.Difficulty),
				},
			},
		},
	}
}

func rangeClause(field string, r Range) map[string]any {
	return map[string]any{
		"range": map[string]any{
			field: map[string]any{
				"gte": r.Min,
				"lte": r.Max,
			},
		},
	}
}
