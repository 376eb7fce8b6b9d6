package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/eduatlas/catalog/internal/search"
)

// Engine is an in-memory implementation of the search.Engine interface.
// Full-text matching is term containment over the same fields the
// Elasticsearch engine queries, with the same relative field weights for
// ordering. Thread-safe via sync.RWMutex.
type Engine struct {
	mu   sync.RWMutex
	docs map[string]search.Document
}

// New creates a new in-memory search engine.
func New() *Engine {
	return &Engine{
		docs: make(map[string]search.Document),
	}
}

// Exists reports whether a document with the given ID is in the index.
func (e *Engine) Exists(_ context.Context, id string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	_, ok := e.docs[id]
	return ok, nil
}

// Put adds or replaces a document in the index.
func (e *Engine) Put(_ context.Context, doc search.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.docs[doc.DocID()] = doc
	return nil
}

// Clear removes every document from the index.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.docs = make(map[string]search.Document)
}

// Len returns the number of indexed documents.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.docs)
}

type scoredDoc struct {
	doc   search.Document
	score float64
}

// Search executes a full-text plus range-filter query. Documents are ranked
// by the sum of the boosts of the fields the query terms appear in.
func (e *Engine) Search(_ context.Context, query *search.Query) ([]search.Hit, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(query.Text))

	var matched []scoredDoc
	for _, doc := range e.docs {
		if doc.Score < query.Score.Min || doc.Score > query.Score.Max {
			continue
		}
		if doc.Difficulty < query.Difficulty.Min || doc.Difficulty > query.Difficulty.Max {
			continue
		}

		relevance := relevanceOf(doc, terms)
		if len(terms) > 0 && relevance == 0 {
			continue
		}
		matched = append(matched, scoredDoc{doc: doc, score: relevance})
	}

	sortByRelevance(matched)
	return toHits(matched), nil
}

// MoreLikeThis ranks other documents by term overlap with the seed document
// over the description, address, and department fields. Terms listed in
// unlike are ignored. The seed itself is never returned.
func (e *Engine) MoreLikeThis(_ context.Context, id string, unlike []string) ([]search.Hit, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	seed, ok := e.docs[id]
	if !ok {
		return []search.Hit{}, nil
	}

	excluded := make(map[string]struct{}, len(unlike))
	for _, term := range unlike {
		excluded[strings.ToLower(term)] = struct{}{}
	}

	seedTerms := make(map[string]struct{})
	for _, term := range similarityTerms(seed) {
		if _, skip := excluded[term]; skip {
			continue
		}
		seedTerms[term] = struct{}{}
	}

	var matched []scoredDoc
	for docID, doc := range e.docs {
		if docID == id {
			continue
		}

		overlap := 0
		for _, term := range similarityTerms(doc) {
			if _, ok := seedTerms[term]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		matched = append(matched, scoredDoc{doc: doc, score: float64(overlap)})
	}

	sortByRelevance(matched)
	return toHits(matched), nil
}

// similarityTerms returns the lowercased terms of the fields the similarity
// query considers.
func similarityTerms(doc search.Document) []string {
	text := strings.ToLower(doc.Description + " " + doc.Address + " " + doc.Department)
	return strings.Fields(text)
}

// relevanceOf sums the boosts of the fields each query term appears in,
// mirroring the boosted multi-match fields of the real engine.
func relevanceOf(doc search.Document, terms []string) float64 {
	fields := []struct {
		text  string
		boost float64
	}{
		{strings.ToLower(doc.Name), 5},
		{strings.ToLower(doc.Department), 3},
		{strings.ToLower(doc.Description), 2},
		{strings.ToLower(doc.Address), 1},
	}

	var relevance float64
	for _, term := range terms {
		for _, f := range fields {
			if strings.Contains(f.text, term) {
				relevance += f.boost
			}
		}
	}
	return relevance
}

// sortByRelevance orders by relevance descending with ID ascending as a
// deterministic tie-break.
func sortByRelevance(docs []scoredDoc) {
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].score != docs[j].score {
			return docs[i].score > docs[j].score
		}
		return docs[i].doc.ID < docs[j].doc.ID
	})
}

func toHits(docs []scoredDoc) []search.Hit {
	hits := make([]search.Hit, 0, len(docs))
	for _, sd := range docs {
		hits = append(hits, search.Hit{
			"id":          sd.doc.ID,
			"name":        sd.doc.Name,
			"department":  sd.doc.Department,
			"description": sd.doc.Description,
			"address":     sd.doc.Address,
			"score":       sd.doc.Score,
			"difficulty":  sd.doc.Difficulty,
			"reviews":     sd.doc.Reviews,
		})
	}
	return hits
}
