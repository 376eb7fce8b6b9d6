package domain

import (
	"time"
)

// ProductType classifies a catalog entry.
type ProductType string

// Product type constants.
const (
	TypeProfessor ProductType = "PROFESSOR"
	TypeClass     ProductType = "CLASS"
	TypeSchool    ProductType = "SCHOOL"
)

// Defaults applied to new products.
const (
	DefaultScore      = 50.0
	DefaultDifficulty = 50.0
)

// Product represents a catalog entry: a professor, a class, or a school.
//
// Score, Difficulty, Reviews, and CreatedAt are system-managed. They are never
// taken from a creation payload and are not exposed on read (see View).
type Product struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Department  string      `json:"department"`
	Type        ProductType `json:"type"`
	Description string      `json:"description,omitempty"`
	Address     string      `json:"address,omitempty"`
	Links       string      `json:"links,omitempty"`
	Picture     string      `json:"picture,omitempty"`
	Point       string      `json:"point,omitempty"` // WKT location
	GradeFrom   int         `json:"grade_from"`
	GradeTo     int         `json:"grade_to"`
	Score       float64     `json:"score"`
	Difficulty  float64     `json:"difficulty"`
	Reviews     int         `json:"reviews"`
	CreatedAt   time.Time   `json:"created_at"`
}

// View is the client-facing projection of a Product. The review-subsystem
// fields (score, difficulty, reviews) and the creation timestamp are omitted.
type View struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Department  string      `json:"department"`
	Type        ProductType `json:"type"`
	Description string      `json:"description,omitempty"`
	Address     string      `json:"address,omitempty"`
	Links       string      `json:"links,omitempty"`
	Picture     string      `json:"picture,omitempty"`
	Point       string      `json:"point,omitempty"`
	GradeFrom   int         `json:"grade_from"`
	GradeTo     int         `json:"grade_to"`
}

// View returns the client-facing projection of the product.
func (p *Product) View() View {
	return View{
		ID:          p.ID,
		Name:        p.Name,
		Department:  p.Department,
		Type:        p.Type,
		Description: p.Description,
		Address:     p.Address,
		Links:       p.Links,
		Picture:     p.Picture,
		Point:       p.Point,
		GradeFrom:   p.GradeFrom,
		GradeTo:     p.GradeTo,
	}
}

// Views maps a slice of products to their client-facing projections.
func Views(products []Product) []View {
	views := make([]View, len(products))
	for i := range products {
		views[i] = products[i].View()
	}
	return views
}

// ValidTypes returns the set of valid product types.
func ValidTypes() []ProductType {
	return []ProductType{TypeProfessor, TypeClass, TypeSchool}
}

// IsValidType checks whether the given string is a valid product type.
func IsValidType(t string) bool {
	for _, v := range ValidTypes() {
		if string(v) == t {
			return true
		}
	}
	return false
}

// ApplyDefaults fills system-managed and defaulted fields on a new product.
// The department default comes from configuration.
func (p *Product) ApplyDefaults(defaultDepartment string) {
	if p.Department == "" {
		p.Department = defaultDepartment
	}
	if p.Type == "" {
		p.Type = TypeProfessor
	}
	p.Score = DefaultScore
	p.Difficulty = DefaultDifficulty
	p.Reviews = 0
}
