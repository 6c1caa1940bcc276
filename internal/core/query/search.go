package query

import (
	"strings"

	"github.com/niksmo/visionframe/internal/core/domain"
	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s used for matching.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// NormalizeQuery trims surrounding whitespace.
// An empty result means there is nothing to search for.
func NormalizeQuery(q string) string {
	return strings.TrimSpace(q)
}

// Search returns products whose name, type, description or brand
// contains q ignoring case. An empty query returns no products.
func Search(products []domain.Product, q string) []domain.Product {
	q = NormalizeQuery(q)
	if q == "" {
		return []domain.Product{}
	}

	folded := Fold(q)
	return narrow(products, func(p domain.Product) bool {
		for _, field := range [...]string{
			p.Name, string(p.Type), p.Description, p.Brand,
		} {
			if strings.Contains(Fold(field), folded) {
				return true
			}
		}
		return false
	})
}
