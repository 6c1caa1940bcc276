// Package query derives display lists from the catalog,
// either by a filter state or by a free-text query.
package query

import "github.com/niksmo/visionframe/internal/core/domain"

type predicate func(domain.Product) bool

// Filter narrows products by fs keeping the input order.
//
// The category is applied first, then brand, frame shape,
// frame material and price range. Unset fields match everything.
func Filter(products []domain.Product, fs domain.FilterState) []domain.Product {
	preds := []predicate{categoryPredicate(fs.Category)}

	if fs.Brand != "" {
		preds = append(preds, func(p domain.Product) bool {
			return p.Brand == fs.Brand
		})
	}
	if fs.FrameShape != "" {
		preds = append(preds, func(p domain.Product) bool {
			return p.FrameShape == fs.FrameShape
		})
	}
	if fs.FrameMaterial != "" {
		preds = append(preds, func(p domain.Product) bool {
			return p.FrameMaterial == fs.FrameMaterial
		})
	}
	if fs.PriceRange != "" {
		preds = append(preds, func(p domain.Product) bool {
			return fs.PriceRange.Contains(p.Price)
		})
	}

	out := products
	for _, pred := range preds {
		out = narrow(out, pred)
	}
	return out
}

func categoryPredicate(c domain.Category) predicate {
	switch c {
	case domain.CategoryEyeglasses:
		return func(p domain.Product) bool { return p.Type == domain.Eyeglasses }
	case domain.CategorySunglasses:
		return func(p domain.Product) bool { return p.Type == domain.Sunglasses }
	case domain.CategoryNew:
		return func(p domain.Product) bool { return p.IsNew }
	case domain.CategoryFeatured:
		return func(p domain.Product) bool { return p.IsFeatured }
	default:
		return func(domain.Product) bool { return true }
	}
}

func narrow(ps []domain.Product, pred predicate) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
