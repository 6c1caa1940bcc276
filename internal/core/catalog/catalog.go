// Package catalog holds the immutable product list and pure selectors over it.
package catalog

import (
	"errors"
	"fmt"

	"github.com/niksmo/visionframe/internal/core/domain"
)

type Catalog struct {
	products []domain.Product
	index    map[string]int
}

// New validates products and returns a read-only catalog.
// Insertion order of products is preserved by every selector.
func New(products []domain.Product) (Catalog, error) {
	const op = "catalog.New"

	c := Catalog{
		products: make([]domain.Product, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for i, p := range products {
		c.products[i] = p.Clone()
	}

	var errs []error
	for i, p := range c.products {
		if _, ok := c.index[p.ID]; ok {
			errs = append(errs, fmt.Errorf("duplicate id %q", p.ID))
			continue
		}
		c.index[p.ID] = i
		if err := validate(p); err != nil {
			errs = append(errs, fmt.Errorf("product %q: %w", p.ID, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// Default returns the catalog built from the seed products.
func Default() Catalog {
	c, err := New(seed())
	if err != nil {
		panic(err) // develop mistake
	}
	return c
}

func validate(p domain.Product) error {
	switch {
	case p.ID == "":
		return errors.New("empty id")
	case !p.Type.Valid():
		return fmt.Errorf("unknown type %q", p.Type)
	case p.Price.IsNegative():
		return errors.New("negative price")
	case len(p.Colors) == 0:
		return errors.New("no colors")
	case len(p.ImageURLs) == 0:
		return errors.New("no images")
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("rating %.1f out of range", p.Rating)
	case p.ReviewCount < 0:
		return errors.New("negative review count")
	}
	return nil
}

func (c Catalog) Len() int {
	return len(c.products)
}

// All returns every product in catalog order.
func (c Catalog) All() []domain.Product {
	return c.selectWhere(func(domain.Product) bool { return true })
}

func (c Catalog) ByID(id string) (domain.Product, error) {
	const op = "Catalog.ByID"

	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}
	return c.products[i].Clone(), nil
}

func (c Catalog) ByType(t domain.ProductType) []domain.Product {
	return c.selectWhere(func(p domain.Product) bool { return p.Type == t })
}

func (c Catalog) Featured() []domain.Product {
	return c.selectWhere(func(p domain.Product) bool { return p.IsFeatured })
}

func (c Catalog) New() []domain.Product {
	return c.selectWhere(func(p domain.Product) bool { return p.IsNew })
}

func (c Catalog) selectWhere(pred func(domain.Product) bool) []domain.Product {
	ps := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if pred(p) {
			ps = append(ps, p.Clone())
		}
	}
	return ps
}
