// Package cart holds the in-memory shopping cart.
package cart

import (
	"fmt"
	"slices"
	"sync"

	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FlatShipping is charged once for a non-empty cart.
var FlatShipping = decimal.RequireFromString("5.99")

// A Cart is a list of lines keyed by product id and color.
// It is safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []domain.CartItem
}

func New() *Cart {
	return &Cart{}
}

// Add puts quantity units of p in color into the cart.
//
// An empty color selects the first product color.
// Adding an existing line increases its quantity.
func (c *Cart) Add(p domain.Product, color string, quantity int) error {
	const op = "Cart.Add"

	if quantity < 1 {
		return fmt.Errorf("%s: %w: %d", op, domain.ErrInvalidQuantity, quantity)
	}
	if color == "" && len(p.Colors) != 0 {
		color = p.Colors[0]
	}
	if !p.HasColor(color) {
		return fmt.Errorf("%s: %w: %q", op, domain.ErrInvalidColor, color)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(p.ID, color); i != -1 {
		c.items[i].Quantity += quantity
		return nil
	}

	item := domain.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Type:      p.Type,
		Price:     p.Price,
		Color:     color,
		Quantity:  quantity,
	}
	if len(p.ImageURLs) != 0 {
		item.ImageURL = p.ImageURLs[0]
	}
	c.items = append(c.items, item)
	return nil
}

// UpdateQuantity adds delta to the line quantity, never going below one.
func (c *Cart) UpdateQuantity(productID, color string, delta int) error {
	const op = "Cart.UpdateQuantity"

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(productID, color)
	if i == -1 {
		return fmt.Errorf("%s: %w", op, domain.ErrCartItemNotFound)
	}
	c.items[i].Quantity = max(1, c.items[i].Quantity+delta)
	return nil
}

func (c *Cart) Remove(productID, color string) error {
	const op = "Cart.Remove"

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(productID, color)
	if i == -1 {
		return fmt.Errorf("%s: %w", op, domain.ErrCartItemNotFound)
	}
	c.items = slices.Delete(c.items, i, i+1)
	return nil
}

func (c *Cart) find(productID, color string) int {
	return slices.IndexFunc(c.items, func(it domain.CartItem) bool {
		return it.ProductID == productID && it.Color == color
	})
}

func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Summary returns the lines with subtotal, shipping and total
// computed from one consistent snapshot.
func (c *Cart) Summary() domain.CartSummary {
	items := c.Items()

	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}

	shipping := decimal.Zero
	if len(items) != 0 {
		shipping = FlatShipping
	}

	if items == nil {
		items = []domain.CartItem{}
	}
	return domain.CartSummary{
		Items:    items,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}

func (c *Cart) Subtotal() decimal.Decimal {
	return c.Summary().Subtotal
}

func (c *Cart) Shipping() decimal.Decimal {
	return c.Summary().Shipping
}

func (c *Cart) Total() decimal.Decimal {
	return c.Summary().Total
}
