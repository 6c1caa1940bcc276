package httphandler

import (
	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	Product struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		Brand         string          `json:"brand"`
		Type          string          `json:"type"`
		Price         decimal.Decimal `json:"price"`
		Colors        []string        `json:"colors"`
		ImageURLs     []string        `json:"image_urls"`
		Description   string          `json:"description"`
		Features      []string        `json:"features"`
		FrameShape    string          `json:"frame_shape"`
		FrameMaterial string          `json:"frame_material"`
		ARModelURL    string          `json:"ar_model_url,omitempty"`
		IsFeatured    bool            `json:"is_featured"`
		IsNew         bool            `json:"is_new"`
		Rating        float64         `json:"rating,omitempty"`
		ReviewCount   int             `json:"review_count,omitempty"`
	}

	ProductList struct {
		Products []Product `json:"products"`
		Empty    bool      `json:"empty"`
		Message  string    `json:"message,omitempty"`
	}

	Popularity struct {
		ProductID string `json:"product_id"`
		Favorites int64  `json:"favorites"`
	}
)

type (
	SearchResult struct {
		Query       string    `json:"query"`
		ShowHistory bool      `json:"show_history"`
		History     []string  `json:"history,omitempty"`
		Products    []Product `json:"products"`
		Empty       bool      `json:"empty"`
		Message     string    `json:"message,omitempty"`
	}

	SubmitSearch struct {
		Query string `json:"query"`
	}

	SearchHistory struct {
		History   []string `json:"history"`
		Persisted bool     `json:"persisted"`
		Warning   string   `json:"warning,omitempty"`
	}
)

type (
	FavoriteStatus struct {
		ProductID  string `json:"product_id"`
		Status     string `json:"status"`
		IsFavorite bool   `json:"is_favorite"`
	}

	FavoriteToggle struct {
		ProductID  string `json:"product_id"`
		IsFavorite bool   `json:"is_favorite"`
		Persisted  bool   `json:"persisted"`
		Warning    string `json:"warning,omitempty"`
	}

	FavoriteList struct {
		Loaded   bool      `json:"loaded"`
		Products []Product `json:"products"`
		Empty    bool      `json:"empty"`
	}
)

type (
	CartItem struct {
		ProductID string          `json:"product_id"`
		Name      string          `json:"name"`
		Type      string          `json:"type"`
		Price     decimal.Decimal `json:"price"`
		Color     string          `json:"color"`
		Quantity  int             `json:"quantity"`
		ImageURL  string          `json:"image_url"`
		LineTotal decimal.Decimal `json:"line_total"`
	}

	Cart struct {
		Items    []CartItem      `json:"items"`
		Subtotal decimal.Decimal `json:"subtotal"`
		Shipping decimal.Decimal `json:"shipping"`
		Total    decimal.Decimal `json:"total"`
	}

	AddCartItem struct {
		ProductID string `json:"product_id"`
		Color     string `json:"color"`
		Quantity  int    `json:"quantity"`
	}

	UpdateCartItem struct {
		Color string `json:"color"`
		Delta int    `json:"delta"`
	}
)

func toProduct(p domain.Product) Product {
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		Type:          string(p.Type),
		Price:         p.Price,
		Colors:        p.Colors,
		ImageURLs:     p.ImageURLs,
		Description:   p.Description,
		Features:      p.Features,
		FrameShape:    p.FrameShape,
		FrameMaterial: p.FrameMaterial,
		ARModelURL:    p.ARModelURL,
		IsFeatured:    p.IsFeatured,
		IsNew:         p.IsNew,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
	}
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = toProduct(p)
	}
	return out
}

func toCart(s domain.CartSummary) Cart {
	items := make([]CartItem, len(s.Items))
	for i, it := range s.Items {
		items[i] = CartItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Type:      string(it.Type),
			Price:     it.Price,
			Color:     it.Color,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
			LineTotal: it.LineTotal(),
		}
	}
	return Cart{
		Items:    items,
		Subtotal: s.Subtotal,
		Shipping: s.Shipping,
		Total:    s.Total,
	}
}
