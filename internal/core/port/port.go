package port

import (
	"context"
	"sync"

	"github.com/niksmo/visionframe/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// A KVStorage is the narrow persistence capability
// used by the favorites store and search history.
//
// Get returns [domain.ErrKeyNotFound] for absent keys.
type KVStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type EventsProducer interface {
	ProduceFavoriteEvent(context.Context, domain.FavoriteEvent) error
	ProduceSearchEvent(context.Context, domain.SearchEvent) error
}

type PopularityReader interface {
	Popularity(ctx context.Context, productID string) (int64, error)
}

type PopularityProcessor interface {
	runnerContextWg
	closer
}

type ProductReader interface {
	Product(id string) (domain.Product, error)
	Products(domain.FilterState) []domain.Product
	ProductsByType(domain.ProductType) []domain.Product
	FeaturedProducts() []domain.Product
	NewProducts() []domain.Product
	Popularity(ctx context.Context, productID string) (int64, error)
}

type ProductSearcher interface {
	Search(query string) []domain.Product
	SubmitSearch(ctx context.Context, query string) ([]string, error)
	SearchHistory() []string
	ClearSearchHistory(ctx context.Context) error
}

type FavoritesManager interface {
	ToggleFavorite(ctx context.Context, productID string) (bool, error)
	FavoriteStatus(productID string) domain.FavoriteStatus
	FavoriteProducts() ([]domain.Product, bool)
}

type CartManager interface {
	Cart() domain.CartSummary
	AddToCart(productID, color string, quantity int) (domain.CartSummary, error)
	UpdateCartQuantity(productID, color string, delta int) (domain.CartSummary, error)
	RemoveFromCart(productID, color string) (domain.CartSummary, error)
}
