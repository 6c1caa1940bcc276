package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/visionframe/internal/core/cart"
	"github.com/niksmo/visionframe/internal/core/catalog"
	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/favorites"
	"github.com/niksmo/visionframe/internal/core/history"
	"github.com/niksmo/visionframe/internal/core/port"
	"github.com/niksmo/visionframe/internal/core/query"
)

var _ port.ProductReader = (*Service)(nil)
var _ port.ProductSearcher = (*Service)(nil)
var _ port.FavoritesManager = (*Service)(nil)
var _ port.CartManager = (*Service)(nil)

type Service struct {
	catalog       catalog.Catalog
	favorites     *favorites.Store
	history       *history.Store
	cart          *cart.Cart
	eventProducer port.EventsProducer
	popularity    port.PopularityReader
	popularityPrc port.PopularityProcessor
	now           func() time.Time
}

// New returns the storefront service.
//
// eventProducer, popularity and popularityPrc are optional and may be nil.
func New(
	c catalog.Catalog,
	favoritesStore *favorites.Store,
	historyStore *history.Store,
	eventProducer port.EventsProducer,
	popularity port.PopularityReader,
	popularityPrc port.PopularityProcessor,
) Service {
	return Service{
		catalog:       c,
		favorites:     favoritesStore,
		history:       historyStore,
		cart:          cart.New(),
		eventProducer: eventProducer,
		popularity:    popularity,
		popularityPrc: popularityPrc,
		now:           time.Now,
	}
}

// Run loads the persisted stores and runs the popularity processor
// in a separate goroutine.
//
// Blocks current goroutine while components is preparing to ready state.
// Load failures are not fatal: the stores fall back to empty state.
func (s Service) Run(ctx context.Context, stopFn context.CancelFunc) {
	const op = "Service.Run"
	log := slog.With("op", op)

	if err := s.Load(ctx); err != nil {
		log.Warn("persisted state is not restored", "err", err)
	}

	if s.popularityPrc == nil {
		return
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go s.popularityPrc.Run(ctx, stopFn, &wg)
	wg.Wait()
}

// Load restores favorites and search history.
func (s Service) Load(ctx context.Context) error {
	const op = "Service.Load"

	_, favErr := s.favorites.Load(ctx)
	_, histErr := s.history.Load(ctx)
	if err := errors.Join(favErr, histErr); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) Close() {
	if s.popularityPrc != nil {
		s.popularityPrc.Close()
	}
}

func (s Service) Product(id string) (domain.Product, error) {
	const op = "Service.Product"

	p, err := s.catalog.ByID(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Products returns the catalog narrowed by fs in catalog order.
func (s Service) Products(fs domain.FilterState) []domain.Product {
	browse := query.NewBrowseSession(s.catalog)
	browse.SetFilters(fs)
	return browse.Results().Products
}

func (s Service) ProductsByType(t domain.ProductType) []domain.Product {
	return s.catalog.ByType(t)
}

func (s Service) FeaturedProducts() []domain.Product {
	return s.catalog.Featured()
}

func (s Service) NewProducts() []domain.Product {
	return s.catalog.New()
}

// Popularity returns the number of times productID is currently
// favorited across all clients.
func (s Service) Popularity(
	ctx context.Context, productID string,
) (int64, error) {
	const op = "Service.Popularity"

	if _, err := s.catalog.ByID(productID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if s.popularity == nil {
		return 0, fmt.Errorf("%s: %w", op, domain.ErrUnavailable)
	}
	n, err := s.popularity.Popularity(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (s Service) Search(q string) []domain.Product {
	search := query.NewSearchSession(s.catalog, s.history)
	search.SetQuery(q)
	return search.Results().Products
}

// SubmitSearch records q in search history and returns the history.
//
// A history write failure is returned together with the updated
// in-memory history.
func (s Service) SubmitSearch(
	ctx context.Context, q string,
) ([]string, error) {
	const op = "Service.SubmitSearch"

	search := query.NewSearchSession(s.catalog, s.history)
	res, err := search.Submit(ctx, q)
	if errors.Is(err, domain.ErrEmptyQuery) {
		return s.history.Entries(), fmt.Errorf("%s: %w", op, err)
	}

	s.publishSearch(ctx, query.NormalizeQuery(q), len(res.Products))

	if err != nil {
		return s.history.Entries(), fmt.Errorf("%s: %w", op, err)
	}
	return s.history.Entries(), nil
}

func (s Service) SearchHistory() []string {
	return s.history.Entries()
}

func (s Service) ClearSearchHistory(ctx context.Context) error {
	const op = "Service.ClearSearchHistory"

	if err := s.history.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ToggleFavorite flips the favorite state of a known product.
//
// A persistence failure is returned together with the new in-memory state.
func (s Service) ToggleFavorite(
	ctx context.Context, productID string,
) (bool, error) {
	const op = "Service.ToggleFavorite"

	if _, err := s.catalog.ByID(productID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	isFavorite, err := s.favorites.Toggle(ctx, productID)
	if err != nil && !errors.Is(err, domain.ErrPersistenceWrite) {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.publishFavorite(ctx, productID, isFavorite)

	if err != nil {
		return isFavorite, fmt.Errorf("%s: %w", op, err)
	}
	return isFavorite, nil
}

func (s Service) FavoriteStatus(productID string) domain.FavoriteStatus {
	return s.favorites.Status(productID)
}

// FavoriteProducts returns favorited products in catalog order
// and whether the favorites are loaded.
func (s Service) FavoriteProducts() ([]domain.Product, bool) {
	ids, loaded := s.favorites.IDs()
	if !loaded {
		return []domain.Product{}, false
	}
	set := domain.NewFavoriteSet(ids...)

	ps := []domain.Product{}
	for _, p := range s.catalog.All() {
		if set.Has(p.ID) {
			ps = append(ps, p)
		}
	}
	return ps, true
}

func (s Service) Cart() domain.CartSummary {
	return s.cart.Summary()
}

func (s Service) AddToCart(
	productID, color string, quantity int,
) (domain.CartSummary, error) {
	const op = "Service.AddToCart"

	p, err := s.catalog.ByID(productID)
	if err != nil {
		return s.cart.Summary(), fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cart.Add(p, color, quantity); err != nil {
		return s.cart.Summary(), fmt.Errorf("%s: %w", op, err)
	}
	return s.cart.Summary(), nil
}

func (s Service) UpdateCartQuantity(
	productID, color string, delta int,
) (domain.CartSummary, error) {
	const op = "Service.UpdateCartQuantity"

	if err := s.cart.UpdateQuantity(productID, color, delta); err != nil {
		return s.cart.Summary(), fmt.Errorf("%s: %w", op, err)
	}
	return s.cart.Summary(), nil
}

func (s Service) RemoveFromCart(
	productID, color string,
) (domain.CartSummary, error) {
	const op = "Service.RemoveFromCart"

	if err := s.cart.Remove(productID, color); err != nil {
		return s.cart.Summary(), fmt.Errorf("%s: %w", op, err)
	}
	return s.cart.Summary(), nil
}

func (s Service) publishFavorite(
	ctx context.Context, productID string, favorited bool,
) {
	const op = "Service.publishFavorite"

	if s.eventProducer == nil {
		return
	}
	e := domain.FavoriteEvent{
		EventID:    uuid.NewString(),
		ProductID:  productID,
		Favorited:  favorited,
		OccurredAt: s.now(),
	}
	if err := s.eventProducer.ProduceFavoriteEvent(ctx, e); err != nil {
		slog.Warn("failed to publish favorite event",
			"op", op, "productID", productID, "err", err)
	}
}

func (s Service) publishSearch(ctx context.Context, q string, results int) {
	const op = "Service.publishSearch"

	if s.eventProducer == nil {
		return
	}
	e := domain.SearchEvent{
		EventID:    uuid.NewString(),
		Query:      q,
		Results:    results,
		OccurredAt: s.now(),
	}
	if err := s.eventProducer.ProduceSearchEvent(ctx, e); err != nil {
		slog.Warn("failed to publish search event",
			"op", op, "query", q, "err", err)
	}
}
