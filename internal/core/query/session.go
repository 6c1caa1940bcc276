package query

import (
	"context"
	"fmt"

	"github.com/niksmo/visionframe/internal/core/domain"
)

const (
	NoFilterResultsMessage = "No products match the selected filters"
	NoSearchResultsMessage = "No products found for your search"
)

// A Result is a derived display list.
//
// Empty is set when a computed list has no products,
// which is a valid terminal state and not an error.
type Result struct {
	Products []domain.Product
	Empty    bool
}

func newResult(ps []domain.Product) Result {
	return Result{Products: ps, Empty: len(ps) == 0}
}

type productSource interface {
	All() []domain.Product
}

// A BrowseSession owns the filter state of one browse surface.
// The service opens one per request; long-lived clients keep their own.
// It is not safe for concurrent use.
type BrowseSession struct {
	source  productSource
	filters domain.FilterState
}

func NewBrowseSession(source productSource) *BrowseSession {
	return &BrowseSession{source: source, filters: domain.NewFilterState()}
}

// SetFilters replaces the whole filter state.
func (s *BrowseSession) SetFilters(fs domain.FilterState) {
	if fs.Category == "" {
		fs.Category = domain.CategoryAll
	}
	s.filters = fs
}

// SetCategory changes only the category selector.
func (s *BrowseSession) SetCategory(c domain.Category) {
	s.filters.Category = c
}

func (s *BrowseSession) Filters() domain.FilterState {
	return s.filters
}

func (s *BrowseSession) Results() Result {
	return newResult(Filter(s.source.All(), s.filters))
}

// A HistoryRecorder stores accepted search queries.
type HistoryRecorder interface {
	Record(ctx context.Context, query string) ([]string, error)
	Entries() []string
}

// A SearchSession owns the query of one search surface.
// It is not safe for concurrent use.
type SearchSession struct {
	source  productSource
	history HistoryRecorder
	query   string
}

func NewSearchSession(
	source productSource, history HistoryRecorder,
) *SearchSession {
	return &SearchSession{source: source, history: history}
}

// SetQuery updates the query on every keystroke. Nothing is persisted.
func (s *SearchSession) SetQuery(q string) {
	s.query = q
}

func (s *SearchSession) Query() string {
	return s.query
}

// ShowHistory reports whether the surface shows history instead of results.
func (s *SearchSession) ShowHistory() bool {
	return NormalizeQuery(s.query) == ""
}

func (s *SearchSession) Results() Result {
	if s.ShowHistory() {
		return Result{Products: []domain.Product{}}
	}
	return newResult(Search(s.source.All(), s.query))
}

func (s *SearchSession) History() []string {
	return s.history.Entries()
}

// Submit accepts q as the current query and records it in history.
//
// A write failure is returned but the query stays accepted.
func (s *SearchSession) Submit(ctx context.Context, q string) (Result, error) {
	const op = "SearchSession.Submit"

	s.query = q
	normalized := NormalizeQuery(q)
	if normalized == "" {
		return s.Results(), fmt.Errorf("%s: %w", op, domain.ErrEmptyQuery)
	}

	_, err := s.history.Record(ctx, normalized)
	if err != nil {
		return s.Results(), fmt.Errorf("%s: %w", op, err)
	}
	return s.Results(), nil
}

// Reselect accepts a query picked from history.
func (s *SearchSession) Reselect(ctx context.Context, q string) (Result, error) {
	return s.Submit(ctx, q)
}
