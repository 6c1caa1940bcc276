package domain

import "time"

// A FavoriteStatus distinguishes a confirmed answer from a not yet
// loaded favorites store.
type FavoriteStatus int

const (
	FavoriteUnknown FavoriteStatus = iota
	FavoriteYes
	FavoriteNo
)

func (s FavoriteStatus) String() string {
	switch s {
	case FavoriteYes:
		return "favorite"
	case FavoriteNo:
		return "not_favorite"
	default:
		return "loading"
	}
}

// A FavoriteSet is an ordered set of product ids.
type FavoriteSet struct {
	ids   []string
	index map[string]struct{}
}

func NewFavoriteSet(ids ...string) FavoriteSet {
	s := FavoriteSet{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if _, ok := s.index[id]; ok {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s
}

func (s FavoriteSet) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s FavoriteSet) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the ids in insertion order.
func (s FavoriteSet) IDs() []string {
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	return ids
}

// Toggle returns a new set with id membership flipped
// and the resulting membership.
func (s FavoriteSet) Toggle(id string) (FavoriteSet, bool) {
	if s.Has(id) {
		ids := make([]string, 0, len(s.ids))
		for _, v := range s.ids {
			if v != id {
				ids = append(ids, v)
			}
		}
		return NewFavoriteSet(ids...), false
	}
	return NewFavoriteSet(append(s.IDs(), id)...), true
}

type FavoriteEvent struct {
	EventID    string
	ProductID  string
	Favorited  bool
	OccurredAt time.Time
}
