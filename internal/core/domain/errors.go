package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrKeyNotFound      = errors.New("key not found")
	ErrPersistenceRead  = errors.New("failed to read persisted state")
	ErrPersistenceWrite = errors.New("failed to persist state")
	ErrEmptyQuery       = errors.New("empty search query")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidColor     = errors.New("invalid color")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrUnavailable      = errors.New("feature is unavailable")
)
