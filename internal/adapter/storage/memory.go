package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/port"
)

var _ port.KVStorage = (*MemoryKV)(nil)

// A MemoryKV keeps values in process memory. Nothing survives a restart.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (kv *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	const op = "MemoryKV.Get"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	kv.mu.RLock()
	defer kv.mu.RUnlock()
	v, ok := kv.values[key]
	if !ok {
		return "", fmt.Errorf("%s: %w: %q", op, domain.ErrKeyNotFound, key)
	}
	return v, nil
}

func (kv *MemoryKV) Set(ctx context.Context, key, value string) error {
	const op = "MemoryKV.Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.values[key] = value
	return nil
}
