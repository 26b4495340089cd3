package preference

import (
	"context"
	"sync"

	"pizza-orders-be/internal/order"
)

// MemoryRepository keeps encoded preferences in process memory. It is used
// when no database is configured.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string][]byte
}

var _ order.PreferenceRepository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string][]byte)}
}

func (r *MemoryRepository) Load(ctx context.Context, name string) (*order.Preferences, error) {
	r.mu.Lock()
	payload, ok := r.items[name]
	r.mu.Unlock()

	if !ok {
		return nil, nil
	}
	return decode(payload)
}

func (r *MemoryRepository) Save(ctx context.Context, name string, prefs order.Preferences) error {
	payload, err := encode(prefs)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.items[name] = payload
	r.mu.Unlock()
	return nil
}
