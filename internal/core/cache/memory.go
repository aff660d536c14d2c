package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryDenylist 单实例部署（未启用 redis）时使用
type MemoryDenylist struct {
	mu    sync.Mutex
	items map[string]time.Time
	now   func() time.Time
}

func NewMemory() *MemoryDenylist {
	return &MemoryDenylist{items: map[string]time.Time{}, now: time.Now}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	for k, exp := range d.items {
		if !exp.After(now) {
			delete(d.items, k)
		}
	}
	d.items[jti] = now.Add(ttl)
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.items[jti]
	if !ok {
		return false, nil
	}
	if !exp.After(d.now()) {
		delete(d.items, jti)
		return false, nil
	}
	return true, nil
}
