package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist 记录已注销的 token（按 jti），到期自动失效
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const keyPrefix = "auth:revoked:"

type RedisDenylist struct {
	RDB *redis.Client
}

func NewRedis(addr, pass string, db int) *RedisDenylist {
	return &RedisDenylist{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

func (d *RedisDenylist) Ping(ctx context.Context) error { return d.RDB.Ping(ctx).Err() }

func (d *RedisDenylist) Close() error { return d.RDB.Close() }

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 已过期的 token 不需要拉黑
	}
	return d.RDB.Set(ctx, keyPrefix+jti, 1, ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := d.RDB.Get(ctx, keyPrefix+jti).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, err
	}
}
