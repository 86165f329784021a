package cache

import (
	"context"
	"time"
)

// Cache es un key/value con TTL. Get devuelve found=false si la key no existe o expiró.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
