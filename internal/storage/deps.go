package storage

import (
	"carbonhero/internal/storage/lru_cache"
	"context"
)

type lruLocalCache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, priority int)
	Update(rows []lru_cache.CacheItem[K, V])
	Delete(key K)
	Keys() []K
}

type redisList[V any] interface {
	Push(ctx context.Context, key string, value V, keep int64) ([]V, error)
	Range(ctx context.Context, key string, n int64) ([]V, error)
}
