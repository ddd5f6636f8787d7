package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// ErrNil returned by Get when the key does not exist
var ErrNil = redis.Nil

// common wrapper above a redis, with values marshalled to strings
type Client[V any] struct {
	rdb       redis.Cmdable
	marshal   func(V) (string, error)
	unmarshal func(string) (V, error)
}

// Connect opens a connection pool shared by typed clients
func Connect(addr string, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewClient typed client above a connection
func NewClient[V any](rdb redis.Cmdable,
	marshal func(V) (string, error),
	unmarshal func(string) (V, error)) *Client[V] {
	return &Client[V]{
		rdb:       rdb,
		marshal:   marshal,
		unmarshal: unmarshal,
	}
}

func (c *Client[V]) Set(ctx context.Context, key string, value V, expiration time.Duration) error {
	strValue, err := c.marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, strValue, expiration).Err()
}

func (c *Client[V]) Get(ctx context.Context, key string) (V, error) {
	strValue, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		var zero V
		return zero, err
	}
	return c.unmarshal(strValue)
}

// Push prepends value to the list at key, keeps only the first keep elems
// and returns what is left, head first
func (c *Client[V]) Push(ctx context.Context, key string, value V, keep int64) ([]V, error) {
	strValue, err := c.marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	if err := c.rdb.LPush(ctx, key, strValue).Err(); err != nil {
		return nil, fmt.Errorf("lpush %s: %w", key, err)
	}
	if err := c.rdb.LTrim(ctx, key, 0, keep-1).Err(); err != nil {
		return nil, fmt.Errorf("ltrim %s: %w", key, err)
	}
	return c.Range(ctx, key, keep)
}

// Range returns up to n elems of the list at key, head first.
// Elems that can't be unmarshalled are logged and skipped.
func (c *Client[V]) Range(ctx context.Context, key string, n int64) ([]V, error) {
	results, err := c.rdb.LRange(ctx, key, 0, n-1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []V{}, nil
		}
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}

	res := make([]V, 0, len(results))
	for i, r := range results {
		val, err := c.unmarshal(r)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Int("index", i).Msg("skipped broken list entry")
			continue
		}
		res = append(res, val)
	}
	return res, nil
}

func (c *Client[V]) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
