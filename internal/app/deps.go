package app

import (
	"carbonhero/internal/schema"
	"context"
	"time"
)

type keyStore interface {
	Get(ctx context.Context, key string) ([]string, error)
	Set(ctx context.Context, key string, value []string, expiration time.Duration) error
}

type warmStorage interface {
	Users() []string
	Warm(ctx context.Context, userIDs []string)
}

type forwarder interface {
	Enqueue(record schema.Record) bool
}
