package service

import (
	"carbonhero/internal/schema"
	"context"
)

type recordStorage interface {
	Save(ctx context.Context, record schema.Record) ([]schema.Record, error)
	History(ctx context.Context, userID string) ([]schema.Record, error)
}

type forwarder interface {
	Enqueue(record schema.Record) bool
}
