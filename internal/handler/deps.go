package handler

import (
	"carbonhero/internal/schema"
	"context"
)

type footprintService interface {
	Score(ctx context.Context, userID string, answers schema.Answers) (schema.Record, error)
	Update(ctx context.Context, userID string, field string, value string) (schema.Record, error)
	History(ctx context.Context, userID string) ([]schema.Record, error)
	Stats(ctx context.Context, userID string) (schema.Stats, error)
}
