package service

import (
	"carbonhero/internal/footprint"
	"carbonhero/internal/schema"
	"carbonhero/internal/storage"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const recentLimit = 5

// ErrUnknownField answer field of an update is not part of the questionnaire
var ErrUnknownField = errors.New("unknown answer field")

// ValidationError is returned by Score when required answers are missing
type ValidationError struct {
	Result footprint.ValidationResult
}

func (e *ValidationError) Error() string {
	return "invalid answers: " + strings.Join(e.Result.Errors, "; ")
}

type Service struct {
	storage   recordStorage
	forwarder forwarder
	now       func() time.Time
}

// New forwarder may be nil, then scored records stay local
func New(recordStorage recordStorage, forwarder forwarder) *Service {
	return &Service{
		storage:   recordStorage,
		forwarder: forwarder,
		now:       time.Now,
	}
}

// Score validates answers and calculates the footprint.
// Records of identified users are saved and forwarded.
func (s *Service) Score(ctx context.Context, userID string, answers schema.Answers) (schema.Record, error) {
	result := footprint.ValidateAnswers(answers)
	if !result.Valid {
		return schema.Record{}, &ValidationError{Result: result}
	}

	breakdown := footprint.TotalFootprint(answers)
	record := schema.Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		Timestamp: s.now().UTC(),
		Answers:   answers,
		Breakdown: breakdown,
		Level:     footprint.Level(breakdown.Total),
	}

	if userID == "" {
		return record, nil
	}

	if _, err := s.storage.Save(ctx, record); err != nil {
		return schema.Record{}, fmt.Errorf("score: %w", err)
	}

	if s.forwarder != nil && !s.forwarder.Enqueue(record) {
		log.Warn().Str("record_id", record.ID).Msg("footprint was not forwarded")
	}

	return record, nil
}

// Update changes one answer of the user's latest record and scores the result as a new record
func (s *Service) Update(ctx context.Context, userID string, field string, value string) (schema.Record, error) {
	history, err := s.storage.History(ctx, userID)
	if err != nil {
		return schema.Record{}, err
	}
	if len(history) == 0 {
		return schema.Record{}, storage.ErrNotFound
	}

	answers, ok := footprint.SetAnswer(history[0].Answers, field, value)
	if !ok {
		return schema.Record{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	return s.Score(ctx, userID, answers)
}

func (s *Service) History(ctx context.Context, userID string) ([]schema.Record, error) {
	return s.storage.History(ctx, userID)
}

// Stats aggregates the stored history of a user, newest record first
func (s *Service) Stats(ctx context.Context, userID string) (schema.Stats, error) {
	history, err := s.storage.History(ctx, userID)
	if err != nil {
		return schema.Stats{}, err
	}
	if len(history) == 0 {
		return schema.Stats{}, storage.ErrNotFound
	}

	return calculateStats(userID, history), nil
}

func calculateStats(userID string, history []schema.Record) schema.Stats {
	newest := history[0]
	oldest := history[len(history)-1]

	sum := 0.0
	for _, record := range history {
		sum += record.Breakdown.Total
	}

	stats := schema.Stats{
		UserID:           userID,
		CurrentFootprint: newest.Breakdown.Total,
		AverageFootprint: sum / float64(len(history)),
		Breakdown:        newest.Breakdown,
		Level:            newest.Level,
		Recent:           history[:min(recentLimit, len(history))],
	}

	if len(history) > 1 {
		stats.Trend = newest.Breakdown.Total - oldest.Breakdown.Total
		if oldest.Breakdown.Total != 0 {
			stats.TrendPercentage = stats.Trend / oldest.Breakdown.Total * 100
		}
	}
	if stats.Trend < 0 {
		stats.ImprovementPercentage = math.Abs(stats.TrendPercentage)
	}

	return stats
}
