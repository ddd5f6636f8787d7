package wrapper

import (
	"carbonhero/internal/dto/backend_v1_dto"
	"carbonhero/internal/schema"
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Forwarder sends scored records to the backend
type Forwarder struct {
	backendClient backendClient
	timeout       time.Duration
	queue         chan schema.Record
}

// New starts a forwarder whose worker lives until ctx is done
func New(ctx context.Context,
	backendClient backendClient,
	timeout time.Duration,
	queueSize int,
) *Forwarder {
	if queueSize < 0 {
		queueSize = 0
	}
	f := &Forwarder{
		backendClient: backendClient,
		timeout:       timeout,
		queue:         make(chan schema.Record, queueSize),
	}

	//goroutine that forwards records async
	go f.run(ctx)

	return f
}

// Enqueue schedules a record for forwarding, never blocks
func (f *Forwarder) Enqueue(record schema.Record) bool {
	if record.UserID == "" {
		return false
	}
	select {
	case f.queue <- record:
		return true
	default:
		log.Warn().Str("record_id", record.ID).Str("user_id", record.UserID).Msg("forward queue is full, record dropped")
		return false
	}
}

// Forward sends a record synchronously
func (f *Forwarder) Forward(ctx context.Context, record schema.Record) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	return f.backendClient.SubmitUserData(ctx, toDto(record))
}

func (f *Forwarder) run(ctx context.Context) {
	for {
		select {
		case record := <-f.queue:
			if err := f.Forward(ctx, record); err != nil {
				log.Error().Err(err).Str("record_id", record.ID).Str("user_id", record.UserID).Msg("couldn't forward footprint")
				continue
			}
			log.Debug().Str("record_id", record.ID).Msg("footprint forwarded")
		case <-ctx.Done():
			return
		}
	}
}

func toDto(record schema.Record) backend_v1_dto.UserData {
	return backend_v1_dto.UserData{
		UserID:                   record.UserID,
		DietType:                 record.Answers.DietType,
		TransportationMode:       record.Answers.TransportMode,
		VehicleType:              record.Answers.VehicleType,
		HeatingSource:            record.Answers.HeatingSource,
		HomeEnergyEfficiency:     record.Answers.EnergyEfficiency,
		ScreenTime:               record.Answers.ScreenTime,
		InternetUsage:            record.Answers.InternetUsage,
		Recycling:                record.Answers.Recycling,
		TrashBagSize:             record.Answers.TrashBagSize,
		CarbonFootprint:          record.Breakdown.Total,
		CarbonFootprintBreakdown: record.Breakdown.Map(),
		FootprintLevel:           record.Level,
		RecordID:                 record.ID,
		Timestamp:                record.Timestamp.UnixMilli(),
	}
}
