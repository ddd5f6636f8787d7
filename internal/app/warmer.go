package app

import (
	redisStorage "carbonhero/internal/storage/redis"
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

const warmUpKey = "warmingUpKey"

func startWarmUpper(ctx context.Context,
	keys keyStore,
	storage warmStorage,
	warmupSaverPeriod time.Duration,
) {
	if warmupSaverPeriod > 0 {
		go exportUsersPeriodically(ctx, warmupSaverPeriod, keys, storage)
	}

	go warmup(ctx, keys, storage)
}

// warmup prefetches histories of users cached by the previous run
func warmup(ctx context.Context, keys keyStore, storage warmStorage) {
	select {
	case <-ctx.Done():
		log.Info().Msg("warmup: context canceled")
		return
	default:
		userIDs, err := keys.Get(ctx, warmUpKey)
		if errors.Is(err, redisStorage.ErrNil) {
			log.Info().Msg("nothing to warm up")
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("couldn't warm up")
			return
		}

		if len(userIDs) == 0 {
			return
		}

		storage.Warm(ctx, userIDs)
	}
}

func exportUsersPeriodically(ctx context.Context, interval time.Duration, keys keyStore, storage warmStorage) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("exportUsersPeriodically: context canceled, stopping export goroutine")
			return
		case <-ticker.C:
			if err := exportUsers(ctx, keys, storage); err != nil {
				log.Error().Err(err).Msg("couldn't export cached users")
			}
		}
	}
}

func exportUsers(ctx context.Context, keys keyStore, storage warmStorage) error {
	users := storage.Users()
	if len(users) == 0 {
		return nil
	}
	//TODO use shared lock, several instances overwrite each other's list
	return keys.Set(ctx, warmUpKey, users, 0)
}
