package storage

import (
	"carbonhero/internal/schema"
	"carbonhero/internal/storage/lru_cache"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

// ErrNotFound user has no footprint history
var ErrNotFound = errors.New("no footprints found")

const (
	keyPrefix = "footprints:"

	// priorities of the local cache, the higher one is evicted first
	livePriority     = 0
	prefetchPriority = 1

	userLockStripes = 64
)

// Storage per-user footprint history, newest first
type Storage struct {
	lruLocalCache lruLocalCache[string, []schema.Record]
	redisList     redisList[schema.Record]
	historySize   int64

	// serializes redis and cache updates of one user
	userLocks [userLockStripes]sync.Mutex
}

// New return storage of footprint history
func New(lruLocalCache lruLocalCache[string, []schema.Record],
	redisList redisList[schema.Record],
	historySize int64) *Storage {
	if historySize < 1 {
		historySize = 1
	}
	return &Storage{
		lruLocalCache: lruLocalCache,
		redisList:     redisList,
		historySize:   historySize,
	}
}

// Save appends a record to the user's history and returns the history after the append
func (s *Storage) Save(ctx context.Context, record schema.Record) ([]schema.Record, error) {
	unlock := s.lockUser(record.UserID)
	defer unlock()

	history, err := s.redisList.Push(ctx, historyKey(record.UserID), record, s.historySize)
	if err != nil {
		//we don't know what redis holds now, next read goes to redis
		s.lruLocalCache.Delete(record.UserID)
		return nil, fmt.Errorf("save footprint of %s: %w", record.UserID, err)
	}

	s.lruLocalCache.Set(record.UserID, history, livePriority)
	return slices.Clone(history), nil
}

// History return footprints of a user, newest first
func (s *Storage) History(ctx context.Context, userID string) ([]schema.Record, error) {
	//getting from local in memory cache
	if history, ok := s.lruLocalCache.Get(userID); ok {
		return slices.Clone(history), nil
	}

	unlock := s.lockUser(userID)
	defer unlock()

	// a save may have filled the cache while we waited
	if history, ok := s.lruLocalCache.Get(userID); ok {
		return slices.Clone(history), nil
	}

	history, err := s.redisList.Range(ctx, historyKey(userID), s.historySize)
	if err != nil {
		return nil, fmt.Errorf("read history of %s: %w", userID, err)
	}
	if len(history) == 0 {
		return nil, ErrNotFound
	}

	s.lruLocalCache.Set(userID, history, livePriority)
	return slices.Clone(history), nil
}

// Warm loads histories of the given users into the local cache in background
func (s *Storage) Warm(ctx context.Context, userIDs []string) {
	items := make([]lru_cache.CacheItem[string, []schema.Record], 0, len(userIDs))

	for _, userID := range userIDs {
		if ctx.Err() != nil {
			break
		}
		history, err := s.redisList.Range(ctx, historyKey(userID), s.historySize)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("couldn't warm up history")
			continue
		}
		if len(history) == 0 {
			continue
		}
		items = append(items, lru_cache.CacheItem[string, []schema.Record]{
			Key:      userID,
			Value:    history,
			Priority: prefetchPriority,
		})
	}

	log.Info().Int("users", len(items)).Msg("warmed up history cache")
	s.lruLocalCache.Update(items)
}

// Users return ids of users held by the local cache, most recently used first
func (s *Storage) Users() []string {
	return s.lruLocalCache.Keys()
}

func (s *Storage) lockUser(userID string) func() {
	mu := &s.userLocks[xxhash.Sum64String(userID)%userLockStripes]
	mu.Lock()
	return mu.Unlock
}

func historyKey(userID string) string {
	return keyPrefix + userID
}
