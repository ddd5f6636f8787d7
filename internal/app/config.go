package app

import (
	"carbonhero/internal/env"
	"time"
)

type Config struct {
	Port               string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	LRUCacheSize       int
	LRUChanSize        int
	HistorySize        int
	RequestTimeout     time.Duration
	BackendURL         string
	BackendTimeout     time.Duration
	BackendMaxRetries  int
	ForwardQueueSize   int
	WarmupSaverPeriod  time.Duration
	RateLimitPerMinute int
}

// loadConfig reads the config from the environment, an empty BACKEND_URL disables forwarding
func loadConfig() (Config, error) {
	cfg := Config{
		Port:          env.GetEnv("PORT", "8080"),
		RedisAddr:     env.GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: env.GetEnv("REDIS_PASSWORD", ""),
		BackendURL:    env.GetEnv("BACKEND_URL", ""),
	}

	ints := []struct {
		key          string
		defaultValue int
		target       *int
	}{
		{"REDIS_DB", 0, &cfg.RedisDB},
		{"LRU_CACHE_SIZE", 1000, &cfg.LRUCacheSize},
		{"LRU_CHAN_SIZE", 1000, &cfg.LRUChanSize},
		{"HISTORY_SIZE", 10, &cfg.HistorySize},
		{"BACKEND_MAX_RETRIES", 3, &cfg.BackendMaxRetries},
		{"FORWARD_QUEUE_SIZE", 1000, &cfg.ForwardQueueSize},
		{"RATE_LIMIT_PER_MINUTE", 100, &cfg.RateLimitPerMinute},
	}
	for _, v := range ints {
		parsed, err := env.GetInt(v.key, v.defaultValue)
		if err != nil {
			return Config{}, err
		}
		*v.target = parsed
	}

	durations := []struct {
		key          string
		defaultValue time.Duration
		target       *time.Duration
	}{
		{"REQUEST_TIMEOUT", 500 * time.Millisecond, &cfg.RequestTimeout},
		{"BACKEND_TIMEOUT", 5 * time.Second, &cfg.BackendTimeout},
		{"WARMUP_SAVER_PERIOD", time.Hour, &cfg.WarmupSaverPeriod},
	}
	for _, v := range durations {
		parsed, err := env.GetDuration(v.key, v.defaultValue)
		if err != nil {
			return Config{}, err
		}
		*v.target = parsed
	}

	if cfg.BackendMaxRetries < 0 {
		cfg.BackendMaxRetries = 0
	}
	if cfg.ForwardQueueSize < 0 {
		cfg.ForwardQueueSize = 0
	}
	if cfg.LRUChanSize < 0 {
		cfg.LRUChanSize = 0
	}

	return cfg, nil
}
