package app

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "HISTORY_SIZE", "REQUEST_TIMEOUT", "WARMUP_SAVER_PERIOD", "RATE_LIMIT_PER_MINUTE"} {
		// restored after the test by t.Setenv
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.HistorySize)
	assert.Equal(t, 500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, time.Hour, cfg.WarmupSaverPeriod)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
}

func TestLoadConfig(t *testing.T) {
	testCases := []struct {
		name          string
		env           map[string]string
		check         func(t *testing.T, cfg Config)
		expectedError string
	}{
		{
			name: "Overrides",
			env: map[string]string{
				"PORT":                "9090",
				"HISTORY_SIZE":        "5",
				"BACKEND_URL":         "http://backend:8000",
				"BACKEND_TIMEOUT":     "2s",
				"BACKEND_MAX_RETRIES": "-1",
				"FORWARD_QUEUE_SIZE":  "-5",
				"LRU_CHAN_SIZE":       "-1",
			},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "9090", cfg.Port)
				assert.Equal(t, 5, cfg.HistorySize)
				assert.Equal(t, "http://backend:8000", cfg.BackendURL)
				assert.Equal(t, 2*time.Second, cfg.BackendTimeout)
				assert.Equal(t, 0, cfg.BackendMaxRetries)
				assert.Equal(t, 0, cfg.ForwardQueueSize)
				assert.Equal(t, 0, cfg.LRUChanSize)
			},
		},
		{
			name:          "Bad int",
			env:           map[string]string{"LRU_CACHE_SIZE": "many"},
			expectedError: "can't parse LRU_CACHE_SIZE",
		},
		{
			name:          "Bad duration",
			env:           map[string]string{"REQUEST_TIMEOUT": "soon"},
			expectedError: "can't parse REQUEST_TIMEOUT",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := loadConfig()
			if tc.expectedError != "" {
				require.ErrorContains(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}
