package app

import (
	"carbonhero/internal/client"
	"carbonhero/internal/env"
	"carbonhero/internal/handler"
	"carbonhero/internal/middleware"
	"carbonhero/internal/schema"
	"carbonhero/internal/service"
	"carbonhero/internal/storage"
	"carbonhero/internal/storage/lru_cache"
	redisStorage "carbonhero/internal/storage/redis"
	"carbonhero/internal/wrapper"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type App struct{}

const (
	successCode = 0
	failureCode = 1

	shutdownTimeout = 10 * time.Second
)

func New() *App {
	return &App{}
}

func (a *App) Run() (exitCode int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env.LoadEnv()
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Msg("couldn't load config")
		return failureCode
	}

	conn := redisStorage.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() {
		if err := conn.Close(); err != nil {
			log.Error().Err(err).Msg("couldn't close redis connection")
		}
	}()
	records := redisStorage.NewClient[schema.Record](conn, marshalJSON[schema.Record], unmarshalJSON[schema.Record])
	warmUpKeys := redisStorage.NewClient[[]string](conn, marshalJSON[[]string], unmarshalJSON[[]string])

	if err := records.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis is unreachable, history requests will fail")
	}

	lruCache := lru_cache.NewLRUCache[string, []schema.Record](ctx,
		cfg.LRUCacheSize,
		cfg.LRUChanSize,
	)
	historyStorage := storage.New(lruCache, records, int64(cfg.HistorySize))

	var footprintForwarder forwarder
	if cfg.BackendURL != "" {
		backendClient, err := client.NewClient(cfg.BackendURL, cfg.BackendTimeout, uint64(cfg.BackendMaxRetries))
		if err != nil {
			log.Error().Err(err).Msg("couldn't initialize a backend client")
			return failureCode
		}
		// one timeout for all attempts of a record
		forwardTimeout := cfg.BackendTimeout * time.Duration(cfg.BackendMaxRetries+1)
		footprintForwarder = wrapper.New(ctx, backendClient, forwardTimeout, cfg.ForwardQueueSize)
	} else {
		log.Warn().Msg("BACKEND_URL is empty, footprints won't be forwarded")
	}

	footprintService := service.New(historyStorage, footprintForwarder)
	footprintHandler := handler.New(footprintService, cfg.RequestTimeout)

	startWarmUpper(ctx, warmUpKeys, historyStorage, cfg.WarmupSaverPeriod)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(footprintHandler, cfg.RateLimitPerMinute),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return serve(ctx, server)
}

func newRouter(h *handler.Handler, rateLimitPerMinute int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log.Logger))
	r.Use(middleware.Logger(log.Logger))
	r.Use(middleware.JsonMiddleware)
	r.Use(middleware.RateLimitByIP(rateLimitPerMinute, time.Minute))

	h.Register(r)
	return r
}

// serve runs the server until it fails or a SIGINT/SIGTERM arrives
func serve(ctx context.Context, server *http.Server) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server started")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server crashed")
			return failureCode
		}
		return successCode
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return failureCode
	}

	return successCode
}

func marshalJSON[V any](v V) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalJSON[V any](s string) (V, error) {
	var v V
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}
