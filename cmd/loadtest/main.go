package main

import (
	"bytes"
	"carbonhero/internal/env"
	"carbonhero/internal/footprint"
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// generateRandomPayload answers every question with a random recognised option
func generateRandomPayload(questions []footprint.Question, maxUsers int) ([]byte, error) {
	body := make(map[string]string, len(questions)+1)
	for _, q := range questions {
		body[q.Field] = q.Options[rand.Intn(len(q.Options))]
	}
	body["userId"] = "user" + strconv.Itoa(rand.Intn(maxUsers))
	return json.Marshal(body)
}

func main() {

	env.LoadEnv()
	if needTest := os.Getenv("NEED_TEST"); needTest != "true" {
		return
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	url := "http://localhost:8080/api/v1/footprint"
	concurrency := flag.Int("concurrency", 100, "Number of concurrent workers")
	duration := flag.Duration("duration", 5*time.Second, "Duration of the load test")
	maxUsers := flag.Int("maxUsers", 10000, "Number of distinct users")
	flag.Parse()

	if envURL := os.Getenv("TARGET_URL"); envURL != "" {
		url = envURL
	}
	if *maxUsers < 1 {
		*maxUsers = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	log.Info().
		Str("target", url).
		Int("concurrency", *concurrency).
		Dur("duration", *duration).
		Msg("Starting load test")

	questions := footprint.Questions()
	startTime := time.Now()
	var wg sync.WaitGroup
	var failed atomic.Int64

	latencyChan := make(chan time.Duration, 100000)

	var latencies []time.Duration
	var aggWg sync.WaitGroup
	aggWg.Add(1)
	go func() {
		defer aggWg.Done()
		for lat := range latencyChan {
			latencies = append(latencies, lat)
		}
	}()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{}
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				payload, err := generateRandomPayload(questions, *maxUsers)
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Msg("Error generating payload")
					continue
				}

				req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Msg("Error creating request")
					continue
				}
				req.Header.Set("Content-Type", "application/json")

				reqStart := time.Now()
				resp, err := client.Do(req)
				latencyChan <- time.Since(reqStart)

				if err != nil {
					if ctx.Err() == nil {
						log.Error().Err(err).Int("worker", workerID).Msg("Error sending request")
					}
					failed.Add(1)
					continue
				}
				if resp.StatusCode != http.StatusOK {
					failed.Add(1)
				}
				_ = resp.Body.Close()
			}
		}(i)
	}

	wg.Wait()
	close(latencyChan)
	aggWg.Wait()

	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		index := int(float64(len(latencies)) * 0.99)
		if index >= len(latencies) {
			index = len(latencies) - 1
		}
		log.Info().Str("99th_percentile", latencies[index].String()).Msg("99th percentile latency")
	}

	totalTime := time.Since(startTime).Seconds()
	rps := float64(len(latencies)) / totalTime
	log.Info().
		Int("total_requests", len(latencies)).
		Int64("failed_requests", failed.Load()).
		Float64("rps", rps).
		Msg("Load test completed")
}
