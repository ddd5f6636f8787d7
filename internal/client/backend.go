package client

import (
	"bytes"
	"carbonhero/internal/dto/backend_v1_dto"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const userDataPath = "/api/user-data"

// ErrUnexpectedStatus backend replied with a non 2xx code
var ErrUnexpectedStatus = errors.New("unexpected status code")

type Client struct {
	BaseURL         string
	client          *http.Client
	maxRetries      uint64
	initialInterval time.Duration
}

func NewClient(baseURL string, timeout time.Duration, maxRetries uint64) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("backend url is empty")
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		maxRetries:      maxRetries,
		initialInterval: 100 * time.Millisecond,
	}, nil
}

// SubmitUserData posts scored answers to the backend.
// Network errors and 5xx are retried with exponential backoff, other codes are not.
func (c *Client) SubmitUserData(ctx context.Context, data backend_v1_dto.UserData) error {
	requestData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("err during marshaling of a request: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	bo.MaxElapsedTime = 0

	attempt := 0
	operation := func() error {
		attempt++
		err := c.post(ctx, requestData)
		if err != nil {
			log.Debug().Err(err).Int("attempt", attempt).Str("user_id", data.UserID).Msg("backend submit failed")
		}
		return err
	}

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx))
}

func (c *Client) post(ctx context.Context, requestData []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+userDataPath, bytes.NewReader(requestData))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("err during creating a request with context: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_, _ = io.Copy(io.Discard, Body)
		if err := Body.Close(); err != nil {
			log.Error().Msg("couldn't close a body")
		}
	}(resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return backoff.Permanent(fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status))
	}

	var response backend_v1_dto.Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil && !errors.Is(err, io.EOF) {
		return backoff.Permanent(fmt.Errorf("err during unmarshaling of a response: %w", err))
	}
	if response.Status != "" && response.Status != "success" {
		return backoff.Permanent(fmt.Errorf("backend rejected user data: %s", response.Message))
	}
	return nil
}
