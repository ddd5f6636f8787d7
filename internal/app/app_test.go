package app

import (
	"carbonhero/internal/handler"
	"carbonhero/internal/schema"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceStub struct{}

func (serviceStub) Score(ctx context.Context, userID string, answers schema.Answers) (schema.Record, error) {
	return schema.Record{}, nil
}

func (serviceStub) Update(ctx context.Context, userID string, field string, value string) (schema.Record, error) {
	return schema.Record{}, nil
}

func (serviceStub) History(ctx context.Context, userID string) ([]schema.Record, error) {
	return nil, nil
}

func (serviceStub) Stats(ctx context.Context, userID string) (schema.Stats, error) {
	return schema.Stats{}, nil
}

func TestNewRouter(t *testing.T) {
	router := newRouter(handler.New(serviceStub{}, time.Second), 2)

	testCases := []struct {
		name           string
		expectedStatus int
	}{
		{name: "First request", expectedStatus: http.StatusOK},
		{name: "Second request", expectedStatus: http.StatusOK},
		{name: "Rate limited", expectedStatus: http.StatusTooManyRequests},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			require.Equal(t, tc.expectedStatus, rr.Code)
			assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestJSONCodec(t *testing.T) {
	record := schema.Record{
		ID:        "rec-1",
		UserID:    "user-1",
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Answers:   schema.Answers{DietType: "vegan"},
		Breakdown: schema.Breakdown{Diet: 1.5, Total: 1.5},
		Level:     "Excellent",
	}

	data, err := marshalJSON(record)
	require.NoError(t, err)

	decoded, err := unmarshalJSON[schema.Record](data)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)

	_, err = unmarshalJSON[schema.Record]("not json")
	assert.Error(t, err)
}
