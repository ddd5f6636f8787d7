package redis

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMarshal and testUnmarshal are identity functions for string.
func testMarshal(s string) (string, error) {
	return s, nil
}

func testUnmarshal(str string) (string, error) {
	if str == "broken" {
		return "", errors.New("broken value")
	}
	return str, nil
}

func TestClient_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := NewClient[string](db, testMarshal, testUnmarshal)

	ctx := context.Background()
	key := "testKey"
	value := "testValue"
	expiration := time.Minute

	mock.ExpectSet(key, value, expiration).SetVal("OK")

	err := client.Set(ctx, key, value, expiration)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %v", err)
	}
}

func TestClient_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := NewClient[string](db, testMarshal, testUnmarshal)

	ctx := context.Background()
	key := "testKey"
	expectedValue := "testValue"

	mock.ExpectGet(key).SetVal(expectedValue)

	val, err := client.Get(ctx, key)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if val != expectedValue {
		t.Errorf("expected %v, got %v", expectedValue, val)
	}

	mock.ExpectGet("missing").RedisNil()
	_, err = client.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNil)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %v", err)
	}
}

func TestClient_Push(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(mock redismock.ClientMock)
		expected  []string
		expectErr string
	}{
		{
			name: "push, trim and read back",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectLPush("list", "v3").SetVal(3)
				mock.ExpectLTrim("list", 0, 1).SetVal("OK")
				mock.ExpectLRange("list", 0, 1).SetVal([]string{"v3", "v2"})
			},
			expected: []string{"v3", "v2"},
		},
		{
			name: "lpush error",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectLPush("list", "v3").SetErr(errors.New("connection refused"))
			},
			expectErr: "lpush list: connection refused",
		},
		{
			name: "ltrim error",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectLPush("list", "v3").SetVal(1)
				mock.ExpectLTrim("list", 0, 1).SetErr(errors.New("timeout"))
			},
			expectErr: "ltrim list: timeout",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := redismock.NewClientMock()
			client := NewClient[string](db, testMarshal, testUnmarshal)
			tc.setup(mock)

			values, err := client.Push(context.Background(), "list", "v3", 2)
			if tc.expectErr != "" {
				require.EqualError(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, values)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClient_Range(t *testing.T) {
	tests := []struct {
		name       string
		lrange     []string
		lrangeErr  error
		expected   []string
		expectsErr bool
	}{
		{
			name:     "all values",
			lrange:   []string{"v1", "v2"},
			expected: []string{"v1", "v2"},
		},
		{
			name:     "broken values are skipped",
			lrange:   []string{"v1", "broken", "v3"},
			expected: []string{"v1", "v3"},
		},
		{
			name:     "empty list",
			lrange:   []string{},
			expected: []string{},
		},
		{
			name:       "LRange returns error",
			lrangeErr:  errors.New("lrange error"),
			expectsErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := redismock.NewClientMock()
			client := NewClient[string](db, testMarshal, testUnmarshal)

			if tc.lrangeErr != nil {
				mock.ExpectLRange("list", 0, 9).SetErr(tc.lrangeErr)
			} else {
				mock.ExpectLRange("list", 0, 9).SetVal(tc.lrange)
			}

			values, err := client.Range(context.Background(), "list", 10)
			if tc.expectsErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, values)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClient_RangeLogsBrokenValues(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	db, mock := redismock.NewClientMock()
	client := NewClient[string](db, testMarshal, testUnmarshal)
	mock.ExpectLRange("footprints:user-1", 0, 9).SetVal([]string{"v1", "broken"})

	values, err := client.Range(context.Background(), "footprints:user-1", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, values)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"key":"footprints:user-1"`)
	assert.Contains(t, out, `"index":1`)
	assert.Contains(t, out, "broken value")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := NewClient[string](db, testMarshal, testUnmarshal)

	mock.ExpectPing().SetVal("PONG")
	require.NoError(t, client.Ping(context.Background()))

	mock.ExpectPing().SetErr(errors.New("connection refused"))
	assert.EqualError(t, client.Ping(context.Background()), "connection refused")

	require.NoError(t, mock.ExpectationsWereMet())
}
