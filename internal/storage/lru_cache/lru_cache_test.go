package lru_cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLRUCache verifies that a newly created cache is empty and has the correct capacity.
func TestNewLRUCache(t *testing.T) {
	cache := NewLRUCache[string, int](context.Background(), 5, 5)
	if cache.capacity != 5 {
		t.Errorf("expected capacity 5, got %d", cache.capacity)
	}
	if len(cache.items) != 0 {
		t.Errorf("expected empty items, got %d", len(cache.items))
	}
	if cache.order.Len() != 0 {
		t.Errorf("expected empty order, got %d", cache.order.Len())
	}

	zero := NewLRUCache[string, int](context.Background(), 0, 1)
	assert.Equal(t, 1, zero.capacity)

	var unbuffered *LRUCache[string, int]
	require.NotPanics(t, func() {
		unbuffered = NewLRUCache[string, int](context.Background(), 2, -1)
	})
	assert.Equal(t, 0, cap(unbuffered.saveChan))
}

// TestLRUCache_SetAndGet checks that setting and then getting a Key returns the expected Value.
func TestLRUCache_SetAndGet(t *testing.T) {
	testCases := []struct {
		name          string
		key           string
		value         int
		priority      int
		updatedKey    string // if non-empty, update the same Key with new Value/Priority
		updatedValue  int
		updatedPrio   int
		expectedValue int
	}{
		{
			name:          "Simple Set and Get",
			key:           "a",
			value:         1,
			priority:      0,
			expectedValue: 1,
		},
		{
			name:          "Update existing Key",
			key:           "a",
			value:         1,
			priority:      0,
			updatedKey:    "a",
			updatedValue:  2,
			updatedPrio:   1,
			expectedValue: 2,
		},
	}

	cache := NewLRUCache[string, int](context.Background(), 5, 5)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cache.Set(tc.key, tc.value, tc.priority)
			if tc.updatedKey != "" {
				cache.Set(tc.updatedKey, tc.updatedValue, tc.updatedPrio)
			}
			val, ok := cache.Get(tc.key)
			if !ok {
				t.Fatalf("expected Key %q to be found", tc.key)
			}
			if val != tc.expectedValue {
				t.Errorf("expected Value %d, got %d", tc.expectedValue, val)
			}
		})
	}
}

// TestLRUCache_Delete verifies that after deletion a Key is no longer available.
func TestLRUCache_Delete(t *testing.T) {
	cache := NewLRUCache[string, int](context.Background(), 5, 5)
	cache.Set("a", 1, 1)
	cache.Delete("a")
	if _, ok := cache.Get("a"); ok {
		t.Error("expected Key 'a' to be deleted")
	}
	assert.Equal(t, 0, cache.maxPriority)
	assert.Empty(t, cache.priorityCount)
}

// TestLRUCache_Eviction verifies that the least recently used elem is evicted.
func TestLRUCache_Eviction(t *testing.T) {
	cache := NewLRUCache[string, int](context.Background(), 2, 5)
	cache.Set("a", 1, 0)
	cache.Set("b", 2, 0)
	// touch "a" so "b" becomes the least recently used
	_, _ = cache.Get("a")
	cache.Set("c", 3, 0)

	if _, ok := cache.Get("b"); ok {
		t.Error("expected Key 'b' to be evicted")
	}
	if val, ok := cache.Get("a"); !ok || val != 1 {
		t.Errorf("expected Key 'a' to be present with Value 1, got %v", val)
	}
	if val, ok := cache.Get("c"); !ok || val != 3 {
		t.Errorf("expected Key 'c' to be present with Value 3, got %v", val)
	}
}

// TestLRUCache_EvictionPrefersPrefetched verifies that prefetched elems (priority 1) go first.
func TestLRUCache_EvictionPrefersPrefetched(t *testing.T) {
	cache := NewLRUCache[string, int](context.Background(), 2, 5)
	cache.Set("live", 1, 0)
	cache.Set("prefetched", 2, 1)
	cache.Set("new", 3, 0)

	_, ok := cache.Get("prefetched")
	assert.False(t, ok)
	_, ok = cache.Get("live")
	assert.True(t, ok)
}

// TestLRUCache_GetPromotes verifies that a read drops the priority of a prefetched elem.
func TestLRUCache_GetPromotes(t *testing.T) {
	cache := NewLRUCache[string, int](context.Background(), 2, 5)
	cache.Set("prefetched", 1, 1)
	cache.Set("live", 2, 0)
	_, _ = cache.Get("prefetched")
	require.Equal(t, 0, cache.maxPriority)

	cache.Set("new", 3, 0)
	// both are priority 0 now, "live" is the least recently used
	_, ok := cache.Get("live")
	assert.False(t, ok)
	_, ok = cache.Get("prefetched")
	assert.True(t, ok)
}

func TestLRUCache_Keys(t *testing.T) {
	cache := NewLRUCache[string, int](context.Background(), 5, 5)
	cache.Set("a", 1, 0)
	cache.Set("b", 2, 0)
	cache.Set("c", 3, 0)
	_, _ = cache.Get("a")

	assert.Equal(t, []string{"a", "c", "b"}, cache.Keys())
	assert.Equal(t, 3, cache.Len())
}

func TestLRUCache_Update(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := NewLRUCache[string, int](ctx, 5, 5)
	cache.Set("a", 10, 0)
	cache.Update([]CacheItem[string, int]{
		{Key: "a", Value: 1, Priority: 1},
		{Key: "b", Value: 2, Priority: 1},
	})

	require.Eventually(t, func() bool {
		return cache.Len() == 2
	}, time.Second, 5*time.Millisecond)

	// async fill never overwrites a value written by Set
	val, _ := cache.Get("a")
	assert.Equal(t, 10, val)
	val, _ = cache.Get("b")
	assert.Equal(t, 2, val)
}
