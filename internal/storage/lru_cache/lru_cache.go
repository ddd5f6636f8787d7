package lru_cache

import (
	"container/list"
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

type CacheItem[K comparable, V any] struct {
	Key      K
	Value    V
	Priority int
}

/*
*
Cache based on map of elements, linked list, map of priorities
when touch an elem move it on the top of linked list
when need to find an element to delete - takes the least recently used elem with max priority
*/
type LRUCache[K comparable, V any] struct {
	capacity      int
	items         map[K]*list.Element
	order         *list.List
	priorityCount map[int]int
	maxPriority   int
	mu            sync.Mutex
	saveChan      chan CacheItem[K, V]
}

func NewLRUCache[K comparable, V any](ctx context.Context, capacity int, lruChanSize int) *LRUCache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	if lruChanSize < 0 {
		lruChanSize = 0
	}
	cache := &LRUCache[K, V]{
		capacity:      capacity,
		items:         make(map[K]*list.Element, capacity),
		order:         list.New(),
		priorityCount: make(map[int]int),
		maxPriority:   0,
		saveChan:      make(chan CacheItem[K, V], lruChanSize),
	}

	//goroutine to async save in cache
	go cache.runUpdater(ctx)
	return cache
}

// edit field of max priority
func (c *LRUCache[K, V]) updateMaxPriorityOnRemoval(removedPriority int) {
	c.priorityCount[removedPriority]--
	if c.priorityCount[removedPriority] > 0 {
		return
	}
	delete(c.priorityCount, removedPriority)
	if removedPriority != c.maxPriority {
		return
	}
	newMax := 0
	for prio := range c.priorityCount {
		if prio > newMax {
			newMax = prio
		}
	}
	c.maxPriority = newMax
}

// edit priority map
func (c *LRUCache[K, V]) updatePriorityCountOnAddition(priority int) {
	c.priorityCount[priority]++
	if priority > c.maxPriority {
		c.maxPriority = priority
	}
}

// Get returns an elem and marks it as recently used
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	item := elem.Value.(*CacheItem[K, V])
	// a live read promotes a prefetched entry
	if item.Priority != 0 {
		c.updateMaxPriorityOnRemoval(item.Priority)
		item.Priority = 0
		c.updatePriorityCountOnAddition(0)
	}

	return item.Value, true
}

// Keys returns all keys, most recently used first
func (c *LRUCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]K, 0, len(c.items))
	for e := c.order.Front(); e != nil; e = e.Next() {
		result = append(result, e.Value.(*CacheItem[K, V]).Key)
	}
	return result
}

func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// async set value
func (c *LRUCache[K, V]) Update(rows []CacheItem[K, V]) {
	for i := range rows {
		select {
		case c.saveChan <- rows[i]:
		default:
			log.Debug().Int("dropped", len(rows)-i).Msg("lru update channel is full")
			return
		}
	}
}

// sync set value
func (c *LRUCache[K, V]) Set(key K, value V, priority int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value, priority)
}

func (c *LRUCache[K, V]) set(key K, value V, priority int) {
	if elem, ok := c.items[key]; ok {
		item := elem.Value.(*CacheItem[K, V])

		//if Priority changed we need to change our Priority map and max Priority
		if item.Priority != priority {
			c.updateMaxPriorityOnRemoval(item.Priority)
			item.Priority = priority
			c.updatePriorityCountOnAddition(priority)
		}
		item.Value = value
		c.order.MoveToFront(elem)
		return
	}

	//if our linked list fulfilled need to find an elem to delete
	if c.order.Len() >= c.capacity {
		c.evict()
	}

	newItem := &CacheItem[K, V]{
		Key:      key,
		Value:    value,
		Priority: priority}
	elem := c.order.PushFront(newItem)
	c.items[key] = elem
	c.updatePriorityCountOnAddition(priority)
}

// setIfAbsent does not overwrite fresher values written by Set
func (c *LRUCache[K, V]) setIfAbsent(key K, value V, priority int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; ok {
		return
	}
	c.set(key, value, priority)
}

func (c *LRUCache[K, V]) evict() {
	var candidate *list.Element
	for e := c.order.Back(); e != nil; e = e.Prev() {
		if e.Value.(*CacheItem[K, V]).Priority == c.maxPriority {
			candidate = e
			break
		}
	}
	if candidate == nil {
		return
	}
	remItem := candidate.Value.(*CacheItem[K, V])
	delete(c.items, remItem.Key)
	c.order.Remove(candidate)
	c.updateMaxPriorityOnRemoval(remItem.Priority)
}

// delete an elem
func (c *LRUCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		item := elem.Value.(*CacheItem[K, V])
		c.order.Remove(elem)
		delete(c.items, key)
		c.updateMaxPriorityOnRemoval(item.Priority)
	}
}

func (c *LRUCache[K, V]) runUpdater(ctx context.Context) {
	for {
		select {
		case row, ok := <-c.saveChan:
			if !ok {
				return
			}
			c.setIfAbsent(row.Key, row.Value, row.Priority)
		case <-ctx.Done():
			return
		}
	}
}
