package dp

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

func hash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// shardIndex picks the shard that owns a partition key.
func shardIndex(key string, numShards int) int {
	switch numShards {
	case 0:
		panic("dp: number of shards cannot be 0")
	case 1:
		return 0
	default:
		return int(hash(key) % uint64(numShards))
	}
}

func partitionKey[K comparable](k K) string {
	return fmt.Sprintf("%v", k)
}

// sharedCell is one key of a sharded table. done is closed exactly once,
// after value or failure has been written.
type sharedCell[V any] struct {
	done    chan struct{}
	value   V
	failure any
}

func (c *sharedCell[V]) settled() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *sharedCell[V]) resolve(v V) {
	c.value = v
	close(c.done)
}

func (c *sharedCell[V]) fail(reason any) {
	c.failure = reason
	close(c.done)
}

type tableShard[K comparable, V any] struct {
	mu    sync.Mutex
	cells map[K]*sharedCell[V]
}

// shardedTable splits the memo table into disjoint key ranges so that
// unrelated keys never contend on the same lock.
type shardedTable[K comparable, V any] struct {
	shards []tableShard[K, V]
}

func newShardedTable[K comparable, V any](numShards int) *shardedTable[K, V] {
	shards := make([]tableShard[K, V], numShards)
	for i := range shards {
		shards[i].cells = make(map[K]*sharedCell[V])
	}
	return &shardedTable[K, V]{shards: shards}
}

// acquire returns the cell for key, creating a pending one when absent.
// owner reports whether the caller created the cell and must settle it.
func (t *shardedTable[K, V]) acquire(key K) (c *sharedCell[V], owner bool) {
	s := &t.shards[shardIndex(partitionKey(key), len(t.shards))]
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cells[key]; ok {
		return c, false
	}
	c = &sharedCell[V]{done: make(chan struct{})}
	s.cells[key] = c
	return c, true
}

func (t *shardedTable[K, V]) Len() int {
	n := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.Lock()
		n += len(s.cells)
		s.mu.Unlock()
	}
	return n
}
