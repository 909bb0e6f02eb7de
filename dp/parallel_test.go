package dp_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/on-the-ground/memo_ive_go/dp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNewParallelConfig(t *testing.T) {
	assert.Equal(t, dp.ParallelConfig{NumShards: 32, MaxFanOut: -1}, dp.NewParallelConfig(0, 0))
	assert.Equal(t, dp.ParallelConfig{NumShards: 32, MaxFanOut: -1}, dp.NewParallelConfig(-3, -1))
	assert.Equal(t, dp.ParallelConfig{NumShards: 4, MaxFanOut: 2}, dp.NewParallelConfig(4, 2))
}

func TestShardIndex(t *testing.T) {
	assert.Panics(t, func() { dp.ShardIndex("k", 0) })
	assert.Equal(t, 0, dp.ShardIndex("k", 1))

	for _, n := range []int{2, 7, 32} {
		for i := range 1000 {
			key := fmt.Sprintf("key-%d", i)
			idx := dp.ShardIndex(key, n)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, n)
			assert.Equal(t, idx, dp.ShardIndex(key, n), "stable for %s", key)
		}
	}
}

func TestParallelSolvesEachKeyOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	calls := map[int]int{}
	var events atomic.Int64

	ev := dp.New(func(self dp.Recurser[int, int], _ struct{}, n int) int {
		mu.Lock()
		calls[n]++
		mu.Unlock()

		switch {
		case n == 0:
			return 1
		case n < 0:
			keys := make([]int, 100)
			for i := range keys {
				keys[i] = i
			}
			sum := 0
			for _, v := range self.EvalAll(keys...) {
				sum += v
			}
			return sum
		}
		v := self.EvalAll(n-1, n/2)
		return (v[0] + v[1]) % modulus
	},
		dp.WithParallelism(dp.NewParallelConfig(16, 8)),
		dp.WithObserver(func(dp.Event) { events.Add(1) }),
	)

	_, stats, err := ev.RunStats(struct{}{}, -1)
	require.NoError(t, err)

	require.Len(t, calls, 101)
	for k, c := range calls {
		assert.Equal(t, 1, c, "key %d", k)
	}
	assert.Equal(t, 101, stats.Solves)
	assert.Equal(t, 101, stats.Entries)
	assert.EqualValues(t, 2*stats.Solves+stats.Hits, events.Load())
}

func TestParallelMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	seq := dp.New(editSolve)
	par := dp.New(editSolve, dp.WithParallelism(dp.ParallelConfig{}))

	words := [2][]rune{[]rune("intention"), []rune("execution")}
	root := prefixes{len(words[0]), len(words[1])}

	want, err := seq.Run(words, root)
	require.NoError(t, err)
	got, err := par.Run(words, root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 5, got)
}

func TestParallelDetectsCrossGoroutineCycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	ev := dp.New(func(self dp.Recurser[string, int], _ struct{}, k string) int {
		switch k {
		case "root":
			v := self.EvalAll("a", "b")
			return v[0] + v[1]
		case "a":
			return self.Eval("b")
		default:
			return self.Eval("a")
		}
	}, dp.WithParallelism(dp.NewParallelConfig(4, 0)))

	for range 50 {
		_, err := ev.Run(struct{}{}, "root")
		require.Error(t, err)

		var ce *dp.CycleError
		require.ErrorAs(t, err, &ce)
		require.Len(t, ce.Chain, 3)
		assert.Equal(t, ce.Chain[0], ce.Chain[2])
		assert.Contains(t, []any{"a", "b"}, ce.Key)
	}
}

func TestParallelDetectsSelfCycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	ev := dp.New(func(self dp.Recurser[int, int], _ struct{}, n int) int {
		return self.Eval(n)
	}, dp.WithParallelism(dp.ParallelConfig{}))

	_, err := ev.Run(struct{}{}, 7)
	var ce *dp.CycleError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []any{7, 7}, ce.Chain)
}

func TestParallelPropagatesForeignPanics(t *testing.T) {
	defer goleak.VerifyNone(t)

	ev := dp.New(func(self dp.Recurser[int, int], _ struct{}, n int) int {
		if n == 0 {
			panic("boom")
		}
		v := self.EvalAll(n-1, n-1, n-1)
		return v[0] + v[1] + v[2]
	}, dp.WithParallelism(dp.NewParallelConfig(2, 2)))

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = ev.Run(struct{}{}, 6)
	})
}

func TestParallelConcurrentRuns(t *testing.T) {
	defer goleak.VerifyNone(t)

	ev := dp.New(fibModSolve, dp.WithParallelism(dp.ParallelConfig{}))

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = ev.MustRun(struct{}{}, 60+i)
		}()
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, iterativeFibMod(60+i), got)
	}
}
