package dp_test

import (
	"fmt"
	"testing"

	"github.com/on-the-ground/memo_ive_go/dp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulus = 1_000_000_007

var engines = map[string][]dp.Option{
	"sequential": nil,
	"parallel":   {dp.WithParallelism(dp.NewParallelConfig(8, 4))},
	"one shard":  {dp.WithParallelism(dp.NewParallelConfig(1, 0))},
}

func fibModSolve(self dp.Recurser[int, int], _ struct{}, n int) int {
	if n < 2 {
		return n
	}
	v := self.EvalAll(n-1, n-2)
	return (v[0] + v[1]) % modulus
}

func iterativeFibMod(n int) int {
	a, b := 0, 1
	for range n {
		a, b = b, (a+b)%modulus
	}
	return a
}

func TestFibonacci(t *testing.T) {
	for name, opts := range engines {
		t.Run(name, func(t *testing.T) {
			ev := dp.New(fibModSolve, opts...)

			v, stats, err := ev.RunStats(struct{}{}, 40)
			require.NoError(t, err)
			assert.Equal(t, 102334155, v)
			assert.Equal(t, 41, stats.Solves)
			assert.Equal(t, 41, stats.Entries)

			assert.Equal(t, iterativeFibMod(1000), ev.MustRun(struct{}{}, 1000))
		})
	}
}

func bruteForceKnapsack(s shelf, capacity int) int {
	best := 0
	for mask := 0; mask < 1<<len(s.values); mask++ {
		value, weight := 0, 0
		for i := range s.values {
			if mask&(1<<i) != 0 {
				value += s.values[i]
				weight += s.weights[i]
			}
		}
		if weight <= capacity {
			best = max(best, value)
		}
	}
	return best
}

func TestKnapsack(t *testing.T) {
	for name, opts := range engines {
		t.Run(name, func(t *testing.T) {
			ev := dp.New(knapsackSolve, opts...)

			assert.Equal(t, 13, ev.MustRun(sampleShelf, pick{n: 5, capacity: 10}))
			for capacity := 0; capacity <= 25; capacity++ {
				assert.Equal(t,
					bruteForceKnapsack(sampleShelf, capacity),
					ev.MustRun(sampleShelf, pick{n: 5, capacity: capacity}),
					"capacity %d", capacity,
				)
			}
		})
	}
}

type prefixes struct {
	i, j int
}

// editSolve computes the Levenshtein distance between the first i runes of
// words[0] and the first j runes of words[1].
func editSolve(self dp.Recurser[prefixes, int], words [2][]rune, p prefixes) int {
	switch {
	case p.i == 0:
		return p.j
	case p.j == 0:
		return p.i
	}
	cost := 1
	if words[0][p.i-1] == words[1][p.j-1] {
		cost = 0
	}
	v := self.EvalAll(
		prefixes{p.i - 1, p.j},
		prefixes{p.i, p.j - 1},
		prefixes{p.i - 1, p.j - 1},
	)
	return min(v[0]+1, v[1]+1, v[2]+cost)
}

func bottomUpEditDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur := make([]int, len(b)+1)
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev = cur
	}
	return prev[len(b)]
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"love", "movie", 2},
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"same", "same", 0},
		{"aurora", "cinema", 5},
		{"aurora", "parkour", 5},
		{"aurora", "algorithm", 6},
		{"cinema", "parkour", 7},
		{"cinema", "algorithm", 8},
		{"parkour", "algorithm", 8},
	}

	for name, opts := range engines {
		t.Run(name, func(t *testing.T) {
			ev := dp.New(editSolve, opts...)
			for _, tt := range tests {
				words := [2][]rune{[]rune(tt.a), []rune(tt.b)}
				got := ev.MustRun(words, prefixes{len(words[0]), len(words[1])})
				assert.Equal(t, tt.want, got, "%s/%s", tt.a, tt.b)
				assert.Equal(t, bottomUpEditDistance(words[0], words[1]), got, "%s/%s", tt.a, tt.b)
			}
		})
	}
}

type seedPair struct {
	first, second string
}

func fibStringSolve(self dp.Recurser[int, string], seeds seedPair, n int) string {
	switch n {
	case 0:
		return seeds.first
	case 1:
		return seeds.second
	}
	return self.Eval(n-1) + self.Eval(n-2)
}

func TestFibonacciString(t *testing.T) {
	for name, opts := range engines {
		t.Run(name, func(t *testing.T) {
			ev := dp.New(fibStringSolve, opts...)

			assert.Equal(t, "babbabab", ev.MustRun(seedPair{"a", "b"}, 5))

			long := ev.MustRun(seedPair{"a", "b"}, 20)
			assert.Len(t, long, iterativeFibMod(21))
			assert.Equal(t, ev.MustRun(seedPair{"a", "b"}, 19), long[:iterativeFibMod(20)])
		})
	}
}

func ExampleEvaluator_RunStats() {
	ev := dp.New(fibModSolve)
	v, stats, _ := ev.RunStats(struct{}{}, 30)
	fmt.Println(v, stats.Solves, stats.Entries)
	// Output: 832040 31 31
}
