package dp

import (
	"slices"
	"sync"
)

// waitGraph tracks, for every key being solved, the keys it is currently
// blocked on. An edge a→b means the solve of a is waiting for b, either by
// solving it or by waiting on another goroutine that does.
type waitGraph[K comparable] struct {
	mu    sync.Mutex
	edges map[K]map[K]int
}

func newWaitGraph[K comparable]() *waitGraph[K] {
	return &waitGraph[K]{edges: make(map[K]map[K]int)}
}

func (g *waitGraph[K]) add(from, to K) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addLocked(from, to)
}

// wait records from→to unless to can already reach from, in which case
// blocking would never end. It then returns the chain to → … → from → to and
// leaves the graph unchanged.
func (g *waitGraph[K]) wait(from, to K) ([]K, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if path, ok := g.pathLocked(to, from); ok {
		return append(path, to), true
	}
	g.addLocked(from, to)
	return nil, false
}

func (g *waitGraph[K]) remove(from, to K) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.edges[from]
	if out[to]--; out[to] <= 0 {
		delete(out, to)
	}
	if len(out) == 0 {
		delete(g.edges, from)
	}
}

func (g *waitGraph[K]) addLocked(from, to K) {
	out := g.edges[from]
	if out == nil {
		out = make(map[K]int)
		g.edges[from] = out
	}
	out[to]++
}

// pathLocked returns a path src → … → dst, if any.
func (g *waitGraph[K]) pathLocked(src, dst K) ([]K, bool) {
	if src == dst {
		return []K{src}, true
	}
	parent := map[K]K{}
	visited := map[K]bool{src: true}
	stack := []K{src}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range g.edges[n] {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = n
			if next == dst {
				path := []K{dst}
				for at := dst; at != src; {
					at = parent[at]
					path = append(path, at)
				}
				slices.Reverse(path)
				return path, true
			}
			stack = append(stack, next)
		}
	}
	return nil, false
}
