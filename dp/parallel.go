package dp

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// parallelRun is the sharded engine. Each key is settled by exactly one
// goroutine: whoever creates its cell. Everyone else waits on the cell.
type parallelRun[C any, K comparable, V any] struct {
	id        uuid.UUID
	name      string
	aux       C
	solve     SolveFunc[C, K, V]
	table     *shardedTable[K, V]
	waits     *waitGraph[K]
	maxFanOut int
	solves    atomic.Int64
	hits      atomic.Int64
	observer  Observer
}

func newParallelRun[C any, K comparable, V any](
	e *Evaluator[C, K, V],
	id uuid.UUID,
	aux C,
) *parallelRun[C, K, V] {
	return &parallelRun[C, K, V]{
		id:        id,
		name:      e.opts.name,
		aux:       aux,
		solve:     e.solve,
		table:     newShardedTable[K, V](e.opts.parallel.NumShards),
		waits:     newWaitGraph[K](),
		maxFanOut: e.opts.parallel.MaxFanOut,
		observer:  e.opts.observer,
	}
}

func (r *parallelRun[C, K, V]) entry() Recurser[K, V] {
	return &frame[C, K, V]{run: r}
}

func (r *parallelRun[C, K, V]) stats() Stats {
	return Stats{
		Solves:  int(r.solves.Load()),
		Hits:    int(r.hits.Load()),
		Entries: r.table.Len(),
	}
}

func (r *parallelRun[C, K, V]) emit(kind EventKind, key K, value any, depth int) {
	if r.observer == nil {
		return
	}
	r.observer(Event{RunID: r.id, Kind: kind, Key: key, Value: value, Depth: depth})
}

func (r *parallelRun[C, K, V]) cycle(key K, chain []K, depth int) *CycleError {
	links := make([]any, len(chain))
	for i, k := range chain {
		links[i] = k
	}
	r.emit(EventCycle, key, nil, depth)
	return &CycleError{RunID: r.id, Name: r.name, Key: key, Chain: links}
}

// frame is the Recurser handed to the solve step of one key.
// The root frame solves nothing itself and has no key.
type frame[C any, K comparable, V any] struct {
	run    *parallelRun[C, K, V]
	key    K
	hasKey bool
	depth  int
}

func (f *frame[C, K, V]) Eval(key K) V {
	r := f.run
	c, owner := r.table.acquire(key)
	if owner {
		return f.settle(key, c)
	}

	if !c.settled() {
		if f.hasKey {
			if chain, cyclic := r.waits.wait(f.key, key); cyclic {
				panic(r.cycle(key, chain, f.depth))
			}
			defer r.waits.remove(f.key, key)
		}
		<-c.done
	}
	if c.failure != nil {
		panic(c.failure)
	}
	r.hits.Add(1)
	r.emit(EventHit, key, c.value, f.depth)
	return cloneValue(c.value)
}

// settle solves key and publishes the outcome on c. A panic fails the cell
// so that waiters abandon the run too, then keeps unwinding.
func (f *frame[C, K, V]) settle(key K, c *sharedCell[V]) V {
	r := f.run
	if f.hasKey {
		r.waits.add(f.key, key)
		defer r.waits.remove(f.key, key)
	}
	r.solves.Add(1)
	r.emit(EventMiss, key, nil, f.depth)

	published := false
	defer func() {
		if published {
			return
		}
		if rec := recover(); rec != nil {
			c.fail(rec)
			panic(rec)
		}
	}()

	v := r.solve(&frame[C, K, V]{run: r, key: key, hasKey: true, depth: f.depth + 1}, r.aux, key)
	c.resolve(v)
	published = true
	r.emit(EventResolve, key, v, f.depth)
	return cloneValue(v)
}

func (f *frame[C, K, V]) EvalAll(keys ...K) []V {
	out := make([]V, len(keys))

	var g errgroup.Group
	g.SetLimit(f.run.maxFanOut)
	for i, k := range keys {
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = &panicked{value: rec}
				}
			}()
			out[i] = f.Eval(k)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var p *panicked
		if errors.As(err, &p) {
			panic(p.value)
		}
		panic(err)
	}
	return out
}

// panicked carries a panic out of an EvalAll goroutine so that it can be
// raised again on the caller's goroutine.
type panicked struct {
	value any
}

func (p *panicked) Error() string {
	return fmt.Sprintf("dp: solve step panicked: %v", p.value)
}
