package dp

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"
)

// Recurser is the capability a solve step uses to evaluate sub-problems.
// It is only valid for the duration of the run that handed it out.
type Recurser[K comparable, V any] interface {
	// Eval returns the value of key, solving it at most once per run.
	Eval(key K) V

	// EvalAll evaluates keys and returns their values in the same order.
	// The parallel engine solves them concurrently.
	EvalAll(keys ...K) []V
}

// SolveFunc is the recurrence body. It must recurse only through self and
// must treat aux as read-only.
type SolveFunc[C any, K comparable, V any] func(self Recurser[K, V], aux C, key K) V

// Evaluator is a reusable memoized-recursion engine. It holds no per-run
// state, so one Evaluator may serve many runs, including concurrent ones.
type Evaluator[C any, K comparable, V any] struct {
	solve SolveFunc[C, K, V]
	cfg   Config[C, K]
	opts  options
}

// New creates an evaluator for solve without default arguments.
// Panics if solve is nil.
func New[C any, K comparable, V any](solve SolveFunc[C, K, V], opts ...Option) *Evaluator[C, K, V] {
	if solve == nil {
		panic("dp: solve step must not be nil")
	}
	return &Evaluator[C, K, V]{
		solve: solve,
		opts:  buildOptions(opts),
	}
}

// NewWithConfig creates an evaluator whose root key is completed by
// cfg.Defaults. Malformed bindings are rejected here with a *DefaultError.
func NewWithConfig[C any, K comparable, V any](
	solve SolveFunc[C, K, V],
	cfg Config[C, K],
	opts ...Option,
) (*Evaluator[C, K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ev := New(solve, opts...)
	ev.cfg = cfg
	return ev, nil
}

// Resolve fills the elided fields of key from aux. It never evaluates.
func (e *Evaluator[C, K, V]) Resolve(aux C, key K) (K, error) {
	return e.cfg.resolve(aux, key)
}

// Run resolves defaults and evaluates key against a fresh memo table.
func (e *Evaluator[C, K, V]) Run(aux C, key K) (V, error) {
	v, _, err := e.RunStats(aux, key)
	return v, err
}

// MustRun is the panic-on-failure variant of Run.
func (e *Evaluator[C, K, V]) MustRun(aux C, key K) V {
	v, err := e.Run(aux, key)
	if err != nil {
		panic(err)
	}
	return v
}

// RunStats is Run that also reports what the run did.
//
// A cycle abandons the run and is returned as a *CycleError. Any other panic
// raised by the solve step is propagated unchanged.
func (e *Evaluator[C, K, V]) RunStats(aux C, key K) (v V, stats Stats, err error) {
	if key, err = e.Resolve(aux, key); err != nil {
		return v, stats, err
	}

	id := uuid.New()
	r := e.newRun(id, aux)
	logger := e.opts.logger.With(zap.Stringer("run_id", id))
	if e.opts.name != "" {
		logger = logger.With(zap.String("name", e.opts.name))
	}
	logger.Debug("dp run started", zap.Any("key", key))

	start := time.Now()
	defer func() {
		stats = r.stats()
		stats.RunID = id
		stats.Span = timespan.BetweenTimes(start, time.Now())

		if rec := recover(); rec != nil {
			ce, ok := rec.(*CycleError)
			if !ok {
				panic(rec)
			}
			logger.Error("dp cycle detected",
				zap.Any("key", ce.Key),
				zap.Any("chain", ce.Chain),
			)
			var zero V
			v, err = zero, ce
			return
		}
		logger.Debug("dp run finished",
			zap.Int("solves", stats.Solves),
			zap.Int("hits", stats.Hits),
			zap.Int("entries", stats.Entries),
			zap.Duration("duration", stats.Duration()),
		)
	}()

	return r.entry().Eval(key), stats, nil
}

type runner[K comparable, V any] interface {
	entry() Recurser[K, V]
	stats() Stats
}

func (e *Evaluator[C, K, V]) newRun(id uuid.UUID, aux C) runner[K, V] {
	if e.opts.parallel != nil {
		return newParallelRun(e, id, aux)
	}
	return &sequentialRun[C, K, V]{
		id:       id,
		name:     e.opts.name,
		aux:      aux,
		solve:    e.solve,
		table:    NewTable[K, V](),
		observer: e.opts.observer,
	}
}

// sequentialRun is the depth-first engine. It is confined to one goroutine.
type sequentialRun[C any, K comparable, V any] struct {
	id       uuid.UUID
	name     string
	aux      C
	solve    SolveFunc[C, K, V]
	table    *Table[K, V]
	stack    []K
	solves   int
	hits     int
	observer Observer
}

func (r *sequentialRun[C, K, V]) entry() Recurser[K, V] {
	return r
}

func (r *sequentialRun[C, K, V]) stats() Stats {
	return Stats{
		Solves:  r.solves,
		Hits:    r.hits,
		Entries: r.table.Len(),
	}
}

func (r *sequentialRun[C, K, V]) Eval(key K) V {
	v, state := r.table.Lookup(key)
	switch state {
	case Resolved:
		r.hits++
		r.emit(EventHit, key, v)
		return cloneValue(v)
	case Pending:
		panic(r.cycle(key))
	}

	r.table.MarkPending(key)
	r.emit(EventMiss, key, nil)
	r.stack = append(r.stack, key)
	r.solves++

	v = r.solve(r, r.aux, key)

	r.stack = r.stack[:len(r.stack)-1]
	r.table.Resolve(key, v)
	r.emit(EventResolve, key, v)
	return cloneValue(v)
}

func (r *sequentialRun[C, K, V]) EvalAll(keys ...K) []V {
	out := make([]V, len(keys))
	for i, k := range keys {
		out[i] = r.Eval(k)
	}
	return out
}

func (r *sequentialRun[C, K, V]) cycle(key K) *CycleError {
	chain := make([]any, 0, len(r.stack)+1)
	for _, k := range r.stack[slices.Index(r.stack, key):] {
		chain = append(chain, k)
	}
	chain = append(chain, key)
	r.emit(EventCycle, key, nil)
	return &CycleError{RunID: r.id, Name: r.name, Key: key, Chain: chain}
}

func (r *sequentialRun[C, K, V]) emit(kind EventKind, key K, value any) {
	if r.observer == nil {
		return
	}
	r.observer(Event{RunID: r.id, Kind: kind, Key: key, Value: value, Depth: len(r.stack)})
}

type cloner[V any] interface {
	Clone() V
}

// cloneValue hands out a private copy when V knows how to make one.
func cloneValue[V any](v V) V {
	if c, ok := any(v).(cloner[V]); ok {
		return c.Clone()
	}
	return v
}
