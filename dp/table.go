package dp

import "fmt"

// State is the memo state of a single key.
type State uint8

const (
	// Absent means the key was never seen in this table.
	Absent State = iota
	// Pending means the key is being computed right now.
	Pending
	// Resolved means the final value is cached.
	Resolved
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

type cell[V any] struct {
	resolved bool
	value    V
}

// Table maps keys to their memo state for one run.
//
// Entries only ever move absent → pending → resolved. Table is not safe for
// concurrent use; the parallel engine uses a sharded table instead.
type Table[K comparable, V any] struct {
	cells    map[K]cell[V]
	resolved int
}

func NewTable[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{cells: make(map[K]cell[V])}
}

// Lookup returns the state of k and, when resolved, its value.
func (t *Table[K, V]) Lookup(k K) (V, State) {
	c, ok := t.cells[k]
	switch {
	case !ok:
		var zero V
		return zero, Absent
	case !c.resolved:
		return c.value, Pending
	default:
		return c.value, Resolved
	}
}

// MarkPending moves k from absent to pending.
// Panics if k was already seen.
func (t *Table[K, V]) MarkPending(k K) {
	if _, state := t.Lookup(k); state != Absent {
		panic(fmt.Errorf("%w: %v is %s, want %s", ErrInvalidTransition, k, state, Absent))
	}
	t.cells[k] = cell[V]{}
}

// Resolve moves k from pending to resolved with value v.
// Panics if k is not pending.
func (t *Table[K, V]) Resolve(k K, v V) {
	if _, state := t.Lookup(k); state != Pending {
		panic(fmt.Errorf("%w: %v is %s, want %s", ErrInvalidTransition, k, state, Pending))
	}
	t.cells[k] = cell[V]{resolved: true, value: v}
	t.resolved++
}

// Len returns the number of keys seen, pending or resolved.
func (t *Table[K, V]) Len() int {
	return len(t.cells)
}

// ResolvedLen returns the number of resolved keys.
func (t *Table[K, V]) ResolvedLen() int {
	return t.resolved
}
