package dp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
)

// EventKind classifies a memo table event.
type EventKind uint8

const (
	// EventMiss fires when an absent key is marked pending.
	EventMiss EventKind = iota + 1
	// EventHit fires when a resolved value is returned without solving.
	EventHit
	// EventResolve fires when a solve step returns.
	EventResolve
	// EventCycle fires right before a *CycleError is raised.
	EventCycle
)

func (k EventKind) String() string {
	switch k {
	case EventMiss:
		return "miss"
	case EventHit:
		return "hit"
	case EventResolve:
		return "resolve"
	case EventCycle:
		return "cycle"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event describes one step of a run.
// Depth is the number of keys being solved on the current call chain.
type Event struct {
	RunID uuid.UUID
	Kind  EventKind
	Key   any
	Value any
	Depth int
}

// Observer receives memo events.
type Observer func(Event)

// Stats summarises one finished run.
type Stats struct {
	RunID   uuid.UUID
	Solves  int // solve-step invocations, one per distinct key
	Hits    int // evaluations answered from the table
	Entries int // keys in the table when the run ended
	Span    timespan.TimeSpan
}

// Duration returns the wall-clock time the run took.
func (s Stats) Duration() time.Duration {
	return s.Span.Duration()
}
