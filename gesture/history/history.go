// Package history persists a log of gesture recognitions: append-only
// firing records keyed by the compiled network they came from. It is
// independent of the live token-flow engine — a Store only ever learns
// about a firing after the fact, via Record.
package history

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested network ID has no recorded
// firings.
var ErrNotFound = errors.New("history: not found")

// Firing is one recognized instance of a compiled gesture.
type Firing struct {
	// NetworkID identifies the compiled network that produced this firing.
	NetworkID string

	// Sequence is this firing's position within its network's history,
	// starting at 1. The store assigns this itself; callers never supply it.
	Sequence int

	// At is when the firing was recorded.
	At time.Time
}

// Store is an append-only log of Firings, partitioned by network ID.
//
// Implementations can use in-memory storage (for tests), SQLite (single
// process, zero setup) or MySQL (shared, multi-process). Type parameter-free
// by design: a Firing carries no domain state, so there is nothing for a
// generic Store[S] to parameterize over.
//
// Record takes no payload because Expression.Gesture().Subscribe callbacks
// are themselves payload-free (func(), not func([]*Token)) — a firing
// carries no observable token count by the time a host learns about it, only
// the fact that it happened. A Store that wanted a token count would need
// the engine to hand tokens to Gesture listeners, which invariant 7's
// upward-completion contract does not do.
type Store interface {
	// Record appends a firing to networkID's history and returns it with
	// Sequence and At populated.
	Record(ctx context.Context, networkID string) (Firing, error)

	// List returns every firing recorded for networkID, ordered by
	// Sequence. Returns ErrNotFound if networkID has no recorded firings.
	List(ctx context.Context, networkID string) ([]Firing, error)

	// Count returns how many firings are recorded for networkID.
	Count(ctx context.Context, networkID string) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
