// Package resultstore caches per-entry simulation results for a single grid.
//
// A simulation is a pure function of (grid, entry), so once an entry has been
// simulated its energized count can be reused by any later caller: the app
// shares one store between the named simulations of a plan and the boundary
// scan. A store must only ever hold results for one grid.
//
// # Concurrency Model
//
// The scanner writes results from many workers at once, each for a different
// entry. The in-memory store uses sync.Map, which suits this pattern of
// disjoint keys written once and read many times without a global lock.
package resultstore

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/beamgrid/internal/beam"
)

// Store records energized counts keyed by entry state.
type Store interface {
	// Get returns the cached count for entry, if any.
	Get(ctx context.Context, entry beam.State) (int, bool)
	// Set records the count for entry. Setting an existing entry overwrites it.
	Set(ctx context.Context, entry beam.State, count int)
	// Len returns the number of cached entries.
	Len() int
}

// InMemory is an ephemeral Store backed by sync.Map.
type InMemory struct {
	counts sync.Map // Key: beam.State, Value: int
	size   atomic.Int64
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Get implements Store.
func (s *InMemory) Get(ctx context.Context, entry beam.State) (int, bool) {
	v, ok := s.counts.Load(entry)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// Set implements Store.
func (s *InMemory) Set(ctx context.Context, entry beam.State, count int) {
	if _, loaded := s.counts.Swap(entry, count); !loaded {
		s.size.Add(1)
	}
}

// Len implements Store.
func (s *InMemory) Len() int {
	return int(s.size.Load())
}
