package model

import (
	"fmt"
	"sync/atomic"
)

// StationID uniquely identifies a station within a Map.
type StationID uint64

// String implements fmt.Stringer.
func (id StationID) String() string { return fmt.Sprintf("station#%d", uint64(id)) }

// EdgeID uniquely identifies an edge within a Map.
type EdgeID uint64

// String implements fmt.Stringer.
func (id EdgeID) String() string { return fmt.Sprintf("edge#%d", uint64(id)) }

// LineID uniquely identifies a line within a Map.
type LineID uint64

// IDAllocator hands out monotonically increasing IDs per entity kind.
// It is the Go analogue of the original implementation's atomic station
// and edge ID counters: explicit, constructible state rather than a
// hidden package-global, so a Map and its allocator can be cloned and
// threaded through the engine together.
type IDAllocator struct {
	station atomic.Uint64
	edge    atomic.Uint64
	line    atomic.Uint64
}

// NextStation returns a fresh, never-before-issued StationID.
func (a *IDAllocator) NextStation() StationID {
	return StationID(a.station.Add(1))
}

// NextEdge returns a fresh, never-before-issued EdgeID.
func (a *IDAllocator) NextEdge() EdgeID {
	return EdgeID(a.edge.Add(1))
}

// NextLine returns a fresh, never-before-issued LineID.
func (a *IDAllocator) NextLine() LineID {
	return LineID(a.line.Add(1))
}

// Clone returns an allocator that will continue issuing IDs from where a
// left off, without sharing state with a. Used when cloning a Map for a
// speculative local-search candidate.
func (a *IDAllocator) Clone() *IDAllocator {
	c := &IDAllocator{}
	c.station.Store(a.station.Load())
	c.edge.Store(a.edge.Load())
	c.line.Store(a.line.Load())
	return c
}
