// Package model defines the station/edge/line graph the layout engine
// operates on, plus the grid positions and lock/settle bookkeeping the
// algorithm packages mutate as they run.
//
// A Map's station and edge collections are guarded by independent
// sync.RWMutex locks so a caller may read a map from one goroutine while
// the engine works on a private clone in another. The algorithm
// packages themselves are single-threaded per run; see package engine.
package model
