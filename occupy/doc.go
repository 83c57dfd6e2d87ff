// Package occupy tracks which grid nodes are claimed by which station or
// edge during a layout run, and implements the diagonal-cross test that
// keeps two unrelated diagonal route segments from passing through each
// other inside the same unit square.
//
// A Nodes value is a snapshot, not a live view: callers clone it before
// mutating it the way gridgraph.NewGridGraph deep-copies its input grid,
// so a rejected speculative route never corrupts the map's real
// occupation state.
package occupy
