// Package contraction collapses chains of plain degree-two stations
// (stretches of track with no branching and no interchange) into a
// single virtual edge before routing, recording the absorbed stations
// so package expansion can reinsert them once a route has been found
// for that virtual edge.
//
// The chain-tracing walk is grounded on the teacher's
// gridgraph.ConnectedComponents BFS, adapted from flood-filling grid
// cells of equal value to following a line section's stations of equal
// incident-line-set.
package contraction
