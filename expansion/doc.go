// Package expansion reverses station contraction: once a virtual edge
// produced by package contraction has a settled grid route, the
// stations it absorbed are reinserted at evenly spaced points along
// that route and the single edge is split back into one edge per
// segment between consecutive stations.
//
// The index-into-route bookkeeping is grounded on the teacher's
// gridgraph.ExpandIsland, which walks a flat node slice by integer index
// the same way this package walks a settled route.
package expansion
