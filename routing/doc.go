// Package routing implements Edge Dijkstra, the constrained shortest
// path search that routes a single edge's grid nodes given a set of
// candidate start nodes and a set of candidate end nodes.
//
// It generalizes the teacher's single-source Dijkstra
// (container/heap, lazy decrease-key, a run-scoped runner struct) from
// one source vertex over an explicit weighted graph to a weighted set
// of start nodes and a set of goal nodes over the implicit 8-neighbor
// grid graph, with edge weights computed on the fly by package cost
// rather than precomputed.
package routing
