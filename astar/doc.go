// Package astar implements the coarse A* search used to quickly
// repopulate a route after a trivial edit (a station nudged by one
// grid cell, a line recolored) where re-running the full constrained
// Edge Dijkstra search would be wasted work.
//
// The search uses the same lazy-decrease-key container/heap pattern as
// the dijkstra package it is grounded on, generalized with a heuristic
// and a tie-break rule that prefers the longer of two equal-cost
// partial paths, matching the reference implementation's behavior.
package astar
