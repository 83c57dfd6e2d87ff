// Package cost implements the per-node cost function the router
// minimizes: a move cost for the step taken, a bend-angle or
// station-exit cost depending on how far into the route the node is,
// approach-feasibility and occupation checks that turn infeasible moves
// into +Inf, and a diagonal-distance heuristic toward the route's goal.
//
// Settings is configured with functional options, following the same
// default-then-apply pattern as dijkstra.Options/DefaultOptions.
package cost
