package routing

import "errors"

var (
	// ErrNoPath is returned when no route connects any of the given
	// start nodes to any of the given end nodes.
	ErrNoPath = errors.New("routing: no path found")
	// ErrEmptyPath is returned when the cheapest route found has the
	// same node as both its start and its end — nothing to route.
	ErrEmptyPath = errors.New("routing: start and end node are the same")
)
