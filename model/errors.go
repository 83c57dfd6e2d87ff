package model

import "errors"

var (
	// ErrStationNotFound is returned when a StationID has no matching
	// station in the map.
	ErrStationNotFound = errors.New("model: station not found")
	// ErrEdgeNotFound is returned when an EdgeID has no matching edge.
	ErrEdgeNotFound = errors.New("model: edge not found")
	// ErrLineNotFound is returned when a LineID has no matching line.
	ErrLineNotFound = errors.New("model: line not found")
	// ErrSelfLoop is returned when AddEdge is called with from == to.
	ErrSelfLoop = errors.New("model: edge endpoints are identical")
	// ErrDuplicateEdge is returned by AddEdge when an edge between the
	// given stations already exists; use EdgeBetweenOrCreate to get the
	// existing edge instead of erroring.
	ErrDuplicateEdge = errors.New("model: edge between stations already exists")
)
