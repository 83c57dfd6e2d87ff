package model

import "github.com/CalliEve/metro-map-editor-sub000/geo"

// Station is a metro stop positioned on the octilinear grid.
type Station struct {
	ID   StationID
	Name string

	// Pos is the station's current grid position, mutated in place by
	// local search.
	Pos geo.Node
	// OriginalPos is the position the station had when this layout run
	// started; local search's candidate-distance scoring and route
	// edges' node-set construction are both centered on it rather than
	// on Pos so that repeated relocation doesn't drift a chain of
	// stations arbitrarily far from the input layout.
	OriginalPos geo.Node

	// Locked stations never move and their incident edges are never
	// rerouted.
	Locked bool
	// Settled is true once every incident edge has a committed route in
	// the current run.
	Settled bool

	// Cost is the sum of this station's displacement cost from
	// OriginalPos plus the routing cost of every incident edge as last
	// committed, cached so local search can compare a trial relocation
	// against it without recomputing the whole sum from scratch on
	// every scan.
	Cost float64
}

// Edge is a metro line segment between two stations, eventually carrying
// a concrete grid route once routing has settled it.
type Edge struct {
	ID   EdgeID
	From StationID
	To   StationID

	// Lines lists every line that runs along this edge.
	Lines []LineID

	// Nodes is the committed grid route from From's position to To's
	// position, inclusive of both endpoints, once Settled is true.
	Nodes []geo.Node

	Settled bool
	Locked  bool

	// Cost is the routing cost of Nodes as last committed, cached
	// alongside it so a station's total cost can be summed from its
	// incident edges without re-running Dijkstra.
	Cost float64

	// ContractedStations lists the degree-2 stations this edge absorbed
	// during contraction, in order from From to To. Empty for an edge
	// that was never contracted.
	ContractedStations []StationID
}

// HasLine reports whether l runs along e.
func (e *Edge) HasLine(l LineID) bool {
	for _, id := range e.Lines {
		if id == l {
			return true
		}
	}
	return false
}

// OtherEnd returns the station at the far end of e from station.
func (e *Edge) OtherEnd(station StationID) StationID {
	if e.From == station {
		return e.To
	}
	return e.From
}

// Line is a named sequence of edges a train runs along.
type Line struct {
	ID    LineID
	Name  string
	Color string
	Edges []EdgeID
}
