package occupy

import (
	"errors"

	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/CalliEve/metro-map-editor-sub000/model"
)

// ErrCorruptedOccupation is returned when a routing attempt discovers
// that a node it is about to claim is already claimed by something
// other than what it expected — a sign the occupation snapshot and the
// map have drifted out of sync.
var ErrCorruptedOccupation = errors.New("occupy: node already claimed by an unexpected occupant")

// Kind distinguishes what kind of entity is occupying a node.
type Kind int

const (
	// KindStation means a station sits on the node.
	KindStation Kind = iota
	// KindEdge means a routed edge passes through the node.
	KindEdge
)

// Occupant records what claims a single grid node.
type Occupant struct {
	Kind    Kind
	Station model.StationID
	Edge    model.EdgeID
}

// StationOccupant builds an Occupant for a station claim.
func StationOccupant(id model.StationID) Occupant {
	return Occupant{Kind: KindStation, Station: id}
}

// EdgeOccupant builds an Occupant for an edge-route claim.
func EdgeOccupant(id model.EdgeID) Occupant {
	return Occupant{Kind: KindEdge, Edge: id}
}

// Nodes is a snapshot of which grid nodes are claimed by which station
// or edge.
type Nodes map[geo.Node]Occupant

// New returns an empty occupation snapshot.
func New() Nodes {
	return make(Nodes)
}

// Set claims n for occupant, overwriting any prior claim.
func (n Nodes) Set(node geo.Node, occupant Occupant) {
	n[node] = occupant
}

// Get returns the occupant of node, if any.
func (n Nodes) Get(node geo.Node) (Occupant, bool) {
	o, ok := n[node]
	return o, ok
}

// Remove clears any claim on node.
func (n Nodes) Remove(node geo.Node) {
	delete(n, node)
}

// Clone returns an independent copy of n.
func (n Nodes) Clone() Nodes {
	out := make(Nodes, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}

// DiagonalOccupied reports whether a diagonal step from first to second
// would cross a segment occupying the other two corners of the same unit
// square. The step is blocked when both other corners belong to the same
// edge, or when one holds a station and the other an edge incident to
// that station. Any other combination of occupants, including two
// different edges, does not block it.
func DiagonalOccupied(m *model.Map, first, second geo.Node, occ Nodes) bool {
	if first.X == second.X || first.Y == second.Y {
		return false
	}

	cornerA := geo.Node{X: first.X, Y: second.Y}
	cornerB := geo.Node{X: second.X, Y: first.Y}

	occA, okA := occ.Get(cornerA)
	occB, okB := occ.Get(cornerB)
	if !okA || !okB {
		return false
	}

	if occA.Kind == KindEdge && occB.Kind == KindEdge && occA.Edge == occB.Edge {
		return true
	}

	return stationBlocksEdge(m, occA, occB) || stationBlocksEdge(m, occB, occA)
}

// stationBlocksEdge reports whether stationOccupant is a station that
// has otherOccupant's edge among its incident edges.
func stationBlocksEdge(m *model.Map, stationOccupant, otherOccupant Occupant) bool {
	if stationOccupant.Kind != KindStation || otherOccupant.Kind != KindEdge {
		return false
	}
	for _, e := range m.IncidentEdges(stationOccupant.Station) {
		if e.ID == otherOccupant.Edge {
			return true
		}
	}
	return false
}
