package contraction

import (
	"sort"

	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/CalliEve/metro-map-editor-sub000/model"
)

// Contracted records a station that was absorbed into a virtual edge
// during contraction, so expansion can later rebuild it.
type Contracted struct {
	Station *model.Station
	// Edge is the virtual edge the station was folded into.
	Edge model.EdgeID
}

// ContractStations collapses every maximal chain of plain degree-two
// stations into a single edge carrying the chain's line set, recording
// each absorbed station so expansion can reinsert it later. Closed
// loops with no branching station (a line section that cycles back on
// itself with no distinct endpoint) are left uncontracted: this map's
// invariant of at most one edge per station pair and no self-loops has
// no clean way to represent a single-edge circular section, and such
// sections are rare enough in practice that leaving them slightly less
// compact is an acceptable simplification.
func ContractStations(m *model.Map, nodeSetRadius int) map[model.StationID]Contracted {
	result := make(map[model.StationID]Contracted)
	processed := make(map[model.StationID]bool)

	for _, s := range m.Stations() {
		if processed[s.ID] || !isContractible(m, s.ID) {
			continue
		}

		leftEnd, rightEnd, middles, edges, isCycle := traceChain(m, s.ID)
		for _, mid := range middles {
			processed[mid] = true
		}
		if isCycle {
			continue
		}
		if len(middles) == 0 {
			continue
		}

		leftStation, _ := m.Station(leftEnd)
		rightStation, _ := m.Station(rightEnd)
		if !canContractInto(nodeSetRadius, leftStation, rightStation, len(middles)) {
			continue
		}

		contractChain(m, leftEnd, rightEnd, middles, edges, result)
	}

	return result
}

// isContractible reports whether a station is a plain pass-through: not
// locked, with exactly two incident edges carrying an identical set of
// lines.
func isContractible(m *model.Map, station model.StationID) bool {
	s, ok := m.Station(station)
	if !ok || s.Locked {
		return false
	}
	incident := m.IncidentEdges(station)
	if len(incident) != 2 {
		return false
	}
	return sameLines(incident[0], incident[1])
}

func sameLines(a, b *model.Edge) bool {
	if len(a.Lines) != len(b.Lines) {
		return false
	}
	want := make(map[model.LineID]bool, len(a.Lines))
	for _, l := range a.Lines {
		want[l] = true
	}
	for _, l := range b.Lines {
		if !want[l] {
			return false
		}
	}
	return true
}

// traceChain walks outward from seed (a contractible station) in both
// directions until it hits a non-contractible station on each side, or
// wraps back around to seed, which marks the whole section a closed
// loop.
func traceChain(m *model.Map, seed model.StationID) (leftEnd, rightEnd model.StationID, middles []model.StationID, edges []model.EdgeID, isCycle bool) {
	incident := m.IncidentEdges(seed)

	leftTail, leftMids, leftEdges := walk(m, seed, seed, incident[0])
	rightTail, rightMids, rightEdges := walk(m, seed, seed, incident[1])

	if leftTail == seed || rightTail == seed {
		isCycle = true
	}

	middles = append(reverseStations(leftMids), seed)
	middles = append(middles, rightMids...)

	edges = append(reverseEdges(leftEdges), rightEdges...)

	return leftTail, rightTail, middles, edges, isCycle
}

// walk follows the chain starting at `from` across `edge`, away from
// `origin`, until it reaches a station that is not contractible or
// wraps back around to origin.
func walk(m *model.Map, origin, from model.StationID, edge *model.Edge) (end model.StationID, middles []model.StationID, edges []model.EdgeID) {
	cur := from
	cursorEdge := edge
	for {
		edges = append(edges, cursorEdge.ID)
		next := cursorEdge.OtherEnd(cur)
		if next == origin || !isContractible(m, next) {
			end = next
			return
		}
		middles = append(middles, next)
		cur = next
		cursorEdge = otherIncidentEdge(m, cur, cursorEdge.ID)
	}
}

func otherIncidentEdge(m *model.Map, station model.StationID, exclude model.EdgeID) *model.Edge {
	for _, e := range m.IncidentEdges(station) {
		if e.ID != exclude {
			return e
		}
	}
	return nil
}

func reverseStations(in []model.StationID) []model.StationID {
	out := make([]model.StationID, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

func reverseEdges(in []model.EdgeID) []model.EdgeID {
	out := make([]model.EdgeID, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

// canContractInto reports whether a section between start and end with
// stationCount absorbed stations is far enough apart to be worth
// contracting into a single routed edge. A locked endpoint contributes
// no search radius of its own, since its position can never move.
func canContractInto(nodeSetRadius int, start, end *model.Station, stationCount int) bool {
	radiusMult := 2
	if start.Locked {
		radiusMult--
	}
	if end.Locked {
		radiusMult--
	}
	return geo.ManhattanDistance(start.Pos, end.Pos) > nodeSetRadius*radiusMult+stationCount
}

// contractChain replaces a traced chain with a single virtual edge
// between leftEnd and rightEnd, recording the absorbed stations.
func contractChain(
	m *model.Map,
	leftEnd, rightEnd model.StationID,
	middles []model.StationID,
	edges []model.EdgeID,
	result map[model.StationID]Contracted,
) {
	lines := unionLines(m, edges)

	virtual, err := m.AddEdge(leftEnd, rightEnd, model.WithEdgeLines(lines...))
	if err != nil {
		// leftEnd/rightEnd already directly connected (a two-station
		// cycle collapsed to its two endpoints); nothing further to
		// contract through.
		return
	}
	virtual.ContractedStations = append([]model.StationID(nil), middles...)

	relinkLines(m, edges, virtual.ID)

	for _, mid := range middles {
		station, ok := m.Station(mid)
		if !ok {
			continue
		}
		result[mid] = Contracted{Station: station, Edge: virtual.ID}
		m.RemoveStation(mid)
	}
	for _, e := range edges {
		m.RemoveEdge(e)
	}
}

func unionLines(m *model.Map, edges []model.EdgeID) []model.LineID {
	seen := make(map[model.LineID]bool)
	var out []model.LineID
	for _, id := range edges {
		e, ok := m.Edge(id)
		if !ok {
			continue
		}
		for _, l := range e.Lines {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// relinkLines rewrites every line's edge sequence so that any run of the
// absorbed edges is replaced by the single new virtual edge.
func relinkLines(m *model.Map, absorbed []model.EdgeID, virtual model.EdgeID) {
	absorbedSet := make(map[model.EdgeID]bool, len(absorbed))
	for _, id := range absorbed {
		absorbedSet[id] = true
	}

	for _, line := range m.Lines() {
		var rebuilt []model.EdgeID
		for _, id := range line.Edges {
			if !absorbedSet[id] {
				rebuilt = append(rebuilt, id)
				continue
			}
			if len(rebuilt) == 0 || rebuilt[len(rebuilt)-1] != virtual {
				rebuilt = append(rebuilt, virtual)
			}
		}
		line.Edges = rebuilt
	}
}
