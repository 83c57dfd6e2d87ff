package engine

import (
	"fmt"
	"math/rand"

	"github.com/CalliEve/metro-map-editor-sub000/astar"
	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/CalliEve/metro-map-editor-sub000/model"
	"github.com/CalliEve/metro-map-editor-sub000/occupy"
	"github.com/CalliEve/metro-map-editor-sub000/routing"
)

// precomputeApproachNodes gives every not-yet-settled, unlocked edge a
// coarse unit-cost route between its stations' current positions, purely
// so that approach-feasibility checks elsewhere have some direction to
// reason about for an edge that has not been routed yet. It never claims
// occupation and is fully overwritten once the edge is actually routed.
func precomputeApproachNodes(settings Settings, m *model.Map) {
	bounds := settings.CostSettings()
	neighbors := func(n geo.Node) []geo.Node {
		all := n.Neighbors()
		out := make([]geo.Node, 0, len(all))
		for _, nb := range all {
			if bounds.InBounds(nb.X, nb.Y) {
				out = append(out, nb)
			}
		}
		return out
	}

	for _, e := range m.Edges() {
		if e.Settled || e.Locked || len(e.Nodes) > 0 {
			continue
		}
		from, ok := m.Station(e.From)
		if !ok {
			continue
		}
		to, ok := m.Station(e.To)
		if !ok {
			continue
		}
		path, err := astar.Run(from.Pos, to.Pos, neighbors, nil)
		if err != nil {
			continue
		}
		e.Nodes = path
	}
}

// getNodeSet builds the candidate start/end node set route_edges offers
// Edge Dijkstra for one station: every free node within NodeSetRadius
// of the station's original position, weighted by distance from it.
// A locked station, or one with a locked incident edge, is pinned to
// its current position instead of offering a set.
func getNodeSet(settings Settings, m *model.Map, occ occupy.Nodes, stationID model.StationID) []routing.Candidate {
	station, ok := m.Station(stationID)
	if !ok {
		return nil
	}
	if station.Locked || hasLockedIncidentEdge(m, stationID) {
		return []routing.Candidate{{Node: station.Pos}}
	}

	radius := settings.NodeSetRadius
	var out []routing.Candidate
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			dist := abs(dx) + abs(dy)
			if dist > radius {
				continue
			}
			candidate := station.OriginalPos.Add(dx, dy)
			if occupant, occupied := occ.Get(candidate); occupied &&
				!(occupant.Kind == occupy.KindStation && occupant.Station == stationID) {
				continue
			}
			out = append(out, routing.Candidate{
				Node: candidate,
				Bias: float64(dist) * settings.MoveCost,
			})
		}
	}
	return out
}

func hasLockedIncidentEdge(m *model.Map, stationID model.StationID) bool {
	for _, e := range m.IncidentEdges(stationID) {
		if e.Locked {
			return true
		}
	}
	return false
}

// haveOverlap reports whether a and b share any candidate node.
func haveOverlap(a, b []routing.Candidate) bool {
	seen := make(map[geo.Node]struct{}, len(a))
	for _, c := range a {
		seen[c.Node] = struct{}{}
	}
	for _, c := range b {
		if _, ok := seen[c.Node]; ok {
			return true
		}
	}
	return false
}

// splitOverlap assigns every node shared between a and b to whichever
// station's original position is diagonally closer to it, always
// leaving each station at least its own original position.
func splitOverlap(aOriginal, bOriginal geo.Node, a, b []routing.Candidate) ([]routing.Candidate, []routing.Candidate) {
	bNodes := make(map[geo.Node]routing.Candidate, len(b))
	for _, c := range b {
		bNodes[c.Node] = c
	}

	var newA, newB []routing.Candidate
	claimedByB := make(map[geo.Node]bool)

	for _, c := range a {
		other, sharedWithB := bNodes[c.Node]
		if !sharedWithB || c.Node == aOriginal {
			newA = append(newA, c)
			continue
		}
		if c.Node == bOriginal {
			claimedByB[c.Node] = true
			newB = append(newB, other)
			continue
		}
		if geo.DiagonalDistance(c.Node, aOriginal) <= geo.DiagonalDistance(c.Node, bOriginal) {
			newA = append(newA, c)
		} else {
			claimedByB[c.Node] = true
			newB = append(newB, other)
		}
	}

	for _, c := range b {
		if claimedByB[c.Node] {
			continue
		}
		if _, inA := findCandidate(newA, c.Node); inA && c.Node != bOriginal {
			continue
		}
		newB = append(newB, c)
	}

	return newA, newB
}

func findCandidate(set []routing.Candidate, n geo.Node) (routing.Candidate, bool) {
	for _, c := range set {
		if c.Node == n {
			return c, true
		}
	}
	return routing.Candidate{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// routeEdges routes every edge in order against m and occ, stopping at
// the first failure. It returns how many edges it successfully routed
// before that point (or len(order) on full success) so the caller can
// decide what to retry.
func routeEdges(settings Settings, m *model.Map, order []model.EdgeID, occ occupy.Nodes) (int, error) {
	for i, edgeID := range order {
		e, ok := m.Edge(edgeID)
		if !ok || e.Locked {
			continue
		}

		fromStation, ok := m.Station(e.From)
		if !ok {
			return i, fmt.Errorf("engine: edge %s: %w", edgeID, model.ErrStationNotFound)
		}
		toStation, ok := m.Station(e.To)
		if !ok {
			return i, fmt.Errorf("engine: edge %s: %w", edgeID, model.ErrStationNotFound)
		}

		fromSet := getNodeSet(settings, m, occ, e.From)
		toSet := getNodeSet(settings, m, occ, e.To)
		if haveOverlap(fromSet, toSet) {
			fromSet, toSet = splitOverlap(fromStation.OriginalPos, toStation.OriginalPos, fromSet, toSet)
		}
		if len(fromSet) == 0 {
			fromSet = []routing.Candidate{{Node: fromStation.Pos}}
		}
		if len(toSet) == 0 {
			toSet = []routing.Candidate{{Node: toStation.Pos}}
		}

		result, err := routing.EdgeDijkstra(settings.CostSettings(), m, e, fromStation, fromSet, toStation, toSet, occ)
		if err != nil {
			return i, err
		}

		if err := checkNotCorrupted(m, occ, e.ID, result.Path); err != nil {
			return i, err
		}

		commitRoute(settings, m, occ, e, fromStation, toStation, result)
	}
	return len(order), nil
}

func checkNotCorrupted(m *model.Map, occ occupy.Nodes, edgeID model.EdgeID, path []geo.Node) error {
	for _, n := range path {
		occupant, ok := occ.Get(n)
		if !ok {
			continue
		}
		if occupant.Kind == occupy.KindEdge && occupant.Edge == edgeID {
			continue
		}
		if occupant.Kind == occupy.KindStation {
			continue
		}
		return fmt.Errorf("engine: edge %s: node %s: %w", edgeID, n, occupy.ErrCorruptedOccupation)
	}
	return nil
}

func commitRoute(settings Settings, m *model.Map, occ occupy.Nodes, e *model.Edge, from, to *model.Station, result routing.Result) {
	e.Nodes = result.Path
	e.Cost = result.Cost
	e.Settled = true
	for _, n := range result.Path {
		occ.Set(n, occupy.EdgeOccupant(e.ID))
	}
	occ.Set(from.Pos, occupy.StationOccupant(from.ID))
	occ.Set(to.Pos, occupy.StationOccupant(to.ID))
	from.Settled = allIncidentSettled(m, from.ID)
	to.Settled = allIncidentSettled(m, to.ID)
	from.Cost = m.StationCost(from.ID, settings.CostSettings().MoveCost)
	to.Cost = m.StationCost(to.ID, settings.CostSettings().MoveCost)
}

func allIncidentSettled(m *model.Map, stationID model.StationID) bool {
	for _, e := range m.IncidentEdges(stationID) {
		if !e.Settled {
			return false
		}
	}
	return true
}

// attemptEdgeRouting routes every edge in order, making at most attempts
// passes in total; after a failed pass the unrouted suffix is reshuffled
// for the next one. Edges routed by an earlier pass stay committed; only
// the failed edge and whatever follows it are reshuffled and retried.
func attemptEdgeRouting(settings Settings, m *model.Map, order []model.EdgeID, occ occupy.Nodes, attempts int) error {
	remaining := append([]model.EdgeID(nil), order...)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		routed, err := routeEdges(settings, m, remaining, occ)
		if err == nil {
			return nil
		}
		lastErr = err

		unrouted := append([]model.EdgeID(nil), remaining[routed:]...)
		rand.New(rand.NewSource(int64(attempt))).Shuffle(len(unrouted), func(i, j int) {
			unrouted[i], unrouted[j] = unrouted[j], unrouted[i]
		})
		remaining = unrouted
	}

	return fmt.Errorf("engine: %w: %v", ErrRetryExhausted, lastErr)
}
