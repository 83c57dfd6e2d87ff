package localsearch

import (
	"sort"

	"github.com/CalliEve/metro-map-editor-sub000/cost"
	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/CalliEve/metro-map-editor-sub000/model"
	"github.com/CalliEve/metro-map-editor-sub000/occupy"
	"github.com/CalliEve/metro-map-editor-sub000/routing"
)

// Run scans every unlocked station with three or more incident edges
// and relocates it to the first neighboring grid position whose
// rerouted incident edges cost strictly less in total than the
// station's current position, committing the move immediately
// (first-improvement, not best-improvement).
func Run(settings cost.Settings, m *model.Map, occ occupy.Nodes) occupy.Nodes {
	for _, s := range m.Stations() {
		if !eligible(m, s) {
			continue
		}

		currentCost, ok := incidentCost(settings, m, occ, s.ID)
		if !ok {
			continue
		}

		for _, candidate := range neighborhood(m, s) {
			if candidate == s.Pos {
				continue
			}

			trialMap := m.Clone()
			trialOcc := occ.Clone()
			newCost, ok := tryStationPos(settings, trialMap, trialOcc, s.ID, candidate, currentCost)
			if !ok || newCost >= currentCost {
				continue
			}

			applyTrial(settings, m, occ, trialMap, s.ID)
			break
		}
	}
	return occ
}

func eligible(m *model.Map, s *model.Station) bool {
	if s.Locked {
		return false
	}
	incident := m.IncidentEdges(s.ID)
	if len(incident) < 3 {
		return false
	}
	for _, e := range incident {
		if e.Locked {
			return false
		}
	}
	return true
}

// incidentCost reads station's cached total cost: its displacement from
// its original position plus the committed routing cost of every
// incident edge, maintained by route_edges' commitRoute and by
// applyTrial below rather than recomputed here via Edge Dijkstra.
func incidentCost(settings cost.Settings, m *model.Map, _ occupy.Nodes, stationID model.StationID) (float64, bool) {
	if _, ok := m.Station(stationID); !ok {
		return 0, false
	}
	return m.StationCost(stationID, settings.MoveCost), true
}

// tryStationPos relocates station to candidate within a throwaway
// clone and reroutes every incident edge, aborting early once the
// running cost can no longer beat currentCost.
func tryStationPos(
	settings cost.Settings,
	trialMap *model.Map,
	trialOcc occupy.Nodes,
	stationID model.StationID,
	candidate geo.Node,
	currentCost float64,
) (float64, bool) {
	station, ok := trialMap.Station(stationID)
	if !ok {
		return 0, false
	}

	if occupant, occupied := trialOcc.Get(candidate); occupied &&
		!(occupant.Kind == occupy.KindStation && occupant.Station == stationID) {
		return 0, false
	}

	trialOcc.Remove(station.Pos)
	station.Pos = candidate
	trialOcc.Set(candidate, occupy.StationOccupant(stationID))

	running := float64(geo.ManhattanDistance(candidate, station.OriginalPos)) * settings.MoveCost
	if settings.EarlyLocalSearchAbort && running >= currentCost {
		return 0, false
	}
	for _, e := range trialMap.IncidentEdges(stationID) {
		for _, n := range e.Nodes {
			trialOcc.Remove(n)
		}
		e.Settled = false

		other, ok := trialMap.Station(e.OtherEnd(stationID))
		if !ok {
			return 0, false
		}

		result, err := routing.EdgeDijkstra(
			settings, trialMap, e,
			station, []routing.Candidate{{Node: station.Pos}},
			other, []routing.Candidate{{Node: other.Pos}},
			trialOcc,
		)
		if err != nil {
			return 0, false
		}

		e.Nodes = result.Path
		e.Cost = result.Cost
		e.Settled = true
		for _, n := range result.Path {
			trialOcc.Set(n, occupy.EdgeOccupant(e.ID))
		}

		running += result.Cost
		if settings.EarlyLocalSearchAbort && running >= currentCost {
			return 0, false
		}
	}
	station.Cost = running
	return running, true
}

// applyTrial copies a winning trial's station position and rerouted
// incident edges back into the real map and occupation snapshot, then
// refreshes the cached Cost of stationID and every neighbor whose
// incident edge just changed.
func applyTrial(settings cost.Settings, m *model.Map, occ occupy.Nodes, trialMap *model.Map, stationID model.StationID) {
	station, ok := m.Station(stationID)
	if !ok {
		return
	}
	trialStation, ok := trialMap.Station(stationID)
	if !ok {
		return
	}

	occ.Remove(station.Pos)
	station.Pos = trialStation.Pos
	occ.Set(station.Pos, occupy.StationOccupant(stationID))

	var neighbors []model.StationID
	for _, e := range m.IncidentEdges(stationID) {
		for _, n := range e.Nodes {
			occ.Remove(n)
		}
		trialEdge, ok := trialMap.Edge(e.ID)
		if !ok {
			continue
		}
		e.Nodes = trialEdge.Nodes
		e.Cost = trialEdge.Cost
		e.Settled = trialEdge.Settled
		for _, n := range e.Nodes {
			occ.Set(n, occupy.EdgeOccupant(e.ID))
		}
		neighbors = append(neighbors, e.OtherEnd(stationID))
	}

	station.Cost = m.StationCost(stationID, settings.MoveCost)
	for _, neighborID := range neighbors {
		if neighbor, ok := m.Station(neighborID); ok {
			neighbor.Cost = m.StationCost(neighborID, settings.MoveCost)
		}
	}
}

// neighborhood returns the candidate positions to try for station s, in
// ascending order of total Manhattan distance to its neighboring
// stations: the most promising relocations are tried first so
// first-improvement acceptance tends to also be a good improvement.
// The station's pre-run original position is tried first of all if it
// has since moved away from it and that original position isn't
// already adjacent to the current one.
func neighborhood(m *model.Map, s *model.Station) []geo.Node {
	neighborPositions := make([]geo.Node, 0)
	for _, id := range m.NeighborStations(s.ID) {
		if other, ok := m.Station(id); ok {
			neighborPositions = append(neighborPositions, other.Pos)
		}
	}

	adjacent := s.Pos.Neighbors()
	candidates := append([]geo.Node{}, adjacent[:]...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return totalDistance(candidates[i], neighborPositions) < totalDistance(candidates[j], neighborPositions)
	})

	if s.OriginalPos != s.Pos && !s.Pos.IsNeighbor(s.OriginalPos) {
		candidates = append([]geo.Node{s.OriginalPos}, candidates...)
	}
	return candidates
}

func totalDistance(pos geo.Node, others []geo.Node) int {
	total := 0
	for _, o := range others {
		total += geo.ManhattanDistance(pos, o)
	}
	return total
}
