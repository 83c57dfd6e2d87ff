package engine

import (
	"github.com/CalliEve/metro-map-editor-sub000/contraction"
	"github.com/CalliEve/metro-map-editor-sub000/expansion"
	"github.com/CalliEve/metro-map-editor-sub000/localsearch"
	"github.com/CalliEve/metro-map-editor-sub000/model"
	"github.com/CalliEve/metro-map-editor-sub000/occupy"
	"github.com/CalliEve/metro-map-editor-sub000/ordering"
)

// RecalculateMap runs the full layout pipeline over m: contraction,
// edge ordering, routing (with retries), optional local search, and
// expansion. progress, if non-nil, is called synchronously at each
// stage boundary. The returned occupation snapshot reflects every
// station and settled edge in m once the run completes.
func RecalculateMap(settings Settings, m *model.Map, progress ProgressFunc) (occupy.Nodes, error) {
	if len(m.Stations()) == 0 {
		return occupy.New(), nil
	}
	if settings.Logger == nil {
		settings.Logger = DefaultLogger()
	}
	report := func(stage Stage) {
		if progress != nil {
			progress(Progress{Stage: stage})
		}
	}

	occ := initialOccupation(m)

	contracted := contraction.ContractStations(m, settings.NodeSetRadius)
	settings.Logger.Debugf("contracted %d stations", len(contracted))
	report(StageContracted)

	order := ordering.OrderEdges(m)
	settings.Logger.Debugf("ordered %d edges", len(order))
	report(StageOrdered)

	precomputeApproachNodes(settings, m)

	err := attemptEdgeRouting(settings, m, order, occ, settings.EdgeRoutingAttempts)
	report(StageRouted)
	if err != nil {
		settings.Logger.Errorf("edge routing failed: %v", err)
		return occ, err
	}

	if settings.RunLocalSearch {
		occ = localsearch.Run(settings.CostSettings(), m, occ)
	}

	if err := expansion.ExpandStations(m, contracted); err != nil {
		settings.Logger.Errorf("station expansion failed: %v", err)
		return occ, err
	}
	// Expansion adds stations and edges the routing snapshot never saw.
	occ = initialOccupation(m)
	report(StageComplete)

	return occ, nil
}

// initialOccupation seeds an occupation snapshot from every station's
// position and every already-settled or locked edge's route. A station
// keeps its own node even where an edge's route ends on it.
func initialOccupation(m *model.Map) occupy.Nodes {
	occ := occupy.New()
	for _, e := range m.Edges() {
		if !e.Settled && !e.Locked {
			continue
		}
		for _, n := range e.Nodes {
			occ.Set(n, occupy.EdgeOccupant(e.ID))
		}
	}
	for _, s := range m.Stations() {
		occ.Set(s.Pos, occupy.StationOccupant(s.ID))
	}
	return occ
}
