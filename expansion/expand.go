package expansion

import (
	"errors"
	"fmt"

	"github.com/CalliEve/metro-map-editor-sub000/contraction"
	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/CalliEve/metro-map-editor-sub000/model"
)

// ErrOverflow is returned when a contracted edge's settled route has
// fewer grid nodes than it has absorbed stations to place along it —
// there is nowhere left to put them.
var ErrOverflow = errors.New("expansion: more contracted stations than route nodes")

// ExpandStations reinserts every station contraction.ContractStations
// absorbed, splitting each contracted edge's settled route back into
// one edge per segment between consecutive stations: k absorbed
// stations give k+1 edges.
func ExpandStations(m *model.Map, contracted map[model.StationID]contraction.Contracted) error {
	for _, e := range m.Edges() {
		if len(e.ContractedStations) == 0 {
			continue
		}
		if err := expandEdge(m, e, contracted); err != nil {
			return err
		}
	}
	return nil
}

func expandEdge(m *model.Map, e *model.Edge, contracted map[model.StationID]contraction.Contracted) error {
	toExpand := e.ContractedStations
	nodes := e.Nodes
	if len(toExpand) > len(nodes) {
		return fmt.Errorf("expansion: edge %s has %d route nodes for %d contracted stations: %w",
			e.ID, len(nodes), len(toExpand), ErrOverflow)
	}

	step := float64(len(nodes)) / float64(len(toExpand)+1)

	newStations := make([]model.StationID, len(toExpand))
	nodeIndex := make([]int, len(toExpand))
	for i, stationID := range toExpand {
		idx := int(float64(i+1) * step)
		if idx >= len(nodes) {
			idx = len(nodes) - 1
		}
		nodeIndex[i] = idx

		pos := nodes[idx]
		orig, hadOriginal := contracted[stationID]

		var st *model.Station
		if hadOriginal {
			st = m.AddStation(pos, model.WithStationName(orig.Station.Name))
			st.Locked = orig.Station.Locked
		} else {
			st = m.AddStation(pos)
		}
		newStations[i] = st.ID
	}

	chain := make([]model.StationID, 0, len(newStations)+2)
	chain = append(chain, e.From)
	chain = append(chain, newStations...)
	chain = append(chain, e.To)

	boundaries := make([]int, 0, len(nodeIndex)+2)
	boundaries = append(boundaries, 0)
	boundaries = append(boundaries, nodeIndex...)
	boundaries = append(boundaries, len(nodes)-1)

	newEdges := make([]model.EdgeID, 0, len(chain)-1)
	for i := 0; i < len(chain)-1; i++ {
		segment := append([]geo.Node(nil), nodes[boundaries[i]:boundaries[i+1]+1]...)
		ne, err := m.AddEdge(chain[i], chain[i+1], model.WithEdgeLines(e.Lines...))
		if err != nil {
			return fmt.Errorf("expansion: splitting edge %s: %w", e.ID, err)
		}
		ne.Nodes = segment
		ne.Settled = true
		newEdges = append(newEdges, ne.ID)
	}

	relinkLines(m, e.ID, newEdges)
	m.RemoveEdge(e.ID)
	return nil
}

// relinkLines replaces, in every line that ran along the contracted
// edge, that single edge reference with the full sequence of edges it
// was split into.
func relinkLines(m *model.Map, contracted model.EdgeID, expanded []model.EdgeID) {
	for _, line := range m.Lines() {
		var rebuilt []model.EdgeID
		for _, id := range line.Edges {
			if id == contracted {
				rebuilt = append(rebuilt, expanded...)
				continue
			}
			rebuilt = append(rebuilt, id)
		}
		line.Edges = rebuilt
	}
}
