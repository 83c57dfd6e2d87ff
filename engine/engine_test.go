package engine_test

import (
	"testing"

	"github.com/CalliEve/metro-map-editor-sub000/engine"
	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/CalliEve/metro-map-editor-sub000/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateMapEmptyMapIsNoop(t *testing.T) {
	settings := engine.NewSettings()
	m := model.NewMap()
	occ, err := engine.RecalculateMap(settings, m, nil)
	require.NoError(t, err)
	assert.Empty(t, occ)
}

func TestRecalculateMapRoutesAndCallsProgressInOrder(t *testing.T) {
	settings := engine.NewSettings(
		engine.WithGridBounds(40, 40),
		engine.WithNodeSetRadius(3),
		engine.WithEdgeRoutingAttempts(3),
	)
	m := model.NewMap()
	a := m.AddStation(geo.Node{X: 0, Y: 0}, model.WithStationName("A"))
	b := m.AddStation(geo.Node{X: 10, Y: 0}, model.WithStationName("B"))
	c := m.AddStation(geo.Node{X: 20, Y: 5}, model.WithStationName("C"))

	line := m.AddLine("red", "#f00")
	e1, err := m.AddEdge(a.ID, b.ID, model.WithEdgeLines(line.ID))
	require.NoError(t, err)
	e2, err := m.AddEdge(b.ID, c.ID, model.WithEdgeLines(line.ID))
	require.NoError(t, err)
	line.Edges = []model.EdgeID{e1.ID, e2.ID}

	var stages []engine.Stage
	occ, err := engine.RecalculateMap(settings, m, func(p engine.Progress) {
		stages = append(stages, p.Stage)
	})
	require.NoError(t, err)

	assert.Equal(t, []engine.Stage{
		engine.StageContracted,
		engine.StageOrdered,
		engine.StageRouted,
		engine.StageComplete,
	}, stages)

	for _, e := range m.Edges() {
		assert.True(t, e.Settled, "edge %s should be settled", e.ID)
		require.NotEmpty(t, e.Nodes)
	}

	// No two distinct edges should claim the same grid node. Nodes
	// includes both endpoint stations, which adjacent edges share, so only
	// the intermediate route nodes are compared.
	claimants := map[geo.Node]model.EdgeID{}
	for _, e := range m.Edges() {
		for i, n := range e.Nodes {
			if i == 0 || i == len(e.Nodes)-1 {
				continue
			}
			if existing, ok := claimants[n]; ok {
				assert.Equal(t, existing, e.ID, "node %s claimed by two edges", n)
			}
			claimants[n] = e.ID
		}
	}
	assert.NotEmpty(t, occ)
}

func TestRecalculateMapContractsAndReexpandsChain(t *testing.T) {
	settings := engine.NewSettings(
		engine.WithGridBounds(60, 60),
		engine.WithNodeSetRadius(2),
		engine.WithLocalSearch(false),
	)
	m := model.NewMap()
	start := m.AddStation(geo.Node{X: 0, Y: 0})
	mid1 := m.AddStation(geo.Node{X: 10, Y: 0})
	mid2 := m.AddStation(geo.Node{X: 20, Y: 0})
	end := m.AddStation(geo.Node{X: 30, Y: 0})

	line := m.AddLine("red", "#f00")
	e1, err := m.AddEdge(start.ID, mid1.ID, model.WithEdgeLines(line.ID))
	require.NoError(t, err)
	e2, err := m.AddEdge(mid1.ID, mid2.ID, model.WithEdgeLines(line.ID))
	require.NoError(t, err)
	e3, err := m.AddEdge(mid2.ID, end.ID, model.WithEdgeLines(line.ID))
	require.NoError(t, err)
	line.Edges = []model.EdgeID{e1.ID, e2.ID, e3.ID}

	_, err = engine.RecalculateMap(settings, m, nil)
	require.NoError(t, err)

	// every original station should still exist post-expansion
	assert.Len(t, m.Stations(), 4)
	assert.Len(t, m.Edges(), 3)
}
