package model_test

import (
	"testing"

	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/CalliEve/metro-map-editor-sub000/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEdgeRejectsSelfLoopAndDuplicate(t *testing.T) {
	m := model.NewMap()
	a := m.AddStation(geo.Node{X: 0, Y: 0})
	b := m.AddStation(geo.Node{X: 1, Y: 0})

	_, err := m.AddEdge(a.ID, a.ID)
	assert.ErrorIs(t, err, model.ErrSelfLoop)

	_, err = m.AddEdge(a.ID, b.ID)
	require.NoError(t, err)

	_, err = m.AddEdge(b.ID, a.ID)
	assert.ErrorIs(t, err, model.ErrDuplicateEdge)
}

func TestEdgeBetweenOrCreateIsIdempotent(t *testing.T) {
	m := model.NewMap()
	a := m.AddStation(geo.Node{X: 0, Y: 0})
	b := m.AddStation(geo.Node{X: 1, Y: 0})

	e1 := m.EdgeBetweenOrCreate(a.ID, b.ID)
	e2 := m.EdgeBetweenOrCreate(b.ID, a.ID)
	assert.Equal(t, e1.ID, e2.ID)
}

func TestNeighborStations(t *testing.T) {
	m := model.NewMap()
	a := m.AddStation(geo.Node{X: 0, Y: 0})
	b := m.AddStation(geo.Node{X: 1, Y: 0})
	c := m.AddStation(geo.Node{X: 2, Y: 0})
	_, err := m.AddEdge(a.ID, b.ID)
	require.NoError(t, err)
	_, err = m.AddEdge(b.ID, c.ID)
	require.NoError(t, err)

	neighbors := m.NeighborStations(b.ID)
	assert.ElementsMatch(t, []model.StationID{a.ID, c.ID}, neighbors)
}

func TestCloneIsIndependent(t *testing.T) {
	m := model.NewMap()
	a := m.AddStation(geo.Node{X: 0, Y: 0})
	b := m.AddStation(geo.Node{X: 1, Y: 0})
	e, err := m.AddEdge(a.ID, b.ID)
	require.NoError(t, err)

	clone := m.Clone()
	cloneStation, ok := clone.Station(a.ID)
	require.True(t, ok)
	cloneStation.Pos = geo.Node{X: 99, Y: 99}

	original, ok := m.Station(a.ID)
	require.True(t, ok)
	assert.Equal(t, geo.Node{X: 0, Y: 0}, original.Pos)

	cloneEdge, ok := clone.Edge(e.ID)
	require.True(t, ok)
	cloneEdge.Nodes = append(cloneEdge.Nodes, geo.Node{X: 5, Y: 5})

	originalEdge, ok := m.Edge(e.ID)
	require.True(t, ok)
	assert.Empty(t, originalEdge.Nodes)

	newStation := clone.AddStation(geo.Node{X: 7, Y: 7})
	assert.NotContains(t, []model.StationID{a.ID, b.ID}, newStation.ID)
}

func TestStationCostSumsDisplacementAndIncidentEdges(t *testing.T) {
	m := model.NewMap()
	a := m.AddStation(geo.Node{X: 0, Y: 0})
	b := m.AddStation(geo.Node{X: 5, Y: 0})
	c := m.AddStation(geo.Node{X: 0, Y: 5})

	e1, err := m.AddEdge(a.ID, b.ID)
	require.NoError(t, err)
	e1.Cost = 4
	e2, err := m.AddEdge(a.ID, c.ID)
	require.NoError(t, err)
	e2.Cost = 6

	assert.Equal(t, 10.0, m.StationCost(a.ID, 2))

	a.Pos = geo.Node{X: 1, Y: 1}
	assert.Equal(t, 14.0, m.StationCost(a.ID, 2))
}
