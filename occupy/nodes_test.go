package occupy_test

import (
	"testing"

	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/CalliEve/metro-map-editor-sub000/model"
	"github.com/CalliEve/metro-map-editor-sub000/occupy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagonalOccupiedNonDiagonalIsFalse(t *testing.T) {
	occ := occupy.New()
	m := model.NewMap()
	assert.False(t, occupy.DiagonalOccupied(m, geo.Node{X: 0, Y: 0}, geo.Node{X: 0, Y: 5}, occ))
	assert.False(t, occupy.DiagonalOccupied(m, geo.Node{X: 0, Y: 0}, geo.Node{X: 5, Y: 0}, occ))
}

func TestDiagonalOccupiedSameEdgeBlocks(t *testing.T) {
	m := model.NewMap()
	a := m.AddStation(geo.Node{X: 0, Y: 0})
	b := m.AddStation(geo.Node{X: 2, Y: 2})
	e, err := m.AddEdge(a.ID, b.ID)
	require.NoError(t, err)

	occ := occupy.New()
	topLeft := geo.Node{X: 0, Y: 1}
	bottomRight := geo.Node{X: 1, Y: 0}
	occ.Set(topLeft, occupy.EdgeOccupant(e.ID))
	occ.Set(bottomRight, occupy.EdgeOccupant(e.ID))

	assert.True(t, occupy.DiagonalOccupied(m, geo.Node{X: 0, Y: 0}, geo.Node{X: 1, Y: 1}, occ))
}

func TestDiagonalOccupiedDifferentEdgesDoNotBlock(t *testing.T) {
	m := model.NewMap()
	a := m.AddStation(geo.Node{X: 0, Y: 0})
	b := m.AddStation(geo.Node{X: 2, Y: 2})
	c := m.AddStation(geo.Node{X: 5, Y: 5})
	d := m.AddStation(geo.Node{X: 6, Y: 6})
	e1, err := m.AddEdge(a.ID, b.ID)
	require.NoError(t, err)
	e2, err := m.AddEdge(c.ID, d.ID)
	require.NoError(t, err)

	occ := occupy.New()
	occ.Set(geo.Node{X: 0, Y: 1}, occupy.EdgeOccupant(e1.ID))
	occ.Set(geo.Node{X: 1, Y: 0}, occupy.EdgeOccupant(e2.ID))

	assert.False(t, occupy.DiagonalOccupied(m, geo.Node{X: 0, Y: 0}, geo.Node{X: 1, Y: 1}, occ))
}

func TestDiagonalOccupiedStationIncidentEdgeBlocks(t *testing.T) {
	m := model.NewMap()
	station := m.AddStation(geo.Node{X: 0, Y: 1})
	other := m.AddStation(geo.Node{X: 5, Y: 5})
	e, err := m.AddEdge(station.ID, other.ID)
	require.NoError(t, err)

	occ := occupy.New()
	occ.Set(geo.Node{X: 0, Y: 1}, occupy.StationOccupant(station.ID))
	occ.Set(geo.Node{X: 1, Y: 0}, occupy.EdgeOccupant(e.ID))

	assert.True(t, occupy.DiagonalOccupied(m, geo.Node{X: 0, Y: 0}, geo.Node{X: 1, Y: 1}, occ))
}
