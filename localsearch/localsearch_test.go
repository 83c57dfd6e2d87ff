package localsearch_test

import (
	"testing"

	"github.com/CalliEve/metro-map-editor-sub000/cost"
	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/CalliEve/metro-map-editor-sub000/localsearch"
	"github.com/CalliEve/metro-map-editor-sub000/model"
	"github.com/CalliEve/metro-map-editor-sub000/occupy"
	"github.com/CalliEve/metro-map-editor-sub000/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settleEdge(t *testing.T, settings cost.Settings, m *model.Map, occ occupy.Nodes, e *model.Edge) {
	t.Helper()
	from, ok := m.Station(e.From)
	require.True(t, ok)
	to, ok := m.Station(e.To)
	require.True(t, ok)
	result, err := routing.EdgeDijkstra(
		settings, m, e,
		from, []routing.Candidate{{Node: from.Pos}},
		to, []routing.Candidate{{Node: to.Pos}},
		occ,
	)
	require.NoError(t, err)
	e.Nodes = result.Path
	e.Cost = result.Cost
	e.Settled = true
	for _, n := range result.Path {
		occ.Set(n, occupy.EdgeOccupant(e.ID))
	}
	from.Cost = m.StationCost(from.ID, settings.MoveCost)
	to.Cost = m.StationCost(to.ID, settings.MoveCost)
}

func TestRunSkipsStationsWithFewerThanThreeEdges(t *testing.T) {
	settings := cost.New(cost.WithGridBounds(30, 30))
	m := model.NewMap()
	a := m.AddStation(geo.Node{X: 0, Y: 0})
	b := m.AddStation(geo.Node{X: 5, Y: 0})
	edge, err := m.AddEdge(a.ID, b.ID)
	require.NoError(t, err)

	occ := occupy.New()
	occ.Set(a.Pos, occupy.StationOccupant(a.ID))
	occ.Set(b.Pos, occupy.StationOccupant(b.ID))
	settleEdge(t, settings, m, occ, edge)

	before := a.Pos
	localsearch.Run(settings, m, occ)
	assert.Equal(t, before, a.Pos)
}

func TestRunNeverWorsensIncidentCost(t *testing.T) {
	settings := cost.New(cost.WithGridBounds(30, 30))
	m := model.NewMap()
	center := m.AddStation(geo.Node{X: 10, Y: 10})
	n1 := m.AddStation(geo.Node{X: 10, Y: 0})
	n2 := m.AddStation(geo.Node{X: 20, Y: 10})
	n3 := m.AddStation(geo.Node{X: 10, Y: 20})

	occ := occupy.New()
	for _, s := range []*model.Station{center, n1, n2, n3} {
		occ.Set(s.Pos, occupy.StationOccupant(s.ID))
	}

	e1, err := m.AddEdge(center.ID, n1.ID)
	require.NoError(t, err)
	e2, err := m.AddEdge(center.ID, n2.ID)
	require.NoError(t, err)
	e3, err := m.AddEdge(center.ID, n3.ID)
	require.NoError(t, err)

	settleEdge(t, settings, m, occ, e1)
	settleEdge(t, settings, m, occ, e2)
	settleEdge(t, settings, m, occ, e3)

	before, ok := costOf(t, settings, m, occ, center.ID)
	require.True(t, ok)

	occ = localsearch.Run(settings, m, occ)

	after, ok := costOf(t, settings, m, occ, center.ID)
	require.True(t, ok)
	assert.LessOrEqual(t, after, before)
}

func costOf(t *testing.T, settings cost.Settings, m *model.Map, occ occupy.Nodes, station model.StationID) (float64, bool) {
	t.Helper()
	s, ok := m.Station(station)
	require.True(t, ok)
	var total float64
	for _, e := range m.IncidentEdges(station) {
		other, ok := m.Station(e.OtherEnd(station))
		require.True(t, ok)
		result, err := routing.EdgeDijkstra(
			settings, m, e,
			s, []routing.Candidate{{Node: s.Pos}},
			other, []routing.Candidate{{Node: other.Pos}},
			occ,
		)
		if err != nil {
			return 0, false
		}
		total += result.Cost
	}
	return total, true
}
