package geo_test

import (
	"testing"

	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighborsOrder(t *testing.T) {
	n := geo.Node{X: 2, Y: 2}
	want := [8]geo.Node{
		{1, 1}, {2, 1}, {3, 1},
		{3, 2},
		{3, 3}, {2, 3}, {1, 3},
		{1, 2},
	}
	assert.Equal(t, want, n.Neighbors())
}

func TestIsNeighbor(t *testing.T) {
	origin := geo.Node{X: 0, Y: 0}
	for _, neigh := range origin.Neighbors() {
		assert.Truef(t, origin.IsNeighbor(neigh), "%v should be a neighbor of origin", neigh)
	}
	assert.False(t, origin.IsNeighbor(origin))
	assert.False(t, origin.IsNeighbor(geo.Node{X: 2, Y: 0}))
}

func TestManhattanDistance(t *testing.T) {
	assert.Equal(t, 7, geo.ManhattanDistance(geo.Node{X: 0, Y: 0}, geo.Node{X: 3, Y: 4}))
}

func TestDiagonalDistance(t *testing.T) {
	got := geo.DiagonalDistance(geo.Node{X: 0, Y: 0}, geo.Node{X: 4, Y: 2})
	assert.InDelta(t, 4.828, got, 1e-3)
}

func TestDirectionTo(t *testing.T) {
	origin := geo.Node{X: 0, Y: 0}
	cases := []struct {
		to   geo.Node
		want geo.Direction
	}{
		{geo.Node{0, -3}, geo.Up},
		{geo.Node{3, -3}, geo.DiagUpRight},
		{geo.Node{3, 0}, geo.Right},
		{geo.Node{3, 3}, geo.DiagDownRight},
		{geo.Node{0, 3}, geo.Down},
		{geo.Node{-3, 3}, geo.DiagDownLeft},
		{geo.Node{-3, 0}, geo.Left},
		{geo.Node{-3, -3}, geo.DiagUpLeft},
		{geo.Node{0, 0}, geo.Equal},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, origin.DirectionTo(c.to), "direction to %v", c.to)
	}
}

func TestDirectionFlipRoundTripsWithDirectionTo(t *testing.T) {
	origin := geo.Node{X: 5, Y: 5}
	for _, neigh := range origin.Neighbors() {
		there := origin.DirectionTo(neigh)
		back := neigh.DirectionTo(origin)
		assert.Equalf(t, back, there.Flip(), "flip of direction to %v should equal direction back from it", neigh)
	}
	assert.Equal(t, geo.Equal, geo.Equal.Flip())
}

func TestAngle(t *testing.T) {
	a := geo.Node{X: -1, Y: 0}
	mid := geo.Node{X: 0, Y: 0}

	straight, err := geo.Angle(a, mid, geo.Node{X: 1, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 180.0, straight)

	rightAngle, err := geo.Angle(a, mid, geo.Node{X: 0, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, 90.0, rightAngle)

	doubleBack, err := geo.Angle(a, mid, geo.Node{X: -1, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, doubleBack)

	_, err = geo.Angle(a, mid, mid)
	assert.ErrorIs(t, err, geo.ErrInvalidGeometry)
}
