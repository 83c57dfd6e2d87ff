package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry is returned by operations that are only defined for
// neighboring or collinear nodes when given inputs outside that domain.
var ErrInvalidGeometry = errors.New("geo: invalid geometry")

// diagonalSavings is the distance a diagonal step saves over two
// cardinal steps: 2 - sqrt(2).
const diagonalSavings = 2 - math.Sqrt2

// Node is a point on the integer octilinear grid.
type Node struct {
	X int
	Y int
}

// String implements fmt.Stringer so Node prints legibly in test failures.
func (n Node) String() string {
	return fmt.Sprintf("(%d,%d)", n.X, n.Y)
}

// Add returns n translated by (dx, dy).
func (n Node) Add(dx, dy int) Node {
	return Node{X: n.X + dx, Y: n.Y + dy}
}

// Direction enumerates the eight directions a grid step can take, plus
// Equal for two coincident nodes.
type Direction int

const (
	Up Direction = iota
	DiagUpRight
	Right
	DiagDownRight
	Down
	DiagDownLeft
	Left
	DiagUpLeft
	Equal
)

// Flip returns the opposite direction: Up/Down, Right/Left, and the two
// diagonal pairs swap, while Equal maps to itself.
func (d Direction) Flip() Direction {
	if d == Equal {
		return Equal
	}
	return (d + 4) % 8
}

// neighborOffsets is the fixed enumeration order used throughout the
// engine whenever candidate neighbors are scanned: starting north-west,
// proceeding clockwise.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{1, 0},
	{1, 1}, {0, 1}, {-1, 1},
	{-1, 0},
}

// Neighbors returns the eight grid nodes adjacent to n, in the fixed
// north-west-first clockwise order used by every consumer that needs a
// deterministic scan (local search, route-edge node sets, and so on).
func (n Node) Neighbors() [8]Node {
	var out [8]Node
	for i, off := range neighborOffsets {
		out[i] = n.Add(off[0], off[1])
	}
	return out
}

// IsNeighbor reports whether b is one of a's eight grid neighbors.
func (a Node) IsNeighbor(b Node) bool {
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	if dx == 0 && dy == 0 {
		return false
	}
	return dx <= 1 && dy <= 1
}

// DirectionTo returns the direction of travel from a to b. b need not be
// a neighbor of a: the sign of each axis delta alone determines the
// direction, matching a screen/canvas convention of Y growing downward.
func (a Node) DirectionTo(b Node) Direction {
	dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
	switch {
	case dx == 0 && dy == 0:
		return Equal
	case dx == 0 && dy < 0:
		return Up
	case dx > 0 && dy < 0:
		return DiagUpRight
	case dx > 0 && dy == 0:
		return Right
	case dx > 0 && dy > 0:
		return DiagDownRight
	case dx == 0 && dy > 0:
		return Down
	case dx < 0 && dy > 0:
		return DiagDownLeft
	case dx < 0 && dy == 0:
		return Left
	default: // dx < 0 && dy < 0
		return DiagUpLeft
	}
}

// Angle returns the angle in degrees (0-180, in 45-degree steps) at the
// middle node of the path a -> mid -> b, where 180 is a straight line
// and 0 means the path doubles back on itself.
func Angle(a, mid, b Node) (float64, error) {
	if a == mid || mid == b {
		return 0, fmt.Errorf("geo: angle requires three distinct nodes: %w", ErrInvalidGeometry)
	}
	in := mid.DirectionTo(a)
	out := mid.DirectionTo(b)
	diff := absInt(int(in) - int(out))
	if diff > 4 {
		diff = 8 - diff
	}
	return float64(diff) * 45, nil
}

// ManhattanDistance is |dx| + |dy|.
func ManhattanDistance(a, b Node) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// DiagonalDistance is the octile distance: each diagonal step is counted
// as costing 2-sqrt(2) less than two cardinal steps would.
func DiagonalDistance(a, b Node) float64 {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	minD := dx
	if dy < minD {
		minD = dy
	}
	return float64(dx+dy) - diagonalSavings*float64(minD)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func absInt(v int) int { return abs(v) }

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
