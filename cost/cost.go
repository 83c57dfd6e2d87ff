package cost

import (
	"fmt"
	"math"
	"sort"

	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/CalliEve/metro-map-editor-sub000/model"
	"github.com/CalliEve/metro-map-editor-sub000/occupy"
)

// possibleAngle maps the 45-degree-step angular gap between a proposed
// station approach direction and an already-used one to the maximum
// number of not-yet-settled incident edges that may still be squeezed
// into that gap. A gap of 0 (the two directions coincide) is never
// feasible.
var possibleAngle = map[int]int{
	45:  0,
	90:  1,
	135: 2,
	180: 3,
	225: 4,
	270: 5,
	315: 6,
}

// AngleCost scores how sharp a bend is. 180 degrees (a straight line)
// is free; every 45 degrees of added bend costs progressively more, and
// a full reversal (0 degrees) is infeasible.
func AngleCost(angleDegrees float64) (float64, error) {
	switch angleDegrees {
	case 180:
		return 0.0, nil
	case 135:
		return 1.0, nil
	case 90:
		return 1.5, nil
	case 45:
		return 2.0, nil
	case 0:
		return math.Inf(1), nil
	default:
		return 0, fmt.Errorf("cost: angle %v is not a multiple of 45 degrees", angleDegrees)
	}
}

// IncidentDirection describes one of a station's other incident edges for
// approach-feasibility purposes: the direction it leaves the station in,
// and whether it has already settled on that direction for good.
type IncidentDirection struct {
	Dir     geo.Direction
	Settled bool
}

// ApproachAvailable reports whether a route may approach a station from
// approach given its other incident edges. It sweeps the incident edges
// twice, once clockwise from approach and once counter-clockwise,
// stopping each sweep at the nearest settled edge on that side: every
// unsettled edge encountered before it must still fit in the angular gap
// left over, per possibleAngle. An edge exactly on top of approach (gap
// of 0) is never a valid direction to stop a sweep at.
func ApproachAvailable(existing []IncidentDirection, approach geo.Direction) bool {
	return sweepAvailable(existing, approach, true) && sweepAvailable(existing, approach, false)
}

func sweepAvailable(existing []IncidentDirection, approach geo.Direction, clockwise bool) bool {
	type ranked struct {
		gap int
		dir IncidentDirection
	}
	ranks := make([]ranked, len(existing))
	for i, d := range existing {
		ranks[i] = ranked{gap: rotationalGap(approach, d.Dir, clockwise), dir: d}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].gap < ranks[j].gap })

	unsettledBefore := 0
	for _, r := range ranks {
		if !r.dir.Settled {
			unsettledBefore++
			continue
		}
		maxIntervening, ok := possibleAngle[r.gap]
		if !ok || unsettledBefore > maxIntervening {
			return false
		}
		break
	}
	return true
}

// rotationalGap returns the angle, in 45-degree steps, travelled rotating
// from approach to dir in the given direction (clockwise or
// counter-clockwise) around the compass.
func rotationalGap(approach, dir geo.Direction, clockwise bool) int {
	var steps int
	if clockwise {
		steps = (int(dir) - int(approach) + 8) % 8
	} else {
		steps = (int(approach) - int(dir) + 8) % 8
	}
	return steps * 45
}

// StationExitCost scores the cost of starting a route at station by
// heading toward exitDirection, using the direction of the station's
// most established existing line as the reference a straight exit
// should align with. A station with no settled incident edges yet has
// no preferred direction, so any exit is free.
func StationExitCost(m *model.Map, station *model.Station, exitNode geo.Node) (float64, error) {
	reference, ok := referenceApproachNode(m, station)
	if !ok {
		return 0, nil
	}
	angle, err := geo.Angle(reference, station.Pos, exitNode)
	if err != nil {
		return 0, err
	}
	return AngleCost(angle)
}

// referenceApproachNode finds the node a station's best-established
// settled incident edge approaches it from: the neighboring station's
// position if the two stations are grid-adjacent, otherwise the first
// routed node of that edge. Among equally established edges the one with
// the lowest ID is used.
func referenceApproachNode(m *model.Map, station *model.Station) (geo.Node, bool) {
	var (
		best        *model.Edge
		bestOverlap int
	)
	for _, e := range m.IncidentEdges(station.ID) {
		if !e.Settled || len(e.Nodes) == 0 {
			continue
		}
		overlap := len(e.Lines)
		if best == nil || overlap > bestOverlap || (overlap == bestOverlap && e.ID < best.ID) {
			best, bestOverlap = e, overlap
		}
	}
	if best == nil {
		return geo.Node{}, false
	}

	otherID := best.OtherEnd(station.ID)
	if other, ok := m.Station(otherID); ok && station.Pos.IsNeighbor(other.Pos) {
		return other.Pos, true
	}

	if best.From == station.ID {
		return best.Nodes[min(1, len(best.Nodes)-1)], true
	}
	return best.Nodes[max(0, len(best.Nodes)-2)], true
}

// NodeContext carries the routing state needed to score one candidate
// step.
type NodeContext struct {
	// Path is the route so far, including the starting node, not
	// including the candidate being scored.
	Path []geo.Node
	// FromStation is the station the route departs from.
	FromStation *model.Station
	// ToStationPos is the position routing is heading toward, used for
	// the distance heuristic and to recognise the target station's own
	// node, the only station node a route may enter.
	ToStationPos geo.Node
	// RoutingEdge is the edge currently being routed; its own claimed
	// nodes never block it.
	RoutingEdge model.EdgeID
}

// Evaluate scores a single candidate next node. A result of +Inf means
// the candidate is infeasible (out of bounds, occupied by something
// else, or an unavailable station approach) rather than merely
// expensive.
func Evaluate(settings Settings, m *model.Map, occ occupy.Nodes, ctx NodeContext, candidate geo.Node) (float64, error) {
	if !settings.InBounds(candidate.X, candidate.Y) {
		return math.Inf(1), nil
	}

	if blocked, err := isBlocked(m, occ, ctx, candidate); err != nil {
		return 0, err
	} else if blocked {
		return math.Inf(1), nil
	}

	var stepCost float64
	if len(ctx.Path) > 0 {
		stepCost = geo.DiagonalDistance(ctx.Path[len(ctx.Path)-1], candidate) * settings.MoveCost
	}

	bendCost, err := bendOrExitCost(settings, m, ctx, candidate)
	if err != nil {
		return 0, err
	}

	heuristic := geo.DiagonalDistance(candidate, ctx.ToStationPos)

	return stepCost + bendCost + heuristic, nil
}

func isBlocked(m *model.Map, occ occupy.Nodes, ctx NodeContext, candidate geo.Node) (bool, error) {
	occupant, ok := occ.Get(candidate)
	if !ok {
		return false, nil
	}
	if occupant.Kind == occupy.KindEdge && occupant.Edge == ctx.RoutingEdge {
		return false, nil
	}

	if occupant.Kind == occupy.KindStation && candidate == ctx.ToStationPos {
		station, found := m.Station(occupant.Station)
		if !found {
			return true, nil
		}
		approach := station.Pos.DirectionTo(previousNode(ctx, candidate))
		existing := incidentApproachDirections(m, station, ctx.RoutingEdge)
		return !ApproachAvailable(existing, approach), nil
	}

	return true, nil
}

func previousNode(ctx NodeContext, candidate geo.Node) geo.Node {
	if len(ctx.Path) == 0 {
		return candidate
	}
	return ctx.Path[len(ctx.Path)-1]
}

// incidentApproachDirections collects the direction every other incident
// edge of station leaves it in, along with whether that edge has
// settled, for use by ApproachAvailable. An edge contributes a direction
// either from its neighboring station's position (if the two stations
// are grid-adjacent) or from its closest routed node; an edge with
// neither is skipped, since it has no direction yet to reason about.
func incidentApproachDirections(m *model.Map, station *model.Station, exclude model.EdgeID) []IncidentDirection {
	var out []IncidentDirection
	for _, e := range m.IncidentEdges(station.ID) {
		if e.ID == exclude {
			continue
		}
		other, ok := m.Station(e.OtherEnd(station.ID))
		if ok && station.Pos.IsNeighbor(other.Pos) {
			out = append(out, IncidentDirection{
				Dir:     station.Pos.DirectionTo(other.Pos),
				Settled: e.Settled,
			})
			continue
		}
		if best := closestRoutedNode(e, station.ID); best != (geo.Node{}) {
			out = append(out, IncidentDirection{
				Dir:     station.Pos.DirectionTo(best),
				Settled: e.Settled,
			})
		}
	}
	return out
}

func closestRoutedNode(e *model.Edge, from model.StationID) geo.Node {
	if len(e.Nodes) == 0 {
		return geo.Node{}
	}
	if e.From == from {
		return e.Nodes[min(1, len(e.Nodes)-1)]
	}
	return e.Nodes[max(0, len(e.Nodes)-2)]
}

func bendOrExitCost(settings Settings, m *model.Map, ctx NodeContext, candidate geo.Node) (float64, error) {
	if len(ctx.Path) < 2 {
		if ctx.FromStation == nil {
			return 0, nil
		}
		return StationExitCost(m, ctx.FromStation, candidate)
	}
	angle, err := geo.Angle(ctx.Path[len(ctx.Path)-2], ctx.Path[len(ctx.Path)-1], candidate)
	if err != nil {
		return 0, err
	}
	return AngleCost(angle)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
