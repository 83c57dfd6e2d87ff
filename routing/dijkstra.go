package routing

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/CalliEve/metro-map-editor-sub000/cost"
	"github.com/CalliEve/metro-map-editor-sub000/geo"
	"github.com/CalliEve/metro-map-editor-sub000/model"
	"github.com/CalliEve/metro-map-editor-sub000/occupy"
)

// Candidate is a node the router may start or end at, with a bias cost
// already attached (typically distance from the station's original
// position times its move cost, per route_edges' node-set construction).
type Candidate struct {
	Node geo.Node
	Bias float64
}

// Result is a settled route for one edge.
type Result struct {
	Start geo.Node
	End   geo.Node
	// Path includes both Start and End.
	Path []geo.Node
	Cost float64
}

// EdgeDijkstra finds the cheapest route from any node in from to any
// node in to, using cost.Evaluate for per-step cost and occ to reject
// nodes already claimed by something else. Every candidate's Bias is
// added to its cost: the from side at seeding, the to side the moment a
// target candidate is reached, so both ends weigh in on which route
// wins symmetrically. Ties are broken by whichever candidate the
// priority queue happens to pop first; the queue orders by cost alone,
// so among equal-cost entries the pop order follows the heap's internal
// layout, not insertion order, and which of several optimal routes is
// returned is not defined.
//
// Because Dijkstra pops nodes in non-decreasing cost order and all
// step costs are non-negative, the first member of to that is popped is
// guaranteed globally optimal; the search stops there rather than
// continuing once every node in to has been visited.
func EdgeDijkstra(
	settings cost.Settings,
	m *model.Map,
	edge *model.Edge,
	fromStation *model.Station,
	from []Candidate,
	toStation *model.Station,
	to []Candidate,
	occ occupy.Nodes,
) (Result, error) {
	toSet := make(map[geo.Node]float64, len(to))
	for _, c := range to {
		toSet[c.Node] = c.Bias
	}

	r := &runner{
		settings:    settings,
		m:           m,
		edge:        edge,
		fromStation: fromStation,
		toStation:   toStation,
		to:          toSet,
		occ:         occ,
		dist:        make(map[geo.Node]float64),
		prev:        make(map[geo.Node]geo.Node),
		depth:       make(map[geo.Node]int),
		visited:     make(map[geo.Node]bool),
	}

	heap.Init(&r.pq)
	for _, c := range from {
		r.dist[c.Node] = c.Bias
		r.prev[c.Node] = c.Node
		r.depth[c.Node] = 1
		heap.Push(&r.pq, &nodeItem{node: c.Node, cost: c.Bias})
	}

	target, found := r.run()
	if !found {
		return Result{}, fmt.Errorf("routing: edge %s: %w", edge.ID, ErrNoPath)
	}

	path := r.reconstruct(target)
	result := Result{
		Start: path[0],
		End:   path[len(path)-1],
		Path:  path,
		Cost:  r.dist[target],
	}
	if result.Start == result.End {
		return Result{}, fmt.Errorf("routing: edge %s: %w", edge.ID, ErrEmptyPath)
	}
	return result, nil
}

// runner holds one Edge Dijkstra invocation's mutable search state,
// mirroring the teacher dijkstra package's run-scoped runner struct.
type runner struct {
	settings    cost.Settings
	m           *model.Map
	edge        *model.Edge
	fromStation *model.Station
	toStation   *model.Station
	to          map[geo.Node]float64
	occ         occupy.Nodes

	dist    map[geo.Node]float64
	prev    map[geo.Node]geo.Node
	depth   map[geo.Node]int
	visited map[geo.Node]bool
	pq      nodePQ
}

func (r *runner) run() (geo.Node, bool) {
	for r.pq.Len() > 0 {
		cur := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[cur.node] {
			continue
		}
		r.visited[cur.node] = true

		if _, isTarget := r.to[cur.node]; isTarget {
			return cur.node, true
		}

		r.relax(cur.node)
	}
	return geo.Node{}, false
}

func (r *runner) relax(cur geo.Node) {
	ctx := cost.NodeContext{
		Path:         r.pathTail(cur),
		FromStation:  r.fromStation,
		ToStationPos: r.toStation.Pos,
		RoutingEdge:  r.edge.ID,
	}

	for _, next := range cur.Neighbors() {
		if r.visited[next] {
			continue
		}
		stepCost, err := cost.Evaluate(r.settings, r.m, r.occ, ctx, next)
		if err != nil || math.IsInf(stepCost, 1) {
			continue
		}

		tentative := r.dist[cur] + stepCost
		if bias, isTarget := r.to[next]; isTarget {
			tentative += bias
		}
		if existing, seen := r.dist[next]; seen && tentative >= existing {
			continue
		}

		r.dist[next] = tentative
		r.prev[next] = cur
		r.depth[next] = r.depth[cur] + 1
		heap.Push(&r.pq, &nodeItem{node: next, cost: tentative})
	}
}

// pathTail returns the minimal path slice cost.Evaluate needs to score
// a step out of cur: the whole path if cur is a seed (depth 1), or just
// cur's last two nodes otherwise.
func (r *runner) pathTail(cur geo.Node) []geo.Node {
	if r.depth[cur] <= 1 {
		return []geo.Node{cur}
	}
	return []geo.Node{r.prev[cur], cur}
}

func (r *runner) reconstruct(target geo.Node) []geo.Node {
	path := []geo.Node{target}
	for cur := target; r.prev[cur] != cur; {
		p := r.prev[cur]
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type nodeItem struct {
	node  geo.Node
	cost  float64
	index int
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].cost < pq[j].cost }
func (pq nodePQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *nodePQ) Push(x any) {
	item := x.(*nodeItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
