package astar

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/CalliEve/metro-map-editor-sub000/geo"
)

// ErrNoPath is returned when no route between from and to exists given
// the blocked predicate.
var ErrNoPath = errors.New("astar: no path found")

// Neighbors is called to expand a node during the search. Implementations
// typically return geo.Node.Neighbors() filtered to the grid bounds.
type Neighbors func(n geo.Node) []geo.Node

// Run finds a path from `from` to `to`, treating every step (cardinal or
// diagonal) as unit cost plus the diagonal-distance heuristic to `to`,
// skipping any node for which blocked returns true. The returned path
// includes both endpoints.
func Run(from, to geo.Node, neighbors Neighbors, blocked func(geo.Node) bool) ([]geo.Node, error) {
	if from == to {
		return []geo.Node{from}, nil
	}

	open := &nodePQ{}
	heap.Init(open)
	heap.Push(open, &nodeItem{node: from, gCost: 0, pathLen: 0})

	gScore := map[geo.Node]float64{from: 0}
	prev := map[geo.Node]geo.Node{}
	visited := map[geo.Node]bool{}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*nodeItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		if cur.node == to {
			return reconstruct(prev, from, to), nil
		}

		for _, next := range neighbors(cur.node) {
			if visited[next] || (blocked != nil && blocked(next)) {
				continue
			}
			step := 1.0
			tentative := gScore[cur.node] + step
			existing, seen := gScore[next]
			if seen && tentative >= existing {
				continue
			}
			gScore[next] = tentative
			prev[next] = cur.node
			heap.Push(open, &nodeItem{
				node:    next,
				gCost:   tentative,
				fCost:   tentative + geo.DiagonalDistance(next, to),
				pathLen: cur.pathLen + 1,
			})
		}
	}

	return nil, fmt.Errorf("astar: %s -> %s: %w", from, to, ErrNoPath)
}

func reconstruct(prev map[geo.Node]geo.Node, from, to geo.Node) []geo.Node {
	path := []geo.Node{to}
	for cur := to; cur != from; {
		p := prev[cur]
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// nodeItem is a priority-queue entry. Ordering is by fCost ascending;
// ties prefer the entry with the longer partial path, matching the
// reference implementation's tie-break rule.
type nodeItem struct {
	node    geo.Node
	gCost   float64
	fCost   float64
	pathLen int
	index   int
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].fCost != pq[j].fCost {
		return pq[i].fCost < pq[j].fCost
	}
	return pq[i].pathLen > pq[j].pathLen
}

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
