package ordering

import (
	"container/heap"
	"sort"

	"github.com/CalliEve/metro-map-editor-sub000/model"
)

// LineDegree returns the sum of line counts over every edge incident to
// station: a station served by three edges each carrying two lines has
// a line-degree of six.
func LineDegree(m *model.Map, station model.StationID) int {
	degree := 0
	for _, e := range m.IncidentEdges(station) {
		degree += len(e.Lines)
	}
	return degree
}

// OrderEdges returns every edge ID in m, ordered so that edges incident
// to higher line-degree stations are routed first. Disjoint components
// are each walked from their own highest-degree station in turn.
func OrderEdges(m *model.Map) []model.EdgeID {
	degree := make(map[model.StationID]int)
	for _, s := range m.Stations() {
		degree[s.ID] = LineDegree(m, s.ID)
	}

	dealtWith := make(map[model.StationID]bool)
	visitedEdges := make(map[model.EdgeID]bool)
	total := len(m.Edges())

	order := make([]model.EdgeID, 0, total)
	for len(visitedEdges) < total {
		seed, ok := highestDegreeRemaining(m, degree, dealtWith)
		if !ok {
			break
		}
		order = append(order, walkFrom(m, seed, degree, dealtWith, visitedEdges)...)
	}
	return order
}

// highestDegreeRemaining finds the highest line-degree station that has
// not yet been dealt with, recomputed fresh each call so a new disjoint
// component always starts from its own best seed.
func highestDegreeRemaining(m *model.Map, degree map[model.StationID]int, dealtWith map[model.StationID]bool) (model.StationID, bool) {
	var (
		best   model.StationID
		bestOK bool
	)
	for _, s := range m.Stations() {
		if dealtWith[s.ID] {
			continue
		}
		if !bestOK || degree[s.ID] > degree[best] || (degree[s.ID] == degree[best] && s.ID < best) {
			best, bestOK = s.ID, true
		}
	}
	return best, bestOK
}

// walkFrom runs one priority-BFS pass starting at seed, appending edges
// in the order they are settled.
func walkFrom(
	m *model.Map,
	seed model.StationID,
	degree map[model.StationID]int,
	dealtWith map[model.StationID]bool,
	visitedEdges map[model.EdgeID]bool,
) []model.EdgeID {
	var order []model.EdgeID

	pq := &stationPQ{{station: seed, degree: degree[seed]}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*stationHeapItem)
		station := item.station
		if dealtWith[station] {
			continue
		}
		dealtWith[station] = true

		incident := pendingIncidentEdges(m, station, visitedEdges)
		sort.Slice(incident, func(i, j int) bool {
			di, dj := degree[incident[i].OtherEnd(station)], degree[incident[j].OtherEnd(station)]
			if di != dj {
				return di > dj
			}
			return incident[i].ID < incident[j].ID
		})

		for _, e := range incident {
			visitedEdges[e.ID] = true
			order = append(order, e.ID)
			other := e.OtherEnd(station)
			if !dealtWith[other] {
				heap.Push(pq, &stationHeapItem{station: other, degree: degree[other]})
			}
		}
	}
	return order
}

func pendingIncidentEdges(m *model.Map, station model.StationID, visitedEdges map[model.EdgeID]bool) []*model.Edge {
	var out []*model.Edge
	for _, e := range m.IncidentEdges(station) {
		if !visitedEdges[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// stationHeapItem is a priority-queue entry ordered by descending
// line-degree, ties broken by station ID for determinism.
type stationHeapItem struct {
	station model.StationID
	degree  int
	index   int
}

type stationPQ []*stationHeapItem

func (pq stationPQ) Len() int { return len(pq) }

func (pq stationPQ) Less(i, j int) bool {
	if pq[i].degree != pq[j].degree {
		return pq[i].degree > pq[j].degree
	}
	return pq[i].station < pq[j].station
}

func (pq stationPQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *stationPQ) Push(x any) {
	item := x.(*stationHeapItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *stationPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
