package model

import (
	"fmt"
	"sync"

	"github.com/CalliEve/metro-map-editor-sub000/geo"
)

// Map is the mutable station/edge/line graph the layout engine operates
// on. Station mutations and edge/line mutations are guarded by separate
// locks, mirroring the teacher library's split between its vertex lock
// and its edge/adjacency lock: a reader walking stations never blocks
// on an in-flight edge update and vice versa.
type Map struct {
	muStations sync.RWMutex
	stations   map[StationID]*Station

	muEdges sync.RWMutex
	edges   map[EdgeID]*Edge
	lines   map[LineID]*Line

	ids *IDAllocator
}

// MapOption configures a Map at construction time.
type MapOption func(*Map)

// WithIDAllocator seeds a new Map with an existing allocator, so IDs
// issued by a cloned map never collide with IDs already issued by its
// source.
func WithIDAllocator(a *IDAllocator) MapOption {
	return func(m *Map) { m.ids = a }
}

// NewMap constructs an empty Map.
func NewMap(opts ...MapOption) *Map {
	m := &Map{
		stations: make(map[StationID]*Station),
		edges:    make(map[EdgeID]*Edge),
		lines:    make(map[LineID]*Line),
		ids:      &IDAllocator{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StationOption configures a station being added to a Map.
type StationOption func(*Station)

// WithStationName sets the station's display name.
func WithStationName(name string) StationOption {
	return func(s *Station) { s.Name = name }
}

// WithStationLocked marks the station as locked: never moved, and its
// incident edges never rerouted.
func WithStationLocked() StationOption {
	return func(s *Station) { s.Locked = true }
}

// AddStation creates a new station at pos and inserts it into the map.
func (m *Map) AddStation(pos geo.Node, opts ...StationOption) *Station {
	s := &Station{
		ID:          m.ids.NextStation(),
		Pos:         pos,
		OriginalPos: pos,
	}
	for _, opt := range opts {
		opt(s)
	}
	m.muStations.Lock()
	m.stations[s.ID] = s
	m.muStations.Unlock()
	return s
}

// Station looks up a station by ID.
func (m *Map) Station(id StationID) (*Station, bool) {
	m.muStations.RLock()
	defer m.muStations.RUnlock()
	s, ok := m.stations[id]
	return s, ok
}

// Stations returns every station in the map, in no particular order.
func (m *Map) Stations() []*Station {
	m.muStations.RLock()
	defer m.muStations.RUnlock()
	out := make([]*Station, 0, len(m.stations))
	for _, s := range m.stations {
		out = append(out, s)
	}
	return out
}

// RemoveStation deletes a station. It does not touch any edge
// referencing it; callers (contraction, cycle resolution) are expected
// to have already rewired or removed those edges.
func (m *Map) RemoveStation(id StationID) {
	m.muStations.Lock()
	defer m.muStations.Unlock()
	delete(m.stations, id)
}

// EdgeOption configures an edge being added to a Map.
type EdgeOption func(*Edge)

// WithEdgeLines attaches the given lines to the edge being created.
func WithEdgeLines(lines ...LineID) EdgeOption {
	return func(e *Edge) { e.Lines = append(e.Lines, lines...) }
}

// WithEdgeLocked marks the edge as locked: routing never recomputes it.
func WithEdgeLocked() EdgeOption {
	return func(e *Edge) { e.Locked = true }
}

// AddEdge creates a new edge between from and to. It returns
// ErrSelfLoop if from == to, and ErrDuplicateEdge if an edge between the
// two already exists — the map's invariant is at most one edge per
// station pair; use EdgeBetweenOrCreate to build up a map idempotently.
func (m *Map) AddEdge(from, to StationID, opts ...EdgeOption) (*Edge, error) {
	if from == to {
		return nil, fmt.Errorf("model: AddEdge(%s, %s): %w", from, to, ErrSelfLoop)
	}
	if _, ok := m.EdgeBetween(from, to); ok {
		return nil, fmt.Errorf("model: AddEdge(%s, %s): %w", from, to, ErrDuplicateEdge)
	}
	e := &Edge{
		ID:   m.ids.NextEdge(),
		From: from,
		To:   to,
	}
	for _, opt := range opts {
		opt(e)
	}
	m.muEdges.Lock()
	m.edges[e.ID] = e
	m.muEdges.Unlock()
	return e, nil
}

// EdgeBetweenOrCreate returns the existing edge between from and to, or
// creates and returns a new one if none exists yet.
func (m *Map) EdgeBetweenOrCreate(from, to StationID, opts ...EdgeOption) *Edge {
	if e, ok := m.EdgeBetween(from, to); ok {
		return e
	}
	e, err := m.AddEdge(from, to, opts...)
	if err != nil {
		// The only remaining failure is from == to, which callers that
		// pass distinct station IDs never hit; a panic here surfaces
		// that programming error rather than a normal runtime case.
		panic(err)
	}
	return e
}

// EdgeBetween returns the edge connecting a and b, in either direction,
// if one exists.
func (m *Map) EdgeBetween(a, b StationID) (*Edge, bool) {
	m.muEdges.RLock()
	defer m.muEdges.RUnlock()
	for _, e := range m.edges {
		if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
			return e, true
		}
	}
	return nil, false
}

// Edge looks up an edge by ID.
func (m *Map) Edge(id EdgeID) (*Edge, bool) {
	m.muEdges.RLock()
	defer m.muEdges.RUnlock()
	e, ok := m.edges[id]
	return e, ok
}

// Edges returns every edge in the map, in no particular order.
func (m *Map) Edges() []*Edge {
	m.muEdges.RLock()
	defer m.muEdges.RUnlock()
	out := make([]*Edge, 0, len(m.edges))
	for _, e := range m.edges {
		out = append(out, e)
	}
	return out
}

// RemoveEdge deletes an edge.
func (m *Map) RemoveEdge(id EdgeID) {
	m.muEdges.Lock()
	defer m.muEdges.Unlock()
	delete(m.edges, id)
}

// IncidentEdges returns every edge touching station.
func (m *Map) IncidentEdges(station StationID) []*Edge {
	m.muEdges.RLock()
	defer m.muEdges.RUnlock()
	var out []*Edge
	for _, e := range m.edges {
		if e.From == station || e.To == station {
			out = append(out, e)
		}
	}
	return out
}

// StationCost sums station's displacement cost from OriginalPos (at
// moveCost per grid step) with the cached Cost of every incident edge,
// read directly off the map's committed state without re-running Edge
// Dijkstra.
func (m *Map) StationCost(stationID StationID, moveCost float64) float64 {
	station, ok := m.Station(stationID)
	if !ok {
		return 0
	}
	total := float64(geo.ManhattanDistance(station.Pos, station.OriginalPos)) * moveCost
	for _, e := range m.IncidentEdges(stationID) {
		total += e.Cost
	}
	return total
}

// NeighborStations returns the stations directly connected to station by
// a single edge.
func (m *Map) NeighborStations(station StationID) []StationID {
	incident := m.IncidentEdges(station)
	out := make([]StationID, 0, len(incident))
	for _, e := range incident {
		out = append(out, e.OtherEnd(station))
	}
	return out
}

// AddLine creates a new line running along the given edges, in order.
func (m *Map) AddLine(name, color string, edges ...EdgeID) *Line {
	l := &Line{
		ID:    m.ids.NextLine(),
		Name:  name,
		Color: color,
		Edges: edges,
	}
	m.muEdges.Lock()
	m.lines[l.ID] = l
	m.muEdges.Unlock()
	return l
}

// Line looks up a line by ID.
func (m *Map) Line(id LineID) (*Line, bool) {
	m.muEdges.RLock()
	defer m.muEdges.RUnlock()
	l, ok := m.lines[id]
	return l, ok
}

// Lines returns every line in the map, in no particular order.
func (m *Map) Lines() []*Line {
	m.muEdges.RLock()
	defer m.muEdges.RUnlock()
	out := make([]*Line, 0, len(m.lines))
	for _, l := range m.lines {
		out = append(out, l)
	}
	return out
}

// Clone returns a deep copy of m sharing no mutable state with it, for
// use by local search and route-edge retries that need to speculatively
// mutate a map and discard the attempt on failure.
func (m *Map) Clone() *Map {
	m.muStations.RLock()
	m.muEdges.RLock()
	defer m.muStations.RUnlock()
	defer m.muEdges.RUnlock()

	clone := &Map{
		stations: make(map[StationID]*Station, len(m.stations)),
		edges:    make(map[EdgeID]*Edge, len(m.edges)),
		lines:    make(map[LineID]*Line, len(m.lines)),
		ids:      m.ids.Clone(),
	}
	for id, s := range m.stations {
		cp := *s
		clone.stations[id] = &cp
	}
	for id, e := range m.edges {
		cp := *e
		cp.Lines = append([]LineID(nil), e.Lines...)
		cp.Nodes = append([]geo.Node(nil), e.Nodes...)
		cp.ContractedStations = append([]StationID(nil), e.ContractedStations...)
		clone.edges[id] = &cp
	}
	for id, l := range m.lines {
		cp := *l
		cp.Edges = append([]EdgeID(nil), l.Edges...)
		clone.lines[id] = &cp
	}
	return clone
}
