package engine

import "github.com/CalliEve/metro-map-editor-sub000/cost"

// Settings configures one RecalculateMap run.
type Settings struct {
	// GridWidth and GridHeight bound the valid grid.
	GridWidth  int
	GridHeight int

	// MoveCost scales the cost of a single grid step.
	MoveCost float64

	// NodeSetRadius bounds how far route_edges' candidate node sets and
	// station contraction's distance test reach from a station's
	// original position.
	NodeSetRadius int

	// EdgeRoutingAttempts is the total number of routing passes made
	// before giving up; after a failed pass the unrouted suffix of the
	// edge order is reshuffled for the next one.
	EdgeRoutingAttempts int

	// RunLocalSearch enables the post-routing station relocation pass.
	RunLocalSearch bool
	// EarlyLocalSearchAbort enables local search's early-exit once a
	// candidate can no longer beat the station's current cost.
	EarlyLocalSearchAbort bool

	// Logger receives diagnostic messages from the pipeline. Defaults
	// to a log/slog-backed adapter if left nil.
	Logger Logger
}

// Option configures a Settings value.
type Option func(*Settings)

// WithGridBounds sets the valid grid extent.
func WithGridBounds(width, height int) Option {
	return func(s *Settings) {
		s.GridWidth = width
		s.GridHeight = height
	}
}

// WithMoveCost sets the per-step move cost multiplier.
func WithMoveCost(c float64) Option {
	return func(s *Settings) { s.MoveCost = c }
}

// WithNodeSetRadius sets the contraction/route-edges search radius.
func WithNodeSetRadius(radius int) Option {
	return func(s *Settings) { s.NodeSetRadius = radius }
}

// WithEdgeRoutingAttempts sets the retry budget for routing failures.
func WithEdgeRoutingAttempts(attempts int) Option {
	return func(s *Settings) { s.EdgeRoutingAttempts = attempts }
}

// WithLocalSearch toggles the post-routing relocation pass.
func WithLocalSearch(enabled bool) Option {
	return func(s *Settings) { s.RunLocalSearch = enabled }
}

// WithEarlyLocalSearchAbort toggles local search's early-exit
// optimization.
func WithEarlyLocalSearchAbort(enabled bool) Option {
	return func(s *Settings) { s.EarlyLocalSearchAbort = enabled }
}

// WithLogger overrides the default logger.
func WithLogger(l Logger) Option {
	return func(s *Settings) { s.Logger = l }
}

// DefaultSettings returns the settings a fresh run should start from
// absent user overrides.
func DefaultSettings() Settings {
	return Settings{
		GridWidth:             256,
		GridHeight:            256,
		MoveCost:              1.0,
		NodeSetRadius:         4,
		EdgeRoutingAttempts:   5,
		RunLocalSearch:        true,
		EarlyLocalSearchAbort: true,
		Logger:                DefaultLogger(),
	}
}

// NewSettings builds a Settings value from DefaultSettings with opts
// applied in order.
func NewSettings(opts ...Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if s.Logger == nil {
		s.Logger = DefaultLogger()
	}
	return s
}

// CostSettings projects the fields package cost needs out of Settings.
func (s Settings) CostSettings() cost.Settings {
	return cost.New(
		cost.WithGridBounds(s.GridWidth, s.GridHeight),
		cost.WithMoveCost(s.MoveCost),
		cost.WithEarlyLocalSearchAbort(s.EarlyLocalSearchAbort),
	)
}
