package layout

import (
	"github.com/matzehuels/strata/pkg/errors"
)

// Direction selects the primary layout axis and its orientation.
type Direction string

const (
	// DirectionTB lays levels out top to bottom.
	DirectionTB Direction = "TB"
	// DirectionBT lays levels out bottom to top.
	DirectionBT Direction = "BT"
	// DirectionLR lays levels out left to right.
	DirectionLR Direction = "LR"
	// DirectionRL lays levels out right to left.
	DirectionRL Direction = "RL"
)

// horizontal reports whether the primary axis is x rather than y.
func (d Direction) horizontal() bool { return d == DirectionLR || d == DirectionRL }

// reversed reports whether levels run against the axis direction.
func (d Direction) reversed() bool { return d == DirectionBT || d == DirectionRL }

// Ranking selects the level-assignment strategy.
type Ranking string

const (
	// RankingLongestPath assigns each node the length of the longest path
	// from the detected roots. Baseline for the other two strategies.
	RankingLongestPath Ranking = "longest-path"
	// RankingTightTree refines longest-path ranks by repeatedly moving nodes
	// to the median of their neighborhood's implied ranks.
	RankingTightTree Ranking = "tight-tree"
	// RankingNetworkSimplex is an alias for RankingTightTree. It is an
	// intentional approximation, not a true network-simplex optimum.
	RankingNetworkSimplex Ranking = "network-simplex"
)

// Crossing selects the crossing-minimization heuristic.
type Crossing string

const (
	// CrossingBarycenter orders nodes by the mean order of their neighbors
	// in the adjacent level.
	CrossingBarycenter Crossing = "barycenter"
	// CrossingMedian orders nodes by the median order of their neighbors in
	// the adjacent level (average of the two middle values for even counts).
	CrossingMedian Crossing = "median"
	// CrossingNone skips minimization and keeps insertion order.
	CrossingNone Crossing = "none"
)

// Coordinates selects the coordinate-assignment strategy.
type Coordinates string

const (
	// CoordinatesSimple spaces levels evenly and centers each level
	// symmetrically on the cross axis.
	CoordinatesSimple Coordinates = "simple"
	// CoordinatesBrandesKopf starts from simple and runs alternating
	// align-to-parents / align-to-children passes.
	CoordinatesBrandesKopf Coordinates = "brandes-kopf"
	// CoordinatesTight is an alias for CoordinatesBrandesKopf.
	CoordinatesTight Coordinates = "tight"
)

// Default option values.
const (
	DefaultLevelSeparation     = 100.0
	DefaultNodeSeparation      = 50.0
	DefaultSubtreeSeparation   = 50.0
	DefaultCrossingIterations  = 4
	DefaultTightTreePasses     = 100
	DefaultAlignmentIterations = 8
	DefaultGridSize            = 10.0
	DefaultMargin              = 20.0
)

// Options configures a layout computation. The zero value is not directly
// usable - construct engines with [New], which fills unset fields from
// [DefaultOptions].
type Options struct {
	// Direction is the primary layout axis/orientation. Default TB.
	Direction Direction `json:"direction" toml:"direction"`

	// LevelSeparation is the coordinate gap between adjacent levels along
	// the primary axis. Default 100.
	LevelSeparation float64 `json:"level_separation" toml:"level_separation"`

	// NodeSeparation is the cross-axis pitch between nodes within a level.
	// Default 50.
	NodeSeparation float64 `json:"node_separation" toml:"node_separation"`

	// SubtreeSeparation is accepted for wire compatibility but currently
	// unused by every implemented coordinate assigner.
	SubtreeSeparation float64 `json:"subtree_separation" toml:"subtree_separation"`

	// RootNodes optionally pins the rank-assignment roots. Unknown ids are
	// ignored; when empty, roots are detected from in-degrees.
	RootNodes []string `json:"root_nodes,omitempty" toml:"root_nodes"`

	// Ranking selects the level-assignment strategy. Default longest-path.
	Ranking Ranking `json:"ranking" toml:"ranking"`

	// Crossing selects the crossing-minimization heuristic. Default barycenter.
	Crossing Crossing `json:"crossing" toml:"crossing"`

	// Coordinates selects the coordinate assigner. Default simple.
	Coordinates Coordinates `json:"coordinates" toml:"coordinates"`

	// CrossingIterations caps the number of minimization sweeps. Default 4.
	// Zero means the default; to skip minimization entirely, set Crossing
	// to CrossingNone instead.
	CrossingIterations int `json:"crossing_iterations" toml:"crossing_iterations"`

	// TightTreePasses caps tight-tree refinement passes. Default 100.
	TightTreePasses int `json:"tight_tree_passes" toml:"tight_tree_passes"`

	// AlignmentIterations caps brandes-kopf alignment passes. Default 8.
	AlignmentIterations int `json:"alignment_iterations" toml:"alignment_iterations"`

	// AlignToGrid snaps all published coordinates to multiples of GridSize.
	AlignToGrid bool `json:"align_to_grid" toml:"align_to_grid"`

	// GridSize is the snapping pitch when AlignToGrid is set. Default 10.
	GridSize float64 `json:"grid_size" toml:"grid_size"`

	// Compact enables the post-alignment re-pack of each level. Only applies
	// to brandes-kopf/tight coordinate assignment.
	Compact bool `json:"compact" toml:"compact"`

	// Margin is the minimum coordinate on both axes. Default 20.
	Margin float64 `json:"margin" toml:"margin"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Direction:           DirectionTB,
		LevelSeparation:     DefaultLevelSeparation,
		NodeSeparation:      DefaultNodeSeparation,
		SubtreeSeparation:   DefaultSubtreeSeparation,
		Ranking:             RankingLongestPath,
		Crossing:            CrossingBarycenter,
		Coordinates:         CoordinatesSimple,
		CrossingIterations:  DefaultCrossingIterations,
		TightTreePasses:     DefaultTightTreePasses,
		AlignmentIterations: DefaultAlignmentIterations,
		GridSize:            DefaultGridSize,
		Margin:              DefaultMargin,
	}
}

// withDefaults fills unset fields. Zero numeric caps mean "use the default";
// explicitly negative values are left for Validate to reject.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Direction == "" {
		o.Direction = def.Direction
	}
	if o.LevelSeparation == 0 {
		o.LevelSeparation = def.LevelSeparation
	}
	if o.NodeSeparation == 0 {
		o.NodeSeparation = def.NodeSeparation
	}
	if o.SubtreeSeparation == 0 {
		o.SubtreeSeparation = def.SubtreeSeparation
	}
	if o.Ranking == "" {
		o.Ranking = def.Ranking
	}
	if o.Crossing == "" {
		o.Crossing = def.Crossing
	}
	if o.Coordinates == "" {
		o.Coordinates = def.Coordinates
	}
	if o.CrossingIterations == 0 {
		o.CrossingIterations = def.CrossingIterations
	}
	if o.TightTreePasses == 0 {
		o.TightTreePasses = def.TightTreePasses
	}
	if o.AlignmentIterations == 0 {
		o.AlignmentIterations = def.AlignmentIterations
	}
	if o.GridSize == 0 {
		o.GridSize = def.GridSize
	}
	return o
}

// Validate checks option consistency. The returned errors carry
// machine-readable codes from pkg/errors.
func (o Options) Validate() error {
	switch o.Direction {
	case DirectionTB, DirectionBT, DirectionLR, DirectionRL:
	default:
		return errors.New(errors.ErrCodeInvalidDirection, "invalid direction: %q", o.Direction)
	}

	switch o.Ranking {
	case RankingLongestPath, RankingTightTree, RankingNetworkSimplex:
	default:
		return errors.New(errors.ErrCodeInvalidRanking, "invalid ranking algorithm: %q", o.Ranking)
	}

	switch o.Crossing {
	case CrossingBarycenter, CrossingMedian, CrossingNone:
	default:
		return errors.New(errors.ErrCodeInvalidCrossing, "invalid crossing minimization: %q", o.Crossing)
	}

	switch o.Coordinates {
	case CoordinatesSimple, CoordinatesBrandesKopf, CoordinatesTight:
	default:
		return errors.New(errors.ErrCodeInvalidCoordinates, "invalid coordinate assignment: %q", o.Coordinates)
	}

	if o.LevelSeparation <= 0 {
		return errors.New(errors.ErrCodeInvalidOption, "level_separation must be positive, got %v", o.LevelSeparation)
	}
	if o.NodeSeparation <= 0 {
		return errors.New(errors.ErrCodeInvalidOption, "node_separation must be positive, got %v", o.NodeSeparation)
	}
	if o.CrossingIterations < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "crossing_iterations must not be negative, got %d", o.CrossingIterations)
	}
	if o.TightTreePasses < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "tight_tree_passes must not be negative, got %d", o.TightTreePasses)
	}
	if o.AlignmentIterations < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "alignment_iterations must not be negative, got %d", o.AlignmentIterations)
	}
	if o.AlignToGrid && o.GridSize <= 0 {
		return errors.New(errors.ErrCodeInvalidOption, "grid_size must be positive when align_to_grid is set, got %v", o.GridSize)
	}
	if o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "margin must not be negative, got %v", o.Margin)
	}
	return nil
}
