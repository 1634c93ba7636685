package layout

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Tuning holds every spacing and sizing constant the layout strategies use.
// The defaults match the canvas dimensions the presentation layer renders at;
// a TOML file can override any subset of them.
type Tuning struct {
	// Node card sizing. Height grows with field count so connections leave
	// the card at sensible offsets.
	NodeWidth      float64 `toml:"node_width"`
	MinNodeHeight  float64 `toml:"min_node_height"`
	HeightBase     float64 `toml:"height_base"`
	HeightPerField float64 `toml:"height_per_field"`

	// Tree strategy.
	TreeLevelSpacing float64 `toml:"tree_level_spacing"`
	TreeSiblingGap   float64 `toml:"tree_sibling_gap"`

	// List strategy.
	ListSpacing float64 `toml:"list_spacing"`

	// Layered DAG strategy.
	DAGColumnSpacing float64 `toml:"dag_column_spacing"`
	DAGRowGap        float64 `toml:"dag_row_gap"`

	// Grid and isolated-node strategies.
	GridGapX       float64 `toml:"grid_gap_x"`
	GridGapY       float64 `toml:"grid_gap_y"`
	IsolatedPerRow int     `toml:"isolated_per_row"`

	// Skip-list strategy.
	SkipLevelGap      float64 `toml:"skip_level_gap"`
	SkipColumnSpacing float64 `toml:"skip_column_spacing"`

	// Circular strategies.
	PairSpacing        float64 `toml:"pair_spacing"`
	PairEdgeOffset     float64 `toml:"pair_edge_offset"`
	SelfLoopCurvature  float64 `toml:"self_loop_curvature"`
	RingRadiusMin      float64 `toml:"ring_radius_min"`
	RingRadiusPerNode  float64 `toml:"ring_radius_per_node"`
	CycleRadiusMin     float64 `toml:"cycle_radius_min"`
	CycleRadiusPerNode float64 `toml:"cycle_radius_per_node"`

	// Force-directed fallback.
	ForceAreaWidth  float64 `toml:"force_area_width"`
	ForceAreaHeight float64 `toml:"force_area_height"`
	ForceIterations int     `toml:"force_iterations"`

	// Composition.
	ComponentGap float64 `toml:"component_gap"`
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		NodeWidth:      250,
		MinNodeHeight:  250,
		HeightBase:     100,
		HeightPerField: 80,

		TreeLevelSpacing: 200,
		TreeSiblingGap:   80,

		ListSpacing: 150,

		DAGColumnSpacing: 200,
		DAGRowGap:        80,

		GridGapX:       120,
		GridGapY:       120,
		IsolatedPerRow: 4,

		SkipLevelGap:      120,
		SkipColumnSpacing: 150,

		PairSpacing:        500,
		PairEdgeOffset:     20,
		SelfLoopCurvature:  80,
		RingRadiusMin:      300,
		RingRadiusPerNode:  120,
		CycleRadiusMin:     400,
		CycleRadiusPerNode: 150,

		ForceAreaWidth:  2000,
		ForceAreaHeight: 1400,
		ForceIterations: 100,

		ComponentGap: 450,
	}
}

// LoadTuning reads a TOML override file on top of the defaults.
// Unknown keys are rejected so typos surface instead of silently applying
// stock values.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	meta, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tuning{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Tuning{}, fmt.Errorf("unknown tuning keys in %s: %v", path, undecoded)
	}
	return t, nil
}

// LoadTuningIfPresent loads the file when it exists, the defaults otherwise.
func LoadTuningIfPresent(path string) (Tuning, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultTuning(), nil
	}
	return LoadTuning(path)
}

// NodeHeight computes the rendered card height for a struct with the given
// field count: max(MinNodeHeight, HeightBase + fields*HeightPerField).
func (t Tuning) NodeHeight(fieldCount int) float64 {
	h := t.HeightBase + float64(fieldCount)*t.HeightPerField
	if h < t.MinNodeHeight {
		return t.MinNodeHeight
	}
	return h
}
