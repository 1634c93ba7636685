// Package layout assigns 2D canvas coordinates to instance components: one
// strategy per classified pattern, plus a compositor that packs independent
// components into a shared non-overlapping coordinate space.
//
// Strategies are pure: they read instance/connection snapshots and return a
// fresh Result. Nothing in this package mutates the caller's data.
package layout

import "github.com/structviz/structviz/pkg/model"

// Edge hint colors. Circular patterns get a distinct visual vocabulary so a
// reader can tell "simple loop" from "tangled loop" without tracing pointers.
const (
	ColorSelfLoop = "#e05252" // warning red for recursive structures
	ColorPair     = "#4f86f7"
	ColorRing     = "#7c5cff"
	ColorCycle    = "#e8a33d"
	ColorNeutral  = "#8a8f98"
)

// EdgeHint is a per-connection rendering hint passed through to the
// presentation layer. The core never consumes it further.
type EdgeHint struct {
	ConnectionID string  `json:"connection_id" bson:"connection_id"`
	Color        string  `json:"color,omitempty" bson:"color,omitempty"`
	Dashed       bool    `json:"dashed,omitempty" bson:"dashed,omitempty"`
	Animated     bool    `json:"animated,omitempty" bson:"animated,omitempty"`
	Curvature    float64 `json:"curvature,omitempty" bson:"curvature,omitempty"`
	Offset       float64 `json:"offset,omitempty" bson:"offset,omitempty"`
	Step         bool    `json:"step,omitempty" bson:"step,omitempty"`
}

// Bounds is the extent of a computed layout, used only for composition
// offsetting.
type Bounds struct {
	MinX float64 `json:"min_x" bson:"min_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Result is the output of a single layout strategy, or of the compositor.
type Result struct {
	Positions map[string]model.Position `json:"positions" bson:"positions"`
	Edges     []EdgeHint                `json:"edges,omitempty" bson:"edges,omitempty"`
	Bounds    Bounds                    `json:"bounds" bson:"bounds"`
}

// emptyResult returns a Result with an allocated, empty position map.
func emptyResult() Result {
	return Result{Positions: make(map[string]model.Position)}
}

// Component is one connected region slated for a single layout strategy.
type Component struct {
	Pattern model.Pattern
	NodeIDs []string
	// RootID is the distinguished starting node for tree and list strategies:
	// the unique in-degree-zero member when one exists.
	RootID string
}

// layoutContext bundles the read-only inputs every strategy needs.
type layoutContext struct {
	instances   map[string]model.StructInstance
	connections []model.PointerConnection
	defs        map[string]model.StructDefinition
	heights     map[string]float64
	tuning      Tuning
}

// height returns the rendered height for an instance, defaulting to the
// minimum card height for unknown ids.
func (ctx layoutContext) height(id string) float64 {
	if h, ok := ctx.heights[id]; ok {
		return h
	}
	return ctx.tuning.MinNodeHeight
}

// internalConnections returns the connections with both endpoints inside the
// component, in input order.
func (ctx layoutContext) internalConnections(member map[string]bool) []model.PointerConnection {
	var out []model.PointerConnection
	for _, c := range ctx.connections {
		if member[c.SourceInstanceID] && member[c.TargetInstanceID] {
			out = append(out, c)
		}
	}
	return out
}

// memberSet converts a component id list into a set.
func memberSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// boundsFor computes the bounding box of a position map given the card
// dimensions. Positions are top-left anchors.
func boundsFor(positions map[string]model.Position, ctx layoutContext) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	first := true
	var b Bounds
	for id, p := range positions {
		maxX := p.X + ctx.tuning.NodeWidth
		maxY := p.Y + ctx.height(id)
		if first {
			b = Bounds{MinX: p.X, MinY: p.Y, MaxX: maxX, MaxY: maxY}
			first = false
			continue
		}
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if maxX > b.MaxX {
			b.MaxX = maxX
		}
		if maxY > b.MaxY {
			b.MaxY = maxY
		}
	}
	return b
}

// neutralHints emits pass-through hints for all of a component's internal
// connections, used by the acyclic strategies.
func neutralHints(conns []model.PointerConnection) []EdgeHint {
	hints := make([]EdgeHint, len(conns))
	for i, c := range conns {
		hints[i] = EdgeHint{ConnectionID: c.ID, Color: ColorNeutral}
	}
	return hints
}
