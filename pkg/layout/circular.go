package layout

import (
	"math"

	"github.com/structviz/structviz/pkg/model"
)

// =============================================================================
// Circular Strategies
//
// Each strongly connected component gets a pattern-specific treatment with a
// distinct radius floor and edge color, so a reader immediately sees whether a
// loop is a simple ring or a tangled cycle.
// =============================================================================

// layoutSelfLoop keeps the node where the user left it (or at the center when
// unplaced) and flags the self-referential edge with a wide dashed bezier
// loop in the warning color.
func layoutSelfLoop(c Component, ctx layoutContext) Result {
	res := emptyResult()
	if len(c.NodeIDs) == 0 {
		return res
	}
	id := c.NodeIDs[0]

	pos := model.Position{}
	if inst, ok := ctx.instances[id]; ok && !inst.Position.IsZero() {
		pos = inst.Position
	}
	res.Positions[id] = pos

	for _, conn := range ctx.connections {
		if conn.SourceInstanceID == id && conn.TargetInstanceID == id {
			res.Edges = append(res.Edges, EdgeHint{
				ConnectionID: conn.ID,
				Color:        ColorSelfLoop,
				Dashed:       true,
				Animated:     true,
				Curvature:    ctx.tuning.SelfLoopCurvature,
			})
		}
	}

	res.Bounds = boundsFor(res.Positions, ctx)
	return res
}

// layoutBidirectionalPair places the two nodes side by side and routes the
// opposing edges with equal-and-opposite perpendicular offsets so they run in
// parallel instead of overlapping.
func layoutBidirectionalPair(c Component, ctx layoutContext) Result {
	res := emptyResult()
	if len(c.NodeIDs) != 2 {
		return layoutGeneralCycle(c, ctx)
	}
	a, b := c.NodeIDs[0], c.NodeIDs[1]
	half := ctx.tuning.PairSpacing / 2
	res.Positions[a] = model.Position{X: -half, Y: 0}
	res.Positions[b] = model.Position{X: half, Y: 0}

	member := memberSet(c.NodeIDs)
	sign := 1.0
	for _, conn := range ctx.internalConnections(member) {
		res.Edges = append(res.Edges, EdgeHint{
			ConnectionID: conn.ID,
			Color:        ColorPair,
			Offset:       sign * ctx.tuning.PairEdgeOffset,
			Step:         true,
		})
		sign = -sign
	}

	res.Bounds = boundsFor(res.Positions, ctx)
	return res
}

// layoutCircularList places a simple ring on a circle whose radius grows with
// membership, starting at angle 0 (the rightmost point) and proceeding
// clockwise. Node order follows the ring's own successor chain so neighbors
// on screen are neighbors in memory.
func layoutCircularList(c Component, ctx layoutContext) Result {
	ordered := ringOrder(c.NodeIDs, ctx)
	radius := math.Max(ctx.tuning.RingRadiusMin, float64(len(ordered))*ctx.tuning.RingRadiusPerNode)
	res := radialPlacement(ordered, radius, ctx)

	member := memberSet(c.NodeIDs)
	for _, conn := range ctx.internalConnections(member) {
		res.Edges = append(res.Edges, EdgeHint{
			ConnectionID: conn.ID,
			Color:        ColorRing,
			Animated:     true,
		})
	}

	res.Bounds = boundsFor(res.Positions, ctx)
	return res
}

// layoutGeneralCycle uses the same radial placement with a larger radius
// floor, leaving room for the denser crossing-edge pattern, and dashes the
// edges in a distinct color to signal higher structural complexity.
func layoutGeneralCycle(c Component, ctx layoutContext) Result {
	radius := math.Max(ctx.tuning.CycleRadiusMin, float64(len(c.NodeIDs))*ctx.tuning.CycleRadiusPerNode)
	res := radialPlacement(c.NodeIDs, radius, ctx)

	member := memberSet(c.NodeIDs)
	for _, conn := range ctx.internalConnections(member) {
		res.Edges = append(res.Edges, EdgeHint{
			ConnectionID: conn.ID,
			Color:        ColorCycle,
			Dashed:       true,
		})
	}

	res.Bounds = boundsFor(res.Positions, ctx)
	return res
}

// radialPlacement distributes nodes on a circle around the origin at uniform
// angular steps. With screen Y growing downward, increasing angles walk the
// circle clockwise.
func radialPlacement(ids []string, radius float64, ctx layoutContext) Result {
	res := emptyResult()
	if len(ids) == 0 {
		return res
	}
	step := 2 * math.Pi / float64(len(ids))
	for i, id := range ids {
		angle := float64(i) * step
		res.Positions[id] = model.Position{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
	}
	return res
}

// ringOrder walks the ring's successor chain starting from the first member.
// Falls back to the given order if the chain breaks, which can only happen on
// inputs that violate the ring classification (tolerated, not rejected).
func ringOrder(ids []string, ctx layoutContext) []string {
	if len(ids) == 0 {
		return ids
	}
	member := memberSet(ids)
	next := make(map[string]string, len(ids))
	for _, conn := range ctx.internalConnections(member) {
		if _, ok := next[conn.SourceInstanceID]; !ok && conn.SourceInstanceID != conn.TargetInstanceID {
			next[conn.SourceInstanceID] = conn.TargetInstanceID
		}
	}

	ordered := make([]string, 0, len(ids))
	visited := make(map[string]bool, len(ids))
	for curr := ids[0]; curr != "" && !visited[curr]; curr = next[curr] {
		ordered = append(ordered, curr)
		visited[curr] = true
	}
	if len(ordered) != len(ids) {
		return ids
	}
	return ordered
}
