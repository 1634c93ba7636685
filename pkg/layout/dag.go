package layout

import "github.com/structviz/structviz/pkg/model"

// layoutLayeredDAG assigns each node a column equal to its longest-path depth
// from any root, then stacks the nodes of a column vertically, centered.
//
// Longest-path layering (rather than the minimal-width alternative) keeps the
// implementation simple and guarantees every edge points strictly left to
// right.
func layoutLayeredDAG(c Component, ctx layoutContext) Result {
	res := emptyResult()
	if len(c.NodeIDs) == 0 {
		return res
	}

	member := memberSet(c.NodeIDs)

	parents := make(map[string][]string, len(c.NodeIDs))
	for _, conn := range ctx.internalConnections(member) {
		if conn.IsSelfLoop() {
			continue
		}
		parents[conn.TargetInstanceID] = append(parents[conn.TargetInstanceID], conn.SourceInstanceID)
	}

	// Memoized longest path from any root. The in-progress guard breaks out
	// of cycles that would only appear on misclassified input.
	depths := make(map[string]int, len(c.NodeIDs))
	inProgress := make(map[string]bool, len(c.NodeIDs))
	var depth func(id string) int
	depth = func(id string) int {
		if d, ok := depths[id]; ok {
			return d
		}
		if inProgress[id] {
			return 0
		}
		inProgress[id] = true
		d := 0
		for _, p := range parents[id] {
			if pd := depth(p) + 1; pd > d {
				d = pd
			}
		}
		inProgress[id] = false
		depths[id] = d
		return d
	}

	columns := make(map[int][]string)
	maxDepth := 0
	for _, id := range c.NodeIDs {
		d := depth(id)
		columns[d] = append(columns[d], id)
		if d > maxDepth {
			maxDepth = d
		}
	}

	colWidth := ctx.tuning.NodeWidth + ctx.tuning.DAGColumnSpacing
	for col := 0; col <= maxDepth; col++ {
		ids := columns[col]
		if len(ids) == 0 {
			continue
		}
		total := 0.0
		for _, id := range ids {
			total += ctx.height(id)
		}
		total += ctx.tuning.DAGRowGap * float64(len(ids)-1)

		y := -total / 2
		for _, id := range ids {
			res.Positions[id] = model.Position{X: float64(col) * colWidth, Y: y}
			y += ctx.height(id) + ctx.tuning.DAGRowGap
		}
	}

	res.Edges = neutralHints(ctx.internalConnections(member))
	res.Bounds = boundsFor(res.Positions, ctx)
	return res
}
