package layout

import "github.com/structviz/structviz/pkg/model"

// layoutHorizontalList walks the single-outgoing-edge chain from the head and
// places nodes left to right at fixed spacing. The walk stops at a node with
// no outgoing edge or one already visited - the visited guard is defensive,
// since this strategy only runs on components already classified acyclic.
func layoutHorizontalList(c Component, ctx layoutContext) Result {
	res := emptyResult()
	if len(c.NodeIDs) == 0 {
		return res
	}

	member := memberSet(c.NodeIDs)
	head := c.RootID
	if head == "" || !member[head] {
		head = c.NodeIDs[0]
	}

	next := make(map[string]string, len(c.NodeIDs))
	for _, conn := range ctx.internalConnections(member) {
		if conn.IsSelfLoop() {
			continue
		}
		if _, ok := next[conn.SourceInstanceID]; !ok {
			next[conn.SourceInstanceID] = conn.TargetInstanceID
		}
	}

	spacing := ctx.tuning.NodeWidth + ctx.tuning.ListSpacing
	visited := make(map[string]bool, len(c.NodeIDs))
	x := 0.0
	for curr := head; curr != "" && !visited[curr]; curr = next[curr] {
		visited[curr] = true
		res.Positions[curr] = model.Position{X: x, Y: 0}
		x += spacing
	}

	// Members unreachable from the head (malformed input) continue the row.
	for _, id := range c.NodeIDs {
		if visited[id] {
			continue
		}
		visited[id] = true
		res.Positions[id] = model.Position{X: x, Y: 0}
		x += spacing
	}

	res.Edges = neutralHints(ctx.internalConnections(member))
	res.Bounds = boundsFor(res.Positions, ctx)
	return res
}
