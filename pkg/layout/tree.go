package layout

import (
	"sort"

	"github.com/structviz/structviz/pkg/model"
)

// layoutHorizontalTree places a tree left-to-right: the root in the leftmost
// column, each level one column further right. Children are ordered by the
// declaration order of the pointer field that created each edge, with
// array-indexed fields sub-ordered by index, so the first-declared pointer's
// subtree appears topmost. Subtree heights are computed bottom-up and every
// node is vertically centered against its allotted band.
func layoutHorizontalTree(c Component, ctx layoutContext) Result {
	res := emptyResult()
	if len(c.NodeIDs) == 0 {
		return res
	}

	member := memberSet(c.NodeIDs)
	root := c.RootID
	if root == "" || !member[root] {
		root = c.NodeIDs[0]
	}

	children := childOrder(member, ctx)

	// Bottom-up band heights. The visited guard makes the walk total even if
	// a miclassified component sneaks a cycle in.
	bands := make(map[string]float64, len(c.NodeIDs))
	var bandHeight func(id string, visited map[string]bool) float64
	bandHeight = func(id string, visited map[string]bool) float64 {
		if h, ok := bands[id]; ok {
			return h
		}
		visited[id] = true
		own := ctx.height(id)
		total := 0.0
		n := 0
		for _, child := range children[id] {
			if visited[child] {
				continue
			}
			total += bandHeight(child, visited)
			n++
		}
		if n > 0 {
			total += ctx.tuning.TreeSiblingGap * float64(n-1)
		}
		if total < own {
			total = own
		}
		bands[id] = total
		return total
	}
	bandHeight(root, make(map[string]bool, len(c.NodeIDs)))

	colWidth := ctx.tuning.NodeWidth + ctx.tuning.TreeLevelSpacing
	placed := make(map[string]bool, len(c.NodeIDs))

	var place func(id string, depth int, yTop float64)
	place = func(id string, depth int, yTop float64) {
		placed[id] = true
		band := bands[id]
		res.Positions[id] = model.Position{
			X: float64(depth) * colWidth,
			Y: yTop + (band-ctx.height(id))/2,
		}
		cy := yTop
		for _, child := range children[id] {
			if placed[child] {
				continue
			}
			place(child, depth+1, cy)
			cy += bands[child] + ctx.tuning.TreeSiblingGap
		}
	}
	place(root, 0, 0)

	// A tree component has exactly one root, but tolerate stragglers from
	// malformed input by stacking them under the tree.
	yNext := boundsFor(res.Positions, ctx).MaxY + ctx.tuning.TreeSiblingGap
	for _, id := range c.NodeIDs {
		if placed[id] {
			continue
		}
		bandHeight(id, make(map[string]bool))
		place(id, 0, yNext)
		yNext = boundsFor(res.Positions, ctx).MaxY + ctx.tuning.TreeSiblingGap
	}

	res.Edges = neutralHints(ctx.internalConnections(member))
	res.Bounds = boundsFor(res.Positions, ctx)
	return res
}

// childOrder builds each member's ordered child list. Order key: declaration
// index of the connection's base field on the source struct, then the array
// index, then connection input order.
func childOrder(member map[string]bool, ctx layoutContext) map[string][]string {
	type childEdge struct {
		target     string
		fieldIndex int
		arrayIndex int
		inputOrder int
	}
	edges := make(map[string][]childEdge)
	for i, conn := range ctx.connections {
		if !member[conn.SourceInstanceID] || !member[conn.TargetInstanceID] {
			continue
		}
		if conn.IsSelfLoop() {
			continue
		}
		fieldIndex := 1 << 20 // connections with unknown fields sort last
		if inst, ok := ctx.instances[conn.SourceInstanceID]; ok {
			if def, ok := ctx.defs[inst.StructName]; ok {
				if idx := def.FieldIndex(conn.BaseFieldName()); idx >= 0 {
					fieldIndex = idx
				}
			}
		}
		edges[conn.SourceInstanceID] = append(edges[conn.SourceInstanceID], childEdge{
			target:     conn.TargetInstanceID,
			fieldIndex: fieldIndex,
			arrayIndex: conn.ArrayIndex(),
			inputOrder: i,
		})
	}

	children := make(map[string][]string, len(edges))
	for id, list := range edges {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].fieldIndex != list[j].fieldIndex {
				return list[i].fieldIndex < list[j].fieldIndex
			}
			if list[i].arrayIndex != list[j].arrayIndex {
				return list[i].arrayIndex < list[j].arrayIndex
			}
			return list[i].inputOrder < list[j].inputOrder
		})
		seen := make(map[string]bool, len(list))
		for _, e := range list {
			if seen[e.target] {
				continue
			}
			seen[e.target] = true
			children[id] = append(children[id], e.target)
		}
	}
	return children
}
