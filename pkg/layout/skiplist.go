package layout

import (
	"sort"

	"github.com/structviz/structviz/pkg/model"
)

// layoutSkipList groups nodes by the value of their "level" (or "height")
// field, descending, so higher levels draw above lower ones, and lays each
// level out horizontally.
func layoutSkipList(c Component, ctx layoutContext) Result {
	res := emptyResult()
	if len(c.NodeIDs) == 0 {
		return res
	}

	levels := make(map[int][]string)
	for _, id := range c.NodeIDs {
		levels[nodeLevel(id, ctx)] = append(levels[nodeLevel(id, ctx)], id)
	}

	keys := make([]int, 0, len(levels))
	for k := range levels {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	rowHeight := 0.0
	for _, id := range c.NodeIDs {
		if h := ctx.height(id); h > rowHeight {
			rowHeight = h
		}
	}

	colWidth := ctx.tuning.NodeWidth + ctx.tuning.SkipColumnSpacing
	y := 0.0
	for _, level := range keys {
		for i, id := range levels[level] {
			res.Positions[id] = model.Position{X: float64(i) * colWidth, Y: y}
		}
		y += rowHeight + ctx.tuning.SkipLevelGap
	}

	res.Edges = neutralHints(ctx.internalConnections(memberSet(c.NodeIDs)))
	res.Bounds = boundsFor(res.Positions, ctx)
	return res
}

// nodeLevel reads the instance's level/height field value, defaulting to 0
// when absent or non-numeric.
func nodeLevel(id string, ctx layoutContext) int {
	inst, ok := ctx.instances[id]
	if !ok {
		return 0
	}
	for _, field := range []string{"level", "height"} {
		if v, ok := inst.FieldValues[field]; ok {
			if n, ok := asInt(v); ok {
				return n
			}
		}
	}
	return 0
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	}
	return 0, false
}
