package layout

import (
	"math"

	"github.com/structviz/structviz/pkg/model"
)

// layoutGrid arranges nodes row-major in a square-ish grid. Used for explicit
// directional-pointer grids and hash-table bucket chains alike: pointer
// topology alone does not reveal positional meaning beyond "a flat
// collection", so a compact grid is the honest rendering.
func layoutGrid(c Component, ctx layoutContext) Result {
	res := gridPlacement(c.NodeIDs, int(math.Ceil(math.Sqrt(float64(len(c.NodeIDs))))), ctx)
	res.Edges = neutralHints(ctx.internalConnections(memberSet(c.NodeIDs)))
	return res
}

// layoutIsolated places instances with no connections at all in fixed-width
// rows.
func layoutIsolated(c Component, ctx layoutContext) Result {
	perRow := ctx.tuning.IsolatedPerRow
	if perRow <= 0 {
		perRow = 4
	}
	return gridPlacement(c.NodeIDs, perRow, ctx)
}

// gridPlacement lays ids out row-major with cols columns. Row height follows
// the tallest card in the whole set, which keeps rows aligned.
func gridPlacement(ids []string, cols int, ctx layoutContext) Result {
	res := emptyResult()
	if len(ids) == 0 {
		return res
	}
	if cols < 1 {
		cols = 1
	}

	rowHeight := 0.0
	for _, id := range ids {
		if h := ctx.height(id); h > rowHeight {
			rowHeight = h
		}
	}

	cellW := ctx.tuning.NodeWidth + ctx.tuning.GridGapX
	cellH := rowHeight + ctx.tuning.GridGapY
	for i, id := range ids {
		res.Positions[id] = model.Position{
			X: float64(i%cols) * cellW,
			Y: float64(i/cols) * cellH,
		}
	}

	res.Bounds = boundsFor(res.Positions, ctx)
	return res
}
