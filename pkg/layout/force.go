package layout

import (
	"math"

	"github.com/structviz/structviz/pkg/model"
)

// layoutForceDirected is the fallback for components with no recognizable
// structure: a classic spring-embedder. Every node pair repels inversely with
// distance, every edge attracts proportionally to squared distance, both
// scaled by the characteristic distance k = sqrt(area/n). The simulation runs
// a fixed number of iterations with a linearly decaying temperature capping
// per-iteration displacement, so worst-case latency is bounded regardless of
// input.
//
// An anisotropic bias (1.3x horizontal, 0.7x vertical) is applied to the
// force vectors every iteration, producing wide short layouts that suit
// screen aspect ratios better than circular blobs.
func layoutForceDirected(c Component, ctx layoutContext) Result {
	res := emptyResult()
	n := len(c.NodeIDs)
	if n == 0 {
		return res
	}
	if n == 1 {
		res.Positions[c.NodeIDs[0]] = model.Position{}
		res.Bounds = boundsFor(res.Positions, ctx)
		return res
	}

	member := memberSet(c.NodeIDs)
	internal := ctx.internalConnections(member)

	area := ctx.tuning.ForceAreaWidth * ctx.tuning.ForceAreaHeight
	k := math.Sqrt(area / float64(n))
	side := math.Sqrt(area)

	// Deterministic seed placement: nodes on a circle of radius k.
	pos := make(map[string]model.Position, n)
	for i, id := range c.NodeIDs {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pos[id] = model.Position{X: k * math.Cos(angle), Y: k * math.Sin(angle)}
	}

	iterations := ctx.tuning.ForceIterations
	if iterations <= 0 {
		iterations = 100
	}

	for iter := 0; iter < iterations; iter++ {
		disp := make(map[string]model.Position, n)

		// Repulsion between every pair.
		for i, a := range c.NodeIDs {
			for _, b := range c.NodeIDs[i+1:] {
				dx := pos[a].X - pos[b].X
				dy := pos[a].Y - pos[b].Y
				dist := math.Hypot(dx, dy)
				if dist < 1e-6 {
					dx, dy, dist = 0.1, 0.1, math.Sqrt2/10
				}
				force := k * k / dist
				fx := dx / dist * force
				fy := dy / dist * force
				disp[a] = model.Position{X: disp[a].X + fx, Y: disp[a].Y + fy}
				disp[b] = model.Position{X: disp[b].X - fx, Y: disp[b].Y - fy}
			}
		}

		// Attraction along edges.
		for _, conn := range internal {
			if conn.IsSelfLoop() {
				continue
			}
			a, b := conn.SourceInstanceID, conn.TargetInstanceID
			dx := pos[a].X - pos[b].X
			dy := pos[a].Y - pos[b].Y
			dist := math.Hypot(dx, dy)
			if dist < 1e-6 {
				continue
			}
			force := dist * dist / k
			fx := dx / dist * force
			fy := dy / dist * force
			disp[a] = model.Position{X: disp[a].X - fx, Y: disp[a].Y - fy}
			disp[b] = model.Position{X: disp[b].X + fx, Y: disp[b].Y + fy}
		}

		// Linearly decaying temperature caps displacement (simulated
		// annealing); the anisotropic bias widens the final shape.
		temp := side / 10 * (1 - float64(iter)/float64(iterations))
		for _, id := range c.NodeIDs {
			d := disp[id]
			d.X *= 1.3
			d.Y *= 0.7
			mag := math.Hypot(d.X, d.Y)
			if mag < 1e-9 {
				continue
			}
			limited := math.Min(mag, temp)
			pos[id] = model.Position{
				X: pos[id].X + d.X/mag*limited,
				Y: pos[id].Y + d.Y/mag*limited,
			}
		}
	}

	for id, p := range pos {
		res.Positions[id] = p
	}
	res.Edges = neutralHints(internal)
	res.Bounds = boundsFor(res.Positions, ctx)
	return res
}
