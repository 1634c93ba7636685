package layout

import (
	"github.com/structviz/structviz/pkg/analysis"
	"github.com/structviz/structviz/pkg/classify"
	"github.com/structviz/structviz/pkg/model"
)

// =============================================================================
// Composition
// =============================================================================

// Combine merges per-component layouts into one global coordinate space by
// packing components left to right with a fixed gap. The first layout keeps
// its coordinates; each subsequent one is shifted so its bounding box starts
// past the previous component's right edge (and is top-aligned with y=0).
func Combine(results []Result, t Tuning) Result {
	combined := emptyResult()
	if len(results) == 0 {
		return combined
	}

	first := true
	cursorX := 0.0
	for _, r := range results {
		if len(r.Positions) == 0 {
			combined.Edges = append(combined.Edges, r.Edges...)
			continue
		}

		dx, dy := 0.0, 0.0
		if !first {
			dx = cursorX - r.Bounds.MinX
			dy = -r.Bounds.MinY
		}

		for id, p := range r.Positions {
			combined.Positions[id] = model.Position{X: p.X + dx, Y: p.Y + dy}
		}
		combined.Edges = append(combined.Edges, r.Edges...)

		shifted := Bounds{
			MinX: r.Bounds.MinX + dx,
			MinY: r.Bounds.MinY + dy,
			MaxX: r.Bounds.MaxX + dx,
			MaxY: r.Bounds.MaxY + dy,
		}
		if first {
			combined.Bounds = shifted
			first = false
		} else {
			combined.Bounds = unionBounds(combined.Bounds, shifted)
		}
		cursorX = shifted.MaxX + t.ComponentGap
	}

	return combined
}

func unionBounds(a, b Bounds) Bounds {
	if b.MinX < a.MinX {
		a.MinX = b.MinX
	}
	if b.MinY < a.MinY {
		a.MinY = b.MinY
	}
	if b.MaxX > a.MaxX {
		a.MaxX = b.MaxX
	}
	if b.MaxY > a.MaxY {
		a.MaxY = b.MaxY
	}
	return a
}

// =============================================================================
// Smart Layout Orchestration
// =============================================================================

// Smart computes a full arrangement with the default tuning. See SmartWith.
func Smart(instances []model.StructInstance, connections []model.PointerConnection, defs map[string]model.StructDefinition) Result {
	return SmartWith(instances, connections, defs, DefaultTuning())
}

// SmartWith is the single-pass batch layout: analyze the graph, partition the
// instances into strongly connected, acyclic-connected, and isolated
// components, run the matching strategy per component, and compose the
// results into one non-overlapping coordinate space.
//
// The computation is stateless and side-effect-free; callers apply the
// returned position map themselves (see Apply).
func SmartWith(instances []model.StructInstance, connections []model.PointerConnection, defs map[string]model.StructDefinition, t Tuning) Result {
	if len(instances) == 0 {
		return emptyResult()
	}

	ctx := layoutContext{
		instances:   model.InstanceIndex(instances),
		connections: connections,
		defs:        defs,
		heights:     make(map[string]float64, len(instances)),
		tuning:      t,
	}
	for _, inst := range instances {
		fieldCount := 0
		if def, ok := defs[inst.StructName]; ok {
			fieldCount = len(def.Fields)
		}
		ctx.heights[inst.ID] = t.NodeHeight(fieldCount)
	}

	metrics := analysis.Analyze(instances, connections)
	components := partition(instances, connections, defs, metrics)

	results := make([]Result, 0, len(components))
	for _, c := range components {
		results = append(results, layoutComponent(c, ctx))
	}
	return Combine(results, t)
}

// Apply invokes apply once per repositioned instance. This is the only
// side-effecting doorway out of the layout engine.
func Apply(r Result, apply func(id string, pos model.Position)) {
	for id, pos := range r.Positions {
		apply(id, pos)
	}
}

// SmartApply runs Smart and feeds the result through apply.
func SmartApply(instances []model.StructInstance, connections []model.PointerConnection, defs map[string]model.StructDefinition, apply func(id string, pos model.Position)) {
	Apply(Smart(instances, connections, defs), apply)
}

// layoutComponent dispatches a component to its pattern's strategy.
func layoutComponent(c Component, ctx layoutContext) Result {
	switch c.Pattern {
	case model.PatternSelfLoop:
		return layoutSelfLoop(c, ctx)
	case model.PatternBidirectional:
		return layoutBidirectionalPair(c, ctx)
	case model.PatternCircularList:
		return layoutCircularList(c, ctx)
	case model.PatternGeneralCycle:
		return layoutGeneralCycle(c, ctx)
	case model.PatternLinkedList:
		return layoutHorizontalList(c, ctx)
	case model.PatternBinaryTree, model.PatternTree, model.PatternHeap:
		return layoutHorizontalTree(c, ctx)
	case model.PatternDoublyLinkedList:
		return layoutHorizontalList(c, ctx)
	case model.PatternDAG:
		return layoutLayeredDAG(c, ctx)
	case model.PatternGrid, model.PatternHashTable:
		return layoutGrid(c, ctx)
	case model.PatternSkipList:
		return layoutSkipList(c, ctx)
	case model.PatternIsolated:
		return layoutIsolated(c, ctx)
	default:
		return layoutForceDirected(c, ctx)
	}
}

// =============================================================================
// Partitioning
// =============================================================================

// partition splits the instance set into ComponentInfo entries: one per
// retained SCC, one per connected acyclic region (classified by shape), and a
// single trailing component holding every instance with no connections at
// all.
func partition(instances []model.StructInstance, connections []model.PointerConnection, defs map[string]model.StructDefinition, metrics analysis.Metrics) []Component {
	var components []Component

	for _, g := range metrics.SCCs {
		components = append(components, Component{Pattern: g.Pattern, NodeIDs: g.IDs})
	}

	known := make(map[string]bool, len(instances))
	for _, inst := range instances {
		known[inst.ID] = true
	}
	hasConnection := make(map[string]bool)
	for _, c := range connections {
		if known[c.SourceInstanceID] && known[c.TargetInstanceID] {
			hasConnection[c.SourceInstanceID] = true
			hasConnection[c.TargetInstanceID] = true
		}
	}

	undirected := analysis.BuildUndirectedAdjacency(instances, connections)

	// BFS over the undirected view, restricted to acyclic nodes, discovers
	// connected acyclic regions in instance order.
	visited := make(map[string]bool, len(instances))
	for _, inst := range instances {
		id := inst.ID
		if visited[id] || !metrics.AcyclicNodes[id] || !hasConnection[id] {
			continue
		}

		reached := map[string]bool{id: true}
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for next := range undirected[curr] {
				if visited[next] || !metrics.AcyclicNodes[next] {
					continue
				}
				visited[next] = true
				reached[next] = true
				queue = append(queue, next)
			}
		}

		// Region membership comes from the BFS; member order follows instance
		// input order so downstream strategies are deterministic.
		var region []string
		for _, other := range instances {
			if reached[other.ID] {
				region = append(region, other.ID)
			}
		}

		components = append(components, acyclicComponent(region, instances, connections, defs))
	}

	var isolated []string
	for _, inst := range instances {
		if metrics.AcyclicNodes[inst.ID] && !hasConnection[inst.ID] {
			isolated = append(isolated, inst.ID)
		}
	}
	if len(isolated) > 0 {
		components = append(components, Component{Pattern: model.PatternIsolated, NodeIDs: isolated})
	}

	return components
}

// acyclicComponent classifies one connected acyclic region and picks its
// distinguished root: the unique internal in-degree-zero member when there is
// exactly one.
func acyclicComponent(region []string, instances []model.StructInstance, connections []model.PointerConnection, defs map[string]model.StructDefinition) Component {
	member := memberSet(region)

	var regionInstances []model.StructInstance
	for _, inst := range instances {
		if member[inst.ID] {
			regionInstances = append(regionInstances, inst)
		}
	}
	var internal []model.PointerConnection
	inDegree := make(map[string]int, len(region))
	for _, c := range connections {
		if member[c.SourceInstanceID] && member[c.TargetInstanceID] {
			internal = append(internal, c)
			inDegree[c.TargetInstanceID]++
		}
	}

	pattern := classify.Classify(classify.Component{
		NodeIDs:     region,
		Instances:   regionInstances,
		Connections: internal,
		Definitions: defs,
	})

	root := ""
	for _, id := range region {
		if inDegree[id] == 0 {
			if root != "" {
				root = ""
				break
			}
			root = id
		}
	}

	return Component{Pattern: pattern, NodeIDs: region, RootID: root}
}
