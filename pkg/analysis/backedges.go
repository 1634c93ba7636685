package analysis

import "github.com/structviz/structviz/pkg/model"

// FindBackEdges runs a DFS with a recursion-stack set and returns every
// connection whose target is currently on the stack. These are the edges that
// close cycles.
//
// Which edge of a multi-edge cycle gets flagged depends on traversal order,
// which follows input order. The contract is "some valid cycle-closing edge
// set", not a unique canonical one, so callers must not base correctness
// decisions on the specific edges returned.
func FindBackEdges(instances []model.StructInstance, connections []model.PointerConnection) []model.PointerConnection {
	known := make(map[string]bool, len(instances))
	for _, inst := range instances {
		known[inst.ID] = true
	}

	// Outgoing connections per node, in input order. Back edges are reported
	// as the connections themselves, so this walks connections rather than
	// the deduplicated adjacency sets.
	outgoing := make(map[string][]model.PointerConnection)
	for _, c := range connections {
		if !known[c.SourceInstanceID] || !known[c.TargetInstanceID] {
			continue
		}
		outgoing[c.SourceInstanceID] = append(outgoing[c.SourceInstanceID], c)
	}

	visited := make(map[string]bool, len(instances))
	inStack := make(map[string]bool, len(instances))
	var backEdges []model.PointerConnection

	var dfs func(id string)
	dfs = func(id string) {
		visited[id] = true
		inStack[id] = true
		for _, c := range outgoing[id] {
			switch {
			case inStack[c.TargetInstanceID]:
				backEdges = append(backEdges, c)
			case !visited[c.TargetInstanceID]:
				dfs(c.TargetInstanceID)
			}
		}
		inStack[id] = false
	}

	for _, inst := range instances {
		if !visited[inst.ID] {
			dfs(inst.ID)
		}
	}

	return backEdges
}
