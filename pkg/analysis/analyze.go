// Package analysis decomposes the instance/connection graph: strongly
// connected components via Tarjan's algorithm, back-edge detection, Kahn
// topological ordering, and the derived acyclic-node set.
//
// Every function is pure and total over arbitrary finite graphs, including
// disconnected, self-looping, or fully-cyclic input. Connections referencing
// unknown instances are silently skipped; no function raises an error for
// malformed input.
package analysis

import "github.com/structviz/structviz/pkg/model"

// Metrics is the combined result of a full graph analysis.
type Metrics struct {
	// SCCs are the retained strongly connected components, classified.
	SCCs []Group
	// BackEdges are cycle-closing connections found by DFS.
	BackEdges []model.PointerConnection
	// AcyclicNodes holds every instance id not belonging to any retained SCC.
	AcyclicNodes map[string]bool
	// HasCycles is true when at least one SCC was retained.
	HasCycles bool
}

// GroupFor returns the SCC containing the given id, if any.
func (m Metrics) GroupFor(id string) (Group, bool) {
	for _, g := range m.SCCs {
		if g.Contains(id) {
			return g, true
		}
	}
	return Group{}, false
}

// Analyze runs the full decomposition. This is the single entry point the
// layout orchestration calls.
func Analyze(instances []model.StructInstance, connections []model.PointerConnection) Metrics {
	m := Metrics{AcyclicNodes: make(map[string]bool, len(instances))}
	if len(instances) == 0 {
		return m
	}

	// Kahn's sort settles cycle existence without running Tarjan or the DFS
	// back-edge pass. A graph that drains completely has no retained SCC and
	// no back edge, so every instance is acyclic.
	if _, hasCycle := TopologicalSort(instances, connections); !hasCycle {
		for _, inst := range instances {
			m.AcyclicNodes[inst.ID] = true
		}
		return m
	}

	m.SCCs = FindStronglyConnectedComponents(instances, connections)
	m.BackEdges = FindBackEdges(instances, connections)
	m.HasCycles = len(m.SCCs) > 0

	inSCC := make(map[string]bool)
	for _, g := range m.SCCs {
		for _, id := range g.IDs {
			inSCC[id] = true
		}
	}
	for _, inst := range instances {
		if !inSCC[inst.ID] {
			m.AcyclicNodes[inst.ID] = true
		}
	}

	return m
}
