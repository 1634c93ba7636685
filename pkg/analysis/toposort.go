package analysis

import "github.com/structviz/structviz/pkg/model"

// TopologicalSort orders the instance graph with Kahn's algorithm (in-degree
// counting plus a queue of zero-in-degree nodes).
//
// When the graph contains a cycle, the nodes inside it never reach zero
// in-degree: hasCycle is true and the returned slice is the acyclic prefix
// only. Analyze uses this as the cheap cycle-existence test before the more
// expensive SCC decomposition.
func TopologicalSort(instances []model.StructInstance, connections []model.PointerConnection) (sorted []string, hasCycle bool) {
	adj := BuildAdjacency(instances, connections)

	inDegree := make(map[string]int, len(instances))
	for _, inst := range instances {
		inDegree[inst.ID] = 0
	}
	for _, targets := range adj {
		for t := range targets {
			inDegree[t]++
		}
	}

	var queue []string
	for _, inst := range instances {
		if inDegree[inst.ID] == 0 {
			queue = append(queue, inst.ID)
		}
	}

	sorted = make([]string, 0, len(instances))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		sorted = append(sorted, curr)

		for _, inst := range instances {
			if !adj[curr][inst.ID] {
				continue
			}
			inDegree[inst.ID]--
			if inDegree[inst.ID] == 0 {
				queue = append(queue, inst.ID)
			}
		}
	}

	return sorted, len(sorted) < len(instances)
}
