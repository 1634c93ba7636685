package analysis

import "github.com/structviz/structviz/pkg/model"

// Group is a strongly connected component discovered by Tarjan's algorithm,
// classified by the shape of its internal edges.
type Group struct {
	IDs               []string
	Pattern           model.Pattern
	StronglyConnected bool
}

// Contains reports whether the group includes the given instance id.
func (g Group) Contains(id string) bool {
	for _, v := range g.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// FindStronglyConnectedComponents runs Tarjan's algorithm (single DFS pass,
// O(V+E)) over the instance graph. A component is retained only when it has
// more than one node, or exactly one node with a self-loop - a lone
// unconnected node is not a cycle. Retained components are classified
// immediately via classifyCircularPattern.
//
// Traversal follows instance input order, so results are deterministic for a
// given workspace.
func FindStronglyConnectedComponents(instances []model.StructInstance, connections []model.PointerConnection) []Group {
	known := make(map[string]bool, len(instances))
	for _, inst := range instances {
		known[inst.ID] = true
	}

	selfLoops := make(map[string]bool)
	for _, c := range connections {
		if c.IsSelfLoop() && known[c.SourceInstanceID] {
			selfLoops[c.SourceInstanceID] = true
		}
	}

	var (
		index    int
		indices  = make(map[string]int, len(instances))
		lowlinks = make(map[string]int, len(instances))
		onStack  = make(map[string]bool, len(instances))
		stack    []string
		groups   []Group
	)

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlinks[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range orderedNeighbors(v, connections, known) {
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlinks[w] < lowlinks[v] {
					lowlinks[v] = lowlinks[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlinks[v] {
					lowlinks[v] = indices[w]
				}
			}
		}

		if lowlinks[v] != indices[v] {
			return
		}

		// v is the root of a component: pop it off the stack.
		var ids []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			ids = append(ids, w)
			if w == v {
				break
			}
		}

		if len(ids) == 1 && !selfLoops[ids[0]] {
			return
		}
		groups = append(groups, Group{
			IDs:               ids,
			Pattern:           classifyCircularPattern(ids, connections),
			StronglyConnected: true,
		})
	}

	for _, inst := range instances {
		if _, seen := indices[inst.ID]; !seen {
			strongconnect(inst.ID)
		}
	}

	return groups
}

// classifyCircularPattern labels an SCC by the shape a reader would associate
// with a canonical data structure. Decision order:
//
//  1. single node → self-loop
//  2. two nodes with edges both ways → bidirectional pair
//  3. every node has internal out-degree exactly 1 and the internal edge
//     count equals the node count → circular list (a simple ring)
//  4. anything else → general cycle
func classifyCircularPattern(ids []string, connections []model.PointerConnection) model.Pattern {
	if len(ids) == 1 {
		return model.PatternSelfLoop
	}

	member := make(map[string]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}

	if len(ids) == 2 {
		a, b := ids[0], ids[1]
		var ab, ba bool
		for _, c := range connections {
			if c.SourceInstanceID == a && c.TargetInstanceID == b {
				ab = true
			}
			if c.SourceInstanceID == b && c.TargetInstanceID == a {
				ba = true
			}
		}
		if ab && ba {
			return model.PatternBidirectional
		}
	}

	// Count internal edges, deduplicating multi-edges between the same pair.
	outDegree := make(map[string]int, len(ids))
	seen := make(map[[2]string]bool)
	edgeCount := 0
	for _, c := range connections {
		if !member[c.SourceInstanceID] || !member[c.TargetInstanceID] {
			continue
		}
		key := [2]string{c.SourceInstanceID, c.TargetInstanceID}
		if seen[key] {
			continue
		}
		seen[key] = true
		outDegree[c.SourceInstanceID]++
		edgeCount++
	}

	if edgeCount == len(ids) {
		ring := true
		for _, id := range ids {
			if outDegree[id] != 1 {
				ring = false
				break
			}
		}
		if ring {
			return model.PatternCircularList
		}
	}

	return model.PatternGeneralCycle
}
