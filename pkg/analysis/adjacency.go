package analysis

import "github.com/structviz/structviz/pkg/model"

// Adjacency is a directed adjacency view of the instance graph.
// Every known instance has an entry, even with no outgoing edges.
// Neighbor sets deduplicate multi-edges.
type Adjacency map[string]map[string]bool

// BuildAdjacency constructs the directed adjacency view. Connections whose
// endpoints are not in the instance list are silently skipped: the graph is
// allowed to be transiently inconsistent during interactive editing.
// Self-loops are kept.
func BuildAdjacency(instances []model.StructInstance, connections []model.PointerConnection) Adjacency {
	adj := make(Adjacency, len(instances))
	for _, inst := range instances {
		adj[inst.ID] = make(map[string]bool)
	}
	for _, c := range connections {
		if _, ok := adj[c.SourceInstanceID]; !ok {
			continue
		}
		if _, ok := adj[c.TargetInstanceID]; !ok {
			continue
		}
		adj[c.SourceInstanceID][c.TargetInstanceID] = true
	}
	return adj
}

// BuildUndirectedAdjacency constructs an undirected view of the same graph,
// used to find connected regions regardless of edge direction.
func BuildUndirectedAdjacency(instances []model.StructInstance, connections []model.PointerConnection) Adjacency {
	adj := make(Adjacency, len(instances))
	for _, inst := range instances {
		adj[inst.ID] = make(map[string]bool)
	}
	for _, c := range connections {
		if _, ok := adj[c.SourceInstanceID]; !ok {
			continue
		}
		if _, ok := adj[c.TargetInstanceID]; !ok {
			continue
		}
		adj[c.SourceInstanceID][c.TargetInstanceID] = true
		adj[c.TargetInstanceID][c.SourceInstanceID] = true
	}
	return adj
}

// orderedNeighbors returns a node's neighbors in first-seen connection order.
// Tarjan and the back-edge DFS walk connections rather than the deduplicated
// sets so traversal order stays deterministic over the input.
func orderedNeighbors(nodeID string, connections []model.PointerConnection, known map[string]bool) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range connections {
		if c.SourceInstanceID != nodeID {
			continue
		}
		if !known[c.TargetInstanceID] {
			continue
		}
		if seen[c.TargetInstanceID] {
			continue
		}
		seen[c.TargetInstanceID] = true
		out = append(out, c.TargetInstanceID)
	}
	return out
}
