package classify

import (
	"github.com/structviz/structviz/pkg/analysis"
	"github.com/structviz/structviz/pkg/model"
)

// =============================================================================
// Shape Detectors
// =============================================================================

// detectLinkedList: every node out-degree <= 1, exactly one head, n-1 edges.
func detectLinkedList(c Component, s stats) Detection {
	if s.nodeCount < 2 || s.edgeCount != s.nodeCount-1 {
		return Detection{}
	}
	if maxOutDegreeOver(c.NodeIDs, s) > 1 {
		return Detection{}
	}
	if rootCountOver(c.NodeIDs, s) != 1 {
		return Detection{}
	}
	return Detection{Matches: true, Confidence: 0.95}
}

// detectBinaryTree: tree shape (n-1 edges), out-degree <= 2, unique root.
func detectBinaryTree(c Component, s stats) Detection {
	if s.nodeCount < 2 || s.edgeCount != s.nodeCount-1 {
		return Detection{}
	}
	if maxOutDegreeOver(c.NodeIDs, s) > 2 {
		return Detection{}
	}
	if rootCountOver(c.NodeIDs, s) != 1 {
		return Detection{}
	}
	return Detection{Matches: true, Confidence: 0.9}
}

// detectDoublyLinkedList: at least 70% of directed edges have a matching
// reverse edge between the same pair.
func detectDoublyLinkedList(c Component, s stats) Detection {
	if s.edgeCount == 0 {
		return Detection{}
	}
	reversed := 0
	for e := range s.edges {
		if s.edges[[2]string{e[1], e[0]}] {
			reversed++
		}
	}
	ratio := float64(reversed) / float64(s.edgeCount)
	if ratio < 0.7 {
		return Detection{}
	}
	return Detection{Matches: true, Confidence: 0.8}
}

// detectGrid: some member struct declares all four directional pointer
// fields up/down/left/right.
func detectGrid(c Component, s stats) Detection {
	for _, inst := range c.Instances {
		def, ok := c.Definitions[inst.StructName]
		if !ok {
			continue
		}
		directions := map[string]bool{}
		for _, f := range def.Fields {
			if !f.IsPointer {
				continue
			}
			switch f.Name {
			case "up", "down", "left", "right":
				directions[f.Name] = true
			}
		}
		if len(directions) == 4 {
			return Detection{Matches: true, Confidence: 0.9}
		}
	}
	return Detection{}
}

// detectHashTable: some member struct declares a pointer-array field
// literally named "buckets", "table", or "chains".
func detectHashTable(c Component, s stats) Detection {
	for _, inst := range c.Instances {
		def, ok := c.Definitions[inst.StructName]
		if !ok {
			continue
		}
		for _, f := range def.Fields {
			if !f.IsPointer || !f.IsArray {
				continue
			}
			switch f.Name {
			case "buckets", "table", "chains":
				return Detection{Matches: true, Confidence: 0.85}
			}
		}
	}
	return Detection{}
}

// detectSkipList: at least 3 nodes, a "level"/"height" field on some member
// struct, and average out-degree above 1.5 - a proxy for multi-level forward
// pointer arrays.
func detectSkipList(c Component, s stats) Detection {
	if s.nodeCount < 3 {
		return Detection{}
	}
	hasLevelField := false
	for _, inst := range c.Instances {
		def, ok := c.Definitions[inst.StructName]
		if !ok {
			continue
		}
		if def.HasField("level") || def.HasField("height") {
			hasLevelField = true
			break
		}
	}
	if !hasLevelField {
		return Detection{}
	}
	avgOut := float64(s.edgeCount) / float64(s.nodeCount)
	if avgOut <= 1.5 {
		return Detection{}
	}
	return Detection{Matches: true, Confidence: 0.75}
}

// detectTree: n-1 edges, unique root, every non-root with in-degree exactly 1.
func detectTree(c Component, s stats) Detection {
	if s.nodeCount < 2 || s.edgeCount != s.nodeCount-1 {
		return Detection{}
	}
	roots := 0
	for _, id := range c.NodeIDs {
		switch s.inDegree[id] {
		case 0:
			roots++
		case 1:
			// interior or leaf
		default:
			return Detection{}
		}
	}
	if roots != 1 {
		return Detection{}
	}
	return Detection{Matches: true, Confidence: 0.85}
}

// detectHeap reduces to the binary-tree shape test. Pointer topology alone
// cannot confirm heap ordering - that would need field values - so the match
// is reported at 0.5 confidence, which sits exactly at the acceptance
// threshold and therefore never wins over the binary-tree detector. Known
// soft spot, kept as-is deliberately.
func detectHeap(c Component, s stats) Detection {
	r := detectBinaryTree(c, s)
	if !r.Matches {
		return Detection{}
	}
	return Detection{Matches: true, Confidence: 0.5}
}

// detectDAG: no internal cycles and not itself tree-shaped. The edge/node
// ratio check distinguishes a DAG with shared descendants from a plain tree.
func detectDAG(c Component, s stats) Detection {
	if s.edgeCount == s.nodeCount-1 {
		return Detection{}
	}
	member := make(map[string]bool, len(c.NodeIDs))
	for _, id := range c.NodeIDs {
		member[id] = true
	}
	var instances []model.StructInstance
	for _, inst := range c.Instances {
		if member[inst.ID] {
			instances = append(instances, inst)
		}
	}
	if m := analysis.Analyze(instances, c.Connections); m.HasCycles {
		return Detection{}
	}
	return Detection{Matches: true, Confidence: 0.8}
}
