// Package classify assigns a structural pattern to a connected acyclic region
// of the instance graph.
//
// Detection is purely structural: out-degree bounds, root uniqueness,
// edge/node ratios, and struct field name hints. Field values are never
// inspected, which is why e.g. a heap is indistinguishable from a binary tree
// here.
package classify

import "github.com/structviz/structviz/pkg/model"

// acceptThreshold is the minimum confidence a detector must exceed for its
// pattern to be chosen. Strictly exceeded: a detection at exactly the
// threshold (the heap detector) never wins.
const acceptThreshold = 0.5

// Component is the input to classification: one connected region with its
// internal connections and the struct definitions backing its members.
type Component struct {
	NodeIDs     []string
	Instances   []model.StructInstance
	Connections []model.PointerConnection
	Definitions map[string]model.StructDefinition
}

// Detection is the verdict of a single detector.
type Detection struct {
	Matches    bool
	Confidence float64
}

// detector pairs a pattern with its structural predicate. Detectors run in
// descending priority order; more constrained shapes must be checked before
// looser ones so a linked list is not reported as a tree, nor a tree as a DAG.
type detector struct {
	pattern  model.Pattern
	priority int
	detect   func(c Component, s stats) Detection
}

// Field-name hints (grid, hash table, skip list) outrank pure shape tests:
// a chain of HashTable instances should read as a hash table, not a list.
// Among shape tests the more constrained come first.
var detectors = []detector{
	{model.PatternGrid, 110, detectGrid},
	{model.PatternHashTable, 105, detectHashTable},
	{model.PatternSkipList, 100, detectSkipList},
	{model.PatternLinkedList, 95, detectLinkedList},
	{model.PatternBinaryTree, 90, detectBinaryTree},
	{model.PatternDoublyLinkedList, 85, detectDoublyLinkedList},
	{model.PatternTree, 60, detectTree},
	{model.PatternHeap, 55, detectHeap},
	{model.PatternDAG, 50, detectDAG},
}

// Classify runs the detector table over the component and returns the first
// pattern whose detector matches with confidence above the threshold. When no
// detector fires, the component is a general graph and gets the force-directed
// fallback.
func Classify(c Component) model.Pattern {
	if len(c.NodeIDs) == 0 {
		return model.PatternGeneralGraph
	}
	s := computeStats(c)
	for _, d := range detectors {
		if r := d.detect(c, s); r.Matches && r.Confidence > acceptThreshold {
			return d.pattern
		}
	}
	return model.PatternGeneralGraph
}

// =============================================================================
// Structural Stats
// =============================================================================

// stats caches the degree bookkeeping shared by all detectors.
type stats struct {
	nodeCount int
	edgeCount int // internal edges, multi-edges between the same pair collapsed
	outDegree map[string]int
	inDegree  map[string]int
	// edges holds the collapsed internal edge set for reverse-edge checks.
	edges map[[2]string]bool
}

func computeStats(c Component) stats {
	member := make(map[string]bool, len(c.NodeIDs))
	for _, id := range c.NodeIDs {
		member[id] = true
	}

	s := stats{
		nodeCount: len(c.NodeIDs),
		outDegree: make(map[string]int, len(c.NodeIDs)),
		inDegree:  make(map[string]int, len(c.NodeIDs)),
		edges:     make(map[[2]string]bool),
	}
	for _, conn := range c.Connections {
		if !member[conn.SourceInstanceID] || !member[conn.TargetInstanceID] {
			continue
		}
		key := [2]string{conn.SourceInstanceID, conn.TargetInstanceID}
		if s.edges[key] {
			continue
		}
		s.edges[key] = true
		s.edgeCount++
		s.outDegree[conn.SourceInstanceID]++
		s.inDegree[conn.TargetInstanceID]++
	}
	return s
}

func rootCountOver(ids []string, s stats) int {
	roots := 0
	for _, id := range ids {
		if s.inDegree[id] == 0 {
			roots++
		}
	}
	return roots
}

func maxOutDegreeOver(ids []string, s stats) int {
	maxOut := 0
	for _, id := range ids {
		if s.outDegree[id] > maxOut {
			maxOut = s.outDegree[id]
		}
	}
	return maxOut
}
