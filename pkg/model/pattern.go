package model

// Pattern is a structural classification for a connected region of the
// instance graph. Circular patterns come out of SCC analysis; the rest come
// out of the acyclic classifier.
type Pattern string

// Circular patterns, assigned to strongly connected components.
const (
	PatternSelfLoop      Pattern = "self_loop"
	PatternBidirectional Pattern = "bidirectional"
	PatternCircularList  Pattern = "circular_list"
	PatternGeneralCycle  Pattern = "general_cycle"
)

// Acyclic patterns, assigned by the shape classifier.
const (
	PatternBinaryTree       Pattern = "binary_tree"
	PatternTree             Pattern = "tree"
	PatternLinkedList       Pattern = "linked_list"
	PatternDoublyLinkedList Pattern = "doubly_linked_list"
	PatternSkipList         Pattern = "skip_list"
	PatternHeap             Pattern = "heap"
	PatternDAG              Pattern = "dag"
	PatternHashTable        Pattern = "hash_table"
	PatternGrid             Pattern = "grid"
	PatternGeneralGraph     Pattern = "general_graph"
	PatternIsolated         Pattern = "isolated"
)

// IsCircular reports whether the pattern describes a strongly connected shape.
func (p Pattern) IsCircular() bool {
	switch p {
	case PatternSelfLoop, PatternBidirectional, PatternCircularList, PatternGeneralCycle:
		return true
	}
	return false
}
