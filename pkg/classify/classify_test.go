package classify

import (
	"testing"

	"github.com/structviz/structviz/pkg/model"
)

// buildComponent assembles a Component from id/edge shorthand. All instances
// share the given struct name.
func buildComponent(structName string, ids []string, edges [][2]string, defs ...model.StructDefinition) Component {
	c := Component{
		NodeIDs:     ids,
		Definitions: model.DefinitionIndex(defs),
	}
	for _, id := range ids {
		c.Instances = append(c.Instances, model.StructInstance{ID: id, StructName: structName})
	}
	for _, e := range edges {
		c.Connections = append(c.Connections, model.PointerConnection{
			ID:               e[0] + "->" + e[1],
			SourceInstanceID: e[0],
			TargetInstanceID: e[1],
			SourceFieldName:  "next",
		})
	}
	return c
}

var nodeDef = model.StructDefinition{
	Name: "Node",
	Fields: []model.FieldDefinition{
		{Name: "value", Type: "int"},
		{Name: "next", Type: "Node", IsPointer: true},
	},
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		comp Component
		want model.Pattern
	}{
		{
			name: "Chain",
			comp: buildComponent("Node",
				[]string{"a", "b", "c"},
				[][2]string{{"a", "b"}, {"b", "c"}},
				nodeDef),
			want: model.PatternLinkedList,
		},
		{
			name: "BinaryTree",
			comp: buildComponent("TreeNode",
				[]string{"root", "l", "r"},
				[][2]string{{"root", "l"}, {"root", "r"}},
				model.StructDefinition{Name: "TreeNode", Fields: []model.FieldDefinition{
					{Name: "left", Type: "TreeNode", IsPointer: true},
					{Name: "right", Type: "TreeNode", IsPointer: true},
				}}),
			want: model.PatternBinaryTree,
		},
		{
			name: "TernaryTree",
			comp: buildComponent("Node",
				[]string{"root", "a", "b", "c"},
				[][2]string{{"root", "a"}, {"root", "b"}, {"root", "c"}},
				nodeDef),
			want: model.PatternTree,
		},
		{
			name: "DiamondDAG",
			comp: buildComponent("Node",
				[]string{"a", "b", "c", "d"},
				[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
				nodeDef),
			want: model.PatternDAG,
		},
		{
			name: "GridByFieldNames",
			comp: buildComponent("Cell",
				[]string{"a", "b", "c", "d"},
				[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
				model.StructDefinition{Name: "Cell", Fields: []model.FieldDefinition{
					{Name: "up", Type: "Cell", IsPointer: true},
					{Name: "down", Type: "Cell", IsPointer: true},
					{Name: "left", Type: "Cell", IsPointer: true},
					{Name: "right", Type: "Cell", IsPointer: true},
				}}),
			want: model.PatternGrid,
		},
		{
			name: "HashTableByBucketsField",
			comp: buildComponent("HashTable",
				[]string{"t", "e1"},
				[][2]string{{"t", "e1"}},
				model.StructDefinition{Name: "HashTable", Fields: []model.FieldDefinition{
					{Name: "buckets", Type: "Entry", IsPointer: true, IsArray: true, ArraySize: 8},
				}}),
			want: model.PatternHashTable,
		},
		{
			name: "SkipListByLevelAndFanout",
			comp: buildComponent("SkipNode",
				[]string{"a", "b", "c", "d"},
				[][2]string{
					{"a", "b"}, {"a", "c"}, {"a", "d"},
					{"b", "c"}, {"b", "d"}, {"c", "d"}, {"d", "a"},
				},
				model.StructDefinition{Name: "SkipNode", Fields: []model.FieldDefinition{
					{Name: "level", Type: "int"},
					{Name: "forward", Type: "SkipNode", IsPointer: true, IsArray: true, ArraySize: 4},
				}}),
			want: model.PatternSkipList,
		},
		{
			name: "SingleNodeFallsBack",
			comp: buildComponent("Node", []string{"a"}, nil, nodeDef),
			want: model.PatternGeneralGraph,
		},
		{
			name: "Empty",
			comp: Component{},
			want: model.PatternGeneralGraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.comp); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassify_ListBeatsBinaryTree(t *testing.T) {
	// A chain satisfies the binary-tree predicate too (out-degree <= 2,
	// unique root, n-1 edges); priority must pick the more specific list.
	comp := buildComponent("Node",
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}},
		nodeDef)

	if got := Classify(comp); got != model.PatternLinkedList {
		t.Errorf("Classify() = %s, want %s", got, model.PatternLinkedList)
	}
}

func TestDetectHeap_AtThresholdNeverWins(t *testing.T) {
	comp := buildComponent("Node",
		[]string{"root", "l", "r"},
		[][2]string{{"root", "l"}, {"root", "r"}},
		nodeDef)

	s := computeStats(comp)
	r := detectHeap(comp, s)
	if !r.Matches {
		t.Fatal("heap detector did not match a binary-tree shape")
	}
	if r.Confidence != 0.5 {
		t.Errorf("heap confidence = %v, want 0.5", r.Confidence)
	}
	// At exactly the threshold the detector can never be selected.
	if got := Classify(comp); got == model.PatternHeap {
		t.Error("heap pattern selected despite threshold-equal confidence")
	}
}

func TestDetectDoublyLinkedList_ReverseEdgeRatio(t *testing.T) {
	comp := buildComponent("DNode",
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"b", "c"}, {"c", "b"}},
		nodeDef)

	s := computeStats(comp)
	if r := detectDoublyLinkedList(comp, s); !r.Matches {
		t.Error("fully mirrored chain not detected as doubly linked list")
	}

	oneWay := buildComponent("Node",
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}},
		nodeDef)
	s = computeStats(oneWay)
	if r := detectDoublyLinkedList(oneWay, s); r.Matches {
		t.Error("one-way chain detected as doubly linked list")
	}
}
