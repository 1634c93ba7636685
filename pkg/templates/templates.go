// Package templates provides builtin starter workspaces.
//
// Each template is a small, fully wired workspace demonstrating one classic
// pointer-based data structure. Templates are the fastest way to get a
// non-trivial diagram on screen: instantiate one, run the layout, and every
// strategy in the engine has something to show.
//
// Instance and connection ids are freshly generated UUIDs on every
// instantiation, so the same template can be added to a workspace repeatedly
// without id collisions.
package templates

import (
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/structviz/structviz/pkg/errors"
	"github.com/structviz/structviz/pkg/model"
)

// Template describes one builtin starter workspace.
type Template struct {
	// ID is the stable identifier used on the CLI and API.
	ID string

	// Title is the human-readable name shown in pickers.
	Title string

	// Description is a one-line summary of what the template demonstrates.
	Description string

	build func() model.Workspace
}

// registry holds the builtin templates keyed by ID.
var registry = map[string]Template{
	"linked-list": {
		ID:          "linked-list",
		Title:       "Linked List",
		Description: "Four nodes chained through next pointers",
		build:       buildLinkedList,
	},
	"doubly-linked-list": {
		ID:          "doubly-linked-list",
		Title:       "Doubly Linked List",
		Description: "Three nodes with next and prev pointers",
		build:       buildDoublyLinkedList,
	},
	"binary-tree": {
		ID:          "binary-tree",
		Title:       "Binary Tree",
		Description: "Seven-node complete tree with left/right pointers",
		build:       buildBinaryTree,
	},
	"ring-buffer": {
		ID:          "ring-buffer",
		Title:       "Ring Buffer",
		Description: "Five nodes forming a circular list",
		build:       buildRingBuffer,
	},
	"cyclic-graph": {
		ID:          "cyclic-graph",
		Title:       "Cyclic Graph",
		Description: "A tangled cycle with a chord, exercising the general-cycle layout",
		build:       buildCyclicGraph,
	},
	"hash-table": {
		ID:          "hash-table",
		Title:       "Hash Table",
		Description: "A bucket array with short collision chains",
		build:       buildHashTable,
	},
}

// List returns all builtin templates sorted by ID.
func List() []Template {
	out := make([]Template, 0, len(registry))
	for _, t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the template with the given ID.
func Get(id string) (Template, error) {
	t, ok := registry[id]
	if !ok {
		return Template{}, errors.New(errors.ErrCodeTemplateNotFound, "template %q not found", id)
	}
	return t, nil
}

// Instantiate builds a fresh workspace from the template. Ids are new UUIDs
// on every call.
func (t Template) Instantiate() model.Workspace {
	ws := t.build()
	if ws.Name == "" {
		ws.Name = t.ID
	}
	return ws
}

// =============================================================================
// Builders
//
// Builders assemble instances with placeholder ids ("n0", "n1", ...) and then
// remap everything to UUIDs in one pass, which keeps the wiring readable.
// =============================================================================

func remapIDs(ws model.Workspace) model.Workspace {
	fresh := make(map[string]string, len(ws.Instances))
	for i := range ws.Instances {
		id := uuid.NewString()
		fresh[ws.Instances[i].ID] = id
		ws.Instances[i].ID = id
	}
	for i := range ws.Connections {
		ws.Connections[i].ID = uuid.NewString()
		ws.Connections[i].SourceInstanceID = fresh[ws.Connections[i].SourceInstanceID]
		ws.Connections[i].TargetInstanceID = fresh[ws.Connections[i].TargetInstanceID]
	}
	return ws
}

func buildLinkedList() model.Workspace {
	nodeDef := model.StructDefinition{
		Name: "ListNode",
		Fields: []model.FieldDefinition{
			{Name: "value", Type: "int"},
			{Name: "next", Type: "ListNode", IsPointer: true},
		},
	}

	instances := make([]model.StructInstance, 4)
	names := []string{"head", "second", "third", "tail"}
	for i := range instances {
		instances[i] = model.StructInstance{
			ID:           placeholder(i),
			StructName:   "ListNode",
			InstanceName: names[i],
			FieldValues:  map[string]any{"value": (i + 1) * 10},
		}
	}

	var conns []model.PointerConnection
	for i := 0; i < len(instances)-1; i++ {
		conns = append(conns, conn(i, i+1, "next"))
	}

	return remapIDs(model.Workspace{
		Structs:     []model.StructDefinition{nodeDef},
		Instances:   instances,
		Connections: conns,
	})
}

func buildDoublyLinkedList() model.Workspace {
	nodeDef := model.StructDefinition{
		Name: "DListNode",
		Fields: []model.FieldDefinition{
			{Name: "value", Type: "int"},
			{Name: "next", Type: "DListNode", IsPointer: true},
			{Name: "prev", Type: "DListNode", IsPointer: true},
		},
	}

	instances := make([]model.StructInstance, 3)
	names := []string{"head", "middle", "tail"}
	for i := range instances {
		instances[i] = model.StructInstance{
			ID:           placeholder(i),
			StructName:   "DListNode",
			InstanceName: names[i],
			FieldValues:  map[string]any{"value": i + 1},
		}
	}

	var conns []model.PointerConnection
	for i := 0; i < len(instances)-1; i++ {
		conns = append(conns, conn(i, i+1, "next"))
		conns = append(conns, conn(i+1, i, "prev"))
	}

	return remapIDs(model.Workspace{
		Structs:     []model.StructDefinition{nodeDef},
		Instances:   instances,
		Connections: conns,
	})
}

func buildBinaryTree() model.Workspace {
	nodeDef := model.StructDefinition{
		Name: "TreeNode",
		Fields: []model.FieldDefinition{
			{Name: "key", Type: "int"},
			{Name: "left", Type: "TreeNode", IsPointer: true},
			{Name: "right", Type: "TreeNode", IsPointer: true},
		},
	}

	keys := []int{50, 25, 75, 10, 40, 60, 90}
	instances := make([]model.StructInstance, len(keys))
	for i, key := range keys {
		instances[i] = model.StructInstance{
			ID:           placeholder(i),
			StructName:   "TreeNode",
			InstanceName: nodeName(i),
			FieldValues:  map[string]any{"key": key},
		}
	}

	// Complete tree: node i has children 2i+1 and 2i+2.
	var conns []model.PointerConnection
	for i := range instances {
		if left := 2*i + 1; left < len(instances) {
			conns = append(conns, conn(i, left, "left"))
		}
		if right := 2*i + 2; right < len(instances) {
			conns = append(conns, conn(i, right, "right"))
		}
	}

	return remapIDs(model.Workspace{
		Structs:     []model.StructDefinition{nodeDef},
		Instances:   instances,
		Connections: conns,
	})
}

func buildRingBuffer() model.Workspace {
	nodeDef := model.StructDefinition{
		Name: "RingSlot",
		Fields: []model.FieldDefinition{
			{Name: "data", Type: "int"},
			{Name: "next", Type: "RingSlot", IsPointer: true},
		},
	}

	const n = 5
	instances := make([]model.StructInstance, n)
	for i := range instances {
		instances[i] = model.StructInstance{
			ID:           placeholder(i),
			StructName:   "RingSlot",
			InstanceName: nodeName(i),
			FieldValues:  map[string]any{"data": i},
		}
	}

	conns := make([]model.PointerConnection, n)
	for i := range instances {
		conns[i] = conn(i, (i+1)%n, "next")
	}

	return remapIDs(model.Workspace{
		Structs:     []model.StructDefinition{nodeDef},
		Instances:   instances,
		Connections: conns,
	})
}

func buildCyclicGraph() model.Workspace {
	nodeDef := model.StructDefinition{
		Name: "GraphNode",
		Fields: []model.FieldDefinition{
			{Name: "label", Type: "int"},
			{Name: "next", Type: "GraphNode", IsPointer: true},
			{Name: "alt", Type: "GraphNode", IsPointer: true},
		},
	}

	const n = 4
	instances := make([]model.StructInstance, n)
	for i := range instances {
		instances[i] = model.StructInstance{
			ID:           placeholder(i),
			StructName:   "GraphNode",
			InstanceName: nodeName(i),
			FieldValues:  map[string]any{"label": i},
		}
	}

	// Ring plus a chord, so the SCC classifies as a general cycle.
	conns := []model.PointerConnection{
		conn(0, 1, "next"),
		conn(1, 2, "next"),
		conn(2, 3, "next"),
		conn(3, 0, "next"),
		conn(0, 2, "alt"),
	}

	return remapIDs(model.Workspace{
		Structs:     []model.StructDefinition{nodeDef},
		Instances:   instances,
		Connections: conns,
	})
}

func buildHashTable() model.Workspace {
	tableDef := model.StructDefinition{
		Name: "HashTable",
		Fields: []model.FieldDefinition{
			{Name: "size", Type: "int"},
			{Name: "buckets", Type: "Entry", IsPointer: true, IsArray: true, ArraySize: 3},
		},
	}
	entryDef := model.StructDefinition{
		Name: "Entry",
		Fields: []model.FieldDefinition{
			{Name: "key", Type: "int"},
			{Name: "next", Type: "Entry", IsPointer: true},
		},
	}

	instances := []model.StructInstance{
		{ID: placeholder(0), StructName: "HashTable", InstanceName: "table", FieldValues: map[string]any{"size": 3}},
		{ID: placeholder(1), StructName: "Entry", InstanceName: "e17", FieldValues: map[string]any{"key": 17}},
		{ID: placeholder(2), StructName: "Entry", InstanceName: "e4", FieldValues: map[string]any{"key": 4}},
		{ID: placeholder(3), StructName: "Entry", InstanceName: "e21", FieldValues: map[string]any{"key": 21}},
		{ID: placeholder(4), StructName: "Entry", InstanceName: "e9", FieldValues: map[string]any{"key": 9}},
	}

	conns := []model.PointerConnection{
		conn(0, 1, "buckets[0]"),
		conn(0, 2, "buckets[1]"),
		conn(0, 4, "buckets[2]"),
		conn(1, 3, "next"), // collision chain: 17 -> 21
	}

	return remapIDs(model.Workspace{
		Structs:     []model.StructDefinition{tableDef, entryDef},
		Instances:   instances,
		Connections: conns,
	})
}

func placeholder(i int) string {
	return "n" + strconv.Itoa(i)
}

func nodeName(i int) string {
	return "node" + strconv.Itoa(i)
}

func conn(from, to int, field string) model.PointerConnection {
	return model.PointerConnection{
		ID:               "c", // replaced by remapIDs
		SourceInstanceID: placeholder(from),
		TargetInstanceID: placeholder(to),
		SourceFieldName:  field,
	}
}
