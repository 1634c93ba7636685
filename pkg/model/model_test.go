package model

import (
	"bytes"
	"reflect"
	"testing"
)

func TestBaseFieldName(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"plain field", "next", "next"},
		{"indexed field", "edges[0]", "edges"},
		{"double digit index", "buckets[12]", "buckets"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := PointerConnection{SourceFieldName: tt.field}
			if got := c.BaseFieldName(); got != tt.want {
				t.Errorf("BaseFieldName(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestArrayIndex(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  int
	}{
		{"plain field", "next", -1},
		{"index zero", "edges[0]", 0},
		{"double digit", "buckets[12]", 12},
		{"empty brackets", "edges[]", -1},
		{"non-numeric", "edges[x]", -1},
		{"unclosed bracket", "edges[3", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := PointerConnection{SourceFieldName: tt.field}
			if got := c.ArrayIndex(); got != tt.want {
				t.Errorf("ArrayIndex(%q) = %d, want %d", tt.field, got, tt.want)
			}
		})
	}
}

func TestIsSelfLoop(t *testing.T) {
	if !(PointerConnection{SourceInstanceID: "a", TargetInstanceID: "a"}).IsSelfLoop() {
		t.Error("a→a should be a self loop")
	}
	if (PointerConnection{SourceInstanceID: "a", TargetInstanceID: "b"}).IsSelfLoop() {
		t.Error("a→b should not be a self loop")
	}
}

func TestStructDefinitionFields(t *testing.T) {
	def := StructDefinition{
		Name: "Node",
		Fields: []FieldDefinition{
			{Name: "value", Type: "int"},
			{Name: "next", Type: "Node", IsPointer: true},
			{Name: "prev", Type: "Node", IsPointer: true},
		},
	}

	if got := def.FieldIndex("next"); got != 1 {
		t.Errorf("FieldIndex(next) = %d, want 1", got)
	}
	if got := def.FieldIndex("missing"); got != -1 {
		t.Errorf("FieldIndex(missing) = %d, want -1", got)
	}
	if !def.HasField("value") || def.HasField("missing") {
		t.Error("HasField misreported")
	}

	ptrs := def.PointerFields()
	if len(ptrs) != 2 || ptrs[0].Name != "next" || ptrs[1].Name != "prev" {
		t.Errorf("PointerFields = %+v", ptrs)
	}
}

func TestDisplayLabel(t *testing.T) {
	inst := StructInstance{ID: "n1", InstanceName: "head"}
	if got := inst.DisplayLabel(); got != "head" {
		t.Errorf("DisplayLabel = %q, want head", got)
	}
	inst.InstanceName = ""
	if got := inst.DisplayLabel(); got != "n1" {
		t.Errorf("DisplayLabel fallback = %q, want n1", got)
	}
}

func TestWorkspaceValidate(t *testing.T) {
	ws := Workspace{
		Instances: []StructInstance{{ID: "a"}, {ID: "b"}},
		Connections: []PointerConnection{
			{ID: "ok", SourceInstanceID: "a", TargetInstanceID: "b"},
			{ID: "bad-target", SourceInstanceID: "a", TargetInstanceID: "ghost"},
			{ID: "bad-source", SourceInstanceID: "ghost", TargetInstanceID: "b"},
		},
	}

	got := ws.Validate()
	want := []string{"bad-target", "bad-source"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() = %v, want %v", got, want)
	}
}

func TestWorkspaceRoundTrip(t *testing.T) {
	ws := Workspace{
		Name: "demo",
		Structs: []StructDefinition{
			{Name: "Node", Fields: []FieldDefinition{
				{Name: "next", Type: "Node", IsPointer: true},
			}},
		},
		Instances: []StructInstance{
			{ID: "a", StructName: "Node", Position: Position{X: 10, Y: -5}},
		},
		Connections: []PointerConnection{
			{ID: "c1", SourceInstanceID: "a", TargetInstanceID: "a", SourceFieldName: "next"},
		},
	}

	var buf bytes.Buffer
	if err := WriteWorkspace(ws, &buf); err != nil {
		t.Fatalf("WriteWorkspace error: %v", err)
	}
	got, err := ReadWorkspace(&buf)
	if err != nil {
		t.Fatalf("ReadWorkspace error: %v", err)
	}
	if !reflect.DeepEqual(got, ws) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, ws)
	}
}

func TestDefinitionAndInstanceIndex(t *testing.T) {
	defs := DefinitionIndex([]StructDefinition{{Name: "Node"}, {Name: "Tree"}})
	if len(defs) != 2 || defs["Tree"].Name != "Tree" {
		t.Errorf("DefinitionIndex = %v", defs)
	}

	insts := InstanceIndex([]StructInstance{{ID: "a"}, {ID: "b"}})
	if len(insts) != 2 || insts["b"].ID != "b" {
		t.Errorf("InstanceIndex = %v", insts)
	}
}
