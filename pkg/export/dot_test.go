package export

import (
	"strings"
	"testing"

	"github.com/structviz/structviz/pkg/layout"
	"github.com/structviz/structviz/pkg/model"
)

func sampleWorkspace() model.Workspace {
	return model.Workspace{
		Name: "demo",
		Structs: []model.StructDefinition{
			{Name: "Node", Fields: []model.FieldDefinition{
				{Name: "next", Type: "Node", IsPointer: true},
			}},
		},
		Instances: []model.StructInstance{
			{ID: "n1", StructName: "Node", InstanceName: "head"},
			{ID: "n2", StructName: "Node", InstanceName: "tail"},
		},
		Connections: []model.PointerConnection{
			{ID: "c1", SourceInstanceID: "n1", TargetInstanceID: "n2", SourceFieldName: "next"},
		},
	}
}

func TestToDOT(t *testing.T) {
	ws := sampleWorkspace()
	lay := layout.Result{
		Positions: map[string]model.Position{
			"n1": {X: 0, Y: 0},
			"n2": {X: 350, Y: 0},
		},
	}

	dot := ToDOT(ws, lay, Options{})

	for _, want := range []string{
		`digraph "demo" {`,
		`"n1" [`,
		`"n2" [`,
		`"n1" -> "n2"`,
		`label="next"`,
		`pos="350.0,0.0!"`,
		`fillcolor=`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_EdgeHintStyling(t *testing.T) {
	ws := sampleWorkspace()
	ws.Connections = append(ws.Connections, model.PointerConnection{
		ID: "c2", SourceInstanceID: "n2", TargetInstanceID: "n1", SourceFieldName: "prev",
	})
	lay := layout.Result{
		Positions: map[string]model.Position{"n1": {}, "n2": {X: 500}},
		Edges: []layout.EdgeHint{
			{ConnectionID: "c2", Color: layout.ColorCycle, Dashed: true, Animated: true},
		},
	}

	dot := ToDOT(ws, lay, Options{})

	if !strings.Contains(dot, `color="`+layout.ColorCycle+`"`) {
		t.Errorf("hinted edge missing color:\n%s", dot)
	}
	if !strings.Contains(dot, "style=dashed") {
		t.Errorf("hinted edge missing dashed style:\n%s", dot)
	}
	if !strings.Contains(dot, "penwidth=2") {
		t.Errorf("animated hint should thicken the stroke:\n%s", dot)
	}
}

func TestToDOT_SkipsDanglingConnections(t *testing.T) {
	ws := sampleWorkspace()
	ws.Connections = append(ws.Connections, model.PointerConnection{
		ID: "bad", SourceInstanceID: "n1", TargetInstanceID: "ghost", SourceFieldName: "next",
	})

	dot := ToDOT(ws, layout.Result{Positions: map[string]model.Position{}}, Options{})
	if strings.Contains(dot, "ghost") {
		t.Errorf("dangling connection leaked into DOT:\n%s", dot)
	}
}

func TestToDOT_DetailedLabels(t *testing.T) {
	ws := sampleWorkspace()
	ws.Instances[0].FieldValues = map[string]any{"value": 42, "flag": true}

	dot := ToDOT(ws, layout.Result{}, Options{Detailed: true})
	if !strings.Contains(dot, "value: 42") {
		t.Errorf("detailed label missing field value:\n%s", dot)
	}
	// Field lines are sorted by name.
	if strings.Index(dot, "flag: true") > strings.Index(dot, "value: 42") {
		t.Errorf("detailed fields not sorted:\n%s", dot)
	}
}

func TestStructColor(t *testing.T) {
	// Deterministic across calls
	if StructColor("Node") != StructColor("Node") {
		t.Error("StructColor should be deterministic")
	}

	// Every color is from the palette
	got := StructColor("TreeNode")
	found := false
	for _, c := range palette {
		if c == got {
			found = true
		}
	}
	if !found {
		t.Errorf("StructColor returned %q, not in palette", got)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	if _, err := Render("digraph g {}", "webp"); err == nil {
		t.Error("Render should reject unknown formats")
	}
}
