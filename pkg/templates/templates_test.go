package templates

import (
	"testing"

	"github.com/structviz/structviz/pkg/analysis"
	"github.com/structviz/structviz/pkg/errors"
	"github.com/structviz/structviz/pkg/model"
)

func TestList(t *testing.T) {
	all := List()
	if len(all) != 6 {
		t.Fatalf("List returned %d templates, want 6", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Errorf("List not sorted: %s before %s", all[i-1].ID, all[i].ID)
		}
	}
	for _, tpl := range all {
		if tpl.Title == "" || tpl.Description == "" {
			t.Errorf("template %s missing title or description", tpl.ID)
		}
	}
}

func TestGet(t *testing.T) {
	if _, err := Get("binary-tree"); err != nil {
		t.Errorf("Get(binary-tree) error: %v", err)
	}
	if _, err := Get("nope"); !errors.Is(err, errors.ErrCodeTemplateNotFound) {
		t.Errorf("Get(nope) = %v, want TEMPLATE_NOT_FOUND", err)
	}
}

func TestInstantiateProducesValidWorkspaces(t *testing.T) {
	for _, tpl := range List() {
		t.Run(tpl.ID, func(t *testing.T) {
			ws := tpl.Instantiate()

			if ws.Name == "" {
				t.Error("workspace has no name")
			}
			if len(ws.Structs) == 0 || len(ws.Instances) == 0 {
				t.Fatal("workspace is empty")
			}
			if dangling := ws.Validate(); len(dangling) != 0 {
				t.Errorf("dangling connections: %v", dangling)
			}

			// Every instance references a defined struct.
			defs := ws.Definitions()
			for _, inst := range ws.Instances {
				if _, ok := defs[inst.StructName]; !ok {
					t.Errorf("instance %s references undefined struct %s", inst.ID, inst.StructName)
				}
			}

			// Every connection's field exists on the source struct.
			byID := model.InstanceIndex(ws.Instances)
			for _, c := range ws.Connections {
				src := byID[c.SourceInstanceID]
				def := defs[src.StructName]
				if def.FieldIndex(c.BaseFieldName()) < 0 {
					t.Errorf("connection %s uses unknown field %s on %s", c.ID, c.SourceFieldName, src.StructName)
				}
			}
		})
	}
}

func TestInstantiateGeneratesFreshIDs(t *testing.T) {
	tpl, err := Get("linked-list")
	if err != nil {
		t.Fatal(err)
	}

	a := tpl.Instantiate()
	b := tpl.Instantiate()

	seen := make(map[string]bool)
	for _, inst := range a.Instances {
		seen[inst.ID] = true
	}
	for _, inst := range b.Instances {
		if seen[inst.ID] {
			t.Errorf("instance id %s reused across instantiations", inst.ID)
		}
	}
}

func TestRingBufferIsCircular(t *testing.T) {
	tpl, err := Get("ring-buffer")
	if err != nil {
		t.Fatal(err)
	}
	ws := tpl.Instantiate()

	metrics := analysis.Analyze(ws.Instances, ws.Connections)
	if len(metrics.SCCs) != 1 {
		t.Fatalf("ring buffer has %d SCCs, want 1", len(metrics.SCCs))
	}
	if got := metrics.SCCs[0].Pattern; got != model.PatternCircularList {
		t.Errorf("ring buffer pattern = %s, want %s", got, model.PatternCircularList)
	}
}

func TestCyclicGraphIsGeneralCycle(t *testing.T) {
	tpl, err := Get("cyclic-graph")
	if err != nil {
		t.Fatal(err)
	}
	ws := tpl.Instantiate()

	metrics := analysis.Analyze(ws.Instances, ws.Connections)
	if len(metrics.SCCs) != 1 {
		t.Fatalf("cyclic graph has %d SCCs, want 1", len(metrics.SCCs))
	}
	if got := metrics.SCCs[0].Pattern; got != model.PatternGeneralCycle {
		t.Errorf("cyclic graph pattern = %s, want %s", got, model.PatternGeneralCycle)
	}
}
