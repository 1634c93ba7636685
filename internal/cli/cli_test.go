package cli

import (
	"io"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/structviz/structviz/pkg/cache"
	"github.com/structviz/structviz/pkg/templates"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to dot", "", []string{"dot"}},
		{"single", "svg", []string{"svg"}},
		{"multiple", "svg,png,pdf", []string{"svg", "png", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derive from input", "", "demo.json", "demo"},
		{"strip format extension", "out.svg", "demo.json", "out"},
		{"keep non-format extension", "out.backup", "demo.json", "out.backup"},
		{"plain base path", "diagrams/demo", "demo.json", "diagrams/demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"analyze", "layout", "export", "new", "templates", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestServeKeyerScopesCacheEntries(t *testing.T) {
	// Server cache keys must not collide with unscoped CLI keys or with a
	// server running against a different store backend.
	cliKey := cache.NewDefaultKeyer().LayoutKey("hash123", cache.LayoutKeyOpts{})
	redisKey := serveKeyer("redis").LayoutKey("hash123", cache.LayoutKeyOpts{})
	mongoKey := serveKeyer("mongo").LayoutKey("hash123", cache.LayoutKeyOpts{})

	if redisKey == cliKey || mongoKey == cliKey {
		t.Error("server keys should differ from unscoped CLI keys")
	}
	if redisKey == mongoKey {
		t.Error("server keys should differ between store backends")
	}
	if redisKey[:len("serve:redis:")] != "serve:redis:" {
		t.Errorf("server key missing backend scope: %s", redisKey)
	}
}

func TestTemplateListModelNavigation(t *testing.T) {
	m := NewTemplateListModel(templates.List())
	if len(m.Templates) == 0 {
		t.Fatal("no templates to pick from")
	}

	// Cursor moves down, clamps at the end
	var model tea.Model = m
	for i := 0; i < len(m.Templates)+3; i++ {
		model, _ = model.(TemplateListModel).Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	got := model.(TemplateListModel)
	if got.Cursor != len(m.Templates)-1 {
		t.Errorf("cursor = %d, want %d", got.Cursor, len(m.Templates)-1)
	}

	// Enter selects the template under the cursor
	model, _ = got.Update(tea.KeyMsg{Type: tea.KeyEnter})
	final := model.(TemplateListModel)
	if final.Selected == nil {
		t.Fatal("enter did not select a template")
	}
	if final.Selected.ID != m.Templates[len(m.Templates)-1].ID {
		t.Errorf("selected %q, want %q", final.Selected.ID, m.Templates[len(m.Templates)-1].ID)
	}
}

func TestTemplateListModelQuitLeavesNoSelection(t *testing.T) {
	m := NewTemplateListModel(templates.List())
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(TemplateListModel).Selected != nil {
		t.Error("quitting should not select a template")
	}
}
