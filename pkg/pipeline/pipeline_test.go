package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/structviz/structviz/pkg/cache"
	"github.com/structviz/structviz/pkg/layout"
	"github.com/structviz/structviz/pkg/model"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func chainWorkspace() model.Workspace {
	return model.Workspace{
		Name: "chain",
		Structs: []model.StructDefinition{
			{Name: "Node", Fields: []model.FieldDefinition{
				{Name: "next", Type: "Node", IsPointer: true},
			}},
		},
		Instances: []model.StructInstance{
			{ID: "a", StructName: "Node", InstanceName: "first"},
			{ID: "b", StructName: "Node", InstanceName: "second"},
			{ID: "c", StructName: "Node", InstanceName: "third"},
		},
		Connections: []model.PointerConnection{
			{ID: "c1", SourceInstanceID: "a", TargetInstanceID: "b", SourceFieldName: "next"},
			{ID: "c2", SourceInstanceID: "b", TargetInstanceID: "c", SourceFieldName: "next"},
		},
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatDOT {
		t.Errorf("Formats = %v, want [dot]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger default not applied")
	}

	bad := Options{Formats: []string{"webp"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid format accepted")
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), chainWorkspace(), Options{
		Formats: []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.InstanceCount != 3 || result.Stats.ConnectionCount != 2 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.Metrics.HasCycles {
		t.Error("chain should be acyclic")
	}
	if len(result.Layout.Positions) != 3 {
		t.Errorf("layout placed %d nodes, want 3", len(result.Layout.Positions))
	}
	if result.WorkspaceHash == "" {
		t.Error("workspace hash not computed")
	}
	if !strings.Contains(result.DOT, `"a" -> "b"`) {
		t.Errorf("DOT missing edge:\n%s", result.DOT)
	}
	if string(result.Artifacts[FormatDOT]) != result.DOT {
		t.Error("dot artifact should equal generated DOT")
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("first run should not hit cache")
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, quietLogger())
	defer runner.Close()

	ctx := context.Background()
	ws := chainWorkspace()
	opts := Options{Formats: []string{FormatDOT}}

	first, err := runner.Execute(ctx, ws, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := runner.Execute(ctx, ws, Options{Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit render cache")
	}
	if len(second.Layout.Positions) != len(first.Layout.Positions) {
		t.Error("cached layout differs from computed layout")
	}

	// Refresh bypasses the cache
	third, err := runner.Execute(ctx, ws, Options{Formats: []string{FormatDOT}, Refresh: true})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should not hit cache")
	}
}

func TestComputeLayoutTuningChangesKey(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, quietLogger())
	defer runner.Close()

	ctx := context.Background()
	ws := chainWorkspace()

	if _, err := runner.ComputeLayout(ctx, ws, Options{}); err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}

	// A different tuning must not reuse the default-tuning cache entry.
	tuning := layout.DefaultTuning()
	tuning.ListSpacing = 999
	lay, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, chainWorkspace(), "", Options{Tuning: &tuning})
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}
	if hit {
		t.Error("different tuning should not hit the cache")
	}
	spacing := lay.Positions["b"].X - lay.Positions["a"].X
	if spacing != tuning.NodeWidth+999 {
		t.Errorf("custom tuning not applied: spacing %.1f", spacing)
	}
}

func TestAnalyzeStage(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	ws := chainWorkspace()
	ws.Connections = append(ws.Connections, model.PointerConnection{
		ID: "c3", SourceInstanceID: "c", TargetInstanceID: "a", SourceFieldName: "next",
	})

	metrics := runner.Analyze(ws)
	if !metrics.HasCycles {
		t.Error("closed chain should report a cycle")
	}
	if len(metrics.SCCs) != 1 {
		t.Errorf("got %d SCCs, want 1", len(metrics.SCCs))
	}
}
