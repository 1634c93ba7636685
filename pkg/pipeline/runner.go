package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/structviz/structviz/pkg/analysis"
	"github.com/structviz/structviz/pkg/cache"
	"github.com/structviz/structviz/pkg/export"
	"github.com/structviz/structviz/pkg/layout"
	"github.com/structviz/structviz/pkg/model"
	"github.com/structviz/structviz/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete analyze → layout → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, ws model.Workspace, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.InstanceCount = len(ws.Instances)
	result.Stats.ConnectionCount = len(ws.Connections)

	if data, err := model.MarshalWorkspace(ws); err == nil {
		result.WorkspaceHash = cache.Hash(data)
	}

	// Stage 1: Analyze
	analyzeStart := time.Now()
	observability.Pipeline().OnAnalyzeStart(ctx, len(ws.Instances))
	result.Metrics = analysis.Analyze(ws.Instances, ws.Connections)
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	observability.Pipeline().OnAnalyzeComplete(ctx, len(ws.Instances), len(result.Metrics.SCCs), result.Stats.AnalyzeTime)

	r.Logger.Info("analyzed graph",
		"instances", len(ws.Instances),
		"connections", len(ws.Connections),
		"sccs", len(result.Metrics.SCCs),
		"duration", result.Stats.AnalyzeTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(ws.Instances))
	lay, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, ws, result.WorkspaceHash, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, len(ws.Instances), layoutHit, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = lay
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"positions", len(lay.Positions),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Export
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	result.DOT = export.ToDOT(ws, lay, export.Options{Detailed: opts.Detailed})
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.DOT, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, renderHit, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Analyze runs the analysis stage only. The stage is pure and fast, so it is
// never cached.
func (r *Runner) Analyze(ws model.Workspace) analysis.Metrics {
	return analysis.Analyze(ws.Instances, ws.Connections)
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache
// hit info. workspaceHash may be empty, in which case it is derived here.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, ws model.Workspace, workspaceHash string, opts Options) (layout.Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Result{}, false, err
	}

	tuning, err := opts.ResolveTuning()
	if err != nil {
		return layout.Result{}, false, err
	}

	if workspaceHash == "" {
		if data, err := model.MarshalWorkspace(ws); err == nil {
			workspaceHash = cache.Hash(data)
		}
	}
	cacheKey := r.Keyer.LayoutKey(workspaceHash, cache.LayoutKeyOpts{
		TuningHash: tuningHash(tuning),
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh && workspaceHash != "" {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	lay := layout.SmartWith(ws.Instances, ws.Connections, ws.Definitions(), tuning)

	// Cache the result
	if workspaceHash != "" {
		if data, err := json.Marshal(lay); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return lay, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, ws model.Workspace, opts Options) (layout.Result, error) {
	lay, _, err := r.ComputeLayoutWithCacheInfo(ctx, ws, "", opts)
	return lay, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, dot string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	dotHash := cache.Hash([]byte(dot))

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)
	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(dotHash, cache.ArtifactKeyOpts{Format: format})
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := export.Render(dot, format)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = data

		cacheKey := r.Keyer.ArtifactKey(dotHash, cache.ArtifactKeyOpts{Format: format})
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// tuningHash derives a stable hash of a tuning profile for cache keys.
func tuningHash(t layout.Tuning) string {
	data, err := json.Marshal(t)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
