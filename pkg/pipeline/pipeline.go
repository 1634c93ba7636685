// Package pipeline provides the core visualization pipeline for Structviz.
//
// This package implements the complete analyze → layout → export pipeline
// that can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Analyze: Find strongly connected components, back edges, and cycles
//  2. Layout: Compute canvas positions for every instance
//  3. Export: Generate output in various formats (DOT, SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, ws, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	metrics := runner.Analyze(ws)
//	lay, err := runner.ComputeLayout(ctx, ws, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/structviz/structviz/pkg/analysis"
	"github.com/structviz/structviz/pkg/errors"
	"github.com/structviz/structviz/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// DefaultFormat is the output produced when none is requested.
const DefaultFormat = FormatDOT

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	TuningPath string `json:"tuning_path,omitempty"` // optional TOML tuning profile

	// Export options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // include field values in node labels

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-"`
	Tuning *layout.Tuning `json:"-"` // overrides TuningPath when set

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Metrics is the graph analysis output.
	Metrics analysis.Metrics

	// Layout contains the computed positions, edge hints, and bounds.
	Layout layout.Result

	// WorkspaceHash is the content hash of the workspace input.
	WorkspaceHash string

	// DOT is the generated Graphviz source.
	DOT string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InstanceCount   int
	ConnectionCount int
	AnalyzeTime     time.Duration
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %q (must be one of: dot, svg, png, pdf)", f)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ResolveTuning loads the effective tuning profile: an explicit Tuning wins,
// then a TOML profile at TuningPath, then the defaults.
func (o *Options) ResolveTuning() (layout.Tuning, error) {
	if o.Tuning != nil {
		return *o.Tuning, nil
	}
	if o.TuningPath != "" {
		t, err := layout.LoadTuning(o.TuningPath)
		if err != nil {
			return layout.Tuning{}, errors.Wrap(errors.ErrCodeInvalidTuning, err, "load tuning %s", o.TuningPath)
		}
		return t, nil
	}
	return layout.DefaultTuning(), nil
}
