// Package pkg provides the core libraries for Structviz diagram layout.
//
// # Overview
//
// Structviz analyzes workspaces of struct instances connected by pointer
// fields, classifies their shape (linked list, tree, ring, DAG, ...), and
// computes 2D layouts for visualization. The pkg directory is organized
// into three main areas:
//
//  1. Domain logic - graph analysis, pattern classification, layout
//  2. Infrastructure - caching, workspace stores, error codes
//  3. Orchestration - the analyze → layout → export pipeline
//
// # Architecture
//
// The typical data flow through Structviz:
//
//	Workspace (structs + instances + connections)
//	         ↓
//	    [analysis] package (SCCs, back edges, toposort)
//	         ↓
//	    [classify] package (pattern detection per region)
//	         ↓
//	    [layout] package (per-pattern placement strategies)
//	         ↓
//	    [export] package (DOT generation + SVG/PNG/PDF rendering)
//
// # Quick Start
//
// Lay out a workspace and render it:
//
//	import (
//	    "context"
//	    "github.com/structviz/structviz/pkg/model"
//	    "github.com/structviz/structviz/pkg/pipeline"
//	)
//
//	ws, _ := model.ReadWorkspaceFile("demo.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), ws, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	_ = result.Artifacts["svg"]
//
// # Main Packages
//
// ## Domain Logic
//
// [model] - Canonical workspace types: struct definitions, placed instances,
// pointer connections, positions, and the pattern vocabulary.
//
// [analysis] - Graph algorithms over the instance graph: Tarjan strongly
// connected components, DFS back-edge detection, and Kahn topological sort.
//
// [classify] - Structural pattern detection. Cyclic regions are classified
// from their SCC shape; acyclic regions run scored detectors (linked list,
// binary tree, skip list, heap, hash table, grid, DAG, general graph).
//
// [layout] - Per-pattern placement strategies plus a force-directed fallback,
// composed left-to-right across disconnected regions. Spacing constants live
// in a TOML-tunable Tuning profile.
//
// [export] - Graphviz DOT generation with pinned positions, SVG rendering via
// go-graphviz, and PNG/PDF conversion via rsvg-convert.
//
// ## Infrastructure
//
// [cache] - Content-addressed result cache with file-backed and null
// implementations, TTL expiry, and sha256 key derivation.
//
// [store] - Workspace persistence behind a single interface: memory, file,
// Redis, and MongoDB backends.
//
// [errors] - Coded errors with user-facing messages, plus input validation
// helpers shared by the CLI and API.
//
// [observability] - Optional hooks for pipeline and cache instrumentation.
//
// ## Orchestration
//
// [pipeline] - The complete analyze → layout → export pipeline used by both
// CLI and API, with per-stage caching.
//
// [templates] - Builtin example workspaces (linked list, binary tree, ring
// buffer, ...) instantiated with fresh ids.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//
// [model]: https://pkg.go.dev/github.com/structviz/structviz/pkg/model
// [analysis]: https://pkg.go.dev/github.com/structviz/structviz/pkg/analysis
// [classify]: https://pkg.go.dev/github.com/structviz/structviz/pkg/classify
// [layout]: https://pkg.go.dev/github.com/structviz/structviz/pkg/layout
// [export]: https://pkg.go.dev/github.com/structviz/structviz/pkg/export
// [cache]: https://pkg.go.dev/github.com/structviz/structviz/pkg/cache
// [store]: https://pkg.go.dev/github.com/structviz/structviz/pkg/store
// [errors]: https://pkg.go.dev/github.com/structviz/structviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/structviz/structviz/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/structviz/structviz/pkg/pipeline
// [templates]: https://pkg.go.dev/github.com/structviz/structviz/pkg/templates
package pkg
