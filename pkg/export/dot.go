// Package export renders computed layouts to shareable artifacts.
//
// The primary output is Graphviz DOT: nodes carry the positions computed by
// the layout engine (pinned, so Graphviz preserves the arrangement), fill
// colors follow a deterministic per-struct palette, and edge styling follows
// the hints the layout strategies attach (cycle edges dashed, ring edges
// colored, and so on).
//
// DOT can be rendered to SVG in-process via Graphviz, and to PNG or PDF via
// rsvg-convert.
package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/structviz/structviz/pkg/layout"
	"github.com/structviz/structviz/pkg/model"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes field values in node labels.
	// When false, only the instance and struct names are shown.
	Detailed bool

	// GraphName sets the digraph name. Defaults to the workspace name, or
	// "structviz" when that is empty.
	GraphName string
}

// ToDOT converts a workspace plus its computed layout to Graphviz DOT.
// Node positions are pinned ("pos=...!") so layout-aware engines like neato
// reproduce the engine's arrangement instead of recomputing their own.
func ToDOT(ws model.Workspace, lay layout.Result, opts Options) string {
	name := opts.GraphName
	if name == "" {
		name = ws.Name
	}
	if name == "" {
		name = "structviz"
	}

	hints := make(map[string]layout.EdgeHint, len(lay.Edges))
	for _, h := range lay.Edges {
		hints[h.ConnectionID] = h
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", name)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, inst := range ws.Instances {
		label := fmtLabel(inst, opts.Detailed)
		attrs := []string{
			fmt.Sprintf("label=%q", label),
			fmt.Sprintf("fillcolor=%q", StructColor(inst.StructName)),
		}
		if pos, ok := lay.Positions[inst.ID]; ok {
			// DOT positions are points with Y up; layout Y grows down.
			y := -pos.Y
			if pos.Y == 0 {
				y = 0
			}
			attrs = append(attrs, fmt.Sprintf("pos=\"%.1f,%.1f!\"", pos.X, y))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", inst.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	known := make(map[string]bool, len(ws.Instances))
	for _, inst := range ws.Instances {
		known[inst.ID] = true
	}
	for _, conn := range ws.Connections {
		if !known[conn.SourceInstanceID] || !known[conn.TargetInstanceID] {
			continue
		}
		attrs := edgeAttrs(conn, hints)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", conn.SourceInstanceID, conn.TargetInstanceID)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n",
			conn.SourceInstanceID, conn.TargetInstanceID, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(inst model.StructInstance, detailed bool) string {
	label := inst.DisplayLabel()
	if inst.InstanceName != "" && inst.StructName != "" {
		label = inst.InstanceName + "\n" + inst.StructName
	}
	if !detailed || len(inst.FieldValues) == 0 {
		return label
	}

	// Sorted for stable output.
	fields := make([]string, 0, len(inst.FieldValues))
	for k := range inst.FieldValues {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, k := range fields {
		label += fmt.Sprintf("\n%s: %v", k, inst.FieldValues[k])
	}
	return label
}

// edgeAttrs maps a connection's layout hint to DOT edge attributes. The
// source field name always becomes the edge label.
func edgeAttrs(conn model.PointerConnection, hints map[string]layout.EdgeHint) []string {
	var attrs []string
	if conn.SourceFieldName != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", conn.SourceFieldName), "fontsize=10")
	}

	h, ok := hints[conn.ID]
	if !ok {
		return attrs
	}
	if h.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", h.Color))
	}
	if h.Dashed {
		attrs = append(attrs, "style=dashed")
	}
	if h.Animated {
		// DOT has no animation; a heavier stroke marks the emphasized edges.
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}
