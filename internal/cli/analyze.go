package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/structviz/structviz/pkg/model"
)

// analyzeCommand creates the analyze command for inspecting workspace structure.
func (c *CLI) analyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [workspace.json]",
		Short: "Analyze a workspace for cycles and structural patterns",
		Long: `Analyze a workspace for cycles and structural patterns.

The analyze command reads a workspace file and reports strongly connected
components, the cycle pattern of each (self loop, bidirectional pair,
circular list, or general cycle), back edges, and dangling connections
that reference missing instances.

Analysis is pure graph work and runs without the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(args[0])
		},
	}
}

// runAnalyze loads the workspace, runs the analysis stage, and prints a report.
func (c *CLI) runAnalyze(input string) error {
	ws, err := model.ReadWorkspaceFile(input)
	if err != nil {
		return fmt.Errorf("load workspace %s: %w", input, err)
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	metrics := runner.Analyze(ws)
	prog.done(fmt.Sprintf("Analyzed %d instances", len(ws.Instances)))

	if metrics.HasCycles {
		printWarning("Workspace contains cycles")
	} else {
		printSuccess("Workspace is acyclic")
	}

	for i, g := range metrics.SCCs {
		printKeyValue(fmt.Sprintf("cycle %d", i+1),
			fmt.Sprintf("%s (%s)", g.Pattern, strings.Join(g.IDs, ", ")))
	}
	if len(metrics.BackEdges) > 0 {
		edges := make([]string, len(metrics.BackEdges))
		for i, e := range metrics.BackEdges {
			edges[i] = fmt.Sprintf("%s→%s", e.SourceInstanceID, e.TargetInstanceID)
		}
		printKeyValue("back edges", strings.Join(edges, ", "))
	}

	if dangling := ws.Validate(); len(dangling) > 0 {
		printWarning("%d dangling connection(s): %s", len(dangling), strings.Join(dangling, ", "))
	}

	printStats(len(ws.Instances), len(ws.Connections), false)
	printNewline()
	printNextStep("Compute layout", "structviz layout "+input)

	return nil
}
