package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/structviz/structviz/pkg/model"
	"github.com/structviz/structviz/pkg/pipeline"
)

// exportCommand creates the export command for rendering diagrams.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "export [workspace.json]",
		Short: "Render a workspace to DOT, SVG, PNG, or PDF",
		Long: `Render a workspace to DOT, SVG, PNG, or PDF.

The export command runs the full pipeline: it analyzes the workspace,
computes a layout, generates Graphviz DOT with pinned node positions,
and renders the requested formats. PNG and PDF output require the
rsvg-convert binary on PATH.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), svg, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include field values in node labels")
	cmd.Flags().StringVar(&opts.TuningPath, "tuning", "", "TOML tuning profile overriding spacing defaults")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached artifacts exist")

	return cmd
}

// runExport runs the full pipeline and writes the rendered artifacts.
func (c *CLI) runExport(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	ws, err := model.ReadWorkspaceFile(input)
	if err != nil {
		return fmt.Errorf("load workspace %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, ws, opts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return fmt.Errorf("export: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Export complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.InstanceCount, result.Stats.ConnectionCount, result.CacheInfo.RenderHit)

	return nil
}

// writeArtifacts writes one file per requested format and returns the paths.
// With a single format, output names the file directly; with several, it is
// treated as a base path and the format extension is appended.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	base := basePath(output, input)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
