package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/structviz/structviz/pkg/model"
	"github.com/structviz/structviz/pkg/templates"
)

// newCommand creates the new command for building workspaces from templates.
func (c *CLI) newCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "new [template]",
		Short: "Create a workspace from a builtin template",
		Long: `Create a workspace from a builtin template.

Without arguments, an interactive picker lists the available templates.
With a template id (see 'structviz templates'), the workspace is created
directly. Every instantiation gets fresh instance and connection ids, so
repeated runs produce independent workspaces.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return c.runNew(id, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <template>.json)")

	return cmd
}

// runNew resolves the template (interactively if needed) and writes the
// instantiated workspace.
func (c *CLI) runNew(id, output string) error {
	if id == "" {
		picked, err := pickTemplate(templates.List())
		if err != nil {
			return err
		}
		if picked == nil {
			printInfo("No template selected")
			return nil
		}
		id = picked.ID
	}

	tpl, err := templates.Get(id)
	if err != nil {
		return err
	}

	ws := tpl.Instantiate()

	outputPath := output
	if outputPath == "" {
		outputPath = tpl.ID + ".json"
	}
	if err := model.WriteWorkspaceFile(ws, outputPath); err != nil {
		return fmt.Errorf("write workspace %s: %w", outputPath, err)
	}

	printSuccess("Created %s workspace", tpl.Title)
	printFile(outputPath)
	printStats(len(ws.Instances), len(ws.Connections), false)
	printNewline()
	printNextStep("Analyze", "structviz analyze "+outputPath)

	return nil
}

// pickTemplate runs the interactive template picker and returns the selection,
// or nil if the user quit without choosing.
func pickTemplate(all []templates.Template) (*templates.Template, error) {
	m := NewTemplateListModel(all)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("template picker: %w", err)
	}
	result, ok := final.(TemplateListModel)
	if !ok {
		return nil, fmt.Errorf("template picker: unexpected model %T", final)
	}
	return result.Selected, nil
}
