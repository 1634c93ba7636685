package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/structviz/structviz/pkg/templates"
)

// templatesCommand creates the templates command listing builtin templates.
func (c *CLI) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List builtin workspace templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{}
			for _, tpl := range templates.List() {
				rows = append(rows, []string{tpl.ID, tpl.Title, tpl.Description})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "Title", "Description").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 0 {
						return StyleHighlight
					}
					return StyleValue
				})

			fmt.Println(t.Render())
			printNewline()
			printNextStep("Create a workspace", "structviz new <id>")
			return nil
		},
	}
}
