package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gravitrone/qment/internal/document"
	"github.com/gravitrone/qment/internal/store"
	"github.com/gravitrone/qment/internal/ui/components"
)

// InspectCmd returns the `qment inspect` command.
func InspectCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Summarize a question bank",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			doc, err := store.LoadDocument(args[0])
			if err != nil {
				return err
			}
			out := c.OutOrStdout()
			if doc.Len() == 0 {
				fmt.Fprintln(out, "no questions")
				return nil
			}
			fmt.Fprintln(out, components.TableGrid(inspectColumns, inspectRows(doc), width))
			fmt.Fprintf(out, "\n%d questions\n", doc.Len())
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 100, "table width in columns")
	return cmd
}

var inspectColumns = []components.TableColumn{
	{Header: "#", Width: 6, Align: lipgloss.Right},
	{Header: "Tags", Width: 48},
	{Header: "Sections", Width: 24},
}

// inspectRows returns one row per question, in ascending number order. Tags
// are shown as group:tag; sections without text are marked with "-".
func inspectRows(doc *document.Document) [][]string {
	var rows [][]string
	for n, q := range doc.Questions() {
		var tags []string
		for group, set := range q.Groups() {
			if set.Len() == 0 {
				tags = append(tags, group+":")
				continue
			}
			for tag := range set.All() {
				tags = append(tags, group+":"+tag)
			}
		}

		var sections []string
		for name, s := range q.Sections() {
			if !s.HasText() {
				name += " -"
			}
			sections = append(sections, name)
		}

		rows = append(rows, []string{
			strconv.FormatUint(uint64(n), 10),
			joinOrDash(tags),
			strings.Join(sections, ", "),
		})
	}
	return rows
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
