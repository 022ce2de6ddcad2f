package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paravault/para/internal/notes"
	"github.com/paravault/para/internal/ui"
)

var (
	listPrefix string
	listArea   string
)

var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List projects, areas, resources, archive, work items, or posts",
	Long: `Lists the entries of one part of the vault.

Kinds:
  projects, areas, resources   entries under each root
  archive                      entries under the three archive roots
  work --prefix <parent>       work items of a project or area, by status
  posts --area <area>          posts of an area, by status

Examples:
  para list projects
  para list work --prefix ab
  para list posts --area wr --json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: notes.ListKinds,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		parent := listPrefix
		if kind == notes.ListPosts {
			parent = listArea
		}

		rows, err := newService().List(kind, parent)
		if err != nil {
			return handleDomainError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"kind":  kind,
				"items": rows,
			}, &Meta{Count: len(rows)})
			return nil
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, ui.Infof("No %s found", kind))
			return nil
		}

		tbl := ui.NewTable(ui.NewDisplayContext(), "PREFIX", "NAME", "LOCATION", "PATH")
		for _, r := range rows {
			tbl.AddRow(r.Prefix, r.Name, r.Location, r.Path)
		}
		tbl.Render(out)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listPrefix, "prefix", "", "Parent project or area prefix (for work)")
	listCmd.Flags().StringVar(&listArea, "area", "", "Area prefix (for posts)")
	rootCmd.AddCommand(listCmd)
}
