package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paravault/para/internal/ui"
	"github.com/paravault/para/internal/vault"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <type> <name>",
	Short: "Move a project, area, or resource to the archive",
	Long: `Moves a project, area, or resource from its root into the matching archive
root, keeping its name. <name> is the folder or file name; a bare two-letter
prefix also works. Fails if the archive already has an entry with that name.

Examples:
  para archive project ab_my-website
  para archive area he
  para archive resource reading-list.md`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{string(vault.KindProject), string(vault.KindArea), string(vault.KindResource)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := vault.ParseKind(args[0])
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use one of: project, area, resource")
		}

		res, err := newService().Archive(kind, args[1])
		if err != nil {
			return handleDomainError(err)
		}

		if isJSONOutput() {
			outputSuccess(res, nil)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("Archived %s %s", res.Kind, ui.FilePath(res.To)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
}
