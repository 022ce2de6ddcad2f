package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paravault/para/internal/notes"
	"github.com/paravault/para/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the vault folders and agent instructions",
	Long: `Creates every root folder named in para.yaml plus the journal folders
(daily, weekly, monthly, yearly) that do not exist yet.

Then writes a para section to the agents file (AGENTS.md by default) at the
vault root, describing the layout and commands. An existing section between
the para markers is replaced; the rest of the file is kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newService().Init()
		if err != nil {
			return handleDomainError(err)
		}

		if isJSONOutput() {
			outputSuccess(res, nil)
			return nil
		}

		out := cmd.OutOrStdout()
		if len(res.Created) == 0 {
			fmt.Fprintln(out, "• All vault folders already exist")
		} else {
			fmt.Fprintln(out, ui.Successf("Created %s", ui.Count(len(res.Created), "folder", "folders")))
			for _, dir := range res.Created {
				fmt.Fprintf(out, "  %s\n", ui.Hint(dir))
			}
		}

		agents := ui.FilePath(res.AgentsFile)
		switch res.AgentsState {
		case notes.AgentsCreated:
			fmt.Fprintln(out, ui.Successf("Created %s", agents))
		case notes.AgentsAppended:
			fmt.Fprintln(out, ui.Successf("Added para section to %s", agents))
		case notes.AgentsUpdated:
			fmt.Fprintln(out, ui.Successf("Updated para section in %s", agents))
		default:
			fmt.Fprintf(out, "• %s is up to date\n", agents)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
