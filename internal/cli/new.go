package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paravault/para/internal/notes"
	"github.com/paravault/para/internal/ui"
)

var newOpts notes.NewOptions

var newCmd = &cobra.Command{
	Use:   "new <type> [title]",
	Short: "Create a note from a template",
	Long: `Creates a note, or a folder of notes, from the template named <type> in para.yaml.

The title defaults to "Untitled". Projects and areas get a random two-letter
prefix unless --prefix is given; prefixes are unique across both.

Some types have extra behavior:
  post       needs --area <prefix>; gets a three-letter code in <area>/posts/backlog/
  work       needs --prefix <parent>; gets a two-letter code in <parent>/work/backlog/
  resource   with --prefix adds to the resource folder with that prefix, or
             creates it from the resource-folder template
  episode    with --solo uses the episode-solo template
  scratch    with --at-root uses the scratch-root template

Examples:
  para new project "My Website"
  para new area "Health" --prefix he
  para new work "Fix login" --prefix ab --deps "auth, session"
  para new post "Launch notes" --area wr
  para new resource "Ownership" --prefix rs`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := ""
		if len(args) > 1 {
			title = args[1]
		}

		res, err := newService().Create(args[0], title, newOpts)
		if err != nil {
			return handleDomainError(err)
		}

		if isJSONOutput() {
			outputSuccess(res, nil)
			return nil
		}

		out := cmd.OutOrStdout()
		if res.GeneratedPrefix {
			fmt.Fprintln(out, ui.Infof("Generated prefix %s", ui.Bold.Render(res.Prefix)))
		}
		if res.Merged {
			fmt.Fprintln(out, ui.Successf("Added %s", ui.FilePath(res.Path)))
			return nil
		}
		fmt.Fprintln(out, ui.Successf("Created %s %s", res.Type, ui.FilePath(res.Path)))
		return nil
	},
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return []string{
			notes.TypeProject, notes.TypeArea, notes.TypeResource, notes.TypePost,
			notes.TypeWork, notes.TypeEpisode, notes.TypeScratch,
		}, cobra.ShellCompDirectiveNoFileComp
	},
}

func init() {
	newCmd.Flags().StringVar(&newOpts.Prefix, "prefix", "", "Two-letter prefix (project/area/resource) or parent prefix (work)")
	newCmd.Flags().StringVar(&newOpts.Area, "area", "", "Area prefix for posts, or an area reference for templates")
	newCmd.Flags().StringVar(&newOpts.Deps, "deps", "", "Comma-separated dependencies: names or [[wikilinks]]")
	newCmd.Flags().StringVar(&newOpts.Tag, "type", "", "Free-form type tag ({{type}} in templates)")
	newCmd.Flags().StringVar(&newOpts.Content, "content", "", "Initial content ({{content}} in templates)")
	newCmd.Flags().StringVar(&newOpts.Folder, "folder", "", "Target sub-folder ({{folder}} in templates)")
	newCmd.Flags().BoolVar(&newOpts.Solo, "solo", false, "Use the solo episode template")
	newCmd.Flags().BoolVar(&newOpts.AtRoot, "at-root", false, "Create scratch notes at the vault root")
	rootCmd.AddCommand(newCmd)
}
