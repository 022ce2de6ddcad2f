package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paravault/para/internal/ui"
	"github.com/paravault/para/internal/vault"
)

// statusValue is a pflag.Value accepting only known workflow statuses.
type statusValue vault.Status

func (s *statusValue) String() string { return string(*s) }

func (s *statusValue) Set(v string) error {
	if v == "" {
		*s = ""
		return nil
	}
	st, err := vault.ParseStatus(v)
	if err != nil {
		return err
	}
	*s = statusValue(st)
	return nil
}

func (s *statusValue) Type() string { return "status" }

var (
	markParent string
	markItem   string
	markStatus statusValue
)

var markCmd = &cobra.Command{
	Use:   "mark <work|post>",
	Short: "Move a work item or post to another status",
	Long: `Moves a work item or post between its status folders (backlog, active,
review, done) and rewrites the status markers in the file.

Work items are found by --prefix in projects, then areas; posts in areas only.
Moving to done drops the item code from the file name and removes the
status tag line.

Examples:
  para mark work --prefix ab --item xy --status active
  para mark post --prefix wr --item abc --status done`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(vault.SectionWork), "post"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var section vault.Section
		switch strings.ToLower(args[0]) {
		case "work":
			section = vault.SectionWork
		case "post", "posts":
			section = vault.SectionPosts
		default:
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("unknown item type %q", args[0]), "Use one of: work, post")
		}

		switch {
		case markParent == "":
			return handleErrorMsg(ErrMissingArgument, "--prefix is required", "Pass the two-letter prefix of the parent project or area")
		case markItem == "":
			return handleErrorMsg(ErrMissingArgument, "--item is required", "Pass the item code, e.g. --item xy")
		case markStatus == "":
			return handleErrorMsg(ErrMissingArgument, "--status is required", "Use one of: backlog, active, review, done")
		}

		res, err := newService().Mark(section, markParent, markItem, vault.Status(markStatus))
		if err != nil {
			return handleDomainError(err)
		}

		if isJSONOutput() {
			outputSuccess(res, nil)
			return nil
		}
		out := cmd.OutOrStdout()
		if res.From == res.To {
			fmt.Fprintln(out, ui.Warningf("Already %s; status markers rewritten in %s", res.Status, ui.FilePath(res.To)))
			return nil
		}
		fmt.Fprintln(out, ui.Successf("Moved to %s %s", res.Status, ui.FilePath(res.To)))
		return nil
	},
}

func init() {
	markCmd.Flags().StringVar(&markParent, "prefix", "", "Prefix of the parent project or area")
	markCmd.Flags().StringVar(&markItem, "item", "", "Item code (two letters for work, three for posts)")
	markCmd.Flags().Var(&markStatus, "status", "Target status: backlog, active, review, done")
	_ = markCmd.RegisterFlagCompletionFunc("status", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(vault.Statuses))
		for i, st := range vault.Statuses {
			names[i] = string(st)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(markCmd)
}
