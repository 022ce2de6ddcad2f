package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/paravault/para/internal/config"
	"github.com/paravault/para/internal/logging"
	"github.com/paravault/para/internal/notes"
	"github.com/paravault/para/internal/ui"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Loaded once per invocation by PersistentPreRunE.
	cfg *config.Config

	// serviceOptions are passed to every notes.Service; tests pin the clock
	// and random source through it.
	serviceOptions []notes.Option

	// output receives command output for the current invocation.
	output io.Writer = os.Stdout
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "para",
	Short: "para - scaffold and file notes in a PARA vault",
	Long: `para creates and moves notes in a vault organized with the PARA method
(Projects, Areas, Resources, Archives).

Notes are created from templates in para.yaml. The config file is looked up
in order: --config or $PARA_CONFIG, para.yaml next to the para binary,
para.yaml in the current directory, then $XDG_CONFIG_HOME/para/para.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose)
		ui.ConfigureColor(cmd.OutOrStdout())

		// Skip config loading for commands that don't need it
		switch cmd.Name() {
		case "completion", "help", "version", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		loaded, err := config.Load(config.DefaultLocator(configPath))
		if err != nil {
			code, suggestion := classify(err)
			if code != ErrConfigNotFound {
				code = ErrConfigInvalid
			}
			return handleError(code, err, suggestion)
		}
		slog.Debug("loaded config", "path", loaded.Path(), "vault", loaded.VaultPath)
		cfg = loaded
		return nil
	},
}

// Execute runs the CLI against the process arguments.
func Execute() error {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

// run executes one invocation. Flags are reset first so repeated calls in
// one process do not leak state.
func run(args []string, out, errOut io.Writer) error {
	resetFlags(rootCmd)
	cfg = nil

	output = out
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	err := rootCmd.Execute()
	if err != nil {
		reportError(errOut, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to para.yaml (overrides $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug details to stderr")
}

// stdout returns the writer of the current invocation.
func stdout() io.Writer {
	return output
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// newService returns a notes service for the loaded config.
func newService() *notes.Service {
	return notes.New(getConfig(), serviceOptions...)
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
