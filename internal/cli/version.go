package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/paravault/para/internal/buildinfo"
	"github.com/paravault/para/internal/config"
	"github.com/paravault/para/internal/ui"
)

const defaultModulePath = "github.com/paravault/para"

type versionInfo struct {
	Version   string `json:"version"`
	Module    string `json:"module"`
	Commit    string `json:"commit,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Dirty     bool   `json:"dirty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	// Config is the para.yaml this invocation would load, if any.
	Config string `json:"config,omitempty"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show para version, build information and config location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()
		if path, err := config.DefaultLocator(configPath).Locate(); err == nil {
			info.Config = path
		}

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "para %s\n", info.Version)
		line := func(key, value string) {
			if value != "" {
				fmt.Fprintf(out, "  %s %s\n", ui.Hint(fmt.Sprintf("%-9s", key)), value)
			}
		}
		line("commit", info.Commit)
		if info.Dirty {
			line("tree", "modified")
		}
		line("built", info.BuiltAt)
		line("go", info.GoVersion)
		line("platform", info.Platform)
		if info.Config == "" {
			line("config", "not found")
		} else {
			line("config", ui.FilePath(info.Config))
		}
		return nil
	},
}

// currentVersionInfo reads the embedded build information. Values set with
// -ldflags take precedence over VCS stamps.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:   "devel",
		Module:    defaultModulePath,
		GoVersion: runtime.Version(),
	}
	goos, goarch := runtime.GOOS, runtime.GOARCH

	if bi, ok := readBuildInfo(); ok && bi != nil {
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}

		if bi.Main.Path != "" {
			info.Module = bi.Main.Path
		}
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		if v := settings["GOOS"]; v != "" {
			goos = v
		}
		if v := settings["GOARCH"]; v != "" {
			goarch = v
		}
		info.Commit = settings["vcs.revision"]
		info.BuiltAt = settings["vcs.time"]
		info.Dirty = settings["vcs.modified"] == "true"
	}
	info.Platform = goos + "/" + goarch

	if buildinfo.Version != "" {
		info.Version = buildinfo.Version
	}
	if buildinfo.Commit != "" {
		info.Commit = buildinfo.Commit
	}
	if buildinfo.Date != "" {
		info.BuiltAt = buildinfo.Date
	}
	return info
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
