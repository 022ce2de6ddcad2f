// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Level is the active log level. Warn by default, Debug with --verbose.
var Level = &slog.LevelVar{}

func init() {
	Level.Set(slog.LevelWarn)
}

// Setup installs a tint handler on stderr as the default logger.
func Setup(verbose bool) {
	fd := os.Stderr.Fd()
	noColor := os.Getenv("NO_COLOR") != "" || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	slog.SetDefault(slog.New(NewHandler(colorable.NewColorable(os.Stderr), verbose, noColor)))
}

// NewHandler returns the handler Setup installs, writing to w.
func NewHandler(w io.Writer, verbose, noColor bool) slog.Handler {
	if verbose {
		Level.Set(slog.LevelDebug)
	} else {
		Level.Set(slog.LevelWarn)
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      Level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Empty strings carry nothing.
			if a.Value.Kind() == slog.KindString && a.Value.String() == "" && len(groups) == 0 && a.Key != slog.MessageKey {
				return slog.Attr{}
			}
			return a
		},
	})
}
