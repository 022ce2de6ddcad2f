// Package buildinfo holds release metadata set at link time.
package buildinfo

// Set with -ldflags "-X github.com/paravault/para/internal/buildinfo.Version=..."
// for release binaries. Empty for local builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
