// Package version exposes build metadata injected at link time.
package version

// Build metadata, overridden via -ldflags "-X github.com/rshade/tripexplorer/pkg/version.version=...".
//
//nolint:gochecknoglobals // Set by the linker at build time.
var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return date
}
