// Package version holds build metadata set with -ldflags.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build metadata for display.
func String() string {
	return fmt.Sprintf("tripgest %s (commit %s, built %s)", Version, Commit, Date)
}
