package version

import (
	"fmt"

	"github.com/fatih/color"
)

// Version information for the reform CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	nameColor    = color.New(color.FgCyan, color.Bold)
	versionColor = color.New(color.FgGreen, color.Bold)
)

// Line returns "reform <version>", the same text --version has always printed.
func Line() string {
	return fmt.Sprintf("reform %s", Version)
}

// Colored is Line with terminal colours; fatih/color drops them when stdout is not a tty.
func Colored() string {
	s := nameColor.Sprint("reform") + " " + versionColor.Sprint(Version)
	if GitCommit != "" {
		s += fmt.Sprintf(" (%s)", GitCommit)
	}
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
