package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestLine(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3"
	if got := Line(); got != "reform 1.2.3" {
		t.Errorf("Line() = %q", got)
	}
}

func TestColoredIncludesBuildInfo(t *testing.T) {
	origCommit, origDate, origNoColor := GitCommit, BuildDate, color.NoColor
	defer func() { GitCommit, BuildDate, color.NoColor = origCommit, origDate, origNoColor }()

	color.NoColor = true
	GitCommit = "abc123"
	BuildDate = "2024-01-15"
	got := Colored()
	for _, want := range []string{"reform " + Version, "(abc123)", "built 2024-01-15"} {
		if !strings.Contains(got, want) {
			t.Errorf("Colored() = %q, missing %q", got, want)
		}
	}
}
