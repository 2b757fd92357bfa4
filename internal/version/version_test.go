package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredKeepsText(t *testing.T) {
	saved, savedNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = saved, savedNoColor }()
	color.NoColor = true

	cases := map[string]string{
		"0.1.0-dev":  "0.1.0-dev",
		"1.2.3":      "1.2.3",
		"2.0.0-rc.1": "2.0.0-rc.1",
		"nightly":    "nightly",
		"1.2":        "1.2",
	}
	for in, want := range cases {
		Version = in
		if got := Colored(); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOptionalFieldsDefaultEmpty(t *testing.T) {
	if Version == "" {
		t.Fatal("Version should have a default value")
	}
	if GitCommit != "" || BuildDate != "" {
		t.Fatalf("unexpected build metadata: %q %q", GitCommit, BuildDate)
	}
}
