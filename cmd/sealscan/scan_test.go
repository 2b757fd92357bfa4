package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"sealscan/internal/report"
	"sealscan/internal/sealed"
)

func newTestScanCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "scan"}
	registerScanFlags(cmd.Flags())
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set --%s: %v", name, err)
		}
	}
	return cmd
}

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "sealscan.toml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestResolveScanConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := resolveScanConfig(newTestScanCmd(t, nil), []string{dir})
	if err != nil {
		t.Fatalf("resolveScanConfig: %v", err)
	}
	if cfg.target != dir {
		t.Fatalf("target = %q, want %q", cfg.target, dir)
	}
	if cfg.format != report.FormatPretty || cfg.jobs != 0 || cfg.maxAliasDepth != sealed.DefaultMaxAliasDepth {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if strings.Join(cfg.extensions, ",") != ".kt,.kts" {
		t.Fatalf("extensions = %v", cfg.extensions)
	}
}

func TestResolveScanConfigManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[scan]
root = "src"
extensions = [".kt"]
jobs = 2
max_alias_depth = 8

[output]
format = "json"
`)
	t.Chdir(dir)

	cfg, err := resolveScanConfig(newTestScanCmd(t, nil), nil)
	if err != nil {
		t.Fatalf("resolveScanConfig: %v", err)
	}
	if filepath.Base(cfg.target) != "src" {
		t.Fatalf("target = %q, want the manifest root", cfg.target)
	}
	if cfg.format != report.FormatJSON || cfg.jobs != 2 || cfg.maxAliasDepth != 8 {
		t.Fatalf("manifest values not applied: %+v", cfg)
	}
	if strings.Join(cfg.extensions, ",") != ".kt" {
		t.Fatalf("extensions = %v", cfg.extensions)
	}
}

func TestResolveScanConfigFlagsOverrideManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[scan]\njobs = 2\nmax_alias_depth = 8\n[output]\nformat = \"json\"\n")

	cmd := newTestScanCmd(t, map[string]string{
		"format":          "pretty",
		"jobs":            "5",
		"max-alias-depth": "3",
	})
	cfg, err := resolveScanConfig(cmd, []string{dir})
	if err != nil {
		t.Fatalf("resolveScanConfig: %v", err)
	}
	if cfg.target != dir {
		t.Fatalf("explicit path must win over the manifest root, got %q", cfg.target)
	}
	if cfg.format != report.FormatPretty || cfg.jobs != 5 || cfg.maxAliasDepth != 3 {
		t.Fatalf("flags did not override the manifest: %+v", cfg)
	}
}

func TestResolveScanConfigRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name  string
		flags map[string]string
	}{
		{"format", map[string]string{"format": "xml"}},
		{"depth", map[string]string{"max-alias-depth": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := resolveScanConfig(newTestScanCmd(t, tt.flags), []string{dir}); err == nil {
				t.Fatal("expected an error")
			}
		})
	}

	writeManifest(t, dir, "[scan]\njobs = -1\n")
	if _, err := resolveScanConfig(newTestScanCmd(t, nil), []string{dir}); err == nil {
		t.Fatal("expected the manifest error to surface")
	}
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    switchMode
		wantErr bool
	}{
		{"", switchAuto, false},
		{"auto", switchAuto, false},
		{" ON ", switchOn, false},
		{"always", switchOn, false},
		{"off", switchOff, false},
		{"false", switchOff, false},
		{"sometimes", switchAuto, true},
	}
	for _, tt := range tests {
		got, err := parseSwitch("ui", tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseSwitch(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parseSwitch(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := parseSwitch("color", "maybe"); err == nil || !strings.Contains(err.Error(), "--color") {
		t.Fatalf("error should name the flag, got %v", err)
	}
}

func TestSwitchEnabled(t *testing.T) {
	calls := 0
	detect := func() bool { calls++; return true }
	if !switchOn.enabled(detect) || switchOff.enabled(detect) {
		t.Fatal("explicit modes must not depend on detection")
	}
	if calls != 0 {
		t.Fatalf("detect called %d times for explicit modes", calls)
	}
	if !switchAuto.enabled(detect) || calls != 1 {
		t.Fatalf("auto should defer to detect, calls = %d", calls)
	}
	if switchAuto.enabled(nil) {
		t.Fatal("auto without detection is off")
	}
}

func TestDriverOptionsCarriesPersistentFlags(t *testing.T) {
	root := &cobra.Command{Use: "sealscan"}
	registerPersistentFlags(root.PersistentFlags())
	scan := newTestScanCmd(t, map[string]string{"check": "true"})
	root.AddCommand(scan)
	for name, value := range map[string]string{"max-diagnostics": "7", "timings": "true"} {
		if err := root.PersistentFlags().Set(name, value); err != nil {
			t.Fatal(err)
		}
	}

	opts := driverOptions(scan, scanConfig{jobs: 3, maxAliasDepth: 9, extensions: []string{".kt"}})
	if opts.MaxDiagnostics != 7 {
		t.Fatalf("MaxDiagnostics = %d, want 7", opts.MaxDiagnostics)
	}
	if !opts.Check || !opts.Timings || opts.Jobs != 3 || opts.MaxAliasDepth != 9 || len(opts.Extensions) != 1 {
		t.Fatalf("options = %+v", opts)
	}
}
