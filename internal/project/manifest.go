package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultExtensions are scanned when the manifest does not list any.
var DefaultExtensions = []string{".kt", ".kts"}

// Manifest is a decoded sealscan.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Output OutputConfig `toml:"output"`
}

type ScanConfig struct {
	Root          string   `toml:"root"`
	Extensions    []string `toml:"extensions"`
	Jobs          int      `toml:"jobs"`
	MaxAliasDepth int      `toml:"max_alias_depth"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

// LoadManifest finds and decodes the manifest governing startDir.
// ok is false when there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("scan") {
		return Config{}, fmt.Errorf("%s: missing [scan]", path)
	}
	if meta.IsDefined("scan", "jobs") && cfg.Scan.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [scan].jobs must not be negative", path)
	}
	if meta.IsDefined("scan", "max_alias_depth") && cfg.Scan.MaxAliasDepth <= 0 {
		return Config{}, fmt.Errorf("%s: [scan].max_alias_depth must be positive", path)
	}
	for _, ext := range cfg.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return Config{}, fmt.Errorf("%s: [scan].extensions entry %q must start with '.'", path, ext)
		}
	}
	if len(cfg.Scan.Extensions) == 0 {
		cfg.Scan.Extensions = append([]string(nil), DefaultExtensions...)
	}
	switch cfg.Output.Format {
	case "", "pretty", "json":
	default:
		return Config{}, fmt.Errorf("%s: [output].format must be \"pretty\" or \"json\", got %q", path, cfg.Output.Format)
	}
	return cfg, nil
}

// ScanRoot is the directory a scan without an explicit path covers.
func (m *Manifest) ScanRoot() string {
	if m == nil {
		return "."
	}
	if strings.TrimSpace(m.Config.Scan.Root) == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Scan.Root))
}
