package report

import "fmt"

// Format selects the output renderer.
type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatPretty, fmt.Errorf("unknown format %q (expected: pretty|json)", s)
	}
}

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "pretty"
}

// Options configures Write.
type Options struct {
	Format          Format
	Color           bool
	WithDiagnostics bool
	// MaxDiagnostics caps the diagnostics printed per file; 0 means no cap.
	MaxDiagnostics int
	// Quiet prints failures only.
	Quiet   bool
	Timings bool
}
