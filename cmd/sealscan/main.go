package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"sealscan/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "sealscan",
	Short:        "Sealed class inheritor scanner",
	Long:         `sealscan parses Kotlin declarations and lists the direct inheritors of every sealed class`,
	SilenceUsage: true,
}

// main registers subcommands and persistent flags, then executes the root
// command. Any error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)

	registerPersistentFlags(rootCmd.PersistentFlags())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func registerPersistentFlags(fs *pflag.FlagSet) {
	fs.String("color", "auto", "colorize output (auto|on|off)")
	fs.Bool("quiet", false, "print failing files only")
	fs.Bool("timings", false, "show timing information")
	fs.Int("max-diagnostics", 100, "maximum number of diagnostics per file")

	fs.String("cpu-profile", "", "write a CPU profile to file")
	fs.String("mem-profile", "", "write a heap profile to file on exit")
	fs.String("runtime-trace", "", "write a Go runtime trace to file")

	fs.String("trace", "", "trace output file (- for stderr)")
	fs.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	fs.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	fs.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	fs.Int("trace-ring-size", 4096, "events kept by the ring tracer")
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
