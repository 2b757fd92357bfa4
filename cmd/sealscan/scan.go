package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sealscan/internal/driver"
	"sealscan/internal/project"
	"sealscan/internal/report"
	"sealscan/internal/sealed"
)

var errScanFailed = errors.New("scan finished with errors")

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [file|dir]",
	Short: "List the direct inheritors of every sealed class",
	Long: `Scan parses every source file under the target, resolves supertype
references across files and prints each sealed class with the subclasses
declared next to it in the same file.

Without a path the [scan].root of the nearest sealscan.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	registerScanFlags(scanCmd.Flags())
}

func registerScanFlags(fs *pflag.FlagSet) {
	fs.String("format", "pretty", "output format (pretty|json)")
	fs.Int("jobs", 0, "max parallel workers (0=auto)")
	fs.Int("max-alias-depth", sealed.DefaultMaxAliasDepth, "maximum typealias expansion depth")
	fs.Bool("check", false, "verify the computed inheritors after the pass")
	fs.Bool("disk-cache", false, "reuse results from the on-disk cache")
	fs.String("ui", "auto", "progress UI (auto|on|off)")
	fs.Bool("with-diagnostics", false, "print parser and resolver diagnostics")
}

type scanConfig struct {
	target        string
	format        report.Format
	jobs          int
	maxAliasDepth int
	extensions    []string
}

// resolveScanConfig merges the nearest manifest with the command flags;
// flags that were set explicitly win.
func resolveScanConfig(cmd *cobra.Command, args []string) (scanConfig, error) {
	start := "."
	if len(args) == 1 {
		start = args[0]
	}
	cfg := scanConfig{
		target:        start,
		maxAliasDepth: sealed.DefaultMaxAliasDepth,
		extensions:    project.DefaultExtensions,
	}
	formatStr := "pretty"

	manifest, ok, err := project.LoadManifest(start)
	if err != nil {
		return cfg, err
	}
	if ok {
		if len(args) == 0 {
			cfg.target = manifest.ScanRoot()
		}
		cfg.extensions = manifest.Config.Scan.Extensions
		cfg.jobs = manifest.Config.Scan.Jobs
		if manifest.Config.Scan.MaxAliasDepth > 0 {
			cfg.maxAliasDepth = manifest.Config.Scan.MaxAliasDepth
		}
		if manifest.Config.Output.Format != "" {
			formatStr = manifest.Config.Output.Format
		}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		if formatStr, err = flags.GetString("format"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("jobs") {
		if cfg.jobs, err = flags.GetInt("jobs"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("max-alias-depth") {
		if cfg.maxAliasDepth, err = flags.GetInt("max-alias-depth"); err != nil {
			return cfg, err
		}
		if cfg.maxAliasDepth <= 0 {
			return cfg, fmt.Errorf("--max-alias-depth must be positive")
		}
	}
	if cfg.format, err = report.ParseFormat(formatStr); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// driverOptions maps the resolved config and the flags onto driver.Options.
// The diagnostics cap also bounds what each file's bag keeps.
func driverOptions(cmd *cobra.Command, cfg scanConfig) driver.Options {
	persistent := cmd.Root().PersistentFlags()
	timings, _ := persistent.GetBool("timings")
	maxDiagnostics, _ := persistent.GetInt("max-diagnostics")
	check, _ := cmd.Flags().GetBool("check")
	return driver.Options{
		Extensions:     cfg.extensions,
		Jobs:           cfg.jobs,
		MaxDiagnostics: maxDiagnostics,
		MaxAliasDepth:  cfg.maxAliasDepth,
		Check:          check,
		Timings:        timings,
	}
}

func runScan(cmd *cobra.Command, args []string) (err error) {
	cfg, err := resolveScanConfig(cmd, args)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	colored, err := resolveColor(cmd)
	if err != nil {
		return err
	}
	persistent := cmd.Root().PersistentFlags()
	quiet, _ := persistent.GetBool("quiet")
	timings, _ := persistent.GetBool("timings")
	maxDiagnostics, _ := persistent.GetInt("max-diagnostics")
	useCache, _ := cmd.Flags().GetBool("disk-cache")
	withDiagnostics, _ := cmd.Flags().GetBool("with-diagnostics")
	uiValue, _ := cmd.Flags().GetString("ui")

	uiMode, err := parseSwitch("ui", uiValue)
	if err != nil {
		return err
	}

	opts := driverOptions(cmd, cfg)
	if useCache {
		cache, cacheErr := driver.OpenDiskCache("sealscan")
		if cacheErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	var res *driver.Result
	if uiMode.enabled(interactive) && cfg.format == report.FormatPretty && !quiet {
		res, err = runScanWithUI(cmd.Context(), "sealscan "+cfg.target, cfg.target, opts)
	} else {
		res, err = driver.Scan(cmd.Context(), cfg.target, opts)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: no such file or directory", cfg.target)
		}
		return err
	}

	if err := report.Write(cmd.OutOrStdout(), res, report.Options{
		Format:          cfg.format,
		Color:           colored,
		WithDiagnostics: withDiagnostics,
		MaxDiagnostics:  maxDiagnostics,
		Quiet:           quiet,
		Timings:         timings,
	}); err != nil {
		return err
	}
	if res.HasErrors() {
		return errScanFailed
	}
	return nil
}
