package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// resolveColor applies --color to the global colour switch and reports
// whether output should be coloured.
func resolveColor(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := parseSwitch("color", value)
	if err != nil {
		return false, err
	}
	enabled := mode.enabled(func() bool {
		return isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
	})
	color.NoColor = !enabled
	return enabled, nil
}
