package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the value of an auto|on|off flag such as --color or --ui.
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

func (s switchMode) String() string {
	switch s {
	case switchOn:
		return "on"
	case switchOff:
		return "off"
	default:
		return "auto"
	}
}

// parseSwitch reads the value of --name. Empty means auto.
func parseSwitch(name, value string) (switchMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on", "true", "always":
		return switchOn, nil
	case "off", "false", "never":
		return switchOff, nil
	default:
		return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", name, value)
	}
}

// enabled settles the switch; detect is consulted only for auto.
func (s switchMode) enabled(detect func() bool) bool {
	switch s {
	case switchOn:
		return true
	case switchOff:
		return false
	default:
		return detect != nil && detect()
	}
}

// interactive reports whether both output streams are terminals, which the
// progress view needs since it redraws stdout and logs to stderr.
func interactive() bool {
	return isTerminal(os.Stdout) && isTerminal(os.Stderr)
}
