package report

import (
	"io"

	"sealscan/internal/driver"
)

// Write renders res to w.
func Write(w io.Writer, res *driver.Result, opts Options) error {
	if res == nil {
		return nil
	}
	if opts.Format == FormatJSON {
		return writeJSON(w, res, opts)
	}
	return writePretty(w, res, opts)
}
