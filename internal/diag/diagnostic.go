package diag

import (
	"strings"

	"sealscan/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// String renders `<severity> <CODE>: <message>`.
func (d Diagnostic) String() string {
	return strings.ToLower(d.Severity.String()) + " " + d.Code.ID() + ": " + d.Message
}
