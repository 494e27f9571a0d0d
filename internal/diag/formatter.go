package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Formatter renders diagnostics to a writer, one line per diagnostic, with
// the severity keyword colored when color is enabled.
type Formatter struct {
	w       io.Writer
	noColor bool
}

// NewFormatter builds a Formatter writing to w. Colors follow fatih/color's
// own NO_COLOR/terminal detection unless noColor forces them off.
func NewFormatter(w io.Writer, noColor bool) *Formatter {
	return &Formatter{w: w, noColor: noColor}
}

func (f *Formatter) severityColor(sev Severity) *color.Color {
	switch sev {
	case SeverityError:
		return color.New(color.FgRed, color.Bold)
	case SeverityWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

// Format writes d to the formatter's writer as:
//
//	error[CFG_STRUCTURAL]: cfg (function "main", block "b2"): ...
func (f *Formatter) Format(d Diagnostic) {
	c := f.severityColor(d.Severity)
	if f.noColor {
		c.DisableColor()
	}

	header := c.Sprintf("%s[%s]", d.Severity, d.Code)
	where := fmt.Sprintf("function %q", d.Location.Function)
	if d.Location.HasBlock() {
		where += fmt.Sprintf(", block %q", d.Location.Block)
	}

	fmt.Fprintf(f.w, "%s: %s (%s): %s\n", header, d.Stage, where, d.Message)
}

// FormatAll writes every diagnostic in ds, in order.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	for _, d := range ds {
		f.Format(d)
	}
}
