// Package diagfmt renders diagnostics and debug dumps for the CLI.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"cubent/internal/diag"
	"cubent/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	posColor  = color.New(color.Bold)
)

// Render prints diagnostics with a source line and caret under the primary
// span. Colors are applied only when enabled.
func Render(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, colors bool) {
	restore := color.NoColor
	color.NoColor = !colors
	defer func() { color.NoColor = restore }()

	for _, d := range diags {
		renderOne(w, d, fs)
	}
}

func renderOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet) {
	kind := d.Code.Kind()

	// Diagnostics without a loaded file (IO failures) carry no position.
	if int(d.Primary.File) >= fs.Len() {
		fmt.Fprintf(w, "%s: %s\n", paintKind(d.Severity, kind), d.Message)
		return
	}

	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s %s: %s\n",
		posColor.Sprintf("%s:%d:%d:", file.RelPath(fs.BaseDir()), start.Line, start.Col),
		paintKind(d.Severity, kind),
		d.Message)

	if line := file.GetLine(start.Line); line != "" {
		pad := int(start.Col) - 1
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(w, "    %s\n", strings.TrimRight(line, "\r\n"))
		fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), caretFor(d))
	}

	for _, n := range d.Notes {
		if int(n.Span.File) < fs.Len() {
			nfile := fs.Get(n.Span.File)
			nstart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "    note: %s (%s:%d:%d)\n",
				n.Msg, nfile.RelPath(fs.BaseDir()), nstart.Line, nstart.Col)
		} else {
			fmt.Fprintf(w, "    note: %s\n", n.Msg)
		}
	}
}

// caretFor draws ^ under single-position spans and ^~~~ under wider ones,
// capped so multi-line spans do not flood the output.
func caretFor(d diag.Diagnostic) string {
	width := int(d.Primary.Len())
	if width < 1 {
		width = 1
	}
	if width > 40 {
		width = 40
	}
	return "^" + strings.Repeat("~", width-1)
}

func paintKind(sev diag.Severity, kind string) string {
	switch sev {
	case diag.SevError:
		return errColor.Sprint(kind)
	case diag.SevWarning:
		return warnColor.Sprint(kind)
	default:
		return infoColor.Sprint(kind)
	}
}

// Summary returns the closing "N errors, M warnings" line, empty when the
// bag is clean.
func Summary(diags []diag.Diagnostic) string {
	errs, warns := 0, 0
	for _, d := range diags {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	switch {
	case errs > 0 && warns > 0:
		return fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)
	case errs > 0:
		return fmt.Sprintf("%d error(s)", errs)
	case warns > 0:
		return fmt.Sprintf("%d warning(s)", warns)
	}
	return ""
}
