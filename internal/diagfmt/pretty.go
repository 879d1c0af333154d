package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"luafmt/internal/diag"
	"luafmt/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty writes diagnostics in a human-readable form, one per line:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the offending source line with a caret underline when Context
// is positive. Expects bag.Sort() to have run.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	pos := fs.Position(d.Primary.File, d.Primary.Start)

	path := file.Path
	if opts.PathMode == PathModeBasename {
		path = filepath.Base(path)
	}

	sev := d.Severity.String()
	if opts.Color {
		if d.Severity == diag.SevError {
			sev = errorColor.Sprint(sev)
		} else {
			sev = warningColor.Sprint(sev)
		}
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, pos.Line, pos.Col, sev, d.Code, d.Message)

	if opts.Context > 0 {
		writeSourceContext(w, file, d.Primary, opts)
	}
}

// writeSourceContext prints the line holding the span start with a caret
// underline beneath the spanned columns.
func writeSourceContext(w io.Writer, file *source.File, span source.Span, opts PrettyOpts) {
	line := lineAt(file, span.Start)
	if line == "" {
		return
	}
	lineStart := lineStartOffset(file, span.Start)
	fmt.Fprintf(w, "  %s\n", strings.TrimRight(line, "\r\n"))

	col := int(span.Start - lineStart)
	width := int(span.Len())
	if width < 1 {
		width = 1
	}
	if col+width > len(line) {
		width = max(len(line)-col, 1)
	}
	underline := strings.Repeat(" ", col) + "^" + strings.Repeat("~", width-1)
	if opts.Color {
		underline = strings.Repeat(" ", col) + caretColor.Sprint("^"+strings.Repeat("~", width-1))
	}
	fmt.Fprintf(w, "  %s\n", underline)
}

func lineStartOffset(file *source.File, off uint32) uint32 {
	start := uint32(0)
	for _, nl := range file.LineIdx {
		if nl >= off {
			break
		}
		start = nl + 1
	}
	return start
}

func lineAt(file *source.File, off uint32) string {
	if int(off) > len(file.Content) {
		return ""
	}
	start := lineStartOffset(file, off)
	end := len(file.Content)
	for _, nl := range file.LineIdx {
		if nl >= off {
			end = int(nl)
			break
		}
	}
	return string(file.Content[start:end])
}
