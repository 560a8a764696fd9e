package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/syntree/pkg/analyze"
)

// FormatDiagnostic formats a syntax error for terminal output as
// "path:line:col  error  message  (code)", optionally followed by the
// offending source line.
func (s *Styles) FormatDiagnostic(path string, diag analyze.Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		diag.StartLine,
		diag.StartColumn,
	)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(diag.Message),
		s.Code.Render("("+diag.Code+")"),
	)

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret under column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output. count is
// described with noun when positive.
func (s *Styles) FormatFileHeader(path string, count int, noun string) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		if count != 1 {
			noun += "s"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, noun))
	}
	return header
}
