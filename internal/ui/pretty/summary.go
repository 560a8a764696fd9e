package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/syntree/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 syntax errors in 2 files (12 files parsed, 1 skipped)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var extras []string
	extras = append(extras, fmt.Sprintf("%d %s parsed", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
	if stats.FilesSkipped > 0 {
		extras = append(extras, fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}
	if stats.FilesErrored > 0 {
		extras = append(extras, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	detail := s.Dim.Render(" (") + strings.Join(extras, s.Dim.Render(", ")) + s.Dim.Render(")")

	if stats.DiagnosticsTotal == 0 {
		return s.Success.Render("No syntax errors") + detail + "\n"
	}

	errWord := plural(stats.DiagnosticsTotal, "syntax error", "syntax errors")
	return s.Error.Render(fmt.Sprintf("%d %s", stats.DiagnosticsTotal, errWord)) +
		fmt.Sprintf(" in %d %s", stats.FilesWithErrors, plural(stats.FilesWithErrors, wordFile, wordFiles)) +
		detail + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString("  " + label + strings.Repeat(" ", max(1, 20-len(label))) + value + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files parsed:", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesSkipped > 0 {
		row("Files skipped:", s.Dim.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed:", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Trees:", s.SummaryValue.Render(strconv.Itoa(stats.Trees)))
	row("Nodes:", s.SummaryValue.Render(strconv.Itoa(stats.Nodes)))
	row("Tokens:", s.SummaryValue.Render(strconv.Itoa(stats.Tokens)))

	builder.WriteString("\n")

	row("Syntax errors:", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	codes := make([]string, 0, len(stats.DiagnosticsByCode))
	for code := range stats.DiagnosticsByCode {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		row("  "+code+":", s.Error.Render(strconv.Itoa(stats.DiagnosticsByCode[code])))
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be parsed"))
	case stats.DiagnosticsTotal > 0:
		builder.WriteString(s.Failure.Render(fmt.Sprintf("Syntax errors in %d %s",
			stats.FilesWithErrors, plural(stats.FilesWithErrors, wordFile, wordFiles))))
	default:
		builder.WriteString(s.Success.Render("All trees parsed cleanly"))
	}
	builder.WriteString("\n")

	return builder.String()
}
