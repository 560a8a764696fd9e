package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/syntree/pkg/analyze"
	"github.com/yaklabco/syntree/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // FILE, LOC, KIND, TEXT
	minFileWidth     = 16
	minLocWidth      = 7
	minKindWidth     = 12
	minTextWidth     = 30
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableRow is one node or syntax error in the table.
type TableRow struct {
	File     string
	Location string
	Kind     string
	Text     string
	IsError  bool
}

// EntryRow converts a collected node to a table row.
func EntryRow(path string, entry analyze.Entry) TableRow {
	text := entry.Text
	if entry.Name != "" && entry.Name != entry.Text {
		text = entry.Name + ": " + entry.Text
	}
	return TableRow{
		File:     path,
		Location: fmt.Sprintf("%d:%d", entry.StartLine, entry.StartColumn),
		Kind:     entry.Kind.String(),
		Text:     singleLine(text),
	}
}

// DiagnosticRow converts a syntax error to a table row.
func DiagnosticRow(path string, diag analyze.Diagnostic) TableRow {
	return TableRow{
		File:     path,
		Location: fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn),
		Kind:     diag.Code,
		Text:     diag.Message,
		IsError:  true,
	}
}

// ResultRows returns the rows of one analysis: its collected nodes
// grouped by collection, followed by its syntax errors.
func ResultRows(result *analyze.FileResult) []TableRow {
	path := result.DisplayPath()

	var rows []TableRow
	for _, entries := range [][]analyze.Entry{result.Usings, result.Variables, result.Invocations, result.Matches} {
		for _, entry := range entries {
			rows = append(rows, EntryRow(path, entry))
		}
	}
	for _, diag := range result.Diagnostics {
		rows = append(rows, DiagnosticRow(path, diag))
	}
	return rows
}

// TableFormatter formats collected nodes as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats runner results as a table with one group of rows
// per tree.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var groups [][]TableRow
	for _, fr := range result.FileResults() {
		if rows := ResultRows(fr); len(rows) > 0 {
			groups = append(groups, rows)
		}
	}
	return t.FormatGroups(groups)
}

// FormatGroups formats grouped rows, separating groups with a light rule.
func (t *TableFormatter) FormatGroups(groups [][]TableRow) string {
	if len(groups) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(groups)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	hasErrors := false
	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			hasErrors = hasErrors || row.IsError
			builder.WriteString(t.formatRow(row, widths) + "\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	if hasErrors {
		builder.WriteString(t.formatLegend() + "\n")
	}

	return builder.String()
}

type columnWidths struct {
	file int
	loc  int
	kind int
	text int
}

func (w columnWidths) total() int {
	return w.file + w.loc + w.kind + w.text + tablePadding*tableColumnCount
}

// calculateColumnWidths sizes each column to its widest cell, then
// shrinks TEXT and FILE to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file: minFileWidth,
		loc:  minLocWidth,
		kind: minKindWidth,
		text: minTextWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, lipgloss.Width(row.File))
			widths.loc = max(widths.loc, lipgloss.Width(row.Location))
			widths.kind = max(widths.kind, lipgloss.Width(row.Kind))
			widths.text = max(widths.text, lipgloss.Width(row.Text))
		}
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.text = max(minTextWidth, widths.text-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := " " + pad("FILE", widths.file) + "  " + pad("LOC", widths.loc) + "  " +
		pad("KIND", widths.kind) + "  " + pad("TEXT", widths.text)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := " " + pad(truncateFilePath(row.File, widths.file), widths.file) +
		"  " + pad(truncateString(row.Location, widths.loc), widths.loc) +
		"  " + pad(truncateString(row.Kind, widths.kind), widths.kind) +
		"  " + truncateString(row.Text, widths.text)

	if row.IsError {
		return t.styles.TableErrorRow.Render(content)
	}
	return content
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: rows with a diagnostic code in KIND are syntax errors")
	}
	sample := t.styles.TableErrorRow.Render(" syntax error ")
	return t.styles.TableLegend.Render(" Legend: ") + sample
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{
		fmt.Sprintf("%d %s parsed", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)),
		fmt.Sprintf("%d nodes", stats.Nodes),
	}
	if stats.DiagnosticsTotal > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d %s",
			stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "syntax error", "syntax errors"))))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return " " + strings.Join(parts, " | ")
}

// pad right-pads str with spaces to width display cells.
func pad(str string, width int) string {
	if gap := width - lipgloss.Width(str); gap > 0 {
		return str + strings.Repeat(" ", gap)
	}
	return str
}

// truncateString truncates str to maxLen runes, ending in "..." when cut.
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// truncateFilePath truncates a path from the front so the file name survives.
func truncateFilePath(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return string(runes[len(runes)-maxLen:])
	}
	return ellipsis + string(runes[len(runes)-maxLen+len(ellipsis):])
}
