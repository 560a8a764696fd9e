package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/syntree/internal/ui/pretty"
	"github.com/yaklabco/syntree/pkg/analysis"
)

// Table layout constants for summary output.
const (
	tableWidth        = 90
	codeColWidth      = 12
	codeFilesWidth    = 60
	fileColWidth      = 60
	numColWidth       = 8
	maxFilePathLength = 58
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func shortenPath(path string) string {
	if len(path) > maxFilePathLength {
		return "…" + path[len(path)-(maxFilePathLength-1):]
	}
	return path
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if r.opts.SummaryOrder == SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		r.renderCodeTable(report.ByCode)
	} else {
		r.renderCodeTable(report.ByCode)
		r.renderFileTable(report.ByFile)
	}

	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) rule() {
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) renderCodeTable(codes []analysis.CodeAnalysis) {
	if len(codes) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Diagnostics Summary"))
	r.rule()
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Code", codeColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render("  Files"),
	)
	r.rule()

	for _, code := range codes {
		files := strings.Join(code.Files, ", ")
		if len(files) > codeFilesWidth {
			files = files[:codeFilesWidth-1] + "…"
		}
		fmt.Fprintf(r.out, "%s %s   %s\n",
			r.styles.TableErrorRow.Render(padRight(code.Code, codeColWidth)),
			padLeft(strconv.Itoa(code.Count), numColWidth),
			r.styles.Dim.Render(files),
		)
	}
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	r.rule()
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Nodes", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Tokens", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
	)
	r.rule()

	for _, file := range files {
		paddedPath := padRight(shortenPath(file.Path), fileColWidth)
		if file.Error != "" {
			fmt.Fprintf(r.out, "%s %s\n",
				r.styles.TableErrorRow.Render(paddedPath),
				r.styles.Error.Render("failed: "+file.Error),
			)
			continue
		}

		styledPath := paddedPath
		if file.Diagnostics > 0 {
			styledPath = r.styles.TableErrorRow.Render(paddedPath)
		}
		fmt.Fprintf(r.out, "%s %s %s %s\n",
			styledPath,
			padLeft(strconv.Itoa(file.Nodes), numColWidth),
			padLeft(strconv.Itoa(file.Tokens), numColWidth),
			padLeft(strconv.Itoa(file.Diagnostics), numColWidth),
		)
	}
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	parts := []string{
		fmt.Sprintf("%d trees", totals.Trees),
		fmt.Sprintf("%d nodes", totals.Nodes),
		fmt.Sprintf("%d tokens", totals.Tokens),
	}

	collected := []struct {
		label string
		count int
	}{
		{"usings", totals.Usings},
		{"variables", totals.Variables},
		{"invocations", totals.Invocations},
		{"matches", totals.Matches},
	}
	for _, c := range collected {
		if c.count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.count, c.label))
		}
	}

	if totals.Diagnostics > 0 {
		parts = append(parts, r.styles.Error.Render(
			fmt.Sprintf("%d syntax errors in %d trees", totals.Diagnostics, totals.TreesWithErrors)))
	} else {
		parts = append(parts, r.styles.Success.Render("no syntax errors"))
	}
	if totals.FilesFailed > 0 {
		parts = append(parts, r.styles.Failure.Render(fmt.Sprintf("%d files failed", totals.FilesFailed)))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+strings.Join(parts, ", "))
}
