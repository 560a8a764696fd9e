package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/syntree/internal/ui/pretty"
	"github.com/yaklabco/syntree/pkg/analyze"
	"github.com/yaklabco/syntree/pkg/runner"
)

// TextReporter formats results as styled terminal output, one block per tree.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to analyze."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		for _, fr := range file.Results {
			total += r.reportTree(fr)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportTree writes one tree's findings and returns its syntax error count.
func (r *TextReporter) reportTree(fr *analyze.FileResult) int {
	if !hasFindings(fr) {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(fr.DisplayPath(), len(fr.Diagnostics), "syntax error"))

	for _, entry := range fr.Trace {
		fmt.Fprint(r.bw, r.styles.FormatTraceEntry(entry))
	}

	r.section("Usings", fr.Usings)
	r.section("Variables", fr.Variables)
	r.section("Invocations", fr.Invocations)
	r.section("Matches", fr.Matches)

	if fr.Description != nil {
		fmt.Fprint(r.bw, r.styles.FormatDescription(fr.Description, fr.DescribeError))
	}

	for _, diag := range fr.Diagnostics {
		var sourceLine string
		if r.opts.ShowContext {
			sourceLine = fr.SourceLine(diag.StartLine)
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(fr.DisplayPath(), diag, r.opts.ShowContext, sourceLine))
	}

	fmt.Fprintln(r.bw)

	return len(fr.Diagnostics)
}

func (r *TextReporter) section(title string, entries []analyze.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(r.bw, " %s %s\n", r.styles.Section.Render(title), r.styles.Dim.Render(fmt.Sprintf("(%d)", len(entries))))
	for _, entry := range entries {
		fmt.Fprint(r.bw, r.styles.FormatEntry(entry))
	}
}

func hasFindings(fr *analyze.FileResult) bool {
	return len(fr.Trace) > 0 ||
		len(fr.Usings) > 0 ||
		len(fr.Variables) > 0 ||
		len(fr.Invocations) > 0 ||
		len(fr.Matches) > 0 ||
		fr.Description != nil ||
		len(fr.Diagnostics) > 0
}
