// Package reporter writes analysis results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/syntree/pkg/analysis"
	"github.com/yaklabco/syntree/pkg/runner"
)

var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes analysis results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of syntax errors reported and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Diagnostics, nil
}

func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	return &reporterFacade{
		renderer:     renderer,
		analysisOpts: analysisOptions(opts),
	}
}

func analysisOptions(opts Options) analysis.Options {
	aopts := analysis.DefaultOptions()
	aopts.WorkingDir = opts.WorkingDir
	return aopts
}

// New creates a Reporter for opts.Format. An empty format selects text.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}
