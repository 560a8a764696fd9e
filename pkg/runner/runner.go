package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/syntree/internal/logging"
	"github.com/yaklabco/syntree/pkg/analyze"
)

// Runner orchestrates multi-file analysis using an analyze.Engine.
type Runner struct {
	// Engine parses and analyzes each file.
	Engine *analyze.Engine
}

// New creates a new Runner with the given engine.
func New(engine *analyze.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers files under opts.Paths and analyzes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	logger.Debug("analyzing files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
		logging.FieldMode, string(opts.Analysis.Mode),
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.Analysis)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers may complete out of order.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	logger.Debug("analysis finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithErrors, result.Stats.FilesWithErrors,
		logging.FieldDiagnostics, result.Stats.DiagnosticsTotal,
		logging.FieldDuration, time.Since(start),
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// RunContent analyzes content that was not discovered on disk, such as
// standard input, and reports it under path like a discovered file.
func (r *Runner) RunContent(ctx context.Context, path string, content []byte, opts analyze.Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = 1

	outcome := FileOutcome{Path: path}
	results, err := r.Engine.AnalyzeFile(ctx, path, content, opts)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Results = results
	}
	result.accumulate(outcome)

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts analyze.Options,
) {
	logger := logging.FromContext(ctx)

	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}

		results, err := r.Engine.ProcessFile(ctx, path, opts)
		switch {
		case errors.Is(err, analyze.ErrSkipped):
			outcome.Skipped = true
			logger.Debug("skipping generated file", logging.FieldPath, path)
		case err != nil:
			outcome.Error = err
		default:
			outcome.Results = results
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
