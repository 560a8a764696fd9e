package runner

import "github.com/yaklabco/syntree/pkg/analyze"

// FileOutcome holds the analysis of one discovered file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Results holds one result for a C# file and one per snippet for a
	// Markdown file. Nil if the file could not be processed.
	Results []*analyze.FileResult

	// Skipped is true if the file was recognized as generated.
	Skipped bool

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of generated files left out.
	FilesSkipped int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesWithErrors is the number of files with at least one syntax error.
	FilesWithErrors int

	// Trees is the number of trees built; a Markdown file may build several.
	Trees int

	// Nodes and Tokens total the sizes of all trees.
	Nodes  int
	Tokens int

	// DiagnosticsTotal is the total number of syntax errors across all files.
	DiagnosticsTotal int

	// DiagnosticsByCode maps diagnostic codes to counts.
	DiagnosticsByCode map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasDiagnostics reports whether any tree has syntax errors.
func (r *Result) HasDiagnostics() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// FileResults returns every analysis result in file order.
func (r *Result) FileResults() []*analyze.FileResult {
	if r == nil {
		return nil
	}
	var out []*analyze.FileResult
	for _, file := range r.Files {
		out = append(out, file.Results...)
	}
	return out
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		DiagnosticsByCode: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Skipped {
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesProcessed++

	withErrors := false
	for _, fr := range outcome.Results {
		r.Stats.Trees++
		r.Stats.Nodes += fr.Nodes
		r.Stats.Tokens += fr.Tokens
		r.Stats.DiagnosticsTotal += len(fr.Diagnostics)
		for _, diag := range fr.Diagnostics {
			r.Stats.DiagnosticsByCode[diag.Code]++
		}
		if fr.HasErrors() {
			withErrors = true
		}
	}
	if withErrors {
		r.Stats.FilesWithErrors++
	}
}
