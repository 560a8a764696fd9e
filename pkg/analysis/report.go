package analysis

import "time"

// Report contains pre-computed views of a run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Diagnostics is the flat list for detailed output.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByFile summarizes each analyzed tree.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByCode groups diagnostics by code.
	ByCode []CodeAnalysis `json:"byCode,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry represents a single syntax error in the report.
type DiagnosticEntry struct {
	FilePath    string `json:"filePath"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesAnalyzed"`
	FilesFailed     int `json:"filesFailed"`
	Trees           int `json:"trees"`
	TreesWithErrors int `json:"treesWithErrors"`
	Diagnostics     int `json:"diagnostics"`
	Nodes           int `json:"nodes"`
	Tokens          int `json:"tokens"`
	Usings          int `json:"usings"`
	Variables       int `json:"variables"`
	Invocations     int `json:"invocations"`
	Matches         int `json:"matches"`
}

// HasDiagnostics returns true if any tree has syntax errors.
func (t Totals) HasDiagnostics() bool {
	return t.Diagnostics > 0
}

// HasFailures returns true if any file could not be analyzed.
func (t Totals) HasFailures() bool {
	return t.FilesFailed > 0
}

// FileAnalysis contains aggregated data for a single tree.
type FileAnalysis struct {
	Path        string   `json:"path"`
	Nodes       int      `json:"nodes"`
	Tokens      int      `json:"tokens"`
	Diagnostics int      `json:"diagnostics"`
	Codes       []string `json:"codes,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// CodeAnalysis contains aggregated data for a single diagnostic code.
type CodeAnalysis struct {
	Code  string   `json:"code"`
	Count int      `json:"count"`
	Files []string `json:"files,omitempty"`
}
