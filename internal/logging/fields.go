package logging

// Structured logging keys.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Pipeline.
	FieldParser   = "parser"
	FieldJobs     = "jobs"
	FieldMode     = "mode"
	FieldKind     = "kind"
	FieldDepth    = "depth"
	FieldSnippets = "snippets"
	FieldLanguage = "language"

	// Statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithErrors = "files_with_errors"
	FieldDiagnostics     = "diagnostics"
	FieldNodes           = "nodes"
	FieldTokens          = "tokens"
	FieldDuration        = "duration"

	// Build information.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
