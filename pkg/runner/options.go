// Package runner provides multi-file analysis orchestration.
package runner

import "github.com/yaklabco/syntree/pkg/analyze"

// Options controls multi-file analysis behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// to analyze. Defaults to [".cs"] via DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns, relative to WorkingDir, of files and
	// directories to skip. They carry the ignore rules from config and CLI.
	ExcludeGlobs []string

	// DetectLanguage makes discovery read files without an extension and
	// keep those whose content is detected as C#.
	DetectLanguage bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Analysis selects what each file is analyzed for.
	Analysis analyze.Options
}

// DefaultExtensions returns the default set of C# file extensions.
func DefaultExtensions() []string {
	return []string{".cs"}
}

// MarkdownExtensions returns the extensions of Markdown documents whose
// code blocks can be analyzed.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
