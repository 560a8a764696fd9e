// Package analysis turns a runner result into report views: totals,
// per-file summaries and diagnostics grouped by code.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/syntree/pkg/analyze"
	"github.com/yaklabco/syntree/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" || !filepath.IsAbs(absPath) {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	codeMap   map[string]*CodeAnalysis
	codeFiles map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		codeMap:   make(map[string]*CodeAnalysis),
		codeFiles: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) getOrCreateCode(code string) *CodeAnalysis {
	if _, ok := ctx.codeMap[code]; !ok {
		ctx.codeMap[code] = &CodeAnalysis{Code: code}
		ctx.codeFiles[code] = make(map[string]bool)
	}
	return ctx.codeMap[code]
}

func (ctx *analysisContext) buildByCode(opts Options) []CodeAnalysis {
	result := make([]CodeAnalysis, 0, len(ctx.codeMap))
	for code, ca := range ctx.codeMap {
		for f := range ctx.codeFiles[code] {
			ca.Files = append(ca.Files, f)
		}
		slices.Sort(ca.Files)
		result = append(result, *ca)
	}
	sortCodeAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

func createDiagnosticEntry(path string, diag *analyze.Diagnostic) DiagnosticEntry {
	return DiagnosticEntry{
		FilePath:    path,
		Code:        diag.Code,
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
	}
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the results to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		if file.Skipped {
			continue
		}
		report.Totals.Files++

		if file.Error != nil {
			report.Totals.FilesFailed++
			if opts.IncludeByFile {
				report.ByFile = append(report.ByFile, FileAnalysis{
					Path:  makeRelativePath(file.Path, opts.WorkingDir),
					Error: file.Error.Error(),
				})
			}
			continue
		}

		for _, fr := range file.Results {
			displayPath := makeRelativePath(fr.DisplayPath(), opts.WorkingDir)
			totals := &report.Totals
			totals.Trees++
			totals.Nodes += fr.Nodes
			totals.Tokens += fr.Tokens
			totals.Usings += len(fr.Usings)
			totals.Variables += len(fr.Variables)
			totals.Invocations += len(fr.Invocations)
			totals.Matches += len(fr.Matches)
			if fr.HasErrors() {
				totals.TreesWithErrors++
			}

			fa := FileAnalysis{Path: displayPath, Nodes: fr.Nodes, Tokens: fr.Tokens}
			seen := make(map[string]bool)
			for i := range fr.Diagnostics {
				diag := &fr.Diagnostics[i]
				totals.Diagnostics++
				fa.Diagnostics++
				if !seen[diag.Code] {
					seen[diag.Code] = true
					fa.Codes = append(fa.Codes, diag.Code)
				}

				ca := ctx.getOrCreateCode(diag.Code)
				ca.Count++
				ctx.codeFiles[diag.Code][displayPath] = true

				if opts.IncludeDiagnostics {
					report.Diagnostics = append(report.Diagnostics, createDiagnosticEntry(displayPath, diag))
				}
			}
			slices.Sort(fa.Codes)

			if opts.IncludeByFile {
				report.ByFile = append(report.ByFile, fa)
			}
		}
	}

	if opts.IncludeByCode {
		report.ByCode = ctx.buildByCode(opts)
	}
	if opts.IncludeByFile {
		sortFileAnalysis(report.ByFile, opts.SortBy, opts.SortDesc)
	}

	return report
}

func sortCodeAnalysis(codes []CodeAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(codes, func(left, right CodeAnalysis) int {
		if sortBy == SortByAlpha {
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Code, right.Code)
		}
		result := cmp.Compare(left.Count, right.Count)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Code, right.Code)
		}
		return result
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(files, func(left, right FileAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Path, right.Path)
		case SortBySize:
			result = cmp.Compare(left.Nodes, right.Nodes)
		default: // SortByCount
			result = cmp.Compare(left.Diagnostics, right.Diagnostics)
		}
		if desc {
			result = -result
		}
		return result
	})
}
