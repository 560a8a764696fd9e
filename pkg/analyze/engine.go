// Package analyze parses C# inputs and gathers the facts each command
// reports: kind traces, using directives, declarations, invocations,
// query matches and the structural description of a program.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/syntree/pkg/collect"
	"github.com/yaklabco/syntree/pkg/fsutil"
	"github.com/yaklabco/syntree/pkg/langdetect"
	"github.com/yaklabco/syntree/pkg/query"
	"github.com/yaklabco/syntree/pkg/snippets"
	"github.com/yaklabco/syntree/pkg/source"
	"github.com/yaklabco/syntree/pkg/syntax"
	"github.com/yaklabco/syntree/pkg/walk"
)

// Error categories returned by ProcessFile.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDecode indicates the content is not valid UTF-8.
	ErrDecode = errors.New("decode failure")

	// ErrParseFailure indicates the parser could not build a tree.
	ErrParseFailure = errors.New("parse failure")

	// ErrSkipped indicates a generated file left out by Options.SkipGenerated.
	ErrSkipped = errors.New("generated file skipped")
)

// Parser builds a syntax tree from decoded source text. Syntax errors
// are diagnostics on the returned tree; an error means no tree exists.
type Parser interface {
	Name() string
	Parse(ctx context.Context, path string, src *source.Text) (*syntax.Tree, error)
}

// Engine parses inputs and runs the collectors selected by Options.
type Engine struct {
	// Parser builds the trees.
	Parser Parser

	// Snippets extracts C# blocks from Markdown inputs. When nil,
	// Markdown files are parsed as C#.
	Snippets *snippets.Extractor
}

// NewEngine creates an Engine. A nil extractor disables Markdown support.
func NewEngine(parser Parser, extractor *snippets.Extractor) *Engine {
	return &Engine{Parser: parser, Snippets: extractor}
}

// ProcessFile reads path and analyzes its content.
func (e *Engine) ProcessFile(ctx context.Context, path string, opts Options) ([]*FileResult, error) {
	content, _, err := fsutil.ReadFile(ctx, path, fsutil.DefaultMaxFileSize)
	if err != nil {
		return nil, categorizeError(err)
	}
	if opts.SkipGenerated && langdetect.Skip(path, content) {
		return nil, fmt.Errorf("%s: %w", path, ErrSkipped)
	}
	return e.AnalyzeFile(ctx, path, content, opts)
}

// AnalyzeFile analyzes content read from path. A C# file yields one
// result. A Markdown file yields one result per extracted snippet, with
// locations in Markdown lines.
func (e *Engine) AnalyzeFile(ctx context.Context, path string, content []byte, opts Options) ([]*FileResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if e.Snippets == nil || !IsMarkdown(path) {
		src, err := source.Load(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		result, err := e.analyzeText(ctx, path, src, opts)
		if err != nil {
			return nil, err
		}
		return []*FileResult{result}, nil
	}

	blocks, err := e.Snippets.Extract(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("extract snippets: %w", err)
	}

	results := make([]*FileResult, 0, len(blocks))
	for _, block := range blocks {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("analysis cancelled: %w", err)
		}

		src, err := source.Load(block.Content)
		if err != nil {
			return results, fmt.Errorf("%w: snippet %d: %w", ErrDecode, block.Index+1, err)
		}
		result, err := e.analyzeText(ctx, path, src, opts)
		if err != nil {
			return results, fmt.Errorf("snippet %d: %w", block.Index+1, err)
		}
		result.Snippet = block.Index + 1
		result.shiftLines(block.StartLine - 1)
		results = append(results, result)
	}
	return results, nil
}

func (e *Engine) analyzeText(ctx context.Context, path string, src *source.Text, opts Options) (*FileResult, error) {
	tree, err := e.Parser.Parse(ctx, path, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	result := &FileResult{
		Path:   path,
		Tree:   tree,
		Nodes:  tree.NodeCount(),
		Tokens: tree.TokenCount(),
	}
	for _, diag := range tree.Diagnostics() {
		result.Diagnostics = append(result.Diagnostics, newDiagnostic(src, diag))
	}

	root := tree.Root()
	var using []collect.Option
	switch {
	case opts.AllUsings:
		using = append(using, collect.WithExcludedRoot(""))
	case opts.ExcludedRoot != "":
		using = append(using, collect.WithExcludedRoot(opts.ExcludedRoot))
	}

	switch opts.mode() {
	case ModeDump:
		var recOpts []collect.RecorderOption
		if opts.Depth >= walk.DepthTokens {
			recOpts = append(recOpts, collect.WithTokens())
		}
		trace, err := collect.NewKindRecorder(recOpts...).Record(root)
		if err != nil {
			return nil, fmt.Errorf("record kinds: %w", err)
		}
		result.Trace = trace

	case ModeUsings:
		usings, err := collect.NewUsingCollector(using...).Collect(root)
		if err != nil {
			return nil, fmt.Errorf("collect usings: %w", err)
		}
		result.Usings = usingEntries(usings)

	case ModeCollect:
		collector := collect.NewDeclarationCollector(using...)
		if err := collector.Collect(root); err != nil {
			return nil, fmt.Errorf("collect declarations: %w", err)
		}
		result.Usings = usingEntries(collector.Usings())
		for _, decl := range collector.Variables() {
			result.Variables = append(result.Variables, newEntry(decl.Node, variableNames(decl)))
		}
		for _, inv := range collector.Invocations() {
			result.Invocations = append(result.Invocations, newEntry(inv.Node, inv.Expression().Text()))
		}

	case ModeQuery:
		for n := range query.DescendantsOfKind(root, opts.Kinds...) {
			result.Matches = append(result.Matches, newEntry(n, ""))
		}

	case ModeDescribe:
		desc, err := collect.Describe(tree)
		result.Description = &desc
		if err != nil {
			result.DescribeError = err.Error()
		}
	}

	return result, nil
}

func usingEntries(usings []syntax.UsingDirective) []Entry {
	entries := make([]Entry, 0, len(usings))
	for _, u := range usings {
		entries = append(entries, newEntry(u.Node, u.NameText()))
	}
	return entries
}

func variableNames(decl syntax.VariableDeclaration) string {
	vars := decl.Variables()
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Identifier().ValueText()
	}
	return strings.Join(names, ", ")
}

// IsMarkdown reports whether path has a Markdown extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// categorizeError wraps an error with the matching category.
func categorizeError(err error) error {
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// IsInputError reports whether err was caused by the input file rather
// than by the program.
func IsInputError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrDecode) ||
		errors.Is(err, fsutil.ErrIsDirectory) ||
		errors.Is(err, fsutil.ErrTooLarge)
}
