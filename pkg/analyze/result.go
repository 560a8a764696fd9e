package analyze

import (
	"strconv"

	"github.com/yaklabco/syntree/pkg/collect"
	"github.com/yaklabco/syntree/pkg/source"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// Entry is one collected node with its location.
type Entry struct {
	Kind syntax.Kind `json:"kind"`
	// Name is the using name, the declared variable names or the invoked
	// expression, depending on the collection.
	Name        string `json:"name,omitempty"`
	Text        string `json:"text"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

func newEntry(n syntax.Node, name string) Entry {
	loc := n.Location()
	return Entry{
		Kind:        n.Kind(),
		Name:        name,
		Text:        n.Text(),
		StartLine:   loc.Start.Line,
		StartColumn: loc.Start.Column,
		EndLine:     loc.End.Line,
		EndColumn:   loc.End.Column,
	}
}

// Diagnostic is a syntax error with its location.
type Diagnostic struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
}

func newDiagnostic(src *source.Text, diag syntax.Diagnostic) Diagnostic {
	d := Diagnostic{
		Code:        diag.Code,
		Message:     diag.Message,
		StartOffset: diag.Span.Start,
		EndOffset:   diag.Span.End,
	}
	if loc, err := src.Location(diag.Span); err == nil {
		d.StartLine, d.StartColumn = loc.Start.Line, loc.Start.Column
		d.EndLine, d.EndColumn = loc.End.Line, loc.End.Column
	}
	return d
}

// FileResult holds what one analysis gathered from one tree.
type FileResult struct {
	// Path is the analyzed file. Standard input is reported as "-".
	Path string `json:"path"`

	// Snippet is the 1-based index of the Markdown snippet, or 0 for a
	// C# file.
	Snippet int `json:"snippet,omitempty"`

	// Tree is the parsed tree.
	Tree *syntax.Tree `json:"-"`

	Nodes  int `json:"nodes"`
	Tokens int `json:"tokens"`

	// Diagnostics are the syntax errors of the tree.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	Trace       []collect.TraceEntry `json:"trace,omitempty"`
	Usings      []Entry              `json:"usings,omitempty"`
	Variables   []Entry              `json:"variables,omitempty"`
	Invocations []Entry              `json:"invocations,omitempty"`
	Matches     []Entry              `json:"matches,omitempty"`

	Description *collect.Description `json:"description,omitempty"`
	// DescribeError explains where the description stopped.
	DescribeError string `json:"describeError,omitempty"`

	lineOffset int
}

// HasErrors returns true if the tree has syntax errors.
func (r *FileResult) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// DisplayPath returns the path with the snippet index appended.
func (r *FileResult) DisplayPath() string {
	if r.Snippet == 0 {
		return r.Path
	}
	return r.Path + "#" + strconv.Itoa(r.Snippet)
}

// SourceLine returns the text of a reported line, or "" when the tree
// is gone or the line is outside it.
func (r *FileResult) SourceLine(line int) string {
	if r.Tree == nil {
		return ""
	}
	content, err := r.Tree.Source().LineContent(line - r.lineOffset)
	if err != nil {
		return ""
	}
	return content
}

// shiftLines moves every reported line by offset.
func (r *FileResult) shiftLines(offset int) {
	if offset == 0 {
		return
	}
	r.lineOffset += offset
	for _, entries := range [][]Entry{r.Usings, r.Variables, r.Invocations, r.Matches} {
		for i := range entries {
			entries[i].StartLine += offset
			entries[i].EndLine += offset
		}
	}
	for i := range r.Diagnostics {
		if r.Diagnostics[i].StartLine > 0 {
			r.Diagnostics[i].StartLine += offset
			r.Diagnostics[i].EndLine += offset
		}
	}
}
