// Package snippets extracts C# code blocks from Markdown documents so
// that code in documentation can be analyzed like source files.
package snippets

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/syntree/pkg/langdetect"
)

// Snippet is the content of one code block.
type Snippet struct {
	// Index counts the extracted snippets of a document from zero.
	Index int
	// Info is the fence info string; empty for unlabeled and indented blocks.
	Info string
	// Content is the block's text with the fence and any container
	// indentation removed.
	Content []byte
	// StartLine is the 1-based Markdown line of the first content line.
	StartLine int
	// Detected is set when the block was chosen by content detection
	// rather than by its info string.
	Detected bool
}

// LineOffset converts a 1-based line within the snippet to the Markdown
// line.
func (s Snippet) LineOffset(line int) int {
	return s.StartLine + line - 1
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLanguages replaces the fence tags that select a block. Matching is
// case-insensitive on the first word of the info string.
func WithLanguages(tags ...string) Option {
	return func(e *Extractor) {
		e.tags = make([]string, len(tags))
		for i, tag := range tags {
			e.tags[i] = strings.ToLower(tag)
		}
	}
}

// WithDetection makes unlabeled blocks eligible when their content is
// detected as C#.
func WithDetection(enabled bool) Option {
	return func(e *Extractor) { e.detect = enabled }
}

// WithGFM parses documents as GitHub Flavored Markdown.
func WithGFM() Option {
	return func(e *Extractor) { e.gfm = true }
}

// Extractor finds C# blocks in Markdown. It is safe for concurrent use.
type Extractor struct {
	tags   []string
	detect bool
	gfm    bool
	md     goldmark.Markdown
}

// New creates an Extractor that selects fences tagged cs, csharp or c#.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}

	var mdOpts []goldmark.Option
	if e.gfm {
		mdOpts = append(mdOpts, goldmark.WithExtensions(extension.GFM))
	}
	e.md = goldmark.New(mdOpts...)
	return e
}

// Extract returns the selected code blocks of content in document order.
func (e *Extractor) Extract(ctx context.Context, content []byte) ([]Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract snippets: %w", err)
	}

	doc := e.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	var out []Snippet
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch block := n.(type) {
		case *ast.FencedCodeBlock:
			info := ""
			if block.Info != nil {
				info = string(block.Info.Segment.Value(content))
			}
			body := blockText(block, content)
			selected, detected := e.selects(info, body)
			if selected {
				out = append(out, e.snippet(len(out), info, body, block, content, detected))
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			body := blockText(block, content)
			if e.detect && langdetect.IsCSharp(body) {
				out = append(out, e.snippet(len(out), "", body, block, content, true))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("extract snippets: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract snippets: %w", err)
	}
	return out, nil
}

func (e *Extractor) selects(info string, body []byte) (selected, detected bool) {
	if strings.TrimSpace(info) == "" {
		if e.detect && langdetect.IsCSharp(body) {
			return true, true
		}
		return false, false
	}
	if e.tags == nil {
		return langdetect.IsCSharpTag(info), false
	}
	return slices.Contains(e.tags, strings.ToLower(strings.Fields(info)[0])), false
}

func (e *Extractor) snippet(index int, info string, body []byte, block ast.Node, content []byte, detected bool) Snippet {
	return Snippet{
		Index:     index,
		Info:      info,
		Content:   body,
		StartLine: startLine(block, content),
		Detected:  detected,
	}
}

func blockText(block ast.Node, content []byte) []byte {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(content))
	}
	return buf.Bytes()
}

// startLine returns the line of the first content line, or of the line
// after the opening fence for an empty block.
func startLine(block ast.Node, content []byte) int {
	lines := block.Lines()
	if lines.Len() > 0 {
		return bytes.Count(content[:lines.At(0).Start], []byte("\n")) + 1
	}
	if fenced, ok := block.(*ast.FencedCodeBlock); ok && fenced.Info != nil {
		return bytes.Count(content[:fenced.Info.Segment.Start], []byte("\n")) + 2
	}
	return 1
}
