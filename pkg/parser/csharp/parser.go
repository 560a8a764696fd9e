// Package csharp provides a hand-written, error-tolerant C# parser that
// builds full-fidelity syntax trees.
//
// The parser never fails on malformed input: unexpected text is kept as
// skipped-token trivia, absent tokens are inserted as zero-width missing
// tokens, and both are reported as diagnostics on the tree. Parse returns
// an error only for cancellation or an internal invariant violation.
package csharp

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/syntree/pkg/source"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// Name identifies this parser in configuration and logs.
const Name = "native"

// Parser builds syntax trees from C# source.
type Parser struct{}

// New creates a parser.
func New() *Parser {
	return &Parser{}
}

// Name returns the parser name.
func (p *Parser) Name() string {
	return Name
}

// Parse lexes and parses src into an immutable tree. Syntax errors are
// recorded as tree diagnostics.
func (p *Parser) Parse(ctx context.Context, path string, src *source.Text) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	content := src.String()
	tokens, lexDiags := Lex(content)

	ps := &parser{ctx: ctx, src: content, toks: tokens}
	root := ps.parseCompilationUnit()
	if ps.err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", ps.err)
	}

	diags := append(lexDiags, ps.diags...)
	slices.SortStableFunc(diags, func(a, b syntax.Diagnostic) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})

	tree, err := syntax.Build(src, root, syntax.WithPath(path), syntax.WithDiagnostics(diags))
	if err != nil {
		return nil, fmt.Errorf("build syntax tree: %w", err)
	}

	return tree, nil
}

// ParseText parses text with a background context. It is a convenience for
// tests and callers that already hold decoded text.
func ParseText(text string) (*syntax.Tree, error) {
	return New().Parse(context.Background(), "", source.FromString(text))
}

// parser is the recursive-descent state over a lexed token slice. Lookahead
// is done by scanning token kinds ahead of pos without building nodes, so
// the parser never has to undo work.
type parser struct {
	ctx   context.Context
	src   string
	toks  []*syntax.GreenToken
	pos   int
	diags []syntax.Diagnostic
	err   error

	// typeArgScans memoizes scanTypeArgumentList by the index of its '<'.
	typeArgScans map[int]scanResult
}

type scanResult struct {
	end int
	ok  bool
}

func (p *parser) cur() *syntax.GreenToken {
	return p.toks[p.pos]
}

func (p *parser) kind() syntax.TokenKind {
	return p.toks[p.pos].Kind
}

func (p *parser) kindAt(i int) syntax.TokenKind {
	if i >= len(p.toks) {
		return syntax.TokenEndOfFile
	}
	return p.toks[i].Kind
}

func (p *parser) peekKind(n int) syntax.TokenKind {
	return p.kindAt(p.pos + n)
}

func (p *parser) textAt(i int) string {
	if i >= len(p.toks) {
		return ""
	}
	span := p.toks[i].Span
	return p.src[span.Start:span.End]
}

// isWord reports whether token i is the identifier word, which is how
// contextual keywords appear in the token stream.
func (p *parser) isWord(i int, word string) bool {
	return p.kindAt(i) == syntax.TokenIdentifier && p.textAt(i) == word
}

func (p *parser) atWord(word string) bool {
	return p.isWord(p.pos, word)
}

// adjacent reports whether tokens i and i+1 touch with no trivia between.
func (p *parser) adjacent(i int) bool {
	if i+1 >= len(p.toks) {
		return false
	}
	a, b := p.toks[i], p.toks[i+1]
	return len(a.Trailing) == 0 && len(b.Leading) == 0 && a.Span.End == b.Span.Start
}

// advance consumes the current token. The end-of-file token is owned by
// the compilation unit, so advancing at end of input yields a missing token.
func (p *parser) advance() *syntax.GreenToken {
	tok := p.toks[p.pos]
	if tok.Kind == syntax.TokenEndOfFile {
		return syntax.NewMissingToken(syntax.TokenUnknown, tok.FullStart())
	}
	p.pos++
	return tok
}

// optional consumes the current token if it has the given kind.
func (p *parser) optional(kind syntax.TokenKind) *syntax.GreenToken {
	if p.kind() == kind {
		return p.advance()
	}
	return nil
}

// expect consumes a token of the given kind or inserts a missing one.
func (p *parser) expect(kind syntax.TokenKind) *syntax.GreenToken {
	if p.kind() == kind {
		return p.advance()
	}
	return p.missing(kind)
}

// expectWord consumes a contextual keyword or inserts a missing identifier.
func (p *parser) expectWord(word string) *syntax.GreenToken {
	if p.atWord(word) {
		return p.advance()
	}
	p.reportAtPrevious("CS1003", fmt.Sprintf("syntax error, '%s' expected", word))
	return syntax.NewMissingToken(syntax.TokenIdentifier, p.cur().FullStart())
}

func (p *parser) missing(kind syntax.TokenKind) *syntax.GreenToken {
	p.reportAtPrevious(expectedCode(kind), expectedMessage(kind))
	return syntax.NewMissingToken(kind, p.cur().FullStart())
}

func expectedCode(kind syntax.TokenKind) string {
	switch kind {
	case syntax.TokenSemicolon:
		return "CS1002"
	case syntax.TokenCloseParen:
		return "CS1026"
	case syntax.TokenCloseBrace:
		return "CS1513"
	case syntax.TokenOpenBrace:
		return "CS1514"
	case syntax.TokenIdentifier:
		return "CS1001"
	default:
		return "CS1003"
	}
}

func expectedMessage(kind syntax.TokenKind) string {
	if text := kind.Text(); text != "" {
		return fmt.Sprintf("'%s' expected", text)
	}
	if kind == syntax.TokenIdentifier {
		return "identifier expected"
	}
	return kind.String() + " expected"
}

func (p *parser) report(span source.Span, code, msg string) {
	p.diags = append(p.diags, syntax.Diagnostic{Span: span, Code: code, Message: msg})
}

// reportAtPrevious reports at the end of the last consumed token.
func (p *parser) reportAtPrevious(code, msg string) {
	offset := p.cur().Span.Start
	if p.pos > 0 {
		offset = p.toks[p.pos-1].Span.End
	}
	p.report(source.NewSpan(offset, offset), code, msg)
}

// skip turns the current token into skipped-token trivia on the following
// token. The end-of-file token cannot be skipped.
func (p *parser) skip(code, msg string) {
	tok := p.cur()
	if tok.Kind == syntax.TokenEndOfFile {
		return
	}
	if tok.Kind != syntax.TokenUnknown {
		p.report(tok.Span, code, fmt.Sprintf(msg, p.textAt(p.pos)))
	}

	next := p.toks[p.pos+1]
	merged := make([]syntax.Trivia, 0, len(tok.Leading)+len(tok.Trailing)+len(next.Leading)+1)
	merged = append(merged, tok.Leading...)
	merged = append(merged, syntax.Trivia{
		Kind: syntax.TriviaSkippedTokens,
		Span: tok.Span,
		Text: p.src[tok.Span.Start:tok.Span.End],
	})
	merged = append(merged, tok.Trailing...)
	merged = append(merged, next.Leading...)
	next.Leading = merged
	p.pos++
}

// cancelled records context cancellation; loops over members stop once set.
func (p *parser) cancelled() bool {
	if p.err != nil {
		return true
	}
	if err := p.ctx.Err(); err != nil {
		p.err = err
		return true
	}
	return false
}
