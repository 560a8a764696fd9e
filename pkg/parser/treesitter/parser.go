// Package treesitter builds syntax trees with the tree-sitter C# grammar.
//
// Tree-sitter decides the structure; the tokens and trivia come from the
// native lexer, so both builders produce trees over the same token stream
// and every tree round-trips. Grammar nodes without a syntax kind are
// flattened into their parent. ERROR and MISSING nodes become
// diagnostics, and a missing token is inserted for each MISSING leaf.
package treesitter

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	native "github.com/yaklabco/syntree/pkg/parser/csharp"
	"github.com/yaklabco/syntree/pkg/source"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// Name identifies this parser in configuration and logs.
const Name = "treesitter"

// Diagnostic codes reported by this builder.
const (
	CodeSyntaxError  = "TS0001"
	CodeMissingToken = "TS0002"
)

// Parser builds syntax trees with tree-sitter. A Parser is safe for
// concurrent use; each Parse call uses its own tree-sitter parser.
type Parser struct {
	language *sitter.Language
}

// New creates a parser for the tree-sitter C# grammar.
func New() *Parser {
	return &Parser{language: csharp.GetLanguage()}
}

// Name returns the parser name.
func (p *Parser) Name() string {
	return Name
}

// Parse builds a tree for src. Syntax errors are tree diagnostics.
func (p *Parser) Parse(ctx context.Context, path string, src *source.Text) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	content := src.String()

	tsParser := sitter.NewParser()
	tsParser.SetLanguage(p.language)
	defer tsParser.Close()

	tsTree, err := tsParser.ParseCtx(ctx, nil, []byte(content))
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tsTree.Close()

	tokens, diags := native.Lex(content)
	b := &builder{content: content, toks: tokens, eof: len(tokens) - 1}

	root := syntax.NewGreenNode(syntax.KindCompilationUnit)
	b.fill(root, tsTree.RootNode())
	b.emitUntil(root, len(content)+1)
	root.Append(b.toks[b.eof])

	diags = append(diags, b.diags...)
	slices.SortStableFunc(diags, func(a, b syntax.Diagnostic) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})

	tree, err := syntax.Build(src, root, syntax.WithPath(path), syntax.WithDiagnostics(diags))
	if err != nil {
		return nil, fmt.Errorf("build syntax tree: %w", err)
	}
	return tree, nil
}

// builder distributes the lexer's tokens over the tree-sitter structure.
// next is the first token not yet placed; tokens are placed in order.
type builder struct {
	content string
	toks    []*syntax.GreenToken
	eof     int
	next    int
	fullEnd int
	diags   []syntax.Diagnostic
}

// emitUntil places every pending token starting before limit into green.
func (b *builder) emitUntil(green *syntax.GreenNode, limit int) {
	for b.next < b.eof && b.toks[b.next].Span.Start < limit {
		tok := b.toks[b.next]
		green.Append(tok)
		b.fullEnd = tok.FullEnd()
		b.next++
	}
}

// exhausted reports whether no pending token starts inside n.
func (b *builder) exhausted(n *sitter.Node) bool {
	return b.next >= b.eof || b.toks[b.next].Span.Start >= int(n.EndByte())
}

// fill places the tokens of n's children into green, creating child nodes
// for the grammar nodes that have a syntax kind.
func (b *builder) fill(green *syntax.GreenNode, n *sitter.Node) {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}

		if child.IsMissing() {
			b.emitUntil(green, int(child.StartByte()))
			b.missing(green, child)
			continue
		}
		if child.Type() == "ERROR" {
			b.report(child, CodeSyntaxError, "syntax error")
		}
		if b.exhausted(child) {
			continue
		}
		b.emitUntil(green, int(child.StartByte()))

		if group, ok := groupAfter(n.Type(), child.Type()); ok && i+1 < count {
			// "=" value, "else" statement.
			node := syntax.NewGreenNode(group)
			b.place(node, n, i, child)
			b.place(node, n, i+1, n.Child(i+1))
			green.Append(nonEmpty(node))
			i++
			continue
		}
		if n.Type() == "using_directive" && child.Type() == "identifier" && i+1 < count && n.Child(i+1).Type() == "=" {
			alias := syntax.NewGreenNode(syntax.KindNameEquals)
			b.place(alias, n, i, child)
			b.place(alias, n, i+1, n.Child(i+1))
			green.Append(nonEmpty(alias))
			i++
			continue
		}

		b.place(green, n, i, child)
	}
	b.emitUntil(green, int(n.EndByte()))
}

// place adds child, the i-th child of parent, to green: as its own node
// when it maps to a kind, flattened otherwise.
func (b *builder) place(green *syntax.GreenNode, parent *sitter.Node, i int, child *sitter.Node) {
	if child == nil || b.exhausted(child) {
		return
	}
	kind, ok := kindOf(parent, i, child, b.content)
	if !ok {
		b.fill(green, child)
		return
	}
	node := syntax.NewGreenNode(kind)
	b.fill(node, child)
	green.Append(nonEmpty(node))
}

func (b *builder) missing(green *syntax.GreenNode, n *sitter.Node) {
	kind, ok := syntax.FixedTextKind(n.Type())
	if !ok {
		kind = syntax.TokenIdentifier
	}
	b.report(n, CodeMissingToken, fmt.Sprintf("'%s' expected", n.Type()))
	green.Append(syntax.NewMissingToken(kind, b.fullEnd))
}

func (b *builder) report(n *sitter.Node, code, msg string) {
	b.diags = append(b.diags, syntax.Diagnostic{
		Span:    source.NewSpan(int(n.StartByte()), int(n.EndByte())),
		Code:    code,
		Message: msg,
	})
}

// nonEmpty returns nil for a node that received no tokens.
func nonEmpty(n *syntax.GreenNode) *syntax.GreenNode {
	if len(n.Children) == 0 {
		return nil
	}
	return n
}
