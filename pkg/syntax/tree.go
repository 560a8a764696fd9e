// Package syntax provides an immutable, full-fidelity syntax tree.
//
// Every byte of the source belongs to exactly one token, either as token
// text or as leading/trailing trivia, so the full text of the root equals
// the source. Nodes and tokens are stored in per-tree arenas and handed out
// as small value handles; two handles are the same node exactly when they
// compare equal with ==.
package syntax

import (
	"fmt"
	"iter"

	"github.com/yaklabco/syntree/pkg/source"
)

// Tree is an immutable syntax tree over one source text.
// It is safe for concurrent readers.
type Tree struct {
	path        string
	src         *source.Text
	nodes       []nodeData
	tokens      []tokenData
	diagnostics []Diagnostic
}

// nodeData is the arena record of one node. Nodes are stored in pre-order,
// so the subtree of node i occupies indices [i, end).
type nodeData struct {
	kind     Kind
	parent   int32
	end      int32
	firstTok int32
	lastTok  int32
	children []childRef
}

// childRef encodes a child: values >= 0 index nodes, negative values are
// ^index into tokens.
type childRef int32

func (c childRef) isToken() bool { return c < 0 }

func (c childRef) index() int32 {
	if c < 0 {
		return int32(^c)
	}
	return int32(c)
}

type tokenData struct {
	kind      TokenKind
	span      source.Span
	fullStart int
	fullEnd   int
	leading   []Trivia
	trailing  []Trivia
	parent    int32
	missing   bool
}

// Diagnostic is a syntax error reported by a tree builder. The tree that
// carries it is still complete and round-trips.
type Diagnostic struct {
	Span    source.Span
	Code    string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Span, d.Code, d.Message)
}

// BuildOption configures Build.
type BuildOption func(*Tree)

// WithPath records the logical path of the source on the tree.
func WithPath(path string) BuildOption {
	return func(t *Tree) { t.path = path }
}

// WithDiagnostics attaches builder diagnostics to the tree.
func WithDiagnostics(diags []Diagnostic) BuildOption {
	return func(t *Tree) { t.diagnostics = append(t.diagnostics, diags...) }
}

// Build lays out a green tree into an immutable Tree and checks its
// invariants: tokens are contiguous and cover the whole source, every node
// holds at least one token, and trivia is contiguous around token text.
func Build(src *source.Text, root *GreenNode, opts ...BuildOption) (*Tree, error) {
	if src == nil {
		return nil, &InvalidTreeError{Reason: "nil source text"}
	}
	if root == nil {
		return nil, &InvalidTreeError{Reason: "nil root"}
	}

	tree := &Tree{src: src}
	for _, opt := range opts {
		opt(tree)
	}

	if _, err := tree.layout(root, -1); err != nil {
		return nil, err
	}
	if err := tree.validate(); err != nil {
		return nil, err
	}

	return tree, nil
}

func (t *Tree) layout(green *GreenNode, parent int32) (int32, error) {
	idx := int32(len(t.nodes))
	firstTok := int32(len(t.tokens))
	t.nodes = append(t.nodes, nodeData{kind: green.Kind, parent: parent})

	children := make([]childRef, 0, len(green.Children))
	for _, child := range green.Children {
		switch g := child.(type) {
		case *GreenNode:
			childIdx, err := t.layout(g, idx)
			if err != nil {
				return 0, err
			}
			children = append(children, childRef(childIdx))
		case *GreenToken:
			tokIdx := int32(len(t.tokens))
			t.tokens = append(t.tokens, tokenData{
				kind:      g.Kind,
				span:      g.Span,
				fullStart: g.FullStart(),
				fullEnd:   g.FullEnd(),
				leading:   g.Leading,
				trailing:  g.Trailing,
				parent:    idx,
				missing:   g.Missing,
			})
			children = append(children, childRef(^tokIdx))
		default:
			return 0, &InvalidTreeError{Reason: fmt.Sprintf("unexpected green element %T", child)}
		}
	}

	lastTok := int32(len(t.tokens)) - 1
	if lastTok < firstTok {
		return 0, &InvalidTreeError{Reason: fmt.Sprintf("%s node has no tokens", green.Kind)}
	}

	data := &t.nodes[idx]
	data.children = children
	data.firstTok = firstTok
	data.lastTok = lastTok
	data.end = int32(len(t.nodes))

	return idx, nil
}

func (t *Tree) validate() error {
	pos := 0
	for i := range t.tokens {
		tok := &t.tokens[i]
		if tok.fullStart != pos {
			return &InvalidTreeError{
				Offset: pos,
				Reason: fmt.Sprintf("token %d (%s) starts at %d, expected %d", i, tok.kind, tok.fullStart, pos),
			}
		}

		cursor := tok.fullStart
		for _, tr := range tok.leading {
			if tr.Span.Start != cursor || tr.Span.End < tr.Span.Start {
				return &InvalidTreeError{Offset: cursor, Reason: "leading trivia is not contiguous"}
			}
			cursor = tr.Span.End
		}
		if tok.span.Start != cursor || tok.span.End < tok.span.Start {
			return &InvalidTreeError{Offset: cursor, Reason: fmt.Sprintf("token %d (%s) text does not follow its trivia", i, tok.kind)}
		}
		cursor = tok.span.End
		for _, tr := range tok.trailing {
			if tr.Span.Start != cursor || tr.Span.End < tr.Span.Start {
				return &InvalidTreeError{Offset: cursor, Reason: "trailing trivia is not contiguous"}
			}
			cursor = tr.Span.End
		}
		if tok.missing && tok.span.Len() != 0 {
			return &InvalidTreeError{Offset: tok.span.Start, Reason: "missing token has width"}
		}

		pos = tok.fullEnd
	}

	if pos != t.src.Len() {
		return &InvalidTreeError{
			Offset: pos,
			Reason: fmt.Sprintf("tokens cover %d of %d bytes", pos, t.src.Len()),
		}
	}

	return nil
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return Node{tree: t, index: 0}
}

// Source returns the source text the tree was built from.
func (t *Tree) Source() *source.Text {
	return t.src
}

// Path returns the logical path recorded at build time, if any.
func (t *Tree) Path() string {
	return t.path
}

// Diagnostics returns a copy of the syntax diagnostics.
func (t *Tree) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(t.diagnostics))
	copy(out, t.diagnostics)
	return out
}

// HasErrors reports whether the builder recorded any syntax diagnostics.
func (t *Tree) HasErrors() bool {
	return len(t.diagnostics) > 0
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// TokenCount returns the number of tokens in the tree, including missing ones.
func (t *Tree) TokenCount() int {
	return len(t.tokens)
}

// Token returns the i-th token in source order.
func (t *Tree) Token(i int) (Token, bool) {
	if i < 0 || i >= len(t.tokens) {
		return Token{}, false
	}
	return Token{tree: t, index: int32(i)}, true
}

// Tokens yields every token in source order.
func (t *Tree) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for i := range t.tokens {
			if !yield(Token{tree: t, index: int32(i)}) {
				return
			}
		}
	}
}

// NodeByID returns the node with the given ID (see Node.ID).
func (t *Tree) NodeByID(id int) (Node, bool) {
	if id < 0 || id >= len(t.nodes) {
		return Node{}, false
	}
	return Node{tree: t, index: int32(id)}, true
}

// FullText returns the exact source text.
func (t *Tree) FullText() string {
	return t.src.String()
}
