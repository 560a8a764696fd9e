package syntax

import "github.com/yaklabco/syntree/pkg/source"

// Green is a node or token under construction. Tree builders assemble a
// green tree bottom-up and hand its root to Build, which lays it out into
// an immutable Tree. Green values are discarded freely during speculative
// parsing; only the tree passed to Build is kept.
type Green interface {
	isGreen()
}

// GreenNode is an interior node under construction.
type GreenNode struct {
	Kind     Kind
	Children []Green
}

func (*GreenNode) isGreen() {}

// GreenToken is a token under construction. Spans are absolute offsets
// into the source text.
type GreenToken struct {
	Kind     TokenKind
	Span     source.Span
	Leading  []Trivia
	Trailing []Trivia
	Missing  bool
}

func (*GreenToken) isGreen() {}

// FullStart returns the start of the token including its leading trivia.
func (t *GreenToken) FullStart() int {
	if len(t.Leading) > 0 {
		return t.Leading[0].Span.Start
	}
	return t.Span.Start
}

// FullEnd returns the end of the token including its trailing trivia.
func (t *GreenToken) FullEnd() int {
	if len(t.Trailing) > 0 {
		return t.Trailing[len(t.Trailing)-1].Span.End
	}
	return t.Span.End
}

// NewGreenNode creates a node. Nil children are dropped so optional parts
// can be passed unconditionally.
func NewGreenNode(kind Kind, children ...Green) *GreenNode {
	kept := make([]Green, 0, len(children))
	for _, child := range children {
		if !isNilGreen(child) {
			kept = append(kept, child)
		}
	}
	return &GreenNode{Kind: kind, Children: kept}
}

// NewGreenToken creates a present token.
func NewGreenToken(kind TokenKind, span source.Span, leading, trailing []Trivia) *GreenToken {
	return &GreenToken{Kind: kind, Span: span, Leading: leading, Trailing: trailing}
}

// NewMissingToken creates a zero-width token the parser expected but did
// not find. offset must equal the full end of the preceding token.
func NewMissingToken(kind TokenKind, offset int) *GreenToken {
	return &GreenToken{Kind: kind, Span: source.NewSpan(offset, offset), Missing: true}
}

// Append adds children to n, dropping nil values.
func (n *GreenNode) Append(children ...Green) *GreenNode {
	for _, child := range children {
		if !isNilGreen(child) {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

func isNilGreen(g Green) bool {
	switch v := g.(type) {
	case nil:
		return true
	case *GreenNode:
		return v == nil
	case *GreenToken:
		return v == nil
	default:
		return false
	}
}
