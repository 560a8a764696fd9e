package syntax

import "github.com/yaklabco/syntree/pkg/source"

// Element is a child of a node: either a node or a token.
type Element struct {
	node  Node
	token Token
}

// IsNode reports whether e holds a node.
func (e Element) IsNode() bool {
	return !e.node.IsZero()
}

// IsToken reports whether e holds a token.
func (e Element) IsToken() bool {
	return !e.token.IsZero()
}

// AsNode returns the node, if e holds one.
func (e Element) AsNode() (Node, bool) {
	return e.node, e.IsNode()
}

// AsToken returns the token, if e holds one.
func (e Element) AsToken() (Token, bool) {
	return e.token, e.IsToken()
}

// Span returns the span of the held node or token.
func (e Element) Span() source.Span {
	if e.IsNode() {
		return e.node.Span()
	}
	return e.token.Span()
}

// FullSpan returns the full span of the held node or token.
func (e Element) FullSpan() source.Span {
	if e.IsNode() {
		return e.node.FullSpan()
	}
	return e.token.FullSpan()
}

// FullText returns the full text of the held node or token.
func (e Element) FullText() string {
	if e.IsNode() {
		return e.node.FullText()
	}
	return e.token.FullText()
}

// String returns the kind name of the held node or token.
func (e Element) String() string {
	if e.IsNode() {
		return e.node.Kind().String()
	}
	return e.token.Kind().String()
}
