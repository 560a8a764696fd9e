package syntax

import (
	"strings"

	"github.com/yaklabco/syntree/pkg/source"
)

// Token is a handle to a token in a Tree. Like Node, handles compare equal
// exactly when they denote the same token.
type Token struct {
	tree  *Tree
	index int32
}

func (t Token) data() *tokenData {
	return &t.tree.tokens[t.index]
}

// IsZero reports whether t is the zero handle.
func (t Token) IsZero() bool {
	return t.tree == nil
}

// Index returns the token's position in source order.
func (t Token) Index() int {
	return int(t.index)
}

// Kind returns the token kind.
func (t Token) Kind() TokenKind {
	if t.tree == nil {
		return TokenUnknown
	}
	return t.data().kind
}

// Span returns the range of the token text.
func (t Token) Span() source.Span {
	if t.tree == nil {
		return source.Span{}
	}
	return t.data().span
}

// FullSpan returns the range including leading and trailing trivia.
func (t Token) FullSpan() source.Span {
	if t.tree == nil {
		return source.Span{}
	}
	data := t.data()
	return source.NewSpan(data.fullStart, data.fullEnd)
}

// IsMissing reports whether the token was inserted by error recovery.
func (t Token) IsMissing() bool {
	return t.tree != nil && t.data().missing
}

// Text returns the token text. Missing tokens have empty text.
func (t Token) Text() string {
	if t.tree == nil {
		return ""
	}
	span := t.data().span
	return t.tree.src.String()[span.Start:span.End]
}

// ValueText returns the identifier name without a verbatim '@' prefix; for
// other tokens it equals Text.
func (t Token) ValueText() string {
	text := t.Text()
	if t.Kind() == TokenIdentifier {
		return strings.TrimPrefix(text, "@")
	}
	return text
}

// FullText returns leading trivia, text and trailing trivia.
func (t Token) FullText() string {
	if t.tree == nil {
		return ""
	}
	data := t.data()
	return t.tree.src.String()[data.fullStart:data.fullEnd]
}

// String returns Text.
func (t Token) String() string {
	return t.Text()
}

// LeadingTrivia returns a copy of the trivia before the token text.
func (t Token) LeadingTrivia() []Trivia {
	if t.tree == nil {
		return nil
	}
	return append([]Trivia(nil), t.data().leading...)
}

// TrailingTrivia returns a copy of the trivia after the token text.
func (t Token) TrailingTrivia() []Trivia {
	if t.tree == nil {
		return nil
	}
	return append([]Trivia(nil), t.data().trailing...)
}

// Parent returns the node that directly contains the token.
func (t Token) Parent() Node {
	if t.tree == nil {
		return Node{}
	}
	return Node{tree: t.tree, index: t.data().parent}
}

// Next returns the following token in source order.
func (t Token) Next() (Token, bool) {
	if t.tree == nil || int(t.index)+1 >= len(t.tree.tokens) {
		return Token{}, false
	}
	return Token{tree: t.tree, index: t.index + 1}, true
}

// Prev returns the preceding token in source order.
func (t Token) Prev() (Token, bool) {
	if t.tree == nil || t.index == 0 {
		return Token{}, false
	}
	return Token{tree: t.tree, index: t.index - 1}, true
}

// Location returns the line/column range of the token text.
func (t Token) Location() source.Location {
	if t.tree == nil {
		return source.Location{}
	}
	loc, _ := t.tree.src.Location(t.Span())
	return loc
}
