package syntax

import (
	"iter"

	"github.com/yaklabco/syntree/pkg/source"
)

// Node is a handle to a node in a Tree. The zero Node is not part of any
// tree. Handles are comparable: two handles are equal exactly when they
// denote the same node of the same tree.
type Node struct {
	tree  *Tree
	index int32
}

func (n Node) data() *nodeData {
	return &n.tree.nodes[n.index]
}

// IsZero reports whether n is the zero handle.
func (n Node) IsZero() bool {
	return n.tree == nil
}

// Tree returns the tree that owns n.
func (n Node) Tree() *Tree {
	return n.tree
}

// ID returns the node's pre-order index within its tree.
func (n Node) ID() int {
	return int(n.index)
}

// Kind returns the node kind. The zero node reports KindUnknown.
func (n Node) Kind() Kind {
	if n.tree == nil {
		return KindUnknown
	}
	return n.data().kind
}

// Span returns the node's range without the leading trivia of its first
// token and the trailing trivia of its last token.
func (n Node) Span() source.Span {
	if n.tree == nil {
		return source.Span{}
	}
	data := n.data()
	first := &n.tree.tokens[data.firstTok]
	last := &n.tree.tokens[data.lastTok]
	return source.NewSpan(first.span.Start, last.span.End)
}

// FullSpan returns the node's range including all trivia.
func (n Node) FullSpan() source.Span {
	if n.tree == nil {
		return source.Span{}
	}
	data := n.data()
	return source.NewSpan(n.tree.tokens[data.firstTok].fullStart, n.tree.tokens[data.lastTok].fullEnd)
}

// Parent returns the enclosing node. The root has none.
func (n Node) Parent() (Node, bool) {
	if n.tree == nil {
		return Node{}, false
	}
	parent := n.data().parent
	if parent < 0 {
		return Node{}, false
	}
	return Node{tree: n.tree, index: parent}, true
}

// ChildCount returns the number of direct children, nodes and tokens.
func (n Node) ChildCount() int {
	if n.tree == nil {
		return 0
	}
	return len(n.data().children)
}

// Child returns the i-th direct child.
func (n Node) Child(i int) (Element, bool) {
	if n.tree == nil || i < 0 || i >= len(n.data().children) {
		return Element{}, false
	}
	return n.element(n.data().children[i]), true
}

func (n Node) element(ref childRef) Element {
	if ref.isToken() {
		return Element{token: Token{tree: n.tree, index: ref.index()}}
	}
	return Element{node: Node{tree: n.tree, index: ref.index()}}
}

// Children yields the direct children in source order.
func (n Node) Children() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		if n.tree == nil {
			return
		}
		for _, ref := range n.data().children {
			if !yield(n.element(ref)) {
				return
			}
		}
	}
}

// ChildNodes yields the direct child nodes in source order.
func (n Node) ChildNodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if n.tree == nil {
			return
		}
		for _, ref := range n.data().children {
			if ref.isToken() {
				continue
			}
			if !yield(Node{tree: n.tree, index: ref.index()}) {
				return
			}
		}
	}
}

// ChildTokens yields the direct child tokens in source order.
func (n Node) ChildTokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		if n.tree == nil {
			return
		}
		for _, ref := range n.data().children {
			if !ref.isToken() {
				continue
			}
			if !yield(Token{tree: n.tree, index: ref.index()}) {
				return
			}
		}
	}
}

// Ancestors yields the enclosing nodes, innermost first, ending at the root.
func (n Node) Ancestors() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for cur, ok := n.Parent(); ok; cur, ok = cur.Parent() {
			if !yield(cur) {
				return
			}
		}
	}
}

// AncestorsAndSelf yields n followed by its ancestors.
func (n Node) AncestorsAndSelf() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if n.tree == nil || !yield(n) {
			return
		}
		for anc := range n.Ancestors() {
			if !yield(anc) {
				return
			}
		}
	}
}

// DescendantNodes yields every node below n in pre-order, depth-first,
// left to right. A nil keep yields all of them; otherwise only nodes for
// which keep returns true. n itself is not included.
func (n Node) DescendantNodes(keep func(Node) bool) iter.Seq[Node] {
	return n.descendants(n.index+1, keep)
}

// DescendantNodesAndSelf is DescendantNodes with n itself first.
func (n Node) DescendantNodesAndSelf(keep func(Node) bool) iter.Seq[Node] {
	return n.descendants(n.index, keep)
}

func (n Node) descendants(from int32, keep func(Node) bool) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if n.tree == nil {
			return
		}
		// Pre-order layout: the subtree is the contiguous range [index, end).
		end := n.data().end
		for idx := from; idx < end; idx++ {
			node := Node{tree: n.tree, index: idx}
			if keep != nil && !keep(node) {
				continue
			}
			if !yield(node) {
				return
			}
		}
	}
}

// DescendantTokens yields every token of the subtree in source order,
// including missing tokens.
func (n Node) DescendantTokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		if n.tree == nil {
			return
		}
		data := n.data()
		for idx := data.firstTok; idx <= data.lastTok; idx++ {
			if !yield(Token{tree: n.tree, index: idx}) {
				return
			}
		}
	}
}

// Contains reports whether other is n or lies below n.
func (n Node) Contains(other Node) bool {
	if n.tree == nil || n.tree != other.tree {
		return false
	}
	return other.index >= n.index && other.index < n.data().end
}

// FirstToken returns the first token of the subtree.
func (n Node) FirstToken() Token {
	if n.tree == nil {
		return Token{}
	}
	return Token{tree: n.tree, index: n.data().firstTok}
}

// LastToken returns the last token of the subtree.
func (n Node) LastToken() Token {
	if n.tree == nil {
		return Token{}
	}
	return Token{tree: n.tree, index: n.data().lastTok}
}

// FullText returns the exact source text of the subtree, trivia included.
func (n Node) FullText() string {
	if n.tree == nil {
		return ""
	}
	span := n.FullSpan()
	return n.tree.src.String()[span.Start:span.End]
}

// Text returns the source text of the subtree without its outer trivia.
func (n Node) Text() string {
	if n.tree == nil {
		return ""
	}
	span := n.Span()
	return n.tree.src.String()[span.Start:span.End]
}

// String returns Text.
func (n Node) String() string {
	return n.Text()
}

// Location returns the line/column range of Span.
func (n Node) Location() source.Location {
	if n.tree == nil {
		return source.Location{}
	}
	// Spans come from a validated tree and are always in range.
	loc, _ := n.tree.src.Location(n.Span())
	return loc
}

// HasMissingTokens reports whether error recovery inserted tokens in the subtree.
func (n Node) HasMissingTokens() bool {
	for tok := range n.DescendantTokens() {
		if tok.IsMissing() {
			return true
		}
	}
	return false
}
