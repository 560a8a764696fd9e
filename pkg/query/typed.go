package query

import (
	"iter"
	"sort"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// Methods yields every method declaration below root.
func Methods(root syntax.Node) iter.Seq[syntax.MethodDeclaration] {
	return OfType(DescendantsOfKind(root, syntax.KindMethodDeclaration), syntax.Node.AsMethodDeclaration)
}

// Invocations yields every invocation expression below root, nested ones
// included.
func Invocations(root syntax.Node) iter.Seq[syntax.InvocationExpression] {
	return OfType(DescendantsOfKind(root, syntax.KindInvocationExpression), syntax.Node.AsInvocationExpression)
}

// UsingDirectives yields every using directive below root, including those
// inside namespaces.
func UsingDirectives(root syntax.Node) iter.Seq[syntax.UsingDirective] {
	return OfType(DescendantsOfKind(root, syntax.KindUsingDirective), syntax.Node.AsUsingDirective)
}

// VariableDeclarations yields every variable declaration below root.
func VariableDeclarations(root syntax.Node) iter.Seq[syntax.VariableDeclaration] {
	return OfType(DescendantsOfKind(root, syntax.KindVariableDeclaration), syntax.Node.AsVariableDeclaration)
}

// NodeAt returns the innermost node whose full span contains offset. The
// end offset of the text belongs to the end-of-file token.
func NodeAt(tree *syntax.Tree, offset int) (syntax.Node, bool) {
	if offset < 0 || offset > tree.Source().Len() {
		return syntax.Node{}, false
	}
	count := tree.TokenCount()
	idx := sort.Search(count, func(i int) bool {
		tok, _ := tree.Token(i)
		return tok.FullSpan().End > offset
	})
	if idx == count {
		idx = count - 1
	}
	tok, ok := tree.Token(idx)
	if !ok {
		return syntax.Node{}, false
	}
	return tok.Parent(), true
}
