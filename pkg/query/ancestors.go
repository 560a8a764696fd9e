package query

import (
	"slices"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// FirstAncestor returns the innermost ancestor of n matching pred. n itself
// is not considered.
func FirstAncestor(n syntax.Node, pred func(syntax.Node) bool) (syntax.Node, bool) {
	for anc := range n.Ancestors() {
		if pred(anc) {
			return anc, true
		}
	}
	return syntax.Node{}, false
}

// FirstAncestorOfKind returns the innermost ancestor with one of kinds.
func FirstAncestorOfKind(n syntax.Node, kinds ...syntax.Kind) (syntax.Node, bool) {
	return FirstAncestor(n, func(anc syntax.Node) bool {
		return slices.Contains(kinds, anc.Kind())
	})
}

// EnclosingMethod returns the method declaration containing n.
func EnclosingMethod(n syntax.Node) (syntax.MethodDeclaration, bool) {
	anc, ok := FirstAncestorOfKind(n, syntax.KindMethodDeclaration)
	if !ok {
		return syntax.MethodDeclaration{}, false
	}
	method, err := anc.AsMethodDeclaration()
	return method, err == nil
}

// EnclosingType returns the innermost type declaration containing n.
func EnclosingType(n syntax.Node) (syntax.TypeDeclaration, bool) {
	anc, ok := FirstAncestor(n, func(anc syntax.Node) bool {
		return anc.Kind().IsTypeDeclaration()
	})
	if !ok {
		return syntax.TypeDeclaration{}, false
	}
	decl, err := anc.AsTypeDeclaration()
	return decl, err == nil
}

// EnclosingNamespace returns the innermost namespace containing n.
func EnclosingNamespace(n syntax.Node) (syntax.NamespaceDeclaration, bool) {
	anc, ok := FirstAncestor(n, func(anc syntax.Node) bool {
		return anc.Kind().IsNamespaceDeclaration()
	})
	if !ok {
		return syntax.NamespaceDeclaration{}, false
	}
	ns, err := anc.AsNamespaceDeclaration()
	return ns, err == nil
}
