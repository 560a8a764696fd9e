package syntax

import "slices"

// Projections are checked, kind-specific views of a Node. Each AsX method
// returns a *KindMismatchError when the node has a different kind.

func (n Node) expect(kinds ...Kind) error {
	got := n.Kind()
	if slices.Contains(kinds, got) {
		return nil
	}
	return &KindMismatchError{Want: kinds, Got: got}
}

func (n Node) childNodesOfKind(kinds ...Kind) []Node {
	var out []Node
	for child := range n.ChildNodes() {
		if slices.Contains(kinds, child.Kind()) {
			out = append(out, child)
		}
	}
	return out
}

func (n Node) firstChildNode() (Node, bool) {
	if n.tree == nil {
		return Node{}, false
	}
	for _, ref := range n.data().children {
		if !ref.isToken() {
			return Node{tree: n.tree, index: ref.index()}, true
		}
	}
	return Node{}, false
}

func (n Node) firstChildOfKind(kinds ...Kind) (Node, bool) {
	for child := range n.ChildNodes() {
		if slices.Contains(kinds, child.Kind()) {
			return child, true
		}
	}
	return Node{}, false
}

func (n Node) firstChildToken(kind TokenKind) (Token, bool) {
	for tok := range n.ChildTokens() {
		if tok.Kind() == kind {
			return tok, true
		}
	}
	return Token{}, false
}

// tokensBefore returns the direct child tokens that precede the first
// direct child node accepted by stop.
func (n Node) tokensBefore(stop func(Element) bool) []Token {
	var out []Token
	for child := range n.Children() {
		if stop(child) {
			break
		}
		if tok, ok := child.AsToken(); ok {
			out = append(out, tok)
		}
	}
	return out
}

// identifierAfter returns the first direct identifier token after the
// direct child node after.
func (n Node) identifierAfter(after Node) (Token, bool) {
	seen := after.IsZero()
	for child := range n.Children() {
		if node, ok := child.AsNode(); ok {
			if node == after {
				seen = true
			}
			continue
		}
		tok, _ := child.AsToken()
		if seen && tok.Kind() == TokenIdentifier {
			return tok, true
		}
	}
	return Token{}, false
}

func members(n Node) []Node {
	var out []Node
	for child := range n.ChildNodes() {
		if child.Kind().IsMember() {
			out = append(out, child)
		}
	}
	return out
}

// CompilationUnit is the root of a source file.
type CompilationUnit struct{ Node }

// AsCompilationUnit projects n as a CompilationUnit.
func (n Node) AsCompilationUnit() (CompilationUnit, error) {
	if err := n.expect(KindCompilationUnit); err != nil {
		return CompilationUnit{}, err
	}
	return CompilationUnit{n}, nil
}

// Usings returns the top-level using directives.
func (c CompilationUnit) Usings() []UsingDirective {
	return usingsOf(c.Node)
}

// Members returns the top-level member declarations.
func (c CompilationUnit) Members() []Node {
	return members(c.Node)
}

// EndOfFile returns the end-of-file token, which owns trailing file trivia.
func (c CompilationUnit) EndOfFile() Token {
	return c.LastToken()
}

func usingsOf(n Node) []UsingDirective {
	nodes := n.childNodesOfKind(KindUsingDirective)
	out := make([]UsingDirective, len(nodes))
	for i, node := range nodes {
		out[i] = UsingDirective{node}
	}
	return out
}

// UsingDirective is a using directive: using [static] [Alias =] Name;
type UsingDirective struct{ Node }

// AsUsingDirective projects n as a UsingDirective.
func (n Node) AsUsingDirective() (UsingDirective, error) {
	if err := n.expect(KindUsingDirective); err != nil {
		return UsingDirective{}, err
	}
	return UsingDirective{n}, nil
}

// Name returns the imported name.
func (u UsingDirective) Name() Node {
	for child := range u.ChildNodes() {
		if child.Kind().IsName() {
			return child
		}
	}
	return Node{}
}

// NameText returns the source text of Name, e.g. "System.Collections.Generic".
func (u UsingDirective) NameText() string {
	return u.Name().Text()
}

// Alias returns the alias of "using Alias = Name;".
func (u UsingDirective) Alias() (string, bool) {
	eq, ok := u.firstChildOfKind(KindNameEquals)
	if !ok {
		return "", false
	}
	tok := eq.FirstToken()
	return tok.ValueText(), true
}

// IsStatic reports whether the directive is "using static".
func (u UsingDirective) IsStatic() bool {
	_, ok := u.firstChildToken(TokenStaticKeyword)
	return ok
}

// IsGlobal reports whether the directive is "global using".
func (u UsingDirective) IsGlobal() bool {
	tok, ok := u.firstChildToken(TokenIdentifier)
	return ok && tok.Text() == "global"
}

// NamespaceDeclaration is a block or file-scoped namespace.
type NamespaceDeclaration struct{ Node }

// AsNamespaceDeclaration projects n as a NamespaceDeclaration.
func (n Node) AsNamespaceDeclaration() (NamespaceDeclaration, error) {
	if err := n.expect(KindNamespaceDeclaration, KindFileScopedNamespaceDeclaration); err != nil {
		return NamespaceDeclaration{}, err
	}
	return NamespaceDeclaration{n}, nil
}

// Name returns the namespace name.
func (ns NamespaceDeclaration) Name() Node {
	name, _ := ns.firstChildOfKind(KindIdentifierName, KindQualifiedName)
	return name
}

// IsFileScoped reports whether the namespace is declared with "namespace N;".
func (ns NamespaceDeclaration) IsFileScoped() bool {
	return ns.Kind() == KindFileScopedNamespaceDeclaration
}

// Usings returns the using directives inside the namespace.
func (ns NamespaceDeclaration) Usings() []UsingDirective {
	return usingsOf(ns.Node)
}

// Members returns the member declarations inside the namespace.
func (ns NamespaceDeclaration) Members() []Node {
	return members(ns.Node)
}

// TypeDeclaration is a class, struct, interface or enum declaration.
type TypeDeclaration struct{ Node }

// AsTypeDeclaration projects n as a TypeDeclaration.
func (n Node) AsTypeDeclaration() (TypeDeclaration, error) {
	if err := n.expect(KindClassDeclaration, KindStructDeclaration, KindInterfaceDeclaration, KindEnumDeclaration); err != nil {
		return TypeDeclaration{}, err
	}
	return TypeDeclaration{n}, nil
}

// Keyword returns the declaring keyword (class, struct, interface, enum).
func (td TypeDeclaration) Keyword() Token {
	for tok := range td.ChildTokens() {
		switch tok.Kind() {
		case TokenClassKeyword, TokenStructKeyword, TokenInterfaceKeyword, TokenEnumKeyword:
			return tok
		}
	}
	return Token{}
}

// Identifier returns the declared type name.
func (td TypeDeclaration) Identifier() Token {
	keyword := td.Keyword()
	for tok := range td.ChildTokens() {
		if tok.Index() > keyword.Index() && tok.Kind() == TokenIdentifier {
			return tok
		}
	}
	return Token{}
}

// Modifiers returns the tokens before the declaring keyword, such as
// public, static or partial.
func (td TypeDeclaration) Modifiers() []Token {
	keyword := td.Keyword()
	return td.tokensBefore(func(e Element) bool {
		tok, ok := e.AsToken()
		return ok && tok == keyword
	})
}

// TypeParameterList returns the type parameters, if any.
func (td TypeDeclaration) TypeParameterList() (Node, bool) {
	return td.firstChildOfKind(KindTypeParameterList)
}

// BaseList returns the base type list, if any.
func (td TypeDeclaration) BaseList() (Node, bool) {
	return td.firstChildOfKind(KindBaseList)
}

// Members returns the member declarations in the type body.
func (td TypeDeclaration) Members() []Node {
	return members(td.Node)
}

// ClassDeclaration is a TypeDeclaration restricted to classes.
type ClassDeclaration struct{ TypeDeclaration }

// AsClassDeclaration projects n as a ClassDeclaration.
func (n Node) AsClassDeclaration() (ClassDeclaration, error) {
	if err := n.expect(KindClassDeclaration); err != nil {
		return ClassDeclaration{}, err
	}
	return ClassDeclaration{TypeDeclaration{n}}, nil
}

// MethodDeclaration is a method declaration.
type MethodDeclaration struct{ Node }

// AsMethodDeclaration projects n as a MethodDeclaration.
func (n Node) AsMethodDeclaration() (MethodDeclaration, error) {
	if err := n.expect(KindMethodDeclaration); err != nil {
		return MethodDeclaration{}, err
	}
	return MethodDeclaration{n}, nil
}

// ReturnType returns the return type node.
func (m MethodDeclaration) ReturnType() Node {
	for child := range m.ChildNodes() {
		if child.Kind() != KindAttributeList {
			return child
		}
	}
	return Node{}
}

// Identifier returns the method name.
func (m MethodDeclaration) Identifier() Token {
	tok, _ := m.identifierAfter(m.ReturnType())
	return tok
}

// Modifiers returns the tokens before the return type.
func (m MethodDeclaration) Modifiers() []Token {
	ret := m.ReturnType()
	return m.tokensBefore(func(e Element) bool {
		node, ok := e.AsNode()
		return ok && node == ret
	})
}

// TypeParameterList returns the type parameters, if any.
func (m MethodDeclaration) TypeParameterList() (Node, bool) {
	return m.firstChildOfKind(KindTypeParameterList)
}

// ParameterList returns the parameter list.
func (m MethodDeclaration) ParameterList() ParameterList {
	list, _ := m.firstChildOfKind(KindParameterList)
	return ParameterList{list}
}

// Body returns the block body. Expression-bodied and abstract methods have none.
func (m MethodDeclaration) Body() (Block, bool) {
	body, ok := m.firstChildOfKind(KindBlock)
	return Block{body}, ok
}

// ExpressionBody returns the "=> expr" clause, if any.
func (m MethodDeclaration) ExpressionBody() (Node, bool) {
	return m.firstChildOfKind(KindArrowExpressionClause)
}

// ParameterList is a parenthesized parameter list.
type ParameterList struct{ Node }

// AsParameterList projects n as a ParameterList.
func (n Node) AsParameterList() (ParameterList, error) {
	if err := n.expect(KindParameterList); err != nil {
		return ParameterList{}, err
	}
	return ParameterList{n}, nil
}

// Parameters returns the parameters in declaration order.
func (pl ParameterList) Parameters() []Parameter {
	nodes := pl.childNodesOfKind(KindParameter)
	out := make([]Parameter, len(nodes))
	for i, node := range nodes {
		out[i] = Parameter{node}
	}
	return out
}

// Parameter is a single parameter.
type Parameter struct{ Node }

// AsParameter projects n as a Parameter.
func (n Node) AsParameter() (Parameter, error) {
	if err := n.expect(KindParameter); err != nil {
		return Parameter{}, err
	}
	return Parameter{n}, nil
}

// Type returns the parameter type. Implicitly typed lambda parameters have none.
func (p Parameter) Type() (Node, bool) {
	for child := range p.ChildNodes() {
		if child.Kind().IsType() {
			return child, true
		}
	}
	return Node{}, false
}

// Identifier returns the parameter name.
func (p Parameter) Identifier() Token {
	typ, _ := p.Type()
	tok, _ := p.identifierAfter(typ)
	return tok
}

// Modifiers returns ref, out, in, params or this.
func (p Parameter) Modifiers() []Token {
	var out []Token
	for tok := range p.ChildTokens() {
		if tok.Kind().IsKeyword() {
			out = append(out, tok)
		}
	}
	return out
}

// Default returns the default value clause, if any.
func (p Parameter) Default() (EqualsValueClause, bool) {
	clause, ok := p.firstChildOfKind(KindEqualsValueClause)
	return EqualsValueClause{clause}, ok
}

// VariableDeclaration is "Type a = 1, b" in locals, fields, for and using.
type VariableDeclaration struct{ Node }

// AsVariableDeclaration projects n as a VariableDeclaration.
func (n Node) AsVariableDeclaration() (VariableDeclaration, error) {
	if err := n.expect(KindVariableDeclaration); err != nil {
		return VariableDeclaration{}, err
	}
	return VariableDeclaration{n}, nil
}

// Type returns the declared type; "var" appears as an IdentifierName.
func (v VariableDeclaration) Type() Node {
	child, _ := v.firstChildNode()
	return child
}

// Variables returns the declarators.
func (v VariableDeclaration) Variables() []VariableDeclarator {
	nodes := v.childNodesOfKind(KindVariableDeclarator)
	out := make([]VariableDeclarator, len(nodes))
	for i, node := range nodes {
		out[i] = VariableDeclarator{node}
	}
	return out
}

// VariableDeclarator is one declared variable with an optional initializer.
type VariableDeclarator struct{ Node }

// AsVariableDeclarator projects n as a VariableDeclarator.
func (n Node) AsVariableDeclarator() (VariableDeclarator, error) {
	if err := n.expect(KindVariableDeclarator); err != nil {
		return VariableDeclarator{}, err
	}
	return VariableDeclarator{n}, nil
}

// Identifier returns the variable name.
func (v VariableDeclarator) Identifier() Token {
	return v.FirstToken()
}

// Initializer returns the "= value" clause, if any.
func (v VariableDeclarator) Initializer() (EqualsValueClause, bool) {
	clause, ok := v.firstChildOfKind(KindEqualsValueClause)
	return EqualsValueClause{clause}, ok
}

// EqualsValueClause is "= value".
type EqualsValueClause struct{ Node }

// AsEqualsValueClause projects n as an EqualsValueClause.
func (n Node) AsEqualsValueClause() (EqualsValueClause, error) {
	if err := n.expect(KindEqualsValueClause); err != nil {
		return EqualsValueClause{}, err
	}
	return EqualsValueClause{n}, nil
}

// Value returns the expression after "=".
func (e EqualsValueClause) Value() Node {
	child, _ := e.firstChildNode()
	return child
}

// InvocationExpression is a call: Expression(Arguments).
type InvocationExpression struct{ Node }

// AsInvocationExpression projects n as an InvocationExpression.
func (n Node) AsInvocationExpression() (InvocationExpression, error) {
	if err := n.expect(KindInvocationExpression); err != nil {
		return InvocationExpression{}, err
	}
	return InvocationExpression{n}, nil
}

// Expression returns the invoked expression.
func (inv InvocationExpression) Expression() Node {
	child, _ := inv.firstChildNode()
	return child
}

// ArgumentList returns the argument list.
func (inv InvocationExpression) ArgumentList() ArgumentList {
	list, _ := inv.firstChildOfKind(KindArgumentList)
	return ArgumentList{list}
}

// ArgumentList is a parenthesized or bracketed argument list.
type ArgumentList struct{ Node }

// AsArgumentList projects n as an ArgumentList.
func (n Node) AsArgumentList() (ArgumentList, error) {
	if err := n.expect(KindArgumentList, KindBracketedArgumentList); err != nil {
		return ArgumentList{}, err
	}
	return ArgumentList{n}, nil
}

// Arguments returns the arguments in order.
func (al ArgumentList) Arguments() []Argument {
	nodes := al.childNodesOfKind(KindArgument)
	out := make([]Argument, len(nodes))
	for i, node := range nodes {
		out[i] = Argument{node}
	}
	return out
}

// Argument is one argument, optionally with ref/out/in.
type Argument struct{ Node }

// AsArgument projects n as an Argument.
func (n Node) AsArgument() (Argument, error) {
	if err := n.expect(KindArgument); err != nil {
		return Argument{}, err
	}
	return Argument{n}, nil
}

// Expression returns the argument value.
func (a Argument) Expression() Node {
	child, _ := a.firstChildNode()
	return child
}

// MemberAccess is "Expression.Name".
type MemberAccess struct{ Node }

// AsMemberAccess projects n as a MemberAccess.
func (n Node) AsMemberAccess() (MemberAccess, error) {
	if err := n.expect(KindSimpleMemberAccessExpression); err != nil {
		return MemberAccess{}, err
	}
	return MemberAccess{n}, nil
}

// Expression returns the accessed expression.
func (ma MemberAccess) Expression() Node {
	child, _ := ma.firstChildNode()
	return child
}

// Name returns the member name.
func (ma MemberAccess) Name() Node {
	var last Node
	for child := range ma.ChildNodes() {
		last = child
	}
	return last
}

// Block is a braced statement list.
type Block struct{ Node }

// AsBlock projects n as a Block.
func (n Node) AsBlock() (Block, error) {
	if err := n.expect(KindBlock); err != nil {
		return Block{}, err
	}
	return Block{n}, nil
}

// Statements returns the statements in order.
func (b Block) Statements() []Node {
	var out []Node
	for child := range b.ChildNodes() {
		out = append(out, child)
	}
	return out
}
