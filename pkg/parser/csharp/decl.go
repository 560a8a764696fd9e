package csharp

import "github.com/yaklabco/syntree/pkg/syntax"

func (p *parser) parseCompilationUnit() *syntax.GreenNode {
	unit := syntax.NewGreenNode(syntax.KindCompilationUnit)
	p.parseNamespaceBody(unit, false)
	if p.err != nil {
		return nil
	}
	// The loop above only stops at end of input; the EOF token carries the
	// file's final trivia.
	unit.Append(p.cur())
	return unit
}

// parseNamespaceBody parses using directives and members into node until
// end of input or, inside braces, the closing brace.
func (p *parser) parseNamespaceBody(node *syntax.GreenNode, inBlock bool) {
	for {
		if p.kind() == syntax.TokenEndOfFile || (inBlock && p.kind() == syntax.TokenCloseBrace) {
			return
		}
		if p.cancelled() {
			return
		}

		if p.isUsingDirective() {
			node.Append(p.parseUsingDirective())
			continue
		}

		start := p.pos
		if member := p.parseMember(false); member != nil {
			node.Append(member)
			continue
		}
		if p.pos == start {
			p.skip("CS1022", "type or namespace definition, or end-of-file expected, found '%s'")
		}
	}
}

func (p *parser) isUsingDirective() bool {
	if p.kind() == syntax.TokenUsingKeyword {
		return p.peekKind(1) != syntax.TokenOpenParen
	}
	return p.atWord("global") && p.peekKind(1) == syntax.TokenUsingKeyword
}

func (p *parser) parseUsingDirective() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindUsingDirective)
	if p.atWord("global") {
		node.Append(p.advance())
	}
	node.Append(p.expect(syntax.TokenUsingKeyword))
	node.Append(p.optional(syntax.TokenStaticKeyword))
	if p.kind() == syntax.TokenIdentifier && p.peekKind(1) == syntax.TokenEquals {
		alias := syntax.NewGreenNode(syntax.KindIdentifierName, p.advance())
		node.Append(syntax.NewGreenNode(syntax.KindNameEquals, alias, p.advance()))
	}
	node.Append(p.parseName())
	node.Append(p.expect(syntax.TokenSemicolon))
	return node
}

// isModifier reports whether the current token is a declaration modifier.
// partial and async are contextual and only count before another name or
// keyword.
func (p *parser) isModifier() bool {
	if p.kind().IsModifier() {
		return true
	}
	if p.atWord("partial") || p.atWord("async") || p.atWord("required") {
		next := p.peekKind(1)
		return next == syntax.TokenIdentifier || next.IsKeyword()
	}
	return false
}

// parseMember parses one member declaration. It returns nil without
// consuming anything when the current token cannot start a member.
func (p *parser) parseMember(inType bool) *syntax.GreenNode {
	var head []syntax.Green
	for p.kind() == syntax.TokenOpenBracket {
		head = append(head, p.parseAttributeList())
	}
	for p.isModifier() {
		head = append(head, p.advance())
	}

	switch p.kind() {
	case syntax.TokenNamespaceKeyword:
		return p.parseNamespace(head)
	case syntax.TokenClassKeyword:
		return p.parseTypeDeclaration(syntax.KindClassDeclaration, head)
	case syntax.TokenStructKeyword:
		return p.parseTypeDeclaration(syntax.KindStructDeclaration, head)
	case syntax.TokenInterfaceKeyword:
		return p.parseTypeDeclaration(syntax.KindInterfaceDeclaration, head)
	case syntax.TokenEnumKeyword:
		return p.parseEnumDeclaration(head)
	case syntax.TokenIdentifier:
		if inType && p.peekKind(1) == syntax.TokenOpenParen {
			return p.parseConstructor(head)
		}
	}

	if p.isTypeStart() {
		typ := p.parseType()
		if p.kind() == syntax.TokenIdentifier {
			switch p.peekKind(1) {
			case syntax.TokenOpenParen, syntax.TokenLess:
				return p.parseMethod(head, typ)
			case syntax.TokenOpenBrace, syntax.TokenArrow:
				return p.parseProperty(head, typ)
			default:
				return p.parseField(head, typ)
			}
		}
		p.reportAtPrevious("CS1001", "identifier expected")
		return syntax.NewGreenNode(syntax.KindIncompleteMember, append(head, typ)...)
	}

	if len(head) > 0 {
		p.reportAtPrevious("CS1519", "invalid token in member declaration")
		return syntax.NewGreenNode(syntax.KindIncompleteMember, head...)
	}
	return nil
}

func (p *parser) isTypeStart() bool {
	k := p.kind()
	return k == syntax.TokenIdentifier || k.IsPredefinedType()
}

func (p *parser) parseNamespace(head []syntax.Green) *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindNamespaceDeclaration, head...)
	node.Append(p.advance(), p.parseName())

	if p.kind() == syntax.TokenSemicolon {
		node.Kind = syntax.KindFileScopedNamespaceDeclaration
		node.Append(p.advance())
		p.parseNamespaceBody(node, false)
		return node
	}

	node.Append(p.expect(syntax.TokenOpenBrace))
	p.parseNamespaceBody(node, true)
	node.Append(p.expect(syntax.TokenCloseBrace))
	node.Append(p.optional(syntax.TokenSemicolon))
	return node
}

func (p *parser) parseTypeDeclaration(kind syntax.Kind, head []syntax.Green) *syntax.GreenNode {
	node := syntax.NewGreenNode(kind, head...)
	node.Append(p.advance(), p.expect(syntax.TokenIdentifier))
	if p.kind() == syntax.TokenLess {
		node.Append(p.parseTypeParameterList())
	}
	if p.kind() == syntax.TokenOpenParen && kind != syntax.KindInterfaceDeclaration {
		node.Append(p.parseParameterList())
	}
	if p.kind() == syntax.TokenColon {
		node.Append(p.parseBaseList())
	}
	p.parseConstraintClauses(node)

	node.Append(p.expect(syntax.TokenOpenBrace))
	p.parseTypeMembers(node)
	node.Append(p.expect(syntax.TokenCloseBrace))
	node.Append(p.optional(syntax.TokenSemicolon))
	return node
}

func (p *parser) parseTypeMembers(node *syntax.GreenNode) {
	for p.kind() != syntax.TokenCloseBrace && p.kind() != syntax.TokenEndOfFile {
		if p.cancelled() {
			return
		}
		start := p.pos
		if member := p.parseMember(true); member != nil {
			node.Append(member)
			continue
		}
		if p.pos == start {
			p.skip("CS1519", "invalid token '%s' in class, record, struct, or interface member declaration")
		}
	}
}

func (p *parser) parseEnumDeclaration(head []syntax.Green) *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindEnumDeclaration, head...)
	node.Append(p.advance(), p.expect(syntax.TokenIdentifier))
	if p.kind() == syntax.TokenColon {
		node.Append(p.parseBaseList())
	}
	node.Append(p.expect(syntax.TokenOpenBrace))

	for p.kind() != syntax.TokenCloseBrace && p.kind() != syntax.TokenEndOfFile {
		if p.kind() != syntax.TokenIdentifier && p.kind() != syntax.TokenOpenBracket {
			p.skip("CS1001", "identifier expected, found '%s'")
			continue
		}
		member := syntax.NewGreenNode(syntax.KindEnumMemberDeclaration)
		for p.kind() == syntax.TokenOpenBracket {
			member.Append(p.parseAttributeList())
		}
		member.Append(p.expect(syntax.TokenIdentifier))
		if p.kind() == syntax.TokenEquals {
			member.Append(p.parseEqualsValueClause())
		}
		node.Append(member)
		if p.kind() != syntax.TokenComma {
			break
		}
		node.Append(p.advance())
	}

	node.Append(p.expect(syntax.TokenCloseBrace))
	node.Append(p.optional(syntax.TokenSemicolon))
	return node
}

func (p *parser) parseBaseList() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindBaseList, p.advance(), p.parseType())
	for p.kind() == syntax.TokenComma {
		node.Append(p.advance(), p.parseType())
	}
	return node
}

// parseConstraintClauses keeps "where T : ..." clauses as plain tokens of
// the declaration; they have no node kind of their own.
func (p *parser) parseConstraintClauses(node *syntax.GreenNode) {
	if !p.atWord("where") {
		return
	}
	for {
		switch p.kind() {
		case syntax.TokenOpenBrace, syntax.TokenSemicolon, syntax.TokenArrow, syntax.TokenEndOfFile:
			return
		}
		node.Append(p.advance())
	}
}

func (p *parser) parseTypeParameterList() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindTypeParameterList, p.advance())
	for {
		param := syntax.NewGreenNode(syntax.KindTypeParameter)
		for p.kind() == syntax.TokenOpenBracket {
			param.Append(p.parseAttributeList())
		}
		if p.kind() == syntax.TokenInKeyword || p.kind() == syntax.TokenOutKeyword {
			param.Append(p.advance())
		}
		param.Append(p.expect(syntax.TokenIdentifier))
		node.Append(param)
		if p.kind() != syntax.TokenComma {
			break
		}
		node.Append(p.advance())
	}
	node.Append(p.expect(syntax.TokenGreater))
	return node
}

func (p *parser) parseAttributeList() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindAttributeList, p.advance())
	if (p.kind() == syntax.TokenIdentifier || p.kind().IsKeyword()) && p.peekKind(1) == syntax.TokenColon {
		node.Append(p.advance(), p.advance())
	}
	for {
		attr := syntax.NewGreenNode(syntax.KindAttribute, p.parseName())
		if p.kind() == syntax.TokenOpenParen {
			attr.Append(p.parseArgumentList())
		}
		node.Append(attr)
		if p.kind() != syntax.TokenComma {
			break
		}
		node.Append(p.advance())
		if p.kind() == syntax.TokenCloseBracket {
			break
		}
	}
	node.Append(p.expect(syntax.TokenCloseBracket))
	return node
}

func (p *parser) parseMethod(head []syntax.Green, returnType *syntax.GreenNode) *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindMethodDeclaration, head...)
	node.Append(returnType, p.advance())
	if p.kind() == syntax.TokenLess {
		node.Append(p.parseTypeParameterList())
	}
	node.Append(p.parseParameterList())
	p.parseConstraintClauses(node)
	p.parseBody(node)
	return node
}

func (p *parser) parseConstructor(head []syntax.Green) *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindConstructorDeclaration, head...)
	node.Append(p.advance(), p.parseParameterList())
	if p.kind() == syntax.TokenColon {
		init := syntax.NewGreenNode(syntax.KindConstructorInitializer, p.advance())
		if p.kind() == syntax.TokenBaseKeyword || p.kind() == syntax.TokenThisKeyword {
			init.Append(p.advance())
		} else {
			init.Append(p.missing(syntax.TokenBaseKeyword))
		}
		init.Append(p.parseArgumentList())
		node.Append(init)
	}
	p.parseBody(node)
	return node
}

// parseBody parses a block, an expression body or a bare semicolon.
func (p *parser) parseBody(node *syntax.GreenNode) {
	switch p.kind() {
	case syntax.TokenOpenBrace:
		node.Append(p.parseBlock())
	case syntax.TokenArrow:
		node.Append(p.parseArrowExpressionClause(), p.expect(syntax.TokenSemicolon))
	default:
		node.Append(p.expect(syntax.TokenSemicolon))
	}
}

func (p *parser) parseArrowExpressionClause() *syntax.GreenNode {
	return syntax.NewGreenNode(syntax.KindArrowExpressionClause, p.advance(), p.parseExpression())
}

func (p *parser) parseProperty(head []syntax.Green, typ *syntax.GreenNode) *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindPropertyDeclaration, head...)
	node.Append(typ, p.advance())

	if p.kind() == syntax.TokenArrow {
		node.Append(p.parseArrowExpressionClause(), p.expect(syntax.TokenSemicolon))
		return node
	}

	node.Append(p.parseAccessorList())
	if p.kind() == syntax.TokenEquals {
		node.Append(p.parseEqualsValueClause(), p.expect(syntax.TokenSemicolon))
	}
	return node
}

func (p *parser) parseAccessorList() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindAccessorList, p.expect(syntax.TokenOpenBrace))
	for p.kind() != syntax.TokenCloseBrace && p.kind() != syntax.TokenEndOfFile {
		if p.kind() != syntax.TokenIdentifier && p.kind() != syntax.TokenOpenBracket && !p.kind().IsModifier() {
			p.skip("CS1014", "a get or set accessor expected, found '%s'")
			continue
		}
		accessor := syntax.NewGreenNode(syntax.KindAccessorDeclaration)
		for p.kind() == syntax.TokenOpenBracket {
			accessor.Append(p.parseAttributeList())
		}
		for p.kind().IsModifier() {
			accessor.Append(p.advance())
		}
		accessor.Append(p.expect(syntax.TokenIdentifier))
		p.parseBody(accessor)
		node.Append(accessor)
	}
	node.Append(p.expect(syntax.TokenCloseBrace))
	return node
}

func (p *parser) parseField(head []syntax.Green, typ *syntax.GreenNode) *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindFieldDeclaration, head...)
	node.Append(p.parseVariableDeclarationRest(typ), p.expect(syntax.TokenSemicolon))
	return node
}

func (p *parser) parseParameterList() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindParameterList, p.expect(syntax.TokenOpenParen))
	if p.kind() != syntax.TokenCloseParen && p.isParameterStart() {
		for {
			node.Append(p.parseParameter())
			if p.kind() != syntax.TokenComma {
				break
			}
			node.Append(p.advance())
		}
	}
	node.Append(p.expect(syntax.TokenCloseParen))
	return node
}

func (p *parser) isParameterStart() bool {
	switch p.kind() {
	case syntax.TokenOpenBracket, syntax.TokenRefKeyword, syntax.TokenOutKeyword,
		syntax.TokenInKeyword, syntax.TokenParamsKeyword, syntax.TokenThisKeyword:
		return true
	}
	return p.isTypeStart()
}

func (p *parser) parseParameter() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindParameter)
	for p.kind() == syntax.TokenOpenBracket {
		node.Append(p.parseAttributeList())
	}
	for {
		switch p.kind() {
		case syntax.TokenRefKeyword, syntax.TokenOutKeyword, syntax.TokenInKeyword,
			syntax.TokenParamsKeyword, syntax.TokenThisKeyword:
			node.Append(p.advance())
			continue
		}
		break
	}
	node.Append(p.parseType(), p.expect(syntax.TokenIdentifier))
	if p.kind() == syntax.TokenEquals {
		node.Append(p.parseEqualsValueClause())
	}
	return node
}

func (p *parser) parseVariableDeclaration() *syntax.GreenNode {
	return p.parseVariableDeclarationRest(p.parseType())
}

func (p *parser) parseVariableDeclarationRest(typ *syntax.GreenNode) *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindVariableDeclaration, typ, p.parseVariableDeclarator())
	for p.kind() == syntax.TokenComma {
		node.Append(p.advance(), p.parseVariableDeclarator())
	}
	return node
}

func (p *parser) parseVariableDeclarator() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindVariableDeclarator, p.expect(syntax.TokenIdentifier))
	if p.kind() == syntax.TokenOpenBracket {
		node.Append(p.parseBracketedArgumentList())
	}
	if p.kind() == syntax.TokenEquals {
		node.Append(p.parseEqualsValueClause())
	}
	return node
}

func (p *parser) parseEqualsValueClause() *syntax.GreenNode {
	eq := p.advance()
	if p.kind() == syntax.TokenOpenBrace {
		return syntax.NewGreenNode(syntax.KindEqualsValueClause, eq, p.parseInitializer())
	}
	return syntax.NewGreenNode(syntax.KindEqualsValueClause, eq, p.parseExpression())
}
