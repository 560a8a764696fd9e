package csharp

import "github.com/yaklabco/syntree/pkg/syntax"

func (p *parser) parseBlock() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindBlock, p.expect(syntax.TokenOpenBrace))
	for p.kind() != syntax.TokenCloseBrace && p.kind() != syntax.TokenEndOfFile {
		// A member declaration inside a block means the block was never
		// closed; leave it for the enclosing type.
		if p.isMemberKeyword() {
			break
		}
		start := p.pos
		if stmt := p.parseStatement(); stmt != nil {
			node.Append(stmt)
		}
		if p.pos == start {
			p.skip("CS1525", "invalid expression term '%s'")
		}
	}
	node.Append(p.expect(syntax.TokenCloseBrace))
	return node
}

func (p *parser) isMemberKeyword() bool {
	switch p.kind() {
	case syntax.TokenPublicKeyword, syntax.TokenPrivateKeyword, syntax.TokenProtectedKeyword,
		syntax.TokenInternalKeyword, syntax.TokenClassKeyword, syntax.TokenStructKeyword,
		syntax.TokenInterfaceKeyword, syntax.TokenEnumKeyword, syntax.TokenNamespaceKeyword,
		syntax.TokenOverrideKeyword, syntax.TokenVirtualKeyword, syntax.TokenAbstractKeyword:
		return true
	default:
		return false
	}
}

// parseStatement parses one statement. It returns nil without consuming
// anything when the current token cannot start a statement.
func (p *parser) parseStatement() *syntax.GreenNode {
	switch p.kind() {
	case syntax.TokenOpenBrace:
		return p.parseBlock()
	case syntax.TokenSemicolon:
		return syntax.NewGreenNode(syntax.KindEmptyStatement, p.advance())
	case syntax.TokenIfKeyword:
		return p.parseIfStatement()
	case syntax.TokenWhileKeyword:
		return syntax.NewGreenNode(syntax.KindWhileStatement,
			p.advance(), p.expect(syntax.TokenOpenParen), p.parseExpression(),
			p.expect(syntax.TokenCloseParen), p.parseEmbeddedStatement())
	case syntax.TokenDoKeyword:
		return syntax.NewGreenNode(syntax.KindDoStatement,
			p.advance(), p.parseEmbeddedStatement(), p.expect(syntax.TokenWhileKeyword),
			p.expect(syntax.TokenOpenParen), p.parseExpression(), p.expect(syntax.TokenCloseParen),
			p.expect(syntax.TokenSemicolon))
	case syntax.TokenForKeyword:
		return p.parseForStatement()
	case syntax.TokenForeachKeyword:
		return p.parseForEachStatement()
	case syntax.TokenUsingKeyword:
		return p.parseUsingStatement(nil)
	case syntax.TokenReturnKeyword:
		return p.parseJumpWithExpression(syntax.KindReturnStatement)
	case syntax.TokenThrowKeyword:
		return p.parseJumpWithExpression(syntax.KindThrowStatement)
	case syntax.TokenBreakKeyword:
		return syntax.NewGreenNode(syntax.KindBreakStatement, p.advance(), p.expect(syntax.TokenSemicolon))
	case syntax.TokenContinueKeyword:
		return syntax.NewGreenNode(syntax.KindContinueStatement, p.advance(), p.expect(syntax.TokenSemicolon))
	case syntax.TokenTryKeyword:
		return p.parseTryStatement()
	case syntax.TokenConstKeyword:
		return syntax.NewGreenNode(syntax.KindLocalDeclarationStatement,
			p.advance(), p.parseVariableDeclaration(), p.expect(syntax.TokenSemicolon))
	}

	if p.atWord("await") && p.peekKind(1) == syntax.TokenUsingKeyword {
		return p.parseUsingStatement(p.advance())
	}
	if p.isLocalDeclaration(p.pos) {
		return syntax.NewGreenNode(syntax.KindLocalDeclarationStatement,
			p.parseVariableDeclaration(), p.expect(syntax.TokenSemicolon))
	}
	if !p.canStartExpression() {
		return nil
	}
	return syntax.NewGreenNode(syntax.KindExpressionStatement, p.parseExpression(), p.expect(syntax.TokenSemicolon))
}

// parseEmbeddedStatement parses the body of if, while, for and the like.
func (p *parser) parseEmbeddedStatement() *syntax.GreenNode {
	if stmt := p.parseStatement(); stmt != nil {
		return stmt
	}
	p.reportAtPrevious("CS1525", "invalid expression term")
	return syntax.NewGreenNode(syntax.KindEmptyStatement, syntax.NewMissingToken(syntax.TokenSemicolon, p.cur().FullStart()))
}

// isLocalDeclaration reports whether "Type name" followed by '=', ';' or ','
// starts at token i.
func (p *parser) isLocalDeclaration(i int) bool {
	end, ok := p.scanType(i)
	if !ok || p.kindAt(end) != syntax.TokenIdentifier {
		return false
	}
	if end == i+1 && (p.isWord(i, "await") || p.isWord(i, "yield")) {
		return false
	}
	switch p.kindAt(end + 1) {
	case syntax.TokenEquals, syntax.TokenSemicolon, syntax.TokenComma:
		return true
	default:
		return false
	}
}

func (p *parser) parseIfStatement() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindIfStatement,
		p.advance(), p.expect(syntax.TokenOpenParen), p.parseExpression(),
		p.expect(syntax.TokenCloseParen), p.parseEmbeddedStatement())
	if p.kind() == syntax.TokenElseKeyword {
		node.Append(syntax.NewGreenNode(syntax.KindElseClause, p.advance(), p.parseEmbeddedStatement()))
	}
	return node
}

func (p *parser) parseForStatement() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindForStatement, p.advance(), p.expect(syntax.TokenOpenParen))

	switch {
	case p.isLocalDeclaration(p.pos):
		node.Append(p.parseVariableDeclaration())
	case p.kind() != syntax.TokenSemicolon:
		p.parseExpressionList(node, syntax.TokenSemicolon)
	}
	node.Append(p.expect(syntax.TokenSemicolon))

	if p.kind() != syntax.TokenSemicolon {
		node.Append(p.parseExpression())
	}
	node.Append(p.expect(syntax.TokenSemicolon))

	if p.kind() != syntax.TokenCloseParen {
		p.parseExpressionList(node, syntax.TokenCloseParen)
	}
	node.Append(p.expect(syntax.TokenCloseParen), p.parseEmbeddedStatement())
	return node
}

// parseExpressionList appends comma-separated expressions to node.
func (p *parser) parseExpressionList(node *syntax.GreenNode, until syntax.TokenKind) {
	for {
		node.Append(p.parseExpression())
		if p.kind() != syntax.TokenComma || p.peekKind(1) == until {
			return
		}
		node.Append(p.advance())
	}
}

func (p *parser) parseForEachStatement() *syntax.GreenNode {
	return syntax.NewGreenNode(syntax.KindForEachStatement,
		p.advance(), p.expect(syntax.TokenOpenParen), p.parseType(),
		p.expect(syntax.TokenIdentifier), p.expect(syntax.TokenInKeyword), p.parseExpression(),
		p.expect(syntax.TokenCloseParen), p.parseEmbeddedStatement())
}

// parseUsingStatement parses "using (resource) statement" and the
// declaration form "using var x = ...;". await is the optional preceding
// await token.
func (p *parser) parseUsingStatement(await *syntax.GreenToken) *syntax.GreenNode {
	using := p.expect(syntax.TokenUsingKeyword)

	if p.kind() != syntax.TokenOpenParen {
		return syntax.NewGreenNode(syntax.KindLocalDeclarationStatement,
			await, using, p.parseVariableDeclaration(), p.expect(syntax.TokenSemicolon))
	}

	node := syntax.NewGreenNode(syntax.KindUsingStatement, await, using, p.advance())
	if p.isLocalDeclaration(p.pos) {
		node.Append(p.parseVariableDeclaration())
	} else {
		node.Append(p.parseExpression())
	}
	node.Append(p.expect(syntax.TokenCloseParen), p.parseEmbeddedStatement())
	return node
}

func (p *parser) parseJumpWithExpression(kind syntax.Kind) *syntax.GreenNode {
	node := syntax.NewGreenNode(kind, p.advance())
	if p.kind() != syntax.TokenSemicolon {
		node.Append(p.parseExpression())
	}
	node.Append(p.expect(syntax.TokenSemicolon))
	return node
}

func (p *parser) parseTryStatement() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindTryStatement, p.advance(), p.parseBlock())

	for p.kind() == syntax.TokenCatchKeyword {
		clause := syntax.NewGreenNode(syntax.KindCatchClause, p.advance())
		if p.kind() == syntax.TokenOpenParen {
			decl := syntax.NewGreenNode(syntax.KindCatchDeclaration, p.advance(), p.parseType())
			decl.Append(p.optional(syntax.TokenIdentifier), p.expect(syntax.TokenCloseParen))
			clause.Append(decl)
		}
		if p.atWord("when") {
			clause.Append(p.advance(), p.expect(syntax.TokenOpenParen), p.parseExpression(), p.expect(syntax.TokenCloseParen))
		}
		clause.Append(p.parseBlock())
		node.Append(clause)
	}

	if p.kind() == syntax.TokenFinallyKeyword {
		node.Append(syntax.NewGreenNode(syntax.KindFinallyClause, p.advance(), p.parseBlock()))
	} else if len(node.Children) == 2 {
		p.reportAtPrevious("CS1524", "expected catch or finally")
	}
	return node
}
