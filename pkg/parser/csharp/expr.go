package csharp

import "github.com/yaklabco/syntree/pkg/syntax"

// Binary operator precedence, lowest first. Zero means "not a binary operator".
const (
	precNone = iota
	precCoalesce
	precConditionalOr
	precConditionalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

func (p *parser) parseExpression() *syntax.GreenNode {
	if p.isLambdaAhead() {
		return p.parseLambda()
	}
	if p.isQueryAhead() {
		return p.parseQuery()
	}

	left := p.parseConditional()
	if width := p.assignmentOperatorWidth(); width > 0 {
		node := syntax.NewGreenNode(syntax.KindAssignmentExpression, left)
		for range width {
			node.Append(p.advance())
		}
		if p.kind() == syntax.TokenOpenBrace {
			node.Append(p.parseInitializer())
		} else {
			node.Append(p.parseExpression())
		}
		return node
	}
	return left
}

// assignmentOperatorWidth returns the number of tokens forming an
// assignment operator at the current position, or zero. ">>=" arrives as
// '>' followed by '>='.
func (p *parser) assignmentOperatorWidth() int {
	switch p.kind() {
	case syntax.TokenEquals, syntax.TokenPlusEquals, syntax.TokenMinusEquals,
		syntax.TokenAsteriskEquals, syntax.TokenSlashEquals, syntax.TokenPercentEquals,
		syntax.TokenAmpersandEquals, syntax.TokenBarEquals, syntax.TokenCaretEquals,
		syntax.TokenLessLessEquals, syntax.TokenQuestionQuestionEquals:
		return 1
	case syntax.TokenGreater:
		if p.peekKind(1) == syntax.TokenGreaterEquals && p.adjacent(p.pos) {
			return 2
		}
	}
	return 0
}

func (p *parser) parseConditional() *syntax.GreenNode {
	cond := p.parseBinary(precCoalesce)
	if p.kind() != syntax.TokenQuestion {
		return cond
	}
	return syntax.NewGreenNode(syntax.KindConditionalExpression,
		cond, p.advance(), p.parseExpression(), p.expect(syntax.TokenColon), p.parseExpression())
}

// binaryOperator returns the precedence and token width of the binary
// operator at the current position.
func (p *parser) binaryOperator() (int, int) {
	switch p.kind() {
	case syntax.TokenQuestionQuestion:
		return precCoalesce, 1
	case syntax.TokenBarBar:
		return precConditionalOr, 1
	case syntax.TokenAmpersandAmpersand:
		return precConditionalAnd, 1
	case syntax.TokenBar:
		return precBitwiseOr, 1
	case syntax.TokenCaret:
		return precBitwiseXor, 1
	case syntax.TokenAmpersand:
		return precBitwiseAnd, 1
	case syntax.TokenEqualsEquals, syntax.TokenExclamationEquals:
		return precEquality, 1
	case syntax.TokenLess, syntax.TokenLessEquals, syntax.TokenGreaterEquals,
		syntax.TokenIsKeyword, syntax.TokenAsKeyword:
		return precRelational, 1
	case syntax.TokenGreater:
		if p.adjacent(p.pos) {
			switch p.peekKind(1) {
			case syntax.TokenGreater:
				return precShift, 2
			case syntax.TokenGreaterEquals:
				return precNone, 0
			}
		}
		return precRelational, 1
	case syntax.TokenLessLess:
		return precShift, 1
	case syntax.TokenPlus, syntax.TokenMinus:
		return precAdditive, 1
	case syntax.TokenAsterisk, syntax.TokenSlash, syntax.TokenPercent:
		return precMultiplicative, 1
	default:
		return precNone, 0
	}
}

func (p *parser) parseBinary(minPrec int) *syntax.GreenNode {
	left := p.parseUnary()
	for {
		prec, width := p.binaryOperator()
		if prec == precNone || prec < minPrec {
			return left
		}

		node := syntax.NewGreenNode(syntax.KindBinaryExpression, left)
		switch p.kind() {
		case syntax.TokenIsKeyword:
			node.Append(p.advance())
			p.parsePattern(node)
		case syntax.TokenAsKeyword:
			node.Append(p.advance(), p.parseTypeWith(false))
		default:
			for range width {
				node.Append(p.advance())
			}
			next := prec + 1
			if prec == precCoalesce {
				next = prec
			}
			node.Append(p.parseBinary(next))
		}
		left = node
	}
}

// parsePattern parses the right side of "is": a type with an optional
// designation, "not", or a constant.
func (p *parser) parsePattern(node *syntax.GreenNode) {
	if p.atWord("not") {
		node.Append(p.advance())
	}
	if p.kind().IsPredefinedType() || p.isTypePatternAhead() {
		node.Append(p.parseTypeWith(false))
		if p.kind() == syntax.TokenIdentifier && !p.isQueryKeyword() {
			node.Append(p.advance())
		}
		return
	}
	node.Append(p.parseUnary())
}

// isTypePatternAhead reports whether an identifier-based type follows,
// rather than a constant such as a member access.
func (p *parser) isTypePatternAhead() bool {
	end, ok := p.scanType(p.pos)
	if !ok {
		return false
	}
	switch p.kindAt(end) {
	case syntax.TokenIdentifier, syntax.TokenCloseParen, syntax.TokenSemicolon,
		syntax.TokenAmpersandAmpersand, syntax.TokenBarBar, syntax.TokenQuestion,
		syntax.TokenComma, syntax.TokenCloseBracket, syntax.TokenEndOfFile:
		return true
	default:
		return false
	}
}

func (p *parser) isQueryKeyword() bool {
	for _, word := range []string{"where", "select", "orderby", "from", "ascending", "descending"} {
		if p.atWord(word) {
			return true
		}
	}
	return false
}

func (p *parser) parseUnary() *syntax.GreenNode {
	switch p.kind() {
	case syntax.TokenPlus, syntax.TokenMinus, syntax.TokenExclamation, syntax.TokenTilde,
		syntax.TokenPlusPlus, syntax.TokenMinusMinus:
		return syntax.NewGreenNode(syntax.KindPrefixUnaryExpression, p.advance(), p.parseUnary())
	case syntax.TokenOpenParen:
		if p.isCastAhead() {
			return syntax.NewGreenNode(syntax.KindCastExpression,
				p.advance(), p.parseType(), p.expect(syntax.TokenCloseParen), p.parseUnary())
		}
	case syntax.TokenIdentifier:
		if p.atWord("await") && p.isAwaitOperand(p.pos+1) {
			return syntax.NewGreenNode(syntax.KindAwaitExpression, p.advance(), p.parseUnary())
		}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *parser) isAwaitOperand(i int) bool {
	switch k := p.kindAt(i); k {
	case syntax.TokenIdentifier, syntax.TokenOpenParen, syntax.TokenThisKeyword, syntax.TokenBaseKeyword,
		syntax.TokenNewKeyword, syntax.TokenTypeofKeyword, syntax.TokenDefaultKeyword,
		syntax.TokenNumericLiteral, syntax.TokenStringLiteral, syntax.TokenCharacterLiteral,
		syntax.TokenInterpolatedString:
		return true
	default:
		return k.IsPredefinedType()
	}
}

// isCastAhead decides whether the '(' at the current position opens a cast.
func (p *parser) isCastAhead() bool {
	end, ok := p.scanType(p.pos + 1)
	if !ok || p.kindAt(end) != syntax.TokenCloseParen {
		return false
	}
	if end == p.pos+2 && p.peekKind(1).IsPredefinedType() {
		return true
	}
	switch next := p.kindAt(end + 1); next {
	case syntax.TokenIdentifier, syntax.TokenOpenParen, syntax.TokenExclamation, syntax.TokenTilde,
		syntax.TokenNumericLiteral, syntax.TokenStringLiteral, syntax.TokenCharacterLiteral,
		syntax.TokenInterpolatedString:
		return true
	case syntax.TokenIsKeyword, syntax.TokenAsKeyword:
		return false
	default:
		return next.IsKeyword()
	}
}

func (p *parser) parsePostfix(expr *syntax.GreenNode) *syntax.GreenNode {
	for {
		switch p.kind() {
		case syntax.TokenDot:
			expr = syntax.NewGreenNode(syntax.KindSimpleMemberAccessExpression, expr, p.advance(), p.parseSimpleNameExpression())
		case syntax.TokenOpenParen:
			expr = syntax.NewGreenNode(syntax.KindInvocationExpression, expr, p.parseArgumentList())
		case syntax.TokenOpenBracket:
			expr = syntax.NewGreenNode(syntax.KindElementAccessExpression, expr, p.parseBracketedArgumentList())
		case syntax.TokenPlusPlus, syntax.TokenMinusMinus:
			expr = syntax.NewGreenNode(syntax.KindPostfixUnaryExpression, expr, p.advance())
		default:
			return expr
		}
	}
}

// parseSimpleNameExpression parses an identifier in expression position;
// it becomes a generic name only when the type argument list is followed
// by a token that cannot continue a comparison.
func (p *parser) parseSimpleNameExpression() *syntax.GreenNode {
	id := p.expect(syntax.TokenIdentifier)
	if p.kind() == syntax.TokenLess && p.isGenericArgumentsInExpression() {
		return syntax.NewGreenNode(syntax.KindGenericName, id, p.parseTypeArgumentList())
	}
	return syntax.NewGreenNode(syntax.KindIdentifierName, id)
}

func (p *parser) isGenericArgumentsInExpression() bool {
	end, ok := p.scanTypeArgumentList(p.pos)
	if !ok {
		return false
	}
	switch p.kindAt(end) {
	case syntax.TokenOpenParen, syntax.TokenCloseParen, syntax.TokenCloseBracket, syntax.TokenCloseBrace,
		syntax.TokenColon, syntax.TokenSemicolon, syntax.TokenComma, syntax.TokenDot,
		syntax.TokenQuestion, syntax.TokenEqualsEquals, syntax.TokenExclamationEquals,
		syntax.TokenBar, syntax.TokenCaret, syntax.TokenAmpersandAmpersand, syntax.TokenBarBar,
		syntax.TokenAmpersand, syntax.TokenOpenBracket, syntax.TokenEndOfFile:
		return true
	default:
		return false
	}
}

func (p *parser) canStartExpression() bool {
	switch k := p.kind(); k {
	case syntax.TokenIdentifier, syntax.TokenNumericLiteral, syntax.TokenStringLiteral,
		syntax.TokenCharacterLiteral, syntax.TokenInterpolatedString,
		syntax.TokenThisKeyword, syntax.TokenBaseKeyword, syntax.TokenNewKeyword,
		syntax.TokenTypeofKeyword, syntax.TokenDefaultKeyword, syntax.TokenTrueKeyword,
		syntax.TokenFalseKeyword, syntax.TokenNullKeyword, syntax.TokenOpenParen,
		syntax.TokenPlus, syntax.TokenMinus, syntax.TokenExclamation, syntax.TokenTilde,
		syntax.TokenPlusPlus, syntax.TokenMinusMinus:
		return true
	default:
		return k.IsPredefinedType()
	}
}

func (p *parser) parsePrimary() *syntax.GreenNode {
	switch k := p.kind(); k {
	case syntax.TokenIdentifier:
		return p.parseSimpleNameExpression()
	case syntax.TokenNumericLiteral:
		return syntax.NewGreenNode(syntax.KindNumericLiteralExpression, p.advance())
	case syntax.TokenStringLiteral:
		return syntax.NewGreenNode(syntax.KindStringLiteralExpression, p.advance())
	case syntax.TokenCharacterLiteral:
		return syntax.NewGreenNode(syntax.KindCharacterLiteralExpression, p.advance())
	case syntax.TokenInterpolatedString:
		return syntax.NewGreenNode(syntax.KindInterpolatedStringExpression, p.advance())
	case syntax.TokenTrueKeyword:
		return syntax.NewGreenNode(syntax.KindTrueLiteralExpression, p.advance())
	case syntax.TokenFalseKeyword:
		return syntax.NewGreenNode(syntax.KindFalseLiteralExpression, p.advance())
	case syntax.TokenNullKeyword:
		return syntax.NewGreenNode(syntax.KindNullLiteralExpression, p.advance())
	case syntax.TokenThisKeyword:
		return syntax.NewGreenNode(syntax.KindThisExpression, p.advance())
	case syntax.TokenBaseKeyword:
		return syntax.NewGreenNode(syntax.KindBaseExpression, p.advance())
	case syntax.TokenOpenParen:
		return syntax.NewGreenNode(syntax.KindParenthesizedExpression,
			p.advance(), p.parseExpression(), p.expect(syntax.TokenCloseParen))
	case syntax.TokenNewKeyword:
		return p.parseCreation()
	case syntax.TokenTypeofKeyword:
		return syntax.NewGreenNode(syntax.KindTypeOfExpression,
			p.advance(), p.expect(syntax.TokenOpenParen), p.parseType(), p.expect(syntax.TokenCloseParen))
	case syntax.TokenDefaultKeyword:
		node := syntax.NewGreenNode(syntax.KindDefaultExpression, p.advance())
		if p.kind() == syntax.TokenOpenParen {
			node.Append(p.advance(), p.parseType(), p.expect(syntax.TokenCloseParen))
		}
		return node
	default:
		if k.IsPredefinedType() {
			return syntax.NewGreenNode(syntax.KindPredefinedType, p.advance())
		}
	}

	p.report(p.cur().Span, "CS1525", "invalid expression term '"+p.textAt(p.pos)+"'")
	return syntax.NewGreenNode(syntax.KindIdentifierName, syntax.NewMissingToken(syntax.TokenIdentifier, p.cur().FullStart()))
}

// parseCreation parses object, array, anonymous and target-typed creation.
func (p *parser) parseCreation() *syntax.GreenNode {
	newKw := p.advance()

	switch p.kind() {
	case syntax.TokenOpenBracket:
		return syntax.NewGreenNode(syntax.KindArrayCreationExpression,
			newKw, p.parseArrayRankSpecifier(false), p.parseInitializer())
	case syntax.TokenOpenBrace:
		return syntax.NewGreenNode(syntax.KindObjectCreationExpression, newKw, p.parseInitializer())
	case syntax.TokenOpenParen:
		node := syntax.NewGreenNode(syntax.KindObjectCreationExpression, newKw, p.parseArgumentList())
		if p.kind() == syntax.TokenOpenBrace {
			node.Append(p.parseInitializer())
		}
		return node
	}

	typ := p.parseTypeCore(false)
	if p.kind() == syntax.TokenOpenBracket {
		array := syntax.NewGreenNode(syntax.KindArrayType, typ, p.parseArrayRankSpecifier(true))
		for p.isRankSpecifierAt(p.pos) {
			array.Append(p.parseArrayRankSpecifier(false))
		}
		node := syntax.NewGreenNode(syntax.KindArrayCreationExpression, newKw, array)
		if p.kind() == syntax.TokenOpenBrace {
			node.Append(p.parseInitializer())
		}
		return node
	}

	node := syntax.NewGreenNode(syntax.KindObjectCreationExpression, newKw, typ)
	if p.kind() == syntax.TokenOpenParen {
		node.Append(p.parseArgumentList())
	}
	if p.kind() == syntax.TokenOpenBrace {
		node.Append(p.parseInitializer())
	}
	return node
}

// parseInitializer parses "{ a, b }", including nested collection
// initializers and "Name = value" object initializers.
func (p *parser) parseInitializer() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindInitializerExpression, p.expect(syntax.TokenOpenBrace))
	for p.kind() != syntax.TokenCloseBrace && p.kind() != syntax.TokenEndOfFile {
		switch {
		case p.kind() == syntax.TokenOpenBrace:
			node.Append(p.parseInitializer())
		case p.canStartExpression():
			node.Append(p.parseExpression())
		default:
			node.Append(p.expect(syntax.TokenCloseBrace))
			return node
		}
		if p.kind() != syntax.TokenComma {
			break
		}
		node.Append(p.advance())
	}
	node.Append(p.expect(syntax.TokenCloseBrace))
	return node
}

func (p *parser) parseArgumentList() *syntax.GreenNode {
	return p.parseArguments(syntax.KindArgumentList, syntax.TokenOpenParen, syntax.TokenCloseParen)
}

func (p *parser) parseBracketedArgumentList() *syntax.GreenNode {
	return p.parseArguments(syntax.KindBracketedArgumentList, syntax.TokenOpenBracket, syntax.TokenCloseBracket)
}

func (p *parser) parseArguments(kind syntax.Kind, openKind, closeKind syntax.TokenKind) *syntax.GreenNode {
	node := syntax.NewGreenNode(kind, p.expect(openKind))
	if p.kind() != closeKind {
		for {
			node.Append(p.parseArgument())
			if p.kind() != syntax.TokenComma {
				break
			}
			node.Append(p.advance())
		}
	}
	node.Append(p.expect(closeKind))
	return node
}

func (p *parser) parseArgument() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindArgument)
	if p.kind() == syntax.TokenIdentifier && p.peekKind(1) == syntax.TokenColon {
		node.Append(p.advance(), p.advance())
	}
	switch p.kind() {
	case syntax.TokenRefKeyword, syntax.TokenOutKeyword, syntax.TokenInKeyword:
		node.Append(p.advance())
	}
	if p.isOutVariableAhead() {
		node.Append(p.parseType(), p.advance())
		return node
	}
	node.Append(p.parseExpression())
	return node
}

// isOutVariableAhead reports an inline declaration such as "out var x".
func (p *parser) isOutVariableAhead() bool {
	end, ok := p.scanType(p.pos)
	if !ok || p.kindAt(end) != syntax.TokenIdentifier {
		return false
	}
	next := p.kindAt(end + 1)
	return next == syntax.TokenComma || next == syntax.TokenCloseParen
}

// isLambdaAhead reports whether a lambda starts at the current position:
// "x =>", "(a, b) =>" or either form after async.
func (p *parser) isLambdaAhead() bool {
	i := p.pos
	if p.isWord(i, "async") && p.kindAt(i+1) != syntax.TokenArrow {
		i++
	}
	switch p.kindAt(i) {
	case syntax.TokenIdentifier:
		return p.kindAt(i+1) == syntax.TokenArrow
	case syntax.TokenOpenParen:
		end := p.matchParen(i)
		return end >= 0 && p.kindAt(end+1) == syntax.TokenArrow
	default:
		return false
	}
}

// matchParen returns the index of the ')' matching the '(' at i, or -1.
func (p *parser) matchParen(i int) int {
	depth := 0
	for ; i < len(p.toks); i++ {
		switch p.kindAt(i) {
		case syntax.TokenOpenParen:
			depth++
		case syntax.TokenCloseParen:
			depth--
			if depth == 0 {
				return i
			}
		case syntax.TokenSemicolon, syntax.TokenOpenBrace, syntax.TokenCloseBrace, syntax.TokenEndOfFile:
			return -1
		}
	}
	return -1
}

func (p *parser) parseLambda() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindLambdaExpression)
	if p.atWord("async") && p.peekKind(1) != syntax.TokenArrow {
		node.Append(p.advance())
	}

	if p.kind() == syntax.TokenIdentifier {
		node.Append(syntax.NewGreenNode(syntax.KindParameter, p.advance()))
	} else {
		params := syntax.NewGreenNode(syntax.KindParameterList, p.advance())
		if p.kind() != syntax.TokenCloseParen {
			for {
				params.Append(p.parseLambdaParameter())
				if p.kind() != syntax.TokenComma {
					break
				}
				params.Append(p.advance())
			}
		}
		params.Append(p.expect(syntax.TokenCloseParen))
		node.Append(params)
	}

	node.Append(p.expect(syntax.TokenArrow))
	if p.kind() == syntax.TokenOpenBrace {
		node.Append(p.parseBlock())
	} else {
		node.Append(p.parseExpression())
	}
	return node
}

// parseLambdaParameter accepts implicitly typed parameters ("x") as well as
// explicitly typed ones.
func (p *parser) parseLambdaParameter() *syntax.GreenNode {
	if p.kind() == syntax.TokenIdentifier {
		switch p.peekKind(1) {
		case syntax.TokenComma, syntax.TokenCloseParen:
			return syntax.NewGreenNode(syntax.KindParameter, p.advance())
		}
	}
	return p.parseParameter()
}

// isQueryAhead reports whether "from x in" or "from T x in" starts here.
func (p *parser) isQueryAhead() bool {
	if !p.atWord("from") {
		return false
	}
	if p.peekKind(1) == syntax.TokenIdentifier && p.peekKind(2) == syntax.TokenInKeyword {
		return true
	}
	end, ok := p.scanType(p.pos + 1)
	return ok && p.kindAt(end) == syntax.TokenIdentifier && p.kindAt(end+1) == syntax.TokenInKeyword
}

func (p *parser) parseQuery() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindQueryExpression, p.parseFromClause())
	body := syntax.NewGreenNode(syntax.KindQueryBody)

	for {
		switch {
		case p.atWord("from") && p.isQueryAhead():
			body.Append(p.parseFromClause())
			continue
		case p.atWord("where"):
			body.Append(syntax.NewGreenNode(syntax.KindWhereClause, p.advance(), p.parseExpression()))
			continue
		case p.atWord("orderby"):
			body.Append(p.parseOrderByClause())
			continue
		}
		break
	}

	if p.atWord("select") {
		body.Append(syntax.NewGreenNode(syntax.KindSelectClause, p.advance(), p.parseExpression()))
	} else {
		p.reportAtPrevious("CS0742", "a query body must end with a select clause or a group clause")
		body.Append(syntax.NewGreenNode(syntax.KindSelectClause, syntax.NewMissingToken(syntax.TokenIdentifier, p.cur().FullStart())))
	}

	node.Append(body)
	return node
}

func (p *parser) parseFromClause() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindFromClause, p.advance())
	if !(p.kind() == syntax.TokenIdentifier && p.peekKind(1) == syntax.TokenInKeyword) {
		node.Append(p.parseType())
	}
	node.Append(p.expect(syntax.TokenIdentifier), p.expect(syntax.TokenInKeyword), p.parseExpression())
	return node
}

func (p *parser) parseOrderByClause() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindOrderByClause, p.advance())
	for {
		node.Append(p.parseExpression())
		if p.atWord("ascending") || p.atWord("descending") {
			node.Append(p.advance())
		}
		if p.kind() != syntax.TokenComma {
			return node
		}
		node.Append(p.advance())
	}
}
