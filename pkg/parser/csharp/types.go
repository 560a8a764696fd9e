package csharp

import "github.com/yaklabco/syntree/pkg/syntax"

// parseType parses a type in declaration position, including nullable and
// array suffixes.
func (p *parser) parseType() *syntax.GreenNode {
	return p.parseTypeWith(true)
}

// parseTypeWith parses a type; nullable controls whether a trailing '?'
// belongs to the type, which is ambiguous after "is" and "as".
func (p *parser) parseTypeWith(nullable bool) *syntax.GreenNode {
	typ := p.parseTypeCore(nullable)
	if p.kind() == syntax.TokenOpenBracket && p.isRankSpecifierAt(p.pos) {
		array := syntax.NewGreenNode(syntax.KindArrayType, typ)
		for p.kind() == syntax.TokenOpenBracket && p.isRankSpecifierAt(p.pos) {
			array.Append(p.parseArrayRankSpecifier(false))
		}
		typ = array
		if nullable && p.kind() == syntax.TokenQuestion {
			typ = syntax.NewGreenNode(syntax.KindNullableType, typ, p.advance())
		}
	}
	return typ
}

// parseTypeCore parses a predefined type or name with an optional '?'.
func (p *parser) parseTypeCore(nullable bool) *syntax.GreenNode {
	var typ *syntax.GreenNode
	switch {
	case p.kind().IsPredefinedType():
		typ = syntax.NewGreenNode(syntax.KindPredefinedType, p.advance())
	case p.kind() == syntax.TokenIdentifier:
		typ = p.parseName()
	default:
		typ = syntax.NewGreenNode(syntax.KindIdentifierName, p.missing(syntax.TokenIdentifier))
	}
	if nullable && p.kind() == syntax.TokenQuestion {
		typ = syntax.NewGreenNode(syntax.KindNullableType, typ, p.advance())
	}
	return typ
}

// isRankSpecifierAt reports whether an empty rank specifier "[]" or "[,]" starts at i.
func (p *parser) isRankSpecifierAt(i int) bool {
	if p.kindAt(i) != syntax.TokenOpenBracket {
		return false
	}
	i++
	for p.kindAt(i) == syntax.TokenComma {
		i++
	}
	return p.kindAt(i) == syntax.TokenCloseBracket
}

// parseArrayRankSpecifier parses "[,]"; with sizes it also accepts "[n, m]".
func (p *parser) parseArrayRankSpecifier(sizes bool) *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindArrayRankSpecifier, p.advance())
	for p.kind() != syntax.TokenCloseBracket && p.kind() != syntax.TokenEndOfFile {
		switch {
		case p.kind() == syntax.TokenComma:
			node.Append(p.advance())
		case sizes && p.canStartExpression():
			node.Append(p.parseExpression())
		default:
			node.Append(p.missing(syntax.TokenCloseBracket))
			return node
		}
	}
	node.Append(p.expect(syntax.TokenCloseBracket))
	return node
}

// parseName parses a possibly qualified, possibly generic name.
func (p *parser) parseName() *syntax.GreenNode {
	left := p.parseSimpleName()
	for (p.kind() == syntax.TokenDot || p.kind() == syntax.TokenColonColon) && p.peekKind(1) == syntax.TokenIdentifier {
		dot := p.advance()
		left = syntax.NewGreenNode(syntax.KindQualifiedName, left, dot, p.parseSimpleName())
	}
	return left
}

// parseSimpleName parses an identifier with an optional type argument list.
func (p *parser) parseSimpleName() *syntax.GreenNode {
	id := p.expect(syntax.TokenIdentifier)
	if p.kind() == syntax.TokenLess {
		if _, ok := p.scanTypeArgumentList(p.pos); ok {
			return syntax.NewGreenNode(syntax.KindGenericName, id, p.parseTypeArgumentList())
		}
	}
	return syntax.NewGreenNode(syntax.KindIdentifierName, id)
}

func (p *parser) parseTypeArgumentList() *syntax.GreenNode {
	node := syntax.NewGreenNode(syntax.KindTypeArgumentList, p.advance(), p.parseType())
	for p.kind() == syntax.TokenComma {
		node.Append(p.advance(), p.parseType())
	}
	node.Append(p.expect(syntax.TokenGreater))
	return node
}

// scanType reports whether a type starts at token i and returns the index
// just past it. It builds nothing.
func (p *parser) scanType(i int) (int, bool) {
	switch k := p.kindAt(i); {
	case k.IsPredefinedType():
		i++
	case k == syntax.TokenIdentifier:
		i = p.scanName(i)
	default:
		return i, false
	}
	if p.kindAt(i) == syntax.TokenQuestion {
		i++
	}
	for p.isRankSpecifierAt(i) {
		i++
		for p.kindAt(i) == syntax.TokenComma {
			i++
		}
		i++
	}
	return i, true
}

// scanName returns the index just past a name starting at identifier i.
func (p *parser) scanName(i int) int {
	i = p.scanSimpleName(i)
	for (p.kindAt(i) == syntax.TokenDot || p.kindAt(i) == syntax.TokenColonColon) && p.kindAt(i+1) == syntax.TokenIdentifier {
		i = p.scanSimpleName(i + 1)
	}
	return i
}

func (p *parser) scanSimpleName(i int) int {
	i++
	if p.kindAt(i) == syntax.TokenLess {
		if end, ok := p.scanTypeArgumentList(i); ok {
			return end
		}
	}
	return i
}

// scanTypeArgumentList scans "<T, U>" starting at the '<' at index i.
// Results are cached per index, keeping repeated lookahead over long runs
// of unclosed '<' linear.
func (p *parser) scanTypeArgumentList(i int) (int, bool) {
	if r, ok := p.typeArgScans[i]; ok {
		return r.end, r.ok
	}
	end, ok := p.scanTypeArgumentListAt(i)
	if p.typeArgScans == nil {
		p.typeArgScans = make(map[int]scanResult)
	}
	p.typeArgScans[i] = scanResult{end: end, ok: ok}
	return end, ok
}

func (p *parser) scanTypeArgumentListAt(i int) (int, bool) {
	i++
	for {
		end, ok := p.scanType(i)
		if !ok {
			return i, false
		}
		i = end
		switch p.kindAt(i) {
		case syntax.TokenComma:
			i++
		case syntax.TokenGreater:
			return i + 1, true
		default:
			return i, false
		}
	}
}
