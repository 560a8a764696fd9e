package csharp

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/syntree/pkg/source"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// lexer performs a single pass over C# source and produces green tokens
// with their trivia attached. The token stream always ends with an
// end-of-file token and covers [0, len(content)).
type lexer struct {
	content string
	pos     int
	tokens  []*syntax.GreenToken
	diags   []syntax.Diagnostic
}

// Lex tokenizes content. Lexical errors are returned as diagnostics; the
// token stream is complete regardless.
func Lex(content string) ([]*syntax.GreenToken, []syntax.Diagnostic) {
	const bytesPerToken = 4 // rough initial capacity estimate
	lex := &lexer{
		content: content,
		tokens:  make([]*syntax.GreenToken, 0, len(content)/bytesPerToken+1),
	}
	lex.run()
	return lex.tokens, lex.diags
}

func (l *lexer) run() {
	for {
		leading := l.scanTrivia(false)
		if l.pos >= len(l.content) {
			l.tokens = append(l.tokens, syntax.NewGreenToken(syntax.TokenEndOfFile, source.NewSpan(l.pos, l.pos), leading, nil))
			return
		}

		start := l.pos
		kind := l.scanToken()
		span := source.NewSpan(start, l.pos)
		trailing := l.scanTrivia(true)
		l.tokens = append(l.tokens, syntax.NewGreenToken(kind, span, leading, trailing))
	}
}

func (l *lexer) errorf(start, end int, code, msg string) {
	l.diags = append(l.diags, syntax.Diagnostic{Span: source.NewSpan(start, end), Code: code, Message: msg})
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset < len(l.content) {
		return l.content[l.pos+offset]
	}
	return 0
}

// scanTrivia consumes trivia at the current position. Trailing trivia stops
// after the first end-of-line; leading trivia runs up to the next token.
func (l *lexer) scanTrivia(trailing bool) []syntax.Trivia {
	var out []syntax.Trivia
	emit := func(kind syntax.TriviaKind, start int) {
		out = append(out, syntax.Trivia{Kind: kind, Span: source.NewSpan(start, l.pos), Text: l.content[start:l.pos]})
	}

	for l.pos < len(l.content) {
		start := l.pos
		ch := l.content[l.pos]
		switch {
		case ch == '\n' || (ch == '\r' && l.peek(1) == '\n'):
			if ch == '\r' {
				l.pos++
			}
			l.pos++
			emit(syntax.TriviaEndOfLine, start)
			if trailing {
				return out
			}
		case l.isWhitespaceAt(l.pos):
			for l.pos < len(l.content) && l.isWhitespaceAt(l.pos) {
				_, size := utf8.DecodeRuneInString(l.content[l.pos:])
				l.pos += size
			}
			emit(syntax.TriviaWhitespace, start)
		case ch == '/' && l.peek(1) == '/':
			kind := syntax.TriviaSingleLineComment
			if l.peek(2) == '/' && l.peek(3) != '/' {
				kind = syntax.TriviaDocumentationComment
			}
			l.skipToEndOfLine()
			emit(kind, start)
		case ch == '/' && l.peek(1) == '*':
			kind := syntax.TriviaMultiLineComment
			if l.peek(2) == '*' && l.peek(3) != '/' {
				kind = syntax.TriviaDocumentationComment
			}
			l.pos += 2
			closed := false
			for l.pos < len(l.content) {
				if l.content[l.pos] == '*' && l.peek(1) == '/' {
					l.pos += 2
					closed = true
					break
				}
				l.pos++
			}
			if !closed {
				l.errorf(start, l.pos, "CS1035", "end-of-file found, '*/' expected")
			}
			emit(kind, start)
		case ch == '#' && !trailing && l.atLineStart(start):
			l.skipToEndOfLine()
			emit(syntax.TriviaPreprocessorDirective, start)
		default:
			return out
		}
	}
	return out
}

func (l *lexer) skipToEndOfLine() {
	for l.pos < len(l.content) {
		ch := l.content[l.pos]
		if ch == '\n' || (ch == '\r' && l.peek(1) == '\n') {
			return
		}
		l.pos++
	}
}

// atLineStart reports whether only spaces and tabs precede offset on its line.
func (l *lexer) atLineStart(offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch l.content[i] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// isWhitespaceAt reports whether a non-newline whitespace character starts
// at offset. A lone carriage return counts as whitespace.
func (l *lexer) isWhitespaceAt(offset int) bool {
	ch := l.content[offset]
	switch ch {
	case ' ', '\t', '\v', '\f':
		return true
	case '\r':
		return offset+1 >= len(l.content) || l.content[offset+1] != '\n'
	}
	if ch < utf8.RuneSelf {
		return false
	}
	r, _ := utf8.DecodeRuneInString(l.content[offset:])
	return r == '\uFEFF' || unicode.Is(unicode.Zs, r)
}

// scanToken consumes one token and returns its kind.
func (l *lexer) scanToken() syntax.TokenKind {
	ch := l.content[l.pos]
	switch {
	case ch == '@' && l.peek(1) == '"':
		l.pos++
		l.scanVerbatimString()
		return syntax.TokenStringLiteral
	case (ch == '$' && (l.peek(1) == '"' || (l.peek(1) == '@' && l.peek(2) == '"'))) ||
		(ch == '@' && l.peek(1) == '$' && l.peek(2) == '"'):
		l.scanInterpolatedString()
		return syntax.TokenInterpolatedString
	case ch == '"':
		l.scanRegularString('"')
		return syntax.TokenStringLiteral
	case ch == '\'':
		l.scanRegularString('\'')
		return syntax.TokenCharacterLiteral
	case isDigit(ch) || (ch == '.' && isDigit(l.peek(1))):
		l.scanNumber()
		return syntax.TokenNumericLiteral
	case ch == '@' && l.isIdentifierStartAt(l.pos+1):
		l.pos++
		l.scanIdentifierRest()
		return syntax.TokenIdentifier
	case l.isIdentifierStartAt(l.pos):
		start := l.pos
		l.scanIdentifierRest()
		if kind, ok := syntax.KeywordKind(l.content[start:l.pos]); ok {
			return kind
		}
		return syntax.TokenIdentifier
	}

	if kind, width := l.punctuation(); width > 0 {
		l.pos += width
		return kind
	}

	start := l.pos
	_, size := utf8.DecodeRuneInString(l.content[l.pos:])
	l.pos += size
	l.errorf(start, l.pos, "CS1056", "unexpected character '"+l.content[start:l.pos]+"'")
	return syntax.TokenUnknown
}

func (l *lexer) isIdentifierStartAt(offset int) bool {
	if offset >= len(l.content) {
		return false
	}
	ch := l.content[offset]
	if ch < utf8.RuneSelf {
		return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
	}
	r, _ := utf8.DecodeRuneInString(l.content[offset:])
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func (l *lexer) scanIdentifierRest() {
	for l.pos < len(l.content) {
		ch := l.content[l.pos]
		if ch < utf8.RuneSelf {
			if ch == '_' || isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') {
				l.pos++
				continue
			}
			return
		}
		r, size := utf8.DecodeRuneInString(l.content[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nl, unicode.Pc, unicode.Cf) {
			return
		}
		l.pos += size
	}
}

func (l *lexer) scanNumber() {
	if l.content[l.pos] == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') {
		l.pos += 2
		for l.pos < len(l.content) && (isHexDigit(l.content[l.pos]) || l.content[l.pos] == '_') {
			l.pos++
		}
		l.scanNumberSuffix()
		return
	}
	if l.content[l.pos] == '0' && (l.peek(1) == 'b' || l.peek(1) == 'B') {
		l.pos += 2
		for l.pos < len(l.content) && (l.content[l.pos] == '0' || l.content[l.pos] == '1' || l.content[l.pos] == '_') {
			l.pos++
		}
		l.scanNumberSuffix()
		return
	}

	l.skipDigits()
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.pos++
		l.skipDigits()
	}
	if ch := l.peek(0); ch == 'e' || ch == 'E' {
		next := l.peek(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peek(2))) {
			l.pos += 2
			l.skipDigits()
		}
	}
	l.scanNumberSuffix()
}

func (l *lexer) skipDigits() {
	for l.pos < len(l.content) && (isDigit(l.content[l.pos]) || l.content[l.pos] == '_') {
		l.pos++
	}
}

func (l *lexer) scanNumberSuffix() {
	for l.pos < len(l.content) {
		switch l.content[l.pos] {
		case 'u', 'U', 'l', 'L', 'f', 'F', 'd', 'D', 'm', 'M':
			l.pos++
		default:
			return
		}
	}
}

// scanRegularString consumes a quoted string or character literal with
// backslash escapes. A newline terminates it with a diagnostic.
func (l *lexer) scanRegularString(quote byte) {
	start := l.pos
	l.pos++
	for l.pos < len(l.content) {
		switch ch := l.content[l.pos]; ch {
		case '\\':
			l.pos += 2
			if l.pos > len(l.content) {
				l.pos = len(l.content)
			}
		case '\n', '\r':
			l.errorf(start, l.pos, "CS1010", "newline in constant")
			return
		default:
			l.pos++
			if ch == quote {
				return
			}
		}
	}
	l.errorf(start, l.pos, "CS1010", "newline in constant")
}

// scanVerbatimString consumes "..." where "" escapes a quote. The '@' has
// already been consumed.
func (l *lexer) scanVerbatimString() {
	start := l.pos
	l.pos++
	for l.pos < len(l.content) {
		if l.content[l.pos] == '"' {
			if l.peek(1) == '"' {
				l.pos += 2
				continue
			}
			l.pos++
			return
		}
		l.pos++
	}
	l.errorf(start, l.pos, "CS1039", "unterminated string literal")
}

// scanInterpolatedString consumes $"...", $@"..." or @$"..." as a single
// token, skipping over interpolation holes with nested braces and strings.
func (l *lexer) scanInterpolatedString() {
	start := l.pos
	verbatim := false
	for l.content[l.pos] != '"' {
		if l.content[l.pos] == '@' {
			verbatim = true
		}
		l.pos++
	}
	l.pos++

	for l.pos < len(l.content) {
		ch := l.content[l.pos]
		switch {
		case ch == '{' && l.peek(1) == '{', ch == '}' && l.peek(1) == '}':
			l.pos += 2
		case ch == '{':
			l.pos++
			l.skipInterpolationHole()
		case ch == '"' && verbatim && l.peek(1) == '"':
			l.pos += 2
		case ch == '"':
			l.pos++
			return
		case ch == '\\' && !verbatim:
			l.pos = min(l.pos+2, len(l.content))
		case (ch == '\n' || ch == '\r') && !verbatim:
			l.errorf(start, l.pos, "CS1010", "newline in constant")
			return
		default:
			l.pos++
		}
	}
	l.errorf(start, l.pos, "CS1039", "unterminated string literal")
}

// skipInterpolationHole consumes an interpolation hole up to and including
// its closing brace.
func (l *lexer) skipInterpolationHole() {
	depth := 1
	for l.pos < len(l.content) {
		ch := l.content[l.pos]
		switch {
		case ch == '{':
			depth++
			l.pos++
		case ch == '}':
			depth--
			l.pos++
			if depth == 0 {
				return
			}
		case ch == '"':
			l.scanRegularString('"')
		case ch == '\'':
			l.scanRegularString('\'')
		case ch == '@' && l.peek(1) == '"':
			l.pos++
			l.scanVerbatimString()
		case (ch == '$' && (l.peek(1) == '"' || (l.peek(1) == '@' && l.peek(2) == '"'))) ||
			(ch == '@' && l.peek(1) == '$' && l.peek(2) == '"'):
			l.scanInterpolatedString()
		case ch == '\n' || ch == '\r':
			return
		default:
			l.pos++
		}
	}
}

// punctuation matches the longest operator or punctuator at the current
// position. '>' is never combined with a following '>' so that generic
// argument lists can close back to back; the parser joins shift operators.
func (l *lexer) punctuation() (syntax.TokenKind, int) {
	ch, next, third := l.peek(0), l.peek(1), l.peek(2)
	switch ch {
	case '{':
		return syntax.TokenOpenBrace, 1
	case '}':
		return syntax.TokenCloseBrace, 1
	case '(':
		return syntax.TokenOpenParen, 1
	case ')':
		return syntax.TokenCloseParen, 1
	case '[':
		return syntax.TokenOpenBracket, 1
	case ']':
		return syntax.TokenCloseBracket, 1
	case ';':
		return syntax.TokenSemicolon, 1
	case ',':
		return syntax.TokenComma, 1
	case '.':
		return syntax.TokenDot, 1
	case '~':
		return syntax.TokenTilde, 1
	case ':':
		if next == ':' {
			return syntax.TokenColonColon, 2
		}
		return syntax.TokenColon, 1
	case '?':
		if next == '?' {
			if third == '=' {
				return syntax.TokenQuestionQuestionEquals, 3
			}
			return syntax.TokenQuestionQuestion, 2
		}
		return syntax.TokenQuestion, 1
	case '=':
		switch next {
		case '>':
			return syntax.TokenArrow, 2
		case '=':
			return syntax.TokenEqualsEquals, 2
		}
		return syntax.TokenEquals, 1
	case '!':
		if next == '=' {
			return syntax.TokenExclamationEquals, 2
		}
		return syntax.TokenExclamation, 1
	case '<':
		if next == '<' {
			if third == '=' {
				return syntax.TokenLessLessEquals, 3
			}
			return syntax.TokenLessLess, 2
		}
		if next == '=' {
			return syntax.TokenLessEquals, 2
		}
		return syntax.TokenLess, 1
	case '>':
		if next == '=' {
			return syntax.TokenGreaterEquals, 2
		}
		return syntax.TokenGreater, 1
	}
	return compoundOperator(ch, next)
}

type operatorForms struct {
	single, double, assign syntax.TokenKind
}

//nolint:gochecknoglobals // Read-only lookup table.
var operatorTable = map[byte]operatorForms{
	'+': {syntax.TokenPlus, syntax.TokenPlusPlus, syntax.TokenPlusEquals},
	'-': {syntax.TokenMinus, syntax.TokenMinusMinus, syntax.TokenMinusEquals},
	'*': {syntax.TokenAsterisk, syntax.TokenUnknown, syntax.TokenAsteriskEquals},
	'/': {syntax.TokenSlash, syntax.TokenUnknown, syntax.TokenSlashEquals},
	'%': {syntax.TokenPercent, syntax.TokenUnknown, syntax.TokenPercentEquals},
	'&': {syntax.TokenAmpersand, syntax.TokenAmpersandAmpersand, syntax.TokenAmpersandEquals},
	'|': {syntax.TokenBar, syntax.TokenBarBar, syntax.TokenBarEquals},
	'^': {syntax.TokenCaret, syntax.TokenUnknown, syntax.TokenCaretEquals},
}

// compoundOperator matches arithmetic and logical operators with their
// doubled and assignment forms.
func compoundOperator(ch, next byte) (syntax.TokenKind, int) {
	f, ok := operatorTable[ch]
	if !ok {
		return syntax.TokenUnknown, 0
	}
	switch {
	case next == ch && f.double != syntax.TokenUnknown:
		return f.double, 2
	case next == '=':
		return f.assign, 2
	default:
		return f.single, 1
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
