package syntax

import (
	"fmt"
	"strconv"
)

// TokenKind classifies a token.
type TokenKind uint16

// Token kinds: special tokens, literals, punctuation, then reserved keywords.
// Contextual keywords (var, get, set, from, select, ...) are identifiers.
const (
	TokenUnknown TokenKind = iota
	TokenEndOfFile
	TokenIdentifier

	TokenNumericLiteral
	TokenStringLiteral
	TokenCharacterLiteral
	TokenInterpolatedString

	// Punctuation.
	TokenOpenBrace
	TokenCloseBrace
	TokenOpenParen
	TokenCloseParen
	TokenOpenBracket
	TokenCloseBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenColon
	TokenColonColon
	TokenQuestion
	TokenQuestionQuestion
	TokenQuestionQuestionEquals
	TokenArrow
	TokenEquals
	TokenEqualsEquals
	TokenExclamationEquals
	TokenLess
	TokenLessEquals
	TokenLessLess
	TokenLessLessEquals
	TokenGreater
	TokenGreaterEquals
	TokenPlus
	TokenPlusPlus
	TokenPlusEquals
	TokenMinus
	TokenMinusMinus
	TokenMinusEquals
	TokenAsterisk
	TokenAsteriskEquals
	TokenSlash
	TokenSlashEquals
	TokenPercent
	TokenPercentEquals
	TokenExclamation
	TokenTilde
	TokenAmpersand
	TokenAmpersandAmpersand
	TokenAmpersandEquals
	TokenBar
	TokenBarBar
	TokenBarEquals
	TokenCaret
	TokenCaretEquals

	// Keywords.
	TokenAbstractKeyword
	TokenAsKeyword
	TokenBaseKeyword
	TokenBoolKeyword
	TokenBreakKeyword
	TokenByteKeyword
	TokenCaseKeyword
	TokenCatchKeyword
	TokenCharKeyword
	TokenCheckedKeyword
	TokenClassKeyword
	TokenConstKeyword
	TokenContinueKeyword
	TokenDecimalKeyword
	TokenDefaultKeyword
	TokenDelegateKeyword
	TokenDoKeyword
	TokenDoubleKeyword
	TokenElseKeyword
	TokenEnumKeyword
	TokenEventKeyword
	TokenExplicitKeyword
	TokenExternKeyword
	TokenFalseKeyword
	TokenFinallyKeyword
	TokenFixedKeyword
	TokenFloatKeyword
	TokenForKeyword
	TokenForeachKeyword
	TokenGotoKeyword
	TokenIfKeyword
	TokenImplicitKeyword
	TokenInKeyword
	TokenIntKeyword
	TokenInterfaceKeyword
	TokenInternalKeyword
	TokenIsKeyword
	TokenLockKeyword
	TokenLongKeyword
	TokenNamespaceKeyword
	TokenNewKeyword
	TokenNullKeyword
	TokenObjectKeyword
	TokenOperatorKeyword
	TokenOutKeyword
	TokenOverrideKeyword
	TokenParamsKeyword
	TokenPrivateKeyword
	TokenProtectedKeyword
	TokenPublicKeyword
	TokenReadonlyKeyword
	TokenRefKeyword
	TokenReturnKeyword
	TokenSbyteKeyword
	TokenSealedKeyword
	TokenShortKeyword
	TokenSizeofKeyword
	TokenStackallocKeyword
	TokenStaticKeyword
	TokenStringKeyword
	TokenStructKeyword
	TokenSwitchKeyword
	TokenThisKeyword
	TokenThrowKeyword
	TokenTrueKeyword
	TokenTryKeyword
	TokenTypeofKeyword
	TokenUintKeyword
	TokenUlongKeyword
	TokenUncheckedKeyword
	TokenUnsafeKeyword
	TokenUshortKeyword
	TokenUsingKeyword
	TokenVirtualKeyword
	TokenVoidKeyword
	TokenVolatileKeyword
	TokenWhileKeyword

	tokenCount
)

const (
	firstPunctuation = TokenOpenBrace
	lastPunctuation  = TokenCaretEquals
	firstKeyword     = TokenAbstractKeyword
	lastKeyword      = TokenWhileKeyword
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenNames = [...]string{
	TokenUnknown:                "BadToken",
	TokenEndOfFile:              "EndOfFileToken",
	TokenIdentifier:             "IdentifierToken",
	TokenNumericLiteral:         "NumericLiteralToken",
	TokenStringLiteral:          "StringLiteralToken",
	TokenCharacterLiteral:       "CharacterLiteralToken",
	TokenInterpolatedString:     "InterpolatedStringToken",
	TokenOpenBrace:              "OpenBraceToken",
	TokenCloseBrace:             "CloseBraceToken",
	TokenOpenParen:              "OpenParenToken",
	TokenCloseParen:             "CloseParenToken",
	TokenOpenBracket:            "OpenBracketToken",
	TokenCloseBracket:           "CloseBracketToken",
	TokenSemicolon:              "SemicolonToken",
	TokenComma:                  "CommaToken",
	TokenDot:                    "DotToken",
	TokenColon:                  "ColonToken",
	TokenColonColon:             "ColonColonToken",
	TokenQuestion:               "QuestionToken",
	TokenQuestionQuestion:       "QuestionQuestionToken",
	TokenQuestionQuestionEquals: "QuestionQuestionEqualsToken",
	TokenArrow:                  "ArrowToken",
	TokenEquals:                 "EqualsToken",
	TokenEqualsEquals:           "EqualsEqualsToken",
	TokenExclamationEquals:      "ExclamationEqualsToken",
	TokenLess:                   "LessToken",
	TokenLessEquals:             "LessEqualsToken",
	TokenLessLess:               "LessLessToken",
	TokenLessLessEquals:         "LessLessEqualsToken",
	TokenGreater:                "GreaterToken",
	TokenGreaterEquals:          "GreaterEqualsToken",
	TokenPlus:                   "PlusToken",
	TokenPlusPlus:               "PlusPlusToken",
	TokenPlusEquals:             "PlusEqualsToken",
	TokenMinus:                  "MinusToken",
	TokenMinusMinus:             "MinusMinusToken",
	TokenMinusEquals:            "MinusEqualsToken",
	TokenAsterisk:               "AsteriskToken",
	TokenAsteriskEquals:         "AsteriskEqualsToken",
	TokenSlash:                  "SlashToken",
	TokenSlashEquals:            "SlashEqualsToken",
	TokenPercent:                "PercentToken",
	TokenPercentEquals:          "PercentEqualsToken",
	TokenExclamation:            "ExclamationToken",
	TokenTilde:                  "TildeToken",
	TokenAmpersand:              "AmpersandToken",
	TokenAmpersandAmpersand:     "AmpersandAmpersandToken",
	TokenAmpersandEquals:        "AmpersandEqualsToken",
	TokenBar:                    "BarToken",
	TokenBarBar:                 "BarBarToken",
	TokenBarEquals:              "BarEqualsToken",
	TokenCaret:                  "CaretToken",
	TokenCaretEquals:            "CaretEqualsToken",
	TokenAbstractKeyword:        "AbstractKeyword",
	TokenAsKeyword:              "AsKeyword",
	TokenBaseKeyword:            "BaseKeyword",
	TokenBoolKeyword:            "BoolKeyword",
	TokenBreakKeyword:           "BreakKeyword",
	TokenByteKeyword:            "ByteKeyword",
	TokenCaseKeyword:            "CaseKeyword",
	TokenCatchKeyword:           "CatchKeyword",
	TokenCharKeyword:            "CharKeyword",
	TokenCheckedKeyword:         "CheckedKeyword",
	TokenClassKeyword:           "ClassKeyword",
	TokenConstKeyword:           "ConstKeyword",
	TokenContinueKeyword:        "ContinueKeyword",
	TokenDecimalKeyword:         "DecimalKeyword",
	TokenDefaultKeyword:         "DefaultKeyword",
	TokenDelegateKeyword:        "DelegateKeyword",
	TokenDoKeyword:              "DoKeyword",
	TokenDoubleKeyword:          "DoubleKeyword",
	TokenElseKeyword:            "ElseKeyword",
	TokenEnumKeyword:            "EnumKeyword",
	TokenEventKeyword:           "EventKeyword",
	TokenExplicitKeyword:        "ExplicitKeyword",
	TokenExternKeyword:          "ExternKeyword",
	TokenFalseKeyword:           "FalseKeyword",
	TokenFinallyKeyword:         "FinallyKeyword",
	TokenFixedKeyword:           "FixedKeyword",
	TokenFloatKeyword:           "FloatKeyword",
	TokenForKeyword:             "ForKeyword",
	TokenForeachKeyword:         "ForeachKeyword",
	TokenGotoKeyword:            "GotoKeyword",
	TokenIfKeyword:              "IfKeyword",
	TokenImplicitKeyword:        "ImplicitKeyword",
	TokenInKeyword:              "InKeyword",
	TokenIntKeyword:             "IntKeyword",
	TokenInterfaceKeyword:       "InterfaceKeyword",
	TokenInternalKeyword:        "InternalKeyword",
	TokenIsKeyword:              "IsKeyword",
	TokenLockKeyword:            "LockKeyword",
	TokenLongKeyword:            "LongKeyword",
	TokenNamespaceKeyword:       "NamespaceKeyword",
	TokenNewKeyword:             "NewKeyword",
	TokenNullKeyword:            "NullKeyword",
	TokenObjectKeyword:          "ObjectKeyword",
	TokenOperatorKeyword:        "OperatorKeyword",
	TokenOutKeyword:             "OutKeyword",
	TokenOverrideKeyword:        "OverrideKeyword",
	TokenParamsKeyword:          "ParamsKeyword",
	TokenPrivateKeyword:         "PrivateKeyword",
	TokenProtectedKeyword:       "ProtectedKeyword",
	TokenPublicKeyword:          "PublicKeyword",
	TokenReadonlyKeyword:        "ReadonlyKeyword",
	TokenRefKeyword:             "RefKeyword",
	TokenReturnKeyword:          "ReturnKeyword",
	TokenSbyteKeyword:           "SbyteKeyword",
	TokenSealedKeyword:          "SealedKeyword",
	TokenShortKeyword:           "ShortKeyword",
	TokenSizeofKeyword:          "SizeofKeyword",
	TokenStackallocKeyword:      "StackallocKeyword",
	TokenStaticKeyword:          "StaticKeyword",
	TokenStringKeyword:          "StringKeyword",
	TokenStructKeyword:          "StructKeyword",
	TokenSwitchKeyword:          "SwitchKeyword",
	TokenThisKeyword:            "ThisKeyword",
	TokenThrowKeyword:           "ThrowKeyword",
	TokenTrueKeyword:            "TrueKeyword",
	TokenTryKeyword:             "TryKeyword",
	TokenTypeofKeyword:          "TypeofKeyword",
	TokenUintKeyword:            "UintKeyword",
	TokenUlongKeyword:           "UlongKeyword",
	TokenUncheckedKeyword:       "UncheckedKeyword",
	TokenUnsafeKeyword:          "UnsafeKeyword",
	TokenUshortKeyword:          "UshortKeyword",
	TokenUsingKeyword:           "UsingKeyword",
	TokenVirtualKeyword:         "VirtualKeyword",
	TokenVoidKeyword:            "VoidKeyword",
	TokenVolatileKeyword:        "VolatileKeyword",
	TokenWhileKeyword:           "WhileKeyword",
}

// tokenTexts holds the fixed text of punctuation and keyword tokens.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tokenTexts = [...]string{
	TokenOpenBrace:              "{",
	TokenCloseBrace:             "}",
	TokenOpenParen:              "(",
	TokenCloseParen:             ")",
	TokenOpenBracket:            "[",
	TokenCloseBracket:           "]",
	TokenSemicolon:              ";",
	TokenComma:                  ",",
	TokenDot:                    ".",
	TokenColon:                  ":",
	TokenColonColon:             "::",
	TokenQuestion:               "?",
	TokenQuestionQuestion:       "??",
	TokenQuestionQuestionEquals: "??=",
	TokenArrow:                  "=>",
	TokenEquals:                 "=",
	TokenEqualsEquals:           "==",
	TokenExclamationEquals:      "!=",
	TokenLess:                   "<",
	TokenLessEquals:             "<=",
	TokenLessLess:               "<<",
	TokenLessLessEquals:         "<<=",
	TokenGreater:                ">",
	TokenGreaterEquals:          ">=",
	TokenPlus:                   "+",
	TokenPlusPlus:               "++",
	TokenPlusEquals:             "+=",
	TokenMinus:                  "-",
	TokenMinusMinus:             "--",
	TokenMinusEquals:            "-=",
	TokenAsterisk:               "*",
	TokenAsteriskEquals:         "*=",
	TokenSlash:                  "/",
	TokenSlashEquals:            "/=",
	TokenPercent:                "%",
	TokenPercentEquals:          "%=",
	TokenExclamation:            "!",
	TokenTilde:                  "~",
	TokenAmpersand:              "&",
	TokenAmpersandAmpersand:     "&&",
	TokenAmpersandEquals:        "&=",
	TokenBar:                    "|",
	TokenBarBar:                 "||",
	TokenBarEquals:              "|=",
	TokenCaret:                  "^",
	TokenCaretEquals:            "^=",
	TokenAbstractKeyword:        "abstract",
	TokenAsKeyword:              "as",
	TokenBaseKeyword:            "base",
	TokenBoolKeyword:            "bool",
	TokenBreakKeyword:           "break",
	TokenByteKeyword:            "byte",
	TokenCaseKeyword:            "case",
	TokenCatchKeyword:           "catch",
	TokenCharKeyword:            "char",
	TokenCheckedKeyword:         "checked",
	TokenClassKeyword:           "class",
	TokenConstKeyword:           "const",
	TokenContinueKeyword:        "continue",
	TokenDecimalKeyword:         "decimal",
	TokenDefaultKeyword:         "default",
	TokenDelegateKeyword:        "delegate",
	TokenDoKeyword:              "do",
	TokenDoubleKeyword:          "double",
	TokenElseKeyword:            "else",
	TokenEnumKeyword:            "enum",
	TokenEventKeyword:           "event",
	TokenExplicitKeyword:        "explicit",
	TokenExternKeyword:          "extern",
	TokenFalseKeyword:           "false",
	TokenFinallyKeyword:         "finally",
	TokenFixedKeyword:           "fixed",
	TokenFloatKeyword:           "float",
	TokenForKeyword:             "for",
	TokenForeachKeyword:         "foreach",
	TokenGotoKeyword:            "goto",
	TokenIfKeyword:              "if",
	TokenImplicitKeyword:        "implicit",
	TokenInKeyword:              "in",
	TokenIntKeyword:             "int",
	TokenInterfaceKeyword:       "interface",
	TokenInternalKeyword:        "internal",
	TokenIsKeyword:              "is",
	TokenLockKeyword:            "lock",
	TokenLongKeyword:            "long",
	TokenNamespaceKeyword:       "namespace",
	TokenNewKeyword:             "new",
	TokenNullKeyword:            "null",
	TokenObjectKeyword:          "object",
	TokenOperatorKeyword:        "operator",
	TokenOutKeyword:             "out",
	TokenOverrideKeyword:        "override",
	TokenParamsKeyword:          "params",
	TokenPrivateKeyword:         "private",
	TokenProtectedKeyword:       "protected",
	TokenPublicKeyword:          "public",
	TokenReadonlyKeyword:        "readonly",
	TokenRefKeyword:             "ref",
	TokenReturnKeyword:          "return",
	TokenSbyteKeyword:           "sbyte",
	TokenSealedKeyword:          "sealed",
	TokenShortKeyword:           "short",
	TokenSizeofKeyword:          "sizeof",
	TokenStackallocKeyword:      "stackalloc",
	TokenStaticKeyword:          "static",
	TokenStringKeyword:          "string",
	TokenStructKeyword:          "struct",
	TokenSwitchKeyword:          "switch",
	TokenThisKeyword:            "this",
	TokenThrowKeyword:           "throw",
	TokenTrueKeyword:            "true",
	TokenTryKeyword:             "try",
	TokenTypeofKeyword:          "typeof",
	TokenUintKeyword:            "uint",
	TokenUlongKeyword:           "ulong",
	TokenUncheckedKeyword:       "unchecked",
	TokenUnsafeKeyword:          "unsafe",
	TokenUshortKeyword:          "ushort",
	TokenUsingKeyword:           "using",
	TokenVirtualKeyword:         "virtual",
	TokenVoidKeyword:            "void",
	TokenVolatileKeyword:        "volatile",
	TokenWhileKeyword:           "while",
}

//nolint:gochecknoglobals // Built once from tokenTexts.
var keywordKinds = func() map[string]TokenKind {
	m := make(map[string]TokenKind, lastKeyword-firstKeyword+1)
	for k := firstKeyword; k <= lastKeyword; k++ {
		m[tokenTexts[k]] = k
	}
	return m
}()

// String returns the token kind name, e.g. "ClassKeyword".
func (k TokenKind) String() string {
	if int(k) < len(tokenNames) && tokenNames[k] != "" {
		return tokenNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Text returns the fixed text for punctuation and keywords, or "" otherwise.
func (k TokenKind) Text() string {
	if int(k) < len(tokenTexts) {
		return tokenTexts[k]
	}
	return ""
}

// KeywordKind returns the keyword token kind for text, if text is a reserved keyword.
func KeywordKind(text string) (TokenKind, bool) {
	k, ok := keywordKinds[text]
	return k, ok
}

// FixedTextKind returns the punctuation or keyword kind whose fixed text
// is text.
func FixedTextKind(text string) (TokenKind, bool) {
	if text == "" {
		return TokenUnknown, false
	}
	for k, fixed := range tokenTexts {
		if fixed == text {
			return TokenKind(k), true
		}
	}
	return TokenUnknown, false
}

// MarshalText encodes the token kind by name.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a token kind name.
func (k *TokenKind) UnmarshalText(text []byte) error {
	kind, ok := ParseTokenKind(string(text))
	if !ok {
		return fmt.Errorf("unknown token kind %q", text)
	}
	*k = kind
	return nil
}

// ParseTokenKind resolves a token kind by name ("ClassKeyword", "IdentifierToken").
func ParseTokenKind(name string) (TokenKind, bool) {
	for k := range tokenCount {
		if tokenNames[k] == name {
			return k, true
		}
	}
	return TokenUnknown, false
}

// TokenCategory groups token kinds.
type TokenCategory uint8

// Token categories.
const (
	CategoryOther TokenCategory = iota
	CategoryKeyword
	CategoryIdentifier
	CategoryPunctuation
	CategoryLiteral
	CategoryEndOfFile
)

// String returns a lower-case category name.
func (c TokenCategory) String() string {
	switch c {
	case CategoryKeyword:
		return "keyword"
	case CategoryIdentifier:
		return "identifier"
	case CategoryPunctuation:
		return "punctuation"
	case CategoryLiteral:
		return "literal"
	case CategoryEndOfFile:
		return "eof"
	default:
		return "other"
	}
}

// Category classifies the token kind.
func (k TokenKind) Category() TokenCategory {
	switch {
	case k >= firstKeyword && k <= lastKeyword:
		return CategoryKeyword
	case k >= firstPunctuation && k <= lastPunctuation:
		return CategoryPunctuation
	case k == TokenIdentifier:
		return CategoryIdentifier
	case k >= TokenNumericLiteral && k <= TokenInterpolatedString:
		return CategoryLiteral
	case k == TokenEndOfFile:
		return CategoryEndOfFile
	default:
		return CategoryOther
	}
}

// IsKeyword reports whether k is a reserved keyword.
func (k TokenKind) IsKeyword() bool {
	return k.Category() == CategoryKeyword
}

// IsPredefinedType reports whether k is a keyword naming a built-in type.
func (k TokenKind) IsPredefinedType() bool {
	switch k {
	case TokenBoolKeyword, TokenByteKeyword, TokenSbyteKeyword, TokenCharKeyword,
		TokenDecimalKeyword, TokenDoubleKeyword, TokenFloatKeyword, TokenIntKeyword,
		TokenUintKeyword, TokenLongKeyword, TokenUlongKeyword, TokenShortKeyword,
		TokenUshortKeyword, TokenObjectKeyword, TokenStringKeyword, TokenVoidKeyword:
		return true
	default:
		return false
	}
}

// IsModifier reports whether k is a declaration modifier keyword.
func (k TokenKind) IsModifier() bool {
	switch k {
	case TokenPublicKeyword, TokenPrivateKeyword, TokenProtectedKeyword, TokenInternalKeyword,
		TokenStaticKeyword, TokenAbstractKeyword, TokenSealedKeyword, TokenVirtualKeyword,
		TokenOverrideKeyword, TokenReadonlyKeyword, TokenConstKeyword, TokenExternKeyword,
		TokenUnsafeKeyword, TokenVolatileKeyword, TokenNewKeyword, TokenFixedKeyword:
		return true
	default:
		return false
	}
}
