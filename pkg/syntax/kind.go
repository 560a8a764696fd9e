package syntax

import (
	"fmt"
	"strconv"
)

// Kind classifies a syntax node.
type Kind uint16

// Node kinds. The set is closed; tree builders map their grammar onto it.
const (
	KindUnknown Kind = iota

	// Compilation unit and declarations.
	KindCompilationUnit
	KindUsingDirective
	KindNameEquals
	KindNamespaceDeclaration
	KindFileScopedNamespaceDeclaration
	KindClassDeclaration
	KindStructDeclaration
	KindInterfaceDeclaration
	KindEnumDeclaration
	KindEnumMemberDeclaration
	KindBaseList
	KindTypeParameterList
	KindTypeParameter
	KindMethodDeclaration
	KindConstructorDeclaration
	KindConstructorInitializer
	KindFieldDeclaration
	KindPropertyDeclaration
	KindAccessorList
	KindAccessorDeclaration
	KindArrowExpressionClause
	KindParameterList
	KindParameter
	KindAttributeList
	KindAttribute
	KindIncompleteMember

	// Types and names.
	KindIdentifierName
	KindQualifiedName
	KindGenericName
	KindTypeArgumentList
	KindPredefinedType
	KindArrayType
	KindArrayRankSpecifier
	KindNullableType

	// Statements.
	KindBlock
	KindLocalDeclarationStatement
	KindVariableDeclaration
	KindVariableDeclarator
	KindEqualsValueClause
	KindExpressionStatement
	KindReturnStatement
	KindIfStatement
	KindElseClause
	KindWhileStatement
	KindDoStatement
	KindForStatement
	KindForEachStatement
	KindUsingStatement
	KindBreakStatement
	KindContinueStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindCatchDeclaration
	KindFinallyClause
	KindEmptyStatement

	// Expressions.
	KindInvocationExpression
	KindArgumentList
	KindBracketedArgumentList
	KindArgument
	KindSimpleMemberAccessExpression
	KindElementAccessExpression
	KindObjectCreationExpression
	KindArrayCreationExpression
	KindInitializerExpression
	KindParenthesizedExpression
	KindCastExpression
	KindPrefixUnaryExpression
	KindPostfixUnaryExpression
	KindBinaryExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindStringLiteralExpression
	KindNumericLiteralExpression
	KindCharacterLiteralExpression
	KindTrueLiteralExpression
	KindFalseLiteralExpression
	KindNullLiteralExpression
	KindInterpolatedStringExpression
	KindThisExpression
	KindBaseExpression
	KindTypeOfExpression
	KindDefaultExpression
	KindAwaitExpression
	KindLambdaExpression

	// Query expressions.
	KindQueryExpression
	KindQueryBody
	KindFromClause
	KindWhereClause
	KindOrderByClause
	KindSelectClause

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindUnknown: "Unknown",

	KindCompilationUnit:                "CompilationUnit",
	KindUsingDirective:                 "UsingDirective",
	KindNameEquals:                     "NameEquals",
	KindNamespaceDeclaration:           "NamespaceDeclaration",
	KindFileScopedNamespaceDeclaration: "FileScopedNamespaceDeclaration",
	KindClassDeclaration:               "ClassDeclaration",
	KindStructDeclaration:              "StructDeclaration",
	KindInterfaceDeclaration:           "InterfaceDeclaration",
	KindEnumDeclaration:                "EnumDeclaration",
	KindEnumMemberDeclaration:          "EnumMemberDeclaration",
	KindBaseList:                       "BaseList",
	KindTypeParameterList:              "TypeParameterList",
	KindTypeParameter:                  "TypeParameter",
	KindMethodDeclaration:              "MethodDeclaration",
	KindConstructorDeclaration:         "ConstructorDeclaration",
	KindConstructorInitializer:         "ConstructorInitializer",
	KindFieldDeclaration:               "FieldDeclaration",
	KindPropertyDeclaration:            "PropertyDeclaration",
	KindAccessorList:                   "AccessorList",
	KindAccessorDeclaration:            "AccessorDeclaration",
	KindArrowExpressionClause:          "ArrowExpressionClause",
	KindParameterList:                  "ParameterList",
	KindParameter:                      "Parameter",
	KindAttributeList:                  "AttributeList",
	KindAttribute:                      "Attribute",
	KindIncompleteMember:               "IncompleteMember",

	KindIdentifierName:     "IdentifierName",
	KindQualifiedName:      "QualifiedName",
	KindGenericName:        "GenericName",
	KindTypeArgumentList:   "TypeArgumentList",
	KindPredefinedType:     "PredefinedType",
	KindArrayType:          "ArrayType",
	KindArrayRankSpecifier: "ArrayRankSpecifier",
	KindNullableType:       "NullableType",

	KindBlock:                     "Block",
	KindLocalDeclarationStatement: "LocalDeclarationStatement",
	KindVariableDeclaration:       "VariableDeclaration",
	KindVariableDeclarator:        "VariableDeclarator",
	KindEqualsValueClause:         "EqualsValueClause",
	KindExpressionStatement:       "ExpressionStatement",
	KindReturnStatement:           "ReturnStatement",
	KindIfStatement:               "IfStatement",
	KindElseClause:                "ElseClause",
	KindWhileStatement:            "WhileStatement",
	KindDoStatement:               "DoStatement",
	KindForStatement:              "ForStatement",
	KindForEachStatement:          "ForEachStatement",
	KindUsingStatement:            "UsingStatement",
	KindBreakStatement:            "BreakStatement",
	KindContinueStatement:         "ContinueStatement",
	KindThrowStatement:            "ThrowStatement",
	KindTryStatement:              "TryStatement",
	KindCatchClause:               "CatchClause",
	KindCatchDeclaration:          "CatchDeclaration",
	KindFinallyClause:             "FinallyClause",
	KindEmptyStatement:            "EmptyStatement",

	KindInvocationExpression:         "InvocationExpression",
	KindArgumentList:                 "ArgumentList",
	KindBracketedArgumentList:        "BracketedArgumentList",
	KindArgument:                     "Argument",
	KindSimpleMemberAccessExpression: "SimpleMemberAccessExpression",
	KindElementAccessExpression:      "ElementAccessExpression",
	KindObjectCreationExpression:     "ObjectCreationExpression",
	KindArrayCreationExpression:      "ArrayCreationExpression",
	KindInitializerExpression:        "InitializerExpression",
	KindParenthesizedExpression:      "ParenthesizedExpression",
	KindCastExpression:               "CastExpression",
	KindPrefixUnaryExpression:        "PrefixUnaryExpression",
	KindPostfixUnaryExpression:       "PostfixUnaryExpression",
	KindBinaryExpression:             "BinaryExpression",
	KindAssignmentExpression:         "AssignmentExpression",
	KindConditionalExpression:        "ConditionalExpression",
	KindStringLiteralExpression:      "StringLiteralExpression",
	KindNumericLiteralExpression:     "NumericLiteralExpression",
	KindCharacterLiteralExpression:   "CharacterLiteralExpression",
	KindTrueLiteralExpression:        "TrueLiteralExpression",
	KindFalseLiteralExpression:       "FalseLiteralExpression",
	KindNullLiteralExpression:        "NullLiteralExpression",
	KindInterpolatedStringExpression: "InterpolatedStringExpression",
	KindThisExpression:               "ThisExpression",
	KindBaseExpression:               "BaseExpression",
	KindTypeOfExpression:             "TypeOfExpression",
	KindDefaultExpression:            "DefaultExpression",
	KindAwaitExpression:              "AwaitExpression",
	KindLambdaExpression:             "LambdaExpression",

	KindQueryExpression: "QueryExpression",
	KindQueryBody:       "QueryBody",
	KindFromClause:      "FromClause",
	KindWhereClause:     "WhereClause",
	KindOrderByClause:   "OrderByClause",
	KindSelectClause:    "SelectClause",
}

// String returns the kind name, e.g. "MethodDeclaration".
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown node kind %q", text)
	}
	*k = kind
	return nil
}

// ParseKind resolves a kind by name. Matching is exact.
func ParseKind(name string) (Kind, bool) {
	for k := range kindCount {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindUnknown, false
}

// Kinds returns every defined node kind except KindUnknown.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// IsName reports whether k is a name: identifier, qualified or generic.
func (k Kind) IsName() bool {
	switch k {
	case KindIdentifierName, KindQualifiedName, KindGenericName:
		return true
	default:
		return false
	}
}

// IsType reports whether k can appear in type position.
func (k Kind) IsType() bool {
	switch k {
	case KindIdentifierName, KindQualifiedName, KindGenericName,
		KindPredefinedType, KindArrayType, KindNullableType:
		return true
	default:
		return false
	}
}

// IsTypeDeclaration reports whether k declares a class, struct, interface or enum.
func (k Kind) IsTypeDeclaration() bool {
	switch k {
	case KindClassDeclaration, KindStructDeclaration, KindInterfaceDeclaration, KindEnumDeclaration:
		return true
	default:
		return false
	}
}

// IsNamespaceDeclaration reports whether k is a block or file-scoped namespace.
func (k Kind) IsNamespaceDeclaration() bool {
	return k == KindNamespaceDeclaration || k == KindFileScopedNamespaceDeclaration
}

// IsMember reports whether k can appear in a member list.
func (k Kind) IsMember() bool {
	if k.IsTypeDeclaration() || k.IsNamespaceDeclaration() {
		return true
	}
	switch k {
	case KindMethodDeclaration, KindConstructorDeclaration, KindFieldDeclaration,
		KindPropertyDeclaration, KindEnumMemberDeclaration, KindIncompleteMember:
		return true
	default:
		return false
	}
}

// IsStatement reports whether k is a statement.
func (k Kind) IsStatement() bool {
	return k >= KindBlock && k <= KindEmptyStatement &&
		k != KindVariableDeclaration && k != KindVariableDeclarator &&
		k != KindEqualsValueClause && k != KindElseClause &&
		k != KindCatchClause && k != KindCatchDeclaration && k != KindFinallyClause
}

// IsExpression reports whether k is an expression. Names count as expressions.
func (k Kind) IsExpression() bool {
	if k.IsName() || k == KindPredefinedType {
		return true
	}
	switch k {
	case KindArgumentList, KindBracketedArgumentList, KindArgument:
		return false
	}
	return k >= KindInvocationExpression && k <= KindQueryExpression
}
