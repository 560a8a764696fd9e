package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/syntree/pkg/syntax"
)

//nolint:gochecknoglobals // read-only grammar mapping
var grammarKinds = map[string]syntax.Kind{
	"using_directive":                    syntax.KindUsingDirective,
	"name_equals":                        syntax.KindNameEquals,
	"namespace_declaration":              syntax.KindNamespaceDeclaration,
	"file_scoped_namespace_declaration":  syntax.KindFileScopedNamespaceDeclaration,
	"class_declaration":                  syntax.KindClassDeclaration,
	"struct_declaration":                 syntax.KindStructDeclaration,
	"interface_declaration":              syntax.KindInterfaceDeclaration,
	"enum_declaration":                   syntax.KindEnumDeclaration,
	"enum_member_declaration":            syntax.KindEnumMemberDeclaration,
	"base_list":                          syntax.KindBaseList,
	"type_parameter_list":                syntax.KindTypeParameterList,
	"type_parameter":                     syntax.KindTypeParameter,
	"method_declaration":                 syntax.KindMethodDeclaration,
	"constructor_declaration":            syntax.KindConstructorDeclaration,
	"constructor_initializer":            syntax.KindConstructorInitializer,
	"field_declaration":                  syntax.KindFieldDeclaration,
	"property_declaration":               syntax.KindPropertyDeclaration,
	"accessor_list":                      syntax.KindAccessorList,
	"accessor_declaration":               syntax.KindAccessorDeclaration,
	"arrow_expression_clause":            syntax.KindArrowExpressionClause,
	"parameter_list":                     syntax.KindParameterList,
	"parameter":                          syntax.KindParameter,
	"attribute_list":                     syntax.KindAttributeList,
	"attribute":                          syntax.KindAttribute,
	"record_declaration":                 syntax.KindIncompleteMember,
	"identifier":                         syntax.KindIdentifierName,
	"implicit_type":                      syntax.KindIdentifierName,
	"qualified_name":                     syntax.KindQualifiedName,
	"generic_name":                       syntax.KindGenericName,
	"type_argument_list":                 syntax.KindTypeArgumentList,
	"predefined_type":                    syntax.KindPredefinedType,
	"void_keyword":                       syntax.KindPredefinedType,
	"array_type":                         syntax.KindArrayType,
	"array_rank_specifier":               syntax.KindArrayRankSpecifier,
	"nullable_type":                      syntax.KindNullableType,
	"block":                              syntax.KindBlock,
	"local_declaration_statement":        syntax.KindLocalDeclarationStatement,
	"variable_declaration":               syntax.KindVariableDeclaration,
	"variable_declarator":                syntax.KindVariableDeclarator,
	"equals_value_clause":                syntax.KindEqualsValueClause,
	"expression_statement":               syntax.KindExpressionStatement,
	"return_statement":                   syntax.KindReturnStatement,
	"if_statement":                       syntax.KindIfStatement,
	"while_statement":                    syntax.KindWhileStatement,
	"do_statement":                       syntax.KindDoStatement,
	"for_statement":                      syntax.KindForStatement,
	"foreach_statement":                  syntax.KindForEachStatement,
	"using_statement":                    syntax.KindUsingStatement,
	"break_statement":                    syntax.KindBreakStatement,
	"continue_statement":                 syntax.KindContinueStatement,
	"throw_statement":                    syntax.KindThrowStatement,
	"try_statement":                      syntax.KindTryStatement,
	"catch_clause":                       syntax.KindCatchClause,
	"catch_declaration":                  syntax.KindCatchDeclaration,
	"finally_clause":                     syntax.KindFinallyClause,
	"empty_statement":                    syntax.KindEmptyStatement,
	"invocation_expression":              syntax.KindInvocationExpression,
	"argument_list":                      syntax.KindArgumentList,
	"bracketed_argument_list":            syntax.KindBracketedArgumentList,
	"argument":                           syntax.KindArgument,
	"member_access_expression":           syntax.KindSimpleMemberAccessExpression,
	"element_access_expression":          syntax.KindElementAccessExpression,
	"object_creation_expression":         syntax.KindObjectCreationExpression,
	"array_creation_expression":          syntax.KindArrayCreationExpression,
	"implicit_array_creation_expression": syntax.KindArrayCreationExpression,
	"initializer_expression":             syntax.KindInitializerExpression,
	"parenthesized_expression":           syntax.KindParenthesizedExpression,
	"cast_expression":                    syntax.KindCastExpression,
	"prefix_unary_expression":            syntax.KindPrefixUnaryExpression,
	"postfix_unary_expression":           syntax.KindPostfixUnaryExpression,
	"binary_expression":                  syntax.KindBinaryExpression,
	"assignment_expression":              syntax.KindAssignmentExpression,
	"conditional_expression":             syntax.KindConditionalExpression,
	"string_literal":                     syntax.KindStringLiteralExpression,
	"verbatim_string_literal":            syntax.KindStringLiteralExpression,
	"raw_string_literal":                 syntax.KindStringLiteralExpression,
	"integer_literal":                    syntax.KindNumericLiteralExpression,
	"real_literal":                       syntax.KindNumericLiteralExpression,
	"character_literal":                  syntax.KindCharacterLiteralExpression,
	"null_literal":                       syntax.KindNullLiteralExpression,
	"interpolated_string_expression":     syntax.KindInterpolatedStringExpression,
	"this_expression":                    syntax.KindThisExpression,
	"this":                               syntax.KindThisExpression,
	"base_expression":                    syntax.KindBaseExpression,
	"typeof_expression":                  syntax.KindTypeOfExpression,
	"default_expression":                 syntax.KindDefaultExpression,
	"await_expression":                   syntax.KindAwaitExpression,
	"lambda_expression":                  syntax.KindLambdaExpression,
	"query_expression":                   syntax.KindQueryExpression,
	"from_clause":                        syntax.KindFromClause,
	"where_clause":                       syntax.KindWhereClause,
	"order_by_clause":                    syntax.KindOrderByClause,
	"select_clause":                      syntax.KindSelectClause,
}

// declarationParents lists grammar nodes whose "name" child is a bare
// identifier token rather than a name expression.
//
//nolint:gochecknoglobals // read-only grammar mapping
var declarationParents = map[string]bool{
	"class_declaration":       true,
	"struct_declaration":      true,
	"interface_declaration":   true,
	"enum_declaration":        true,
	"record_declaration":      true,
	"enum_member_declaration": true,
	"method_declaration":      true,
	"constructor_declaration": true,
	"property_declaration":    true,
	"variable_declarator":     true,
	"parameter":               true,
	"type_parameter":          true,
	"catch_declaration":       true,
	"foreach_statement":       true,
}

// kindOf maps the i-th child of parent to a syntax kind. A false result
// means the child is flattened into the parent's node.
func kindOf(parent *sitter.Node, i int, child *sitter.Node, content string) (syntax.Kind, bool) {
	if !child.IsNamed() {
		return syntax.KindUnknown, false
	}

	typ := child.Type()
	switch typ {
	case "identifier":
		if declarationParents[parent.Type()] {
			field := parent.FieldNameForChild(i)
			if field == "name" || field == "left" || (parent.Type() == "variable_declarator" && i == 0) {
				return syntax.KindUnknown, false
			}
		}
	case "boolean_literal":
		if content[child.StartByte():child.EndByte()] == "true" {
			return syntax.KindTrueLiteralExpression, true
		}
		return syntax.KindFalseLiteralExpression, true
	}

	kind, ok := grammarKinds[typ]
	return kind, ok
}

// groupAfter reports the node kind that wraps an anonymous child and the
// sibling after it, for grammars that leave the pair ungrouped.
func groupAfter(parentType, childType string) (syntax.Kind, bool) {
	switch {
	case childType == "else" && parentType == "if_statement":
		return syntax.KindElseClause, true
	case childType == "=" && (parentType == "variable_declarator" ||
		parentType == "parameter" || parentType == "enum_member_declaration" ||
		parentType == "property_declaration"):
		return syntax.KindEqualsValueClause, true
	}
	return syntax.KindUnknown, false
}
