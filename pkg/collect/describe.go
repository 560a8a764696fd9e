package collect

import (
	"fmt"

	"github.com/yaklabco/syntree/pkg/query"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// ParameterInfo describes one method parameter.
type ParameterInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// MethodInfo describes the first method of the first class.
type MethodInfo struct {
	Name         string          `json:"name"`
	ReturnType   string          `json:"returnType"`
	Parameters   []ParameterInfo `json:"parameters"`
	BodyFullText string          `json:"bodyFullText,omitempty"`
}

// Description is a structural walkthrough of a program shaped as
// namespace, then class, then method.
type Description struct {
	RootKind                 syntax.Kind `json:"rootKind"`
	MemberCount              int         `json:"memberCount"`
	Usings                   []string    `json:"usings"`
	FirstMemberKind          syntax.Kind `json:"firstMemberKind"`
	NamespaceMemberCount     int         `json:"namespaceMemberCount"`
	NamespaceFirstMemberKind syntax.Kind `json:"namespaceFirstMemberKind"`
	ClassName                string      `json:"className,omitempty"`
	ClassMemberCount         int         `json:"classMemberCount"`
	ClassFirstMemberKind     syntax.Kind `json:"classFirstMemberKind"`
	Method                   *MethodInfo `json:"method,omitempty"`
	// FirstParameter is the text of the method's first parameter.
	FirstParameter string `json:"firstParameter,omitempty"`
	// ParameterIdentity reports whether the first parameter reached through
	// the declarations is the same node a descendant query finds.
	ParameterIdentity bool `json:"parameterIdentity"`
}

// Describe walks the program structure from the root: its usings, its
// first member as a namespace, that namespace's first member as a class,
// and the class's first member as a method. When the program has another
// shape Describe returns what it gathered so far together with an error.
func Describe(tree *syntax.Tree) (Description, error) {
	var desc Description

	root, err := tree.Root().AsCompilationUnit()
	if err != nil {
		return desc, fmt.Errorf("root: %w", err)
	}
	desc.RootKind = root.Kind()
	members := root.Members()
	desc.MemberCount = len(members)
	for _, using := range root.Usings() {
		desc.Usings = append(desc.Usings, using.NameText())
	}
	if len(members) == 0 {
		return desc, fmt.Errorf("first member: %w", &query.NotFoundError{})
	}
	desc.FirstMemberKind = members[0].Kind()

	ns, err := members[0].AsNamespaceDeclaration()
	if err != nil {
		return desc, fmt.Errorf("first member: %w", err)
	}
	nsMembers := ns.Members()
	desc.NamespaceMemberCount = len(nsMembers)
	if len(nsMembers) == 0 {
		return desc, fmt.Errorf("namespace member: %w", &query.NotFoundError{})
	}
	desc.NamespaceFirstMemberKind = nsMembers[0].Kind()

	class, err := nsMembers[0].AsClassDeclaration()
	if err != nil {
		return desc, fmt.Errorf("namespace member: %w", err)
	}
	desc.ClassName = class.Identifier().ValueText()
	classMembers := class.Members()
	desc.ClassMemberCount = len(classMembers)
	if len(classMembers) == 0 {
		return desc, fmt.Errorf("class member: %w", &query.NotFoundError{})
	}
	desc.ClassFirstMemberKind = classMembers[0].Kind()

	method, err := classMembers[0].AsMethodDeclaration()
	if err != nil {
		return desc, fmt.Errorf("class member: %w", err)
	}
	desc.Method = describeMethod(method)

	params := method.ParameterList().Parameters()
	if len(params) == 0 {
		return desc, nil
	}
	direct := params[0]
	desc.FirstParameter = direct.Text()

	found, err := firstParameterOf(tree.Root(), method.Identifier().ValueText())
	if err != nil {
		return desc, fmt.Errorf("parameter query: %w", err)
	}
	desc.ParameterIdentity = direct == found

	return desc, nil
}

func describeMethod(method syntax.MethodDeclaration) *MethodInfo {
	info := &MethodInfo{
		Name:       method.Identifier().ValueText(),
		ReturnType: method.ReturnType().Text(),
	}
	for _, param := range method.ParameterList().Parameters() {
		pi := ParameterInfo{Name: param.Identifier().ValueText()}
		if typ, ok := param.Type(); ok {
			pi.Type = typ.Text()
		}
		info.Parameters = append(info.Parameters, pi)
	}
	if body, ok := method.Body(); ok {
		info.BodyFullText = body.FullText()
	}
	return info
}

// firstParameterOf finds, by descendant query, the first parameter of the
// single method named name that has parameters.
func firstParameterOf(root syntax.Node, name string) (syntax.Parameter, error) {
	methods := query.Filter(query.Methods(root), func(m syntax.MethodDeclaration) bool {
		return m.Identifier().ValueText() == name && len(m.ParameterList().Parameters()) > 0
	})
	firsts := query.Map(methods, func(m syntax.MethodDeclaration) syntax.Parameter {
		return m.ParameterList().Parameters()[0]
	})
	return query.Single(firsts, nil)
}

// Ancestors lists the kinds enclosing n, innermost first.
func Ancestors(n syntax.Node) []syntax.Kind {
	var kinds []syntax.Kind
	for anc := range n.Ancestors() {
		kinds = append(kinds, anc.Kind())
	}
	return kinds
}
