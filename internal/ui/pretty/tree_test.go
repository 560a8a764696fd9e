package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/syntree/internal/ui/pretty"
	"github.com/yaklabco/syntree/pkg/analyze"
	"github.com/yaklabco/syntree/pkg/collect"
	"github.com/yaklabco/syntree/pkg/syntax"
)

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		entry analyze.Entry
		want  string
	}{
		{
			name: "name differs from text",
			entry: analyze.Entry{
				Kind: syntax.KindUsingDirective, Name: "Acme.Billing", Text: "using Acme.Billing;",
				StartLine: 2, StartColumn: 1,
			},
			want: "  2:1  UsingDirective  Acme.Billing  using Acme.Billing;\n",
		},
		{
			name: "no name",
			entry: analyze.Entry{
				Kind: syntax.KindParameter, Text: "string[] args", StartLine: 7, StartColumn: 26,
			},
			want: "  7:26  Parameter  string[] args\n",
		},
		{
			name: "multi-line text collapses",
			entry: analyze.Entry{
				Kind: syntax.KindInvocationExpression, Name: "Run", Text: "Run(\n    1,\n    2)",
				StartLine: 3, StartColumn: 9,
			},
			want: "  3:9  InvocationExpression  Run  Run( 1, 2)\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, styles.FormatEntry(testCase.entry))
		})
	}
}

func TestFormatTraceEntry(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	node := collect.TraceEntry{Level: 1, Node: syntax.KindClassDeclaration}
	assert.Equal(t, "  Visit: ClassDeclaration\n", styles.FormatTraceEntry(node))

	token := collect.TraceEntry{Level: 2, Token: syntax.TokenIdentifier, Text: "A", IsToken: true}
	assert.Equal(t, "    Token: "+syntax.TokenIdentifier.String()+" \"A\"\n", styles.FormatTraceEntry(token))
}

func TestFormatDescription(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	desc := &collect.Description{
		RootKind:          syntax.KindCompilationUnit,
		MemberCount:       1,
		Usings:            []string{"System"},
		ClassName:         "Program",
		Method:            &collect.MethodInfo{Name: "Main", ReturnType: "void"},
		FirstParameter:    "string[] args",
		ParameterIdentity: true,
	}

	result := styles.FormatDescription(desc, "")
	assert.Contains(t, result, "Class:")
	assert.Contains(t, result, "Program")
	assert.Contains(t, result, "Main")
	assert.Contains(t, result, "string[] args")
	assert.NotContains(t, result, "stopped")

	partial := styles.FormatDescription(&collect.Description{RootKind: syntax.KindCompilationUnit}, "first member: kind mismatch")
	assert.Contains(t, partial, "stopped: first member: kind mismatch")
	assert.NotContains(t, partial, "Class:")
}
