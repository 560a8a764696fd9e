package analyze_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/pkg/analyze"
	"github.com/yaklabco/syntree/pkg/parser/csharp"
	"github.com/yaklabco/syntree/pkg/snippets"
	"github.com/yaklabco/syntree/pkg/syntax"
	"github.com/yaklabco/syntree/pkg/walk"
)

const program = `using System;
using Acme.Billing;

namespace Acme.Tools
{
    class Program
    {
        static void Main(string[] args)
        {
            var total = Sum(args.Length);
            Console.WriteLine(total);
        }
    }
}
`

const document = "# Title\n\n```csharp\nusing Acme;\nclass A { void M() { Run(); } }\n```\n\nText\n\n```cs\nusing System;\n```\n"

func newEngine() *analyze.Engine {
	return analyze.NewEngine(csharp.New(), snippets.New())
}

func analyzeOne(t *testing.T, content string, opts analyze.Options) *analyze.FileResult {
	t.Helper()

	results, err := newEngine().AnalyzeFile(context.Background(), "Program.cs", []byte(content), opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	return results[0]
}

func TestAnalyzeFile_Collect(t *testing.T) {
	t.Parallel()

	result := analyzeOne(t, program, analyze.DefaultOptions())

	assert.Equal(t, "Program.cs", result.Path)
	assert.Zero(t, result.Snippet)
	assert.False(t, result.HasErrors())
	require.NotNil(t, result.Tree)
	assert.Equal(t, result.Tree.NodeCount(), result.Nodes)

	require.Len(t, result.Usings, 1)
	assert.Equal(t, "Acme.Billing", result.Usings[0].Name)
	assert.Equal(t, "using Acme.Billing;", result.Usings[0].Text)
	assert.Equal(t, 2, result.Usings[0].StartLine)
	assert.Equal(t, 1, result.Usings[0].StartColumn)

	require.Len(t, result.Variables, 1)
	assert.Equal(t, "total", result.Variables[0].Name)
	assert.Equal(t, "var total = Sum(args.Length)", result.Variables[0].Text)
	assert.Equal(t, syntax.KindVariableDeclaration, result.Variables[0].Kind)

	// The initializer's invocation belongs to the declaration.
	require.Len(t, result.Invocations, 1)
	assert.Equal(t, "Console.WriteLine", result.Invocations[0].Name)
	assert.Equal(t, "Console.WriteLine(total)", result.Invocations[0].Text)
	assert.Empty(t, result.Trace)
	assert.Nil(t, result.Description)
}

func TestAnalyzeFile_Modes(t *testing.T) {
	t.Parallel()

	t.Run("dump nodes", func(t *testing.T) {
		t.Parallel()

		result := analyzeOne(t, "class A { }", analyze.Options{Mode: analyze.ModeDump, Depth: walk.DepthNodes})
		require.Len(t, result.Trace, 2)
		assert.Equal(t, "Visit: CompilationUnit", result.Trace[0].String())
		assert.Equal(t, "Visit: ClassDeclaration", result.Trace[1].String())
	})

	t.Run("dump tokens", func(t *testing.T) {
		t.Parallel()

		result := analyzeOne(t, "class A { }", analyze.Options{Mode: analyze.ModeDump, Depth: walk.DepthTokens})
		var tokens int
		for _, entry := range result.Trace {
			if entry.IsToken {
				tokens++
			}
		}
		assert.Equal(t, result.Tokens, tokens)
	})

	t.Run("usings with custom root", func(t *testing.T) {
		t.Parallel()

		result := analyzeOne(t, program, analyze.Options{Mode: analyze.ModeUsings, ExcludedRoot: "Acme"})
		require.Len(t, result.Usings, 1)
		assert.Equal(t, "System", result.Usings[0].Name)
		assert.Empty(t, result.Variables)
	})

	t.Run("usings without filter", func(t *testing.T) {
		t.Parallel()

		result := analyzeOne(t, program, analyze.Options{Mode: analyze.ModeUsings, ExcludedRoot: "Acme", AllUsings: true})
		var names []string
		for _, entry := range result.Usings {
			names = append(names, entry.Name)
		}
		assert.Equal(t, []string{"System", "Acme.Billing"}, names)
	})

	t.Run("query", func(t *testing.T) {
		t.Parallel()

		result := analyzeOne(t, program, analyze.Options{
			Mode:  analyze.ModeQuery,
			Kinds: []syntax.Kind{syntax.KindParameter, syntax.KindArgument},
		})
		var texts []string
		for _, m := range result.Matches {
			texts = append(texts, m.Text)
		}
		assert.Equal(t, []string{"string[] args", "args.Length", "total"}, texts)
	})

	t.Run("describe", func(t *testing.T) {
		t.Parallel()

		result := analyzeOne(t, program, analyze.Options{Mode: analyze.ModeDescribe})
		require.NotNil(t, result.Description)
		assert.Empty(t, result.DescribeError)
		assert.Equal(t, "Program", result.Description.ClassName)
		assert.True(t, result.Description.ParameterIdentity)
	})

	t.Run("describe stops at the wrong shape", func(t *testing.T) {
		t.Parallel()

		result := analyzeOne(t, "class A { }", analyze.Options{Mode: analyze.ModeDescribe})
		require.NotNil(t, result.Description)
		assert.Contains(t, result.DescribeError, "kind mismatch")
	})
}

func TestAnalyzeFile_Diagnostics(t *testing.T) {
	t.Parallel()

	result := analyzeOne(t, "class A {\n  void M( }\n", analyze.DefaultOptions())

	require.True(t, result.HasErrors())
	for _, d := range result.Diagnostics {
		assert.NotEmpty(t, d.Code)
		assert.Positive(t, d.StartLine)
	}
	assert.Equal(t, "class A {\n  void M( }\n", result.Tree.Root().FullText())
}

func TestAnalyzeFile_Markdown(t *testing.T) {
	t.Parallel()

	results, err := newEngine().AnalyzeFile(context.Background(), "README.md", []byte(document), analyze.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, 1, first.Snippet)
	assert.Equal(t, "README.md#1", first.DisplayPath())
	require.Len(t, first.Usings, 1)
	assert.Equal(t, "Acme", first.Usings[0].Name)
	assert.Equal(t, 4, first.Usings[0].StartLine)
	require.Len(t, first.Invocations, 1)
	assert.Equal(t, "Run()", first.Invocations[0].Text)
	assert.Equal(t, 5, first.Invocations[0].StartLine)

	second := results[1]
	assert.Equal(t, 2, second.Snippet)
	assert.Empty(t, second.Usings)
}

func TestAnalyzeFile_MarkdownDisabled(t *testing.T) {
	t.Parallel()

	engine := analyze.NewEngine(csharp.New(), nil)
	results, err := engine.AnalyzeFile(context.Background(), "notes.md", []byte("class A { }"), analyze.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].Snippet)
}

func TestAnalyzeFile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content []byte
		opts    analyze.Options
		wantErr error
	}{
		{
			name:    "invalid utf-8",
			content: []byte("class A { string s = \"\xff\"; }"),
			opts:    analyze.DefaultOptions(),
			wantErr: analyze.ErrDecode,
		},
		{
			name:    "query without kinds",
			content: []byte("class A { }"),
			opts:    analyze.Options{Mode: analyze.ModeQuery},
			wantErr: analyze.ErrNoKinds,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := newEngine().AnalyzeFile(context.Background(), "x.cs", testCase.content, testCase.opts)
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}

	_, err := newEngine().AnalyzeFile(context.Background(), "x.cs", nil, analyze.Options{Mode: "lint"})
	require.Error(t, err)
}

func TestProcessFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "A.cs")
	require.NoError(t, os.WriteFile(path, []byte("using Acme;\nclass A { }\n"), 0o600))

	results, err := newEngine().ProcessFile(context.Background(), path, analyze.Options{Mode: analyze.ModeUsings})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, path, results[0].Path)
	assert.Len(t, results[0].Usings, 1)

	generated := filepath.Join(dir, "Form1.Designer.cs")
	require.NoError(t, os.WriteFile(generated, []byte("class Form1 { }\n"), 0o600))
	_, err = newEngine().ProcessFile(context.Background(), generated, analyze.Options{SkipGenerated: true})
	require.ErrorIs(t, err, analyze.ErrSkipped)

	_, err = newEngine().ProcessFile(context.Background(), filepath.Join(dir, "missing.cs"), analyze.DefaultOptions())
	require.ErrorIs(t, err, analyze.ErrFileNotFound)
	assert.True(t, analyze.IsInputError(err))
	assert.False(t, analyze.IsInputError(errors.New("boom")))
}

func TestParseKinds(t *testing.T) {
	t.Parallel()

	kinds, err := analyze.ParseKinds("ClassDeclaration,MethodDeclaration", "Block")
	require.NoError(t, err)
	assert.Equal(t, []syntax.Kind{
		syntax.KindClassDeclaration,
		syntax.KindMethodDeclaration,
		syntax.KindBlock,
	}, kinds)

	_, err = analyze.ParseKinds("NoSuchKind")
	require.Error(t, err)

	_, err = analyze.ParseKinds("", " ")
	require.ErrorIs(t, err, analyze.ErrNoKinds)
}

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	assert.True(t, analyze.IsMarkdown("docs/README.md"))
	assert.True(t, analyze.IsMarkdown("GUIDE.MARKDOWN"))
	assert.False(t, analyze.IsMarkdown("Program.cs"))
}

func TestFileResult_SourceLine(t *testing.T) {
	t.Parallel()

	results, err := newEngine().AnalyzeFile(context.Background(), "README.md", []byte(document), analyze.DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "class A { void M() { Run(); } }", results[0].SourceLine(5))
	assert.Empty(t, results[0].SourceLine(1))
	assert.Empty(t, (&analyze.FileResult{}).SourceLine(1))
}
