package treesitter_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/syntree/pkg/collect"
	"github.com/yaklabco/syntree/pkg/parser/treesitter"
	"github.com/yaklabco/syntree/pkg/query"
	"github.com/yaklabco/syntree/pkg/source"
	"github.com/yaklabco/syntree/pkg/syntax"
)

func parse(t *testing.T, text string) *syntax.Tree {
	t.Helper()

	tree, err := treesitter.New().Parse(context.Background(), "test.cs", source.FromString(text))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tree
}

func TestParser_Name(t *testing.T) {
	t.Parallel()

	if got := treesitter.New().Name(); got != "treesitter" {
		t.Errorf("Name() = %q", got)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"using System;\n",
		"// only a comment\n",
		"namespace A.B { class C { void M() { var x = 1; } } }",
		"class C { int F(int a, string b = \"x\") => a + b.Length; }",
		"class C {\n\t/// <summary>doc</summary>\n\tpublic int P { get; set; } = 3;\n}\n",
		"class C { void M() { if (a) { b(); } else c(); } }",
		"class C { void M() { var s = $\"{a} and {b:x2}\"; } }",
		"class C { void M() { List<List<int>> x = null; y = a >> 2; } }",
		"class C { void M( }",
		"class { }",
		"namespace N; enum E { A = 1, B }",
		"#if DEBUG\nclass D { }\n#endif\n",
		"\uFEFFusing System;",
	}

	for _, input := range inputs {
		tree := parse(t, input)
		if got := tree.Root().FullText(); got != input {
			t.Errorf("FullText() = %q, want %q", got, input)
		}
		if tree.Root().Kind() != syntax.KindCompilationUnit {
			t.Errorf("root kind = %v", tree.Root().Kind())
		}
	}
}

func TestParse_Structure(t *testing.T) {
	t.Parallel()

	tree := parse(t, "using System.Text;\nusing IO = System.IO;\n\nnamespace Demo\n{\n    class Greeter\n    {\n        void Greet(string name)\n        {\n            Console.WriteLine(Format(name));\n        }\n    }\n}\n")
	if tree.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", tree.Diagnostics())
	}

	var usings []string
	for u := range query.UsingDirectives(tree.Root()) {
		usings = append(usings, u.NameText())
	}
	if diff := cmp.Diff([]string{"System.Text", "System.IO"}, usings); diff != "" {
		t.Errorf("usings mismatch (-want +got):\n%s", diff)
	}

	method, err := query.Single(query.Methods(tree.Root()), nil)
	if err != nil {
		t.Fatalf("Single(Methods) error = %v", err)
	}
	if got := method.Identifier().Text(); got != "Greet" {
		t.Errorf("method name = %q", got)
	}
	params := method.ParameterList().Parameters()
	if len(params) != 1 || params[0].Identifier().Text() != "name" {
		t.Errorf("parameters = %v", params)
	}

	var calls []string
	for inv := range query.Invocations(tree.Root()) {
		calls = append(calls, inv.Text())
	}
	if diff := cmp.Diff([]string{"Console.WriteLine(Format(name))", "Format(name)"}, calls); diff != "" {
		t.Errorf("invocations mismatch (-want +got):\n%s", diff)
	}

	class, err := query.FirstOrFail(query.DescendantsOfKind(tree.Root(), syntax.KindClassDeclaration), nil)
	if err != nil {
		t.Fatalf("no class: %v", err)
	}
	ns, ok := query.EnclosingNamespace(class)
	if !ok || ns.Name().Text() != "Demo" {
		t.Errorf("EnclosingNamespace() = %q, %v", ns.Name().Text(), ok)
	}
}

func TestParse_Sample(t *testing.T) {
	t.Parallel()

	content, err := os.ReadFile("../csharp/testdata/sample.cs")
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	tree := parse(t, string(content))
	if tree.Root().FullText() != string(content) {
		t.Fatal("sample does not round-trip")
	}

	counts := map[syntax.Kind]int{}
	for n := range tree.Root().DescendantNodes(nil) {
		counts[n.Kind()]++
	}
	want := map[syntax.Kind]int{
		syntax.KindUsingDirective:       6,
		syntax.KindNamespaceDeclaration: 1,
		syntax.KindClassDeclaration:     3,
		syntax.KindMethodDeclaration:    3,
		syntax.KindPropertyDeclaration:  3,
	}
	for kind, n := range want {
		if counts[kind] != n {
			t.Errorf("%v count = %d, want %d", kind, counts[kind], n)
		}
	}

	kept, err := collect.NewUsingCollector().Collect(tree.Root())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	var names []string
	for _, u := range kept {
		names = append(names, u.NameText())
	}
	if diff := cmp.Diff([]string{"Inventory.Core", "Inventory.Core.Storage"}, names); diff != "" {
		t.Errorf("kept usings mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tree := parse(t, "class C { void M() { int x = ; } }")
	if !tree.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	for _, d := range tree.Diagnostics() {
		if d.Code != treesitter.CodeSyntaxError && d.Code != treesitter.CodeMissingToken {
			t.Errorf("unexpected diagnostic code %q", d.Code)
		}
	}
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := treesitter.New().Parse(ctx, "x.cs", source.FromString("class C { }"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Parse() error = %v, want context.Canceled", err)
	}
}

func FuzzParse(f *testing.F) {
	f.Add("class C { void M() { } }")
	f.Add("using System;\nnamespace N { }")
	f.Add("class C { void M( }")
	f.Add("}}}{{{")

	f.Fuzz(func(t *testing.T, input string) {
		tree, err := treesitter.New().Parse(context.Background(), "", source.FromString(input))
		if err != nil {
			t.Skip()
		}
		if got := tree.Root().FullText(); got != input {
			t.Errorf("round trip failed: %q != %q", got, input)
		}
	})
}
