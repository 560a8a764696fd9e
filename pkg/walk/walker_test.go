package walk_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/syntree/pkg/parser/csharp"
	"github.com/yaklabco/syntree/pkg/syntax"
	"github.com/yaklabco/syntree/pkg/walk"
)

const program = `using System;

namespace Demo
{
    class Greeter
    {
        // Prints a greeting.
        void Greet(string name)
        {
            Console.WriteLine(Format(name));
        }
    }
}
`

func parse(t *testing.T, text string) *syntax.Tree {
	t.Helper()

	tree, err := csharp.ParseText(text)
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}
	return tree
}

func recordAll(w *walk.Walker, n syntax.Node, into *[]syntax.Kind) error {
	*into = append(*into, n.Kind())
	return w.VisitChildren(n)
}

func TestWalk_PreOrder(t *testing.T) {
	t.Parallel()

	tree := parse(t, program)

	var got []syntax.Kind
	w := walk.New(walk.WithDepth(walk.DepthNodes)).OnAny(func(w *walk.Walker, n syntax.Node) error {
		return recordAll(w, n, &got)
	})
	if err := w.Walk(tree.Root()); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	var want []syntax.Kind
	for n := range tree.Root().DescendantNodesAndSelf(nil) {
		want = append(want, n.Kind())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("visit order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_Tokens(t *testing.T) {
	t.Parallel()

	tree := parse(t, program)

	var got []string
	w := walk.New().OnAnyToken(func(_ *walk.Walker, tok syntax.Token) error {
		got = append(got, tok.Text())
		return nil
	})
	if err := w.Walk(tree.Root()); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	var want []string
	for tok := range tree.Tokens() {
		want = append(want, tok.Text())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_SpecificTokenHook(t *testing.T) {
	t.Parallel()

	tree := parse(t, program)

	var identifiers, other int
	w := walk.New().
		OnToken(syntax.TokenIdentifier, func(_ *walk.Walker, _ syntax.Token) error {
			identifiers++
			return nil
		}).
		OnAnyToken(func(_ *walk.Walker, _ syntax.Token) error {
			other++
			return nil
		})
	if err := w.Walk(tree.Root()); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	// System Demo Greeter Greet name Console WriteLine Format name
	if identifiers != 9 {
		t.Errorf("identifier hook fired %d times, want 9", identifiers)
	}
	if identifiers+other != tree.TokenCount() {
		t.Errorf("hooks saw %d tokens, want %d", identifiers+other, tree.TokenCount())
	}
}

func TestWalk_NodesDepthSkipsTokens(t *testing.T) {
	t.Parallel()

	tree := parse(t, program)

	calls := 0
	w := walk.New(walk.WithDepth(walk.DepthNodes)).OnAnyToken(func(_ *walk.Walker, _ syntax.Token) error {
		calls++
		return nil
	})
	if err := w.Walk(tree.Root()); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if calls != 0 {
		t.Errorf("token hook fired %d times at DepthNodes", calls)
	}
}

func TestWalk_TriviaReproducesSource(t *testing.T) {
	t.Parallel()

	tree := parse(t, program)

	var sb strings.Builder
	var comments []string
	w := walk.New(walk.WithDepth(walk.DepthTrivia)).
		OnAnyToken(func(_ *walk.Walker, tok syntax.Token) error {
			sb.WriteString(tok.Text())
			return nil
		}).
		OnTrivia(func(_ *walk.Walker, tr syntax.Trivia, _ syntax.Token) error {
			sb.WriteString(tr.Text)
			if tr.Kind.IsComment() {
				comments = append(comments, tr.Text)
			}
			return nil
		})
	if err := w.Walk(tree.Root()); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if sb.String() != program {
		t.Errorf("trivia walk produced %q", sb.String())
	}
	if diff := cmp.Diff([]string{"// Prints a greeting."}, comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_HookReplacesDefault(t *testing.T) {
	t.Parallel()

	tree := parse(t, "class C { void M() { F(G(1)); H(); } }")

	tests := []struct {
		name    string
		descend bool
		want    []string
	}{
		{"hook without descent", false, []string{"F(G(1))", "H()"}},
		{"hook with descent", true, []string{"F(G(1))", "G(1)", "H()"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []string
			w := walk.New().On(syntax.KindInvocationExpression, func(w *walk.Walker, n syntax.Node) error {
				got = append(got, n.Text())
				if tt.descend {
					return w.VisitChildren(n)
				}
				return nil
			})
			if err := w.Walk(tree.Root()); err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("visited invocations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalk_OnKinds(t *testing.T) {
	t.Parallel()

	tree := parse(t, program)

	var got []syntax.Kind
	w := walk.New().OnKinds(func(w *walk.Walker, n syntax.Node) error {
		got = append(got, n.Kind())
		return w.VisitChildren(n)
	}, syntax.KindNamespaceDeclaration, syntax.KindClassDeclaration, syntax.KindMethodDeclaration)
	if err := w.Walk(tree.Root()); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []syntax.Kind{syntax.KindNamespaceDeclaration, syntax.KindClassDeclaration, syntax.KindMethodDeclaration}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OnKinds mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_HookError(t *testing.T) {
	t.Parallel()

	tree := parse(t, program)
	errStop := errors.New("stop")

	visitedAfter := false
	w := walk.New().
		OnAny(func(w *walk.Walker, n syntax.Node) error { return w.VisitChildren(n) }).
		On(syntax.KindParameter, func(_ *walk.Walker, _ syntax.Node) error { return errStop }).
		On(syntax.KindBlock, func(_ *walk.Walker, _ syntax.Node) error {
			visitedAfter = true
			return nil
		})

	err := w.Walk(tree.Root())
	if !errors.Is(err, errStop) {
		t.Fatalf("Walk() error = %v, want %v", err, errStop)
	}

	var hookErr *walk.HookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("error %T is not a *HookError", err)
	}
	if hookErr.Node.Kind() != syntax.KindParameter {
		t.Errorf("HookError.Node kind = %v, want Parameter", hookErr.Node.Kind())
	}
	if !strings.Contains(err.Error(), "Parameter hook") {
		t.Errorf("Error() = %q", err.Error())
	}
	if visitedAfter {
		t.Error("walk should stop at the first hook error")
	}
	if w.State() != walk.StateDone {
		t.Errorf("State() = %v after a failed walk, want done", w.State())
	}
}

func TestWalk_TokenHookError(t *testing.T) {
	t.Parallel()

	tree := parse(t, "class C { }")
	errBrace := errors.New("brace")

	w := walk.New().OnToken(syntax.TokenOpenBrace, func(_ *walk.Walker, _ syntax.Token) error { return errBrace })
	err := w.Walk(tree.Root())

	var hookErr *walk.HookError
	if !errors.As(err, &hookErr) || !errors.Is(err, errBrace) {
		t.Fatalf("Walk() error = %v", err)
	}
	if !hookErr.Node.IsZero() || hookErr.Token.Kind() != syntax.TokenOpenBrace {
		t.Errorf("HookError = %+v, want the open brace token", hookErr)
	}
}

func TestWalker_Lifecycle(t *testing.T) {
	t.Parallel()

	tree := parse(t, "class C { }")
	w := walk.New()

	if w.State() != walk.StateNotStarted {
		t.Errorf("initial State() = %v", w.State())
	}
	if _, ok := w.Current(); ok {
		t.Error("Current() should be unset before walking")
	}

	var busyErr error
	var current syntax.Node
	w.On(syntax.KindClassDeclaration, func(w *walk.Walker, n syntax.Node) error {
		if w.State() != walk.StateVisiting {
			t.Errorf("State() inside hook = %v", w.State())
		}
		current, _ = w.Current()
		busyErr = w.Walk(tree.Root())
		return nil
	})

	if err := w.Walk(tree.Root()); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if !errors.Is(busyErr, walk.ErrWalkerBusy) {
		t.Errorf("nested Walk() error = %v, want ErrWalkerBusy", busyErr)
	}
	if current.Kind() != syntax.KindClassDeclaration {
		t.Errorf("Current() inside hook = %v", current.Kind())
	}
	if w.State() != walk.StateDone {
		t.Errorf("final State() = %v", w.State())
	}

	// A finished walker can walk again.
	if err := w.Walk(tree.Root()); err != nil {
		t.Errorf("second Walk() error = %v", err)
	}
}

func TestWalk_ZeroRoot(t *testing.T) {
	t.Parallel()

	w := walk.New()
	if err := w.Walk(syntax.Node{}); err != nil {
		t.Errorf("Walk(zero) error = %v", err)
	}
	if w.State() != walk.StateDone {
		t.Errorf("State() = %v", w.State())
	}
}

func TestWalk_Subtree(t *testing.T) {
	t.Parallel()

	tree := parse(t, program)

	var method syntax.Node
	for n := range tree.Root().DescendantNodes(nil) {
		if n.Kind() == syntax.KindMethodDeclaration {
			method = n
			break
		}
	}

	var got []syntax.Kind
	w := walk.New(walk.WithDepth(walk.DepthNodes)).OnAny(func(w *walk.Walker, n syntax.Node) error {
		return recordAll(w, n, &got)
	})
	if err := w.Walk(method); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if got[0] != syntax.KindMethodDeclaration {
		t.Errorf("first visited = %v", got[0])
	}
	for _, k := range got {
		if k == syntax.KindClassDeclaration || k == syntax.KindUsingDirective {
			t.Errorf("walk of a subtree left it: visited %v", k)
		}
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	tree := parse(t, program)

	var got []syntax.Kind
	walk.Inspect(tree.Root(), func(n syntax.Node) bool {
		got = append(got, n.Kind())
		return n.Kind() != syntax.KindNamespaceDeclaration
	})

	want := []syntax.Kind{
		syntax.KindCompilationUnit, syntax.KindUsingDirective, syntax.KindIdentifierName,
		syntax.KindNamespaceDeclaration,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Inspect() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    walk.Depth
		wantErr bool
	}{
		{"nodes", walk.DepthNodes, false},
		{"Tokens", walk.DepthTokens, false},
		{" trivia ", walk.DepthTrivia, false},
		{"", walk.DepthTokens, false},
		{"everything", walk.DepthTokens, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := walk.ParseDepth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDepth(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDepth(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !tt.wantErr && got.String() != strings.ToLower(strings.TrimSpace(tt.input)) && tt.input != "" {
				t.Errorf("String() = %q", got.String())
			}
		})
	}
}
