package csharp_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/syntree/pkg/parser/csharp"
	"github.com/yaklabco/syntree/pkg/source"
	"github.com/yaklabco/syntree/pkg/syntax"
)

func tokenKinds(tokens []*syntax.GreenToken) []syntax.TokenKind {
	out := make([]syntax.TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLex_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []syntax.TokenKind
	}{
		{
			name:  "empty",
			input: "",
			want:  []syntax.TokenKind{syntax.TokenEndOfFile},
		},
		{
			name:  "keywords and identifiers",
			input: "class var @class",
			want: []syntax.TokenKind{
				syntax.TokenClassKeyword, syntax.TokenIdentifier, syntax.TokenIdentifier, syntax.TokenEndOfFile,
			},
		},
		{
			name:  "shift is two greater tokens",
			input: "a >> b",
			want: []syntax.TokenKind{
				syntax.TokenIdentifier, syntax.TokenGreater, syntax.TokenGreater, syntax.TokenIdentifier,
				syntax.TokenEndOfFile,
			},
		},
		{
			name:  "shift assignment",
			input: "x >>= 1",
			want: []syntax.TokenKind{
				syntax.TokenIdentifier, syntax.TokenGreater, syntax.TokenGreaterEquals, syntax.TokenNumericLiteral,
				syntax.TokenEndOfFile,
			},
		},
		{
			name:  "compound operators",
			input: "a ?? b ??= c => d::e && f || g += h ++",
			want: []syntax.TokenKind{
				syntax.TokenIdentifier, syntax.TokenQuestionQuestion,
				syntax.TokenIdentifier, syntax.TokenQuestionQuestionEquals,
				syntax.TokenIdentifier, syntax.TokenArrow,
				syntax.TokenIdentifier, syntax.TokenColonColon,
				syntax.TokenIdentifier, syntax.TokenAmpersandAmpersand,
				syntax.TokenIdentifier, syntax.TokenBarBar,
				syntax.TokenIdentifier, syntax.TokenPlusEquals,
				syntax.TokenIdentifier, syntax.TokenPlusPlus,
				syntax.TokenEndOfFile,
			},
		},
		{
			name:  "numbers",
			input: "0x1F 0b1010 1_000 1.5e3f 10UL .5",
			want: []syntax.TokenKind{
				syntax.TokenNumericLiteral, syntax.TokenNumericLiteral, syntax.TokenNumericLiteral,
				syntax.TokenNumericLiteral, syntax.TokenNumericLiteral, syntax.TokenNumericLiteral,
				syntax.TokenEndOfFile,
			},
		},
		{
			name:  "strings and characters",
			input: `"a\"b" @"c""d" '\'' 'x'`,
			want: []syntax.TokenKind{
				syntax.TokenStringLiteral, syntax.TokenStringLiteral,
				syntax.TokenCharacterLiteral, syntax.TokenCharacterLiteral,
				syntax.TokenEndOfFile,
			},
		},
		{
			name:  "interpolated strings are single tokens",
			input: `$"a {b} c" $@"{x}""" @$"{y}" $"{ "}" }"`,
			want: []syntax.TokenKind{
				syntax.TokenInterpolatedString, syntax.TokenInterpolatedString,
				syntax.TokenInterpolatedString, syntax.TokenInterpolatedString,
				syntax.TokenEndOfFile,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, diags := csharp.Lex(tt.input)
			if len(diags) != 0 {
				t.Errorf("Lex() diagnostics = %v, want none", diags)
			}
			if diff := cmp.Diff(tt.want, tokenKinds(tokens)); diff != "" {
				t.Errorf("Lex() kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLex_TriviaAttachment(t *testing.T) {
	t.Parallel()

	tokens, diags := csharp.Lex("int x; // c\n  y")
	if len(diags) != 0 {
		t.Fatalf("Lex() diagnostics = %v, want none", diags)
	}

	want := []*syntax.GreenToken{
		{
			Kind:     syntax.TokenIntKeyword,
			Span:     source.NewSpan(0, 3),
			Trailing: []syntax.Trivia{{Kind: syntax.TriviaWhitespace, Span: source.NewSpan(3, 4), Text: " "}},
		},
		{Kind: syntax.TokenIdentifier, Span: source.NewSpan(4, 5)},
		{
			Kind: syntax.TokenSemicolon,
			Span: source.NewSpan(5, 6),
			Trailing: []syntax.Trivia{
				{Kind: syntax.TriviaWhitespace, Span: source.NewSpan(6, 7), Text: " "},
				{Kind: syntax.TriviaSingleLineComment, Span: source.NewSpan(7, 11), Text: "// c"},
				{Kind: syntax.TriviaEndOfLine, Span: source.NewSpan(11, 12), Text: "\n"},
			},
		},
		{
			Kind:    syntax.TokenIdentifier,
			Span:    source.NewSpan(14, 15),
			Leading: []syntax.Trivia{{Kind: syntax.TriviaWhitespace, Span: source.NewSpan(12, 14), Text: "  "}},
		},
		{Kind: syntax.TokenEndOfFile, Span: source.NewSpan(15, 15)},
	}

	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("Lex() mismatch (-want +got):\n%s", diff)
	}
}

func TestLex_PreprocessorAndDocComments(t *testing.T) {
	t.Parallel()

	tokens, _ := csharp.Lex("#if DEBUG\nx\n#endif\n")
	if len(tokens) != 2 {
		t.Fatalf("Lex() returned %d tokens, want 2", len(tokens))
	}

	x, eof := tokens[0], tokens[1]
	wantLeading := []syntax.Trivia{
		{Kind: syntax.TriviaPreprocessorDirective, Span: source.NewSpan(0, 9), Text: "#if DEBUG"},
		{Kind: syntax.TriviaEndOfLine, Span: source.NewSpan(9, 10), Text: "\n"},
	}
	if diff := cmp.Diff(wantLeading, x.Leading); diff != "" {
		t.Errorf("identifier leading trivia mismatch (-want +got):\n%s", diff)
	}

	wantEOF := []syntax.Trivia{
		{Kind: syntax.TriviaPreprocessorDirective, Span: source.NewSpan(12, 18), Text: "#endif"},
		{Kind: syntax.TriviaEndOfLine, Span: source.NewSpan(18, 19), Text: "\n"},
	}
	if diff := cmp.Diff(wantEOF, eof.Leading); diff != "" {
		t.Errorf("end-of-file leading trivia mismatch (-want +got):\n%s", diff)
	}

	tokens, _ = csharp.Lex("/// <summary/>\n/** block */ class")
	leading := tokens[0].Leading
	kinds := make([]syntax.TriviaKind, len(leading))
	for i, tr := range leading {
		kinds[i] = tr.Kind
	}
	wantKinds := []syntax.TriviaKind{
		syntax.TriviaDocumentationComment, syntax.TriviaEndOfLine,
		syntax.TriviaDocumentationComment, syntax.TriviaWhitespace,
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Errorf("doc comment trivia mismatch (-want +got):\n%s", diff)
	}
}

func TestLex_Diagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantCode string
		wantKind syntax.TokenKind
	}{
		{"unexpected character", "a ` b", "CS1056", syntax.TokenIdentifier},
		{"unterminated comment", "x /* open", "CS1035", syntax.TokenIdentifier},
		{"newline in string", "\"abc\nx", "CS1010", syntax.TokenStringLiteral},
		{"unterminated verbatim string", "@\"abc", "CS1039", syntax.TokenStringLiteral},
		{"hash after code", "x #y", "CS1056", syntax.TokenIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, diags := csharp.Lex(tt.input)
			if len(diags) != 1 {
				t.Fatalf("Lex() diagnostics = %v, want exactly one", diags)
			}
			if diags[0].Code != tt.wantCode {
				t.Errorf("diagnostic code = %q, want %q", diags[0].Code, tt.wantCode)
			}
			if tokens[0].Kind != tt.wantKind {
				t.Errorf("first token kind = %v, want %v", tokens[0].Kind, tt.wantKind)
			}
		})
	}
}

func TestLex_CoversInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"\n\n",
		"x\r\ny\r",
		"\uFEFFusing System;",
		"a ` b   c",
		"/* open",
		"$\"{ unterminated",
		"class C { string s = @\"multi\nline\"; }\r\n",
	}

	for _, input := range inputs {
		tokens, _ := csharp.Lex(input)
		pos := 0
		for i, tok := range tokens {
			if tok.FullStart() != pos {
				t.Fatalf("Lex(%q) token %d starts at %d, want %d", input, i, tok.FullStart(), pos)
			}
			pos = tok.FullEnd()
		}
		if pos != len(input) {
			t.Errorf("Lex(%q) covers %d bytes, want %d", input, pos, len(input))
		}
		if last := tokens[len(tokens)-1]; last.Kind != syntax.TokenEndOfFile {
			t.Errorf("Lex(%q) last token = %v, want end of file", input, last.Kind)
		}
	}
}
