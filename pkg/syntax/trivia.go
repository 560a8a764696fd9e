package syntax

import "github.com/yaklabco/syntree/pkg/source"

// TriviaKind classifies non-semantic text attached to tokens.
type TriviaKind uint8

// Trivia kinds.
const (
	TriviaWhitespace TriviaKind = iota
	TriviaEndOfLine
	TriviaSingleLineComment
	TriviaMultiLineComment
	TriviaDocumentationComment
	TriviaPreprocessorDirective
	TriviaSkippedTokens
)

// String returns the trivia kind name.
func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "WhitespaceTrivia"
	case TriviaEndOfLine:
		return "EndOfLineTrivia"
	case TriviaSingleLineComment:
		return "SingleLineCommentTrivia"
	case TriviaMultiLineComment:
		return "MultiLineCommentTrivia"
	case TriviaDocumentationComment:
		return "DocumentationCommentTrivia"
	case TriviaPreprocessorDirective:
		return "PreprocessorDirectiveTrivia"
	case TriviaSkippedTokens:
		return "SkippedTokensTrivia"
	default:
		return "UnknownTrivia"
	}
}

// MarshalText encodes the trivia kind by name.
func (k TriviaKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsComment reports whether k is any kind of comment.
func (k TriviaKind) IsComment() bool {
	return k == TriviaSingleLineComment || k == TriviaMultiLineComment || k == TriviaDocumentationComment
}

// Trivia is a run of whitespace, a comment, a directive line or text the
// parser skipped. Text is the exact source text of Span.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
