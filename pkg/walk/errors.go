package walk

import (
	"fmt"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// HookError reports an error returned by a hook. Exactly one of Node and
// Token is set; Trivia is set when a trivia hook failed.
type HookError struct {
	Node   syntax.Node
	Token  syntax.Token
	Trivia *syntax.Trivia
	Err    error
}

func (e *HookError) Error() string {
	switch {
	case e.Trivia != nil:
		return fmt.Sprintf("walk: %s hook at %s: %v", e.Trivia.Kind, e.Trivia.Span, e.Err)
	case !e.Node.IsZero():
		return fmt.Sprintf("walk: %s hook at %s: %v", e.Node.Kind(), e.Node.Span(), e.Err)
	default:
		return fmt.Sprintf("walk: %s hook at %s: %v", e.Token.Kind(), e.Token.Span(), e.Err)
	}
}

// Unwrap returns the hook's error.
func (e *HookError) Unwrap() error {
	return e.Err
}
