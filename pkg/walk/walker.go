// Package walk provides a hook-based traversal engine over syntax trees.
//
// A Walker visits nodes in pre-order, depth-first and left to right. Hooks
// registered per node kind replace the default behavior for that kind; a
// hook descends further only by calling VisitChildren, so a hook that does
// not call it prunes the subtree.
package walk

import (
	"errors"
	"fmt"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// ErrWalkerBusy is returned by Walk when the walker is already walking.
var ErrWalkerBusy = errors.New("walker is busy")

// State is the lifecycle state of a Walker.
type State uint8

// Walker states.
const (
	StateNotStarted State = iota
	StateVisiting
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateVisiting:
		return "visiting"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// NodeHook handles a node in place of the default visit.
type NodeHook func(w *Walker, n syntax.Node) error

// TokenHook handles a token.
type TokenHook func(w *Walker, t syntax.Token) error

// TriviaHook handles one piece of trivia; tok is the token that owns it.
type TriviaHook func(w *Walker, tr syntax.Trivia, tok syntax.Token) error

// Option configures a Walker.
type Option func(*Walker)

// WithDepth sets how deep the default visit descends.
func WithDepth(depth Depth) Option {
	return func(w *Walker) { w.depth = depth }
}

// Walker dispatches tree elements to hooks. A Walker is owned by one
// traversal at a time and is not safe for concurrent use; the tree it
// walks is.
type Walker struct {
	depth      Depth
	nodeHooks  map[syntax.Kind]NodeHook
	anyNode    NodeHook
	tokenHooks map[syntax.TokenKind]TokenHook
	anyToken   TokenHook
	triviaHook TriviaHook
	state      State
	current    syntax.Node
	hasCurrent bool
}

// New creates a walker with DepthTokens unless overridden.
func New(opts ...Option) *Walker {
	w := &Walker{
		depth:      DepthTokens,
		nodeHooks:  make(map[syntax.Kind]NodeHook),
		tokenHooks: make(map[syntax.TokenKind]TokenHook),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// On registers hook for nodes of kind, replacing any earlier hook for it.
func (w *Walker) On(kind syntax.Kind, hook NodeHook) *Walker {
	w.nodeHooks[kind] = hook
	return w
}

// OnKinds registers one hook for several kinds.
func (w *Walker) OnKinds(hook NodeHook, kinds ...syntax.Kind) *Walker {
	for _, kind := range kinds {
		w.nodeHooks[kind] = hook
	}
	return w
}

// OnAny registers the fallback hook for node kinds without a specific hook.
func (w *Walker) OnAny(hook NodeHook) *Walker {
	w.anyNode = hook
	return w
}

// OnToken registers hook for tokens of kind.
func (w *Walker) OnToken(kind syntax.TokenKind, hook TokenHook) *Walker {
	w.tokenHooks[kind] = hook
	return w
}

// OnAnyToken registers the fallback hook for token kinds without a specific hook.
func (w *Walker) OnAnyToken(hook TokenHook) *Walker {
	w.anyToken = hook
	return w
}

// OnTrivia registers the trivia hook. It only fires at DepthTrivia.
func (w *Walker) OnTrivia(hook TriviaHook) *Walker {
	w.triviaHook = hook
	return w
}

// Depth returns the configured depth.
func (w *Walker) Depth() Depth {
	return w.depth
}

// State returns the lifecycle state.
func (w *Walker) State() State {
	return w.state
}

// Current returns the node being visited while the walker is visiting.
func (w *Walker) Current() (syntax.Node, bool) {
	return w.current, w.state == StateVisiting && w.hasCurrent
}

// Walk visits root and, through the default behavior, its subtree. A hook
// error stops the walk and is returned as a *HookError.
func (w *Walker) Walk(root syntax.Node) error {
	if w.state == StateVisiting {
		return ErrWalkerBusy
	}
	if root.IsZero() {
		w.state = StateDone
		return nil
	}

	w.state = StateVisiting
	defer func() {
		w.state = StateDone
		w.current, w.hasCurrent = syntax.Node{}, false
	}()

	return w.Visit(root)
}

// Visit dispatches n to its hook or, without one, to VisitChildren.
func (w *Walker) Visit(n syntax.Node) error {
	prev, hadPrev := w.current, w.hasCurrent
	w.current, w.hasCurrent = n, true
	defer func() { w.current, w.hasCurrent = prev, hadPrev }()

	hook, ok := w.nodeHooks[n.Kind()]
	if !ok {
		hook = w.anyNode
	}
	if hook == nil {
		return w.VisitChildren(n)
	}

	if err := hook(w, n); err != nil {
		return wrapHookError(err, func() *HookError { return &HookError{Node: n, Err: err} })
	}
	return nil
}

// VisitChildren visits the children of n in source order. Tokens are
// visited at DepthTokens and deeper.
func (w *Walker) VisitChildren(n syntax.Node) error {
	for child := range n.Children() {
		if node, ok := child.AsNode(); ok {
			if err := w.Visit(node); err != nil {
				return err
			}
			continue
		}
		if w.depth < DepthTokens {
			continue
		}
		tok, _ := child.AsToken()
		if err := w.VisitToken(tok); err != nil {
			return err
		}
	}
	return nil
}

// VisitToken dispatches a token and, at DepthTrivia, its trivia in text
// order.
func (w *Walker) VisitToken(tok syntax.Token) error {
	if w.depth >= DepthTrivia {
		if err := w.visitTrivia(tok.LeadingTrivia(), tok); err != nil {
			return err
		}
	}

	hook, ok := w.tokenHooks[tok.Kind()]
	if !ok {
		hook = w.anyToken
	}
	if hook != nil {
		if err := hook(w, tok); err != nil {
			return wrapHookError(err, func() *HookError { return &HookError{Token: tok, Err: err} })
		}
	}

	if w.depth >= DepthTrivia {
		return w.visitTrivia(tok.TrailingTrivia(), tok)
	}
	return nil
}

func (w *Walker) visitTrivia(trivia []syntax.Trivia, tok syntax.Token) error {
	if w.triviaHook == nil {
		return nil
	}
	for _, tr := range trivia {
		if err := w.triviaHook(w, tr, tok); err != nil {
			return wrapHookError(err, func() *HookError { return &HookError{Token: tok, Trivia: &tr, Err: err} })
		}
	}
	return nil
}

// wrapHookError wraps err unless a nested hook already did.
func wrapHookError(err error, wrap func() *HookError) error {
	var hookErr *HookError
	if errors.As(err, &hookErr) {
		return err
	}
	return wrap()
}

// Inspect visits root and its descendant nodes in pre-order. When fn
// returns false the children of that node are skipped.
func Inspect(root syntax.Node, fn func(syntax.Node) bool) {
	if root.IsZero() || !fn(root) {
		return
	}
	for child := range root.ChildNodes() {
		Inspect(child, fn)
	}
}
