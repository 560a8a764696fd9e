// Package collect provides ready-made walker hooks that gather facts from
// syntax trees: a kind trace, using directives, variable declarations,
// invocations and a structural description of a program.
//
// Collectors are filled by one walk at a time and are not safe for
// concurrent use.
package collect

import (
	"fmt"
	"strconv"

	"github.com/yaklabco/syntree/pkg/source"
	"github.com/yaklabco/syntree/pkg/syntax"
	"github.com/yaklabco/syntree/pkg/walk"
)

// TraceEntry is one visited element.
type TraceEntry struct {
	Level int              `json:"level"`
	Node  syntax.Kind      `json:"node,omitempty"`
	Token syntax.TokenKind `json:"token,omitempty"`
	Text  string           `json:"text,omitempty"`
	Span  source.Span      `json:"span"`
	// IsToken distinguishes token entries from node entries.
	IsToken bool `json:"isToken,omitempty"`
}

// String renders the entry as "Visit: Kind" for nodes and
// "Token: Kind "text"" for tokens.
func (e TraceEntry) String() string {
	if e.IsToken {
		return fmt.Sprintf("Token: %s %s", e.Token, strconv.Quote(e.Text))
	}
	return "Visit: " + e.Node.String()
}

// KindRecorder records every visited node kind, and optionally every
// token, in visit order.
type KindRecorder struct {
	depth   walk.Depth
	entries []TraceEntry
	level   int
}

// RecorderOption configures a KindRecorder.
type RecorderOption func(*KindRecorder)

// WithTokens makes the recorder include tokens.
func WithTokens() RecorderOption {
	return func(r *KindRecorder) { r.depth = walk.DepthTokens }
}

// NewKindRecorder creates a recorder that records nodes only.
func NewKindRecorder(opts ...RecorderOption) *KindRecorder {
	r := &KindRecorder{depth: walk.DepthNodes}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach registers the recorder's hooks on w. The node hook records the
// kind and then continues with the default visit.
func (r *KindRecorder) Attach(w *walk.Walker) {
	w.OnAny(func(w *walk.Walker, n syntax.Node) error {
		r.entries = append(r.entries, TraceEntry{Level: r.level, Node: n.Kind(), Span: n.Span()})
		r.level++
		defer func() { r.level-- }()
		return w.VisitChildren(n)
	})
	w.OnAnyToken(func(_ *walk.Walker, t syntax.Token) error {
		r.entries = append(r.entries, TraceEntry{
			Level:   r.level,
			Token:   t.Kind(),
			Text:    t.Text(),
			Span:    t.Span(),
			IsToken: true,
		})
		return nil
	})
}

// Record walks root and returns the trace. Earlier entries are discarded.
func (r *KindRecorder) Record(root syntax.Node) ([]TraceEntry, error) {
	r.entries = r.entries[:0]
	r.level = 0

	w := walk.New(walk.WithDepth(r.depth))
	r.Attach(w)
	if err := w.Walk(root); err != nil {
		return nil, fmt.Errorf("record kinds: %w", err)
	}
	return r.Entries(), nil
}

// Entries returns a copy of the recorded trace.
func (r *KindRecorder) Entries() []TraceEntry {
	out := make([]TraceEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Kinds returns the recorded node kinds in visit order.
func (r *KindRecorder) Kinds() []syntax.Kind {
	var kinds []syntax.Kind
	for _, e := range r.entries {
		if !e.IsToken {
			kinds = append(kinds, e.Node)
		}
	}
	return kinds
}

// Lines renders the trace one entry per line.
func (r *KindRecorder) Lines() []string {
	lines := make([]string, len(r.entries))
	for i, e := range r.entries {
		lines[i] = e.String()
	}
	return lines
}
