package collect

import (
	"fmt"
	"strings"

	"github.com/yaklabco/syntree/pkg/syntax"
	"github.com/yaklabco/syntree/pkg/walk"
)

// DefaultExcludedRoot is the namespace root filtered out by default.
const DefaultExcludedRoot = "System"

// IsExcluded reports whether name is root itself or lies under it
// ("System", "System.IO"). "SystemX" is not excluded. An empty root
// excludes nothing.
func IsExcluded(name, root string) bool {
	if root == "" {
		return false
	}
	return name == root || strings.HasPrefix(name, root+".")
}

// Option configures the using filter of a collector.
type Option func(*filter)

type filter struct {
	root string
}

// WithExcludedRoot replaces the excluded namespace root. An empty root
// keeps every directive.
func WithExcludedRoot(root string) Option {
	return func(f *filter) { f.root = root }
}

func newFilter(opts []Option) filter {
	f := filter{root: DefaultExcludedRoot}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// UsingCollector gathers using directives whose names are outside the
// excluded root. Its hook does not descend into the directive.
type UsingCollector struct {
	filter filter
	usings []syntax.UsingDirective
	seen   []string
}

// NewUsingCollector creates a collector excluding DefaultExcludedRoot
// unless overridden.
func NewUsingCollector(opts ...Option) *UsingCollector {
	return &UsingCollector{filter: newFilter(opts)}
}

// Attach registers the using hook on w.
func (c *UsingCollector) Attach(w *walk.Walker) {
	w.On(syntax.KindUsingDirective, c.visitUsing)
}

func (c *UsingCollector) visitUsing(_ *walk.Walker, n syntax.Node) error {
	using, err := n.AsUsingDirective()
	if err != nil {
		return err
	}
	name := using.NameText()
	c.seen = append(c.seen, name)
	if !IsExcluded(name, c.filter.root) {
		c.usings = append(c.usings, using)
	}
	return nil
}

// Collect walks root and returns the kept directives in source order.
func (c *UsingCollector) Collect(root syntax.Node) ([]syntax.UsingDirective, error) {
	c.usings, c.seen = nil, nil

	w := walk.New(walk.WithDepth(walk.DepthNodes))
	c.Attach(w)
	if err := w.Walk(root); err != nil {
		return nil, fmt.Errorf("collect usings: %w", err)
	}
	return c.Usings(), nil
}

// Usings returns the kept directives.
func (c *UsingCollector) Usings() []syntax.UsingDirective {
	return append([]syntax.UsingDirective(nil), c.usings...)
}

// Seen returns the name of every directive the hook was called with,
// kept or not.
func (c *UsingCollector) Seen() []string {
	return append([]string(nil), c.seen...)
}
