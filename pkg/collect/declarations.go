package collect

import (
	"fmt"

	"github.com/yaklabco/syntree/pkg/syntax"
	"github.com/yaklabco/syntree/pkg/walk"
)

// DeclarationCollector gathers non-excluded using directives, variable
// declarations and invocation expressions in one walk. None of its hooks
// descend, so an invocation nested in another invocation's arguments or
// in a variable initializer is not collected.
type DeclarationCollector struct {
	usings      *UsingCollector
	variables   []syntax.VariableDeclaration
	invocations []syntax.InvocationExpression
}

// NewDeclarationCollector creates a collector; opts configure the using filter.
func NewDeclarationCollector(opts ...Option) *DeclarationCollector {
	return &DeclarationCollector{usings: NewUsingCollector(opts...)}
}

// Attach registers the collector's hooks on w.
func (c *DeclarationCollector) Attach(w *walk.Walker) {
	c.usings.Attach(w)
	w.On(syntax.KindVariableDeclaration, func(_ *walk.Walker, n syntax.Node) error {
		decl, err := n.AsVariableDeclaration()
		if err != nil {
			return err
		}
		c.variables = append(c.variables, decl)
		return nil
	})
	w.On(syntax.KindInvocationExpression, func(_ *walk.Walker, n syntax.Node) error {
		inv, err := n.AsInvocationExpression()
		if err != nil {
			return err
		}
		c.invocations = append(c.invocations, inv)
		return nil
	})
}

// Collect walks root once and fills all three collections.
func (c *DeclarationCollector) Collect(root syntax.Node) error {
	c.usings.usings, c.usings.seen = nil, nil
	c.variables, c.invocations = nil, nil

	w := walk.New(walk.WithDepth(walk.DepthNodes))
	c.Attach(w)
	if err := w.Walk(root); err != nil {
		return fmt.Errorf("collect declarations: %w", err)
	}
	return nil
}

// Usings returns the kept using directives.
func (c *DeclarationCollector) Usings() []syntax.UsingDirective {
	return c.usings.Usings()
}

// Variables returns the variable declarations in visit order.
func (c *DeclarationCollector) Variables() []syntax.VariableDeclaration {
	return append([]syntax.VariableDeclaration(nil), c.variables...)
}

// Invocations returns the invocation expressions in visit order.
func (c *DeclarationCollector) Invocations() []syntax.InvocationExpression {
	return append([]syntax.InvocationExpression(nil), c.invocations...)
}
