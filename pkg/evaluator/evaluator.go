package evaluator

import (
	"io"

	"github.com/mythonlang/mython/pkg/core/value"
)

// Run invokes root's evaluation contract against a fresh top-level scope
// and a Context wrapping out with the given step budget (0 = unbounded).
// It is the driver described by component G: the AST's root node is
// typically a Compound of top-level statements.
func Run(root value.Node, out io.Writer, budget int) (value.Value, error) {
	scope := value.NewScope()
	ctx := NewContext(out, budget)
	return root.Execute(scope, ctx)
}

// RunInScope is Run for an already-populated top-level scope, used by
// embedders and the REPL that need state to persist across calls.
func RunInScope(root value.Node, scope *value.Scope, out io.Writer, budget int) (value.Value, error) {
	ctx := NewContext(out, budget)
	return root.Execute(scope, ctx)
}
