// Package mython is the embedding facade: lex, parse, and evaluate a
// complete Mython program against an output sink in one call. Grounded
// on the teacher's cmd/npython/main.go execute() helper's overall
// compile-setup-run shape, adapted here to a tree-walking evaluator with
// no emitter/VM stage.
package mython

import (
	"io"

	"github.com/mythonlang/mython/pkg/compiler/lexer"
	"github.com/mythonlang/mython/pkg/compiler/parser"
	"github.com/mythonlang/mython/pkg/core/value"
	"github.com/mythonlang/mython/pkg/evaluator"
)

// Run lexes, parses, and evaluates src, writing any Print output to out.
// It uses the default step budget; use RunWithBudget to override it.
func Run(src string, out io.Writer) error {
	return RunWithBudget(src, out, evaluator.DefaultStepBudget)
}

// RunWithBudget is Run with an explicit execution step budget (0 means
// unbounded).
func RunWithBudget(src string, out io.Writer, budget int) error {
	root, err := Compile(src)
	if err != nil {
		return err
	}
	_, err = evaluator.Run(root, out, budget)
	return err
}

// Compile lexes and parses src into its root AST node, without
// evaluating it. Exposed for embedders that want to inspect or reuse the
// parsed program, for example to evaluate successive fragments against one
// persistent top-level scope with evaluator.RunInScope.
func Compile(src string) (value.Node, error) {
	tokens, err := lexer.NewScanner([]byte(src)).Run()
	if err != nil {
		return nil, err
	}
	return parser.NewParser(tokens).Parse()
}
