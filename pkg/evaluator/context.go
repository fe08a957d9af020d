// Package evaluator is the driver (component G): it wires a top-level
// Scope and a Context together and runs the root AST node against them.
// The Context here additionally carries an execution step budget,
// generalizing the teacher's bytecode gas-limit discipline to AST-node
// evaluation steps so that pathological recursive method calls cannot
// hang an embedding host.
package evaluator

import (
	"io"

	"github.com/mythonlang/mython/pkg/core/value"
)

// DefaultStepBudget is the budget used by mython.Run, the CLI's -gas
// default, and the REPL. NewContext itself never falls back to it: a
// budget of 0 passed to NewContext means unbounded.
const DefaultStepBudget = 10_000_000

// Context implements value.Context: an output sink plus a monotonically
// decreasing step budget, grounded on the teacher's
// Machine.Run(gasLimit) gas-exhaustion discipline.
type Context struct {
	out       io.Writer
	remaining int
	unbounded bool
	steps     int
}

// NewContext creates a Context writing to out with the given step
// budget. A budget of 0 means unbounded.
func NewContext(out io.Writer, budget int) *Context {
	if budget <= 0 {
		return &Context{out: out, unbounded: true}
	}
	return &Context{out: out, remaining: budget}
}

// OutputStream returns the sink Print statements write to.
func (c *Context) OutputStream() value.Writer { return c.out }

// Step consumes one unit of the execution budget, failing with a
// *value.RuntimeError once it is exhausted.
func (c *Context) Step() error {
	c.steps++
	if c.unbounded {
		return nil
	}
	if c.remaining <= 0 {
		return value.NewRuntimeError("execution budget exhausted")
	}
	c.remaining--
	return nil
}

// StepsTaken reports how many steps have been consumed so far, for
// diagnostics and the benchmark harness.
func (c *Context) StepsTaken() int { return c.steps }
