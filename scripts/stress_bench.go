//go:build ignore

package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/mythonlang/mython/pkg/compiler/lexer"
	"github.com/mythonlang/mython/pkg/compiler/parser"
	"github.com/mythonlang/mython/pkg/core/value"
	"github.com/mythonlang/mython/pkg/evaluator"
)

// program builds a synthetic Mython source with depth nested classes, each
// delegating to the next, so the evaluator has to walk through depth method
// dispatches per call before the innermost class recurses iterations times.
func program(depth, iterations int) string {
	var b strings.Builder
	for i := 0; i < depth; i++ {
		fmt.Fprintf(&b, "class C%d:\n", i)
		if i == depth-1 {
			b.WriteString("  def step(n):\n")
			b.WriteString("    if n <= 0:\n")
			b.WriteString("      return 0\n")
			b.WriteString("    return self.step(n - 1) + 1\n")
			continue
		}
		fmt.Fprintf(&b, "  def step(n):\n")
		fmt.Fprintf(&b, "    c = C%d()\n", i+1)
		b.WriteString("    return c.step(n)\n")
	}
	b.WriteString("root = C0()\n")
	fmt.Fprintf(&b, "print root.step(%d)\n", iterations)
	return b.String()
}

func main() {
	const depth, iterations = 8, 5000

	src := program(depth, iterations)
	tokens, err := lexer.NewScanner([]byte(src)).Run()
	if err != nil {
		panic(err)
	}
	root, err := parser.NewParser(tokens).Parse()
	if err != nil {
		panic(err)
	}

	var out bytes.Buffer
	ctx := evaluator.NewContext(&out, 0)
	start := time.Now()
	if _, err := root.Execute(value.NewScope(), ctx); err != nil {
		panic(err)
	}
	elapsed := time.Since(start)

	fmt.Printf("depth=%d iterations=%d steps=%d elapsed=%s steps/sec=%.0f\n",
		depth, iterations, ctx.StepsTaken(), elapsed, float64(ctx.StepsTaken())/elapsed.Seconds())
	fmt.Print(out.String())
}
