package parser_test

import (
	"bytes"
	"testing"

	"github.com/mythonlang/mython/pkg/compiler/lexer"
	"github.com/mythonlang/mython/pkg/compiler/parser"
	"github.com/mythonlang/mython/pkg/core/value"
)

type testContext struct {
	out   *bytes.Buffer
	steps int
}

func newTestContext() *testContext { return &testContext{out: &bytes.Buffer{}} }

func (c *testContext) OutputStream() value.Writer { return c.out }

func (c *testContext) Step() error {
	c.steps++
	return nil
}

func run(t *testing.T, src string) (*testContext, error) {
	t.Helper()
	tokens, err := lexer.NewScanner([]byte(src)).Run()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	root, err := parser.NewParser(tokens).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ctx := newTestContext()
	_, execErr := root.Execute(value.NewScope(), ctx)
	return ctx, execErr
}

func TestParseArithmeticPrint(t *testing.T) {
	ctx, err := run(t, "print 1 + 2 * 3\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ctx.out.String(); got != "7\n" {
		t.Errorf("got %q, want %q", got, "7\n")
	}
}

func TestParseVariablesAndDottedAccess(t *testing.T) {
	src := "class Point:\n" +
		"  def set(x, y):\n" +
		"    self.x = x\n" +
		"    self.y = y\n" +
		"p = Point()\n" +
		"p.set(3, 4)\n" +
		"print p.x, p.y\n"
	ctx, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ctx.out.String(); got != "3 4\n" {
		t.Errorf("got %q, want %q", got, "3 4\n")
	}
}

func TestParseInheritanceAndDunderDispatch(t *testing.T) {
	src := "class A:\n" +
		"  def __str__():\n" +
		"    return \"A\"\n" +
		"class B(A):\n" +
		"  def hello():\n" +
		"    return 1\n" +
		"b = B()\n" +
		"print b\n"
	ctx, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ctx.out.String(); got != "A\n" {
		t.Errorf("got %q, want %q", got, "A\n")
	}
}

func TestParseShortCircuitOr(t *testing.T) {
	ctx, err := run(t, "print True or (1 / 0)\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ctx.out.String(); got != "True\n" {
		t.Errorf("got %q, want %q", got, "True\n")
	}
}

func TestParseIfElseAndComparisons(t *testing.T) {
	src := "x = 5\n" +
		"if x < 10:\n" +
		"  print \"small\"\n" +
		"else:\n" +
		"  print \"big\"\n"
	ctx, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ctx.out.String(); got != "small\n" {
		t.Errorf("got %q, want %q", got, "small\n")
	}
}

func TestParseMethodReturnUnwinding(t *testing.T) {
	src := "class C:\n" +
		"  def f():\n" +
		"    if True:\n" +
		"      return 1\n" +
		"    return 2\n" +
		"print C().f()\n"
	ctx, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ctx.out.String(); got != "1\n" {
		t.Errorf("got %q, want %q", got, "1\n")
	}
}

func TestParseOddIndentIsLexError(t *testing.T) {
	_, err := lexer.NewScanner([]byte("if True:\n   print 1\n")).Run()
	if err == nil {
		t.Fatal("expected a lexical error for a three-space indent")
	}
}

func TestParseDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, "print 1 / 0\n")
	if err == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
}

func TestParseNotOnNonBoolIsRuntimeError(t *testing.T) {
	_, err := run(t, "print not 5\n")
	if err == nil {
		t.Fatal("expected a runtime error for 'not' on a non-bool")
	}
}

func TestParseUnknownNameIsRuntimeError(t *testing.T) {
	_, err := run(t, "print missing\n")
	if err == nil {
		t.Fatal("expected a runtime error for an undefined name")
	}
}
