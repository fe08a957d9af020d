package lexer_test

import (
	"testing"

	"github.com/mythonlang/mython/pkg/compiler/lexer"
)

func kinds(tokens []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, expected []lexer.Kind) []lexer.Token {
	t.Helper()
	toks, err := lexer.NewScanner([]byte(src)).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := kinds(toks)
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("token %d: expected %v, got %v", i, exp, got[i])
		}
	}
	return toks
}

func TestScannerSimpleAssignment(t *testing.T) {
	assertKinds(t, "x = 5\n", []lexer.Kind{
		lexer.KindId, lexer.KindChar, lexer.KindNumber, lexer.KindNewline, lexer.KindEof,
	})
}

func TestScannerIndentDedent(t *testing.T) {
	src := "if True:\n  print 1\nprint 2\n"
	assertKinds(t, src, []lexer.Kind{
		lexer.KindIf, lexer.KindTrue, lexer.KindChar, lexer.KindNewline,
		lexer.KindIndent,
		lexer.KindPrint, lexer.KindNumber, lexer.KindNewline,
		lexer.KindDedent,
		lexer.KindPrint, lexer.KindNumber, lexer.KindNewline,
		lexer.KindEof,
	})
}

func TestScannerOddIndentIsError(t *testing.T) {
	_, err := lexer.NewScanner([]byte("if True:\n   print 1\n")).Run()
	if err == nil {
		t.Fatal("expected an error for a 3-space indent")
	}
	if _, ok := err.(*lexer.LexError); !ok {
		t.Fatalf("expected *lexer.LexError, got %T", err)
	}
}

func TestScannerUnbalancedIndentClosesAtEOF(t *testing.T) {
	toks := assertKinds(t, "if True:\n  if False:\n    print 1\n", []lexer.Kind{
		lexer.KindIf, lexer.KindTrue, lexer.KindChar, lexer.KindNewline,
		lexer.KindIndent,
		lexer.KindIf, lexer.KindFalse, lexer.KindChar, lexer.KindNewline,
		lexer.KindIndent,
		lexer.KindPrint, lexer.KindNumber, lexer.KindNewline,
		lexer.KindDedent, lexer.KindDedent,
		lexer.KindEof,
	})

	indents, dedents := 0, 0
	for _, k := range kinds(toks) {
		if k == lexer.KindIndent {
			indents++
		}
		if k == lexer.KindDedent {
			dedents++
		}
	}
	if indents != dedents {
		t.Errorf("expected equal Indent/Dedent counts, got %d/%d", indents, dedents)
	}
}

func TestScannerStringEscapes(t *testing.T) {
	toks := assertKinds(t, `x = "a\nb"`+"\n", []lexer.Kind{
		lexer.KindId, lexer.KindChar, lexer.KindString, lexer.KindNewline, lexer.KindEof,
	})
	if toks[2].Str != "a\nb" {
		t.Errorf("expected %q, got %q", "a\nb", toks[2].Str)
	}
}

func TestScannerBadEscapeIsError(t *testing.T) {
	_, err := lexer.NewScanner([]byte(`x = "\z"` + "\n")).Run()
	if err == nil {
		t.Fatal("expected an error for an unrecognized escape sequence")
	}
}

func TestScannerNewlineInStringIsError(t *testing.T) {
	_, err := lexer.NewScanner([]byte("x = \"a\nb\"\n")).Run()
	if err == nil {
		t.Fatal("expected an error for a newline inside a string literal")
	}
}

func TestScannerUnterminatedStringIsError(t *testing.T) {
	_, err := lexer.NewScanner([]byte(`x = "abc`)).Run()
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestScannerComparisonOperators(t *testing.T) {
	assertKinds(t, "a != b == c <= d >= e\n", []lexer.Kind{
		lexer.KindId, lexer.KindNotEq, lexer.KindId, lexer.KindEq, lexer.KindId,
		lexer.KindLessOrEq, lexer.KindId, lexer.KindGreaterOrEq, lexer.KindId,
		lexer.KindNewline, lexer.KindEof,
	})
}

func TestScannerCommentOnlyLineEmitsNoIndentChange(t *testing.T) {
	assertKinds(t, "x = 1\n# a comment\ny = 2\n", []lexer.Kind{
		lexer.KindId, lexer.KindChar, lexer.KindNumber, lexer.KindNewline,
		lexer.KindId, lexer.KindChar, lexer.KindNumber, lexer.KindNewline,
		lexer.KindEof,
	})
}

func TestScannerBlankLinesAreSkipped(t *testing.T) {
	assertKinds(t, "x = 1\n\n\ny = 2\n", []lexer.Kind{
		lexer.KindId, lexer.KindChar, lexer.KindNumber, lexer.KindNewline,
		lexer.KindId, lexer.KindChar, lexer.KindNumber, lexer.KindNewline,
		lexer.KindEof,
	})
}

func TestScannerAlwaysEndsInSingleEof(t *testing.T) {
	toks, err := lexer.NewScanner([]byte("x = 1\n")).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[len(toks)-1].Kind != lexer.KindEof {
		t.Fatalf("expected last token to be Eof, got %v", toks[len(toks)-1].Kind)
	}
	for _, tok := range toks[:len(toks)-1] {
		if tok.Kind == lexer.KindEof {
			t.Fatal("Eof appeared before the end of the stream")
		}
	}
}

func TestScannerEofPrecededByNewlineOrDedent(t *testing.T) {
	cases := []string{
		"x = 1\n",
		"if True:\n  print 1\n",
	}
	for _, src := range cases {
		toks, err := lexer.NewScanner([]byte(src)).Run()
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", src, err)
		}
		prev := toks[len(toks)-2].Kind
		if prev != lexer.KindNewline && prev != lexer.KindDedent {
			t.Errorf("expected Newline or Dedent before Eof for %q, got %v", src, prev)
		}
	}
}

func TestScannerDeterministic(t *testing.T) {
	src := "class Point:\n  def set(x, y):\n    self.x = x\n"
	a, err := lexer.NewScanner([]byte(src)).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := lexer.NewScanner([]byte(src)).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("non-deterministic token count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Errorf("token %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestScannerAllocationsBoundedByTokenSliceGrowth(t *testing.T) {
	src := []byte("x = 1 + 2 * 3\n")
	allocs := testing.AllocsPerRun(10, func() {
		if _, err := lexer.NewScanner(src).Run(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	// The scanner allocates its emitted-token slice and, on the fly, byte
	// buffers for string literals; this line has neither indentation
	// changes beyond depth 0 nor strings, so the only growth is the
	// token slice itself. Its 9 tokens are appended to a nil slice, which
	// grows through capacities 1, 2, 4, 8 and 16: 5 allocations.
	if allocs > 5 {
		t.Errorf("expected a small constant number of allocations, got %f", allocs)
	}
}
