// Command mython is the CLI entry point: it reads a source file (or an
// inline -e program), lexes, parses, and evaluates it, and optionally
// dumps the resulting top-level scope as JSON. Flag names and shape
// follow the teacher's cmd/npython/main.go (-gas repurposed from a
// bytecode-instruction limit to an AST evaluation-step budget).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mythonlang/mython/pkg/compiler/lexer"
	"github.com/mythonlang/mython/pkg/compiler/parser"
	"github.com/mythonlang/mython/pkg/core/value"
	"github.com/mythonlang/mython/pkg/evaluator"
	"github.com/mythonlang/mython/pkg/introspect"
	"github.com/mythonlang/mython/pkg/repl"
)

func main() {
	gas := flag.Int("gas", evaluator.DefaultStepBudget, "maximum evaluation-step budget (0 = unbounded)")
	inline := flag.String("e", "", "inline Mython source, instead of a file argument")
	dumpJSON := flag.Bool("json", false, "dump the top-level scope as JSON after a successful run")
	verbose := flag.Bool("v", false, "enable verbose structured logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *inline == "" && len(flag.Args()) == 0 {
		if err := repl.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	src, err := readSource(*inline)
	if err != nil {
		logger.Error("failed to read source", "error", err)
		os.Exit(1)
	}

	if err := run(src, *gas, *dumpJSON, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readSource(inline string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	args := flag.Args()
	if len(args) != 1 {
		return "", fmt.Errorf("usage: mython [-gas n] [-json] [-v] (-e source | <file>)")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func run(src string, gas int, dumpJSON bool, logger *slog.Logger) error {
	lexStart := time.Now()
	tokens, err := lexer.NewScanner([]byte(src)).Run()
	if err != nil {
		return err
	}
	logger.Debug("lexed source", "tokens", len(tokens), "elapsed", time.Since(lexStart))

	parseStart := time.Now()
	root, err := parser.NewParser(tokens).Parse()
	if err != nil {
		return err
	}
	logger.Debug("parsed program", "elapsed", time.Since(parseStart))

	scope := value.NewScope()
	ctx := evaluator.NewContext(os.Stdout, gas)

	evalStart := time.Now()
	_, err = root.Execute(scope, ctx)
	logger.Debug("evaluated program", "steps", ctx.StepsTaken(), "elapsed", time.Since(evalStart))
	if err != nil {
		return err
	}

	if dumpJSON {
		var buf bytes.Buffer
		out, err := introspect.ScopeToJSON(scope.Names(), scope.Get)
		if err != nil {
			return err
		}
		buf.Write(out)
		buf.WriteByte('\n')
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
