// Package parser is a hand-written recursive-descent parser turning a
// lexed Mython token stream into the AST package's node tree. It is an
// external collaborator to the lexer/evaluator core: only its input
// (tokens) and output (value.Node) contracts matter to the rest of the
// interpreter.
package parser

import (
	"fmt"

	"github.com/mythonlang/mython/pkg/compiler/ast"
	"github.com/mythonlang/mython/pkg/compiler/lexer"
	"github.com/mythonlang/mython/pkg/core/value"
)

// ParseError reports a malformed program, carrying the source line on
// which the parser gave up.
type ParseError struct {
	Line uint32
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
}

func newParseError(line uint32, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Parser consumes a token slice produced by lexer.Scanner.Run and builds
// the AST, maintaining a table of classes defined so far so that later
// class definitions can resolve an earlier class as their parent.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	classes map[string]*value.Class
}

// NewParser wraps an already-lexed token stream.
func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens, classes: make(map[string]*value.Class)}
}

// Parse consumes the entire token stream and returns the program's root
// node: a Compound of top-level statements.
func (p *Parser) Parse() (value.Node, error) {
	var stmts []value.Node
	for p.cur().Kind != lexer.KindEof {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &ast.Compound{Statements: stmts}, nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.KindEof}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return lexer.Token{Kind: lexer.KindEof}
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) mark() int { return p.pos }

func (p *Parser) reset(mark int) { p.pos = mark }

func (p *Parser) expectKind(kind lexer.Kind) (lexer.Token, error) {
	tok := p.cur()
	if tok.Kind != kind {
		return lexer.Token{}, newParseError(tok.Line, "expected %s, got %s", kind, tok.Kind)
	}
	return p.advance(), nil
}

func (p *Parser) expectChar(ch byte) error {
	tok := p.cur()
	if tok.Kind != lexer.KindChar || tok.Char != ch {
		return newParseError(tok.Line, "expected '%c', got %s", ch, tok.Kind)
	}
	p.advance()
	return nil
}

func (p *Parser) isChar(ch byte) bool {
	tok := p.cur()
	return tok.Kind == lexer.KindChar && tok.Char == ch
}

// skipNewlines consumes zero or more consecutive Newline tokens where a
// statement is expected. The lexer emits such a Newline for a comment-only
// line at the very start of the source; blank lines emit none.
func (p *Parser) skipNewlines() {
	for p.cur().Kind == lexer.KindNewline {
		p.advance()
	}
}

func (p *Parser) parseStatement() (value.Node, error) {
	p.skipNewlines()
	switch p.cur().Kind {
	case lexer.KindClass:
		return p.parseClassDef()
	case lexer.KindIf:
		return p.parseIfStmt()
	case lexer.KindReturn:
		return p.parseReturnStmt()
	case lexer.KindPrint:
		return p.parsePrintStmt()
	default:
		return p.parseAssignmentOrExprStmt()
	}
}

func (p *Parser) parseBlock() ([]value.Node, error) {
	if _, err := p.expectKind(lexer.KindIndent); err != nil {
		return nil, err
	}
	var stmts []value.Node
	for {
		p.skipNewlines()
		if p.cur().Kind == lexer.KindDedent || p.cur().Kind == lexer.KindEof {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expectKind(lexer.KindDedent); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseClassDef() (value.Node, error) {
	if _, err := p.expectKind(lexer.KindClass); err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(lexer.KindId)
	if err != nil {
		return nil, err
	}

	var parent *value.Class
	if p.isChar('(') {
		p.advance()
		parentTok, err := p.expectKind(lexer.KindId)
		if err != nil {
			return nil, err
		}
		found, ok := p.classes[parentTok.Str]
		if !ok {
			return nil, newParseError(parentTok.Line, "unknown parent class '%s'", parentTok.Str)
		}
		parent = found
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}

	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.KindNewline); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.KindIndent); err != nil {
		return nil, err
	}

	var methods []value.Method
	for {
		p.skipNewlines()
		if p.cur().Kind == lexer.KindDedent || p.cur().Kind == lexer.KindEof {
			break
		}
		m, err := p.parseMethodDef()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if _, err := p.expectKind(lexer.KindDedent); err != nil {
		return nil, err
	}

	class := value.NewClass(nameTok.Str, methods, parent)
	p.classes[nameTok.Str] = class
	return &ast.ClassDefinition{ClassVal: value.ClassObject(class)}, nil
}

func (p *Parser) parseMethodDef() (value.Method, error) {
	if _, err := p.expectKind(lexer.KindDef); err != nil {
		return value.Method{}, err
	}
	nameTok, err := p.expectKind(lexer.KindId)
	if err != nil {
		return value.Method{}, err
	}
	if err := p.expectChar('('); err != nil {
		return value.Method{}, err
	}
	var params []string
	for !p.isChar(')') {
		paramTok, err := p.expectKind(lexer.KindId)
		if err != nil {
			return value.Method{}, err
		}
		params = append(params, paramTok.Str)
		if p.isChar(',') {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectChar(')'); err != nil {
		return value.Method{}, err
	}
	if err := p.expectChar(':'); err != nil {
		return value.Method{}, err
	}
	if _, err := p.expectKind(lexer.KindNewline); err != nil {
		return value.Method{}, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return value.Method{}, err
	}
	return value.Method{
		Name:   nameTok.Str,
		Params: params,
		Body:   &ast.MethodBody{Body: &ast.Compound{Statements: body}},
	}, nil
}

func (p *Parser) parseIfStmt() (value.Node, error) {
	if _, err := p.expectKind(lexer.KindIf); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.KindNewline); err != nil {
		return nil, err
	}
	thenStmts, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseNode value.Node
	p.skipNewlines()
	if p.cur().Kind == lexer.KindElse {
		p.advance()
		if err := p.expectChar(':'); err != nil {
			return nil, err
		}
		if _, err := p.expectKind(lexer.KindNewline); err != nil {
			return nil, err
		}
		elseStmts, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		elseNode = &ast.Compound{Statements: elseStmts}
	}

	return &ast.IfElse{
		Cond: cond,
		Then: &ast.Compound{Statements: thenStmts},
		Else: elseNode,
	}, nil
}

func (p *Parser) parseReturnStmt() (value.Node, error) {
	if _, err := p.expectKind(lexer.KindReturn); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.KindNewline); err != nil {
		return nil, err
	}
	return &ast.Return{Expr: expr}, nil
}

func (p *Parser) parsePrintStmt() (value.Node, error) {
	if _, err := p.expectKind(lexer.KindPrint); err != nil {
		return nil, err
	}
	var args []value.Node
	if p.cur().Kind != lexer.KindNewline {
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, first)
		for p.isChar(',') {
			p.advance()
			next, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, next)
		}
	}
	if _, err := p.expectKind(lexer.KindNewline); err != nil {
		return nil, err
	}
	return &ast.Print{Args: args}, nil
}

// parseAssignmentOrExprStmt tries to read a bare dotted-identifier target
// followed by '=' as an assignment; if no '=' follows, it rewinds and
// parses a plain expression statement instead.
func (p *Parser) parseAssignmentOrExprStmt() (value.Node, error) {
	if p.cur().Kind == lexer.KindId {
		start := p.mark()
		path := []string{p.advance().Str}
		for p.isChar('.') {
			p.advance()
			fieldTok, err := p.expectKind(lexer.KindId)
			if err != nil {
				return nil, err
			}
			path = append(path, fieldTok.Str)
		}
		if p.isChar('=') {
			p.advance()
			rhs, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectKind(lexer.KindNewline); err != nil {
				return nil, err
			}
			if len(path) == 1 {
				return &ast.Assignment{Name: path[0], Rhs: rhs}, nil
			}
			return &ast.FieldAssignment{
				Object: &ast.VariableValue{Path: path[:len(path)-1]},
				Field:  path[len(path)-1],
				Rhs:    rhs,
			}, nil
		}
		p.reset(start)
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.KindNewline); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseExpr() (value.Node, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (value.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.KindOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Or{L: left, R: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (value.Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.KindAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.And{L: left, R: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (value.Node, error) {
	if p.cur().Kind == lexer.KindNot {
		p.advance()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Arg: arg}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (value.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	op, ok := p.comparisonOp()
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.Comparison{Op: op, L: left, R: right}, nil
}

func (p *Parser) comparisonOp() (ast.ComparisonOp, bool) {
	switch p.cur().Kind {
	case lexer.KindEq:
		return ast.OpEqual, true
	case lexer.KindNotEq:
		return ast.OpNotEqual, true
	case lexer.KindLessOrEq:
		return ast.OpLessOrEqual, true
	case lexer.KindGreaterOrEq:
		return ast.OpGreaterOrEqual, true
	case lexer.KindChar:
		switch p.cur().Char {
		case '<':
			return ast.OpLess, true
		case '>':
			return ast.OpGreater, true
		}
	}
	return 0, false
}

func (p *Parser) parseAdditive() (value.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.isChar('+') || p.isChar('-') {
		op := p.advance().Char
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		if op == '+' {
			left = &ast.Add{L: left, R: right}
		} else {
			left = &ast.Sub{L: left, R: right}
		}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (value.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isChar('*') || p.isChar('/') {
		op := p.advance().Char
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == '*' {
			left = &ast.Mult{L: left, R: right}
		} else {
			left = &ast.Div{L: left, R: right}
		}
	}
	return left, nil
}

func (p *Parser) parseUnary() (value.Node, error) {
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (value.Node, error) {
	if p.isChar('(') {
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return inner, nil
	}

	tok := p.cur()
	switch tok.Kind {
	case lexer.KindNumber:
		p.advance()
		return &ast.NumberLiteral{Val: tok.Num}, nil
	case lexer.KindString:
		p.advance()
		return &ast.StringLiteral{Val: tok.Str}, nil
	case lexer.KindTrue:
		p.advance()
		return &ast.BoolLiteral{Val: true}, nil
	case lexer.KindFalse:
		p.advance()
		return &ast.BoolLiteral{Val: false}, nil
	case lexer.KindNone:
		p.advance()
		return &ast.NoneLiteral{}, nil
	case lexer.KindId:
		return p.parseIdChain()
	default:
		return nil, newParseError(tok.Line, "unexpected token %s in expression", tok.Kind)
	}
}

// parseIdChain parses a bare name, immediately followed by an optional
// call (constructing an instance, or the str() builtin sugar), then any
// number of trailing '.' field accesses or method calls — so that a call
// result can itself be the object of a further '.' access, as in
// `C().f()`.
func (p *Parser) parseIdChain() (value.Node, error) {
	first, err := p.expectKind(lexer.KindId)
	if err != nil {
		return nil, err
	}

	var node value.Node
	if p.isChar('(') {
		p.advance()
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		if first.Str == "str" && len(args) == 1 {
			node = &ast.Stringify{Arg: args[0]}
		} else {
			node = &ast.NewInstance{Class: &ast.VariableValue{Path: []string{first.Str}}, Args: args}
		}
	} else {
		node = &ast.VariableValue{Path: []string{first.Str}}
	}

	for p.isChar('.') {
		p.advance()
		fieldTok, err := p.expectKind(lexer.KindId)
		if err != nil {
			return nil, err
		}
		if p.isChar('(') {
			p.advance()
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			if err := p.expectChar(')'); err != nil {
				return nil, err
			}
			node = &ast.MethodCall{Object: node, Method: fieldTok.Str, Args: args}
		} else {
			node = &ast.FieldAccess{Object: node, Field: fieldTok.Str}
		}
	}

	return node, nil
}

func (p *Parser) parseArgList() ([]value.Node, error) {
	var args []value.Node
	if p.isChar(')') {
		return args, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args = append(args, first)
	for p.isChar(',') {
		p.advance()
		next, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	return args, nil
}
