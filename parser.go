// parser.go — recursive-descent parser, token stream to AST
// (SPEC_FULL.md §4.1.1; spec.md gives no parser, so this is new code
// grounded on the original's statement node shapes and on the teacher's
// parser discipline).
//
// Precedence-climbing structure and the (node, error)-returning discipline
// (no panics for *parse* failures, unlike the evaluator's Return signal)
// are grounded on the teacher's parser.go (`expr(minBP)`, `need(TokenType,
// msg)`). Call/instantiation disambiguation follows
// other_examples/cmdneo-tree_lox's recursive-descent call-trailer handling.
// Statement grammar (class/def/if-else/assignment/print/return) is
// grounded on original_source/mython/statement.cpp's node set.
package mython

import "fmt"

// Parser turns a token stream into the AST node set of ast.go.
type Parser struct {
	lex *Lexer
}

func NewParser(lex *Lexer) *Parser {
	return &Parser{lex: lex}
}

// ParseSource lexes and parses src in one step, returning the program as a
// single *Compound node.
func ParseSource(src string) (Node, error) {
	lex, err := NewLexer(src)
	if err != nil {
		return nil, err
	}
	return NewParser(lex).ParseProgram()
}

func (p *Parser) cur() Token { return p.lex.Current() }

func (p *Parser) advance() error {
	_, err := p.lex.Next()
	return err
}

// errHere builds a *ParseError at the current token. Errors that fire
// because input ran out (current token is Eof) are given a recognizable
// "unexpected end of input" prefix so a REPL can tell "this needs another
// line" apart from a genuine syntax mistake without re-deriving parser
// state of its own.
func (p *Parser) errHere(msg string) error {
	c := p.cur()
	if c.Type == Eof {
		return &ParseError{Line: c.Line, Col: c.Col, Msg: "unexpected end of input: " + msg}
	}
	return &ParseError{Line: c.Line, Col: c.Col, Msg: msg}
}

func isChar(t Token, ch byte) bool { return t.Type == Char && t.Ch == ch }

func (p *Parser) expectChar(ch byte) error {
	if !isChar(p.cur(), ch) {
		return p.errHere(fmt.Sprintf("expected %q", ch))
	}
	return p.advance()
}

func (p *Parser) expectType(tt TokenType) error {
	if p.cur().Type != tt {
		return p.errHere(fmt.Sprintf("expected %s", tokenNames[tt]))
	}
	return p.advance()
}

// expectStmtEnd consumes the Newline terminating a simple statement.
func (p *Parser) expectStmtEnd() error {
	return p.expectType(Newline)
}

// ---- program / blocks ----

// ParseProgram parses a whole source file: a flat sequence of top-level
// statements (ordinary statements and class definitions interleaved),
// matching end-to-end scenario 4 of spec.md §8.
func (p *Parser) ParseProgram() (Node, error) {
	var stmts []Node
	for p.cur().Type != Eof {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return &Compound{Stmts: stmts}, nil
}

// parseBlock parses the `: NEWLINE INDENT stmt+ DEDENT` suite that follows
// a class/def/if/else header.
func (p *Parser) parseBlock() (Node, error) {
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if err := p.expectStmtEnd(); err != nil {
		return nil, err
	}
	if err := p.expectType(Indent); err != nil {
		return nil, err
	}
	var stmts []Node
	for p.cur().Type != Dedent {
		if p.cur().Type == Eof {
			return nil, p.errHere("unexpected end of input inside a block")
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if err := p.advance(); err != nil { // consume Dedent
		return nil, err
	}
	return &Compound{Stmts: stmts}, nil
}

func (p *Parser) parseStatement() (Node, error) {
	switch p.cur().Type {
	case KwClass:
		return p.parseClassDef()
	case If:
		return p.parseIfElse()
	case KwPrint:
		return p.parsePrintStmt()
	case KwReturn:
		return p.parseReturnStmt()
	default:
		return p.parseSimpleOrAssignStmt()
	}
}

// ---- class / def ----

func (p *Parser) parseClassDef() (Node, error) {
	line, col := p.cur().Line, p.cur().Col
	if err := p.advance(); err != nil { // consume 'class'
		return nil, err
	}
	nameTok := p.cur()
	if nameTok.Type != Id {
		return nil, p.errHere("expected a class name")
	}
	name := nameTok.Str
	if err := p.advance(); err != nil {
		return nil, err
	}

	parentName := ""
	if isChar(p.cur(), '(') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		pTok := p.cur()
		if pTok.Type != Id {
			return nil, p.errHere("expected a base class name")
		}
		parentName = pTok.Str
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}

	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if err := p.expectStmtEnd(); err != nil {
		return nil, err
	}
	if err := p.expectType(Indent); err != nil {
		return nil, err
	}

	var methods []MethodDef
	for p.cur().Type == Def {
		md, err := p.parseMethodDef()
		if err != nil {
			return nil, err
		}
		methods = append(methods, md)
	}
	if p.cur().Type != Dedent {
		return nil, p.errHere("expected a method definition or the end of the class body")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ClassDefinition{Name: name, ParentName: parentName, Methods: methods, Line: line, Col: col}, nil
}

func (p *Parser) parseMethodDef() (MethodDef, error) {
	if err := p.advance(); err != nil { // consume 'def'
		return MethodDef{}, err
	}
	nameTok := p.cur()
	if nameTok.Type != Id {
		return MethodDef{}, p.errHere("expected a method name")
	}
	name := nameTok.Str
	if err := p.advance(); err != nil {
		return MethodDef{}, err
	}
	if err := p.expectChar('('); err != nil {
		return MethodDef{}, err
	}

	var params []string
	for !isChar(p.cur(), ')') {
		if len(params) > 0 {
			if err := p.expectChar(','); err != nil {
				return MethodDef{}, err
			}
		}
		pt := p.cur()
		if pt.Type != Id {
			return MethodDef{}, p.errHere("expected a parameter name")
		}
		params = append(params, pt.Str)
		if err := p.advance(); err != nil {
			return MethodDef{}, err
		}
	}
	if err := p.advance(); err != nil { // consume ')'
		return MethodDef{}, err
	}
	if len(params) == 0 || params[0] != "self" {
		return MethodDef{}, p.errHere("a method's first parameter must be self")
	}

	if err := p.expectChar(':'); err != nil {
		return MethodDef{}, err
	}
	if err := p.expectStmtEnd(); err != nil {
		return MethodDef{}, err
	}
	if err := p.expectType(Indent); err != nil {
		return MethodDef{}, err
	}
	var stmts []Node
	for p.cur().Type != Dedent {
		if p.cur().Type == Eof {
			return MethodDef{}, p.errHere("unexpected end of input inside a method body")
		}
		s, err := p.parseStatement()
		if err != nil {
			return MethodDef{}, err
		}
		stmts = append(stmts, s)
	}
	if err := p.advance(); err != nil { // consume Dedent
		return MethodDef{}, err
	}

	body := &MethodBody{Body: &Compound{Stmts: stmts}}
	return MethodDef{Name: name, Params: params[1:], Body: body}, nil
}

// ---- if/else, print, return ----

func (p *Parser) parseIfElse() (Node, error) {
	if err := p.advance(); err != nil { // consume 'if'
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	thenBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBody Node
	if p.cur().Type == Else {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &IfElse{Cond: cond, Then: thenBody, Else: elseBody}, nil
}

func (p *Parser) parsePrintStmt() (Node, error) {
	if err := p.advance(); err != nil { // consume 'print'
		return nil, err
	}
	var args []Node
	if p.cur().Type != Newline {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		for isChar(p.cur(), ',') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
	}
	if err := p.expectStmtEnd(); err != nil {
		return nil, err
	}
	return &Print{Args: args}, nil
}

func (p *Parser) parseReturnStmt() (Node, error) {
	if err := p.advance(); err != nil { // consume 'return'
		return nil, err
	}
	var expr Node
	if p.cur().Type != Newline {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		expr = e
	}
	if err := p.expectStmtEnd(); err != nil {
		return nil, err
	}
	return &Return{Expr: expr}, nil
}

// parseSimpleOrAssignStmt parses an assignment or a bare expression
// statement. It always parses a full expression first: none of Mython's
// expression-level operators include a bare '=', so the parser naturally
// stops right before one if present, with no lookahead trickery needed.
func (p *Parser) parseSimpleOrAssignStmt() (Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if isChar(p.cur(), '=') {
		target, ok := expr.(*VariableValue)
		if !ok {
			return nil, p.errHere("cannot assign to this expression")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectStmtEnd(); err != nil {
			return nil, err
		}
		if len(target.Ids) == 1 {
			return &Assignment{Name: target.Ids[0], Value: value}, nil
		}
		recv := &VariableValue{Ids: target.Ids[:len(target.Ids)-1], Line: target.Line, Col: target.Col}
		field := target.Ids[len(target.Ids)-1]
		return &FieldAssignment{Receiver: recv, Field: field, Value: value, Line: target.Line, Col: target.Col}, nil
	}
	if err := p.expectStmtEnd(); err != nil {
		return nil, err
	}
	return expr, nil
}

// ---- expressions (precedence, low to high) ----
// or > and > not > comparison (non-chaining) > + - > * / > unary - > postfix > primary

func (p *Parser) parseExpr() (Node, error) { return p.parseOr() }

func (p *Parser) parseOr() (Node, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == KwOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &Or{Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseAnd() (Node, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == KwAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = &And{Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseNot() (Node, error) {
	if p.cur().Type == KwNot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Not{Arg: arg}, nil
	}
	return p.parseComparison()
}

func matchCompareOp(t Token) (CompareOp, bool) {
	switch t.Type {
	case Eq:
		return CmpEq, true
	case NotEq:
		return CmpNotEq, true
	case LessOrEq:
		return CmpLessEq, true
	case GreaterOrEq:
		return CmpGreaterEq, true
	case Char:
		if t.Ch == '<' {
			return CmpLess, true
		}
		if t.Ch == '>' {
			return CmpGreater, true
		}
	}
	return 0, false
}

func (p *Parser) parseComparison() (Node, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if op, ok := matchCompareOp(p.cur()); ok {
		line, col := p.cur().Line, p.cur().Col
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &Comparison{Op: op, Lhs: lhs, Rhs: rhs, Line: line, Col: col}, nil
	}
	return lhs, nil
}

func (p *Parser) parseAdditive() (Node, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for isChar(p.cur(), '+') || isChar(p.cur(), '-') {
		op := p.cur().Ch
		line, col := p.cur().Line, p.cur().Col
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		if op == '+' {
			lhs = &Add{Lhs: lhs, Rhs: rhs, Line: line, Col: col}
		} else {
			lhs = &Sub{Lhs: lhs, Rhs: rhs, Line: line, Col: col}
		}
	}
	return lhs, nil
}

func (p *Parser) parseMultiplicative() (Node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for isChar(p.cur(), '*') || isChar(p.cur(), '/') {
		op := p.cur().Ch
		line, col := p.cur().Line, p.cur().Col
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == '*' {
			lhs = &Mult{Lhs: lhs, Rhs: rhs, Line: line, Col: col}
		} else {
			lhs = &Div{Lhs: lhs, Rhs: rhs, Line: line, Col: col}
		}
	}
	return lhs, nil
}

func (p *Parser) parseUnary() (Node, error) {
	if isChar(p.cur(), '-') {
		line, col := p.cur().Line, p.cur().Col
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryMinus{Arg: arg, Line: line, Col: col}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.cur()
	switch tok.Type {
	case Number:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &NumberLit{Value: tok.Num}, nil
	case String:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &StringLit{Value: tok.Str}, nil
	case True:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &BoolLit{Value: true}, nil
	case False:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &BoolLit{Value: false}, nil
	case None:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &NoneLit{}, nil
	case Id:
		return p.parseIdentLead()
	case Char:
		if tok.Ch == '(' {
			if err := p.advance(); err != nil {
				return nil, err
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectChar(')'); err != nil {
				return nil, err
			}
			return e, nil
		}
	}
	return nil, p.errHere(fmt.Sprintf("unexpected token %s", tok))
}

// parseIdentLead parses everything that can start with an identifier: the
// `str(expr)` special form, a bare call (`Name(args)` == NewInstance, spec
// §9), a dotted read (`a.b.c`), or a dotted-receiver method call
// (`a.b.c(args)` == MethodCall(VariableValue([a,b]), "c", args)).
func (p *Parser) parseIdentLead() (Node, error) {
	tok := p.cur()
	name := tok.Str
	line, col := tok.Line, tok.Col
	if err := p.advance(); err != nil {
		return nil, err
	}

	if name == "str" && isChar(p.cur(), '(') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return &Stringify{Arg: arg}, nil
	}

	if isChar(p.cur(), '(') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &NewInstanceExpr{ClassName: name, Args: args, Line: line, Col: col}, nil
	}

	ids := []string{name}
	for isChar(p.cur(), '.') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		mtok := p.cur()
		if mtok.Type != Id {
			return nil, p.errHere("expected a field or method name after '.'")
		}
		mname := mtok.Str
		if err := p.advance(); err != nil {
			return nil, err
		}
		if isChar(p.cur(), '(') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			recv := &VariableValue{Ids: ids, Line: line, Col: col}
			return &MethodCall{Receiver: recv, Method: mname, Args: args, Line: line, Col: col}, nil
		}
		ids = append(ids, mname)
	}
	return &VariableValue{Ids: ids, Line: line, Col: col}, nil
}

// parseArgs parses a comma-separated expression list up to and including
// the closing ')'; the opening '(' has already been consumed.
func (p *Parser) parseArgs() ([]Node, error) {
	var args []Node
	if isChar(p.cur(), ')') {
		return args, p.advance()
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if isChar(p.cur(), ',') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}
