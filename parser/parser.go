// Package parser implements GLang's recursive-descent, precedence
// climbing parser, per spec.md §4.C.
package parser

import (
	"strconv"

	"github.com/george-lang/glang/ast"
	"github.com/george-lang/glang/diag"
	"github.com/george-lang/glang/token"
)

// Parser walks a fixed token slice with a cursor and a reverse(n)
// operation used to backtrack from speculative parses, mirroring the
// original_source parser's advance/reverse pair.
type Parser struct {
	toks []token.Token
	pos  int
}

// New constructs a Parser positioned at the first token.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks, pos: 0}
}

// Parse parses the whole token stream into a Program.
func Parse(toks []token.Token) (*ast.Program, *diag.Error) {
	p := New(toks)
	start := p.cur().Start

	stmts, err := p.statements()
	if err != nil {
		return nil, err
	}

	if !p.cur().Is(token.EOF) {
		return nil, diag.New("expected operator or bracket", p.cur().Start, p.cur().End).
			WithHelp("add one of the following: '+', '-', '*', '/', or '}'").WithKind(diag.Syntactic)
	}

	return &ast.Program{Span: ast.NewSpan(start, p.cur().End), Statements: stmts}, nil
}

func (p *Parser) cur() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() token.Token {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return p.cur()
}

func (p *Parser) reverse(n int) token.Token {
	p.pos -= n
	if p.pos < 0 {
		p.pos = 0
	}
	return p.cur()
}

func (p *Parser) skipNewlines() {
	for p.cur().Is(token.NEWLINE) {
		p.advance()
	}
}

// statements parses NEWLINE* statement (NEWLINE+ statement)* NEWLINE*.
// A statement that ends with a closing '}' may be followed directly by
// the next statement, with no NEWLINE in between.
func (p *Parser) statements() ([]ast.Node, *diag.Error) {
	p.skipNewlines()

	var out []ast.Node
	if p.cur().Is(token.EOF) || p.cur().Is(token.RBRACE) {
		return out, nil
	}

	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	out = append(out, stmt)

	for p.cur().Is(token.NEWLINE) || (p.pos > 0 && p.toks[p.pos-1].Is(token.RBRACE)) {
		p.skipNewlines()
		if p.cur().Is(token.EOF) || p.cur().Is(token.RBRACE) {
			break
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}

	p.skipNewlines()
	return out, nil
}

// block parses a brace-delimited `{ statements }` body used by control
// flow constructs and function bodies, and returns it as a List node
// reused as a statement sequence, per spec.md §4.C's "Output" note.
func (p *Parser) block() (ast.Node, *diag.Error) {
	start := p.cur().Start
	if !p.cur().Is(token.LBRACE) {
		return nil, diag.New("expected '{'", p.cur().Start, p.cur().End).
			WithHelp("open the body with '{'").WithKind(diag.Syntactic)
	}
	p.advance()

	stmts, err := p.statements()
	if err != nil {
		return nil, err
	}

	if !p.cur().Is(token.RBRACE) {
		return nil, diag.New("expected '}'", p.cur().Start, p.cur().End).
			WithHelp("close the body with '}'").WithKind(diag.Syntactic)
	}
	end := p.cur().End
	p.advance()

	return &ast.List{Span: ast.NewSpan(start, end), Elements: stmts, IsBlock: true}, nil
}

func (p *Parser) statement() (ast.Node, *diag.Error) {
	start := p.cur().Start

	switch {
	case p.cur().Matches(token.KEYWORD, "give"):
		p.advance()
		save := p.pos
		val, err := p.tryExpr()
		if err != nil {
			p.pos = save
			val = nil
		}
		return &ast.Return{Span: ast.NewSpan(start, p.cur().Start), Value: val}, nil

	case p.cur().Matches(token.KEYWORD, "next"):
		end := p.cur().End
		p.advance()
		return &ast.Continue{Span: ast.NewSpan(start, end)}, nil

	case p.cur().Matches(token.KEYWORD, "leave"):
		end := p.cur().End
		p.advance()
		return &ast.Break{Span: ast.NewSpan(start, end)}, nil

	case p.cur().Matches(token.KEYWORD, "fetch"):
		p.advance()
		path, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.Import{Span: ast.NewSpan(start, path.End()), Path: path}, nil
	}

	e, err := p.expr()
	if err != nil {
		return nil, diag.New("expected keyword, object, or operator", p.cur().Start, p.cur().End).
			WithHelp("add any of the following: 'give', 'next', 'leave', 'obj', 'not', 'if', 'walk', 'while', 'func', int, float, identifier, '+', '-', '(', or '['").
			WithKind(diag.Syntactic)
	}
	return e, nil
}

// tryExpr attempts to parse an expression, reporting failure through
// the returned error rather than panicking — used by the optional
// "give expr?" form.
func (p *Parser) tryExpr() (ast.Node, *diag.Error) {
	return p.expr()
}

func (p *Parser) expr() (ast.Node, *diag.Error) {
	start := p.cur().Start

	if p.cur().Matches(token.KEYWORD, "obj") {
		p.advance()
		name, err := p.expectIdent("add a name for this object like 'hotdog'")
		if err != nil {
			return nil, err
		}
		if err := p.expectEq(name.Lexeme); err != nil {
			return nil, err
		}
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.VarDecl{Span: ast.NewSpan(start, val.End()), Name: name.Lexeme, Value: val}, nil
	}

	if p.cur().Matches(token.KEYWORD, "const") {
		p.advance()
		name, err := p.expectIdent("add a name for this constant like 'hotdog'")
		if err != nil {
			return nil, err
		}
		if err := p.expectEq(name.Lexeme); err != nil {
			return nil, err
		}
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.ConstDecl{Span: ast.NewSpan(start, val.End()), Name: name.Lexeme, Value: val}, nil
	}

	if p.cur().Is(token.IDENT) && p.peekIs(token.EQ) {
		name := p.cur()
		p.advance() // ident
		p.advance() // '='
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.VarReassign{Span: ast.NewSpan(start, val.End()), Name: name.Lexeme, Value: val}, nil
	}

	return p.logicOr()
}

func (p *Parser) peekIs(k token.Kind) bool {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1].Is(k)
	}
	return false
}

func (p *Parser) expectIdent(help string) (token.Token, *diag.Error) {
	if !p.cur().Is(token.IDENT) {
		return token.Token{}, diag.New("expected identifier", p.cur().Start, p.cur().End).
			WithHelp(help).WithKind(diag.Syntactic)
	}
	tok := p.cur()
	p.advance()
	return tok, nil
}

func (p *Parser) expectEq(name string) *diag.Error {
	if !p.cur().Is(token.EQ) {
		return diag.New("expected '='", p.cur().Start, p.cur().End).
			WithHelp("add a '=' to set the value of the variable '" + name + "'").WithKind(diag.Syntactic)
	}
	p.advance()
	return nil
}

func (p *Parser) logicOr() (ast.Node, *diag.Error) {
	return p.binaryKeyword(p.logicAnd, "or")
}

func (p *Parser) logicAnd() (ast.Node, *diag.Error) {
	return p.binaryKeyword(p.comparison, "and")
}

func (p *Parser) comparison() (ast.Node, *diag.Error) {
	if p.cur().Matches(token.KEYWORD, "not") {
		opTok := p.cur()
		p.advance()
		operand, err := p.comparison()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Span: ast.NewSpan(opTok.Start, operand.End()), Op: opTok, Operand: operand}, nil
	}

	return p.binaryKind(p.arith, token.EE, token.NE, token.LT, token.GT, token.LTE, token.GTE)
}

func (p *Parser) arith() (ast.Node, *diag.Error) {
	return p.binaryKind(p.term, token.PLUS, token.MINUS)
}

func (p *Parser) term() (ast.Node, *diag.Error) {
	return p.binaryKind(p.factor, token.MUL, token.DIV, token.MOD)
}

func (p *Parser) factor() (ast.Node, *diag.Error) {
	if p.cur().Is(token.PLUS) || p.cur().Is(token.MINUS) {
		opTok := p.cur()
		p.advance()
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Span: ast.NewSpan(opTok.Start, operand.End()), Op: opTok, Operand: operand}, nil
	}
	return p.power()
}

// power is right-associative: call ("^" factor)*, parsed by recursing
// into factor on the right rather than looping.
func (p *Parser) power() (ast.Node, *diag.Error) {
	left, err := p.call()
	if err != nil {
		return nil, err
	}

	if p.cur().Is(token.POW) {
		opTok := p.cur()
		p.advance()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Span: ast.NewSpan(left.Start(), right.End()), Left: left, Op: opTok, Right: right}, nil
	}

	return left, nil
}

func (p *Parser) call() (ast.Node, *diag.Error) {
	callee, err := p.atom()
	if err != nil {
		return nil, err
	}

	for p.cur().Is(token.LPAREN) {
		p.advance()
		var args []ast.Node

		if !p.cur().Is(token.RPAREN) {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			for p.cur().Is(token.COMMA) {
				p.advance()
				arg, err := p.expr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
		}

		if !p.cur().Is(token.RPAREN) {
			return nil, diag.New("expected ')' or ','", p.cur().Start, p.cur().End).
				WithHelp("close the argument list with ')'").WithKind(diag.Syntactic)
		}
		end := p.cur().End
		p.advance()

		callee = &ast.Call{Span: ast.NewSpan(callee.Start(), end), Callee: callee, Args: args}
	}

	return callee, nil
}

func (p *Parser) atom() (ast.Node, *diag.Error) {
	tok := p.cur()

	switch {
	case tok.Is(token.INT) || tok.Is(token.FLOAT):
		p.advance()
		val, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &ast.Number{Span: ast.NewSpan(tok.Start, tok.End), Value: val}, nil

	case tok.Is(token.STR):
		p.advance()
		return &ast.Str{Span: ast.NewSpan(tok.Start, tok.End), Value: tok.Lexeme}, nil

	case tok.Is(token.IDENT):
		p.advance()
		return &ast.VarAccess{Span: ast.NewSpan(tok.Start, tok.End), Name: tok.Lexeme}, nil

	case tok.Is(token.LPAREN):
		p.advance()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if !p.cur().Is(token.RPAREN) {
			return nil, diag.New("expected ')'", p.cur().Start, p.cur().End).
				WithHelp("close the grouped expression with ')'").WithKind(diag.Syntactic)
		}
		p.advance()
		return inner, nil

	case tok.Is(token.LSQUARE):
		return p.listExpr()

	case tok.Matches(token.KEYWORD, "if"):
		return p.ifExpr()

	case tok.Matches(token.KEYWORD, "walk"):
		return p.forExpr()

	case tok.Matches(token.KEYWORD, "while"):
		return p.whileExpr()

	case tok.Matches(token.KEYWORD, "try"):
		return p.tryExceptExpr()

	case tok.Matches(token.KEYWORD, "func"):
		return p.funcDef()
	}

	return nil, diag.New("expected object, keyword, function, or type", tok.Start, tok.End).
		WithHelp("add any of the following: 'obj', 'if', 'walk', 'while', 'func', integer, float, identifier, '+', '-', '(' or '['").
		WithKind(diag.Syntactic)
}

func (p *Parser) listExpr() (ast.Node, *diag.Error) {
	start := p.cur().Start
	p.advance() // consume '['

	var elems []ast.Node
	if !p.cur().Is(token.RSQUARE) {
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)

		for p.cur().Is(token.COMMA) {
			p.advance()
			e, err := p.expr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
	}

	if !p.cur().Is(token.RSQUARE) {
		return nil, diag.New("expected ']' or ','", p.cur().Start, p.cur().End).
			WithHelp("close the list with ']'").WithKind(diag.Syntactic)
	}
	end := p.cur().End
	p.advance()

	return &ast.List{Span: ast.NewSpan(start, end), Elements: elems}, nil
}

func (p *Parser) ifExpr() (ast.Node, *diag.Error) {
	start := p.cur().Start
	var cases []ast.IfCase

	p.advance() // 'if'
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.cur().Matches(token.KEYWORD, "then") {
		p.advance()
	}
	body, discard, err := p.clauseBody()
	if err != nil {
		return nil, err
	}
	cases = append(cases, ast.IfCase{Cond: cond, Body: body, DiscardResult: discard})

	for p.cur().Matches(token.KEYWORD, "alsoif") {
		p.advance()
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.cur().Matches(token.KEYWORD, "then") {
			p.advance()
		}
		body, discard, err := p.clauseBody()
		if err != nil {
			return nil, err
		}
		cases = append(cases, ast.IfCase{Cond: cond, Body: body, DiscardResult: discard})
	}

	end := cases[len(cases)-1].Body.End()
	var elseCase *ast.ElseCase
	if p.cur().Matches(token.KEYWORD, "otherwise") {
		p.advance()
		body, discard, err := p.clauseBody()
		if err != nil {
			return nil, err
		}
		elseCase = &ast.ElseCase{Body: body, DiscardResult: discard}
		end = body.End()
	}

	return &ast.If{Span: ast.NewSpan(start, end), Cases: cases, Else: elseCase}, nil
}

// clauseBody parses either a brace-delimited block (result discarded,
// since block statement sequences are used for side effects) or a
// single `->` expression (its value is the clause's result).
func (p *Parser) clauseBody() (ast.Node, bool, *diag.Error) {
	if p.cur().Is(token.ARROW) {
		p.advance()
		e, err := p.expr()
		if err != nil {
			return nil, false, err
		}
		return e, false, nil
	}
	body, err := p.block()
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (p *Parser) forExpr() (ast.Node, *diag.Error) {
	start := p.cur().Start
	p.advance() // 'walk'

	name, err := p.expectIdent("name the loop variable, like 'walk i through 0 to 10'")
	if err != nil {
		return nil, err
	}

	if !p.cur().Matches(token.KEYWORD, "through") {
		return nil, diag.New("expected 'through'", p.cur().Start, p.cur().End).
			WithHelp("use 'walk " + name.Lexeme + " through <start> to <end>'").WithKind(diag.Syntactic)
	}
	p.advance()

	startExpr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if !(p.cur().Is(token.IDENT) && p.cur().Lexeme == "to") {
		return nil, diag.New("expected 'to'", p.cur().Start, p.cur().End).
			WithHelp("bound the range with 'to', e.g. 'walk " + name.Lexeme + " through 0 to 10'").
			WithKind(diag.Syntactic)
	}
	p.advance()

	endExpr, err := p.expr()
	if err != nil {
		return nil, err
	}

	var stepExpr ast.Node
	if p.cur().Matches(token.KEYWORD, "step") {
		p.advance()
		stepExpr, err = p.expr()
		if err != nil {
			return nil, err
		}
	}

	body, _, berr := p.clauseBody()
	if berr != nil {
		return nil, berr
	}

	return &ast.For{
		Span: ast.NewSpan(start, body.End()), Var: name.Lexeme,
		Start: startExpr, End: endExpr, Step: stepExpr, Body: body,
	}, nil
}

func (p *Parser) whileExpr() (ast.Node, *diag.Error) {
	start := p.cur().Start
	p.advance() // 'while'

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}

	body, _, berr := p.clauseBody()
	if berr != nil {
		return nil, berr
	}

	return &ast.While{Span: ast.NewSpan(start, body.End()), Cond: cond, Body: body}, nil
}

func (p *Parser) tryExceptExpr() (ast.Node, *diag.Error) {
	start := p.cur().Start
	p.advance() // 'try'

	tryBody, err := p.block()
	if err != nil {
		return nil, err
	}

	if !p.cur().Matches(token.KEYWORD, "except") {
		return nil, diag.New("expected 'except'", p.cur().Start, p.cur().End).
			WithHelp("every 'try' needs a matching 'except as <name> { ... }'").WithKind(diag.Syntactic)
	}
	p.advance()

	var errName string
	if p.cur().Is(token.IDENT) && p.cur().Lexeme == "as" {
		p.advance()
	}
	if p.cur().Is(token.IDENT) {
		errName = p.cur().Lexeme
		p.advance()
	}

	exceptBody, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.TryExcept{
		Span: ast.NewSpan(start, exceptBody.End()),
		TryBody: tryBody, ExceptBody: exceptBody, ErrorBindingVar: errName,
	}, nil
}

func (p *Parser) funcDef() (ast.Node, *diag.Error) {
	start := p.cur().Start
	p.advance() // 'func'

	var name string
	if p.cur().Is(token.IDENT) {
		name = p.cur().Lexeme
		p.advance()
	}

	if !p.cur().Is(token.LPAREN) {
		return nil, diag.New("expected '('", p.cur().Start, p.cur().End).
			WithHelp("open the parameter list with '('").WithKind(diag.Syntactic)
	}
	p.advance()

	var params []string
	if !p.cur().Is(token.RPAREN) {
		pname, err := p.expectIdent("name each parameter")
		if err != nil {
			return nil, err
		}
		params = append(params, pname.Lexeme)

		for p.cur().Is(token.COMMA) {
			p.advance()
			pname, err := p.expectIdent("name each parameter")
			if err != nil {
				return nil, err
			}
			params = append(params, pname.Lexeme)
		}
	}

	if !p.cur().Is(token.RPAREN) {
		return nil, diag.New("expected ')' or ','", p.cur().Start, p.cur().End).
			WithHelp("close the parameter list with ')'").WithKind(diag.Syntactic)
	}
	p.advance()

	autoReturn := false
	var body ast.Node
	var err *diag.Error
	if p.cur().Is(token.ARROW) {
		p.advance()
		body, err = p.expr()
		autoReturn = true
	} else {
		body, err = p.block()
	}
	if err != nil {
		return nil, err
	}

	return &ast.FuncDef{
		Span: ast.NewSpan(start, body.End()), Name: name,
		Params: params, Body: body, AutoReturn: autoReturn,
	}, nil
}

// binaryKind implements left-associative folding over token Kinds,
// the same shape as original_source's binary_operator helper.
func (p *Parser) binaryKind(next func() (ast.Node, *diag.Error), kinds ...token.Kind) (ast.Node, *diag.Error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for containsKind(kinds, p.cur().Kind) {
		opTok := p.cur()
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Span: ast.NewSpan(left.Start(), right.End()), Left: left, Op: opTok, Right: right}
	}

	return left, nil
}

// binaryKeyword is binaryKind specialized for KEYWORD-tagged operators
// like "and"/"or" that share token.KEYWORD as their Kind.
func (p *Parser) binaryKeyword(next func() (ast.Node, *diag.Error), words ...string) (ast.Node, *diag.Error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.cur().Kind == token.KEYWORD && containsWord(words, p.cur().Lexeme) {
		opTok := p.cur()
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Span: ast.NewSpan(left.Start(), right.End()), Left: left, Op: opTok, Right: right}
	}

	return left, nil
}

func containsKind(kinds []token.Kind, k token.Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

func containsWord(words []string, w string) bool {
	for _, want := range words {
		if want == w {
			return true
		}
	}
	return false
}
