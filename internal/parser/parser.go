// Package parser implements a hand-written recursive-descent parser with
// single-token lookahead over the lexer's token stream, producing a typed
// AST.
package parser

import (
	"github.com/cwbudde/xd/internal/ast"
	"github.com/cwbudde/xd/internal/lexer"
	"github.com/cwbudde/xd/internal/xderrors"
)

// Parser holds the lexer and a single lookahead token. Once an error is
// recorded, every subsequent parse method is a no-op that returns zero
// values, so callers never need to thread an error return through every
// call — they check Err() once after ParseProgram returns.
type Parser struct {
	l   *lexer.Lexer
	cur lexer.Token
	err *xderrors.XdError
}

// New creates a Parser over l, primed with the first token.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	return p
}

// Err returns the first error encountered while parsing, or nil.
func (p *Parser) Err() *xderrors.XdError {
	return p.err
}

func (p *Parser) advance() {
	if p.err != nil {
		return
	}
	tok, err := p.l.NextToken()
	if err != nil {
		p.err = err
		return
	}
	p.cur = tok
}

// maybe consumes and returns the current token if it matches kind.
func (p *Parser) maybe(kind lexer.TokenType) (lexer.Token, bool) {
	if p.err != nil || p.cur.Type != kind {
		return lexer.Token{}, false
	}
	tok := p.cur
	p.advance()
	return tok, true
}

// expect consumes the current token if it matches kind, else records errKind
// at the current position and returns the zero Token.
func (p *Parser) expect(kind lexer.TokenType, errKind xderrors.Kind, what string) lexer.Token {
	if p.err != nil {
		return lexer.Token{}
	}
	if p.cur.Type != kind {
		p.err = xderrors.New(errKind, p.cur.Pos, "expected %s, got %s", what, p.cur.Type)
		return lexer.Token{}
	}
	tok := p.cur
	p.advance()
	return tok
}

// ParseProgram parses the whole token stream into a Program, stopping at
// the first error.
func (p *Parser) ParseProgram() (*ast.Program, *xderrors.XdError) {
	prog := &ast.Program{}
	for p.err == nil && p.cur.Type != lexer.ETX {
		stmt := p.parseStatement()
		if p.err != nil {
			return nil, p.err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	if p.err != nil {
		return nil, p.err
	}
	return prog, nil
}

func (p *Parser) parseStatement() ast.Statement {
	if p.cur.Type == lexer.FUNCTION {
		return p.parseFunctionDef()
	}
	return p.parseBlockStatement()
}

func (p *Parser) parseBlockStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.VALUE:
		return p.parseVarDecl()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOREACH:
		return p.parseForeach()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IDENTIFIER:
		return p.parseIdentifierStmt()
	default:
		if p.err == nil {
			p.err = xderrors.New(xderrors.KindUnexpectedToken, p.cur.Pos, "unexpected token %s", p.cur.Type)
		}
		return nil
	}
}

func (p *Parser) parseFunctionDef() *ast.FunctionDefinition {
	tok := p.cur
	p.advance() // 'function'
	nameTok := p.expect(lexer.IDENTIFIER, xderrors.KindExpectedFunctionName, "function name")
	p.expect(lexer.LPAREN, xderrors.KindExpectedLParen, "'('")
	params := p.parseParameters()
	p.expect(lexer.RPAREN, xderrors.KindExpectedRParen, "')'")
	block := p.parseBlock()
	if p.err != nil {
		return nil
	}
	return &ast.FunctionDefinition{Token: tok, Name: nameTok.Literal, Parameters: params, Block: block}
}

func (p *Parser) parseParameters() []*ast.Identifier {
	var params []*ast.Identifier
	if p.err != nil || p.cur.Type == lexer.RPAREN {
		return params
	}
	tok := p.expect(lexer.IDENTIFIER, xderrors.KindExpectedParameter, "parameter name")
	if p.err != nil {
		return nil
	}
	params = append(params, &ast.Identifier{Token: tok, Name: tok.Literal})
	for {
		if _, ok := p.maybe(lexer.COMMA); !ok {
			break
		}
		tok := p.expect(lexer.IDENTIFIER, xderrors.KindExpectedParameter, "parameter name after ','")
		if p.err != nil {
			return nil
		}
		params = append(params, &ast.Identifier{Token: tok, Name: tok.Literal})
	}
	return params
}

func (p *Parser) parseBlock() *ast.Block {
	p.expect(lexer.LBRACE, xderrors.KindExpectedLBrace, "'{'")
	var stmts []ast.Statement
	for p.err == nil && p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.ETX {
		stmt := p.parseBlockStatement()
		if p.err != nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}
	p.expect(lexer.RBRACE, xderrors.KindExpectedRBrace, "'}'")
	if p.err != nil {
		return nil
	}
	return &ast.Block{Statements: stmts}
}

func (p *Parser) parseVarDecl() *ast.VariableDeclaration {
	tok := p.cur
	p.advance() // 'value'
	nameTok := p.expect(lexer.IDENTIFIER, xderrors.KindExpectedVariableName, "variable name")
	if p.err != nil {
		return nil
	}
	var valueExpr ast.Expr
	if _, ok := p.maybe(lexer.EQUAL); ok {
		valueExpr = p.parseExpression()
		if p.err != nil {
			return nil
		}
	}
	return &ast.VariableDeclaration{Token: tok, Name: nameTok.Literal, ValueExpr: valueExpr}
}

func (p *Parser) parseIf() *ast.IfStatement {
	tok := p.cur
	p.advance() // 'if'
	cond := p.parseExpression()
	if p.err != nil {
		return nil
	}
	block := p.parseBlock()
	if p.err != nil {
		return nil
	}
	return &ast.IfStatement{Token: tok, Condition: cond, Block: block}
}

func (p *Parser) parseWhile() *ast.WhileStatement {
	tok := p.cur
	p.advance() // 'while'
	cond := p.parseExpression()
	if p.err != nil {
		return nil
	}
	block := p.parseBlock()
	if p.err != nil {
		return nil
	}
	return &ast.WhileStatement{Token: tok, Condition: cond, Block: block}
}

func (p *Parser) parseForeach() *ast.ForeachStatement {
	tok := p.cur
	p.advance() // 'foreach'
	varTok := p.expect(lexer.IDENTIFIER, xderrors.KindExpectedLoopVariable, "loop variable")
	p.expect(lexer.IN, xderrors.KindExpectedIn, "'in'")
	iterable := p.parseExpression()
	if p.err != nil {
		return nil
	}
	block := p.parseBlock()
	if p.err != nil {
		return nil
	}
	return &ast.ForeachStatement{Token: tok, Variable: varTok.Literal, Iterable: iterable, Block: block}
}

func (p *Parser) parseReturn() *ast.ReturnStatement {
	tok := p.cur
	p.advance() // 'return'
	var valueExpr ast.Expr
	if canStartExpression(p.cur.Type) {
		valueExpr = p.parseExpression()
		if p.err != nil {
			return nil
		}
	}
	return &ast.ReturnStatement{Token: tok, ValueExpr: valueExpr}
}

func (p *Parser) parseIdentifierStmt() ast.Statement {
	idTok := p.cur
	p.advance()

	if _, ok := p.maybe(lexer.LPAREN); ok {
		args := p.parseArgs()
		p.expect(lexer.RPAREN, xderrors.KindExpectedRParen, "')'")
		if p.err != nil {
			return nil
		}
		call := &ast.FunctionCall{Token: idTok, Name: idTok.Literal, Args: args}
		expr := p.parseDotChain(call)
		if p.err != nil {
			return nil
		}
		return &ast.ExprStatement{Token: idTok, Expr: expr}
	}

	if _, ok := p.maybe(lexer.EQUAL); ok {
		valueExpr := p.parseExpression()
		if p.err != nil {
			return nil
		}
		return &ast.Assignment{Token: idTok, Name: idTok.Literal, ValueExpr: valueExpr}
	}

	p.err = xderrors.New(xderrors.KindExpectedAssignOrCall, idTok.Pos,
		"expected '(' or '=' after identifier %q, got %s", idTok.Literal, p.cur.Type)
	return nil
}

// parseArgs parses a call's comma-separated argument list, stopping before
// the closing ')'.
func (p *Parser) parseArgs() []ast.Expr {
	var args []ast.Expr
	if p.err != nil || p.cur.Type == lexer.RPAREN {
		return args
	}
	args = append(args, p.parseExpression())
	for p.err == nil {
		if _, ok := p.maybe(lexer.COMMA); !ok {
			break
		}
		if !canStartExpression(p.cur.Type) {
			p.err = xderrors.New(xderrors.KindExpectedArgument, p.cur.Pos, "expected argument after ','")
			return nil
		}
		args = append(args, p.parseExpression())
	}
	if p.err != nil {
		return nil
	}
	return args
}

func canStartExpression(t lexer.TokenType) bool {
	switch t {
	case lexer.IDENTIFIER, lexer.INT_CONST, lexer.FLOAT_CONST, lexer.STRING,
		lexer.TRUE_CONST, lexer.FALSE_CONST, lexer.LPAREN, lexer.MINUS, lexer.NOT:
		return true
	default:
		return false
	}
}
