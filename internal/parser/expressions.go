package parser

import (
	"github.com/cwbudde/xd/internal/ast"
	"github.com/cwbudde/xd/internal/lexer"
	"github.com/cwbudde/xd/internal/xderrors"
)

// parseExpression is the grammar's `expression` entry point, implementing
// the precedence ladder as a chain of leveled recursive descent functions
// (not a Pratt table): each level calls the next-tighter level and loops
// (or, for equality, takes at most one comparison) over its own operators.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.err == nil {
		tok, ok := p.maybe(lexer.OR)
		if !ok {
			break
		}
		right := p.parseLogicalAnd()
		if p.err != nil {
			return nil
		}
		left = &ast.BinaryOperation{Token: tok, Op: ast.OpOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseEquality()
	for p.err == nil {
		tok, ok := p.maybe(lexer.AND)
		if !ok {
			break
		}
		right := p.parseEquality()
		if p.err != nil {
			return nil
		}
		left = &ast.BinaryOperation{Token: tok, Op: ast.OpAnd, Left: left, Right: right}
	}
	return left
}

// parseEquality is non-associative: at most one "==" or "!=" comparison,
// never a chain.
func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	if p.err != nil {
		return nil
	}
	if tok, ok := p.maybe(lexer.EQ); ok {
		right := p.parseRelational()
		if p.err != nil {
			return nil
		}
		return &ast.BinaryOperation{Token: tok, Op: ast.OpEq, Left: left, Right: right}
	}
	if tok, ok := p.maybe(lexer.NOT_EQ); ok {
		right := p.parseRelational()
		if p.err != nil {
			return nil
		}
		return &ast.BinaryOperation{Token: tok, Op: ast.OpNotEq, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for p.err == nil {
		var op ast.Operator
		var tok lexer.Token
		var ok bool
		if tok, ok = p.maybe(lexer.LESS); ok {
			op = ast.OpLess
		} else if tok, ok = p.maybe(lexer.GREATER); ok {
			op = ast.OpGreater
		} else if tok, ok = p.maybe(lexer.LESS_EQ); ok {
			op = ast.OpLessEq
		} else if tok, ok = p.maybe(lexer.GREATER_EQ); ok {
			op = ast.OpGreaterEq
		} else {
			return left
		}
		right := p.parseAdditive()
		if p.err != nil {
			return nil
		}
		left = &ast.BinaryOperation{Token: tok, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.err == nil {
		var op ast.Operator
		var tok lexer.Token
		var ok bool
		if tok, ok = p.maybe(lexer.ADD); ok {
			op = ast.OpAdd
		} else if tok, ok = p.maybe(lexer.MINUS); ok {
			op = ast.OpMinus
		} else {
			return left
		}
		right := p.parseMultiplicative()
		if p.err != nil {
			return nil
		}
		left = &ast.BinaryOperation{Token: tok, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.err == nil {
		var op ast.Operator
		var tok lexer.Token
		var ok bool
		if tok, ok = p.maybe(lexer.MULT); ok {
			op = ast.OpMult
		} else if tok, ok = p.maybe(lexer.DIV); ok {
			op = ast.OpDiv
		} else {
			return left
		}
		right := p.parseUnary()
		if p.err != nil {
			return nil
		}
		left = &ast.BinaryOperation{Token: tok, Op: op, Left: left, Right: right}
	}
	return left
}

// parseUnary binds tighter than any binary operator and cannot be stacked:
// "--x" fails because the operand of a unary op is always a primary, never
// another unary.
func (p *Parser) parseUnary() ast.Expr {
	if tok, ok := p.maybe(lexer.MINUS); ok {
		right := p.parsePrimary()
		if p.err != nil {
			return nil
		}
		return &ast.UnaryOperation{Token: tok, Op: ast.OpMinus, Right: right}
	}
	if tok, ok := p.maybe(lexer.NOT); ok {
		right := p.parsePrimary()
		if p.err != nil {
			return nil
		}
		return &ast.UnaryOperation{Token: tok, Op: ast.OpNot, Right: right}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur.Type {
	case lexer.IDENTIFIER:
		return p.parseIdentifierOrCallExpr()
	case lexer.INT_CONST, lexer.FLOAT_CONST, lexer.TRUE_CONST, lexer.FALSE_CONST, lexer.STRING:
		return p.parseLiteral()
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN, xderrors.KindExpectedRParen, "')'")
		if p.err != nil {
			return nil
		}
		return expr
	default:
		if p.err == nil {
			p.err = xderrors.New(xderrors.KindExpectedExpression, p.cur.Pos, "expected expression, got %s", p.cur.Type)
		}
		return nil
	}
}

func (p *Parser) parseIdentifierOrCallExpr() ast.Expr {
	idTok := p.cur
	p.advance()

	if _, ok := p.maybe(lexer.LPAREN); ok {
		args := p.parseArgs()
		p.expect(lexer.RPAREN, xderrors.KindExpectedRParen, "')'")
		if p.err != nil {
			return nil
		}
		call := &ast.FunctionCall{Token: idTok, Name: idTok.Literal, Args: args}
		return p.parseDotChain(call)
	}

	ident := &ast.Identifier{Token: idTok, Name: idTok.Literal}
	return p.parseDotChain(ident)
}

func (p *Parser) parseLiteral() ast.Expr {
	tok := p.cur
	var lit *ast.Literal
	switch tok.Type {
	case lexer.INT_CONST:
		lit = &ast.Literal{Token: tok, Kind: ast.LitInt, IntVal: tok.IntVal}
	case lexer.FLOAT_CONST:
		lit = &ast.Literal{Token: tok, Kind: ast.LitFloat, FloatVal: tok.FloatVal}
	case lexer.TRUE_CONST:
		lit = &ast.Literal{Token: tok, Kind: ast.LitBool, BoolVal: true}
	case lexer.FALSE_CONST:
		lit = &ast.Literal{Token: tok, Kind: ast.LitBool, BoolVal: false}
	case lexer.STRING:
		lit = &ast.Literal{Token: tok, Kind: ast.LitString, StringVal: tok.Literal}
	}
	p.advance()
	return p.parseDotChain(lit)
}

// parseDotChain consumes { "." identifier [ "(" args ")" ] } left-associatively,
// producing an Identifier (attribute access) or FunctionCall (method call)
// whose Parent points at the previous expression. The parser accepts any
// identifier here; only "length"/"toUpper"/"toLower" are legal at
// evaluation time.
func (p *Parser) parseDotChain(base ast.Expr) ast.Expr {
	node := base
	for p.err == nil {
		_, ok := p.maybe(lexer.DOT)
		if !ok {
			break
		}
		nameTok := p.expect(lexer.IDENTIFIER, xderrors.KindExpectedIdentifierDot, "identifier after '.'")
		if p.err != nil {
			return nil
		}
		if _, ok := p.maybe(lexer.LPAREN); ok {
			args := p.parseArgs()
			p.expect(lexer.RPAREN, xderrors.KindExpectedRParen, "')'")
			if p.err != nil {
				return nil
			}
			node = &ast.FunctionCall{Token: nameTok, Name: nameTok.Literal, Args: args, Parent: node}
		} else {
			node = &ast.Identifier{Token: nameTok, Name: nameTok.Literal, Parent: node}
		}
	}
	return node
}
