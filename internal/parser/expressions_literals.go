package parser

import (
	"strconv"

	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/config"
	"github.com/funvibe/lolc/internal/token"
)

func (p *Parser) parseNumberLiteral() ast.Expression {
	start := p.enter()
	if !p.check(token.NUMBER) {
		p.fail(start, "Expected NUMBER value")
		return nil
	}
	value, err := strconv.ParseInt(p.peek().Literal, 10, 64)
	if err != nil {
		p.fail(start, "Expected NUMBER value in range")
		return nil
	}
	lit := &ast.NumberLiteral{Token: p.advance(), Value: value}
	p.succeed()
	return lit
}

func (p *Parser) parseNumbarLiteral() ast.Expression {
	start := p.enter()
	if !p.check(token.NUMBAR) {
		p.fail(start, "Expected NUMBAR value")
		return nil
	}
	value, err := strconv.ParseFloat(p.peek().Literal, 64)
	if err != nil {
		p.fail(start, "Expected NUMBAR value in range")
		return nil
	}
	lit := &ast.NumbarLiteral{Token: p.advance(), Value: value}
	p.succeed()
	return lit
}

func (p *Parser) parseYarnLiteral() ast.Expression {
	start := p.enter()
	tok, ok := p.consume(token.YARN)
	if !ok {
		p.fail(start, "Expected YARN value")
		return nil
	}
	p.succeed()
	return &ast.YarnLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseTroofLiteral() ast.Expression {
	start := p.enter()
	tok, ok := p.consume(token.TROOF)
	if !ok {
		p.fail(start, "Expected TROOF value")
		return nil
	}
	p.succeed()
	return &ast.TroofLiteral{Token: tok, Value: tok.Literal == "WIN"}
}

func (p *Parser) parseVariableReference() ast.Expression {
	start := p.enter()
	tok, ok := p.consume(token.IDENT)
	if !ok {
		p.fail(start, "Expected variable identifier")
		return nil
	}
	p.succeed()
	return &ast.VariableReference{Token: tok, Name: tok.Literal}
}

func (p *Parser) parseItReference() ast.Expression {
	start := p.enter()
	if !p.checkWord(config.ImplicitVarName) {
		p.fail(start, "Expected IT keyword")
		return nil
	}
	tok := p.advance()
	p.succeed()
	return &ast.ItReference{Token: tok}
}
