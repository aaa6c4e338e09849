package parser

import (
	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/token"
)

// parseFunctionStatement parses
//
//	HOW IZ I <name> [ITZ <type>] [YR <arg> [ITZ <type>] [AN YR <arg> [ITZ <type>]]*]
//	  <stmts>
//	IF U SAY SO
func (p *Parser) parseFunctionStatement() ast.Statement {
	start := p.enter()
	tok := p.peek()
	if !p.matchWords("HOW", "IZ", "I") {
		p.fail(start, "Expected HOW IZ I keyword to define function")
		return nil
	}
	name, ok := p.consume(token.IDENT)
	if !ok {
		p.fail(start, "Expected function name after HOW IZ I")
		return nil
	}
	stmt := &ast.FunctionStatement{Token: tok, Name: &ast.Identifier{Token: name, Value: name.Literal}}

	if p.matchWords("ITZ") {
		stmt.ReturnType = p.parseTypeName()
		if stmt.ReturnType == nil {
			p.fail(start, "Expected valid return type for function")
			return nil
		}
	}

	if p.matchWords("YR") {
		for {
			param, ok := p.parseParameter()
			if !ok {
				p.fail(start, "Expected parameter name after YR")
				return nil
			}
			stmt.Parameters = append(stmt.Parameters, param)
			if !p.matchWords("AN", "YR") {
				break
			}
		}
	}

	if !p.endStatement() {
		p.fail(start, "Expected comma or newline to end statement")
		return nil
	}

	stmt.Body, ok = p.parseBlock(termSaySo)
	if !ok {
		p.fail(start, "Expected IF U SAY SO to close function "+name.Literal)
		return nil
	}
	p.matchWords(termSaySo...)

	p.succeed()
	return stmt
}

func (p *Parser) parseParameter() (*ast.Parameter, bool) {
	ident, ok := p.consume(token.IDENT)
	if !ok {
		return nil, false
	}
	param := &ast.Parameter{Name: &ast.Identifier{Token: ident, Value: ident.Literal}}
	if p.matchWords("ITZ") {
		param.Type = p.parseTypeName()
		if param.Type == nil {
			return nil, false
		}
	}
	return param, true
}
