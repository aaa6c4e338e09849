package parser

import (
	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/token"
)

// parseCallExpression parses I IZ <name> [YR <expr> [AN YR <expr>]*] MKAY.
func (p *Parser) parseCallExpression() ast.Expression {
	start := p.enter()
	tok := p.peek()
	if !p.matchWords("I", "IZ") {
		p.fail(start, "Expected I IZ keyword to call function")
		return nil
	}
	name, ok := p.consume(token.IDENT)
	if !ok {
		p.fail(start, "Expected function name after I IZ")
		return nil
	}
	expr := &ast.CallExpression{Token: tok, Function: &ast.Identifier{Token: name, Value: name.Literal}}

	if p.matchWords("YR") {
		for {
			arg := p.parseExpression()
			if arg == nil {
				p.fail(start, "Expected argument after YR")
				return nil
			}
			expr.Arguments = append(expr.Arguments, arg)
			if !p.matchWords("AN", "YR") {
				break
			}
		}
	}

	if !p.matchWords("MKAY") {
		p.fail(start, "Expected MKAY to close function call")
		return nil
	}

	p.succeed()
	return expr
}
