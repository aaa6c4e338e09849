package parser

import (
	"github.com/funvibe/lolc/internal/ast"
)

// parseExpression tries every expression form in order.
func (p *Parser) parseExpression() ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	start := p.enter()
	if p.depth > MaxRecursionDepth {
		p.fail(start, "Expression too complex: recursion depth limit exceeded")
		return nil
	}

	alternatives := []func() ast.Expression{
		p.parseNumberLiteral,
		p.parseNumbarLiteral,
		p.parseYarnLiteral,
		p.parseTroofLiteral,
		p.parseVariableReference,
		p.parseItReference,
		p.parseBinaryExpression,
		p.parseNotExpression,
		p.parseVariadicExpression,
		p.parseMaekExpression,
		p.parseCallExpression,
	}

	for _, alt := range alternatives {
		if expr := alt(); expr != nil {
			p.succeed()
			return expr
		}
	}

	p.fail(start, "Expected valid expression")
	return nil
}

// parseLiteral accepts only literal values (OMG labels).
func (p *Parser) parseLiteral() ast.Expression {
	for _, alt := range []func() ast.Expression{
		p.parseNumberLiteral,
		p.parseNumbarLiteral,
		p.parseYarnLiteral,
		p.parseTroofLiteral,
	} {
		if expr := alt(); expr != nil {
			return expr
		}
	}
	return nil
}
