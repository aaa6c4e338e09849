package parser

import (
	"github.com/funvibe/lolc/internal/ast"
)

type operatorForm struct {
	words []string
	op    ast.Operator
}

// BOTH SAEM precedes BOTH OF so the longer keyword wins on BOTH.
var binaryForms = []operatorForm{
	{[]string{"SUM", "OF"}, ast.OpSum},
	{[]string{"DIFF", "OF"}, ast.OpDiff},
	{[]string{"PRODUKT", "OF"}, ast.OpProdukt},
	{[]string{"QUOSHUNT", "OF"}, ast.OpQuoshunt},
	{[]string{"MOD", "OF"}, ast.OpMod},
	{[]string{"BIGGR", "OF"}, ast.OpBiggr},
	{[]string{"SMALLR", "OF"}, ast.OpSmallr},
	{[]string{"BOTH", "SAEM"}, ast.OpSaem},
	{[]string{"BOTH", "OF"}, ast.OpBoth},
	{[]string{"EITHER", "OF"}, ast.OpEither},
	{[]string{"WON", "OF"}, ast.OpWon},
	{[]string{"DIFFRINT"}, ast.OpDiffrint},
}

var variadicForms = []operatorForm{
	{[]string{"ALL", "OF"}, ast.OpAll},
	{[]string{"ANY", "OF"}, ast.OpAny},
	{[]string{"SMOOSH"}, ast.OpSmoosh},
}

func (p *Parser) matchOperator(forms []operatorForm) (ast.Operator, bool) {
	for _, f := range forms {
		if p.matchWords(f.words...) {
			return f.op, true
		}
	}
	return 0, false
}

// parseBinaryExpression parses <op> <expr> [AN] <expr>.
func (p *Parser) parseBinaryExpression() ast.Expression {
	start := p.enter()
	tok := p.peek()
	op, ok := p.matchOperator(binaryForms)
	if !ok {
		p.fail(start, "Expected binary operator")
		return nil
	}
	expr := &ast.BinaryExpression{Token: tok, Operator: op}

	expr.Left = p.parseExpression()
	if expr.Left == nil {
		p.fail(start, "Expected first operand for "+op.String())
		return nil
	}

	p.matchWords("AN")

	expr.Right = p.parseExpression()
	if expr.Right == nil {
		p.fail(start, "Expected second operand for "+op.String())
		return nil
	}

	p.succeed()
	return expr
}

func (p *Parser) parseNotExpression() ast.Expression {
	start := p.enter()
	if !p.checkWord("NOT") {
		p.fail(start, "Expected NOT keyword")
		return nil
	}
	expr := &ast.NotExpression{Token: p.advance()}
	expr.Operand = p.parseExpression()
	if expr.Operand == nil {
		p.fail(start, "Expected operand for NOT")
		return nil
	}
	p.succeed()
	return expr
}

// parseVariadicExpression parses <op> <expr> ([AN] <expr>)* [MKAY]. MKAY
// may be left out when the statement ends right after the last operand.
func (p *Parser) parseVariadicExpression() ast.Expression {
	start := p.enter()
	tok := p.peek()
	op, ok := p.matchOperator(variadicForms)
	if !ok {
		p.fail(start, "Expected variadic operator")
		return nil
	}
	expr := &ast.VariadicExpression{Token: tok, Operator: op}

	first := p.parseExpression()
	if first == nil {
		p.fail(start, "Expected operand for "+op.String())
		return nil
	}
	expr.Operands = append(expr.Operands, first)

	for {
		save := p.current
		hadAN := p.matchWords("AN")
		if p.matchWords("MKAY") {
			break
		}
		if p.atStatementEnd() {
			p.current = save
			if hadAN {
				p.fail(start, "Expected operand after AN")
				return nil
			}
			break
		}
		operand := p.parseExpression()
		if operand == nil {
			if hadAN {
				p.fail(start, "Expected operand after AN")
				return nil
			}
			p.current = save
			break
		}
		expr.Operands = append(expr.Operands, operand)
	}

	p.succeed()
	return expr
}

// parseMaekExpression parses MAEK <expr> A <type>.
func (p *Parser) parseMaekExpression() ast.Expression {
	start := p.enter()
	if !p.checkWord("MAEK") {
		p.fail(start, "Expected MAEK keyword")
		return nil
	}
	expr := &ast.MaekExpression{Token: p.advance()}

	expr.Value = p.parseExpression()
	if expr.Value == nil {
		p.fail(start, "Expected expression to cast")
		return nil
	}
	if !p.matchWords("A") {
		p.fail(start, "Expected A keyword for MAEK")
		return nil
	}
	expr.Type = p.parseTypeName()
	if expr.Type == nil {
		p.fail(start, "Expected valid type for MAEK")
		return nil
	}

	p.succeed()
	return expr
}
