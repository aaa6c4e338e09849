package parser

import (
	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/token"
)

var (
	termOIC    = []string{"OIC"}
	termMebbe  = []string{"MEBBE"}
	termNoWai  = []string{"NO", "WAI"}
	termOMG    = []string{"OMG"}
	termOMGWTF = []string{"OMGWTF"}
	termOutta  = []string{"IM", "OUTTA", "YR"}
	termSaySo  = []string{"IF", "U", "SAY", "SO"}
)

// parseIfStatement parses
//
//	O RLY?
//	  YA RLY <stmts>
//	  [MEBBE <expr> <stmts>]*
//	  [NO WAI <stmts>]
//	OIC
func (p *Parser) parseIfStatement() ast.Statement {
	start := p.enter()
	tok := p.peek()
	if !p.matchWords("O", "RLY") {
		p.fail(start, "Expected O RLY keyword to start conditional")
		return nil
	}
	if _, ok := p.consume(token.QUESTION); !ok {
		p.fail(start, "Expected ? after O RLY")
		return nil
	}
	if !p.endStatement() {
		p.fail(start, "Expected comma or newline to end statement")
		return nil
	}
	p.skipNewlines()

	stmt := &ast.IfStatement{Token: tok}
	if !p.matchWords("YA", "RLY") || !p.endStatement() {
		p.fail(start, "Expected YA RLY to open conditional branch")
		return nil
	}

	var ok bool
	stmt.Then, ok = p.parseBlock(termMebbe, termNoWai, termOIC)
	if !ok {
		p.fail(start, "Expected OIC to close conditional")
		return nil
	}

	for p.checkWord("MEBBE") {
		arm := &ast.ElseIf{Token: p.advance()}
		arm.Condition = p.parseExpression()
		if arm.Condition == nil {
			p.fail(start, "Expected condition for MEBBE")
			return nil
		}
		if !p.endStatement() {
			p.fail(start, "Expected comma or newline to end statement")
			return nil
		}
		arm.Statements, ok = p.parseBlock(termMebbe, termNoWai, termOIC)
		if !ok {
			p.fail(start, "Expected OIC to close conditional")
			return nil
		}
		stmt.ElseIfs = append(stmt.ElseIfs, arm)
	}

	if p.matchWords("NO", "WAI") {
		if !p.endStatement() {
			p.fail(start, "Expected comma or newline to end statement")
			return nil
		}
		stmt.Else, ok = p.parseBlock(termOIC)
		if !ok {
			p.fail(start, "Expected OIC to close conditional")
			return nil
		}
	}

	if !p.matchWords("OIC") {
		p.fail(start, "Expected OIC to close conditional")
		return nil
	}

	p.succeed()
	return stmt
}

// parseSwitchStatement parses WTF? [OMG <literal> <stmts>]* [OMGWTF <stmts>] OIC.
func (p *Parser) parseSwitchStatement() ast.Statement {
	start := p.enter()
	tok := p.peek()
	if !p.matchWords("WTF") {
		p.fail(start, "Expected WTF keyword to start switch")
		return nil
	}
	if _, ok := p.consume(token.QUESTION); !ok {
		p.fail(start, "Expected ? after WTF")
		return nil
	}
	if !p.endStatement() {
		p.fail(start, "Expected comma or newline to end statement")
		return nil
	}

	stmt := &ast.SwitchStatement{Token: tok}
	p.skipNewlines()
	for p.checkWord("OMG") {
		c := &ast.Case{Token: p.advance()}
		c.Literal = p.parseLiteral()
		if c.Literal == nil {
			p.fail(start, "Expected literal after OMG")
			return nil
		}
		if !p.endStatement() {
			p.fail(start, "Expected comma or newline to end statement")
			return nil
		}
		var ok bool
		c.Statements, ok = p.parseBlock(termOMG, termOMGWTF, termOIC)
		if !ok {
			p.fail(start, "Expected OIC to close switch")
			return nil
		}
		stmt.Cases = append(stmt.Cases, c)
	}

	if p.matchWords("OMGWTF") {
		if !p.endStatement() {
			p.fail(start, "Expected comma or newline to end statement")
			return nil
		}
		var ok bool
		stmt.Default, ok = p.parseBlock(termOIC)
		if !ok {
			p.fail(start, "Expected OIC to close switch")
			return nil
		}
	}

	if !p.matchWords("OIC") {
		p.fail(start, "Expected OIC to close switch")
		return nil
	}

	p.succeed()
	return stmt
}

// parseLoopStatement parses
//
//	IM IN YR <label> [UPPIN|NERFIN YR <var> [TIL|WILE <expr>]]
//	  <stmts>
//	IM OUTTA YR <label>
func (p *Parser) parseLoopStatement() ast.Statement {
	start := p.enter()
	tok := p.peek()
	if !p.matchWords("IM", "IN", "YR") {
		p.fail(start, "Expected IM IN YR keyword to start loop")
		return nil
	}
	label, ok := p.consume(token.IDENT)
	if !ok {
		p.fail(start, "Expected label for loop")
		return nil
	}
	stmt := &ast.LoopStatement{Token: tok, Label: &ast.Identifier{Token: label, Value: label.Literal}}

	if p.checkWord("UPPIN") || p.checkWord("NERFIN") {
		stmt.Operation = p.advance().Literal
		if !p.matchWords("YR") {
			p.fail(start, "Expected YR after "+stmt.Operation)
			return nil
		}
		v, ok := p.consume(token.IDENT)
		if !ok {
			p.fail(start, "Expected loop variable after YR")
			return nil
		}
		stmt.Variable = &ast.Identifier{Token: v, Value: v.Literal}

		if p.checkWord("TIL") || p.checkWord("WILE") {
			stmt.Until = p.advance().Literal == "TIL"
			stmt.Condition = p.parseExpression()
			if stmt.Condition == nil {
				p.fail(start, "Expected loop condition")
				return nil
			}
		}
	}

	if !p.endStatement() {
		p.fail(start, "Expected comma or newline to end statement")
		return nil
	}

	stmt.Body, ok = p.parseBlock(termOutta)
	if !ok {
		p.fail(start, "Expected IM OUTTA YR to close loop "+label.Literal)
		return nil
	}
	p.matchWords(termOutta...)
	closing, ok := p.consume(token.IDENT)
	if !ok || closing.Literal != label.Literal {
		p.fail(start, "Expected loop label "+label.Literal+" after IM OUTTA YR")
		return nil
	}

	p.succeed()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	start := p.enter()
	tok := p.peek()
	if !p.matchWords("FOUND", "YR") {
		p.fail(start, "Expected FOUND YR keyword to return")
		return nil
	}
	stmt := &ast.ReturnStatement{Token: tok}
	stmt.Value = p.parseExpression()
	if stmt.Value == nil {
		p.fail(start, "Expected expression for FOUND YR")
		return nil
	}
	p.succeed()
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	start := p.enter()
	if !p.checkWord("GTFO") {
		p.fail(start, "Expected GTFO keyword")
		return nil
	}
	stmt := &ast.BreakStatement{Token: p.advance()}
	p.succeed()
	return stmt
}
