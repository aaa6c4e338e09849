package parser

import (
	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/config"
	"github.com/funvibe/lolc/internal/token"
)

// ParseProgram parses HAI <version> <statements> KTHXBYE. A structural
// failure stops the parse; the returned program holds the statements
// accumulated until then.
func (p *Parser) ParseProgram() *ast.Program {
	p.enter()
	program := &ast.Program{}
	if p.ctx != nil {
		program.File = p.ctx.FilePath
	}
	p.block = &program.Statements

	p.skipNewlines()
	if !p.checkWord("HAI") {
		p.failHere("Expected HAI token to start program")
		return program
	}
	program.Token = p.advance()

	if p.check(token.NUMBAR) {
		if p.peek().Literal != config.LanguageVersion {
			p.failHere("Expected version " + config.LanguageVersion)
			return program
		}
		program.Version = p.advance().Literal
	} else if !p.atStatementEnd() {
		p.failHere("Expected valid version numbar")
		return program
	}

	if !p.endStatement() {
		p.failHere("Expected comma or newline to end statement")
		return program
	}

	for {
		p.skipNewlines()
		if p.isAtEnd() {
			break
		}
		stmt := p.parseStatement()
		if stmt == nil {
			p.failHere("Expected valid statement line")
			return program
		}
		program.Statements = append(program.Statements, stmt)
		if _, ok := stmt.(*ast.KthxbyeStatement); ok {
			break
		}
	}

	if len(program.Statements) == 0 {
		p.failHere("Expected KTHXBYE statement to end program")
		return program
	}
	if _, ok := program.Statements[len(program.Statements)-1].(*ast.KthxbyeStatement); !ok {
		p.failHere("Expected KTHXBYE statement to end program")
		return program
	}

	p.skipNewlines()
	if !p.isAtEnd() {
		p.failHere("Expected end of program after KTHXBYE")
		return program
	}

	p.complete = true
	p.succeed()
	return program
}

// parseStatement tries every statement form in order. A form that matched
// must be followed by a terminator.
func (p *Parser) parseStatement() ast.Statement {
	p.enter()

	alternatives := []func() ast.Statement{
		p.parseDeclarationStatement,
		p.parseAssignmentStatement,
		p.parseKthxbyeStatement,
		p.parseVisibleStatement,
		p.parseGimmehStatement,
		p.parseIfStatement,
		p.parseSwitchStatement,
		p.parseLoopStatement,
		p.parseFunctionStatement,
		p.parseReturnStatement,
		p.parseBreakStatement,
		p.parseExpressionStatement,
	}

	for _, alt := range alternatives {
		stmt := alt()
		if stmt == nil {
			continue
		}
		if !p.endStatement() {
			p.failHere("Expected comma or newline to end statement")
			return nil
		}
		p.succeed()
		return stmt
	}

	p.failHere("Expected valid statement or expression")
	return nil
}

// parseBlock parses statements until one of the terminator keyword
// sequences is next. The terminator is not consumed.
func (p *Parser) parseBlock(terminators ...[]string) ([]ast.Statement, bool) {
	stmts := []ast.Statement{}
	outer := p.block
	p.block = &stmts
	defer func() { p.block = outer }()
	for {
		p.skipNewlines()
		for _, term := range terminators {
			if p.lookingAt(term...) {
				return stmts, true
			}
		}
		if p.isAtEnd() {
			return nil, false
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil, false
		}
		stmts = append(stmts, stmt)
	}
}

// lookingAt reports whether the keyword sequence ws is next, consuming nothing.
func (p *Parser) lookingAt(ws ...string) bool {
	start := p.current
	ok := p.matchWords(ws...)
	p.current = start
	return ok
}

func (p *Parser) parseDeclarationStatement() ast.Statement {
	start := p.enter()
	stmt := &ast.DeclarationStatement{Token: p.peek()}

	for _, w := range []string{"I", "HAS", "A"} {
		if !p.matchWords(w) {
			p.fail(start, "Expected "+w+" keyword to declare variable")
			return nil
		}
	}

	ident, ok := p.consume(token.IDENT)
	if !ok {
		p.fail(start, "Expected identifier for variable declaration")
		return nil
	}
	stmt.Name = &ast.Identifier{Token: ident, Value: ident.Literal}

	if !p.matchWords("ITZ") {
		p.fail(start, "Expected ITZ keyword to declare variable")
		return nil
	}

	stmt.Type = p.parseTypeName()
	if stmt.Type == nil {
		p.fail(start, "Expected valid type for variable declaration")
		return nil
	}

	if p.matchWords("R") {
		stmt.Value = p.parseExpression()
		if stmt.Value == nil {
			p.fail(start, "Expected valid expression for variable assignment")
			return nil
		}
	}

	p.succeed()
	return stmt
}

// parseTypeName matches one of the declarable type words.
func (p *Parser) parseTypeName() *ast.TypeName {
	for _, name := range []string{"NUMBER", "NUMBAR", "YARN", "TROOF"} {
		if p.checkWord(name) {
			tok := p.advance()
			return &ast.TypeName{Token: tok, Name: name}
		}
	}
	return nil
}

func (p *Parser) parseAssignmentStatement() ast.Statement {
	start := p.enter()

	ident, ok := p.consume(token.IDENT)
	if !ok {
		if decl := p.pendingDeclaration(); decl != nil && p.checkWord("R") {
			return p.parseDeferredInitializer(start, decl)
		}
		p.fail(start, "Expected identifier or variable declaration for variable assignment")
		return nil
	}

	if !p.checkWord("R") {
		p.fail(start, "Expected R keyword to assign variable")
		return nil
	}
	stmt := &ast.AssignmentStatement{Token: p.advance(), Name: &ast.Identifier{Token: ident, Value: ident.Literal}}

	stmt.Value = p.parseExpression()
	if stmt.Value == nil {
		p.fail(start, "Expected valid expression for variable assignment")
		return nil
	}

	p.succeed()
	return stmt
}

// pendingDeclaration returns the last statement of the current block when
// it is a declaration still without an initializer.
func (p *Parser) pendingDeclaration() *ast.DeclarationStatement {
	if p.block == nil || len(*p.block) == 0 {
		return nil
	}
	decl, ok := (*p.block)[len(*p.block)-1].(*ast.DeclarationStatement)
	if !ok || decl.Value != nil {
		return nil
	}
	return decl
}

// parseDeferredInitializer handles an R clause on its own statement line:
//
//	I HAS A x ITZ YARN
//	R "hello world"
//
// The declaration is taken off the block and returned with the initializer
// attached, so the pair behaves as one initialized declaration.
func (p *Parser) parseDeferredInitializer(start int, decl *ast.DeclarationStatement) ast.Statement {
	p.advance()
	value := p.parseExpression()
	if value == nil {
		p.fail(start, "Expected valid expression for variable assignment")
		return nil
	}
	*p.block = (*p.block)[:len(*p.block)-1]
	merged := *decl
	merged.Value = value
	p.succeed()
	return &merged
}

func (p *Parser) parseKthxbyeStatement() ast.Statement {
	start := p.enter()
	if !p.checkWord("KTHXBYE") {
		p.fail(start, "Expected KTHXBYE keyword to end program")
		return nil
	}
	stmt := &ast.KthxbyeStatement{Token: p.advance()}
	p.succeed()
	return stmt
}

func (p *Parser) parseVisibleStatement() ast.Statement {
	start := p.enter()
	if !p.checkWord("VISIBLE") {
		p.fail(start, "Expected VISIBLE keyword to print")
		return nil
	}
	stmt := &ast.VisibleStatement{Token: p.advance()}

	first := p.parseExpression()
	if first == nil {
		p.fail(start, "Expected expression for VISIBLE statement")
		return nil
	}
	stmt.Operands = append(stmt.Operands, first)

	for {
		save := p.current
		hadAN := p.matchWords("AN")
		if p.atStatementEnd() {
			p.current = save
			break
		}
		operand := p.parseExpression()
		if operand == nil {
			if hadAN {
				p.fail(start, "Expected expression after AN")
				return nil
			}
			p.current = save
			break
		}
		stmt.Operands = append(stmt.Operands, operand)
	}

	if _, ok := p.consume(token.BANG); ok {
		stmt.Bang = true
	}

	p.succeed()
	return stmt
}

func (p *Parser) parseGimmehStatement() ast.Statement {
	start := p.enter()
	if !p.checkWord("GIMMEH") {
		p.fail(start, "Expected GIMMEH keyword to read input")
		return nil
	}
	stmt := &ast.GimmehStatement{Token: p.advance()}

	ident, ok := p.consume(token.IDENT)
	if !ok {
		p.fail(start, "Expected identifier for GIMMEH statement")
		return nil
	}
	stmt.Name = &ast.Identifier{Token: ident, Value: ident.Literal}

	p.succeed()
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.enter()
	tok := p.peek()
	expr := p.parseExpression()
	if expr == nil {
		p.fail(start, "Expected valid expression")
		return nil
	}
	p.succeed()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}
