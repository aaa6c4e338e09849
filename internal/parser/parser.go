package parser

import (
	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/pipeline"
	"github.com/funvibe/lolc/internal/token"
)

// MaxRecursionDepth bounds expression nesting.
const MaxRecursionDepth = 500

// Parser is a backtracking recursive-descent parser. Every nonterminal
// saves the cursor on entry and restores it on failure, and records its
// failure together with the nesting level it was attempted at.
type Parser struct {
	tokens  []token.Token
	current int
	level   int
	depth   int

	errors   []*ParseError
	complete bool // ParseProgram matched the whole input
	ctx      *pipeline.PipelineContext

	// block is the statement list being filled; a bare R clause
	// completes the declaration at its end.
	block *[]ast.Statement
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		end := 0
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].End
		}
		tokens = append(tokens, token.Token{Type: token.EOF, Start: end, End: end, Index: len(tokens)})
	}
	return &Parser{tokens: tokens, ctx: ctx}
}

// Errors returns the recorded failures after dominance filtering. Two
// failures at the same level and token dominate each other, so the filter
// can leave nothing; a failed parse then reports its furthest failure.
func (p *Parser) Errors() []*ParseError {
	filtered := FilterErrors(p.errors, p.current)
	if len(filtered) == 0 && !p.complete && len(p.errors) > 0 {
		return []*ParseError{furthest(p.errors)}
	}
	return filtered
}

// Failed reports whether ParseProgram stopped before matching the input.
func (p *Parser) Failed() bool {
	return !p.complete
}

// RawErrors returns every recorded failure, unfiltered.
func (p *Parser) RawErrors() []*ParseError {
	return p.errors
}

// Cursor is the index of the next unconsumed token.
func (p *Parser) Cursor() int {
	return p.current
}

// enter opens a nonterminal and returns the cursor to restore on failure.
func (p *Parser) enter() int {
	p.level++
	return p.current
}

// succeed closes a nonterminal that matched.
func (p *Parser) succeed() {
	p.level--
}

// fail records msg against the current token at the nonterminal's level,
// rewinds to start and closes the nonterminal.
func (p *Parser) fail(start int, msg string) {
	p.record(msg)
	p.current = start
	p.level--
}

// failHere is fail without rewinding; used once input has been committed.
func (p *Parser) failHere(msg string) {
	p.record(msg)
	p.level--
}

// record tags msg with the level of the nonterminal that failed, one deeper
// than its caller. Callers then unwind that level.
func (p *Parser) record(msg string) {
	p.errors = append(p.errors, &ParseError{Message: msg, Token: p.peek(), Level: p.level})
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) checkWord(w string) bool {
	return p.peek().Is(w)
}

// consume advances over a token of type t.
func (p *Parser) consume(t token.TokenType) (token.Token, bool) {
	if !p.check(t) {
		return token.Token{}, false
	}
	return p.advance(), true
}

// matchWords consumes the keyword sequence ws or nothing at all.
func (p *Parser) matchWords(ws ...string) bool {
	start := p.current
	for _, w := range ws {
		if !p.checkWord(w) {
			p.current = start
			return false
		}
		p.advance()
	}
	return true
}

func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// endStatement consumes a statement terminator: a comma or a run of
// newlines. End of input also ends a statement but is not consumed.
func (p *Parser) endStatement() bool {
	switch {
	case p.check(token.COMMA):
		p.advance()
		return true
	case p.check(token.NEWLINE):
		p.skipNewlines()
		return true
	case p.isAtEnd():
		return true
	}
	return false
}

// atStatementEnd reports whether a terminator (or VISIBLE's bang) follows.
func (p *Parser) atStatementEnd() bool {
	return p.check(token.COMMA) || p.check(token.NEWLINE) || p.check(token.BANG) || p.isAtEnd()
}
