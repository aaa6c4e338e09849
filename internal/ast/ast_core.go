package ast

import (
	"github.com/funvibe/lolc/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Visitor walks the closed node set.
type Visitor interface {
	VisitProgram(p *Program)

	VisitExpressionStatement(s *ExpressionStatement)
	VisitDeclarationStatement(s *DeclarationStatement)
	VisitAssignmentStatement(s *AssignmentStatement)
	VisitVisibleStatement(s *VisibleStatement)
	VisitGimmehStatement(s *GimmehStatement)
	VisitKthxbyeStatement(s *KthxbyeStatement)
	VisitIfStatement(s *IfStatement)
	VisitSwitchStatement(s *SwitchStatement)
	VisitLoopStatement(s *LoopStatement)
	VisitFunctionStatement(s *FunctionStatement)
	VisitReturnStatement(s *ReturnStatement)
	VisitBreakStatement(s *BreakStatement)

	VisitNumberLiteral(e *NumberLiteral)
	VisitNumbarLiteral(e *NumbarLiteral)
	VisitYarnLiteral(e *YarnLiteral)
	VisitTroofLiteral(e *TroofLiteral)
	VisitVariableReference(e *VariableReference)
	VisitItReference(e *ItReference)
	VisitBinaryExpression(e *BinaryExpression)
	VisitNotExpression(e *NotExpression)
	VisitVariadicExpression(e *VariadicExpression)
	VisitMaekExpression(e *MaekExpression)
	VisitCallExpression(e *CallExpression)
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Token      token.Token // HAI
	Version    string
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	} else {
		return ""
	}
}

// Identifier is a variable or label name.
type Identifier struct {
	Token token.Token
	Value string
}

// TypeName is a type word after ITZ or A.
type TypeName struct {
	Token token.Token
	Name  string // NUMBER, NUMBAR, YARN, TROOF, NOOB
}
