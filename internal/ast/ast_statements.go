package ast

import (
	"github.com/funvibe/lolc/internal/token"
)

// ExpressionStatement evaluates an expression into IT.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor)      { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Literal }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// DeclarationStatement is I HAS A name ITZ TYPE [R value].
type DeclarationStatement struct {
	Token token.Token // I
	Name  *Identifier
	Type  *TypeName
	Value Expression // nil without an initializer
}

func (ds *DeclarationStatement) Accept(v Visitor)      { v.VisitDeclarationStatement(ds) }
func (ds *DeclarationStatement) statementNode()        {}
func (ds *DeclarationStatement) TokenLiteral() string  { return ds.Token.Literal }
func (ds *DeclarationStatement) GetToken() token.Token { return ds.Token }

// AssignmentStatement is name R value.
type AssignmentStatement struct {
	Token token.Token // R
	Name  *Identifier
	Value Expression
}

func (as *AssignmentStatement) Accept(v Visitor)      { v.VisitAssignmentStatement(as) }
func (as *AssignmentStatement) statementNode()        {}
func (as *AssignmentStatement) TokenLiteral() string  { return as.Token.Literal }
func (as *AssignmentStatement) GetToken() token.Token { return as.Token }

// VisibleStatement prints its operands; Bang suppresses the newline.
type VisibleStatement struct {
	Token    token.Token // VISIBLE
	Operands []Expression
	Bang     bool
}

func (vs *VisibleStatement) Accept(v Visitor)      { v.VisitVisibleStatement(vs) }
func (vs *VisibleStatement) statementNode()        {}
func (vs *VisibleStatement) TokenLiteral() string  { return vs.Token.Literal }
func (vs *VisibleStatement) GetToken() token.Token { return vs.Token }

// GimmehStatement reads a line into a variable.
type GimmehStatement struct {
	Token token.Token // GIMMEH
	Name  *Identifier
}

func (gs *GimmehStatement) Accept(v Visitor)      { v.VisitGimmehStatement(gs) }
func (gs *GimmehStatement) statementNode()        {}
func (gs *GimmehStatement) TokenLiteral() string  { return gs.Token.Literal }
func (gs *GimmehStatement) GetToken() token.Token { return gs.Token }

// KthxbyeStatement ends the program.
type KthxbyeStatement struct {
	Token token.Token
}

func (ks *KthxbyeStatement) Accept(v Visitor)      { v.VisitKthxbyeStatement(ks) }
func (ks *KthxbyeStatement) statementNode()        {}
func (ks *KthxbyeStatement) TokenLiteral() string  { return ks.Token.Literal }
func (ks *KthxbyeStatement) GetToken() token.Token { return ks.Token }

// ElseIf is a MEBBE arm.
type ElseIf struct {
	Token      token.Token // MEBBE
	Condition  Expression
	Statements []Statement
}

// IfStatement is O RLY? / YA RLY / MEBBE / NO WAI / OIC, branching on IT.
type IfStatement struct {
	Token   token.Token // O
	Then    []Statement
	ElseIfs []*ElseIf
	Else    []Statement // nil without NO WAI
}

func (is *IfStatement) Accept(v Visitor)      { v.VisitIfStatement(is) }
func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Literal }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// Case is an OMG arm.
type Case struct {
	Token      token.Token // OMG
	Literal    Expression
	Statements []Statement
}

// SwitchStatement is WTF? / OMG / OMGWTF / OIC, switching on IT.
type SwitchStatement struct {
	Token   token.Token // WTF
	Cases   []*Case
	Default []Statement // nil without OMGWTF
}

func (ss *SwitchStatement) Accept(v Visitor)      { v.VisitSwitchStatement(ss) }
func (ss *SwitchStatement) statementNode()        {}
func (ss *SwitchStatement) TokenLiteral() string  { return ss.Token.Literal }
func (ss *SwitchStatement) GetToken() token.Token { return ss.Token }

// LoopStatement is IM IN YR label ... IM OUTTA YR label.
type LoopStatement struct {
	Token     token.Token // IM
	Label     *Identifier
	Operation string // UPPIN, NERFIN or empty
	Variable  *Identifier
	Until     bool // TIL when true, WILE otherwise
	Condition Expression
	Body      []Statement
}

func (ls *LoopStatement) Accept(v Visitor)      { v.VisitLoopStatement(ls) }
func (ls *LoopStatement) statementNode()        {}
func (ls *LoopStatement) TokenLiteral() string  { return ls.Token.Literal }
func (ls *LoopStatement) GetToken() token.Token { return ls.Token }

// Parameter is a typed function argument.
type Parameter struct {
	Name *Identifier
	Type *TypeName
}

// FunctionStatement is HOW IZ I name ... IF U SAY SO.
type FunctionStatement struct {
	Token      token.Token // HOW
	Name       *Identifier
	ReturnType *TypeName // may be nil
	Parameters []*Parameter
	Body       []Statement
}

func (fs *FunctionStatement) Accept(v Visitor)      { v.VisitFunctionStatement(fs) }
func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Literal }
func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }

// ReturnStatement is FOUND YR value.
type ReturnStatement struct {
	Token token.Token // FOUND
	Value Expression
}

func (rs *ReturnStatement) Accept(v Visitor)      { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Literal }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// BreakStatement is GTFO.
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) Accept(v Visitor)      { v.VisitBreakStatement(bs) }
func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Literal }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }
