package ast

import (
	"github.com/funvibe/lolc/internal/token"
)

// Operator identifies a LOLCODE operator form.
type Operator int

const (
	OpSum Operator = iota
	OpDiff
	OpProdukt
	OpQuoshunt
	OpMod
	OpBiggr
	OpSmallr
	OpBoth     // BOTH OF
	OpEither   // EITHER OF
	OpWon      // WON OF
	OpSaem     // BOTH SAEM
	OpDiffrint // DIFFRINT
	OpAll      // ALL OF ... MKAY
	OpAny      // ANY OF ... MKAY
	OpSmoosh   // SMOOSH ... MKAY
)

var operatorNames = map[Operator]string{
	OpSum:      "SUM OF",
	OpDiff:     "DIFF OF",
	OpProdukt:  "PRODUKT OF",
	OpQuoshunt: "QUOSHUNT OF",
	OpMod:      "MOD OF",
	OpBiggr:    "BIGGR OF",
	OpSmallr:   "SMALLR OF",
	OpBoth:     "BOTH OF",
	OpEither:   "EITHER OF",
	OpWon:      "WON OF",
	OpSaem:     "BOTH SAEM",
	OpDiffrint: "DIFFRINT",
	OpAll:      "ALL OF",
	OpAny:      "ANY OF",
	OpSmoosh:   "SMOOSH",
}

func (o Operator) String() string { return operatorNames[o] }

// NumberLiteral is an integer literal.
type NumberLiteral struct {
	Token token.Token
	Value int64
}

func (nl *NumberLiteral) Accept(v Visitor)      { v.VisitNumberLiteral(nl) }
func (nl *NumberLiteral) expressionNode()       {}
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Literal }
func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }

// NumbarLiteral is a floating point literal.
type NumbarLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumbarLiteral) Accept(v Visitor)      { v.VisitNumbarLiteral(nl) }
func (nl *NumbarLiteral) expressionNode()       {}
func (nl *NumbarLiteral) TokenLiteral() string  { return nl.Token.Literal }
func (nl *NumbarLiteral) GetToken() token.Token { return nl.Token }

// YarnLiteral is a string literal with escapes already resolved.
type YarnLiteral struct {
	Token token.Token
	Value string
}

func (yl *YarnLiteral) Accept(v Visitor)      { v.VisitYarnLiteral(yl) }
func (yl *YarnLiteral) expressionNode()       {}
func (yl *YarnLiteral) TokenLiteral() string  { return yl.Token.Literal }
func (yl *YarnLiteral) GetToken() token.Token { return yl.Token }

// TroofLiteral is WIN or FAIL.
type TroofLiteral struct {
	Token token.Token
	Value bool
}

func (tl *TroofLiteral) Accept(v Visitor)      { v.VisitTroofLiteral(tl) }
func (tl *TroofLiteral) expressionNode()       {}
func (tl *TroofLiteral) TokenLiteral() string  { return tl.Token.Literal }
func (tl *TroofLiteral) GetToken() token.Token { return tl.Token }

// VariableReference reads a named variable.
type VariableReference struct {
	Token token.Token
	Name  string
}

func (vr *VariableReference) Accept(v Visitor)      { v.VisitVariableReference(vr) }
func (vr *VariableReference) expressionNode()       {}
func (vr *VariableReference) TokenLiteral() string  { return vr.Token.Literal }
func (vr *VariableReference) GetToken() token.Token { return vr.Token }

// ItReference reads the implicit result variable.
type ItReference struct {
	Token token.Token
}

func (ir *ItReference) Accept(v Visitor)      { v.VisitItReference(ir) }
func (ir *ItReference) expressionNode()       {}
func (ir *ItReference) TokenLiteral() string  { return ir.Token.Literal }
func (ir *ItReference) GetToken() token.Token { return ir.Token }

// BinaryExpression covers every two-operand form.
type BinaryExpression struct {
	Token    token.Token // first word of the operator
	Operator Operator
	Left     Expression
	Right    Expression
}

func (be *BinaryExpression) Accept(v Visitor)      { v.VisitBinaryExpression(be) }
func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Literal }
func (be *BinaryExpression) GetToken() token.Token { return be.Token }

// NotExpression is NOT x.
type NotExpression struct {
	Token   token.Token
	Operand Expression
}

func (ne *NotExpression) Accept(v Visitor)      { v.VisitNotExpression(ne) }
func (ne *NotExpression) expressionNode()       {}
func (ne *NotExpression) TokenLiteral() string  { return ne.Token.Literal }
func (ne *NotExpression) GetToken() token.Token { return ne.Token }

// VariadicExpression covers ALL OF, ANY OF and SMOOSH.
type VariadicExpression struct {
	Token    token.Token
	Operator Operator
	Operands []Expression
}

func (ve *VariadicExpression) Accept(v Visitor)      { v.VisitVariadicExpression(ve) }
func (ve *VariadicExpression) expressionNode()       {}
func (ve *VariadicExpression) TokenLiteral() string  { return ve.Token.Literal }
func (ve *VariadicExpression) GetToken() token.Token { return ve.Token }

// MaekExpression is MAEK value A TYPE.
type MaekExpression struct {
	Token token.Token // MAEK
	Value Expression
	Type  *TypeName
}

func (me *MaekExpression) Accept(v Visitor)      { v.VisitMaekExpression(me) }
func (me *MaekExpression) expressionNode()       {}
func (me *MaekExpression) TokenLiteral() string  { return me.Token.Literal }
func (me *MaekExpression) GetToken() token.Token { return me.Token }

// CallExpression is I IZ name [YR arg [AN YR arg]*] MKAY.
type CallExpression struct {
	Token     token.Token // I
	Function  *Identifier
	Arguments []Expression
}

func (ce *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Literal }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }
