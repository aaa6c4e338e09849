package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/lolc/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter renders an AST back to canonical LOLCODE: one statement per
// line, nested blocks indented, every variadic form closed with MKAY.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
	width  int // spaces per level
}

var _ ast.Visitor = (*CodePrinter)(nil)

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{width: 2}
}

func NewCodePrinterWithIndent(width int) *CodePrinter {
	return &CodePrinter{width: width}
}

// Print renders node with a fresh printer.
func Print(node ast.Node) string {
	p := NewCodePrinter()
	node.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) line(s string) {
	p.buf.WriteString(strings.Repeat(" ", p.indent*p.width))
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

// expr renders e inline.
func (p *CodePrinter) expr(e ast.Expression) string {
	if e == nil {
		return "NOOB"
	}
	sub := &CodePrinter{width: p.width}
	e.Accept(sub)
	return sub.String()
}

func (p *CodePrinter) block(stmts []ast.Statement) {
	p.indent++
	for _, s := range stmts {
		s.Accept(p)
	}
	p.indent--
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	if n.Version != "" {
		p.line("HAI " + n.Version)
	} else {
		p.line("HAI")
	}
	for _, s := range n.Statements {
		if _, ok := s.(*ast.KthxbyeStatement); ok {
			continue
		}
		p.indent++
		s.Accept(p)
		p.indent--
	}
	p.line("KTHXBYE")
}

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	p.line(p.expr(n.Expression))
}

func (p *CodePrinter) VisitDeclarationStatement(n *ast.DeclarationStatement) {
	s := "I HAS A " + n.Name.Value + " ITZ " + n.Type.Name
	if n.Value != nil {
		s += " R " + p.expr(n.Value)
	}
	p.line(s)
}

func (p *CodePrinter) VisitAssignmentStatement(n *ast.AssignmentStatement) {
	p.line(n.Name.Value + " R " + p.expr(n.Value))
}

func (p *CodePrinter) VisitVisibleStatement(n *ast.VisibleStatement) {
	parts := make([]string, len(n.Operands))
	for i, o := range n.Operands {
		parts[i] = p.expr(o)
	}
	s := "VISIBLE " + strings.Join(parts, " AN ")
	if n.Bang {
		s += "!"
	}
	p.line(s)
}

func (p *CodePrinter) VisitGimmehStatement(n *ast.GimmehStatement) {
	p.line("GIMMEH " + n.Name.Value)
}

func (p *CodePrinter) VisitKthxbyeStatement(n *ast.KthxbyeStatement) {
	p.line("KTHXBYE")
}

func (p *CodePrinter) VisitIfStatement(n *ast.IfStatement) {
	p.line("O RLY?")
	p.indent++
	p.line("YA RLY")
	p.block(n.Then)
	for _, arm := range n.ElseIfs {
		p.line("MEBBE " + p.expr(arm.Condition))
		p.block(arm.Statements)
	}
	if n.Else != nil {
		p.line("NO WAI")
		p.block(n.Else)
	}
	p.indent--
	p.line("OIC")
}

func (p *CodePrinter) VisitSwitchStatement(n *ast.SwitchStatement) {
	p.line("WTF?")
	p.indent++
	for _, c := range n.Cases {
		p.line("OMG " + p.expr(c.Literal))
		p.block(c.Statements)
	}
	if n.Default != nil {
		p.line("OMGWTF")
		p.block(n.Default)
	}
	p.indent--
	p.line("OIC")
}

func (p *CodePrinter) VisitLoopStatement(n *ast.LoopStatement) {
	s := "IM IN YR " + n.Label.Value
	if n.Operation != "" {
		s += " " + n.Operation + " YR " + n.Variable.Value
		if n.Condition != nil {
			if n.Until {
				s += " TIL "
			} else {
				s += " WILE "
			}
			s += p.expr(n.Condition)
		}
	}
	p.line(s)
	p.block(n.Body)
	p.line("IM OUTTA YR " + n.Label.Value)
}

func (p *CodePrinter) VisitFunctionStatement(n *ast.FunctionStatement) {
	s := "HOW IZ I " + n.Name.Value
	if n.ReturnType != nil {
		s += " ITZ " + n.ReturnType.Name
	}
	for i, param := range n.Parameters {
		if i == 0 {
			s += " YR "
		} else {
			s += " AN YR "
		}
		s += param.Name.Value
		if param.Type != nil {
			s += " ITZ " + param.Type.Name
		}
	}
	p.line(s)
	p.block(n.Body)
	p.line("IF U SAY SO")
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	p.line("FOUND YR " + p.expr(n.Value))
}

func (p *CodePrinter) VisitBreakStatement(n *ast.BreakStatement) {
	p.line("GTFO")
}

func (p *CodePrinter) VisitNumberLiteral(n *ast.NumberLiteral) {
	p.write(strconv.FormatInt(n.Value, 10))
}

func (p *CodePrinter) VisitNumbarLiteral(n *ast.NumbarLiteral) {
	if n.Token.Literal != "" {
		p.write(n.Token.Literal)
		return
	}
	s := strconv.FormatFloat(n.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	p.write(s)
}

func (p *CodePrinter) VisitYarnLiteral(n *ast.YarnLiteral) {
	p.write(QuoteYarn(n.Value))
}

func (p *CodePrinter) VisitTroofLiteral(n *ast.TroofLiteral) {
	if n.Value {
		p.write("WIN")
	} else {
		p.write("FAIL")
	}
}

func (p *CodePrinter) VisitVariableReference(n *ast.VariableReference) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitItReference(n *ast.ItReference) {
	p.write("IT")
}

func (p *CodePrinter) VisitBinaryExpression(n *ast.BinaryExpression) {
	p.write(n.Operator.String() + " " + p.expr(n.Left) + " AN " + p.expr(n.Right))
}

func (p *CodePrinter) VisitNotExpression(n *ast.NotExpression) {
	p.write("NOT " + p.expr(n.Operand))
}

func (p *CodePrinter) VisitVariadicExpression(n *ast.VariadicExpression) {
	parts := make([]string, len(n.Operands))
	for i, o := range n.Operands {
		parts[i] = p.expr(o)
	}
	p.write(n.Operator.String() + " " + strings.Join(parts, " AN ") + " MKAY")
}

func (p *CodePrinter) VisitMaekExpression(n *ast.MaekExpression) {
	p.write("MAEK " + p.expr(n.Value) + " A " + n.Type.Name)
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	s := "I IZ " + n.Function.Value
	for i, arg := range n.Arguments {
		if i == 0 {
			s += " YR "
		} else {
			s += " AN YR "
		}
		s += p.expr(arg)
	}
	p.write(s + " MKAY")
}

var yarnEscapes = map[rune]string{
	'\n': ":)",
	'\t': ":>",
	'\a': ":o",
	'"':  `:"`,
	':':  "::",
}

// QuoteYarn is the inverse of the scanner's escape handling.
func QuoteYarn(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		if esc, ok := yarnEscapes[r]; ok {
			sb.WriteString(esc)
			continue
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}
