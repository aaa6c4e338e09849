package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/lexer"
	"github.com/funvibe/lolc/internal/parser"
	"github.com/funvibe/lolc/internal/pipeline"
)

// parseWithErrors runs the lexer+parser and returns the program and all diagnostics.
func parseWithErrors(input string) (*ast.Program, []*diagnostics.DiagnosticError) {
	ctx := &pipeline.PipelineContext{SourceCode: input}
	lp := &lexer.LexerProcessor{}
	ctx = lp.Process(ctx)
	pp := &parser.ParserProcessor{}
	ctx = pp.Process(ctx)
	return ctx.AstRoot, ctx.Errors
}

// expectNoErrors asserts parsing succeeds without errors.
func expectNoErrors(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, errs := parseWithErrors(input)
	if len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
	return program
}

// expectMessage asserts one of the diagnostics carries msg.
func expectMessage(t *testing.T, input, msg string) *diagnostics.DiagnosticError {
	t.Helper()
	_, errs := parseWithErrors(input)
	for _, e := range errs {
		if e.Message == msg {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	t.Fatalf("expected %q, got:\n%s\ninput: %s", msg, strings.Join(msgs, "\n"), input)
	return nil
}

func TestMinimalProgram(t *testing.T) {
	program := expectNoErrors(t, "HAI 1.2\nKTHXBYE")
	if program.Version != "1.2" {
		t.Errorf("version = %q", program.Version)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	if _, ok := program.Statements[0].(*ast.KthxbyeStatement); !ok {
		t.Errorf("expected KTHXBYE, got %T", program.Statements[0])
	}
}

func TestDeclarationWithoutInitializer(t *testing.T) {
	program := expectNoErrors(t, "HAI 1.2, I HAS A x ITZ NUMBER, KTHXBYE")
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ast.DeclarationStatement)
	if !ok {
		t.Fatalf("expected declaration, got %T", program.Statements[0])
	}
	if decl.Name.Value != "x" || decl.Type.Name != "NUMBER" || decl.Value != nil {
		t.Errorf("unexpected declaration %+v", decl)
	}
}

func TestDeclarationWithInitializer(t *testing.T) {
	program := expectNoErrors(t, "HAI 1.2\nI HAS A x ITZ YARN R \"hi\"\nKTHXBYE\n")
	decl := program.Statements[0].(*ast.DeclarationStatement)
	lit, ok := decl.Value.(*ast.YarnLiteral)
	if !ok || lit.Value != "hi" {
		t.Errorf("expected YARN initializer, got %#v", decl.Value)
	}
}

func TestInitializerOnNextLine(t *testing.T) {
	program := expectNoErrors(t, "HAI 1.2, I HAS A x ITZ YARN \n\nR \"hello world\",GIMMEH x,KTHXBYE")
	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ast.DeclarationStatement)
	if !ok {
		t.Fatalf("expected declaration, got %T", program.Statements[0])
	}
	lit, ok := decl.Value.(*ast.YarnLiteral)
	if decl.Name.Value != "x" || !ok || lit.Value != "hello world" {
		t.Errorf("initializer not attached: %+v", decl)
	}
	if _, ok := program.Statements[1].(*ast.GimmehStatement); !ok {
		t.Errorf("expected GIMMEH, got %T", program.Statements[1])
	}
}

func TestInitializerOnNextLineInsideBlock(t *testing.T) {
	program := expectNoErrors(t, "HAI 1.2\nWIN, O RLY?\nYA RLY\nI HAS A n ITZ NUMBER\nR 5\nOIC\nKTHXBYE")
	ifStmt := program.Statements[1].(*ast.IfStatement)
	if len(ifStmt.Then) != 1 {
		t.Fatalf("expected one merged statement, got %d", len(ifStmt.Then))
	}
	decl, ok := ifStmt.Then[0].(*ast.DeclarationStatement)
	if !ok || decl.Value == nil {
		t.Errorf("expected initialized declaration, got %#v", ifStmt.Then[0])
	}
}

func TestBareInitializerNeedsDeclaration(t *testing.T) {
	for _, input := range []string{
		"HAI 1.2\nVISIBLE 1\nR 2\nKTHXBYE",
		"HAI 1.2\nI HAS A x ITZ NUMBER R 1\nR 2\nKTHXBYE",
		"HAI 1.2\nR 2\nKTHXBYE",
	} {
		e := expectMessage(t, input, "Expected valid statement line")
		if e.Token.Literal != "R" {
			t.Errorf("%q: error token = %q, want R", input, e.Token.Literal)
		}
	}
}

func TestStatementForms(t *testing.T) {
	input := `HAI 1.2
I HAS A name ITZ YARN
GIMMEH name
name R SMOOSH "hi " AN name MKAY
VISIBLE name "!" !
SUM OF 1 AN 2
KTHXBYE`
	program := expectNoErrors(t, input)
	want := []string{"*ast.DeclarationStatement", "*ast.GimmehStatement", "*ast.AssignmentStatement",
		"*ast.VisibleStatement", "*ast.ExpressionStatement", "*ast.KthxbyeStatement"}
	if len(program.Statements) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(program.Statements))
	}
	visible := program.Statements[3].(*ast.VisibleStatement)
	if !visible.Bang || len(visible.Operands) != 2 {
		t.Errorf("unexpected VISIBLE %+v", visible)
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		op    ast.Operator
	}{
		{"SUM OF 1 AN 2", ast.OpSum},
		{"DIFF OF 1 AN 2", ast.OpDiff},
		{"PRODUKT OF 1 AN 2", ast.OpProdukt},
		{"QUOSHUNT OF 1 AN 2", ast.OpQuoshunt},
		{"MOD OF 1 AN 2", ast.OpMod},
		{"BIGGR OF 1 AN 2", ast.OpBiggr},
		{"SMALLR OF 1 2", ast.OpSmallr},
		{"BOTH OF WIN AN FAIL", ast.OpBoth},
		{"EITHER OF WIN AN FAIL", ast.OpEither},
		{"WON OF WIN AN FAIL", ast.OpWon},
		{"BOTH SAEM 1 AN 1", ast.OpSaem},
		{"DIFFRINT 1 AN 2", ast.OpDiffrint},
	}
	for _, tt := range tests {
		program := expectNoErrors(t, "HAI 1.2\n"+tt.input+"\nKTHXBYE")
		stmt := program.Statements[0].(*ast.ExpressionStatement)
		bin, ok := stmt.Expression.(*ast.BinaryExpression)
		if !ok {
			t.Errorf("%s: expected binary expression, got %T", tt.input, stmt.Expression)
			continue
		}
		if bin.Operator != tt.op {
			t.Errorf("%s: operator = %s, want %s", tt.input, bin.Operator, tt.op)
		}
	}
}

func TestNestedExpression(t *testing.T) {
	program := expectNoErrors(t, "HAI 1.2\nBIGGR OF SUM OF 1 AN 2 AN PRODUKT OF 3 AN 4\nKTHXBYE")
	bin := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.BinaryExpression)
	if bin.Operator != ast.OpBiggr {
		t.Fatalf("operator = %s", bin.Operator)
	}
	if l, ok := bin.Left.(*ast.BinaryExpression); !ok || l.Operator != ast.OpSum {
		t.Errorf("left = %#v", bin.Left)
	}
	if r, ok := bin.Right.(*ast.BinaryExpression); !ok || r.Operator != ast.OpProdukt {
		t.Errorf("right = %#v", bin.Right)
	}
}

func TestVariadic(t *testing.T) {
	program := expectNoErrors(t, "HAI 1.2\nALL OF WIN AN FAIL AN WIN MKAY\nANY OF WIN FAIL\nKTHXBYE")
	all := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.VariadicExpression)
	if all.Operator != ast.OpAll || len(all.Operands) != 3 {
		t.Errorf("unexpected ALL OF %+v", all)
	}
	anyOf := program.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.VariadicExpression)
	if anyOf.Operator != ast.OpAny || len(anyOf.Operands) != 2 {
		t.Errorf("unexpected ANY OF %+v", anyOf)
	}
}

func TestMaekAndNot(t *testing.T) {
	program := expectNoErrors(t, "HAI 1.2\nMAEK NOT WIN A NUMBAR\nKTHXBYE")
	maek := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.MaekExpression)
	if maek.Type.Name != "NUMBAR" {
		t.Errorf("type = %s", maek.Type.Name)
	}
	if _, ok := maek.Value.(*ast.NotExpression); !ok {
		t.Errorf("value = %T", maek.Value)
	}
}

func TestControlFlowParses(t *testing.T) {
	input := `HAI 1.2
BOTH SAEM 1 AN 1, O RLY?
  YA RLY
    VISIBLE "yes"
  MEBBE WIN
    VISIBLE "maybe"
  NO WAI
    VISIBLE "no"
OIC
WTF?
  OMG 1
    GTFO
  OMGWTF
    VISIBLE "default"
OIC
IM IN YR loop UPPIN YR i TIL BOTH SAEM i AN 10
  VISIBLE i
IM OUTTA YR loop
HOW IZ I add YR a ITZ NUMBER AN YR b ITZ NUMBER
  FOUND YR SUM OF a AN b
IF U SAY SO
I IZ add YR 1 AN YR 2 MKAY
KTHXBYE`
	program := expectNoErrors(t, input)
	kinds := []string{}
	for _, s := range program.Statements {
		switch s.(type) {
		case *ast.IfStatement:
			kinds = append(kinds, "if")
		case *ast.SwitchStatement:
			kinds = append(kinds, "switch")
		case *ast.LoopStatement:
			kinds = append(kinds, "loop")
		case *ast.FunctionStatement:
			kinds = append(kinds, "func")
		case *ast.ExpressionStatement:
			kinds = append(kinds, "expr")
		case *ast.KthxbyeStatement:
			kinds = append(kinds, "end")
		}
	}
	got := strings.Join(kinds, ",")
	if got != "expr,if,switch,loop,func,expr,end" {
		t.Errorf("statement kinds = %s", got)
	}
	ifStmt := program.Statements[1].(*ast.IfStatement)
	if len(ifStmt.Then) != 1 || len(ifStmt.ElseIfs) != 1 || len(ifStmt.Else) != 1 {
		t.Errorf("unexpected if arms %+v", ifStmt)
	}
	fn := program.Statements[4].(*ast.FunctionStatement)
	if fn.Name.Value != "add" || len(fn.Parameters) != 2 {
		t.Errorf("unexpected function %+v", fn)
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	expectNoErrors(t, "\n\nHAI 1.2\n\nBTW nothing\nOBTW\nblock\nTLDR\nVISIBLE \"x\"\n\nKTHXBYE\n\n")
}

// ----------------------------------------------------------------------------
// Failures
// ----------------------------------------------------------------------------

func TestMissingHai(t *testing.T) {
	_, errs := parseWithErrors("KTHXBYE")
	if len(errs) != 1 || errs[0].Message != "Expected HAI token to start program" {
		t.Fatalf("unexpected errors %v", errs)
	}
	if errs[0].Code != diagnostics.ErrP001 {
		t.Errorf("code = %s", errs[0].Code)
	}
}

func TestWrongVersion(t *testing.T) {
	_, errs := parseWithErrors("HAI 1.3\nKTHXBYE")
	if len(errs) != 1 || errs[0].Message != "Expected version 1.2" {
		t.Fatalf("unexpected errors %v", errs)
	}
	if errs[0].Token.Literal != "1.3" {
		t.Errorf("error token = %q", errs[0].Token.Literal)
	}
}

func TestMissingKthxbye(t *testing.T) {
	program, errs := parseWithErrors("HAI 1.2, I HAS A x ITZ NUMBER")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Message != "Expected KTHXBYE statement to end program" {
		t.Errorf("message = %q", errs[0].Message)
	}
	if len(program.Statements) != 1 {
		t.Errorf("expected the accumulated declaration, got %d statements", len(program.Statements))
	}
}

func TestBadDeclarationType(t *testing.T) {
	e := expectMessage(t, "HAI 1.2\nI HAS A x ITZ NUMBR\nKTHXBYE", "Expected valid type for variable declaration")
	if e.Token.Literal != "NUMBR" {
		t.Errorf("error token = %q, want NUMBR", e.Token.Literal)
	}
}

func TestMissingTerminator(t *testing.T) {
	e := expectMessage(t, "HAI 1.2\nVISIBLE \"a\" KTHXBYE", "Expected comma or newline to end statement")
	if e.Token.Literal != "KTHXBYE" {
		t.Errorf("error token = %q", e.Token.Literal)
	}
}

func TestMissingOperand(t *testing.T) {
	e := expectMessage(t, "HAI 1.2\nSUM OF 1 AN\nKTHXBYE", "Expected second operand for SUM OF")
	if e.Token.Literal != "\n" {
		t.Errorf("error token = %q", e.Token.Literal)
	}
}

func TestTrailingInput(t *testing.T) {
	expectMessage(t, "HAI 1.2\nKTHXBYE\nVISIBLE \"late\"", "Expected end of program after KTHXBYE")
}

func TestLexicalErrorStopsParser(t *testing.T) {
	program, errs := parseWithErrors("HAI 1.2\nVISIBLE 1 + 2\nKTHXBYE")
	if program != nil {
		t.Errorf("expected no program after a lexical error")
	}
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrL001 {
		t.Fatalf("unexpected errors %v", errs)
	}
}
