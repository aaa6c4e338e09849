package vm_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/funvibe/lolc/internal/analyzer"
	"github.com/funvibe/lolc/internal/ir"
	"github.com/funvibe/lolc/internal/lexer"
	"github.com/funvibe/lolc/internal/parser"
	"github.com/funvibe/lolc/internal/pipeline"
	"github.com/funvibe/lolc/internal/vm"
)

func compile(t *testing.T, input string) *ir.Program {
	t.Helper()
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{StackSize: 1024, HeapSize: 4096},
	).Run(&pipeline.PipelineContext{SourceCode: input})
	if ctx.Failed() {
		t.Fatalf("compile: %v", ctx.Err())
	}
	return ctx.Program
}

// runProgram lowers body (wrapped in HAI/KTHXBYE), runs it and checks
// that every heap block was returned.
func runProgram(t *testing.T, body, stdin string) string {
	t.Helper()
	prog := compile(t, "HAI 1.2\n"+body+"\nKTHXBYE\n")
	var out bytes.Buffer
	m := vm.NewForProgram(prog, vm.WithOutput(&out), vm.WithInput(strings.NewReader(stdin)))
	if err := m.Run(prog); err != nil {
		t.Fatalf("run: %v\noutput so far: %q", err, out.String())
	}
	if n := m.HeapInUse(); n != 0 {
		t.Errorf("%d heap cells still allocated after HALT", n)
	}
	if got, want := m.StackDepth(), prog.Entry.Hooks+1; got != want {
		t.Errorf("stack depth = %d, want %d", got, want)
	}
	return out.String()
}

func TestPrograms(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
	}{
		{"hello", `VISIBLE "HAI WORLD"`, "HAI WORLD\n"},
		{"escapes", `VISIBLE "a:)b:>c"`, "a\nb\tc\n"},
		{"bang", "VISIBLE \"x\"!\nVISIBLE \"y\"", "xy\n"},
		{"sum", "VISIBLE SUM OF 2 AN 3", "5\n"},
		{"diff", "VISIBLE DIFF OF 2 AN 5", "-3\n"},
		{"produkt", "VISIBLE PRODUKT OF 6 AN 7", "42\n"},
		{"quoshunt", "VISIBLE QUOSHUNT OF 7 AN 2", "3\n"},
		{"quoshunt negative", "VISIBLE QUOSHUNT OF -7 AN 2", "-3\n"},
		{"quoshunt numbar", "VISIBLE QUOSHUNT OF 7.0 AN 2.0", "3.50\n"},
		{"mod", "VISIBLE MOD OF 7 AN 3", "1\n"},
		{"biggr", "VISIBLE BIGGR OF 3 AN 7", "7\n"},
		{"smallr", "VISIBLE SMALLR OF 3 AN 7", "3\n"},
		{"biggr negative", "VISIBLE BIGGR OF -2 AN -5", "-2\n"},
		{"smallr negative", "VISIBLE SMALLR OF -2 AN -5", "-5\n"},
		{"biggr equal", "VISIBLE BIGGR OF 4 AN 4", "4\n"},
		{"both", "VISIBLE BOTH OF WIN AN FAIL", "FAIL\n"},
		{"either", "VISIBLE EITHER OF WIN AN FAIL", "WIN\n"},
		{"won", "VISIBLE WON OF WIN AN WIN", "FAIL\n"},
		{"not", "VISIBLE NOT FAIL", "WIN\n"},
		{"all", "VISIBLE ALL OF WIN AN WIN AN FAIL MKAY", "FAIL\n"},
		{"any", "VISIBLE ANY OF FAIL AN FAIL AN WIN MKAY", "WIN\n"},
		{"saem number", "VISIBLE BOTH SAEM 3 AN 3", "WIN\n"},
		{"diffrint number", "VISIBLE DIFFRINT 3 AN 4", "WIN\n"},
		{"saem yarn", `VISIBLE BOTH SAEM "abc" AN "abc"`, "WIN\n"},
		{"saem yarn differs", `VISIBLE BOTH SAEM "abc" AN "abd"`, "FAIL\n"},
		{"saem yarn sizes", `VISIBLE BOTH SAEM "ab" AN "abc"`, "FAIL\n"},
		{"diffrint yarn", `VISIBLE DIFFRINT "ab" AN "abc"`, "WIN\n"},
		{"smoosh", `VISIBLE SMOOSH "a" AN "b" AN "c" MKAY`, "abc\n"},
		{"visible mixed", `VISIBLE "a" AN 1 AN WIN AN 2.5`, "a1WIN2.50\n"},
		{"maek yarn to number", `VISIBLE SUM OF MAEK "42" A NUMBER AN 1`, "43\n"},
		{"maek yarn to numbar", `VISIBLE MAEK " 2.5x" A NUMBAR`, "2.50\n"},
		{"maek numbar to yarn", "VISIBLE MAEK 3.14159 A YARN", "3.14\n"},
		{"maek numbar to number", "VISIBLE MAEK 3.9 A NUMBER", "3\n"},
		{"maek number to numbar", "VISIBLE MAEK 3 A NUMBAR", "3.00\n"},
		{"maek troof to number", "VISIBLE MAEK WIN A NUMBER", "1\n"},
		{"maek number to troof", "VISIBLE MAEK 0 A TROOF", "FAIL\n"},
		{"maek numbar to troof", "VISIBLE MAEK 0.5 A TROOF", "WIN\n"},
		{"maek yarn to troof", `VISIBLE MAEK "" A TROOF`, "FAIL\n"},
		{"it", "SUM OF 1 AN 2\nVISIBLE IT", "3\n"},
		{"it changes type", "SUM OF 1 AN 2\n\"cat\"\nVISIBLE IT", "cat\n"},
		{"variable", "I HAS A x ITZ NUMBER R 5\nx R SUM OF x AN 1\nVISIBLE x", "6\n"},
		{"default value", "I HAS A x ITZ NUMBER\nVISIBLE x", "0\n"},
		{"yarn reassign", "I HAS A s ITZ YARN R \"hello\"\ns R \"bye\"\nVISIBLE s", "bye\n"},
		{"yarn copy", "I HAS A a ITZ YARN R \"one\"\nI HAS A b ITZ YARN R a\na R \"two\"\nVISIBLE a \" \" b", "two one\n"},
		{"nested", "VISIBLE SUM OF PRODUKT OF 2 AN 3 AN QUOSHUNT OF 9 AN 3", "9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runProgram(t, tt.body, ""); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGimmeh(t *testing.T) {
	body := "I HAS A name ITZ YARN\nGIMMEH name\nVISIBLE \"HAI \" name \"!\""
	if got := runProgram(t, body, "cat\n"); got != "HAI cat!\n" {
		t.Errorf("output = %q", got)
	}
	if got := runProgram(t, body, ""); got != "HAI !\n" {
		t.Errorf("output at EOF = %q", got)
	}
}

func TestGimmehNumber(t *testing.T) {
	body := "I HAS A n ITZ YARN\nGIMMEH n\nVISIBLE PRODUKT OF MAEK n A NUMBER AN 2"
	if got := runProgram(t, body, "21\r\n"); got != "42\n" {
		t.Errorf("output = %q", got)
	}
}

func TestDivisionByZero(t *testing.T) {
	prog := compile(t, "HAI 1.2\nQUOSHUNT OF 1.0 AN 0.0\nKTHXBYE")
	err := vm.NewForProgram(prog, vm.WithOutput(&bytes.Buffer{})).Run(prog)
	var rerr *vm.RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("err = %v, want RuntimeError", err)
	}
	if rerr.Op != ir.OP_DIV || !strings.Contains(rerr.Error(), "division by zero") {
		t.Errorf("got %v", rerr)
	}
}

func TestStackFaults(t *testing.T) {
	tests := []struct {
		name  string
		stmts []ir.Statement
		want  string
	}{
		{"underflow", []ir.Statement{ir.Add(), ir.Add()}, "stack underflow"},
		{"overflow", []ir.Statement{ir.Push(1), ir.Push(2), ir.Push(3), ir.Push(4)}, "stack overflow"},
		{"double free", []ir.Statement{
			ir.Push(2), ir.Alloc(), ir.Hook(0),
			ir.Push(2), ir.RefHook(0), ir.Copy(), ir.Free(),
			ir.Push(2), ir.RefHook(0), ir.Copy(), ir.Free(),
		}, "double free"},
		{"heap exhausted", []ir.Statement{ir.Push(100), ir.Alloc()}, "heap exhausted"},
		{"foreign", []ir.Statement{ir.CallForeign("nope")}, "unknown foreign routine"},
		{"call", []ir.Statement{ir.Call("nope")}, "undefined function"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := &ir.Program{Entry: &ir.EntryPoint{Hooks: 1, Statements: tt.stmts}}
			err := vm.New(5, 16).Run(prog)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestCancellation(t *testing.T) {
	prog := &ir.Program{Entry: &ir.EntryPoint{Statements: []ir.Statement{
		ir.Push(1), ir.BeginWhile(), ir.Push(1), ir.EndWhile(), ir.Halt(),
	}}}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	m := vm.New(16, 16)
	m.SetContext(ctx)
	if err := m.Run(prog); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestFunctionCall(t *testing.T) {
	prog := &ir.Program{
		Functions: []*ir.Function{{Name: "seven", Statements: []ir.Statement{
			ir.Push(7), ir.SetReturn(),
		}}},
		Entry: &ir.EntryPoint{Hooks: 1, Statements: []ir.Statement{
			ir.Call("seven"), ir.AccessReturn(), ir.Hook(0), ir.Halt(),
		}},
	}
	m := vm.New(16, 16)
	if err := m.Run(prog); err != nil {
		t.Fatal(err)
	}
	if m.Slot(0) != 7 {
		t.Errorf("slot 0 = %v", m.Slot(0))
	}
}

func TestWithRoutine(t *testing.T) {
	called := false
	prog := &ir.Program{Entry: &ir.EntryPoint{Statements: []ir.Statement{ir.CallForeign("prend"), ir.Halt()}}}
	m := vm.New(8, 8, vm.WithRoutine("prend", func(*vm.Machine) error {
		called = true
		return nil
	}))
	if err := m.Run(prog); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("replacement routine not called")
	}
}
