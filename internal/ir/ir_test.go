package ir

import (
	"strings"
	"testing"

	"github.com/funvibe/lolc/internal/config"
)

func TestStackEffects(t *testing.T) {
	tests := []struct {
		stmt Statement
		want int
	}{
		{Push(1), 1},
		{Add(), -1},
		{Sign(), 0},
		{Alloc(), 0},
		{Free(), -2},
		{Store(3), -4},
		{Load(3), 2},
		{Load(0), -1},
		{Hook(2), -1},
		{RefHook(2), 1},
		{Copy(), 0},
		{Mov(), -2},
		{Dup(), 1},
		{BeginWhile(), -1},
		{EndFrame(2, 3), -7},
		{CallForeign(config.PrintStringFunc), -2},
		{CallForeign(config.StringToIntFunc), -1},
		{CallForeign(config.PrendFunc), 0},
	}
	for _, tt := range tests {
		got, ok := tt.stmt.StackEffect()
		if !ok || got != tt.want {
			t.Errorf("%s: effect = %d (%v), want %d", tt.stmt, got, ok, tt.want)
		}
	}
	if _, ok := Call("f").StackEffect(); ok {
		t.Error("calls to compiled functions have no static effect")
	}
}

func TestVerifyBalanced(t *testing.T) {
	stmts := []Statement{
		Push(1), Hook(0),
		RefHook(0), Copy(), Push(2), Sub(),
		BeginWhile(), Push(0), RefHook(0), Mov(), Push(0), EndWhile(),
		Halt(),
	}
	if err := Verify(stmts); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyRejects(t *testing.T) {
	cases := map[string][]Statement{
		"underflow":  {Add()},
		"leftover":   {Push(1)},
		"loop depth": {Push(1), BeginWhile(), EndWhile()},
		"open loop":  {Push(1), BeginWhile(), Push(0)},
		"stray end":  {EndWhile()},
		"unknown":    {Call("f")},
	}
	for name, stmts := range cases {
		if err := Verify(stmts); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestDisassemble(t *testing.T) {
	prog := &Program{Entry: &EntryPoint{StackSize: 64, HeapSize: 128, Hooks: 1, Statements: []Statement{
		Push(2.5), Hook(0), Push(1), BeginWhile(), Push(0), EndWhile(), CallForeign("prend"), Halt(),
	}}}
	out := Disassemble(prog, "main")
	want := `; stack 64, heap 128, hooks 1
== main ==
0000 PUSH 2.5
0001 HOOK 0
0002 PUSH 1
0003 BEGIN_WHILE
0004   PUSH 0
0005 END_WHILE
0006 CALL_FOREIGN prend
0007 HALT
`
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
	if !strings.Contains(out, "PUSH 2.5") {
		t.Error("values should print without trailing zeros")
	}
}

func TestCount(t *testing.T) {
	prog := &Program{Entry: &EntryPoint{Statements: []Statement{Push(1), Push(2), Add(), Hook(0)}}}
	if prog.Count(OP_PUSH) != 2 || prog.Count(OP_MUL) != 0 {
		t.Error("unexpected counts")
	}
}
