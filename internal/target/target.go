// Package target defines how lowered IR is rendered into an artifact.
//
// A Target renders one fragment of text per IR statement; Assemble walks
// a program and stitches the fragments together between the target's
// fixed sections. Build turns the assembled text into the final artifact.
package target

import (
	"context"
	"fmt"
	"strings"

	"github.com/funvibe/lolc/internal/ir"
)

type Target interface {
	Name() string

	// Fixed sections, in output order.
	Prelude() string
	Standard() string
	StandardLibrary() string
	FunctionHeader(name string) string
	FunctionDefinition(name, body string) string
	BeginEntryPoint(stackSize, heapSize int) string
	EndEntryPoint() string
	Postlude() string

	Push(v float64) string
	Dup() string
	Add() string
	Sub() string
	Mul() string
	Div() string
	Mod() string
	Sign() string
	Alloc() string
	Free() string
	Store(n int) string
	Load(n int) string
	Hook(i int) string
	RefHook(i int) string
	Copy() string
	Mov() string
	Call(name string) string
	CallForeign(name string) string
	BeginWhile() string
	EndWhile() string
	LoadBasePtr() string
	EstablishFrame() string
	EndFrame(args, locals int) string
	SetReturn() string
	AccessReturn() string
	Halt() string

	// Build writes the artifact for code to output.
	Build(ctx context.Context, code, output string) error
}

// Assemble renders prog with t. The entry point reserves one zeroed cell
// per hook and establishes its frame before the body runs.
func Assemble(t Target, prog *ir.Program) (string, error) {
	if prog == nil || prog.Entry == nil {
		return "", fmt.Errorf("assemble: program has no entry point")
	}

	var sb strings.Builder
	sb.WriteString(t.Prelude())
	sb.WriteString(t.Standard())
	sb.WriteString(t.StandardLibrary())

	for _, fn := range prog.Functions {
		sb.WriteString(t.FunctionHeader(fn.Name))
	}
	for _, fn := range prog.Functions {
		body, err := renderBlock(t, fn.Statements)
		if err != nil {
			return "", fmt.Errorf("assemble %s: %w", fn.Name, err)
		}
		sb.WriteString(t.FunctionDefinition(fn.Name, body))
	}

	entry := prog.Entry
	sb.WriteString(t.BeginEntryPoint(entry.StackSize, entry.HeapSize))
	for i := 0; i < entry.Hooks; i++ {
		sb.WriteString(t.Push(0))
	}
	sb.WriteString(t.EstablishFrame())
	body, err := renderBlock(t, entry.Statements)
	if err != nil {
		return "", fmt.Errorf("assemble entry: %w", err)
	}
	sb.WriteString(body)
	sb.WriteString(t.EndEntryPoint())
	sb.WriteString(t.Postlude())
	return sb.String(), nil
}

func renderBlock(t Target, stmts []ir.Statement) (string, error) {
	var sb strings.Builder
	for i, s := range stmts {
		frag, err := Render(t, s)
		if err != nil {
			return "", fmt.Errorf("statement %d: %w", i, err)
		}
		sb.WriteString(frag)
	}
	return sb.String(), nil
}

// Render dispatches a single statement to the matching Target method.
func Render(t Target, s ir.Statement) (string, error) {
	switch s.Op {
	case ir.OP_PUSH:
		return t.Push(s.Value), nil
	case ir.OP_DUP:
		return t.Dup(), nil
	case ir.OP_ADD:
		return t.Add(), nil
	case ir.OP_SUB:
		return t.Sub(), nil
	case ir.OP_MUL:
		return t.Mul(), nil
	case ir.OP_DIV:
		return t.Div(), nil
	case ir.OP_MOD:
		return t.Mod(), nil
	case ir.OP_SIGN:
		return t.Sign(), nil
	case ir.OP_ALLOC:
		return t.Alloc(), nil
	case ir.OP_FREE:
		return t.Free(), nil
	case ir.OP_STORE:
		return t.Store(s.N), nil
	case ir.OP_LOAD:
		return t.Load(s.N), nil
	case ir.OP_HOOK:
		return t.Hook(s.N), nil
	case ir.OP_REF_HOOK:
		return t.RefHook(s.N), nil
	case ir.OP_COPY:
		return t.Copy(), nil
	case ir.OP_MOV:
		return t.Mov(), nil
	case ir.OP_CALL:
		return t.Call(s.Name), nil
	case ir.OP_CALL_FOREIGN:
		return t.CallForeign(s.Name), nil
	case ir.OP_BEGIN_WHILE:
		return t.BeginWhile(), nil
	case ir.OP_END_WHILE:
		return t.EndWhile(), nil
	case ir.OP_LOAD_BASE_PTR:
		return t.LoadBasePtr(), nil
	case ir.OP_ESTABLISH_FRAME:
		return t.EstablishFrame(), nil
	case ir.OP_END_FRAME:
		return t.EndFrame(s.N, s.M), nil
	case ir.OP_SET_RETURN:
		return t.SetReturn(), nil
	case ir.OP_ACCESS_RETURN:
		return t.AccessReturn(), nil
	case ir.OP_HALT:
		return t.Halt(), nil
	}
	return "", fmt.Errorf("unknown opcode %d", s.Op)
}
