// Package analyzer checks a parsed program and lowers it to IR.
//
// Every intermediate value lives in its own hook; the operand stack is
// empty between expressions. A value owns its hook and, for YARNs, the
// heap block the hook points at. Operators consume their operands: they
// release the operand hooks (and free YARN blocks) once the result is on
// the stack.
package analyzer

import (
	"fmt"

	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/config"
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/hooks"
	"github.com/funvibe/lolc/internal/ir"
	"github.com/funvibe/lolc/internal/symbols"
	"github.com/funvibe/lolc/internal/token"
	"github.com/funvibe/lolc/internal/typesystem"
)

// value is a lowered expression result.
type value struct {
	hook int
	typ  typesystem.Type
	tok  token.Token
}

func (v value) failed() bool { return v.hook == hooks.None }

// Analyzer lowers one program.
type Analyzer struct {
	alloc *hooks.Allocator
	scope *symbols.Scope
	it    *symbols.Variable

	code   []ir.Statement
	errors []*diagnostics.DiagnosticError
	result value
	halted bool
}

// New creates an Analyzer with an empty entry scope holding IT.
func New() *Analyzer {
	alloc := hooks.New()
	scope := symbols.NewScope(config.EntryScopeName, nil, alloc)
	it, _ := scope.Declare(config.ImplicitVarName, typesystem.TNoob)
	a := &Analyzer{alloc: alloc, scope: scope, it: it}
	a.emit(ir.Push(0), ir.Hook(it.Hook))
	return a
}

// Lower checks and lowers program into an IR program with the given
// machine budgets.
func (a *Analyzer) Lower(program *ast.Program, stackSize, heapSize int) (*ir.Program, []*diagnostics.DiagnosticError) {
	program.Accept(a)
	if !a.halted {
		a.exitScope()
		a.emit(ir.Halt())
	}
	return &ir.Program{
		Entry: &ir.EntryPoint{
			StackSize:  stackSize,
			HeapSize:   heapSize,
			Hooks:      a.alloc.HighWater(),
			Statements: a.code,
		},
	}, a.errors
}

// Hooks exposes the allocator for inspection.
func (a *Analyzer) Hooks() *hooks.Allocator { return a.alloc }

// Scope returns the entry scope.
func (a *Analyzer) Scope() *symbols.Scope { return a.scope }

func (a *Analyzer) VisitProgram(p *ast.Program) {
	for _, stmt := range p.Statements {
		stmt.Accept(a)
		if a.halted {
			return
		}
	}
}

func (a *Analyzer) emit(stmts ...ir.Statement) {
	a.code = append(a.code, stmts...)
}

func (a *Analyzer) errorf(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	a.errors = append(a.errors, diagnostics.NewError(code, tok, fmt.Sprintf(format, args...)))
}

// lower evaluates e into a fresh value.
func (a *Analyzer) lower(e ast.Expression) value {
	e.Accept(a)
	v := a.result
	a.result = value{}
	return v
}

// produce sets the result of the expression being visited.
func (a *Analyzer) produce(v value) {
	a.result = v
}

func (a *Analyzer) sentinel(tok token.Token) value {
	return value{hook: hooks.None, typ: typesystem.TNoob, tok: tok}
}

// load pushes the content of v's hook.
func (a *Analyzer) load(v value) {
	a.emit(ir.RefHook(v.hook), ir.Copy())
}

// bind pops the top of the stack into a new hook.
func (a *Analyzer) bind(t typesystem.Type, tok token.Token) value {
	h := a.scope.AllocHook()
	a.emit(ir.Hook(h))
	return value{hook: h, typ: t, tok: tok}
}

// freeBlock frees the heap block of a YARN held in hook h.
func (a *Analyzer) freeBlock(h int, t typesystem.Type) {
	if !t.Is(typesystem.Yarn) {
		return
	}
	a.emit(ir.Push(float64(t.Size)), ir.RefHook(h), ir.Copy(), ir.Free())
}

func (a *Analyzer) release(v value) {
	a.scope.ReleaseHook(v.hook)
}

// discard drops a temporary: its heap block and its hook.
func (a *Analyzer) discard(vs ...value) {
	for _, v := range vs {
		if v.failed() {
			continue
		}
		a.freeBlock(v.hook, v.typ)
		a.release(v)
	}
}

// copyOf deep-copies the value held in hook src. YARNs get a block of
// their own.
func (a *Analyzer) copyOf(src int, t typesystem.Type, tok token.Token) value {
	if t.Is(typesystem.Yarn) {
		a.emit(ir.Push(float64(t.Size)), ir.Alloc())
		dst := a.bind(t, tok)
		a.emit(ir.RefHook(src), ir.Copy(), ir.Load(t.Size))
		a.load(dst)
		a.emit(ir.Store(t.Size))
		return dst
	}
	a.emit(ir.RefHook(src), ir.Copy())
	return a.bind(t, tok)
}

// writeIfTrue emits "if top of stack is non-zero, store 0/1 into hook".
// The loop body runs once and pushes a zero condition to leave.
func (a *Analyzer) writeIfTrue(h int, v float64) {
	a.emit(
		ir.BeginWhile(),
		ir.Push(v), ir.RefHook(h), ir.Mov(),
		ir.Push(0),
		ir.EndWhile(),
	)
}

// exitScope frees the YARN blocks of the scope's variables and returns
// every hook the scope still owns.
func (a *Analyzer) exitScope() {
	if a.scope.Released() {
		return
	}
	for _, v := range a.scope.Variables() {
		a.freeBlock(v.Hook, v.Type)
	}
	a.scope.Release()
}
