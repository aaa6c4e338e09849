package analyzer

import (
	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/config"
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/ir"
	"github.com/funvibe/lolc/internal/symbols"
	"github.com/funvibe/lolc/internal/token"
	"github.com/funvibe/lolc/internal/typesystem"
)

// VisitExpressionStatement stores the value in IT. IT may change type.
func (a *Analyzer) VisitExpressionStatement(s *ast.ExpressionStatement) {
	v := a.lower(s.Expression)
	if v.failed() {
		return
	}
	a.store(a.it, v)
}

func (a *Analyzer) VisitDeclarationStatement(s *ast.DeclarationStatement) {
	if _, exists := a.scope.LookupLocal(s.Name.Value); exists {
		a.errorf(diagnostics.ErrA002, s.Name.Token, "Variable %s is already declared", s.Name.Value)
		if s.Value != nil {
			a.discard(a.lower(s.Value))
		}
		return
	}

	t, _ := typesystem.FromName(s.Type.Name)
	if t.Is(typesystem.Yarn) {
		a.emit(ir.Push(float64(t.Size)), ir.Alloc())
	} else {
		a.emit(ir.Push(0))
	}
	variable, _ := a.scope.Declare(s.Name.Value, t)
	a.emit(ir.Hook(variable.Hook))

	if s.Value != nil {
		a.assign(variable, s.Value)
	}
}

func (a *Analyzer) VisitAssignmentStatement(s *ast.AssignmentStatement) {
	variable, ok := a.scope.Lookup(s.Name.Value)
	if !ok {
		a.errorf(diagnostics.ErrA001, s.Name.Token, "Variable %s is not declared", s.Name.Value)
		a.discard(a.lower(s.Value))
		return
	}
	a.assign(variable, s.Value)
}

// assign lowers e and writes it into variable. Only IT may change type;
// a YARN variable takes the size of the assigned YARN.
func (a *Analyzer) assign(variable *symbols.Variable, e ast.Expression) {
	v := a.lower(e)
	if v.failed() {
		return
	}
	if variable != a.it && !v.typ.Equals(variable.Type) {
		a.errorf(diagnostics.ErrA003, v.tok, "Variable %s is of type %s but expression is of type %s",
			variable.Name, variable.Type, v.typ)
		a.discard(v)
		return
	}
	a.store(variable, v)
}

// store moves v into variable, freeing the variable's old YARN block. The
// variable takes over v's block.
func (a *Analyzer) store(variable *symbols.Variable, v value) {
	a.freeBlock(variable.Hook, variable.Type)
	a.load(v)
	a.emit(ir.RefHook(variable.Hook), ir.Mov())
	a.release(v)
	variable.Type = v.typ
}

func (a *Analyzer) VisitVisibleStatement(s *ast.VisibleStatement) {
	v := a.lowerSmoosh(s.Operands, s.Token, true)
	if v.failed() {
		return
	}
	a.load(v)
	a.emit(ir.Push(float64(v.typ.Size)), ir.CallForeign(config.PrintStringFunc))
	if !s.Bang {
		a.emit(ir.CallForeign(config.PrendFunc))
	}
	a.discard(v)
}

// VisitGimmehStatement reads one line into a fresh InputYarnSize block.
func (a *Analyzer) VisitGimmehStatement(s *ast.GimmehStatement) {
	variable, ok := a.scope.Lookup(s.Name.Value)
	if !ok {
		a.errorf(diagnostics.ErrA001, s.Name.Token, "Variable %s is not declared", s.Name.Value)
		return
	}
	if !variable.Type.Is(typesystem.Yarn) {
		a.errorf(diagnostics.ErrA003, s.Name.Token, "Variable %s is of type %s but GIMMEH reads a YARN",
			variable.Name, variable.Type)
		return
	}

	a.emit(ir.Push(config.InputYarnSize), ir.Alloc())
	buf := a.bind(typesystem.TYarn(config.InputYarnSize), s.Token)
	a.load(buf)
	a.emit(ir.Push(config.InputYarnSize), ir.CallForeign(config.ReadStringFunc))
	a.store(variable, buf)
}

// VisitKthxbyeStatement releases the entry scope and halts.
func (a *Analyzer) VisitKthxbyeStatement(s *ast.KthxbyeStatement) {
	a.exitScope()
	a.emit(ir.Halt())
	a.halted = true
}

func (a *Analyzer) VisitIfStatement(s *ast.IfStatement) {
	a.unsupported(s.Token, "O RLY?")
}

func (a *Analyzer) VisitSwitchStatement(s *ast.SwitchStatement) {
	a.unsupported(s.Token, "WTF?")
}

func (a *Analyzer) VisitLoopStatement(s *ast.LoopStatement) {
	a.unsupported(s.Token, "IM IN YR")
}

func (a *Analyzer) VisitFunctionStatement(s *ast.FunctionStatement) {
	a.unsupported(s.Token, "HOW IZ I")
}

func (a *Analyzer) VisitReturnStatement(s *ast.ReturnStatement) {
	a.unsupported(s.Token, "FOUND YR")
}

func (a *Analyzer) VisitBreakStatement(s *ast.BreakStatement) {
	a.unsupported(s.Token, "GTFO")
}

func (a *Analyzer) unsupported(tok token.Token, form string) {
	a.errorf(diagnostics.ErrA005, tok, "%s statements are not supported yet", form)
}
