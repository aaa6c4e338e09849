package analyzer

import (
	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/ir"
	"github.com/funvibe/lolc/internal/typesystem"
)

func (a *Analyzer) VisitNumberLiteral(e *ast.NumberLiteral) {
	a.emit(ir.Push(float64(e.Value)))
	a.produce(a.bind(typesystem.TNumber, e.Token))
}

func (a *Analyzer) VisitNumbarLiteral(e *ast.NumbarLiteral) {
	a.emit(ir.Push(e.Value))
	a.produce(a.bind(typesystem.TNumbar, e.Token))
}

func (a *Analyzer) VisitTroofLiteral(e *ast.TroofLiteral) {
	if e.Value {
		a.emit(ir.Push(1))
	} else {
		a.emit(ir.Push(0))
	}
	a.produce(a.bind(typesystem.TTroof, e.Token))
}

// VisitYarnLiteral allocates one cell per byte and stores the bytes in a
// single STORE.
func (a *Analyzer) VisitYarnLiteral(e *ast.YarnLiteral) {
	data := []byte(e.Value)
	n := len(data)

	a.emit(ir.Push(float64(n)), ir.Alloc())
	v := a.bind(typesystem.TYarn(n), e.Token)
	if n > 0 {
		for _, c := range data {
			a.emit(ir.Push(float64(c)))
		}
		a.load(v)
		a.emit(ir.Store(n))
	}
	a.produce(v)
}

func (a *Analyzer) VisitVariableReference(e *ast.VariableReference) {
	variable, ok := a.scope.Lookup(e.Name)
	if !ok {
		a.errorf(diagnostics.ErrA001, e.Token, "Variable %s is not declared", e.Name)
		a.produce(a.sentinel(e.Token))
		return
	}
	a.produce(a.copyOf(variable.Hook, variable.Type, e.Token))
}

func (a *Analyzer) VisitItReference(e *ast.ItReference) {
	if a.it.Type.Is(typesystem.Noob) {
		a.errorf(diagnostics.ErrA004, e.Token, "Implicit variable IT is used before it holds a value")
		a.produce(a.sentinel(e.Token))
		return
	}
	a.produce(a.copyOf(a.it.Hook, a.it.Type, e.Token))
}

func (a *Analyzer) VisitBinaryExpression(e *ast.BinaryExpression) {
	switch e.Operator {
	case ast.OpSum, ast.OpDiff, ast.OpProdukt, ast.OpQuoshunt, ast.OpMod:
		a.produce(a.lowerArithmetic(e))
	case ast.OpBiggr, ast.OpSmallr:
		a.produce(a.lowerExtremum(e))
	case ast.OpBoth, ast.OpEither, ast.OpWon:
		a.produce(a.lowerConnective(e))
	case ast.OpSaem, ast.OpDiffrint:
		a.produce(a.lowerEquality(e))
	default:
		a.errorf(diagnostics.ErrA005, e.Token, "Operator %s is not supported", e.Operator)
		a.produce(a.sentinel(e.Token))
	}
}

func (a *Analyzer) VisitNotExpression(e *ast.NotExpression) {
	v := a.lower(e.Operand)
	if v.failed() {
		a.produce(a.sentinel(e.Token))
		return
	}
	if !v.typ.Is(typesystem.Troof) {
		a.errorf(diagnostics.ErrA003, v.tok, "Expected TROOF type but got %s", v.typ)
		a.discard(v)
		a.produce(a.sentinel(e.Token))
		return
	}
	a.load(v)
	a.emit(ir.Push(1), ir.Add(), ir.Push(2), ir.Mod())
	a.release(v)
	a.produce(a.bind(typesystem.TTroof, e.Token))
}

func (a *Analyzer) VisitVariadicExpression(e *ast.VariadicExpression) {
	switch e.Operator {
	case ast.OpAll, ast.OpAny:
		a.produce(a.lowerReduction(e))
	case ast.OpSmoosh:
		a.produce(a.lowerSmoosh(e.Operands, e.Token, false))
	default:
		a.errorf(diagnostics.ErrA005, e.Token, "Operator %s is not supported", e.Operator)
		a.produce(a.sentinel(e.Token))
	}
}

func (a *Analyzer) VisitMaekExpression(e *ast.MaekExpression) {
	v := a.lower(e.Value)
	if v.failed() {
		a.produce(a.sentinel(e.Token))
		return
	}
	to, _ := typesystem.FromName(e.Type.Name)
	a.produce(a.cast(v, to.Kind, e.Type.Token))
}

func (a *Analyzer) VisitCallExpression(e *ast.CallExpression) {
	a.errorf(diagnostics.ErrA005, e.Token, "Function call %s is not supported", e.Function.Value)
	a.produce(a.sentinel(e.Token))
}
