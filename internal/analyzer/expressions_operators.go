package analyzer

import (
	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/ir"
	"github.com/funvibe/lolc/internal/typesystem"
)

var arithmeticOps = map[ast.Operator]func() ir.Statement{
	ast.OpSum:      ir.Add,
	ast.OpDiff:     ir.Sub,
	ast.OpProdukt:  ir.Mul,
	ast.OpQuoshunt: ir.Div,
	ast.OpMod:      ir.Mod,
}

// operands lowers both sides of e and type-checks them. The left operand
// must satisfy accept; the right one must have the left one's type. At
// most one diagnostic is reported. On failure both operands are already
// discarded.
func (a *Analyzer) operands(e *ast.BinaryExpression, accept func(typesystem.Type) bool, want string) (value, value, bool) {
	l := a.lower(e.Left)
	r := a.lower(e.Right)
	if l.failed() || r.failed() {
		a.discard(l, r)
		return l, r, false
	}
	if !accept(l.typ) {
		a.errorf(diagnostics.ErrA003, l.tok, "Expected %s type but got %s", want, l.typ)
		a.discard(l, r)
		return l, r, false
	}
	if !r.typ.Equals(l.typ) {
		a.errorf(diagnostics.ErrA003, r.tok, "Expected %s type but got %s", l.typ, r.typ)
		a.discard(l, r)
		return l, r, false
	}
	return l, r, true
}

func (a *Analyzer) lowerArithmetic(e *ast.BinaryExpression) value {
	accept, want := typesystem.Type.IsNumeric, "NUMBER or NUMBAR"
	if e.Operator == ast.OpMod {
		accept = func(t typesystem.Type) bool { return t.Is(typesystem.Number) }
		want = "NUMBER"
	}
	l, r, ok := a.operands(e, accept, want)
	if !ok {
		return a.sentinel(e.Token)
	}

	if e.Operator == ast.OpQuoshunt && l.typ.Is(typesystem.Number) {
		// Integer division truncates: (a - a mod b) / b.
		a.load(l)
		a.load(l)
		a.load(r)
		a.emit(ir.Mod(), ir.Sub())
		a.load(r)
		a.emit(ir.Div())
	} else {
		a.load(l)
		a.load(r)
		a.emit(arithmeticOps[e.Operator]())
	}
	a.release(l)
	a.release(r)
	return a.bind(l.typ, e.Token)
}

// lowerExtremum computes (x + y ± |x - y|) / 2 with |d| = sign(d) * d.
func (a *Analyzer) lowerExtremum(e *ast.BinaryExpression) value {
	l, r, ok := a.operands(e, typesystem.Type.IsNumeric, "NUMBER or NUMBAR")
	if !ok {
		return a.sentinel(e.Token)
	}
	a.load(l)
	a.load(r)
	a.emit(ir.Add())
	a.load(l)
	a.load(r)
	a.emit(ir.Sub(), ir.Dup(), ir.Sign(), ir.Mul())
	if e.Operator == ast.OpBiggr {
		a.emit(ir.Add())
	} else {
		a.emit(ir.Sub())
	}
	a.emit(ir.Push(2), ir.Div())
	a.release(l)
	a.release(r)
	return a.bind(l.typ, e.Token)
}

func isTroof(t typesystem.Type) bool { return t.Is(typesystem.Troof) }

// emitOr leaves a + b - a*b on the stack.
func (a *Analyzer) emitOr(x, y value) {
	a.load(x)
	a.load(y)
	a.emit(ir.Add())
	a.load(x)
	a.load(y)
	a.emit(ir.Mul(), ir.Sub())
}

func (a *Analyzer) lowerConnective(e *ast.BinaryExpression) value {
	l, r, ok := a.operands(e, isTroof, "TROOF")
	if !ok {
		return a.sentinel(e.Token)
	}
	switch e.Operator {
	case ast.OpBoth:
		a.load(l)
		a.load(r)
		a.emit(ir.Mul())
	case ast.OpEither:
		a.emitOr(l, r)
	case ast.OpWon:
		a.load(l)
		a.load(r)
		a.emit(ir.Add(), ir.Push(2), ir.Mod())
	}
	a.release(l)
	a.release(r)
	return a.bind(typesystem.TTroof, e.Token)
}

// lowerReduction folds ALL OF / ANY OF into an accumulator. Every operand
// is evaluated and checked, even after an earlier one failed.
func (a *Analyzer) lowerReduction(e *ast.VariadicExpression) value {
	start := 0.0
	if e.Operator == ast.OpAll {
		start = 1
	}
	a.emit(ir.Push(start))
	acc := a.bind(typesystem.TTroof, e.Token)

	ok := true
	for _, operand := range e.Operands {
		v := a.lower(operand)
		if v.failed() {
			ok = false
			continue
		}
		if !isTroof(v.typ) {
			a.errorf(diagnostics.ErrA003, v.tok, "Expected TROOF type but got %s", v.typ)
			a.discard(v)
			ok = false
			continue
		}
		if e.Operator == ast.OpAll {
			a.load(acc)
			a.load(v)
			a.emit(ir.Mul())
		} else {
			a.emitOr(acc, v)
		}
		a.emit(ir.RefHook(acc.hook), ir.Mov())
		a.release(v)
	}

	if !ok {
		a.release(acc)
		return a.sentinel(e.Token)
	}
	return acc
}

// lowerEquality compares two values of the same type. Scalars are equal
// when their difference is zero. YARNs of different sizes are never equal;
// otherwise every cell pair is compared.
func (a *Analyzer) lowerEquality(e *ast.BinaryExpression) value {
	l, r, ok := a.operands(e, func(typesystem.Type) bool { return true }, "any")
	if !ok {
		return a.sentinel(e.Token)
	}

	if l.typ.Is(typesystem.Yarn) && l.typ.Size != r.typ.Size {
		a.emit(ir.Push(0))
		res := a.bind(typesystem.TTroof, e.Token)
		a.discard(l, r)
		return a.invertIf(e.Operator == ast.OpDiffrint, res)
	}

	a.emit(ir.Push(1))
	res := a.bind(typesystem.TTroof, e.Token)
	if l.typ.Is(typesystem.Yarn) {
		for i := 0; i < l.typ.Size; i++ {
			a.load(l)
			a.emit(ir.Push(float64(i)), ir.Add(), ir.Load(1))
			a.load(r)
			a.emit(ir.Push(float64(i)), ir.Add(), ir.Load(1))
			a.emit(ir.Sub())
			a.writeIfTrue(res.hook, 0)
		}
	} else {
		a.load(l)
		a.load(r)
		a.emit(ir.Sub())
		a.writeIfTrue(res.hook, 0)
	}
	a.discard(l, r)
	return a.invertIf(e.Operator == ast.OpDiffrint, res)
}

func (a *Analyzer) invertIf(invert bool, v value) value {
	if !invert {
		return v
	}
	a.load(v)
	a.emit(ir.Push(1), ir.Add(), ir.Push(2), ir.Mod(), ir.RefHook(v.hook), ir.Mov())
	return v
}
