package analyzer

import (
	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/config"
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/ir"
	"github.com/funvibe/lolc/internal/token"
	"github.com/funvibe/lolc/internal/typesystem"
)

// lowerSmoosh concatenates operands into one fresh block. Operand sizes are
// only known after lowering, so the operands are lowered twice: once to
// measure, with the emitted code and hook state rolled back, and once for
// real. With implicit set, non-YARN operands are cast to YARN first.
func (a *Analyzer) lowerSmoosh(operands []ast.Expression, tok token.Token, implicit bool) value {
	mark := len(a.code)
	allocState := a.alloc.Snapshot()
	owned := a.scope.SnapshotHooks()
	errCount := len(a.errors)

	total := 0
	ok := true
	for _, operand := range operands {
		v := a.smooshOperand(operand, implicit)
		if v.failed() {
			ok = false
			continue
		}
		if !v.typ.Is(typesystem.Yarn) {
			a.errorf(diagnostics.ErrA003, v.tok, "Expected YARN type but got %s", v.typ)
			ok = false
			continue
		}
		total += v.typ.Size
	}

	a.code = a.code[:mark]
	a.alloc.Restore(allocState)
	a.scope.RestoreHooks(owned)
	if !ok || len(a.errors) > errCount {
		return a.sentinel(tok)
	}

	a.emit(ir.Push(float64(total)), ir.Alloc())
	dst := a.bind(typesystem.TYarn(total), tok)
	offset := 0
	for _, operand := range operands {
		v := a.smooshOperand(operand, implicit)
		if n := v.typ.Size; n > 0 {
			a.load(v)
			a.emit(ir.Load(n))
			a.load(dst)
			a.emit(ir.Push(float64(offset)), ir.Add(), ir.Store(n))
			offset += n
		}
		a.discard(v)
	}
	return dst
}

func (a *Analyzer) smooshOperand(operand ast.Expression, implicit bool) value {
	v := a.lower(operand)
	if implicit && !v.failed() && !v.typ.Is(typesystem.Yarn) {
		v = a.cast(v, typesystem.Yarn, v.tok)
	}
	return v
}

type castKey struct {
	from, to typesystem.Kind
}

type castFunc func(a *Analyzer, v value, tok token.Token) value

// casts holds every supported (from, to) pair except identities.
var casts = map[castKey]castFunc{
	{typesystem.Number, typesystem.Numbar}: foreignCast(config.IntToFloatFunc, typesystem.TNumbar),
	{typesystem.Number, typesystem.Troof}:  nonZero,
	{typesystem.Number, typesystem.Yarn}:   toYarn(config.IntToStringFunc),

	{typesystem.Numbar, typesystem.Number}: foreignCast(config.FloatToIntFunc, typesystem.TNumber),
	{typesystem.Numbar, typesystem.Troof}:  nonZero,
	{typesystem.Numbar, typesystem.Yarn}:   toYarn(config.FloatToStringFunc),

	{typesystem.Troof, typesystem.Number}: retag(typesystem.TNumber),
	{typesystem.Troof, typesystem.Numbar}: retag(typesystem.TNumbar),
	{typesystem.Troof, typesystem.Yarn}:   toYarn(config.TroofToStringFunc),

	{typesystem.Yarn, typesystem.Number}: fromYarn(config.StringToIntFunc, typesystem.TNumber),
	{typesystem.Yarn, typesystem.Numbar}: fromYarn(config.StringToFloatFunc, typesystem.TNumbar),
	{typesystem.Yarn, typesystem.Troof}:  yarnToTroof,
}

// cast converts v to kind to, consuming v.
func (a *Analyzer) cast(v value, to typesystem.Kind, tok token.Token) value {
	if v.typ.Is(typesystem.Noob) || to == typesystem.Noob {
		a.errorf(diagnostics.ErrA003, v.tok, "Cannot cast %s to %s", v.typ, to)
		a.discard(v)
		return a.sentinel(tok)
	}
	if v.typ.Kind == to {
		return v
	}
	fn, ok := casts[castKey{v.typ.Kind, to}]
	if !ok {
		a.errorf(diagnostics.ErrA003, v.tok, "Cannot cast %s to %s", v.typ, to)
		a.discard(v)
		return a.sentinel(tok)
	}
	return fn(a, v, tok)
}

func retag(t typesystem.Type) castFunc {
	return func(a *Analyzer, v value, tok token.Token) value {
		v.typ = t
		return v
	}
}

func foreignCast(routine string, t typesystem.Type) castFunc {
	return func(a *Analyzer, v value, tok token.Token) value {
		a.load(v)
		a.emit(ir.CallForeign(routine))
		a.release(v)
		return a.bind(t, tok)
	}
}

func nonZero(a *Analyzer, v value, tok token.Token) value {
	a.emit(ir.Push(0))
	res := a.bind(typesystem.TTroof, tok)
	a.load(v)
	a.writeIfTrue(res.hook, 1)
	a.release(v)
	return res
}

func toYarn(routine string) castFunc {
	return func(a *Analyzer, v value, tok token.Token) value {
		a.emit(ir.Push(config.ConvertedYarnSize), ir.Alloc())
		dst := a.bind(typesystem.TYarn(config.ConvertedYarnSize), tok)
		a.load(v)
		a.load(dst)
		a.emit(ir.CallForeign(routine))
		a.release(v)
		return dst
	}
}

func fromYarn(routine string, t typesystem.Type) castFunc {
	return func(a *Analyzer, v value, tok token.Token) value {
		a.load(v)
		a.emit(ir.Push(float64(v.typ.Size)), ir.CallForeign(routine))
		a.discard(v)
		return a.bind(t, tok)
	}
}

// yarnToTroof is decided statically: a YARN is WIN when it has cells.
func yarnToTroof(a *Analyzer, v value, tok token.Token) value {
	if v.typ.Size > 0 {
		a.emit(ir.Push(1))
	} else {
		a.emit(ir.Push(0))
	}
	a.discard(v)
	return a.bind(typesystem.TTroof, tok)
}
