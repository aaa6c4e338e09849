package ir

import (
	"fmt"
	"strconv"

	"github.com/funvibe/lolc/internal/config"
)

// Statement is one instruction. Only the operand fields its opcode uses
// are meaningful: Value for PUSH, N for STORE/LOAD/HOOK/REF_HOOK and the
// argument count of END_FRAME, M for the local count of END_FRAME, Name
// for CALL and CALL_FOREIGN.
type Statement struct {
	Op    Opcode
	Value float64
	N     int
	M     int
	Name  string
}

func Push(v float64) Statement            { return Statement{Op: OP_PUSH, Value: v} }
func Dup() Statement                      { return Statement{Op: OP_DUP} }
func Add() Statement                      { return Statement{Op: OP_ADD} }
func Sub() Statement                      { return Statement{Op: OP_SUB} }
func Mul() Statement                      { return Statement{Op: OP_MUL} }
func Div() Statement                      { return Statement{Op: OP_DIV} }
func Mod() Statement                      { return Statement{Op: OP_MOD} }
func Sign() Statement                     { return Statement{Op: OP_SIGN} }
func Alloc() Statement                    { return Statement{Op: OP_ALLOC} }
func Free() Statement                     { return Statement{Op: OP_FREE} }
func Store(n int) Statement               { return Statement{Op: OP_STORE, N: n} }
func Load(n int) Statement                { return Statement{Op: OP_LOAD, N: n} }
func Hook(i int) Statement                { return Statement{Op: OP_HOOK, N: i} }
func RefHook(i int) Statement             { return Statement{Op: OP_REF_HOOK, N: i} }
func Copy() Statement                     { return Statement{Op: OP_COPY} }
func Mov() Statement                      { return Statement{Op: OP_MOV} }
func Call(name string) Statement          { return Statement{Op: OP_CALL, Name: name} }
func CallForeign(name string) Statement   { return Statement{Op: OP_CALL_FOREIGN, Name: name} }
func BeginWhile() Statement               { return Statement{Op: OP_BEGIN_WHILE} }
func EndWhile() Statement                 { return Statement{Op: OP_END_WHILE} }
func LoadBasePtr() Statement              { return Statement{Op: OP_LOAD_BASE_PTR} }
func EstablishFrame() Statement           { return Statement{Op: OP_ESTABLISH_FRAME} }
func EndFrame(args, locals int) Statement { return Statement{Op: OP_END_FRAME, N: args, M: locals} }
func SetReturn() Statement                { return Statement{Op: OP_SET_RETURN} }
func AccessReturn() Statement             { return Statement{Op: OP_ACCESS_RETURN} }
func Halt() Statement                     { return Statement{Op: OP_HALT} }

// StackEffect returns the net change in stack depth and whether it is
// statically known. Calls to compiled functions are not.
func (s Statement) StackEffect() (int, bool) {
	if e, ok := fixedEffects[s.Op]; ok {
		return e, true
	}
	switch s.Op {
	case OP_STORE:
		return -(s.N + 1), true
	case OP_LOAD:
		return s.N - 1, true
	case OP_END_FRAME:
		return -(s.N + s.M + 2), true
	case OP_CALL_FOREIGN:
		if e, ok := config.ForeignRoutines[s.Name]; ok {
			return e[1] - e[0], true
		}
	}
	return 0, false
}

// reads is how many values the instruction consumes before pushing.
func (s Statement) reads() int {
	switch s.Op {
	case OP_STORE:
		return s.N + 1
	case OP_CALL_FOREIGN:
		return config.ForeignRoutines[s.Name][0]
	}
	return minDepth[s.Op]
}

func (s Statement) String() string {
	name := s.Op.String()
	switch s.Op {
	case OP_PUSH:
		return name + " " + FormatValue(s.Value)
	case OP_STORE, OP_LOAD, OP_HOOK, OP_REF_HOOK:
		return fmt.Sprintf("%s %d", name, s.N)
	case OP_END_FRAME:
		return fmt.Sprintf("%s %d %d", name, s.N, s.M)
	case OP_CALL, OP_CALL_FOREIGN:
		return name + " " + s.Name
	}
	return name
}

// FormatValue prints integral values without a fractional part.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Function is a compiled user routine.
type Function struct {
	Name       string
	Statements []Statement
}

// EntryPoint is the program body. Hooks is the number of frame slots the
// body uses; the assembler reserves that many zeroed cells before
// establishing the frame.
type EntryPoint struct {
	StackSize  int
	HeapSize   int
	Hooks      int
	Statements []Statement
}

// Program is a complete lowered program.
type Program struct {
	Functions []*Function
	Entry     *EntryPoint
}

// Count returns the number of statements with opcode op in the entry body.
func (p *Program) Count(op Opcode) int {
	n := 0
	for _, s := range p.Entry.Statements {
		if s.Op == op {
			n++
		}
	}
	return n
}
