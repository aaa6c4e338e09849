package vm

import (
	"errors"
	"fmt"
	"math"

	"github.com/funvibe/lolc/internal/ir"
)

var errDivisionByZero = errors.New("division by zero")
var errModuloByZero = errors.New("modulo by zero")
var errHeapExhausted = errors.New("heap exhausted")

func (m *Machine) step(s ir.Statement) error {
	switch s.Op {
	case ir.OP_PUSH:
		m.push(s.Value)

	case ir.OP_DUP:
		v := m.pop()
		m.push(v)
		m.push(v)

	case ir.OP_ADD, ir.OP_SUB, ir.OP_MUL, ir.OP_DIV, ir.OP_MOD:
		return m.binaryOp(s.Op)

	case ir.OP_SIGN:
		if m.pop() >= 0 {
			m.push(1)
		} else {
			m.push(-1)
		}

	case ir.OP_ALLOC:
		addr, err := m.allocate(int(m.pop()))
		if err != nil {
			return err
		}
		m.push(float64(addr))

	case ir.OP_FREE:
		addr := int(m.pop())
		n := int(m.pop())
		return m.release(addr, n)

	case ir.OP_STORE:
		addr := int(m.pop())
		if err := m.checkRange(addr, s.N); err != nil {
			return err
		}
		for i := s.N - 1; i >= 0; i-- {
			m.heap[addr+i] = m.pop()
		}

	case ir.OP_LOAD:
		addr := int(m.pop())
		if err := m.checkRange(addr, s.N); err != nil {
			return err
		}
		for i := 0; i < s.N; i++ {
			m.push(m.heap[addr+i])
		}

	case ir.OP_HOOK:
		v := m.pop()
		if err := m.checkSlot(s.N); err != nil {
			return err
		}
		m.stack[s.N] = v

	case ir.OP_REF_HOOK:
		m.push(float64(s.N))

	case ir.OP_COPY:
		addr := int(m.pop())
		if err := m.checkSlot(addr); err != nil {
			return err
		}
		m.push(m.stack[addr])

	case ir.OP_MOV:
		addr := int(m.pop())
		v := m.pop()
		if err := m.checkSlot(addr); err != nil {
			return err
		}
		m.stack[addr] = v

	case ir.OP_CALL_FOREIGN:
		fn, ok := m.foreign[s.Name]
		if !ok {
			return fmt.Errorf("unknown foreign routine %s", s.Name)
		}
		return fn(m)

	case ir.OP_LOAD_BASE_PTR:
		m.push(float64(m.bp))

	case ir.OP_ESTABLISH_FRAME:
		m.establishFrame()

	case ir.OP_END_FRAME:
		for i := 0; i < s.M; i++ {
			m.pop()
		}
		m.bp = int(m.pop())
		m.pop()
		for i := 0; i < s.N; i++ {
			m.pop()
		}

	case ir.OP_SET_RETURN:
		m.ret = m.pop()

	case ir.OP_ACCESS_RETURN:
		m.push(m.ret)

	default:
		return fmt.Errorf("unhandled opcode %s", s.Op)
	}
	return nil
}

func (m *Machine) binaryOp(op ir.Opcode) error {
	b := m.pop()
	a := m.pop()
	switch op {
	case ir.OP_ADD:
		m.push(a + b)
	case ir.OP_SUB:
		m.push(a - b)
	case ir.OP_MUL:
		m.push(a * b)
	case ir.OP_DIV:
		if b == 0 {
			return errDivisionByZero
		}
		m.push(a / b)
	case ir.OP_MOD:
		if b == 0 {
			return errModuloByZero
		}
		m.push(math.Mod(a, b))
	}
	return nil
}

// allocate hands out the first run of n free cells. Cell 0 is never
// allocated, so address 0 stands for the empty block.
func (m *Machine) allocate(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	run := 0
	for addr := 1; addr < len(m.used); addr++ {
		if m.used[addr] {
			run = 0
			continue
		}
		run++
		if run == n {
			start := addr - n + 1
			for i := start; i <= addr; i++ {
				m.used[i] = true
				m.heap[i] = 0
			}
			m.live += n
			return start, nil
		}
	}
	return 0, fmt.Errorf("%w: no run of %d cells", errHeapExhausted, n)
}

func (m *Machine) release(addr, n int) error {
	if n == 0 {
		return nil
	}
	if err := m.checkRange(addr, n); err != nil {
		return err
	}
	for i := addr; i < addr+n; i++ {
		if !m.used[i] {
			return fmt.Errorf("double free of cell %d", i)
		}
		m.used[i] = false
	}
	m.live -= n
	return nil
}

func (m *Machine) checkRange(addr, n int) error {
	if addr < 0 || n < 0 || addr+n > len(m.heap) {
		return fmt.Errorf("heap access [%d, %d) out of range", addr, addr+n)
	}
	return nil
}

func (m *Machine) checkSlot(addr int) error {
	if addr < 0 || addr >= m.sp {
		return fmt.Errorf("stack slot %d out of range", addr)
	}
	return nil
}
