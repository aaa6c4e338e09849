package vm

import (
	"errors"
	"fmt"

	"github.com/funvibe/lolc/internal/ir"
)

// code is a statement list with its loop brackets resolved: match[i] is
// the index of the bracket paired with a BEGIN_WHILE or END_WHILE at i.
type code struct {
	stmts []ir.Statement
	match []int
}

func compile(stmts []ir.Statement) (*code, error) {
	c := &code{stmts: stmts, match: make([]int, len(stmts))}
	var open []int
	for i, s := range stmts {
		switch s.Op {
		case ir.OP_BEGIN_WHILE:
			open = append(open, i)
		case ir.OP_END_WHILE:
			if len(open) == 0 {
				return nil, fmt.Errorf("END_WHILE at %d without BEGIN_WHILE", i)
			}
			begin := open[len(open)-1]
			open = open[:len(open)-1]
			c.match[begin] = i
			c.match[i] = begin
		}
	}
	if len(open) > 0 {
		return nil, fmt.Errorf("BEGIN_WHILE at %d is never closed", open[len(open)-1])
	}
	return c, nil
}

func (m *Machine) execute(c *code) (err error) {
	ip := 0
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !(errors.Is(e, errStackUnderflow) || errors.Is(e, errStackOverflow)) {
				panic(r)
			}
			err = &RuntimeError{Op: c.stmts[ip].Op, Index: ip, Err: e}
		}
	}()

	for ip < len(c.stmts) {
		s := c.stmts[ip]
		switch s.Op {
		case ir.OP_BEGIN_WHILE:
			if m.pop() == 0 {
				ip = c.match[ip] + 1
				continue
			}

		case ir.OP_END_WHILE:
			if m.Context != nil {
				if err := m.Context.Err(); err != nil {
					return err
				}
			}
			ip = c.match[ip]
			continue

		case ir.OP_HALT:
			return errHalt

		case ir.OP_CALL:
			fn, ok := m.functions[s.Name]
			if !ok {
				return &RuntimeError{Op: s.Op, Index: ip, Err: fmt.Errorf("undefined function %s", s.Name)}
			}
			if m.depth >= MaxCallDepth {
				return &RuntimeError{Op: s.Op, Index: ip, Err: fmt.Errorf("call depth exceeds %d", MaxCallDepth)}
			}
			m.depth++
			err := m.execute(fn)
			m.depth--
			if err != nil {
				return err
			}

		default:
			if err := m.step(s); err != nil {
				return &RuntimeError{Op: s.Op, Index: ip, Err: err}
			}
		}
		ip++
	}
	return nil
}
