package ir

import "fmt"

// Verify checks that stmts never read below the depth they start at, that
// every loop body leaves exactly its next condition on the stack, and that
// the sequence as a whole is stack-neutral.
func Verify(stmts []Statement) error {
	depth := 0
	var loops []int
	for i, s := range stmts {
		if s.reads() > depth {
			return fmt.Errorf("%04d %s: stack underflow (depth %d)", i, s, depth)
		}
		switch s.Op {
		case OP_BEGIN_WHILE:
			loops = append(loops, depth)
		case OP_END_WHILE:
			if len(loops) == 0 {
				return fmt.Errorf("%04d %s: no matching BEGIN_WHILE", i, s)
			}
			open := loops[len(loops)-1]
			loops = loops[:len(loops)-1]
			if depth != open {
				return fmt.Errorf("%04d %s: loop body changes depth from %d to %d", i, s, open, depth)
			}
			depth = open - 1
			continue
		}
		effect, ok := s.StackEffect()
		if !ok {
			return fmt.Errorf("%04d %s: unknown stack effect", i, s)
		}
		depth += effect
	}
	if len(loops) > 0 {
		return fmt.Errorf("%d unterminated BEGIN_WHILE", len(loops))
	}
	if depth != 0 {
		return fmt.Errorf("sequence leaves %d values on the stack", depth)
	}
	return nil
}
