package ir

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of the program
func Disassemble(prog *Program, name string) string {
	var sb strings.Builder

	for _, fn := range prog.Functions {
		disassembleBlock(&sb, fn.Name, fn.Statements)
	}
	if prog.Entry != nil {
		sb.WriteString(fmt.Sprintf("; stack %d, heap %d, hooks %d\n",
			prog.Entry.StackSize, prog.Entry.HeapSize, prog.Entry.Hooks))
		disassembleBlock(&sb, name, prog.Entry.Statements)
	}

	return sb.String()
}

func disassembleBlock(sb *strings.Builder, name string, stmts []Statement) {
	sb.WriteString(fmt.Sprintf("== %s ==\n", name))

	indent := 0
	for offset, s := range stmts {
		if s.Op == OP_END_WHILE && indent > 0 {
			indent--
		}
		sb.WriteString(fmt.Sprintf("%04d ", offset))
		sb.WriteString(strings.Repeat("  ", indent))
		sb.WriteString(s.String())
		sb.WriteString("\n")
		if s.Op == OP_BEGIN_WHILE {
			indent++
		}
	}
}
