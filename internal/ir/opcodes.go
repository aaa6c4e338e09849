// Package ir defines the instruction set of the abstract stack machine the
// compiler lowers to.
package ir

// Opcode represents a single machine instruction
type Opcode byte

const (
	// Stack manipulation
	OP_PUSH Opcode = iota // Push immediate value
	OP_DUP                // Duplicate top of stack

	// Arithmetic: pop b, pop a, push a op b
	OP_ADD  // +
	OP_SUB  // -
	OP_MUL  // *
	OP_DIV  // /
	OP_MOD  // remainder, sign of the dividend
	OP_SIGN // x >= 0 ? 1 : -1

	// Heap
	OP_ALLOC // [n] -> [addr]
	OP_FREE  // [n addr] -> []
	OP_STORE // [v0..vn-1 addr] -> []
	OP_LOAD  // [addr] -> [v0..vn-1]

	// Hooks (virtual frame slots)
	OP_HOOK     // pop into hook N
	OP_REF_HOOK // push address of hook N
	OP_COPY     // [addr] -> [value at addr]
	OP_MOV      // [value addr] -> [], write value at addr

	// Calls
	OP_CALL         // call compiled function
	OP_CALL_FOREIGN // call runtime routine

	// Control flow
	OP_BEGIN_WHILE // pop condition, skip to END_WHILE when zero
	OP_END_WHILE   // jump back to matching BEGIN_WHILE

	// Frames
	OP_LOAD_BASE_PTR   // push base pointer
	OP_ESTABLISH_FRAME // push base pointer, base = top
	OP_END_FRAME       // drop locals and args, restore base pointer
	OP_SET_RETURN      // pop into return register
	OP_ACCESS_RETURN   // push return register
	OP_HALT            // stop the machine
)

// OpcodeNames maps opcodes to their string names (for debugging)
var OpcodeNames = map[Opcode]string{
	OP_PUSH:            "PUSH",
	OP_DUP:             "DUP",
	OP_ADD:             "ADD",
	OP_SUB:             "SUB",
	OP_MUL:             "MUL",
	OP_DIV:             "DIV",
	OP_MOD:             "MOD",
	OP_SIGN:            "SIGN",
	OP_ALLOC:           "ALLOC",
	OP_FREE:            "FREE",
	OP_STORE:           "STORE",
	OP_LOAD:            "LOAD",
	OP_HOOK:            "HOOK",
	OP_REF_HOOK:        "REF_HOOK",
	OP_COPY:            "COPY",
	OP_MOV:             "MOV",
	OP_CALL:            "CALL",
	OP_CALL_FOREIGN:    "CALL_FOREIGN",
	OP_BEGIN_WHILE:     "BEGIN_WHILE",
	OP_END_WHILE:       "END_WHILE",
	OP_LOAD_BASE_PTR:   "LOAD_BASE_PTR",
	OP_ESTABLISH_FRAME: "ESTABLISH_FRAME",
	OP_END_FRAME:       "END_FRAME",
	OP_SET_RETURN:      "SET_RETURN",
	OP_ACCESS_RETURN:   "ACCESS_RETURN",
	OP_HALT:            "HALT",
}

func (op Opcode) String() string {
	if name, ok := OpcodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// fixedEffects is the net stack change of opcodes whose effect does not
// depend on an operand.
var fixedEffects = map[Opcode]int{
	OP_PUSH:            1,
	OP_DUP:             1,
	OP_ADD:             -1,
	OP_SUB:             -1,
	OP_MUL:             -1,
	OP_DIV:             -1,
	OP_MOD:             -1,
	OP_SIGN:            0,
	OP_ALLOC:           0,
	OP_FREE:            -2,
	OP_HOOK:            -1,
	OP_REF_HOOK:        1,
	OP_COPY:            0,
	OP_MOV:             -2,
	OP_BEGIN_WHILE:     -1,
	OP_END_WHILE:       0,
	OP_LOAD_BASE_PTR:   1,
	OP_ESTABLISH_FRAME: 1,
	OP_SET_RETURN:      -1,
	OP_ACCESS_RETURN:   1,
	OP_HALT:            0,
}

// minDepth is how many values an opcode reads from the stack.
var minDepth = map[Opcode]int{
	OP_DUP:         1,
	OP_ADD:         2,
	OP_SUB:         2,
	OP_MUL:         2,
	OP_DIV:         2,
	OP_MOD:         2,
	OP_SIGN:        1,
	OP_ALLOC:       1,
	OP_FREE:        2,
	OP_LOAD:        1,
	OP_HOOK:        1,
	OP_COPY:        1,
	OP_MOV:         2,
	OP_BEGIN_WHILE: 1,
	OP_SET_RETURN:  1,
}
