// Package vm executes lowered IR directly. It implements the same opcode
// contract and foreign routines as the C runtime and is used by `lolc run`
// and the test suites.
package vm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/funvibe/lolc/internal/ir"
)

var errStackUnderflow = errors.New("stack underflow")
var errStackOverflow = errors.New("stack overflow")
var errHalt = errors.New("halt")

// MaxCallDepth bounds CALL nesting.
const MaxCallDepth = 1024

// RuntimeError is a machine fault at one statement.
type RuntimeError struct {
	Op    ir.Opcode
	Index int
	Err   error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at %04d %s: %v", e.Index, e.Op, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// Routine is a foreign routine operating on the machine's stack.
type Routine func(m *Machine) error

// Machine is a stack machine with a cell-addressed heap.
type Machine struct {
	stack []float64
	sp    int
	bp    int
	ret   float64

	heap []float64
	used []bool
	live int

	in  *bufio.Reader
	out *bufio.Writer

	foreign   map[string]Routine
	functions map[string]*code
	depth     int

	// Context for cancellation, checked on loop back-edges.
	Context context.Context
}

// Option configures a Machine.
type Option func(*Machine)

// WithOutput sets the writer VISIBLE prints to (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(m *Machine) { m.out = bufio.NewWriter(w) }
}

// WithInput sets the reader GIMMEH reads from (default os.Stdin).
func WithInput(r io.Reader) Option {
	return func(m *Machine) { m.in = bufio.NewReader(r) }
}

// WithRoutine registers or replaces a foreign routine.
func WithRoutine(name string, fn Routine) Option {
	return func(m *Machine) { m.foreign[name] = fn }
}

// New creates a machine with the given stack and heap capacities in cells.
func New(stackSize, heapSize int, opts ...Option) *Machine {
	m := &Machine{
		stack:   make([]float64, stackSize),
		heap:    make([]float64, heapSize),
		used:    make([]bool, heapSize),
		foreign: make(map[string]Routine),
	}
	m.registerForeign()
	for _, opt := range opts {
		opt(m)
	}
	if m.out == nil {
		m.out = bufio.NewWriter(os.Stdout)
	}
	if m.in == nil {
		m.in = bufio.NewReader(os.Stdin)
	}
	return m
}

// NewForProgram sizes a machine from the program's entry budgets.
func NewForProgram(prog *ir.Program, opts ...Option) *Machine {
	return New(prog.Entry.StackSize, prog.Entry.HeapSize, opts...)
}

// SetContext sets the context for cancellation
func (m *Machine) SetContext(ctx context.Context) {
	m.Context = ctx
}

// HeapInUse is the number of allocated heap cells.
func (m *Machine) HeapInUse() int { return m.live }

// StackDepth is the number of values on the stack.
func (m *Machine) StackDepth() int { return m.sp }

// Slot returns stack cell i; hooks of the entry frame live at 0..hooks.
func (m *Machine) Slot(i int) float64 { return m.stack[i] }

// Run executes prog's entry point. It reserves one zeroed cell per hook,
// establishes the frame and runs the body until HALT or its end.
func (m *Machine) Run(prog *ir.Program) (err error) {
	if prog == nil || prog.Entry == nil {
		return errors.New("vm: program has no entry point")
	}
	defer func() {
		if flushErr := m.out.Flush(); err == nil && flushErr != nil {
			err = flushErr
		}
	}()

	m.functions = make(map[string]*code, len(prog.Functions))
	for _, fn := range prog.Functions {
		c, err := compile(fn.Statements)
		if err != nil {
			return fmt.Errorf("vm: function %s: %w", fn.Name, err)
		}
		m.functions[fn.Name] = c
	}
	entry, err := compile(prog.Entry.Statements)
	if err != nil {
		return fmt.Errorf("vm: entry: %w", err)
	}

	if err := m.guard(func() {
		for i := 0; i < prog.Entry.Hooks; i++ {
			m.push(0)
		}
		m.establishFrame()
	}); err != nil {
		return &RuntimeError{Op: ir.OP_ESTABLISH_FRAME, Index: -1, Err: err}
	}

	err = m.execute(entry)
	if errors.Is(err, errHalt) {
		return nil
	}
	return err
}

// guard converts stack panics into errors.
func (m *Machine) guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && (errors.Is(e, errStackUnderflow) || errors.Is(e, errStackOverflow)) {
				err = e
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

func (m *Machine) push(v float64) {
	if m.sp >= len(m.stack) {
		panic(errStackOverflow)
	}
	m.stack[m.sp] = v
	m.sp++
}

func (m *Machine) pop() float64 {
	if m.sp <= 0 {
		panic(errStackUnderflow)
	}
	m.sp--
	return m.stack[m.sp]
}

func (m *Machine) establishFrame() {
	m.push(float64(m.bp))
	m.bp = m.sp
}
