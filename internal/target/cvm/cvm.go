// Package cvm renders IR as C source driving a small stack machine
// runtime, and builds it with the host C compiler.
package cvm

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/funvibe/lolc/internal/config"
	"github.com/funvibe/lolc/internal/ir"
	"github.com/funvibe/lolc/internal/target"
	"github.com/funvibe/lolc/internal/toolchain"
)

//go:embed runtime/core.c
var coreSource string

//go:embed runtime/std.c
var stdSource string

var entryTemplate = template.Must(template.New("entry").Parse(`
int main(void) {
	machine *vm = machine_new({{.StackSize}}, {{.HeapSize}});
`))

var _ target.Target = (*Target)(nil)

// Target emits C. Loop bodies are indented by nesting depth.
type Target struct {
	builder *toolchain.Builder
	depth   int
}

// New creates a C target; builder compiles the rendered source.
func New(builder *toolchain.Builder) *Target {
	if builder == nil {
		builder = toolchain.NewBuilder()
	}
	return &Target{builder: builder}
}

func (t *Target) Name() string { return "c" }

func (t *Target) line(format string, args ...interface{}) string {
	return strings.Repeat("\t", t.depth+1) + fmt.Sprintf(format, args...) + "\n"
}

// Prelude also carries the runtime sizes shared with the lowering.
func (t *Target) Prelude() string {
	return fmt.Sprintf("/* generated by lolc %s */\n#define CONVERTED_YARN_SIZE %d\n",
		config.Version, config.ConvertedYarnSize)
}

func (t *Target) Standard() string        { return coreSource }
func (t *Target) StandardLibrary() string { return stdSource }
func (t *Target) Postlude() string        { return "" }

func (t *Target) FunctionHeader(name string) string {
	return fmt.Sprintf("static void fn_%s(machine *vm);\n", name)
}

func (t *Target) FunctionDefinition(name, body string) string {
	return fmt.Sprintf("\nstatic void fn_%s(machine *vm) {\n%s}\n", name, body)
}

func (t *Target) BeginEntryPoint(stackSize, heapSize int) string {
	t.depth = 0
	var buf bytes.Buffer
	data := struct{ StackSize, HeapSize int }{stackSize, heapSize}
	if err := entryTemplate.Execute(&buf, data); err != nil {
		panic(err)
	}
	return buf.String()
}

func (t *Target) EndEntryPoint() string {
	return "\tmachine_drop(vm);\n\treturn 0;\n}\n"
}

func (t *Target) Push(v float64) string { return t.line("machine_push(vm, %s);", ir.FormatValue(v)) }
func (t *Target) Dup() string           { return t.line("machine_dup(vm);") }
func (t *Target) Add() string           { return t.line("machine_add(vm);") }
func (t *Target) Sub() string           { return t.line("machine_subtract(vm);") }
func (t *Target) Mul() string           { return t.line("machine_multiply(vm);") }
func (t *Target) Div() string           { return t.line("machine_divide(vm);") }
func (t *Target) Mod() string           { return t.line("machine_modulo(vm);") }
func (t *Target) Sign() string          { return t.line("machine_sign(vm);") }
func (t *Target) Alloc() string         { return t.line("machine_allocate(vm);") }
func (t *Target) Free() string          { return t.line("machine_free(vm);") }
func (t *Target) Store(n int) string    { return t.line("machine_store(vm, %d);", n) }
func (t *Target) Load(n int) string     { return t.line("machine_load(vm, %d);", n) }
func (t *Target) Hook(i int) string     { return t.line("machine_hook(vm, %d);", i) }
func (t *Target) RefHook(i int) string  { return t.line("machine_ref_hook(vm, %d);", i) }
func (t *Target) Copy() string          { return t.line("machine_copy(vm);") }
func (t *Target) Mov() string           { return t.line("machine_mov(vm);") }

func (t *Target) Call(name string) string { return t.line("fn_%s(vm);", name) }

// CallForeign calls a runtime routine by its own name.
func (t *Target) CallForeign(name string) string { return t.line("%s(vm);", name) }

func (t *Target) BeginWhile() string {
	s := t.line("while (machine_pop(vm)) {")
	t.depth++
	return s
}

func (t *Target) EndWhile() string {
	if t.depth > 0 {
		t.depth--
	}
	return t.line("}")
}

func (t *Target) LoadBasePtr() string    { return t.line("machine_load_base_ptr(vm);") }
func (t *Target) EstablishFrame() string { return t.line("machine_establish_frame(vm);") }
func (t *Target) EndFrame(args, locals int) string {
	return t.line("machine_end_frame(vm, %d, %d);", args, locals)
}
func (t *Target) SetReturn() string    { return t.line("machine_set_return(vm);") }
func (t *Target) AccessReturn() string { return t.line("machine_access_return(vm);") }
func (t *Target) Halt() string         { return t.line("machine_halt(vm);") }

// Build compiles code into the executable output.
func (t *Target) Build(ctx context.Context, code, output string) error {
	return t.builder.Build(ctx, code, output)
}
