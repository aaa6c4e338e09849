package backend_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/lolc/internal/analyzer"
	"github.com/funvibe/lolc/internal/backend"
	"github.com/funvibe/lolc/internal/cache"
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/lexer"
	"github.com/funvibe/lolc/internal/parser"
	"github.com/funvibe/lolc/internal/pipeline"
	"github.com/funvibe/lolc/internal/target/asm"
)

func compile(t *testing.T, src string, last pipeline.Processor) *pipeline.PipelineContext {
	t.Helper()
	ctx := pipeline.NewContext(context.Background(), "test.lol", src)
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		last,
	).Run(ctx)
}

func TestNewTarget(t *testing.T) {
	for _, name := range []string{"c", "cvm", "asm"} {
		if _, err := backend.NewTarget(name, nil); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := backend.NewTarget("wasm", nil); err == nil {
		t.Error("expected error for unknown target")
	}
}

func TestVMBackend(t *testing.T) {
	var out bytes.Buffer
	ctx := compile(t, "HAI 1.2\nVISIBLE \"O HAI \" AN SUM OF 2 AN 3\nKTHXBYE\n",
		backend.NewExecutionProcessor(&backend.VMBackend{Stdout: &out}))
	if ctx.Failed() {
		t.Fatalf("unexpected errors: %v", ctx.Err())
	}
	if out.String() != "O HAI 5\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestVMBackendRuntimeError(t *testing.T) {
	ctx := compile(t, "HAI 1.2\nVISIBLE QUOSHUNT OF 1.0 AN 0.0\nKTHXBYE\n",
		backend.NewExecutionProcessor(&backend.VMBackend{Stdout: &bytes.Buffer{}}))
	if len(ctx.Errors) != 1 {
		t.Fatalf("expected one error, got %v", ctx.Errors)
	}
	if ctx.Errors[0].Code != diagnostics.ErrR001 {
		t.Errorf("code = %s, want R001", ctx.Errors[0].Code)
	}
	if !strings.HasPrefix(ctx.Errors[0].Message, "division by zero (DIV at ") {
		t.Errorf("message = %q", ctx.Errors[0].Message)
	}
}

func TestSkipsFailedCompilation(t *testing.T) {
	var out bytes.Buffer
	ctx := compile(t, "HAI 1.2\nVISIBLE x\nKTHXBYE\n",
		backend.NewExecutionProcessor(&backend.VMBackend{Stdout: &out}))
	if len(ctx.Errors) != 1 || ctx.Errors[0].Code != diagnostics.ErrA001 {
		t.Fatalf("expected a single A001, got %v", ctx.Errors)
	}
	if out.Len() != 0 {
		t.Errorf("program ran: %q", out.String())
	}
}

func TestTargetBackendRenderOnly(t *testing.T) {
	ctx := compile(t, "HAI 1.2\nVISIBLE \"hi\"\nKTHXBYE\n",
		backend.NewExecutionProcessor(&backend.TargetBackend{Target: asm.New()}))
	if ctx.Failed() {
		t.Fatalf("unexpected errors: %v", ctx.Err())
	}
	if !strings.Contains(ctx.Rendered, ".entry") || !strings.Contains(ctx.Rendered, "CALL_FOREIGN print_string") {
		t.Errorf("unexpected listing:\n%s", ctx.Rendered)
	}
	if ctx.Artifact != "" {
		t.Errorf("artifact = %q, want none", ctx.Artifact)
	}
}

func TestTargetBackendCache(t *testing.T) {
	dir := t.TempDir()
	c, err := cache.Open(context.Background(), filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	src := "HAI 1.2\nVISIBLE \"hi\"\nKTHXBYE\n"
	first := filepath.Join(dir, "first.s")
	ctx := compile(t, src, backend.NewExecutionProcessor(&backend.TargetBackend{Target: asm.New(), Output: first, Cache: c}))
	if ctx.Failed() {
		t.Fatalf("unexpected errors: %v", ctx.Err())
	}
	entries, err := c.Entries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one cache entry, got %d", len(entries))
	}

	second := filepath.Join(dir, "second.s")
	ctx = compile(t, src, backend.NewExecutionProcessor(&backend.TargetBackend{Target: asm.New(), Output: second, Cache: c}))
	if ctx.Failed() {
		t.Fatalf("unexpected errors: %v", ctx.Err())
	}
	if ctx.Artifact != second {
		t.Errorf("artifact = %q", ctx.Artifact)
	}
	a, _ := os.ReadFile(first)
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("restored artifact differs from the built one")
	}
	entries, _ = c.Entries(context.Background())
	if len(entries) != 1 {
		t.Errorf("cache hit stored a new entry: %d entries", len(entries))
	}
}

func TestTargetBackendBuildError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "dir", "out.s")
	ctx := compile(t, "HAI 1.2\nKTHXBYE\n",
		backend.NewExecutionProcessor(&backend.TargetBackend{Target: asm.New(), Output: out}))
	if len(ctx.Errors) != 1 || ctx.Errors[0].Code != diagnostics.ErrB001 {
		t.Fatalf("expected a single B001, got %v", ctx.Errors)
	}
}
