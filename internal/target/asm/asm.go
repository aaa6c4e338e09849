// Package asm renders IR as a plain-text listing, one mnemonic per line.
package asm

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/funvibe/lolc/internal/config"
	"github.com/funvibe/lolc/internal/ir"
	"github.com/funvibe/lolc/internal/target"
)

var _ target.Target = (*Target)(nil)

type Target struct {
	depth int
}

func New() *Target { return &Target{} }

func (t *Target) Name() string { return "asm" }

func (t *Target) line(s ir.Statement) string {
	return strings.Repeat("  ", t.depth+1) + s.String() + "\n"
}

func (t *Target) Prelude() string {
	return fmt.Sprintf("; lolc %s listing\n", config.Version)
}

func (t *Target) Standard() string { return "" }

// StandardLibrary lists the foreign routines with their stack effects.
func (t *Target) StandardLibrary() string {
	names := make([]string, 0, len(config.ForeignRoutines))
	for name := range config.ForeignRoutines {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		effect := config.ForeignRoutines[name]
		fmt.Fprintf(&sb, ".foreign %s %d %d\n", name, effect[0], effect[1])
	}
	return sb.String()
}

func (t *Target) FunctionHeader(name string) string { return ".declare " + name + "\n" }

func (t *Target) FunctionDefinition(name, body string) string {
	return name + ":\n" + body
}

func (t *Target) BeginEntryPoint(stackSize, heapSize int) string {
	t.depth = 0
	return fmt.Sprintf(".entry stack=%d heap=%d\n", stackSize, heapSize)
}

func (t *Target) EndEntryPoint() string { return ".end\n" }
func (t *Target) Postlude() string      { return "" }

func (t *Target) Push(v float64) string          { return t.line(ir.Push(v)) }
func (t *Target) Dup() string                    { return t.line(ir.Dup()) }
func (t *Target) Add() string                    { return t.line(ir.Add()) }
func (t *Target) Sub() string                    { return t.line(ir.Sub()) }
func (t *Target) Mul() string                    { return t.line(ir.Mul()) }
func (t *Target) Div() string                    { return t.line(ir.Div()) }
func (t *Target) Mod() string                    { return t.line(ir.Mod()) }
func (t *Target) Sign() string                   { return t.line(ir.Sign()) }
func (t *Target) Alloc() string                  { return t.line(ir.Alloc()) }
func (t *Target) Free() string                   { return t.line(ir.Free()) }
func (t *Target) Store(n int) string             { return t.line(ir.Store(n)) }
func (t *Target) Load(n int) string              { return t.line(ir.Load(n)) }
func (t *Target) Hook(i int) string              { return t.line(ir.Hook(i)) }
func (t *Target) RefHook(i int) string           { return t.line(ir.RefHook(i)) }
func (t *Target) Copy() string                   { return t.line(ir.Copy()) }
func (t *Target) Mov() string                    { return t.line(ir.Mov()) }
func (t *Target) Call(name string) string        { return t.line(ir.Call(name)) }
func (t *Target) CallForeign(name string) string { return t.line(ir.CallForeign(name)) }
func (t *Target) LoadBasePtr() string            { return t.line(ir.LoadBasePtr()) }
func (t *Target) EstablishFrame() string         { return t.line(ir.EstablishFrame()) }
func (t *Target) EndFrame(args, locals int) string {
	return t.line(ir.EndFrame(args, locals))
}
func (t *Target) SetReturn() string    { return t.line(ir.SetReturn()) }
func (t *Target) AccessReturn() string { return t.line(ir.AccessReturn()) }
func (t *Target) Halt() string         { return t.line(ir.Halt()) }

func (t *Target) BeginWhile() string {
	s := t.line(ir.BeginWhile())
	t.depth++
	return s
}

func (t *Target) EndWhile() string {
	if t.depth > 0 {
		t.depth--
	}
	return t.line(ir.EndWhile())
}

// Build writes the listing unchanged.
func (t *Target) Build(ctx context.Context, code, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(output, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	return nil
}
