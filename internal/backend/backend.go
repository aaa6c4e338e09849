// Package backend provides the final pipeline stage: either building an
// artifact through a Target or executing the program on the reference
// machine.
package backend

import (
	"fmt"

	"github.com/funvibe/lolc/internal/pipeline"
	"github.com/funvibe/lolc/internal/target"
	"github.com/funvibe/lolc/internal/target/asm"
	"github.com/funvibe/lolc/internal/target/cvm"
	"github.com/funvibe/lolc/internal/toolchain"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run consumes ctx.Program.
	Run(ctx *pipeline.PipelineContext) error

	// Name returns the backend name for display
	Name() string
}

// NewTarget creates the target registered under name. builder is only
// used by targets that invoke a compiler.
func NewTarget(name string, builder *toolchain.Builder) (target.Target, error) {
	switch name {
	case "c", "cvm":
		return cvm.New(builder), nil
	case "asm":
		return asm.New(), nil
	}
	return nil, fmt.Errorf("unknown target %q", name)
}
