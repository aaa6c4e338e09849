package backend

import (
	"context"
	"io"
	"time"

	"github.com/funvibe/lolc/internal/pipeline"
	"github.com/funvibe/lolc/internal/vm"
)

// VMBackend executes programs on the reference stack machine
type VMBackend struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Timeout time.Duration
}

func (b *VMBackend) Name() string { return "vm" }

func (b *VMBackend) Run(ctx *pipeline.PipelineContext) error {
	var opts []vm.Option
	if b.Stdin != nil {
		opts = append(opts, vm.WithInput(b.Stdin))
	}
	if b.Stdout != nil {
		opts = append(opts, vm.WithOutput(b.Stdout))
	}
	machine := vm.NewForProgram(ctx.Program, opts...)

	runCtx := ctx.Ctx()
	if b.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, b.Timeout)
		defer cancel()
	}
	machine.SetContext(runCtx)
	return machine.Run(ctx.Program)
}
