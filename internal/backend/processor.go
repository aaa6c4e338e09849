package backend

import (
	"errors"
	"strings"

	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/pipeline"
	"github.com/funvibe/lolc/internal/token"
	"github.com/funvibe/lolc/internal/vm"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Name() string { return p.Backend.Name() }

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.Program == nil || ctx.Failed() {
		return ctx
	}
	if err := p.Backend.Run(ctx); err != nil {
		p.handleError(ctx, err)
	}
	return ctx
}

func (p *ExecutionProcessor) handleError(ctx *pipeline.PipelineContext, err error) {
	var rerr *vm.RuntimeError
	if errors.As(err, &rerr) {
		// The opcode and its index locate the fault; the source cannot.
		ctx.AddError(diagnostics.NewErrorf(diagnostics.ErrR001, token.Token{},
			"%v (%s at %04d)", rerr.Err, rerr.Op, rerr.Index))
		return
	}
	ctx.AddError(diagnostics.NewError(diagnostics.ErrB001, token.Token{}, strings.TrimPrefix(err.Error(), "build: ")))
}
