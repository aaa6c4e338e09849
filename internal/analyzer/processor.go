package analyzer

import (
	"github.com/sirupsen/logrus"

	"github.com/funvibe/lolc/internal/config"
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/ir"
	"github.com/funvibe/lolc/internal/pipeline"
)

// SemanticAnalyzerProcessor checks the AST and lowers it to ctx.Program.
type SemanticAnalyzerProcessor struct {
	StackSize int
	HeapSize  int
}

func (sap *SemanticAnalyzerProcessor) Name() string { return "lower" }

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// Lowering needs a clean parse.
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}

	stack, heap := sap.StackSize, sap.HeapSize
	if stack <= 0 {
		stack = config.DefaultStackSize
	}
	if heap <= 0 {
		heap = config.DefaultHeapSize
	}

	program, errs := New().Lower(ctx.AstRoot, stack, heap)
	for _, e := range errs {
		ctx.AddError(e)
	}
	ctx.Program = program

	if err := ir.Verify(program.Entry.Statements); err != nil && len(errs) == 0 {
		ctx.AddError(diagnostics.NewErrorf(diagnostics.ErrB001, ctx.AstRoot.Token, "internal: %v", err))
	}

	log := ctx.Log().WithFields(logrus.Fields{
		"hooks": program.Entry.Hooks,
		"ops":   len(program.Entry.Statements),
	})
	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		log.Debug("lowered program\n" + ir.Disassemble(program, config.EntryFuncName))
	}
	return ctx
}
