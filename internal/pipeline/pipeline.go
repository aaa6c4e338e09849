package pipeline

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Processor is one stage of the compiler.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Every stage runs; stages that need a clean
// input check ctx.Errors themselves and pass the context through.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		started := time.Now()
		before := len(ctx.Errors)
		ctx = processor.Process(ctx)
		ctx.Log().WithFields(logrus.Fields{
			"stage":   stageName(processor),
			"elapsed": time.Since(started),
			"errors":  len(ctx.Errors) - before,
		}).Debug("stage finished")
	}
	return ctx
}

// Named is implemented by processors that report a stage name.
type Named interface {
	Name() string
}

func stageName(p Processor) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return "stage"
}
