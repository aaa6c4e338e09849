package parser

import (
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/pipeline"
	"github.com/funvibe/lolc/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Name() string { return "parse" }

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// A lexical error already stopped the compilation.
		if !ctx.Failed() {
			ctx.AddError(diagnostics.NewError(diagnostics.ErrP000, token.Token{}, "parser: token stream is nil"))
		}
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	ctx.AstRoot = parser.ParseProgram()

	for _, e := range parser.Errors() {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, e.Token, e.Message))
	}

	ctx.Log().WithField("statements", len(ctx.AstRoot.Statements)).
		WithField("attempts", len(parser.RawErrors())).
		Debug("parsed program")

	return ctx
}
