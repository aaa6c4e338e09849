package lexer

import (
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/pipeline"
	"github.com/funvibe/lolc/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Name() string { return "lex" }

// Process scans the source. A lexical error aborts the compilation, so the
// token stream is left nil for later stages.
func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	tokens := Tokenize(ctx.SourceCode)
	last := tokens[len(tokens)-1]
	if last.Type == token.ILLEGAL {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrL001, last, last.Literal))
		return ctx
	}
	ctx.TokenStream = tokens
	return ctx
}
