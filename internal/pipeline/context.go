package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/funvibe/lolc/internal/ast"
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/ir"
	"github.com/funvibe/lolc/internal/token"
)

// PipelineContext carries one compilation through every stage.
type PipelineContext struct {
	Context    context.Context
	FilePath   string
	SourceCode string

	TokenStream []token.Token
	AstRoot     *ast.Program
	Program     *ir.Program

	// Rendered is the target text produced by the backend; Artifact is the
	// path of the built output.
	Rendered string
	Artifact string

	Errors []*diagnostics.DiagnosticError
	Logger *logrus.Entry
}

// NewContext creates a context for one source file.
func NewContext(ctx context.Context, path, source string) *PipelineContext {
	return &PipelineContext{Context: ctx, FilePath: path, SourceCode: source}
}

// Ctx returns the cancellation context, never nil.
func (c *PipelineContext) Ctx() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}

// Log returns the stage logger, never nil.
func (c *PipelineContext) Log() *logrus.Entry {
	if c.Logger == nil {
		c.Logger = logrus.WithField("file", c.FilePath)
	}
	return c.Logger
}

// AddError records a diagnostic against the current file.
func (c *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = c.FilePath
	}
	c.Errors = append(c.Errors, err)
}

// Failed reports whether any stage recorded a diagnostic.
func (c *PipelineContext) Failed() bool {
	return len(c.Errors) > 0
}

// Err folds the recorded diagnostics into one error.
func (c *PipelineContext) Err() error {
	return diagnostics.Join(c.Errors)
}
