package diagnostics

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/funvibe/lolc/internal/token"
)

type ErrorCode string

const (
	// Lexical
	ErrL001 ErrorCode = "L001" // illegal character sequence

	// Syntactic
	ErrP000 ErrorCode = "P000" // missing token stream
	ErrP001 ErrorCode = "P001" // parse failure

	// Semantic
	ErrA001 ErrorCode = "A001" // undeclared variable
	ErrA002 ErrorCode = "A002" // duplicate declaration
	ErrA003 ErrorCode = "A003" // type mismatch
	ErrA004 ErrorCode = "A004" // IT read before it holds a value
	ErrA005 ErrorCode = "A005" // construct has no lowering

	// Build and run
	ErrB001 ErrorCode = "B001" // render or toolchain failure
	ErrR001 ErrorCode = "R001" // reference machine fault
)

var codeNames = map[ErrorCode]string{
	ErrL001: "lexical error",
	ErrP000: "parser error",
	ErrP001: "syntax error",
	ErrA001: "undeclared variable",
	ErrA002: "duplicate declaration",
	ErrA003: "type mismatch",
	ErrA004: "uninitialized implicit result",
	ErrA005: "unsupported construct",
	ErrB001: "build error",
	ErrR001: "runtime error",
}

// DiagnosticError is a located compiler error.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
}

func NewError(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

func NewErrorf(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, tok, fmt.Sprintf(format, args...))
}

func (e *DiagnosticError) Error() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(":")
	}
	if e.Token.Line > 0 {
		sb.WriteString(fmt.Sprintf("%d:%d: ", e.Token.Line, e.Token.Column))
	} else if e.File != "" {
		sb.WriteString(" ")
	}
	sb.WriteString(fmt.Sprintf("%s [%s]: %s", codeNames[e.Code], e.Code, e.Message))
	return sb.String()
}

// Kind returns the human name of the error code.
func (e *DiagnosticError) Kind() string {
	return codeNames[e.Code]
}

// Join folds diagnostics into a single error, nil when there are none.
func Join(errs []*DiagnosticError) error {
	var result *multierror.Error
	for _, e := range errs {
		result = multierror.Append(result, e)
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = func(es []error) string {
		lines := make([]string, len(es))
		for i, e := range es {
			lines[i] = e.Error()
		}
		return strings.Join(lines, "\n")
	}
	return result
}
