package diagnostics_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/token"
)

func TestLocate(t *testing.T) {
	src := "HAI 1.2\nVISIBLE SUM OF 1 AN WIN\nKTHXBYE"
	start := strings.Index(src, "WIN")
	span := diagnostics.Locate(src, start, start+3)
	if span.Line != 2 {
		t.Errorf("line = %d, want 2", span.Line)
	}
	if span.StartCol != 21 || span.EndCol != 23 {
		t.Errorf("columns = %d:%d, want 21:23", span.StartCol, span.EndCol)
	}
	if span.LineText != "VISIBLE SUM OF 1 AN WIN" {
		t.Errorf("line text = %q", span.LineText)
	}
}

func TestLocateEndOfInput(t *testing.T) {
	src := "HAI 1.2\n"
	span := diagnostics.Locate(src, len(src), len(src))
	if span.Line != 2 || span.StartCol != 1 || span.EndCol != 1 {
		t.Errorf("got %+v", span)
	}
}

func TestRenderPlain(t *testing.T) {
	src := "HAI 1.2\nSUM OF 1 AN WIN\nKTHXBYE"
	start := strings.Index(src, "WIN")
	e := diagnostics.NewError(diagnostics.ErrA003, token.Token{Start: start, End: start + 3, Line: 2, Column: 13}, "Expected NUMBER type but got TROOF")

	var buf bytes.Buffer
	diagnostics.NewRenderer(&buf).Render(src, e)

	want := "   2 | SUM OF 1 AN WIN\n" +
		"     |             ^^^\n" +
		"Error: Expected NUMBER type but got TROOF at line 2, column 13:15\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestErrorString(t *testing.T) {
	e := diagnostics.NewError(diagnostics.ErrA001, token.Token{Line: 3, Column: 5}, "Variable x is not declared")
	e.File = "prog.lol"
	got := e.Error()
	want := "prog.lol:3:5: undeclared variable [A001]: Variable x is not declared"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJoin(t *testing.T) {
	if diagnostics.Join(nil) != nil {
		t.Fatal("expected nil for no diagnostics")
	}
	errs := []*diagnostics.DiagnosticError{
		diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "first"),
		diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "second"),
	}
	err := diagnostics.Join(errs)
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Count(err.Error(), "\n") != 1 {
		t.Errorf("expected two lines, got %q", err.Error())
	}
}
