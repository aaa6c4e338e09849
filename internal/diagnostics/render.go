package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\033[31;1m"
	ansiBlue  = "\033[34m"
	ansiReset = "\033[0m"
)

// Renderer prints diagnostics with the offending source line underlined.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer enables colour when w is a terminal.
func NewRenderer(w io.Writer) *Renderer {
	r := &Renderer{w: w}
	if f, ok := w.(*os.File); ok {
		r.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return r
}

// Span locates a byte range of source inside its line.
type Span struct {
	Line      int
	StartCol  int // 1-based
	EndCol    int // 1-based, inclusive
	LineText  string
	LineStart int
}

// Locate maps byte offsets [start, end) onto the line that contains start.
func Locate(source string, start, end int) Span {
	if start > len(source) {
		start = len(source)
	}
	if end < start {
		end = start
	}
	lineStart := strings.LastIndexByte(source[:start], '\n') + 1
	lineEnd := strings.IndexByte(source[start:], '\n')
	if lineEnd < 0 {
		lineEnd = len(source)
	} else {
		lineEnd += start
	}
	if end > lineEnd && end > start+1 {
		end = lineEnd
	}
	width := end - start
	if width < 1 {
		width = 1
	}
	return Span{
		Line:      strings.Count(source[:lineStart], "\n") + 1,
		StartCol:  start - lineStart + 1,
		EndCol:    start - lineStart + width,
		LineText:  source[lineStart:lineEnd],
		LineStart: lineStart,
	}
}

// Render writes one diagnostic against the given source.
func (r *Renderer) Render(source string, e *DiagnosticError) {
	span := Locate(source, e.Token.Start, e.Token.End)
	gutter := fmt.Sprintf("%4d | ", span.Line)
	fmt.Fprintf(r.w, "%s%s\n", r.paint(ansiBlue, gutter), strings.TrimRight(span.LineText, "\r"))

	pad := strings.Repeat(" ", span.StartCol-1)
	carets := strings.Repeat("^", span.EndCol-span.StartCol+1)
	fmt.Fprintf(r.w, "%s%s%s\n", r.paint(ansiBlue, "     | "), pad, r.paint(ansiRed, carets))
	fmt.Fprintf(r.w, "%s %s at line %d, column %d:%d\n",
		r.paint(ansiRed, "Error:"), e.Message, span.Line, span.StartCol, span.EndCol)
}

// RenderAll renders every diagnostic in order.
func (r *Renderer) RenderAll(source string, errs []*DiagnosticError) {
	for _, e := range errs {
		r.Render(source, e)
	}
}

func (r *Renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}
