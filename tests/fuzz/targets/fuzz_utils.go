package targets

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/tools/txtar"

	"github.com/funvibe/lolc/internal/analyzer"
	"github.com/funvibe/lolc/internal/lexer"
	"github.com/funvibe/lolc/internal/parser"
	"github.com/funvibe/lolc/internal/pipeline"
	"github.com/funvibe/lolc/internal/vm"
)

// runTimeout bounds one machine run. Generated programs have no loops, so
// hitting it means the machine itself misbehaves.
const runTimeout = 2 * time.Second

// isResourceExhaustionError returns true if the error is caused by resource
// limits rather than a lowering bug.
func isResourceExhaustionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "stack overflow") ||
		strings.Contains(msg, "heap exhausted")
}

// compile runs the front end and lowering over src.
func compile(src string) *pipeline.PipelineContext {
	ctx := pipeline.NewContext(context.Background(), "fuzz.lol", src)
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	).Run(ctx)
}

// runProgram executes a lowered program and returns its output and the
// machine, for heap inspection.
func runProgram(ctx *pipeline.PipelineContext, input string) (string, *vm.Machine, error) {
	var out bytes.Buffer
	m := vm.NewForProgram(ctx.Program, vm.WithInput(strings.NewReader(input)), vm.WithOutput(&out))
	runCtx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	m.SetContext(runCtx)
	err := m.Run(ctx.Program)
	return out.String(), m, err
}

// LoadCorpus adds the program of every txtar fixture in dirs to the fuzz
// corpus.
func LoadCorpus(f *testing.F, dirs ...string) {
	for _, dir := range dirs {
		paths, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
		if err != nil {
			f.Logf("Failed to load corpus from %s: %v", dir, err)
			continue
		}
		for _, path := range paths {
			data, err := os.ReadFile(path)
			if err != nil {
				f.Logf("Failed to read %s: %v", path, err)
				continue
			}
			for _, file := range txtar.Parse(data).Files {
				if strings.HasSuffix(file.Name, ".lol") {
					f.Add(file.Data)
				}
			}
		}
	}
}
