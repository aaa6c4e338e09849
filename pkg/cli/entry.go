package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/funvibe/lolc/internal/analyzer"
	"github.com/funvibe/lolc/internal/config"
	"github.com/funvibe/lolc/internal/diagnostics"
	"github.com/funvibe/lolc/internal/lexer"
	"github.com/funvibe/lolc/internal/parser"
	"github.com/funvibe/lolc/internal/pipeline"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

type app struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *logrus.Logger
}

// Run is the process entry point used by cmd/lolc.
func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(ExitFailure)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := Main(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Main runs one lolc command and returns the process exit code.
func Main(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	a := &app{ctx: ctx, stdin: stdin, stdout: stdout, stderr: stderr, log: log}

	if len(args) == 0 {
		a.usage()
		return ExitUsage
	}

	switch args[0] {
	case "build":
		return a.build(args[1:])
	case "run":
		return a.run(args[1:])
	case "check":
		return a.check(args[1:])
	case "fmt":
		return a.format(args[1:])
	case "cache":
		return a.cacheCmd(args[1:])
	case "version", "-version", "--version":
		fmt.Fprintln(stdout, "lolc "+config.Version)
		return ExitOK
	case "help", "-help", "--help", "-h":
		a.usage()
		return ExitOK
	}

	fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
	a.usage()
	return ExitUsage
}

func (a *app) usage() {
	fmt.Fprint(a.stderr, `Usage: lolc <command> [flags] <file.lol>

Commands:
  build   compile a program to a native executable or IR listing
  run     execute a program on the reference stack machine
  check   report diagnostics without building
  fmt     print a program in canonical layout
  cache   manage the artifact cache (clean, list)
  version print the compiler version
`)
}

// setVerbose raises the log level for -v.
func (a *app) setVerbose(v bool) {
	if v {
		a.log.SetLevel(logrus.DebugLevel)
	}
}

// sourceArg extracts the single source path left after flag parsing.
func (a *app) sourceArg(cmd string, rest []string) (string, bool) {
	if len(rest) != 1 {
		fmt.Fprintf(a.stderr, "Error: expected one source file\nUsage: lolc %s [flags] <file.lol>\n", cmd)
		return "", false
	}
	if !isSourceFile(rest[0]) {
		a.log.WithField("file", rest[0]).Warn("source file has no .lol extension")
	}
	return rest[0], true
}

// loadProject finds the project config governing dir. An explicit path
// wins over the search.
func (a *app) loadProject(dir, explicit string) (*config.Project, error) {
	path := explicit
	if path == "" {
		found, err := config.FindProject(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path == "" {
		return config.DefaultProject(dir), nil
	}
	a.log.WithField("config", path).Debug("using project config")
	return config.LoadProject(path)
}

// newContext reads a source file into a fresh pipeline context.
func (a *app) newContext(path string) (*pipeline.PipelineContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	ctx := pipeline.NewContext(a.ctx, path, string(data))
	ctx.Logger = a.log.WithField("file", path)
	return ctx, nil
}

// frontEnd is the stage list shared by every compiling command.
func frontEnd(proj *config.Project) []pipeline.Processor {
	return []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{StackSize: proj.StackSize, HeapSize: proj.HeapSize},
	}
}

// report prints the diagnostics of ctx and returns the exit code.
func (a *app) report(ctx *pipeline.PipelineContext) int {
	if !ctx.Failed() {
		return ExitOK
	}
	r := diagnostics.NewRenderer(a.stderr)
	for _, e := range ctx.Errors {
		if e.Token.Line == 0 {
			// No source location: build and runtime failures.
			fmt.Fprintln(a.stderr, e.Error())
			continue
		}
		r.Render(ctx.SourceCode, e)
	}
	return ExitFailure
}

func (a *app) fail(err error) int {
	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	return ExitFailure
}
