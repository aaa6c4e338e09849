package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/funvibe/lolc/internal/backend"
	"github.com/funvibe/lolc/internal/cache"
	"github.com/funvibe/lolc/internal/config"
	"github.com/funvibe/lolc/internal/ir"
	"github.com/funvibe/lolc/internal/lexer"
	"github.com/funvibe/lolc/internal/parser"
	"github.com/funvibe/lolc/internal/pipeline"
	"github.com/funvibe/lolc/internal/prettyprinter"
	"github.com/funvibe/lolc/internal/toolchain"
)

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("lolc "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// parseFlags maps flag errors onto exit codes; ok is false when the
// command should stop.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK, false
		}
		return ExitUsage, false
	}
	return ExitOK, true
}

// machineFlags registers the budget overrides shared by build, run and check.
func machineFlags(fs *flag.FlagSet) (stack, heap *int, configPath *string, verbose *bool) {
	stack = fs.Int("stack", 0, "stack size in cells (default from lolc.yaml)")
	heap = fs.Int("heap", 0, "heap size in cells (default from lolc.yaml)")
	configPath = fs.String("config", "", "path to lolc.yaml")
	verbose = fs.Bool("v", false, "verbose logging")
	return
}

func applyBudgets(proj *config.Project, stack, heap int) {
	if stack > 0 {
		proj.StackSize = stack
	}
	if heap > 0 {
		proj.HeapSize = heap
	}
}

// build: lolc build [-o out] [-target c|asm] [-cc cc] [-no-cache] <file.lol>
func (a *app) build(args []string) int {
	fs := a.flags("build")
	output := fs.String("o", "", "output path")
	targetName := fs.String("target", "", "target: c or asm")
	cc := fs.String("cc", "", "C compiler command")
	noCache := fs.Bool("no-cache", false, "bypass the artifact cache")
	stack, heap, configPath, verbose := machineFlags(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	a.setVerbose(*verbose)

	source, ok := a.sourceArg("build", fs.Args())
	if !ok {
		return ExitUsage
	}
	proj, err := a.loadProject(filepath.Dir(source), *configPath)
	if err != nil {
		return a.fail(err)
	}
	applyBudgets(proj, *stack, *heap)
	if *targetName != "" {
		proj.Target = *targetName
	}
	if *cc != "" {
		proj.CC = *cc
	}
	out := proj.Resolve(proj.Output)
	if *output != "" {
		out = *output
	}

	builder := toolchain.NewBuilder(
		toolchain.WithCompiler(proj.CC),
		toolchain.WithFlags(proj.CFlags...),
		toolchain.WithTimeout(proj.Timeout()),
		toolchain.WithVerbose(*verbose),
		toolchain.WithLogger(a.log.WithField("file", source)),
	)
	tgt, err := backend.NewTarget(proj.Target, builder)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return ExitUsage
	}

	tb := &backend.TargetBackend{
		Target:   tgt,
		Output:   out,
		Compiler: builder.Compiler(),
		Flags:    builder.Flags(),
	}
	if proj.CacheEnabled() && !*noCache {
		c, err := cache.Open(a.ctx, proj.Resolve(proj.CacheDir))
		if err != nil {
			a.log.WithError(err).Warn("artifact cache disabled")
		} else {
			defer c.Close()
			tb.Cache = c
		}
	}

	ctx, err := a.newContext(source)
	if err != nil {
		return a.fail(err)
	}
	stages := append(frontEnd(proj), backend.NewExecutionProcessor(tb))
	ctx = pipeline.New(stages...).Run(ctx)
	if code := a.report(ctx); code != ExitOK {
		return code
	}

	info, err := os.Stat(ctx.Artifact)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.stdout, "Built %s -> %s (%s, %d bytes)\n", source, ctx.Artifact, tgt.Name(), info.Size())
	return ExitOK
}

// run: lolc run [-timeout d] <file.lol>
func (a *app) run(args []string) int {
	fs := a.flags("run")
	timeout := fs.Duration("timeout", 0, "abort execution after this long")
	stack, heap, configPath, verbose := machineFlags(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	a.setVerbose(*verbose)

	source, ok := a.sourceArg("run", fs.Args())
	if !ok {
		return ExitUsage
	}
	proj, err := a.loadProject(filepath.Dir(source), *configPath)
	if err != nil {
		return a.fail(err)
	}
	applyBudgets(proj, *stack, *heap)

	ctx, err := a.newContext(source)
	if err != nil {
		return a.fail(err)
	}
	vmb := &backend.VMBackend{Stdin: a.stdin, Stdout: a.stdout, Timeout: *timeout}
	stages := append(frontEnd(proj), backend.NewExecutionProcessor(vmb))

	started := time.Now()
	ctx = pipeline.New(stages...).Run(ctx)
	a.log.WithField("elapsed", time.Since(started)).Debug("run finished")
	return a.report(ctx)
}

// check: lolc check [-ir] <file.lol>
func (a *app) check(args []string) int {
	fs := a.flags("check")
	dumpIR := fs.Bool("ir", false, "print the lowered IR")
	stack, heap, configPath, verbose := machineFlags(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	a.setVerbose(*verbose)

	source, ok := a.sourceArg("check", fs.Args())
	if !ok {
		return ExitUsage
	}
	proj, err := a.loadProject(filepath.Dir(source), *configPath)
	if err != nil {
		return a.fail(err)
	}
	applyBudgets(proj, *stack, *heap)

	ctx, err := a.newContext(source)
	if err != nil {
		return a.fail(err)
	}
	ctx = pipeline.New(frontEnd(proj)...).Run(ctx)
	if code := a.report(ctx); code != ExitOK {
		return code
	}
	if *dumpIR {
		fmt.Fprint(a.stdout, ir.Disassemble(ctx.Program, config.EntryFuncName))
	}
	return ExitOK
}

// fmt: lolc fmt [-w] <file.lol>
func (a *app) format(args []string) int {
	fs := a.flags("fmt")
	write := fs.Bool("w", false, "write the result back to the source file")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	source, ok := a.sourceArg("fmt", fs.Args())
	if !ok {
		return ExitUsage
	}
	ctx, err := a.newContext(source)
	if err != nil {
		return a.fail(err)
	}
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if code := a.report(ctx); code != ExitOK {
		return code
	}

	out := prettyprinter.Print(ctx.AstRoot)
	if !*write {
		fmt.Fprint(a.stdout, out)
		return ExitOK
	}
	info, err := os.Stat(source)
	if err != nil {
		return a.fail(err)
	}
	if err := os.WriteFile(source, []byte(out), info.Mode().Perm()); err != nil {
		return a.fail(err)
	}
	return ExitOK
}

// cache: lolc cache clean|list [-dir path]
func (a *app) cacheCmd(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "Usage: lolc cache clean|list [-dir path]")
		return ExitUsage
	}
	sub := args[0]
	fs := a.flags("cache " + sub)
	dir := fs.String("dir", "", "cache directory (default from lolc.yaml)")
	if code, ok := parseFlags(fs, args[1:]); !ok {
		return code
	}

	if *dir == "" {
		proj, err := a.loadProject(".", "")
		if err != nil {
			return a.fail(err)
		}
		*dir = proj.Resolve(proj.CacheDir)
	}

	switch sub {
	case "clean":
		if _, err := os.Stat(*dir); os.IsNotExist(err) {
			return ExitOK
		}
		c, err := cache.Open(a.ctx, *dir)
		if err != nil {
			return a.fail(err)
		}
		if err := c.Clean(); err != nil {
			return a.fail(err)
		}
		fmt.Fprintf(a.stdout, "Removed %s\n", *dir)
		return ExitOK
	case "list":
		if _, err := os.Stat(*dir); os.IsNotExist(err) {
			return ExitOK
		}
		c, err := cache.Open(a.ctx, *dir)
		if err != nil {
			return a.fail(err)
		}
		defer c.Close()
		entries, err := c.Entries(a.ctx)
		if err != nil {
			return a.fail(err)
		}
		for _, e := range entries {
			fmt.Fprintf(a.stdout, "%s  %-4s %8d  %s  %s\n",
				e.Key, e.Target, e.Size, e.BuildID, e.CreatedAt.Format(time.RFC3339))
		}
		return ExitOK
	}

	fmt.Fprintf(a.stderr, "Unknown cache command: %s\n", sub)
	return ExitUsage
}
