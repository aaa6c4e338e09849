// Package toolchain drives the host C compiler.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/funvibe/lolc/internal/config"
)

// ErrCompilerNotFound is returned when the configured compiler is not on PATH.
var ErrCompilerNotFound = errors.New("C compiler not found")

// Builder compiles a single C translation unit read from stdin.
type Builder struct {
	// cc is the compiler command (e.g. "cc", "clang").
	cc string

	// flags are passed before the output and input arguments.
	flags []string

	// timeout bounds one compiler run; zero means no limit.
	timeout time.Duration

	verbose bool
	log     *logrus.Entry
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithCompiler sets the compiler command.
func WithCompiler(cc string) BuilderOption {
	return func(b *Builder) {
		if cc != "" {
			b.cc = cc
		}
	}
}

// WithFlags replaces the default compiler flags.
func WithFlags(flags ...string) BuilderOption {
	return func(b *Builder) { b.flags = append([]string(nil), flags...) }
}

// WithTimeout bounds every compiler invocation.
func WithTimeout(d time.Duration) BuilderOption {
	return func(b *Builder) { b.timeout = d }
}

// WithVerbose logs the compiler command line.
func WithVerbose(v bool) BuilderOption {
	return func(b *Builder) { b.verbose = v }
}

// WithLogger routes the verbose compile line to log.
func WithLogger(log *logrus.Entry) BuilderOption {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBuilder creates a Builder using config.DefaultCC and config.DefaultCFlags
// unless overridden.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		cc:    config.DefaultCC,
		flags: append([]string(nil), config.DefaultCFlags...),
		log:   logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Compiler returns the configured compiler command.
func (b *Builder) Compiler() string { return b.cc }

// Flags returns the configured compiler flags.
func (b *Builder) Flags() []string { return b.flags }

// BuildError carries the compiler's combined output.
type BuildError struct {
	Compiler string
	Output   string
	Err      error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Compiler, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *BuildError) Unwrap() error { return e.Err }

// Args returns the compiler arguments for output.
func (b *Builder) Args(output string) []string {
	args := append([]string(nil), b.flags...)
	return append(args, "-o", output, "-x", "c", "-", "-lm")
}

// Build compiles source into the executable output.
func (b *Builder) Build(ctx context.Context, source, output string) error {
	path, err := exec.LookPath(b.cc)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCompilerNotFound, b.cc)
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	args := b.Args(output)
	if b.verbose {
		b.log.WithField("cc", path).Infof("compiling: %s %s", b.cc, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(source)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return &BuildError{Compiler: b.cc, Output: string(out), Err: err}
	}
	return nil
}
