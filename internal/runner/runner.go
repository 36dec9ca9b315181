// Package runner executes external tools (ffmpeg, the recovery demo) behind a
// narrow interface so callers can be tested with a fake.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// ErrNotFound is returned when the executable cannot be located at all.
// It is distinct from a non-zero exit, which is reported in Result.ExitCode.
var ErrNotFound = errors.New("executable not found")

// Invocation is one external command: the executable and its ordered
// arguments (not including argv[0]).
type Invocation struct {
	Path string
	Args []string
}

// String renders the command line the way an operator would type it.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, quote(inv.Path))
	for _, a := range inv.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// Mode selects how the child's output is handled.
type Mode int

const (
	Capture Mode = iota // Buffer stdout+stderr into Result.Output.
	Stream              // Connect the child to the operator's stdout/stderr.
)

// Options tune a single Run.
type Options struct {
	Mode Mode
	// Tee receives captured output live as well (Capture mode only).
	Tee io.Writer
}

// Result is the outcome of a process that was started.
type Result struct {
	ExitCode int
	Output   string
}

// Runner starts a process and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, inv Invocation, opts Options) (Result, error)
}

// Exec runs processes with os/exec. Dir is the child's working directory;
// empty means the current one.
type Exec struct {
	Dir    string
	Stdout io.Writer // Stream mode sink; nil means os.Stdout.
	Stderr io.Writer // Stream mode sink; nil means os.Stderr.
}

// Run executes inv synchronously. A non-zero exit is not an error: it is
// returned in Result.ExitCode. Only failures to start (or wait on) the
// process produce an error.
func (e Exec) Run(ctx context.Context, inv Invocation, opts Options) (Result, error) {
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = e.Dir

	var buf bytes.Buffer
	switch opts.Mode {
	case Stream:
		cmd.Stdin = os.Stdin
		cmd.Stdout = orDefault(e.Stdout, os.Stdout)
		cmd.Stderr = orDefault(e.Stderr, os.Stderr)
	default:
		var w io.Writer = &buf
		if opts.Tee != nil {
			w = io.MultiWriter(&buf, opts.Tee)
		}
		cmd.Stdout = w
		cmd.Stderr = w
	}

	err := cmd.Run()
	res := Result{Output: buf.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return res, fmt.Errorf("%w: %s", ErrNotFound, inv.Path)
	}
	return res, fmt.Errorf("run %s: %w", inv.Path, err)
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
