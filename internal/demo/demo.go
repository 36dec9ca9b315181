// Package demo runs the prebuilt mp4_recover_demo executable.
//
// The demo owns all recording, crash simulation and recovery. This package
// only checks that the binary exists, runs it with the operator watching,
// and turns its exit status into an error.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/backmassage/recoverdemo/internal/display"
	"github.com/backmassage/recoverdemo/internal/fsx"
	"github.com/backmassage/recoverdemo/internal/runner"
)

// Sentinel errors for the demo stage.
var (
	ErrBinaryNotFound = errors.New("demo executable not found")
	ErrDemoFailed     = errors.New("demo failed")
)

// FailedError is returned when the demo ran but exited non-zero. It matches
// ErrDemoFailed with errors.Is.
type FailedError struct {
	ExitCode int
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%v (exit status %d)", ErrDemoFailed, e.ExitCode)
}

func (e *FailedError) Is(target error) bool { return target == ErrDemoFailed }

// Logger is the minimal logging interface needed by Run.
type Logger interface {
	Info(string, ...interface{})
	Error(string, ...interface{})
}

// Options select what the demo runs.
type Options struct {
	Binary   string // Executable path, relative to the working directory unless absolute.
	Scenario int
	Input    string // Optional; empty means synthetic frames.
}

// BuildInvocation returns the demo command: the scenario number, then the
// input video only when one is given.
func BuildInvocation(binary string, scenario int, input string) runner.Invocation {
	args := []string{strconv.Itoa(scenario)}
	if input != "" {
		args = append(args, input)
	}
	return runner.Invocation{Path: execPath(binary), Args: args}
}

// execPath keeps a bare file name from being looked up on PATH.
func execPath(binary string) string {
	if filepath.IsAbs(binary) || strings.ContainsAny(binary, `/\`) {
		return binary
	}
	return "." + string(filepath.Separator) + binary
}

// Run checks that opts.Binary exists in dirFS (the working directory dir),
// then runs it with output streamed to the operator. The runner is never
// called when the binary is missing.
func Run(ctx context.Context, r runner.Runner, dirFS fs.FS, dir string, log Logger, opts Options) error {
	if !Locate(dirFS, dir, opts.Binary) {
		log.Error("Demo executable not found: %s", opts.Binary)
		log.Error("Please build the project first: cmake .. && cmake --build .")
		return fmt.Errorf("%w: %s", ErrBinaryNotFound, opts.Binary)
	}

	inv := BuildInvocation(opts.Binary, opts.Scenario, opts.Input)
	log.Info("Running: %s", inv)
	log.Info("%s", display.Rule('-'))

	res, err := r.Run(ctx, inv, runner.Options{Mode: runner.Stream})
	if err != nil {
		log.Error("Failed to run demo: %v", err)
		return fmt.Errorf("%w: %v", ErrDemoFailed, err)
	}
	if res.ExitCode != 0 {
		return &FailedError{ExitCode: res.ExitCode}
	}
	return nil
}

// Locate reports whether binary exists. Paths inside dir are checked through
// dirFS; anything outside it (e.g. an absolute path elsewhere) is checked on
// the real filesystem.
func Locate(dirFS fs.FS, dir, binary string) bool {
	if name, err := fsx.Rel(dir, binary); err == nil {
		return fsx.Exists(dirFS, name)
	}
	p := binary
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return fsx.Exists(fsx.OS(filepath.Dir(p)), filepath.Base(p))
}
