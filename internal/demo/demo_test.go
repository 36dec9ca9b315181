package demo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/recoverdemo/internal/fsx"
	"github.com/backmassage/recoverdemo/internal/runner"
)

func TestBuildInvocation(t *testing.T) {
	tests := []struct {
		name     string
		scenario int
		input    string
		want     []string
	}{
		{"synthetic frames", 1, "", []string{"1"}},
		{"scenario 3 synthetic", 3, "", []string{"3"}},
		{"with input", 2, "camera.mp4", []string{"2", "camera.mp4"}},
		{"input with spaces kept whole", 1, "my clip.mp4", []string{"1", "my clip.mp4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := BuildInvocation("build/mp4_recover_demo", tt.scenario, tt.input)
			assert.Equal(t, "build/mp4_recover_demo", inv.Path)
			assert.Equal(t, tt.want, inv.Args)
		})
	}
}

func TestBuildInvocation_NoTrailingEmptyPath(t *testing.T) {
	for scenario := -2; scenario <= 10; scenario++ {
		inv := BuildInvocation("demo", scenario, "")
		require.Len(t, inv.Args, 1, "scenario %d", scenario)
		assert.NotEmpty(t, inv.Args[0])
	}
}

func TestBuildInvocation_BareNameIsNotLookedUpOnPath(t *testing.T) {
	inv := BuildInvocation("mp4_recover_demo", 1, "")
	assert.Equal(t, "."+string(filepath.Separator)+"mp4_recover_demo", inv.Path)
}

func TestRun_BinaryMissingNeverSpawns(t *testing.T) {
	fr := &fakeRunner{}
	log := &recLog{}
	err := Run(context.Background(), fr, fstest.MapFS{}, ".", log,
		Options{Binary: "build/mp4_recover_demo", Scenario: 1})

	require.ErrorIs(t, err, ErrBinaryNotFound)
	assert.Empty(t, fr.calls, "demo must not be spawned")
	assert.Contains(t, log.joined(), "Demo executable not found: build/mp4_recover_demo")
}

func TestRun_BinaryIsDirectory(t *testing.T) {
	fsys := fstest.MapFS{"build/mp4_recover_demo": {Mode: os.ModeDir | 0o755}}
	fr := &fakeRunner{}
	err := Run(context.Background(), fr, fsys, ".", &recLog{},
		Options{Binary: "build/mp4_recover_demo", Scenario: 1})
	require.ErrorIs(t, err, ErrBinaryNotFound)
	assert.Empty(t, fr.calls)
}

func TestRun_Success(t *testing.T) {
	fsys := fstest.MapFS{"build/mp4_recover_demo": {Data: []byte("ELF"), Mode: 0o755}}
	fr := &fakeRunner{}
	log := &recLog{}

	err := Run(context.Background(), fr, fsys, ".", log,
		Options{Binary: "build/mp4_recover_demo", Scenario: 1, Input: "test_input.mp4"})
	require.NoError(t, err)

	require.Len(t, fr.calls, 1)
	assert.Equal(t, []string{"1", "test_input.mp4"}, fr.calls[0].Args)
	assert.Equal(t, runner.Stream, fr.opts[0].Mode, "demo output is streamed, not captured")
	assert.Contains(t, log.joined(), "Running: build/mp4_recover_demo 1 test_input.mp4")
}

func TestRun_NonZeroExit(t *testing.T) {
	fsys := fstest.MapFS{"build/mp4_recover_demo": {Data: []byte("ELF")}}
	fr := &fakeRunner{res: runner.Result{ExitCode: 134}}

	err := Run(context.Background(), fr, fsys, ".", &recLog{},
		Options{Binary: "build/mp4_recover_demo", Scenario: 2})
	require.ErrorIs(t, err, ErrDemoFailed)

	var fe *FailedError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 134, fe.ExitCode)
}

func TestRun_SpawnError(t *testing.T) {
	fsys := fstest.MapFS{"build/mp4_recover_demo": {Data: []byte("not executable")}}
	fr := &fakeRunner{err: errors.New("permission denied")}

	err := Run(context.Background(), fr, fsys, ".", &recLog{},
		Options{Binary: "build/mp4_recover_demo", Scenario: 1})
	assert.ErrorIs(t, err, ErrDemoFailed)
}

func TestRun_RealBinaryInWorkDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures need a POSIX shell")
	}
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "build"), 0o755))
	script := "#!/bin/sh\n[ \"$1\" = \"2\" ] || exit 9\ntouch encoded_normal.mp4\nexit 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build", "mp4_recover_demo"), []byte(script), 0o755))

	r := runner.Exec{Dir: dir, Stdout: &strings.Builder{}, Stderr: &strings.Builder{}}
	err := Run(context.Background(), r, fsx.OS(dir), dir, &recLog{},
		Options{Binary: "build/mp4_recover_demo", Scenario: 2})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "encoded_normal.mp4"), "demo runs inside the working directory")

	err = Run(context.Background(), r, fsx.OS(dir), dir, &recLog{},
		Options{Binary: "build/mp4_recover_demo", Scenario: 1})
	assert.ErrorIs(t, err, ErrDemoFailed)
}

// --- Helpers ---

type fakeRunner struct {
	res   runner.Result
	err   error
	calls []runner.Invocation
	opts  []runner.Options
}

func (f *fakeRunner) Run(_ context.Context, inv runner.Invocation, opts runner.Options) (runner.Result, error) {
	f.calls = append(f.calls, inv)
	f.opts = append(f.opts, opts)
	return f.res, f.err
}

type recLog struct{ lines []string }

func (l *recLog) Info(f string, a ...interface{})  { l.lines = append(l.lines, fmt.Sprintf(f, a...)) }
func (l *recLog) Error(f string, a ...interface{}) { l.lines = append(l.lines, fmt.Sprintf(f, a...)) }
func (l *recLog) joined() string                   { return strings.Join(l.lines, "\n") }
