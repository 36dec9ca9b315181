package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvocationString(t *testing.T) {
	tests := []struct {
		name string
		inv  Invocation
		want string
	}{
		{"no args", Invocation{Path: "demo"}, "demo"},
		{"plain args", Invocation{Path: "build/demo", Args: []string{"1", "in.mp4"}}, "build/demo 1 in.mp4"},
		{"spaces quoted", Invocation{Path: "demo", Args: []string{"2", "my clip.mp4"}}, `demo 2 "my clip.mp4"`},
		{"empty arg quoted", Invocation{Path: "demo", Args: []string{""}}, `demo ""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inv.String())
		})
	}
}

func TestExec_CaptureExitCodes(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	ok := script(t, dir, "ok.sh", "echo hello\necho oops >&2\nexit 0\n")
	bad := script(t, dir, "bad.sh", "echo broken >&2\nexit 3\n")

	r := Exec{Dir: dir}

	res, err := r.Run(context.Background(), Invocation{Path: ok}, Options{Mode: Capture})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Output, "hello")
	assert.Contains(t, res.Output, "oops")

	res, err = r.Run(context.Background(), Invocation{Path: bad}, Options{Mode: Capture})
	require.NoError(t, err, "non-zero exit is reported via ExitCode, not err")
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Output, "broken")
}

func TestExec_CaptureTee(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	s := script(t, dir, "tee.sh", "echo live >&2\n")

	var tee bytes.Buffer
	res, err := Exec{Dir: dir}.Run(context.Background(), Invocation{Path: s}, Options{Mode: Capture, Tee: &tee})
	require.NoError(t, err)
	assert.Contains(t, res.Output, "live")
	assert.Contains(t, tee.String(), "live")
}

func TestExec_StreamWritesToSinks(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	s := script(t, dir, "stream.sh", "echo \"args: $*\"\necho err >&2\nexit 0\n")

	var stdout, stderr bytes.Buffer
	r := Exec{Dir: dir, Stdout: &stdout, Stderr: &stderr}
	res, err := r.Run(context.Background(), Invocation{Path: s, Args: []string{"2", "x.mp4"}}, Options{Mode: Stream})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Empty(t, res.Output, "stream mode does not capture")
	assert.Equal(t, "args: 2 x.mp4\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExec_WorkingDirectory(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	s := script(t, dir, "pwd.sh", "pwd\n")

	res, err := Exec{Dir: dir}.Run(context.Background(), Invocation{Path: s}, Options{})
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(res.Output))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExec_NotFound(t *testing.T) {
	_, err := Exec{}.Run(context.Background(),
		Invocation{Path: "recoverdemo-definitely-not-installed"}, Options{})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = Exec{}.Run(context.Background(),
		Invocation{Path: filepath.Join(t.TempDir(), "missing")}, Options{})
	require.ErrorIs(t, err, ErrNotFound)
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures need a POSIX shell")
	}
}

func script(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}
