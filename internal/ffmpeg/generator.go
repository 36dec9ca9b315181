package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/backmassage/recoverdemo/internal/runner"
)

// maxReportLines caps how much captured ffmpeg output is echoed on failure.
const maxReportLines = 20

// Logger is the minimal logging interface needed by the generator.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Generator synthesizes test clips with ffmpeg.
type Generator struct {
	FFmpeg string        // ffmpeg executable.
	Runner runner.Runner // Process runner.
	Log    Logger

	// Live, when set, receives ffmpeg output as it is produced (verbose mode).
	Live io.Writer
	// Spinner shows a progress spinner on os.Stderr while ffmpeg runs.
	// Only enable it on an interactive terminal.
	Spinner bool
}

// Generate runs ffmpeg to create tv.Output and returns that path, which
// becomes the demo's input video.
func (g *Generator) Generate(ctx context.Context, tv TestVideo) (string, error) {
	g.Log.Info("Creating test video: %s (%ds, color=%s)", tv.Output, tv.Duration, tv.Color)

	inv := BuildTestVideo(g.FFmpeg, tv)
	g.Log.Debug("Running: %s", inv)

	var spin *spinner.Spinner
	if g.Spinner && g.Live == nil {
		spin = spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " Encoding test video..."
		spin.Start()
	}
	res, err := g.Runner.Run(ctx, inv, runner.Options{Mode: runner.Capture, Tee: g.Live})
	if spin != nil {
		spin.Stop()
	}

	if err != nil {
		if errors.Is(err, runner.ErrNotFound) {
			g.Log.Error("ffmpeg not found. Please install ffmpeg.")
			return "", fmt.Errorf("%w: %s", ErrToolNotFound, g.FFmpeg)
		}
		return "", fmt.Errorf("%w: %v", ErrGeneratorFailed, err)
	}

	if res.ExitCode != 0 {
		g.Log.Error("Failed to create test video")
		for _, l := range lastLines(res.Output, maxReportLines) {
			g.Log.Error("  %s", l)
		}
		if hint := Hint(res.Output); hint != "" {
			g.Log.Error("Hint: %s", hint)
		}
		return "", &GeneratorError{ExitCode: res.ExitCode, Output: res.Output}
	}

	g.Log.Success("Test video created: %s", tv.Output)
	return tv.Output, nil
}
