package pipeline

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/backmassage/recoverdemo/internal/artifacts"
	"github.com/backmassage/recoverdemo/internal/config"
	"github.com/backmassage/recoverdemo/internal/demo"
	"github.com/backmassage/recoverdemo/internal/display"
	"github.com/backmassage/recoverdemo/internal/ffmpeg"
	"github.com/backmassage/recoverdemo/internal/fsx"
	"github.com/backmassage/recoverdemo/internal/runner"
)

// Logger is the logging interface the pipeline and its stages need.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Deps are the run's effects on the outside world.
type Deps struct {
	Runner runner.Runner                     // Spawns ffmpeg and the demo in the working directory.
	FS     fs.FS                             // The working directory.
	Stat   func(string) (os.FileInfo, error) // Checks the CLI input path.

	Live    io.Writer // Optional live ffmpeg output (verbose).
	Spinner bool      // Show a spinner while ffmpeg runs.
}

// NewDeps returns the real process runner and filesystem for cfg.WorkDir.
func NewDeps(cfg *config.Config) Deps {
	return Deps{
		Runner: runner.Exec{Dir: cfg.WorkDir},
		FS:     fsx.OS(cfg.WorkDir),
		Stat:   os.Stat,
	}
}

// Run executes one demo run. The returned error is one of the config,
// ffmpeg or demo sentinels (possibly wrapped) and is already logged.
func Run(ctx context.Context, cfg *config.Config, deps Deps, log Logger) (Result, error) {
	var res Result

	// --- Resolve input (before any process is spawned) ---
	if err := cfg.ResolveInput(deps.Stat); err != nil {
		if errors.Is(err, config.ErrMissingInput) {
			log.Error("Input video not found: %s", cfg.InputVideo)
		} else {
			log.Error("Cannot resolve input video %s: %v", cfg.InputVideo, err)
		}
		return res, err
	}
	input := cfg.InputVideo

	// --- Optional test video ---
	if cfg.CreateTestVideo {
		if input != "" {
			log.Warn("--create-test-video replaces input video %s", input)
		}
		gen := &ffmpeg.Generator{
			FFmpeg:  cfg.FFmpegPath,
			Runner:  deps.Runner,
			Log:     log,
			Live:    deps.Live,
			Spinner: deps.Spinner,
		}
		out, err := gen.Generate(ctx, ffmpeg.TestVideo{
			Output:   cfg.TestVideoPath(),
			Duration: cfg.TestVideoDuration,
			Color:    cfg.TestVideoColor,
		})
		if err != nil {
			return res, err
		}
		input = out
		res.GeneratedBy = "ffmpeg"
	}
	res.Input = input
	if input == "" {
		log.Info("No input video; the demo will use synthetic frames")
	}

	// --- Demo ---
	err := demo.Run(ctx, deps.Runner, deps.FS, cfg.WorkDir, log, demo.Options{
		Binary:   cfg.DemoBinary,
		Scenario: cfg.Scenario,
		Input:    input,
	})
	if err != nil {
		var fe *demo.FailedError
		if errors.As(err, &fe) {
			res.DemoExitCode = fe.ExitCode
			log.Info("")
			log.Info("%s", display.Rule('='))
			log.Error("Demo failed! (exit status %d)", fe.ExitCode)
			log.Info("%s", display.Rule('='))
		}
		return res, err
	}

	log.Info("")
	log.Info("%s", display.Rule('='))
	log.Success("Demo completed successfully!")
	log.Info("%s", display.Rule('='))

	// --- Artifacts ---
	res.Artifacts = artifacts.Inventory(deps.FS)
	artifacts.Report(log, res.Artifacts)
	log.Debug("%d artifact(s), %s total", len(res.Artifacts), display.FormatBytes(res.TotalBytes()))
	return res, nil
}
