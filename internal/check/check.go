// Package check provides system diagnostics (--check mode): whether ffmpeg
// can synthesize the test clip and whether the demo binary has been built.
package check

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/backmassage/recoverdemo/internal/config"
	"github.com/backmassage/recoverdemo/internal/demo"
	"github.com/backmassage/recoverdemo/internal/ffmpeg"
	"github.com/backmassage/recoverdemo/internal/runner"
)

// Sentinel errors for failed checks.
var (
	ErrFfmpegNotFound = errors.New("ffmpeg not found")
	ErrFfmpegBroken   = errors.New("ffmpeg found but could not list encoders")
	ErrEncoderMissing = errors.New("ffmpeg lacks the libx264 or aac encoder")
	ErrDemoNotBuilt   = errors.New("demo executable not built")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the --check flow: ffmpeg version, required encoders, and
// demo binary presence. It logs every finding and reports whether the
// environment can run a full demo with --create-test-video.
func RunCheck(ctx context.Context, cfg *config.Config, r runner.Runner, dirFS fs.FS, log Logger) bool {
	log.Info("=== System Check ===")

	ok := true
	if err := checkFfmpeg(ctx, cfg, r, log); err != nil {
		ok = false
	}
	if err := checkDemo(cfg, dirFS, log); err != nil {
		ok = false
	}
	return ok
}

// checkFfmpeg logs the ffmpeg version line and whether libx264 and aac are
// available.
func checkFfmpeg(ctx context.Context, cfg *config.Config, r runner.Runner, log Logger) error {
	res, err := r.Run(ctx, runner.Invocation{Path: cfg.FFmpegPath, Args: []string{"-hide_banner", "-version"}}, runner.Options{})
	if err != nil {
		log.Error("ffmpeg not found: %s", cfg.FFmpegPath)
		return ErrFfmpegNotFound
	}
	if res.ExitCode != 0 {
		log.Warn("ffmpeg found but -version failed (exit status %d)", res.ExitCode)
	} else {
		log.Success("ffmpeg: %s", firstLine(res.Output))
	}

	if err := encoders(ctx, cfg, r); err != nil {
		log.Error("%v", err)
		return err
	}
	log.Success("Encoders: %s, %s", ffmpeg.VideoCodec, ffmpeg.AudioCodec)
	return nil
}

// checkDemo logs whether the demo executable exists at its build path.
func checkDemo(cfg *config.Config, dirFS fs.FS, log Logger) error {
	if !demo.Locate(dirFS, cfg.WorkDir, cfg.DemoBinary) {
		log.Error("Demo executable not found: %s", cfg.DemoBinary)
		log.Info("Build it first: cmake .. && cmake --build .")
		return ErrDemoNotBuilt
	}
	log.Success("Demo executable: %s", cfg.DemoBinary)
	return nil
}

// encoders lists ffmpeg's encoders and verifies the test clip's codecs are
// among them.
func encoders(ctx context.Context, cfg *config.Config, r runner.Runner) error {
	res, err := r.Run(ctx, runner.Invocation{Path: cfg.FFmpegPath, Args: []string{"-hide_banner", "-encoders"}}, runner.Options{})
	if err != nil {
		return ErrFfmpegNotFound
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%w: -encoders exit status %d", ErrFfmpegBroken, res.ExitCode)
	}
	for _, want := range []string{ffmpeg.VideoCodec, ffmpeg.AudioCodec} {
		if !hasEncoder(res.Output, want) {
			return fmt.Errorf("%w (missing %s)", ErrEncoderMissing, want)
		}
	}
	return nil
}

// hasEncoder reports whether the `ffmpeg -encoders` listing has an entry
// named exactly name (second column).
func hasEncoder(listing, name string) bool {
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
