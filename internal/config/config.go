// Package config holds the run request: defaults, CLI argument parsing, and
// validation. A Config is built once per run and read by every later stage.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Sentinel errors for request resolution. Both are terminal for the run.
var (
	ErrArgument     = errors.New("invalid arguments")
	ErrMissingInput = errors.New("input video not found")
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// TestVideoName is the file the encoder writes when --create-test-video is
// set. It is relative to WorkDir.
const TestVideoName = "test_input.mp4"

// DefaultDemoBinary is where the CMake build leaves mp4_recover_demo,
// relative to WorkDir. Visual Studio generators add a Debug/ config dir.
func DefaultDemoBinary() string {
	if runtime.GOOS == "windows" {
		return "build/Debug/mp4_recover_demo.exe"
	}
	return "build/mp4_recover_demo"
}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overridden by [ParseArgs], then checked by [Config.Validate] and
// [Config.ResolveInput].
type Config struct {
	// Run request.
	Scenario          int    // Default: 1. Passed verbatim to the demo.
	InputVideo        string // Empty means the demo uses synthetic frames.
	CreateTestVideo   bool
	TestVideoDuration int    // Seconds. Default: 3.
	TestVideoColor    string // lavfi color name. Default: "red".

	// Environment.
	WorkDir    string // Child working directory and artifact location. Default: ".".
	DemoBinary string // Relative to WorkDir unless absolute.
	FFmpegPath string // Default: "ffmpeg" (looked up on PATH).

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with the documented defaults. Used as the
// base before [ParseArgs] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Scenario:          1,
		TestVideoDuration: 3,
		TestVideoColor:    "red",
		WorkDir:           ".",
		DemoBinary:        DefaultDemoBinary(),
		FFmpegPath:        "ffmpeg",
		ColorMode:         ColorAuto,
	}
}

// Validate checks value ranges that the flag parser cannot express. The test
// video settings are only checked when --create-test-video will use them.
func (c *Config) Validate() error {
	if c.CreateTestVideo {
		if c.TestVideoDuration <= 0 {
			return fmt.Errorf("%w: test video duration must be positive (got %d)", ErrArgument, c.TestVideoDuration)
		}
		if strings.TrimSpace(c.TestVideoColor) == "" {
			return fmt.Errorf("%w: test video color must not be empty", ErrArgument)
		}
	}
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("%w: invalid color mode %q", ErrArgument, c.ColorMode)
	}
	if c.WorkDir == "" {
		c.WorkDir = "."
	}
	if strings.TrimSpace(c.DemoBinary) == "" {
		return fmt.Errorf("%w: demo binary path must not be empty", ErrArgument)
	}
	if strings.TrimSpace(c.FFmpegPath) == "" {
		return fmt.Errorf("%w: ffmpeg path must not be empty", ErrArgument)
	}
	return nil
}

// ResolveInput checks that the input video given on the command line exists.
// The literal CLI path is checked even when CreateTestVideo will later
// replace it. stat is os.Stat outside of tests.
//
// When WorkDir is not the current directory a relative input path is made
// absolute, since the demo runs with WorkDir as its working directory.
func (c *Config) ResolveInput(stat func(string) (os.FileInfo, error)) error {
	if c.InputVideo == "" {
		return nil
	}
	if _, err := stat(c.InputVideo); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingInput, c.InputVideo)
		}
		return fmt.Errorf("stat input video: %w", err)
	}
	if filepath.Clean(c.WorkDir) != "." && !filepath.IsAbs(c.InputVideo) {
		abs, err := filepath.Abs(c.InputVideo)
		if err != nil {
			return err
		}
		c.InputVideo = abs
	}
	return nil
}

// TestVideoPath is the generated clip's path as seen from WorkDir.
func (c *Config) TestVideoPath() string {
	return TestVideoName
}
