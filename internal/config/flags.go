package config

// This file implements CLI argument parsing and help text.
// Positionals are [scenario] [input_video]; flags may appear anywhere.
// Negated flags (e.g. --no-color) are applied after parsing so Config
// defaults hold unless set.

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrHelp and ErrVersion report that help or version text was printed and
// the caller should exit successfully without running anything.
var (
	ErrHelp    = errors.New("help requested")
	ErrVersion = errors.New("version requested")
)

// negatedFlags holds flags that are applied after parsing. These either
// override a default (noColor -> ColorNever) or stop the run (showVersion).
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
}

// ParseArgs parses args (without argv[0]) on top of cfg. Help and version
// text go to out. Any malformed input is returned wrapped in ErrArgument.
func ParseArgs(cfg *Config, args []string, out io.Writer, version string) error {
	var (
		negated negatedFlags
		ran     bool
	)

	cmd := &cobra.Command{
		Use:   "recoverdemo [scenario] [input_video]",
		Short: "Run the MP4 crash-safe recorder recovery demo",
		Long: "Runs the prebuilt mp4_recover_demo with a scenario number and an optional\n" +
			"input video, optionally creating a synthetic test clip with ffmpeg first,\n" +
			"then lists the encoded_*.mp4 files the demo produced.",
		Example: "  recoverdemo 1                        # scenario 1 with synthetic frames\n" +
			"  recoverdemo 1 camera.mp4             # scenario 1 with real video\n" +
			"  recoverdemo 2 --create-test-video --test-video-color blue",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, pos []string) error {
			ran = true
			if negated.showVersion {
				fmt.Fprintln(out, "recoverdemo v"+version)
				return ErrVersion
			}
			return parsePositionalArgs(cfg, pos)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrArgument, err)
	})

	fs := cmd.Flags()
	defineRequestFlags(fs, cfg)
	defineEnvironmentFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)

	if args == nil {
		args = []string{} // cobra falls back to os.Args on nil
	}
	cmd.SetArgs(separateNegativeNumbers(fs, args))

	err := cmd.Execute()
	switch {
	case errors.Is(err, ErrVersion):
		return err
	case err != nil && !errors.Is(err, ErrArgument):
		// cobra's own errors (arg count, unknown flag before FlagErrorFunc).
		return fmt.Errorf("%w: %v", ErrArgument, err)
	case err != nil:
		return err
	case !ran:
		return ErrHelp
	}

	applyNegatedFlags(cfg, &negated)
	return nil
}

// defineRequestFlags registers the test video options.
func defineRequestFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.CreateTestVideo, "create-test-video", cfg.CreateTestVideo,
		"Create a test video with ffmpeg before running the demo")
	fs.IntVar(&cfg.TestVideoDuration, "test-video-duration", cfg.TestVideoDuration,
		"Duration of test video in seconds")
	fs.StringVar(&cfg.TestVideoColor, "test-video-color", cfg.TestVideoColor,
		"Color of test video (any lavfi color name)")
}

// defineEnvironmentFlags registers paths to the working directory and the
// two external tools.
func defineEnvironmentFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.WorkDir, "workdir", cfg.WorkDir,
		"Working directory for the demo and its encoded_*.mp4 output")
	fs.StringVar(&cfg.DemoBinary, "demo-binary", cfg.DemoBinary,
		"Demo executable, relative to --workdir")
	fs.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "ffmpeg executable")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log, --version.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output (show live ffmpeg output)")
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", false, "Check ffmpeg and the demo binary, then exit")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	fs.BoolVarP(&n.showVersion, "version", "V", false, "Print version and exit")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

var negativeNumber = regexp.MustCompile(`^-[0-9]+$`)

// separateNegativeNumbers lets a negative scenario such as "-1" through as a
// positional. pflag would read it as the shorthand flag '1'. When such a token
// is present, flags (with their values) are kept in front and every
// positional is moved after "--", in its original order.
func separateNegativeNumbers(fs *pflag.FlagSet, args []string) []string {
	found := false
	for _, a := range args {
		if a == "--" {
			break
		}
		if negativeNumber.MatchString(a) {
			found = true
			break
		}
	}
	if !found {
		return args
	}

	flags := make([]string, 0, len(args)+1)
	var pos []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			pos = append(pos, args[i+1:]...)
			i = len(args)
		case negativeNumber.MatchString(a), a == "-", !strings.HasPrefix(a, "-"):
			pos = append(pos, a)
		default:
			flags = append(flags, a)
			if takesNextArg(fs, a) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}
	return append(append(flags, "--"), pos...)
}

// takesNextArg reports whether flag token a consumes the following argument
// as its value.
func takesNextArg(fs *pflag.FlagSet, a string) bool {
	if name, ok := strings.CutPrefix(a, "--"); ok {
		if strings.Contains(name, "=") {
			return false
		}
		f := fs.Lookup(name)
		return f != nil && f.NoOptDefVal == ""
	}
	// Shorthand group such as -vl: only the last letter can take the next arg.
	short := a[1:]
	for i, r := range short {
		if r > 127 {
			return false
		}
		f := fs.ShorthandLookup(string(r))
		if f == nil {
			return false
		}
		if f.NoOptDefVal == "" {
			return i == len(short)-1
		}
	}
	return false
}

// parsePositionalArgs sets Scenario and InputVideo from up to two positionals.
func parsePositionalArgs(cfg *Config, args []string) error {
	if len(args) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("%w: scenario must be a whole number (got %q)", ErrArgument, args[0])
		}
		cfg.Scenario = n
	}
	if len(args) > 1 {
		cfg.InputVideo = args[1]
	}
	return nil
}
