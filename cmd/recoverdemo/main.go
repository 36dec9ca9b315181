// Command recoverdemo is the CLI entrypoint for the MP4 crash-safe recorder
// recovery demo runner.
//
// It parses arguments, optionally creates a test clip with ffmpeg, runs the
// prebuilt mp4_recover_demo, and lists the files it produced. With --check
// it only runs diagnostics.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/backmassage/recoverdemo/internal/check"
	"github.com/backmassage/recoverdemo/internal/config"
	"github.com/backmassage/recoverdemo/internal/display"
	"github.com/backmassage/recoverdemo/internal/logging"
	"github.com/backmassage/recoverdemo/internal/pipeline"
	"github.com/backmassage/recoverdemo/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseArgs(&cfg, args, stdout, version); err != nil {
		if errors.Is(err, config.ErrHelp) || errors.Is(err, config.ErrVersion) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "recoverdemo: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'recoverdemo --help' for usage.")
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "recoverdemo: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "recoverdemo: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	display.PrintBanner(stdout)
	log.Debug("recoverdemo v%s (%s), run %s", version, commit, log.RunID())

	deps := pipeline.NewDeps(&cfg)
	ctx := context.Background()

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, &cfg, deps.Runner, deps.FS, log) {
			return 1
		}
		return 0
	}

	if cfg.Verbose {
		deps.Live = os.Stderr
	}
	deps.Spinner = term.IsTerminal(os.Stderr)

	// Phase 3: Run the stages. No signal handling: an interrupt reaches the
	// child through the terminal's process group and ends the run.
	_, err = pipeline.Run(ctx, &cfg, deps, log)
	return pipeline.ExitCode(err)
}
