package ffmpeg

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel errors for the generator stage.
var (
	ErrToolNotFound    = errors.New("ffmpeg not found")
	ErrGeneratorFailed = errors.New("failed to create test video")
)

// GeneratorError is returned when ffmpeg ran but exited non-zero. It
// matches ErrGeneratorFailed with errors.Is.
type GeneratorError struct {
	ExitCode int
	Output   string // Captured stdout+stderr.
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("%v (ffmpeg exit status %d)", ErrGeneratorFailed, e.ExitCode)
}

func (e *GeneratorError) Is(target error) bool { return target == ErrGeneratorFailed }

// Pre-compiled regexes for classifying ffmpeg output into an operator hint.
// Checked in order by [Hint]; the first match wins.
var (
	reMissingEncoder = regexp.MustCompile(
		`(?i)Unknown encoder '?(libx264|aac)'?|Encoder '?(libx264|aac)'? not found`)

	reBadColor = regexp.MustCompile(
		`(?i)Cannot find color|Unable to parse option value .* as color|Unable to parse color`)

	reLavfiMissing = regexp.MustCompile(
		`(?i)Unknown input format:? '?lavfi'?`)

	reOutputUnwritable = regexp.MustCompile(
		`(?i)Permission denied|Read-only file system|No space left on device`)
)

// Hint returns a one-line suggestion for known ffmpeg failure output, or
// "" when nothing matches.
func Hint(output string) string {
	switch {
	case reMissingEncoder.MatchString(output):
		return "this ffmpeg build lacks the libx264 or aac encoder"
	case reBadColor.MatchString(output):
		return "the test video color is not a valid ffmpeg color name"
	case reLavfiMissing.MatchString(output):
		return "this ffmpeg build lacks libavfilter (lavfi input)"
	case reOutputUnwritable.MatchString(output):
		return "the output file cannot be written in the working directory"
	}
	return ""
}

// lastLines returns at most n trailing non-empty lines of s.
func lastLines(s string, n int) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, strings.TrimRight(l, "\r"))
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
