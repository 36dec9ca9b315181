// Package ffmpeg builds and runs the ffmpeg command that synthesizes the
// solid-color, 1 kHz tone test clip used as demo input.
//
// The argument list is fixed apart from the color, duration and output
// path. Failures are terminal: a missing ffmpeg is [ErrToolNotFound], a
// non-zero exit is a [*GeneratorError] carrying the captured output.
package ffmpeg
