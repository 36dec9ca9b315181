package ffmpeg

import (
	"fmt"

	"github.com/backmassage/recoverdemo/internal/runner"
)

// Fixed test clip parameters.
const (
	FrameSize    = "640x480"
	ToneHz       = 1000
	VideoCodec   = "libx264"
	VideoPreset  = "fast"
	VideoCRF     = "23"
	AudioCodec   = "aac"
	AudioBitrate = "128k"
)

// TestVideo describes the clip to synthesize.
type TestVideo struct {
	Output   string // Destination, overwritten unconditionally.
	Duration int    // Seconds.
	Color    string // lavfi color name, e.g. "red".
}

// BuildTestVideo constructs the ffmpeg invocation for tv: a lavfi color
// source and a sine source of the same duration, encoded to H.264 + AAC.
func BuildTestVideo(ffmpegPath string, tv TestVideo) runner.Invocation {
	args := make([]string, 0, 24)

	// --- Inputs ---
	args = append(args,
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=%s:s=%s:d=%d", tv.Color, FrameSize, tv.Duration),
		"-f", "lavfi",
		"-i", fmt.Sprintf("sine=f=%d:d=%d", ToneHz, tv.Duration),
	)

	// --- Video codec ---
	args = append(args, "-c:v", VideoCodec, "-preset", VideoPreset, "-crf", VideoCRF)

	// --- Audio codec ---
	args = append(args, "-c:a", AudioCodec, "-b:a", AudioBitrate)

	// --- Output ---
	args = append(args, "-y", tv.Output)

	return runner.Invocation{Path: ffmpegPath, Args: args}
}
