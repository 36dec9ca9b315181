package pipeline

import "github.com/backmassage/recoverdemo/internal/artifacts"

// Result summarizes a run.
type Result struct {
	Input        string // Video passed to the demo; empty for synthetic frames.
	GeneratedBy  string // "ffmpeg" when Input was synthesized, else "".
	Artifacts    []artifacts.Record
	DemoExitCode int
}

// TotalBytes sums the sizes of all artifacts.
func (r Result) TotalBytes() int64 {
	var n int64
	for _, a := range r.Artifacts {
		n += a.Size
	}
	return n
}

// ExitCode maps a run error to the process exit status: 0 on full success,
// 1 for any stage failure.
func ExitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
