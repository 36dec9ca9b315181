// Package artifacts inventories the encoded_*.mp4 files the demo may leave
// in its working directory.
package artifacts

import (
	"io/fs"

	"github.com/backmassage/recoverdemo/internal/display"
	"github.com/backmassage/recoverdemo/internal/fsx"
)

// Candidates are the file names the demo is known to produce, in report
// order. A scenario may produce any subset of them.
var Candidates = []string{
	"encoded_normal.mp4",
	"encoded_crash.mp4",
	"encoded_QVGA.mp4",
	"encoded_VGA.mp4",
}

// Record is one artifact that exists after the run.
type Record struct {
	Name string
	Size int64
}

// Logger is the minimal logging interface needed by Report.
type Logger interface {
	Info(string, ...interface{})
}

// Inventory returns a Record for every candidate present in fsys, in
// candidate order. Missing candidates are omitted, not reported as errors.
func Inventory(fsys fs.FS) []Record {
	var out []Record
	for _, name := range Candidates {
		size, err := fsx.Size(fsys, name)
		if err != nil {
			continue
		}
		out = append(out, Record{Name: name, Size: size})
	}
	return out
}

// Report logs the inventory, one line per artifact.
func Report(log Logger, records []Record) {
	log.Info("Generated files:")
	if len(records) == 0 {
		log.Info("  (none)")
		return
	}
	for _, r := range records {
		log.Info("  - %s (%d bytes, %s)", r.Name, r.Size, display.FormatBytes(r.Size))
	}
}
