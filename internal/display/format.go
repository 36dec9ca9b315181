package display

import (
	"fmt"
	"strconv"
)

var sizeUnits = []string{"KiB", "MiB", "GiB", "TiB"}

// FormatBytes renders n in binary units with one decimal, e.g. "183.0 KiB".
// Sizes under 1 KiB are exact.
func FormatBytes(n int64) string {
	if n < 1024 {
		return strconv.FormatInt(n, 10) + " B"
	}
	v := float64(n) / 1024
	u := 0
	for v >= 1024 && u < len(sizeUnits)-1 {
		v /= 1024
		u++
	}
	return fmt.Sprintf("%.1f %s", v, sizeUnits[u])
}
