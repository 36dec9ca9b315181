package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const ruleWidth = 60

var bannerColor = color.New(color.FgHiMagenta, color.Bold)

// PrintBanner prints the tool title; magenta when colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, bannerColor.Sprint("MP4 Crash-Safe Recorder - MP4 Recover Demo"))
	fmt.Fprintln(w, Rule('='))
}

// Rule returns a horizontal separator line made of ch.
func Rule(ch rune) string {
	return strings.Repeat(string(ch), ruleWidth)
}
