package log

import "regexp"

var uncolor = regexp.MustCompile("\x1b\\[([0-9]+;)*[0-9]+m")

// Uncolor strips ANSI color escapes from text, so colorized output can be
// compared against a plain string.
func Uncolor(text string) string {
	return uncolor.ReplaceAllString(text, "")
}
