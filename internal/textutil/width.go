package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			w = 1
		}
		width += w
	}
	return width
}

// ElideLeft shortens text to maxWidth columns by dropping leading runes and
// prefixing an ellipsis, keeping the end of a path visible.
func ElideLeft(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if DisplayWidth(text) <= maxWidth {
		return text
	}
	if maxWidth == 1 {
		return ellipsis
	}

	runes := []rune(text)
	available := maxWidth - 1
	width := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if w <= 0 {
			w = 1
		}
		if width+w > available {
			break
		}
		width += w
		start--
	}

	var b strings.Builder
	b.WriteString(ellipsis)
	b.WriteString(string(runes[start:]))
	return b.String()
}
