package captions

import (
	"strings"
	"unicode/utf8"

	"github.com/forPelevin/ytshorts/internal/types"
)

const (
	DefaultMaxLineLength  = 40
	DefaultSecondsPerLine = 2
)

// Format packs transcript words greedily into lines of at most maxLineLength
// runes and assigns each line a fixed secondsPerLine window, back to back.
//
// A word longer than maxLineLength gets a line of its own. The last buffer is
// always emitted, so a blank transcript yields a single empty line.
func Format(transcript string, maxLineLength, secondsPerLine int) []types.CaptionLine {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	if secondsPerLine <= 0 {
		secondsPerLine = DefaultSecondsPerLine
	}

	texts := splitLines(strings.Fields(transcript), maxLineLength)
	out := make([]types.CaptionLine, 0, len(texts))
	for i, text := range texts {
		start := i * secondsPerLine
		out = append(out, types.CaptionLine{
			Text:  text,
			Start: start,
			End:   start + secondsPerLine,
		})
	}
	return out
}

func splitLines(words []string, maxLen int) []string {
	var lines []string
	var cur strings.Builder
	curLen := 0
	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+wl > maxLen {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wl
	}
	return append(lines, cur.String())
}
