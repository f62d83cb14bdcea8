package captions

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormat_QuickBrownFox(t *testing.T) {
	lines := Format("the quick brown fox jumps over the lazy dog", 40, 2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].Text != "the quick brown fox jumps over the lazy" {
		t.Fatalf("unexpected first line: %q", lines[0].Text)
	}
	if lines[1].Text != "dog" {
		t.Fatalf("unexpected second line: %q", lines[1].Text)
	}
	if lines[0].Start != 0 || lines[0].End != 2 || lines[1].Start != 2 || lines[1].End != 4 {
		t.Fatalf("unexpected timings: %+v", lines)
	}
}

func TestFormat_Properties(t *testing.T) {
	transcripts := []string{
		"hello",
		"  leading and trailing   whitespace\tand\ttabs\nnewlines  ",
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
		"exactly forty characters in this line ok then one more",
		"ünïcödé wörds çount as rünes not bytes ünïcödé wörds çount as rünes",
	}
	for _, maxLen := range []int{10, 25, 40} {
		for _, secs := range []int{1, 2, 5} {
			for _, tr := range transcripts {
				lines := Format(tr, maxLen, secs)
				if len(lines) == 0 {
					t.Fatalf("expected at least one line for %q", tr)
				}

				texts := make([]string, 0, len(lines))
				for i, ln := range lines {
					texts = append(texts, ln.Text)
					if ln.End-ln.Start != secs {
						t.Fatalf("line %d spans %d seconds, want %d", i, ln.End-ln.Start, secs)
					}
					if i > 0 && ln.Start != lines[i-1].End {
						t.Fatalf("line %d starts at %d, previous ends at %d", i, ln.Start, lines[i-1].End)
					}
					if ln.Text == "" {
						t.Fatalf("unexpected empty line %d for %q", i, tr)
					}
					if n := utf8.RuneCountInString(ln.Text); n > maxLen && strings.Contains(ln.Text, " ") {
						t.Fatalf("line %q is %d runes, max %d", ln.Text, n, maxLen)
					}
				}
				if lines[0].Start != 0 {
					t.Fatalf("first line starts at %d", lines[0].Start)
				}

				got := strings.Fields(strings.TrimSpace(strings.Join(texts, " ")))
				want := strings.Fields(tr)
				if strings.Join(got, "\x00") != strings.Join(want, "\x00") {
					t.Fatalf("tokens not preserved:\n got %q\nwant %q", got, want)
				}
			}
		}
	}
}

func TestFormat_BlankTranscriptYieldsOneEmptyLine(t *testing.T) {
	for _, tr := range []string{"", "   ", "\n\t"} {
		lines := Format(tr, 40, 2)
		if len(lines) != 1 || lines[0].Text != "" {
			t.Fatalf("Format(%q) = %+v, want one empty line", tr, lines)
		}
		if lines[0].Start != 0 || lines[0].End != 2 {
			t.Fatalf("unexpected timing: %+v", lines[0])
		}
	}
}

func TestFormat_OversizeWordGetsOwnLine(t *testing.T) {
	lines := Format("a supercalifragilistic b", 10, 2)
	want := []string{"a", "supercalifragilistic", "b"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %+v", len(want), lines)
	}
	for i := range want {
		if lines[i].Text != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i].Text, want[i])
		}
	}
}

func TestFormat_Defaults(t *testing.T) {
	lines := Format("one two", 0, 0)
	if len(lines) != 1 || lines[0].End != DefaultSecondsPerLine {
		t.Fatalf("expected defaults applied, got %+v", lines)
	}
}
