package timecode

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"90", 90},
		{"01:30", 90},
		{"00:01:30", 90},
		{"0", 0},
		{"1:02:03", 3723},
		{" 00:00:05 ", 5},
		{"75:00", 4500},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"00:00:00:01",
		"1:2:3:4:5",
		"ab",
		"01:3x",
		"-5",
		"+5",
		"1.5",
		"01::30",
		":30",
		"153722867280912931:00",
		"2562047788015216:00:00",
		"99999999999999999999",
	} {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); !errors.Is(err, ErrMalformed) {
				t.Fatalf("Parse(%q) err = %v, want ErrMalformed", in, err)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	got, err := Duration("00:00:10", "00:00:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != -5 {
		t.Fatalf("Duration = %d, want -5", got)
	}

	got, err = Duration("01:00", "00:02:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 90 {
		t.Fatalf("Duration = %d, want 90", got)
	}

	if _, err := Duration("00:00:10", "x"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for bad end, got %v", err)
	}
}
