package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformed is returned for any string that is not a canonical timecode.
var ErrMalformed = errors.New("malformed timecode")

// Parse converts SS, MM:SS or HH:MM:SS into whole seconds.
func Parse(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w %q: expected SS, MM:SS or HH:MM:SS", ErrMalformed, s)
	}
	total := 0
	for _, p := range parts {
		n, err := component(p)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %v", ErrMalformed, s, err)
		}
		if total > (math.MaxInt-n)/60 {
			return 0, fmt.Errorf("%w %q: out of range", ErrMalformed, s)
		}
		total = total*60 + n
	}
	return total, nil
}

func component(p string) (int, error) {
	if p == "" {
		return 0, errors.New("empty component")
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric component %q", p)
		}
	}
	return strconv.Atoi(p)
}

// Duration returns end minus start in seconds. The result is not clamped:
// callers must reject values <= 0.
func Duration(start, end string) (int, error) {
	s, err := Parse(start)
	if err != nil {
		return 0, err
	}
	e, err := Parse(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}
