package types

import (
	"testing"
	"time"
)

func TestNewJob_TrimsRequestFields(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	job := NewJob("clip_1", Request{URL: " https://youtu.be/x\n", Start: " 00:00:05 ", End: "\t00:00:10"}, now)

	if job.URL != "https://youtu.be/x" || job.Start != "00:00:05" || job.End != "00:00:10" {
		t.Fatalf("expected trimmed fields, got url=%q start=%q end=%q", job.URL, job.Start, job.End)
	}
	if job.Stage != StageReceived || job.Outcome != OutcomeNone {
		t.Fatalf("unexpected initial state %s/%q", job.Stage, job.Outcome)
	}
	if job.Artifacts == nil || !job.CreatedAt.Equal(now) {
		t.Fatalf("unexpected job %+v", job)
	}
}
