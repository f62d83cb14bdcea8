package types

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestToolError_UnwrapAndMessage(t *testing.T) {
	base := errors.New("exit status 1")
	err := NewToolError(StageDownloading, "yt-dlp", base, []byte("ERROR: video unavailable\n"))

	if !errors.Is(err, base) {
		t.Fatalf("expected ToolError to unwrap to base error")
	}
	var te *ToolError
	if !errors.As(error(err), &te) || te.Stage != StageDownloading {
		t.Fatalf("expected stage %q, got %+v", StageDownloading, te)
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "yt-dlp failed: exit status 1") {
		t.Fatalf("unexpected message: %q", msg)
	}
	if !strings.Contains(msg, "video unavailable") {
		t.Fatalf("expected tool output in message: %q", msg)
	}
}

func TestNewToolError_KeepsOutputTail(t *testing.T) {
	out := strings.Repeat("a", maxToolOutput) + "tail"
	err := NewToolError(StageTrimming, "ffmpeg", nil, []byte(out))
	if len(err.Output) != maxToolOutput {
		t.Fatalf("expected output capped at %d, got %d", maxToolOutput, len(err.Output))
	}
	if !strings.HasSuffix(err.Output, "tail") {
		t.Fatalf("expected the tail of the output to be kept")
	}
}

func TestStatArtifact(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(full, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	empty := filepath.Join(dir, "empty.mp4")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	a, err := StatArtifact(ArtifactRawDownload, full)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != ArtifactRawDownload || a.Path != full {
		t.Fatalf("unexpected artifact: %+v", a)
	}
	if _, err := StatArtifact(ArtifactRawDownload, empty); err == nil {
		t.Fatalf("expected empty file to be rejected")
	}
	if _, err := StatArtifact(ArtifactRawDownload, filepath.Join(dir, "nope.mp4")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := StatArtifact(ArtifactRawDownload, dir); err == nil {
		t.Fatalf("expected directory to be rejected")
	}
}

func TestStageTerminal(t *testing.T) {
	for _, s := range []Stage{StageReceived, StageDownloading, StageBurningCaptions} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
	if !StageDone.Terminal() || !StageFailed.Terminal() {
		t.Fatalf("done and failed must be terminal")
	}
}
