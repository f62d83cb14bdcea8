package whisper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forPelevin/ytshorts/internal/types"
)

func writeStub(t *testing.T, body string) (bin, argsFile string) {
	t.Helper()
	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args.txt")
	bin = filepath.Join(dir, "whisper")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > '" + argsFile + "'\n" + body
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return bin, argsFile
}

func TestTranscribe_ReadsDerivedTxt(t *testing.T) {
	outDir := t.TempDir()
	wav := filepath.Join(t.TempDir(), "clip_1_stripped_audio.wav")
	txt := filepath.Join(outDir, "clip_1_stripped_audio.txt")
	bin, argsFile := writeStub(t, "printf ' Hello there.\\n General Kenobi.\\n' > '"+txt+"'\n")

	got, err := New(bin, "", "en").Transcribe(context.Background(), wav, outDir)
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if got != "Hello there. General Kenobi." {
		t.Fatalf("unexpected transcript: %q", got)
	}

	b, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	args := strings.Fields(string(b))
	want := []string{wav, "--model", "base", "--output_format", "txt", "--output_dir", outDir, "--language", "en"}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected args:\n got %q\nwant %q", args, want)
	}
}

func TestTranscribe_NonZeroExit(t *testing.T) {
	bin, _ := writeStub(t, "echo 'RuntimeError: model not found' >&2\nexit 2\n")

	_, err := New(bin, "tiny", "").Transcribe(context.Background(), filepath.Join(t.TempDir(), "a.wav"), t.TempDir())
	var te *types.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected ToolError, got %v", err)
	}
	if te.Stage != types.StageTranscribing {
		t.Fatalf("unexpected stage: %s", te.Stage)
	}
}

func TestTranscribe_MissingTxt(t *testing.T) {
	bin, _ := writeStub(t, "exit 0\n")

	_, err := New(bin, "tiny", "").Transcribe(context.Background(), filepath.Join(t.TempDir(), "a.wav"), t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
