package ports

import (
	"context"

	"github.com/forPelevin/ytshorts/internal/types"
)

// Downloader fetches the start-end section of a remote video into outPath.
type Downloader interface {
	Fetch(ctx context.Context, url, start, end, outPath string) (types.Artifact, error)
}

type Transcoder interface {
	Trim(ctx context.Context, inPath string, startSec, durationSec int, outPath string) (types.Artifact, error)
	ExtractAudio(ctx context.Context, inPath, outWav string) (types.Artifact, error)
	BurnCaptions(ctx context.Context, inPath, assPath, outPath string) (types.Artifact, error)
}

// Transcriber turns a 16kHz mono WAV into plain transcript text. Tool output
// files land in outDir.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath, outDir string) (string, error)
}
