package ffmpeg

import (
	"context"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/forPelevin/ytshorts/internal/logging"
	"github.com/forPelevin/ytshorts/internal/types"
)

const tool = "ffmpeg"

type Adapter struct {
	ffmpeg string
	logger *slog.Logger
}

func New(ffmpegPath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Adapter{ffmpeg: ffmpegPath}
}

// WithLogger logs every command line the adapter runs at debug level.
func (a *Adapter) WithLogger(logger *slog.Logger) *Adapter {
	a.logger = logger
	return a
}

// Trim cuts durationSec seconds of inPath starting at startSec.
func (a *Adapter) Trim(ctx context.Context, inPath string, startSec, durationSec int, outPath string) (types.Artifact, error) {
	args := []string{
		"-y",
		"-ss", strconv.Itoa(startSec),
		"-i", inPath,
		"-t", strconv.Itoa(durationSec),
	}
	args = append(args, videoCodecArgs()...)
	args = append(args, outPath)
	return a.run(ctx, types.StageTrimming, types.ArtifactTrimmedVideo, args, outPath)
}

// ExtractAudio writes 16kHz mono 16-bit PCM WAV, the input whisper expects.
func (a *Adapter) ExtractAudio(ctx context.Context, inPath, outWav string) (types.Artifact, error) {
	args := []string{
		"-y",
		"-i", inPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	}
	return a.run(ctx, types.StageExtractingAudio, types.ArtifactExtractedAudio, args, outWav)
}

func (a *Adapter) BurnCaptions(ctx context.Context, inPath, assPath, outPath string) (types.Artifact, error) {
	args := []string{
		"-y",
		"-i", inPath,
		"-vf", "subtitles=" + escapeFilterPath(assPath),
	}
	args = append(args, videoCodecArgs()...)
	args = append(args, outPath)
	return a.run(ctx, types.StageBurningCaptions, types.ArtifactCaptionedVideo, args, outPath)
}

func (a *Adapter) run(ctx context.Context, stage types.Stage, kind types.ArtifactKind, args []string, outPath string) (types.Artifact, error) {
	logging.Command(a.logger, tool, a.ffmpeg, args)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Artifact{}, types.NewToolError(stage, tool, err, b)
	}
	art, err := types.StatArtifact(kind, outPath)
	if err != nil {
		return types.Artifact{}, types.NewToolError(stage, tool, err, b)
	}
	return art, nil
}

func videoCodecArgs() []string {
	return []string{
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
	}
}

// escapeFilterPath quotes a path for use inside an ffmpeg filtergraph option.
func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	p = strings.ReplaceAll(p, "'", "\\'")
	return p
}
