package whisper

import (
	"context"
	"log/slog"
	"os/exec"
	"path/filepath"

	"github.com/forPelevin/ytshorts/internal/logging"
	"github.com/forPelevin/ytshorts/internal/ports/adapters/transcript"
	"github.com/forPelevin/ytshorts/internal/types"
)

const tool = "whisper"

// Adapter drives the openai-whisper CLI.
type Adapter struct {
	bin      string
	model    string
	language string
	logger   *slog.Logger
}

func New(binPath, model, language string) *Adapter {
	if binPath == "" {
		binPath = "whisper"
	}
	if model == "" {
		model = "base"
	}
	return &Adapter{bin: binPath, model: model, language: language}
}

// WithLogger logs every command line the adapter runs at debug level.
func (a *Adapter) WithLogger(logger *slog.Logger) *Adapter {
	a.logger = logger
	return a
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath, outDir string) (string, error) {
	args := []string{
		wavPath,
		"--model", a.model,
		"--output_format", "txt",
		"--output_dir", outDir,
	}
	if a.language != "" {
		args = append(args, "--language", a.language)
	}
	logging.Command(a.logger, tool, a.bin, args)
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return "", types.NewToolError(types.StageTranscribing, tool, err, b)
	}

	text, err := transcript.Read(filepath.Join(outDir, transcript.FileName(wavPath)))
	if err != nil {
		return "", types.NewToolError(types.StageTranscribing, tool, err, b)
	}
	return text, nil
}
