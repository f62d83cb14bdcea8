package whispercpp

import (
	"context"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/forPelevin/ytshorts/internal/logging"
	"github.com/forPelevin/ytshorts/internal/ports/adapters/transcript"
	"github.com/forPelevin/ytshorts/internal/types"
)

const tool = "whisper.cpp"

type Adapter struct {
	bin    string
	model  string
	logger *slog.Logger
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

// WithLogger logs every command line the adapter runs at debug level.
func (a *Adapter) WithLogger(logger *slog.Logger) *Adapter {
	a.logger = logger
	return a
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath, outDir string) (string, error) {
	txtPath := filepath.Join(outDir, transcript.FileName(wavPath))
	// whisper.cpp appends the extension to -of itself.
	outPrefix := strings.TrimSuffix(txtPath, ".txt")
	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-otxt",
		"-of", outPrefix,
	}
	logging.Command(a.logger, tool, a.bin, args)
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return "", types.NewToolError(types.StageTranscribing, tool, err, b)
	}

	text, err := transcript.Read(txtPath)
	if err != nil {
		return "", types.NewToolError(types.StageTranscribing, tool, err, b)
	}
	return text, nil
}
