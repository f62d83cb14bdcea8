package ytdlp

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/forPelevin/ytshorts/internal/logging"
	"github.com/forPelevin/ytshorts/internal/types"
)

const tool = "yt-dlp"

type Adapter struct {
	bin          string
	format       string
	allowedHosts []string
	logger       *slog.Logger
}

func New(binPath, format string, allowedHosts []string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	if format == "" {
		format = "mp4"
	}
	return &Adapter{bin: binPath, format: format, allowedHosts: allowedHosts}
}

// WithLogger logs every command line the adapter runs at debug level.
func (a *Adapter) WithLogger(logger *slog.Logger) *Adapter {
	a.logger = logger
	return a
}

// Fetch downloads only the start-end section of url. The timecodes are passed
// through verbatim as yt-dlp's section expression.
func (a *Adapter) Fetch(ctx context.Context, url, start, end, outPath string) (types.Artifact, error) {
	if err := ValidateSourceURL(url, a.allowedHosts); err != nil {
		return types.Artifact{}, types.NewToolError(types.StageDownloading, tool, err, nil)
	}

	args := fetchArgs(url, start, end, a.format, outPath)
	logging.Command(a.logger, tool, a.bin, args)
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Artifact{}, types.NewToolError(types.StageDownloading, tool, err, b)
	}
	art, err := types.StatArtifact(types.ArtifactRawDownload, outPath)
	if err != nil {
		return types.Artifact{}, types.NewToolError(types.StageDownloading, tool, err, b)
	}
	return art, nil
}

func fetchArgs(url, start, end, format, outPath string) []string {
	return []string{
		"--no-playlist",
		"--download-sections", SectionExpr(start, end),
		"-f", format,
		"-o", outPath,
		"--",
		url,
	}
}

// SectionExpr builds the yt-dlp --download-sections value for a time range.
func SectionExpr(start, end string) string {
	return "*" + start + "-" + end
}
