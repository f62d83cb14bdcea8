package cli

import (
	"log/slog"

	"github.com/forPelevin/ytshorts/internal/config"
	"github.com/forPelevin/ytshorts/internal/domain/captions"
	"github.com/forPelevin/ytshorts/internal/pipeline"
	"github.com/forPelevin/ytshorts/internal/usecase"
)

func pipelineConfig(cfg *config.Config, logger *slog.Logger) pipeline.Config {
	style := captions.DefaultStyle()
	if cfg.Captions.Font != "" {
		style.Font = cfg.Captions.Font
	}
	if cfg.Captions.FontSize > 0 {
		style.Size = cfg.Captions.FontSize
	}
	if cfg.Captions.MarginV > 0 {
		style.MarginV = cfg.Captions.MarginV
	}

	return pipeline.Config{
		Workspace: usecase.Workspace{
			DownloadDir: cfg.Paths.DownloadDir,
			OutputDir:   cfg.Paths.OutputDir,
			SubsDir:     cfg.Paths.SubsDir,
			OutputURL:   cfg.Server.OutputURL,
		},

		YtDlpPath:          cfg.Tools.YtDlp,
		DownloadFormat:     cfg.Tools.DownloadFormat,
		AllowedSourceHosts: cfg.Tools.AllowedSourceHosts,

		FFmpegPath: cfg.Tools.FFmpeg,

		Transcriber:     cfg.Tools.Transcriber,
		WhisperBin:      cfg.Tools.Whisper,
		WhisperModel:    cfg.Tools.WhisperModel,
		WhisperLanguage: cfg.Tools.WhisperLanguage,
		WhisperCppBin:   cfg.Tools.WhisperCpp,
		WhisperCppModel: cfg.Tools.WhisperCppModel,

		MaxLineLength:  cfg.Captions.MaxLineLength,
		SecondsPerLine: cfg.Captions.SecondsPerLine,
		Style:          style,

		TrimFromSectionStart: cfg.Jobs.TrimFromSectionStart,
		MaxConcurrent:        cfg.Jobs.MaxConcurrent,
		JobTimeout:           cfg.JobTimeout(),

		Logger: logger,
	}
}
