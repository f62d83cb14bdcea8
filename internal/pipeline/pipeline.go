package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/forPelevin/ytshorts/internal/domain/captions"
	"github.com/forPelevin/ytshorts/internal/logging"
	"github.com/forPelevin/ytshorts/internal/ports"
	"github.com/forPelevin/ytshorts/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/ytshorts/internal/ports/adapters/whisper"
	"github.com/forPelevin/ytshorts/internal/ports/adapters/whispercpp"
	"github.com/forPelevin/ytshorts/internal/ports/adapters/ytdlp"
	"github.com/forPelevin/ytshorts/internal/types"
	"github.com/forPelevin/ytshorts/internal/usecase"
)

const (
	TranscriberWhisper    = "whisper"
	TranscriberWhisperCpp = "whispercpp"
)

type Config struct {
	Workspace usecase.Workspace

	YtDlpPath          string
	DownloadFormat     string
	AllowedSourceHosts []string

	FFmpegPath string

	// Transcriber selects the whisper or whispercpp adapter.
	Transcriber     string
	WhisperBin      string
	WhisperModel    string
	WhisperLanguage string
	WhisperCppBin   string
	WhisperCppModel string

	MaxLineLength  int
	SecondsPerLine int
	Style          captions.Style

	TrimFromSectionStart bool

	// MaxConcurrent bounds the clips processed at once.
	MaxConcurrent int
	// JobTimeout bounds a single clip end to end. Zero means no limit.
	JobTimeout time.Duration

	Logger *slog.Logger
}

func (c Config) Validate() error {
	if c.Workspace.DownloadDir == "" || c.Workspace.OutputDir == "" || c.Workspace.SubsDir == "" {
		return errors.New("download, output and subs dirs are required")
	}
	if c.MaxConcurrent <= 0 {
		return fmt.Errorf("max concurrent jobs must be > 0")
	}
	if c.JobTimeout < 0 {
		return fmt.Errorf("job timeout must be >= 0")
	}
	switch strings.ToLower(c.Transcriber) {
	case "", TranscriberWhisper:
	case TranscriberWhisperCpp:
		if c.WhisperCppModel == "" {
			return fmt.Errorf("whisper.cpp model path is required")
		}
	default:
		return fmt.Errorf("unknown transcriber %q", c.Transcriber)
	}
	return nil
}

// Service runs clip jobs with bounded concurrency and tracks the active ones.
type Service struct {
	uc       usecase.Usecase
	sem      *semaphore.Weighted
	registry *Registry
	timeout  time.Duration
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
}

// New builds the external tool adapters from cfg and wires them into a Service.
func New(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	toolLog := logging.Component(cfg.Logger, "tools")
	var asr ports.Transcriber
	switch strings.ToLower(cfg.Transcriber) {
	case TranscriberWhisperCpp:
		asr = whispercpp.New(cfg.WhisperCppBin, cfg.WhisperCppModel).WithLogger(toolLog)
	default:
		asr = whisper.New(cfg.WhisperBin, cfg.WhisperModel, cfg.WhisperLanguage).WithLogger(toolLog)
	}
	deps := usecase.Deps{
		Downloader:  ytdlp.New(cfg.YtDlpPath, cfg.DownloadFormat, cfg.AllowedSourceHosts).WithLogger(toolLog),
		Transcoder:  ffmpeg.New(cfg.FFmpegPath).WithLogger(toolLog),
		Transcriber: asr,
	}
	return NewWithDeps(cfg, deps)
}

// NewWithDeps wires a Service around caller-supplied tool adapters.
func NewWithDeps(cfg Config, deps usecase.Deps) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := logging.Component(cfg.Logger, "pipeline")
	deps.Logger = logger
	uc := usecase.New(deps, usecase.Options{
		Workspace:            cfg.Workspace,
		MaxLineLength:        cfg.MaxLineLength,
		SecondsPerLine:       cfg.SecondsPerLine,
		Style:                cfg.Style,
		TrimFromSectionStart: cfg.TrimFromSectionStart,
	})
	return &Service{
		uc:       uc,
		sem:      semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		registry: NewRegistry(),
		timeout:  cfg.JobTimeout,
		logger:   logger,
		newID:    func() string { return "clip_" + uuid.NewString() },
		now:      time.Now,
	}, nil
}

// Process runs one clip request to its terminal event and blocks until then.
// A request arriving while every slot is busy is rejected with an error event
// rather than queued.
func (s *Service) Process(ctx context.Context, req types.Request, sink types.Sink) error {
	job := types.NewJob(s.newID(), req, s.now())
	if !s.sem.TryAcquire(1) {
		s.logger.Warn("clip rejected", logging.String(logging.FieldJobID, job.ID), logging.Error(types.ErrBusy))
		sink(types.Event{Kind: types.EventError, JobID: job.ID, Stage: job.Stage, Message: types.ErrBusy.Error()})
		return types.ErrBusy
	}
	defer s.sem.Release(1)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.registry.add(job)
	defer s.registry.remove(job.ID)

	s.logger.Info("clip received",
		logging.String(logging.FieldJobID, job.ID),
		logging.String("url", job.URL),
		logging.String("start", job.Start),
		logging.String("end", job.End),
	)
	return s.uc.Run(ctx, job, func(e types.Event) {
		s.registry.update(e.JobID, e.Stage)
		sink(e)
	})
}

// Active lists the jobs currently running, oldest first.
func (s *Service) Active() []types.JobSummary {
	return s.registry.List()
}
