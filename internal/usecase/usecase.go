package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/forPelevin/ytshorts/internal/domain/captions"
	"github.com/forPelevin/ytshorts/internal/domain/timecode"
	"github.com/forPelevin/ytshorts/internal/logging"
	"github.com/forPelevin/ytshorts/internal/ports"
	"github.com/forPelevin/ytshorts/internal/ports/adapters/transcript"
	"github.com/forPelevin/ytshorts/internal/types"
)

// Client-visible status messages, one per stage boundary.
const (
	StatusDownloading = "Downloading video..."
	StatusTrimming    = "Stripping video..."
	StatusExtracting  = "Extracting audio..."
	StatusTranscribe  = "Transcribing audio..."
	StatusBurning     = "Burning captions..."
)

// Deps are the external tools a job is driven through.
type Deps struct {
	Downloader  ports.Downloader
	Transcoder  ports.Transcoder
	Transcriber ports.Transcriber
	Logger      *slog.Logger
}

// Workspace is the directory layout artifacts are written into. Every file
// name is derived from the job ID, so jobs never share paths.
type Workspace struct {
	DownloadDir string
	OutputDir   string
	SubsDir     string
	// OutputURL is the public prefix under which OutputDir is served.
	OutputURL string
}

func (w Workspace) rawPath(id string) string     { return filepath.Join(w.DownloadDir, id+".mp4") }
func (w Workspace) trimmedPath(id string) string { return filepath.Join(w.DownloadDir, id+"_stripped.mp4") }
func (w Workspace) audioPath(id string) string {
	return filepath.Join(w.DownloadDir, id+"_stripped_audio.wav")
}
func (w Workspace) captionPath(id string) string { return filepath.Join(w.SubsDir, id+".ass") }
func (w Workspace) finalPath(id string) string   { return filepath.Join(w.OutputDir, id+"_final.mp4") }

func (w Workspace) videoRef(final string) string {
	prefix := w.OutputURL
	if prefix == "" {
		prefix = "/output/"
	}
	return path.Join("/", prefix, filepath.Base(final))
}

// Options tune caption layout and the workspace a job writes into.
type Options struct {
	Workspace      Workspace
	MaxLineLength  int
	SecondsPerLine int
	Style          captions.Style
	// TrimFromSectionStart trims from offset 0 instead of the requested start,
	// for downloaders whose section output is already rebased to the start.
	TrimFromSectionStart bool
}

// Usecase runs one clip job through every stage in order.
type Usecase struct {
	d Deps
	o Options
}

// New returns a Usecase. A nil Deps.Logger discards logs.
func New(d Deps, o Options) Usecase {
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}
	return Usecase{d: d, o: o}
}

type step struct {
	stage  types.Stage
	status string
	run    func(ctx context.Context, r *jobRun) error
}

func (u Usecase) steps() []step {
	return []step{
		{types.StageDownloading, StatusDownloading, u.download},
		{types.StageTrimming, StatusTrimming, u.trim},
		{types.StageExtractingAudio, StatusExtracting, u.extractAudio},
		{types.StageTranscribing, StatusTranscribe, u.transcribe},
		{types.StageFormattingCaptions, "", u.formatCaptions},
		{types.StageBurningCaptions, StatusBurning, u.burnCaptions},
	}
}

// jobRun carries one job through the state machine and guarantees a single
// terminal event.
type jobRun struct {
	job    *types.Job
	sink   types.Sink
	logger *slog.Logger
	closed bool
}

func (r *jobRun) emit(e types.Event) {
	if r.closed {
		return
	}
	e.JobID = r.job.ID
	e.Stage = r.job.Stage
	r.closed = e.Terminal()
	if r.sink != nil {
		r.sink(e)
	}
}

func (r *jobRun) fail(err error) error {
	if r.job.Stage.Terminal() {
		return err
	}
	r.logger.Error("clip failed",
		logging.String(logging.FieldStage, string(r.job.Stage)),
		logging.Error(err),
	)
	r.job.Stage = types.StageFailed
	r.job.Outcome = types.OutcomeFailure
	r.job.Failure = err.Error()
	r.emit(types.Event{Kind: types.EventError, Message: err.Error()})
	return err
}

// Run drives job from received to done, emitting events into sink as it goes.
// The returned error is the one already reported in the terminal error event.
func (u Usecase) Run(ctx context.Context, job *types.Job, sink types.Sink) (err error) {
	r := &jobRun{
		job:    job,
		sink:   sink,
		logger: u.d.Logger.With(logging.String(logging.FieldJobID, job.ID)),
	}
	defer func() {
		if p := recover(); p != nil {
			err = r.fail(fmt.Errorf("internal error in %s: %v", job.Stage, p))
		}
	}()

	if err := u.validate(job); err != nil {
		return r.fail(err)
	}

	for _, st := range u.steps() {
		if err := ctx.Err(); err != nil {
			return r.fail(fmt.Errorf("%s: %w", st.stage, err))
		}
		job.Stage = st.stage
		if st.status != "" {
			r.emit(types.Event{Kind: types.EventStatus, Message: st.status})
		}
		started := time.Now()
		r.logger.Info("stage started", logging.String(logging.FieldStage, string(st.stage)))
		if err := st.run(ctx, r); err != nil {
			return r.fail(err)
		}
		r.logger.Info("stage finished",
			logging.String(logging.FieldStage, string(st.stage)),
			logging.Duration("elapsed", time.Since(started)),
		)
	}

	final := job.Artifacts[types.ArtifactCaptionedVideo]
	job.Stage = types.StageDone
	job.Outcome = types.OutcomeSuccess
	r.emit(types.Event{
		Kind:       types.EventDone,
		Video:      u.o.Workspace.videoRef(final.Path),
		Transcript: job.Transcript,
	})
	r.logger.Info("clip done", logging.String("video", final.Path))
	return nil
}

// validate runs before any external process is spawned.
func (u Usecase) validate(job *types.Job) error {
	start, err := timecode.Parse(job.Start)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	dur, err := timecode.Duration(job.Start, job.End)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if dur <= 0 {
		return fmt.Errorf("%w: start %s, end %s gives %d seconds", types.ErrNonPositiveDuration, job.Start, job.End, dur)
	}
	job.StartSec = start
	job.DurationSec = dur
	return nil
}

func (u Usecase) download(ctx context.Context, r *jobRun) error {
	j := r.job
	art, err := u.d.Downloader.Fetch(ctx, j.URL, j.Start, j.End, u.o.Workspace.rawPath(j.ID))
	if err != nil {
		return err
	}
	j.Artifacts[art.Kind] = art
	return nil
}

func (u Usecase) trim(ctx context.Context, r *jobRun) error {
	j := r.job
	if j.DurationSec <= 0 {
		return fmt.Errorf("%w: %d seconds", types.ErrNonPositiveDuration, j.DurationSec)
	}
	start := j.StartSec
	if u.o.TrimFromSectionStart {
		start = 0
	}
	in := j.Artifacts[types.ArtifactRawDownload]
	art, err := u.d.Transcoder.Trim(ctx, in.Path, start, j.DurationSec, u.o.Workspace.trimmedPath(j.ID))
	if err != nil {
		return err
	}
	j.Artifacts[art.Kind] = art
	return nil
}

func (u Usecase) extractAudio(ctx context.Context, r *jobRun) error {
	j := r.job
	in := j.Artifacts[types.ArtifactTrimmedVideo]
	art, err := u.d.Transcoder.ExtractAudio(ctx, in.Path, u.o.Workspace.audioPath(j.ID))
	if err != nil {
		return err
	}
	j.Artifacts[art.Kind] = art
	return nil
}

func (u Usecase) transcribe(ctx context.Context, r *jobRun) error {
	j := r.job
	audio := j.Artifacts[types.ArtifactExtractedAudio]
	text, err := u.d.Transcriber.Transcribe(ctx, audio.Path, u.o.Workspace.SubsDir)
	if err != nil {
		return err
	}
	j.Transcript = text
	j.Artifacts[types.ArtifactTranscript] = types.Artifact{
		Kind: types.ArtifactTranscript,
		Path: filepath.Join(u.o.Workspace.SubsDir, transcript.FileName(audio.Path)),
	}
	r.emit(types.Event{Kind: types.EventTranscript, Transcript: text})
	return nil
}

func (u Usecase) formatCaptions(_ context.Context, r *jobRun) error {
	j := r.job
	lines := captions.Format(j.Transcript, u.o.MaxLineLength, u.o.SecondsPerLine)
	doc := captions.Serialize(lines, u.o.Style)
	p := u.o.Workspace.captionPath(j.ID)
	if err := writeFile(p, []byte(doc)); err != nil {
		return fmt.Errorf("%w: write caption track: %w", types.ErrFilesystem, err)
	}
	j.Artifacts[types.ArtifactCaptionTrack] = types.Artifact{Kind: types.ArtifactCaptionTrack, Path: p}
	r.logger.Debug("caption track written", logging.String("path", p), logging.Int("lines", len(lines)))
	return nil
}

func (u Usecase) burnCaptions(ctx context.Context, r *jobRun) error {
	j := r.job
	video := j.Artifacts[types.ArtifactTrimmedVideo]
	track := j.Artifacts[types.ArtifactCaptionTrack]
	art, err := u.d.Transcoder.BurnCaptions(ctx, video.Path, track.Path, u.o.Workspace.finalPath(j.ID))
	if err != nil {
		return err
	}
	j.Artifacts[art.Kind] = art
	return nil
}

func writeFile(path string, b []byte) error {
	return os.WriteFile(path, b, 0o644)
}
